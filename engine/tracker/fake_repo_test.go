package tracker

import (
	"context"
	"sort"
	"strings"

	"github.com/taskdeck/taskdeck/engine/core"
)

// memRepo is an in-memory Repository with the same observable semantics as
// the Postgres implementation: substring search is case-insensitive,
// project listings come back most recently updated first, task listings in
// creation order, and deleting a project removes its tasks.
type memRepo struct {
	projects map[core.ID]core.Project
	tasks    map[core.ID]core.Task
	seq      int
	order    map[core.ID]int
}

func newMemRepo() *memRepo {
	return &memRepo{
		projects: make(map[core.ID]core.Project),
		tasks:    make(map[core.ID]core.Task),
		order:    make(map[core.ID]int),
	}
}

func (m *memRepo) ListProjects(_ context.Context, filter *core.ProjectFilter) ([]core.Project, error) {
	out := make([]core.Project, 0, len(m.projects))
	for _, p := range m.projects {
		if filter != nil {
			if filter.Status != "" && p.Status != filter.Status {
				continue
			}
			if filter.Owner != "" && p.Owner != filter.Owner {
				continue
			}
			if len(filter.Tags) > 0 && !overlaps(p.Tags, filter.Tags) {
				continue
			}
		}
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UpdatedAt.After(out[j].UpdatedAt) })
	return out, nil
}

func (m *memRepo) GetProject(_ context.Context, id core.ID) (*core.Project, error) {
	if p, ok := m.projects[id]; ok {
		return &p, nil
	}
	return nil, nil
}

func (m *memRepo) InsertProject(_ context.Context, p *core.Project) error {
	m.projects[p.ID] = *p
	return nil
}

func (m *memRepo) UpdateProject(_ context.Context, p *core.Project) error {
	m.projects[p.ID] = *p
	return nil
}

func (m *memRepo) DeleteProject(_ context.Context, id core.ID) error {
	delete(m.projects, id)
	for tid, t := range m.tasks {
		if t.ProjectID == id {
			delete(m.tasks, tid)
		}
	}
	return nil
}

func (m *memRepo) SearchProjects(
	ctx context.Context,
	text string,
	fields []core.ProjectSearchField,
) ([]core.Project, error) {
	all, _ := m.ListProjects(ctx, nil)
	out := []core.Project{}
	for _, p := range all {
		for _, f := range fields {
			hit := false
			switch f {
			case core.SearchProjectName:
				hit = containsFold(p.Name, text)
			case core.SearchProjectDescription:
				hit = containsFold(p.Description, text)
			case core.SearchProjectTags:
				for _, tag := range p.Tags {
					if containsFold(tag, text) {
						hit = true
					}
				}
			}
			if hit {
				out = append(out, p)
				break
			}
		}
	}
	return out, nil
}

func (m *memRepo) ListTasks(_ context.Context, filter *core.TaskFilter) ([]core.Task, error) {
	out := make([]core.Task, 0, len(m.tasks))
	for _, t := range m.tasks {
		if filter != nil {
			if filter.ProjectID != "" && t.ProjectID != filter.ProjectID {
				continue
			}
			if filter.Status != "" && t.Status != filter.Status {
				continue
			}
			if filter.Priority != "" && t.Priority != filter.Priority {
				continue
			}
			if filter.Assignee != "" && t.Assignee != filter.Assignee {
				continue
			}
		}
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return m.order[out[i].ID] < m.order[out[j].ID] })
	return out, nil
}

func (m *memRepo) GetTask(_ context.Context, id, projectID core.ID) (*core.Task, error) {
	if t, ok := m.tasks[id]; ok && t.ProjectID == projectID {
		return &t, nil
	}
	return nil, nil
}

func (m *memRepo) InsertTask(_ context.Context, t *core.Task) error {
	m.seq++
	m.order[t.ID] = m.seq
	m.tasks[t.ID] = *t
	return nil
}

func (m *memRepo) UpdateTask(_ context.Context, t *core.Task) error {
	m.tasks[t.ID] = *t
	return nil
}

func (m *memRepo) DeleteTask(_ context.Context, id, _ core.ID) error {
	delete(m.tasks, id)
	return nil
}

func (m *memRepo) SearchTasks(
	ctx context.Context,
	text string,
	projectID core.ID,
	fields []core.TaskSearchField,
) ([]core.Task, error) {
	all, _ := m.ListTasks(ctx, &core.TaskFilter{ProjectID: projectID})
	out := []core.Task{}
	for _, t := range all {
		for _, f := range fields {
			hit := false
			switch f {
			case core.SearchTaskTitle:
				hit = containsFold(t.Title, text)
			case core.SearchTaskDescription:
				hit = containsFold(t.Description, text)
			case core.SearchTaskAssignee:
				hit = containsFold(t.Assignee, text)
			}
			if hit {
				out = append(out, t)
				break
			}
		}
	}
	return out, nil
}

func (m *memRepo) CountTasks(ctx context.Context, projectID core.ID) (int, error) {
	tasks, _ := m.ListTasks(ctx, &core.TaskFilter{ProjectID: projectID})
	return len(tasks), nil
}

func (m *memRepo) WithTx(_ context.Context, fn func(Repository) error) error {
	return fn(m)
}

func (m *memRepo) Ping(_ context.Context) error {
	return nil
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

func overlaps(a, b []string) bool {
	for _, x := range a {
		for _, y := range b {
			if x == y {
				return true
			}
		}
	}
	return false
}
