package tracker

import (
	"context"
	"math"
	"strings"
	"time"

	"github.com/taskdeck/taskdeck/engine/core"
	"github.com/taskdeck/taskdeck/pkg/logger"
)

// -----
// Service Implementation
// -----

// service implements the Service interface on top of a storage Repository.
// It owns id generation, validation, merge-patch semantics, cascade-delete
// accounting and the progress/statistics aggregation logic shared by both
// front ends.
type service struct {
	repo Repository
}

// NewService creates a new data service instance bound to the given
// repository. The repository is the only collaborator; adapters depend on
// the returned Service and never on each other.
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func now() time.Time {
	return time.Now().UTC()
}

// -----
// Projects
// -----

func (s *service) ListProjects(ctx context.Context, filter *core.ProjectFilter) ([]core.Project, error) {
	if filter != nil && filter.Status != "" && !filter.Status.Valid() {
		return nil, core.Invalidf("invalid project status %q", filter.Status)
	}
	return s.repo.ListProjects(ctx, filter)
}

func (s *service) GetProject(ctx context.Context, id core.ID) (*core.Project, error) {
	p, err := s.repo.GetProject(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, core.NotFoundf("project with ID %s not found", id)
	}
	return p, nil
}

func (s *service) GetProjectWithTasks(ctx context.Context, id core.ID) (*core.ProjectWithTasks, error) {
	p, err := s.GetProject(ctx, id)
	if err != nil {
		return nil, err
	}
	tasks, err := s.repo.ListTasks(ctx, &core.TaskFilter{ProjectID: id})
	if err != nil {
		return nil, err
	}
	return &core.ProjectWithTasks{Project: *p, Tasks: tasks}, nil
}

func (s *service) CreateProject(ctx context.Context, input *core.CreateProjectInput) (*core.Project, error) {
	if input == nil {
		return nil, core.Invalidf("project input is required")
	}
	if strings.TrimSpace(input.Name) == "" {
		return nil, core.Invalidf("project name is required")
	}
	if strings.TrimSpace(input.Description) == "" {
		return nil, core.Invalidf("project description is required")
	}
	status := input.Status
	if status == "" {
		status = core.ProjectPlanning
	}
	if !status.Valid() {
		return nil, core.Invalidf("invalid project status %q", status)
	}
	tags := input.Tags
	if tags == nil {
		tags = []string{}
	}

	ts := now()
	p := &core.Project{
		ID:          core.NewID(),
		Name:        input.Name,
		Description: input.Description,
		Status:      status,
		StartDate:   input.StartDate,
		EndDate:     input.EndDate,
		Progress:    0,
		Owner:       input.Owner,
		Tags:        tags,
		CreatedAt:   ts,
		UpdatedAt:   ts,
	}
	if err := s.repo.InsertProject(ctx, p); err != nil {
		return nil, err
	}
	logger.Debug("project created", "id", p.ID, "name", p.Name)
	return p, nil
}

func (s *service) UpdateProject(ctx context.Context, id core.ID, patch *core.ProjectPatch) (*core.Project, error) {
	if patch == nil {
		patch = &core.ProjectPatch{}
	}
	var updated *core.Project
	err := s.repo.WithTx(ctx, func(r Repository) error {
		current, err := r.GetProject(ctx, id)
		if err != nil {
			return err
		}
		if current == nil {
			return core.NotFoundf("project with ID %s not found", id)
		}
		merged := *current
		if patch.Name.Set {
			if strings.TrimSpace(patch.Name.Val) == "" {
				return core.Invalidf("project name cannot be empty")
			}
			merged.Name = patch.Name.Val
		}
		if patch.Description.Set {
			if strings.TrimSpace(patch.Description.Val) == "" {
				return core.Invalidf("project description cannot be empty")
			}
			merged.Description = patch.Description.Val
		}
		if patch.Status.Set {
			if !patch.Status.Val.Valid() {
				return core.Invalidf("invalid project status %q", patch.Status.Val)
			}
			merged.Status = patch.Status.Val
		}
		if patch.StartDate.Set {
			merged.StartDate = patch.StartDate.Val
		}
		if patch.EndDate.Set {
			merged.EndDate = patch.EndDate.Val
		}
		if patch.Owner.Set {
			merged.Owner = patch.Owner.Val
		}
		if patch.Tags.Set {
			tags := patch.Tags.Val
			if tags == nil {
				tags = []string{}
			}
			merged.Tags = tags
		}
		merged.UpdatedAt = now()
		if err := r.UpdateProject(ctx, &merged); err != nil {
			return err
		}
		updated = &merged
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *service) DeleteProject(ctx context.Context, id core.ID) (*core.ProjectDeletion, error) {
	var out *core.ProjectDeletion
	err := s.repo.WithTx(ctx, func(r Repository) error {
		p, err := r.GetProject(ctx, id)
		if err != nil {
			return err
		}
		if p == nil {
			return core.NotFoundf("project with ID %s not found", id)
		}
		count, err := r.CountTasks(ctx, id)
		if err != nil {
			return err
		}
		if err := r.DeleteProject(ctx, id); err != nil {
			return err
		}
		out = &core.ProjectDeletion{Name: p.Name, TaskCount: count}
		return nil
	})
	if err != nil {
		return nil, err
	}
	logger.Debug("project deleted", "id", id, "tasks", out.TaskCount)
	return out, nil
}

// RecalculateProgress recomputes a project's progress as the mean of its
// tasks' progress values, rounded half away from zero, and persists it.
// This is the only mutation path for a project's progress after creation.
func (s *service) RecalculateProgress(ctx context.Context, id core.ID) (*core.Project, error) {
	var updated *core.Project
	err := s.repo.WithTx(ctx, func(r Repository) error {
		p, err := r.GetProject(ctx, id)
		if err != nil {
			return err
		}
		if p == nil {
			return core.NotFoundf("project with ID %s not found", id)
		}
		tasks, err := r.ListTasks(ctx, &core.TaskFilter{ProjectID: id})
		if err != nil {
			return err
		}
		progress := 0
		if len(tasks) > 0 {
			sum := 0
			for _, t := range tasks {
				sum += t.Progress
			}
			progress = int(math.Round(float64(sum) / float64(len(tasks))))
		}
		p.Progress = progress
		p.UpdatedAt = now()
		if err := r.UpdateProject(ctx, p); err != nil {
			return err
		}
		updated = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *service) SearchProjects(
	ctx context.Context,
	text string,
	fields []core.ProjectSearchField,
) ([]core.Project, error) {
	if strings.TrimSpace(text) == "" {
		return nil, core.Invalidf("search query is required")
	}
	if fields == nil {
		fields = core.DefaultProjectSearchFields()
	}
	if len(fields) == 0 {
		return nil, core.Invalidf("at least one search field must be selected")
	}
	for _, f := range fields {
		if !f.Valid() {
			return nil, core.Invalidf("invalid project search field %q", f)
		}
	}
	return s.repo.SearchProjects(ctx, text, fields)
}

// -----
// Tasks
// -----

func (s *service) ListTasks(ctx context.Context, filter *core.TaskFilter) ([]core.Task, error) {
	if filter != nil {
		if filter.Status != "" && !filter.Status.Valid() {
			return nil, core.Invalidf("invalid task status %q", filter.Status)
		}
		if filter.Priority != "" && !filter.Priority.Valid() {
			return nil, core.Invalidf("invalid task priority %q", filter.Priority)
		}
	}
	return s.repo.ListTasks(ctx, filter)
}

func (s *service) GetTask(ctx context.Context, id, projectID core.ID) (*core.Task, error) {
	t, err := s.repo.GetTask(ctx, id, projectID)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, core.NotFoundf("task with ID %s not found in project %s", id, projectID)
	}
	return t, nil
}

func (s *service) CreateTask(ctx context.Context, input *core.CreateTaskInput) (*core.Task, error) {
	if input == nil {
		return nil, core.Invalidf("task input is required")
	}
	if input.ProjectID == "" {
		return nil, core.Invalidf("task project ID is required")
	}
	if strings.TrimSpace(input.Title) == "" {
		return nil, core.Invalidf("task title is required")
	}
	if strings.TrimSpace(input.Description) == "" {
		return nil, core.Invalidf("task description is required")
	}
	status := input.Status
	if status == "" {
		status = core.TaskNotStarted
	}
	if !status.Valid() {
		return nil, core.Invalidf("invalid task status %q", status)
	}
	priority := input.Priority
	if priority == "" {
		priority = core.PriorityMedium
	}
	if !priority.Valid() {
		return nil, core.Invalidf("invalid task priority %q", priority)
	}
	if input.Progress < 0 || input.Progress > 100 {
		return nil, core.Invalidf("task progress must be between 0 and 100, got %d", input.Progress)
	}
	deps := input.Dependencies
	if deps == nil {
		deps = []string{}
	}

	ts := now()
	t := &core.Task{
		ID:           core.NewID(),
		ProjectID:    input.ProjectID,
		Title:        input.Title,
		Description:  input.Description,
		Status:       status,
		Priority:     priority,
		Assignee:     input.Assignee,
		DueDate:      input.DueDate,
		Progress:     input.Progress,
		Dependencies: deps,
		CreatedAt:    ts,
		UpdatedAt:    ts,
	}

	// The owning project must exist before anything is written; the check
	// and the insert share one transaction so no task can be persisted
	// against a project deleted in between.
	err := s.repo.WithTx(ctx, func(r Repository) error {
		p, err := r.GetProject(ctx, input.ProjectID)
		if err != nil {
			return err
		}
		if p == nil {
			return core.NotFoundf("project with ID %s not found", input.ProjectID)
		}
		return r.InsertTask(ctx, t)
	})
	if err != nil {
		return nil, err
	}
	logger.Debug("task created", "id", t.ID, "project", t.ProjectID, "title", t.Title)
	return t, nil
}

func (s *service) UpdateTask(ctx context.Context, id, projectID core.ID, patch *core.TaskPatch) (*core.Task, error) {
	if patch == nil {
		patch = &core.TaskPatch{}
	}
	var updated *core.Task
	err := s.repo.WithTx(ctx, func(r Repository) error {
		current, err := r.GetTask(ctx, id, projectID)
		if err != nil {
			return err
		}
		if current == nil {
			return core.NotFoundf("task with ID %s not found in project %s", id, projectID)
		}
		merged := *current
		if patch.Title.Set {
			if strings.TrimSpace(patch.Title.Val) == "" {
				return core.Invalidf("task title cannot be empty")
			}
			merged.Title = patch.Title.Val
		}
		if patch.Description.Set {
			if strings.TrimSpace(patch.Description.Val) == "" {
				return core.Invalidf("task description cannot be empty")
			}
			merged.Description = patch.Description.Val
		}
		if patch.Status.Set {
			if !patch.Status.Val.Valid() {
				return core.Invalidf("invalid task status %q", patch.Status.Val)
			}
			merged.Status = patch.Status.Val
		}
		if patch.Priority.Set {
			if !patch.Priority.Val.Valid() {
				return core.Invalidf("invalid task priority %q", patch.Priority.Val)
			}
			merged.Priority = patch.Priority.Val
		}
		if patch.Assignee.Set {
			merged.Assignee = patch.Assignee.Val
		}
		if patch.DueDate.Set {
			merged.DueDate = patch.DueDate.Val
		}
		if patch.Progress.Set {
			if patch.Progress.Val < 0 || patch.Progress.Val > 100 {
				return core.Invalidf("task progress must be between 0 and 100, got %d", patch.Progress.Val)
			}
			merged.Progress = patch.Progress.Val
		}
		if patch.Dependencies.Set {
			deps := patch.Dependencies.Val
			if deps == nil {
				deps = []string{}
			}
			merged.Dependencies = deps
		}
		merged.UpdatedAt = now()
		if err := r.UpdateTask(ctx, &merged); err != nil {
			return err
		}
		updated = &merged
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *service) DeleteTask(ctx context.Context, id, projectID core.ID) (*core.TaskDeletion, error) {
	var out *core.TaskDeletion
	err := s.repo.WithTx(ctx, func(r Repository) error {
		t, err := r.GetTask(ctx, id, projectID)
		if err != nil {
			return err
		}
		if t == nil {
			return core.NotFoundf("task with ID %s not found in project %s", id, projectID)
		}
		if err := r.DeleteTask(ctx, id, projectID); err != nil {
			return err
		}
		out = &core.TaskDeletion{Title: t.Title}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *service) SearchTasks(
	ctx context.Context,
	text string,
	projectID core.ID,
	fields []core.TaskSearchField,
) ([]core.Task, error) {
	if strings.TrimSpace(text) == "" {
		return nil, core.Invalidf("search query is required")
	}
	if fields == nil {
		fields = core.DefaultTaskSearchFields()
	}
	if len(fields) == 0 {
		return nil, core.Invalidf("at least one search field must be selected")
	}
	for _, f := range fields {
		if !f.Valid() {
			return nil, core.Invalidf("invalid task search field %q", f)
		}
	}
	return s.repo.SearchTasks(ctx, text, projectID, fields)
}
