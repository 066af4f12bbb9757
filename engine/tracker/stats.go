package tracker

import (
	"context"

	"github.com/taskdeck/taskdeck/engine/core"
)

// -----
// Statistics Aggregation
// -----

// GlobalStats partitions the current snapshot of all projects and tasks.
// Counts are computed over rows fetched at call time; the two fetches are
// not wrapped in a shared transaction.
func (s *service) GlobalStats(ctx context.Context) (*core.GlobalStats, error) {
	projects, err := s.repo.ListProjects(ctx, nil)
	if err != nil {
		return nil, err
	}
	tasks, err := s.repo.ListTasks(ctx, nil)
	if err != nil {
		return nil, err
	}
	return &core.GlobalStats{
		TotalProjects:          len(projects),
		TotalTasks:             len(tasks),
		ProjectsByStatus:       countProjectStatuses(projects),
		TasksByStatus:          countTaskStatuses(tasks),
		TasksByPriority:        countTaskPriorities(tasks),
		AverageProjectProgress: meanProjectProgress(projects),
		AverageTaskProgress:    meanTaskProgress(tasks),
		UniqueAssignees:        countUniqueAssignees(tasks),
		UniqueOwners:           countUniqueOwners(projects),
	}, nil
}

// ProjectStats aggregates the tasks of a single project. The project must
// exist; its stored progress is reported as the overall figure.
func (s *service) ProjectStats(ctx context.Context, id core.ID) (*core.ProjectStats, error) {
	p, err := s.GetProject(ctx, id)
	if err != nil {
		return nil, err
	}
	tasks, err := s.repo.ListTasks(ctx, &core.TaskFilter{ProjectID: id})
	if err != nil {
		return nil, err
	}
	withDeps := 0
	for _, t := range tasks {
		if len(t.Dependencies) > 0 {
			withDeps++
		}
	}
	return &core.ProjectStats{
		ProjectID:             p.ID,
		ProjectName:           p.Name,
		TotalTasks:            len(tasks),
		TasksByStatus:         countTaskStatuses(tasks),
		TasksByPriority:       countTaskPriorities(tasks),
		OverallProgress:       p.Progress,
		AverageTaskProgress:   meanTaskProgress(tasks),
		TasksWithDependencies: withDeps,
	}, nil
}

func countProjectStatuses(projects []core.Project) core.ProjectStatusCounts {
	var c core.ProjectStatusCounts
	for _, p := range projects {
		switch p.Status {
		case core.ProjectPlanning:
			c.Planning++
		case core.ProjectActive:
			c.Active++
		case core.ProjectOnHold:
			c.OnHold++
		case core.ProjectCompleted:
			c.Completed++
		case core.ProjectCancelled:
			c.Cancelled++
		}
	}
	return c
}

func countTaskStatuses(tasks []core.Task) core.TaskStatusCounts {
	var c core.TaskStatusCounts
	for _, t := range tasks {
		switch t.Status {
		case core.TaskNotStarted:
			c.NotStarted++
		case core.TaskInProgress:
			c.InProgress++
		case core.TaskCompleted:
			c.Completed++
		case core.TaskBlocked:
			c.Blocked++
		}
	}
	return c
}

func countTaskPriorities(tasks []core.Task) core.TaskPriorityCounts {
	var c core.TaskPriorityCounts
	for _, t := range tasks {
		switch t.Priority {
		case core.PriorityLow:
			c.Low++
		case core.PriorityMedium:
			c.Medium++
		case core.PriorityHigh:
			c.High++
		case core.PriorityCritical:
			c.Critical++
		}
	}
	return c
}

// meanProjectProgress returns 0 for an empty slice rather than an error.
func meanProjectProgress(projects []core.Project) float64 {
	if len(projects) == 0 {
		return 0
	}
	sum := 0
	for _, p := range projects {
		sum += p.Progress
	}
	return float64(sum) / float64(len(projects))
}

func meanTaskProgress(tasks []core.Task) float64 {
	if len(tasks) == 0 {
		return 0
	}
	sum := 0
	for _, t := range tasks {
		sum += t.Progress
	}
	return float64(sum) / float64(len(tasks))
}

func countUniqueAssignees(tasks []core.Task) int {
	seen := make(map[string]struct{})
	for _, t := range tasks {
		if t.Assignee != "" {
			seen[t.Assignee] = struct{}{}
		}
	}
	return len(seen)
}

func countUniqueOwners(projects []core.Project) int {
	seen := make(map[string]struct{})
	for _, p := range projects {
		if p.Owner != "" {
			seen[p.Owner] = struct{}{}
		}
	}
	return len(seen)
}
