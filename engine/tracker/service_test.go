package tracker

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taskdeck/taskdeck/engine/core"
)

func newTestService(t *testing.T) (Service, *memRepo) {
	t.Helper()
	repo := newMemRepo()
	return NewService(repo), repo
}

func mustCreateProject(t *testing.T, svc Service, name string) *core.Project {
	t.Helper()
	p, err := svc.CreateProject(context.Background(), &core.CreateProjectInput{
		Name:        name,
		Description: name + " description",
	})
	require.NoError(t, err)
	return p
}

func mustCreateTask(t *testing.T, svc Service, projectID core.ID, title string, progress int) *core.Task {
	t.Helper()
	task, err := svc.CreateTask(context.Background(), &core.CreateTaskInput{
		ProjectID:   projectID,
		Title:       title,
		Description: title + " description",
		Progress:    progress,
	})
	require.NoError(t, err)
	return task
}

// -----
// Projects
// -----

func TestCreateProject(t *testing.T) {
	ctx := context.Background()
	t.Run("Should apply defaults and round-trip", func(t *testing.T) {
		svc, _ := newTestService(t)
		p, err := svc.CreateProject(ctx, &core.CreateProjectInput{
			Name:        "Rollout",
			Description: "Ship the new billing flow",
		})
		require.NoError(t, err)
		assert.Len(t, p.ID.String(), 12)
		assert.Equal(t, core.ProjectPlanning, p.Status)
		assert.Equal(t, 0, p.Progress)
		assert.NotNil(t, p.Tags)
		assert.Empty(t, p.Tags)
		assert.Equal(t, p.CreatedAt, p.UpdatedAt)

		got, err := svc.GetProject(ctx, p.ID)
		require.NoError(t, err)
		assert.Equal(t, p, got)
	})
	t.Run("Should reject blank name", func(t *testing.T) {
		svc, _ := newTestService(t)
		_, err := svc.CreateProject(ctx, &core.CreateProjectInput{Name: "   ", Description: "d"})
		assert.True(t, core.HasCode(err, core.ErrorCodeValidation))
	})
	t.Run("Should reject blank description", func(t *testing.T) {
		svc, _ := newTestService(t)
		_, err := svc.CreateProject(ctx, &core.CreateProjectInput{Name: "n", Description: ""})
		assert.True(t, core.HasCode(err, core.ErrorCodeValidation))
	})
	t.Run("Should reject unknown status", func(t *testing.T) {
		svc, _ := newTestService(t)
		_, err := svc.CreateProject(ctx, &core.CreateProjectInput{
			Name: "n", Description: "d", Status: "archived",
		})
		assert.True(t, core.HasCode(err, core.ErrorCodeValidation))
	})
	t.Run("Should keep provided status and metadata", func(t *testing.T) {
		svc, _ := newTestService(t)
		start := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)
		p, err := svc.CreateProject(ctx, &core.CreateProjectInput{
			Name:        "Rollout",
			Description: "d",
			Status:      core.ProjectActive,
			StartDate:   &start,
			Owner:       "alice",
			Tags:        []string{"billing"},
		})
		require.NoError(t, err)
		assert.Equal(t, core.ProjectActive, p.Status)
		assert.Equal(t, "alice", p.Owner)
		require.NotNil(t, p.StartDate)
		assert.Equal(t, start, *p.StartDate)
	})
}

func TestGetProject(t *testing.T) {
	ctx := context.Background()
	t.Run("Should report not found for unknown id", func(t *testing.T) {
		svc, _ := newTestService(t)
		_, err := svc.GetProject(ctx, "missing")
		assert.True(t, core.HasCode(err, core.ErrorCodeNotFound))
	})
	t.Run("Should bundle project with tasks in creation order", func(t *testing.T) {
		svc, _ := newTestService(t)
		p := mustCreateProject(t, svc, "Rollout")
		first := mustCreateTask(t, svc, p.ID, "first", 0)
		second := mustCreateTask(t, svc, p.ID, "second", 0)

		got, err := svc.GetProjectWithTasks(ctx, p.ID)
		require.NoError(t, err)
		require.Len(t, got.Tasks, 2)
		assert.Equal(t, first.ID, got.Tasks[0].ID)
		assert.Equal(t, second.ID, got.Tasks[1].ID)
	})
}

func TestUpdateProject(t *testing.T) {
	ctx := context.Background()
	t.Run("Should leave entity unchanged on empty patch", func(t *testing.T) {
		svc, _ := newTestService(t)
		p := mustCreateProject(t, svc, "Rollout")
		got, err := svc.UpdateProject(ctx, p.ID, &core.ProjectPatch{})
		require.NoError(t, err)
		assert.Equal(t, p.Name, got.Name)
		assert.Equal(t, p.Description, got.Description)
		assert.Equal(t, p.Status, got.Status)
		assert.Equal(t, p.Tags, got.Tags)
	})
	t.Run("Should merge only provided fields", func(t *testing.T) {
		svc, _ := newTestService(t)
		p := mustCreateProject(t, svc, "Rollout")
		got, err := svc.UpdateProject(ctx, p.ID, &core.ProjectPatch{
			Status: core.Some(core.ProjectActive),
			Owner:  core.Some("bob"),
		})
		require.NoError(t, err)
		assert.Equal(t, "Rollout", got.Name)
		assert.Equal(t, core.ProjectActive, got.Status)
		assert.Equal(t, "bob", got.Owner)
	})
	t.Run("Should clear a date with an explicit nil", func(t *testing.T) {
		svc, _ := newTestService(t)
		start := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)
		p, err := svc.CreateProject(ctx, &core.CreateProjectInput{
			Name: "n", Description: "d", StartDate: &start,
		})
		require.NoError(t, err)

		got, err := svc.UpdateProject(ctx, p.ID, &core.ProjectPatch{
			StartDate: core.Some[*time.Time](nil),
		})
		require.NoError(t, err)
		assert.Nil(t, got.StartDate)
	})
	t.Run("Should reject explicit empty name", func(t *testing.T) {
		svc, _ := newTestService(t)
		p := mustCreateProject(t, svc, "Rollout")
		_, err := svc.UpdateProject(ctx, p.ID, &core.ProjectPatch{Name: core.Some("")})
		assert.True(t, core.HasCode(err, core.ErrorCodeValidation))
	})
	t.Run("Should report not found for unknown project", func(t *testing.T) {
		svc, _ := newTestService(t)
		_, err := svc.UpdateProject(ctx, "missing", &core.ProjectPatch{Name: core.Some("x")})
		assert.True(t, core.HasCode(err, core.ErrorCodeNotFound))
	})
	t.Run("Should refresh updatedAt", func(t *testing.T) {
		svc, _ := newTestService(t)
		p := mustCreateProject(t, svc, "Rollout")
		got, err := svc.UpdateProject(ctx, p.ID, &core.ProjectPatch{Name: core.Some("Rollout 2")})
		require.NoError(t, err)
		assert.False(t, got.UpdatedAt.Before(p.UpdatedAt))
	})
}

func TestDeleteProject(t *testing.T) {
	ctx := context.Background()
	t.Run("Should cascade and report removed task count", func(t *testing.T) {
		svc, _ := newTestService(t)
		p := mustCreateProject(t, svc, "Rollout")
		for _, title := range []string{"a", "b", "c"} {
			mustCreateTask(t, svc, p.ID, title, 0)
		}

		deletion, err := svc.DeleteProject(ctx, p.ID)
		require.NoError(t, err)
		assert.Equal(t, "Rollout", deletion.Name)
		assert.Equal(t, 3, deletion.TaskCount)

		_, err = svc.GetProject(ctx, p.ID)
		assert.True(t, core.HasCode(err, core.ErrorCodeNotFound))
		tasks, err := svc.ListTasks(ctx, &core.TaskFilter{ProjectID: p.ID})
		require.NoError(t, err)
		assert.Empty(t, tasks)
	})
	t.Run("Should report not found for unknown project", func(t *testing.T) {
		svc, _ := newTestService(t)
		_, err := svc.DeleteProject(ctx, "missing")
		assert.True(t, core.HasCode(err, core.ErrorCodeNotFound))
	})
}

func TestRecalculateProgress(t *testing.T) {
	ctx := context.Background()
	t.Run("Should round the mean of task progress", func(t *testing.T) {
		svc, _ := newTestService(t)
		p := mustCreateProject(t, svc, "Rollout")
		for i, progress := range []int{10, 20, 33} {
			mustCreateTask(t, svc, p.ID, string(rune('a'+i)), progress)
		}
		got, err := svc.RecalculateProgress(ctx, p.ID)
		require.NoError(t, err)
		assert.Equal(t, 21, got.Progress)
	})
	t.Run("Should round half up", func(t *testing.T) {
		svc, _ := newTestService(t)
		p := mustCreateProject(t, svc, "Rollout")
		mustCreateTask(t, svc, p.ID, "a", 50)
		mustCreateTask(t, svc, p.ID, "b", 51)
		got, err := svc.RecalculateProgress(ctx, p.ID)
		require.NoError(t, err)
		assert.Equal(t, 51, got.Progress)
	})
	t.Run("Should reset to zero when the project has no tasks", func(t *testing.T) {
		svc, repo := newTestService(t)
		p := mustCreateProject(t, svc, "Rollout")
		stored := repo.projects[p.ID]
		stored.Progress = 80
		repo.projects[p.ID] = stored

		got, err := svc.RecalculateProgress(ctx, p.ID)
		require.NoError(t, err)
		assert.Equal(t, 0, got.Progress)
	})
	t.Run("Should report not found for unknown project", func(t *testing.T) {
		svc, _ := newTestService(t)
		_, err := svc.RecalculateProgress(ctx, "missing")
		assert.True(t, core.HasCode(err, core.ErrorCodeNotFound))
	})
}

// -----
// Tasks
// -----

func TestCreateTask(t *testing.T) {
	ctx := context.Background()
	t.Run("Should apply defaults and round-trip", func(t *testing.T) {
		svc, _ := newTestService(t)
		p := mustCreateProject(t, svc, "Rollout")
		task, err := svc.CreateTask(ctx, &core.CreateTaskInput{
			ProjectID:   p.ID,
			Title:       "Write migration",
			Description: "Add the tasks table",
		})
		require.NoError(t, err)
		assert.Equal(t, core.TaskNotStarted, task.Status)
		assert.Equal(t, core.PriorityMedium, task.Priority)
		assert.Equal(t, 0, task.Progress)
		assert.NotNil(t, task.Dependencies)
		assert.Empty(t, task.Dependencies)

		got, err := svc.GetTask(ctx, task.ID, p.ID)
		require.NoError(t, err)
		assert.Equal(t, task, got)
	})
	t.Run("Should reject missing project and persist nothing", func(t *testing.T) {
		svc, repo := newTestService(t)
		_, err := svc.CreateTask(ctx, &core.CreateTaskInput{
			ProjectID:   "missing",
			Title:       "t",
			Description: "d",
		})
		assert.True(t, core.HasCode(err, core.ErrorCodeNotFound))
		assert.Empty(t, repo.tasks)
	})
	t.Run("Should reject progress outside range", func(t *testing.T) {
		svc, _ := newTestService(t)
		p := mustCreateProject(t, svc, "Rollout")
		_, err := svc.CreateTask(ctx, &core.CreateTaskInput{
			ProjectID: p.ID, Title: "t", Description: "d", Progress: 101,
		})
		assert.True(t, core.HasCode(err, core.ErrorCodeValidation))
	})
	t.Run("Should reject unknown priority", func(t *testing.T) {
		svc, _ := newTestService(t)
		p := mustCreateProject(t, svc, "Rollout")
		_, err := svc.CreateTask(ctx, &core.CreateTaskInput{
			ProjectID: p.ID, Title: "t", Description: "d", Priority: "urgent",
		})
		assert.True(t, core.HasCode(err, core.ErrorCodeValidation))
	})
}

func TestUpdateTask(t *testing.T) {
	ctx := context.Background()
	t.Run("Should merge only provided fields", func(t *testing.T) {
		svc, _ := newTestService(t)
		p := mustCreateProject(t, svc, "Rollout")
		task := mustCreateTask(t, svc, p.ID, "Write migration", 0)
		got, err := svc.UpdateTask(ctx, task.ID, p.ID, &core.TaskPatch{
			Status:   core.Some(core.TaskInProgress),
			Progress: core.Some(40),
		})
		require.NoError(t, err)
		assert.Equal(t, "Write migration", got.Title)
		assert.Equal(t, core.TaskInProgress, got.Status)
		assert.Equal(t, 40, got.Progress)
	})
	t.Run("Should clear assignee with a set empty string", func(t *testing.T) {
		svc, _ := newTestService(t)
		p := mustCreateProject(t, svc, "Rollout")
		task, err := svc.CreateTask(ctx, &core.CreateTaskInput{
			ProjectID: p.ID, Title: "t", Description: "d", Assignee: "carol",
		})
		require.NoError(t, err)
		got, err := svc.UpdateTask(ctx, task.ID, p.ID, &core.TaskPatch{
			Assignee: core.Some(""),
		})
		require.NoError(t, err)
		assert.Empty(t, got.Assignee)
	})
	t.Run("Should reject progress outside range", func(t *testing.T) {
		svc, _ := newTestService(t)
		p := mustCreateProject(t, svc, "Rollout")
		task := mustCreateTask(t, svc, p.ID, "t", 0)
		_, err := svc.UpdateTask(ctx, task.ID, p.ID, &core.TaskPatch{Progress: core.Some(-1)})
		assert.True(t, core.HasCode(err, core.ErrorCodeValidation))
	})
	t.Run("Should scope lookup to the owning project", func(t *testing.T) {
		svc, _ := newTestService(t)
		p := mustCreateProject(t, svc, "Rollout")
		other := mustCreateProject(t, svc, "Other")
		task := mustCreateTask(t, svc, p.ID, "t", 0)
		_, err := svc.UpdateTask(ctx, task.ID, other.ID, &core.TaskPatch{Progress: core.Some(10)})
		assert.True(t, core.HasCode(err, core.ErrorCodeNotFound))
	})
}

func TestDeleteTask(t *testing.T) {
	ctx := context.Background()
	t.Run("Should delete and report the title", func(t *testing.T) {
		svc, _ := newTestService(t)
		p := mustCreateProject(t, svc, "Rollout")
		task := mustCreateTask(t, svc, p.ID, "Write migration", 0)
		deletion, err := svc.DeleteTask(ctx, task.ID, p.ID)
		require.NoError(t, err)
		assert.Equal(t, "Write migration", deletion.Title)
		_, err = svc.GetTask(ctx, task.ID, p.ID)
		assert.True(t, core.HasCode(err, core.ErrorCodeNotFound))
	})
	t.Run("Should report not found for unknown task", func(t *testing.T) {
		svc, _ := newTestService(t)
		p := mustCreateProject(t, svc, "Rollout")
		_, err := svc.DeleteTask(ctx, "missing", p.ID)
		assert.True(t, core.HasCode(err, core.ErrorCodeNotFound))
	})
}

// -----
// Listing and search
// -----

func TestListValidation(t *testing.T) {
	ctx := context.Background()
	t.Run("Should reject unknown project status filter", func(t *testing.T) {
		svc, _ := newTestService(t)
		_, err := svc.ListProjects(ctx, &core.ProjectFilter{Status: "archived"})
		assert.True(t, core.HasCode(err, core.ErrorCodeValidation))
	})
	t.Run("Should reject unknown task priority filter", func(t *testing.T) {
		svc, _ := newTestService(t)
		_, err := svc.ListTasks(ctx, &core.TaskFilter{Priority: "urgent"})
		assert.True(t, core.HasCode(err, core.ErrorCodeValidation))
	})
	t.Run("Should combine task filters conjunctively", func(t *testing.T) {
		svc, _ := newTestService(t)
		p := mustCreateProject(t, svc, "Rollout")
		_, err := svc.CreateTask(ctx, &core.CreateTaskInput{
			ProjectID: p.ID, Title: "a", Description: "d",
			Status: core.TaskInProgress, Assignee: "alice",
		})
		require.NoError(t, err)
		_, err = svc.CreateTask(ctx, &core.CreateTaskInput{
			ProjectID: p.ID, Title: "b", Description: "d",
			Status: core.TaskInProgress, Assignee: "bob",
		})
		require.NoError(t, err)

		tasks, err := svc.ListTasks(ctx, &core.TaskFilter{
			ProjectID: p.ID,
			Status:    core.TaskInProgress,
			Assignee:  "alice",
		})
		require.NoError(t, err)
		require.Len(t, tasks, 1)
		assert.Equal(t, "a", tasks[0].Title)
	})
}

func TestSearchProjects(t *testing.T) {
	ctx := context.Background()
	t.Run("Should require a query", func(t *testing.T) {
		svc, _ := newTestService(t)
		_, err := svc.SearchProjects(ctx, "  ", nil)
		assert.True(t, core.HasCode(err, core.ErrorCodeValidation))
	})
	t.Run("Should reject an explicitly empty field set", func(t *testing.T) {
		svc, _ := newTestService(t)
		_, err := svc.SearchProjects(ctx, "api", []core.ProjectSearchField{})
		assert.True(t, core.HasCode(err, core.ErrorCodeValidation))
	})
	t.Run("Should reject unknown fields", func(t *testing.T) {
		svc, _ := newTestService(t)
		_, err := svc.SearchProjects(ctx, "api", []core.ProjectSearchField{"owner"})
		assert.True(t, core.HasCode(err, core.ErrorCodeValidation))
	})
	t.Run("Should match any default field", func(t *testing.T) {
		svc, _ := newTestService(t)
		_, err := svc.CreateProject(ctx, &core.CreateProjectInput{
			Name: "API Gateway", Description: "routing layer",
		})
		require.NoError(t, err)
		_, err = svc.CreateProject(ctx, &core.CreateProjectInput{
			Name: "Billing", Description: "the api surface for invoices",
		})
		require.NoError(t, err)
		_, err = svc.CreateProject(ctx, &core.CreateProjectInput{
			Name: "Docs", Description: "handbook", Tags: []string{"api-platform"},
		})
		require.NoError(t, err)
		_, err = svc.CreateProject(ctx, &core.CreateProjectInput{
			Name: "Mobile", Description: "client app",
		})
		require.NoError(t, err)

		got, err := svc.SearchProjects(ctx, "api", nil)
		require.NoError(t, err)
		assert.Len(t, got, 3)
	})
}

func TestSearchTasks(t *testing.T) {
	ctx := context.Background()
	t.Run("Should not match assignee outside the selected fields", func(t *testing.T) {
		svc, _ := newTestService(t)
		p := mustCreateProject(t, svc, "Rollout")
		_, err := svc.CreateTask(ctx, &core.CreateTaskInput{
			ProjectID: p.ID, Title: "deploy", Description: "ship it", Assignee: "deploy-bot",
		})
		require.NoError(t, err)
		_, err = svc.CreateTask(ctx, &core.CreateTaskInput{
			ProjectID: p.ID, Title: "review", Description: "code review", Assignee: "alice",
		})
		require.NoError(t, err)

		got, err := svc.SearchTasks(ctx, "deploy", "", nil)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "deploy", got[0].Title)

		got, err = svc.SearchTasks(ctx, "deploy", "", []core.TaskSearchField{core.SearchTaskAssignee})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "deploy-bot", got[0].Assignee)
	})
	t.Run("Should scope search to a project when given", func(t *testing.T) {
		svc, _ := newTestService(t)
		p1 := mustCreateProject(t, svc, "One")
		p2 := mustCreateProject(t, svc, "Two")
		mustCreateTask(t, svc, p1.ID, "deploy staging", 0)
		mustCreateTask(t, svc, p2.ID, "deploy production", 0)

		got, err := svc.SearchTasks(ctx, "deploy", p1.ID, nil)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "deploy staging", got[0].Title)
	})
	t.Run("Should reject an explicitly empty field set", func(t *testing.T) {
		svc, _ := newTestService(t)
		_, err := svc.SearchTasks(ctx, "x", "", []core.TaskSearchField{})
		assert.True(t, core.HasCode(err, core.ErrorCodeValidation))
	})
}
