package tracker

import (
	"context"

	"github.com/taskdeck/taskdeck/engine/core"
)

// Repository is the storage port of the data service. Implementations talk
// to the backing store with parameterized statements; lookups return
// (nil, nil) when the row does not exist. Every method acquires and
// releases its own connection scope.
type Repository interface {
	ListProjects(ctx context.Context, filter *core.ProjectFilter) ([]core.Project, error)
	GetProject(ctx context.Context, id core.ID) (*core.Project, error)
	InsertProject(ctx context.Context, p *core.Project) error
	UpdateProject(ctx context.Context, p *core.Project) error
	DeleteProject(ctx context.Context, id core.ID) error
	SearchProjects(ctx context.Context, text string, fields []core.ProjectSearchField) ([]core.Project, error)

	ListTasks(ctx context.Context, filter *core.TaskFilter) ([]core.Task, error)
	GetTask(ctx context.Context, id, projectID core.ID) (*core.Task, error)
	InsertTask(ctx context.Context, t *core.Task) error
	UpdateTask(ctx context.Context, t *core.Task) error
	DeleteTask(ctx context.Context, id, projectID core.ID) error
	SearchTasks(ctx context.Context, text string, projectID core.ID, fields []core.TaskSearchField) ([]core.Task, error)
	CountTasks(ctx context.Context, projectID core.ID) (int, error)

	// WithTx runs fn against a repository scoped to a single transaction,
	// committing on nil and rolling back on error. Multi-step operations use
	// it to close read-then-write race windows.
	WithTx(ctx context.Context, fn func(Repository) error) error

	// Ping verifies backend connectivity.
	Ping(ctx context.Context) error
}

// Service is the data access and aggregation boundary consumed by both the
// tool adapter and the query adapter. Methods take and return only plain
// value types and domain entities; failures carry a human-readable message
// and one of the core error codes.
type Service interface {
	ListProjects(ctx context.Context, filter *core.ProjectFilter) ([]core.Project, error)
	GetProject(ctx context.Context, id core.ID) (*core.Project, error)
	GetProjectWithTasks(ctx context.Context, id core.ID) (*core.ProjectWithTasks, error)
	CreateProject(ctx context.Context, input *core.CreateProjectInput) (*core.Project, error)
	UpdateProject(ctx context.Context, id core.ID, patch *core.ProjectPatch) (*core.Project, error)
	DeleteProject(ctx context.Context, id core.ID) (*core.ProjectDeletion, error)
	RecalculateProgress(ctx context.Context, id core.ID) (*core.Project, error)
	SearchProjects(ctx context.Context, text string, fields []core.ProjectSearchField) ([]core.Project, error)

	ListTasks(ctx context.Context, filter *core.TaskFilter) ([]core.Task, error)
	GetTask(ctx context.Context, id, projectID core.ID) (*core.Task, error)
	CreateTask(ctx context.Context, input *core.CreateTaskInput) (*core.Task, error)
	UpdateTask(ctx context.Context, id, projectID core.ID, patch *core.TaskPatch) (*core.Task, error)
	DeleteTask(ctx context.Context, id, projectID core.ID) (*core.TaskDeletion, error)
	SearchTasks(ctx context.Context, text string, projectID core.ID, fields []core.TaskSearchField) ([]core.Task, error)

	GlobalStats(ctx context.Context) (*core.GlobalStats, error)
	ProjectStats(ctx context.Context, id core.ID) (*core.ProjectStats, error)
}
