package infra

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/taskdeck/taskdeck/engine/core"
	"github.com/taskdeck/taskdeck/engine/query"
	"github.com/taskdeck/taskdeck/engine/tracker"
	pkgerrors "github.com/taskdeck/taskdeck/pkg/errors"
	"github.com/taskdeck/taskdeck/pkg/logger"
)

// PostgresConfig holds Postgres connection configuration.
type PostgresConfig struct {
	Host     string
	Port     int
	Name     string
	User     string
	Password string
	SSLMode  string
}

// DSN renders the pool connection string.
func (c *PostgresConfig) DSN() string {
	sslmode := c.SSLMode
	if sslmode == "" {
		sslmode = "disable"
	}
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		url.QueryEscape(c.User),
		url.QueryEscape(c.Password),
		c.Host,
		c.Port,
		c.Name,
		sslmode,
	)
}

// querier is the subset of pgx shared by a pool and a transaction, so the
// same statement code serves both scopes.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PostgresRepository implements the tracker.Repository interface with
// parameterized statements over a pgx connection pool.
type PostgresRepository struct {
	pool *pgxpool.Pool
	q    querier
}

// NewPostgresRepository creates a repository and verifies connectivity.
// The startup ping is the only retried call anywhere; data operations
// surface a single backend failure directly.
func NewPostgresRepository(ctx context.Context, config *PostgresConfig) (*PostgresRepository, error) {
	if config == nil {
		return nil, fmt.Errorf("postgres config is required")
	}
	pool, err := pgxpool.New(ctx, config.DSN())
	if err != nil {
		return nil, core.Unavailable(fmt.Errorf("failed to create connection pool: %w", err))
	}
	if err := pkgerrors.WithRetry(ctx, "postgres_connect", nil, func() error {
		return pool.Ping(ctx)
	}); err != nil {
		pool.Close()
		return nil, err
	}

	logger.Info("connected to postgres", "host", config.Host, "database", config.Name)

	return &PostgresRepository{pool: pool, q: pool}, nil
}

// Close releases the connection pool.
func (r *PostgresRepository) Close() {
	if r.pool != nil {
		r.pool.Close()
	}
}

// Ping verifies backend connectivity.
func (r *PostgresRepository) Ping(ctx context.Context) error {
	if r.pool != nil {
		if err := r.pool.Ping(ctx); err != nil {
			return core.Unavailable(err)
		}
		return nil
	}
	if _, err := r.q.Exec(ctx, "SELECT 1"); err != nil {
		return core.Unavailable(err)
	}
	return nil
}

// WithTx runs fn against a repository scoped to one transaction. Nested
// calls reuse the enclosing transaction.
func (r *PostgresRepository) WithTx(ctx context.Context, fn func(tracker.Repository) error) error {
	if r.pool == nil {
		return fn(r)
	}
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return core.Unavailable(fmt.Errorf("failed to begin transaction: %w", err))
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(&PostgresRepository{q: tx}); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// -----
// Projects
// -----

const projectColumns = "id, name, description, status, start_date, end_date, progress, owner, tags, created_at, updated_at"

func (r *PostgresRepository) ListProjects(
	ctx context.Context,
	filter *core.ProjectFilter,
) ([]core.Project, error) {
	b := query.NewAnd()
	if filter != nil {
		if filter.Status != "" {
			b.Eq("status", string(filter.Status))
		}
		if filter.Owner != "" {
			b.Eq("owner", filter.Owner)
		}
		if len(filter.Tags) > 0 {
			b.Overlaps("tags", filter.Tags)
		}
	}
	where, args := b.Where(1)
	sql := "SELECT " + projectColumns + " FROM projects" + where + " ORDER BY updated_at DESC"

	rows, err := r.q.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	defer rows.Close()
	return collectProjects(rows)
}

func (r *PostgresRepository) GetProject(ctx context.Context, id core.ID) (*core.Project, error) {
	row := r.q.QueryRow(ctx, "SELECT "+projectColumns+" FROM projects WHERE id = $1", string(id))
	p, err := scanProject(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get project: %w", err)
	}
	return p, nil
}

func (r *PostgresRepository) InsertProject(ctx context.Context, p *core.Project) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO projects (id, name, description, status, start_date, end_date, progress, owner, tags, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		string(p.ID), p.Name, p.Description, string(p.Status),
		p.StartDate, p.EndDate, p.Progress, nullIfEmpty(p.Owner), p.Tags,
		p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert project: %w", err)
	}
	return nil
}

func (r *PostgresRepository) UpdateProject(ctx context.Context, p *core.Project) error {
	_, err := r.q.Exec(ctx,
		`UPDATE projects
		 SET name = $1, description = $2, status = $3, start_date = $4, end_date = $5, progress = $6, owner = $7, tags = $8, updated_at = $9
		 WHERE id = $10`,
		p.Name, p.Description, string(p.Status), p.StartDate, p.EndDate,
		p.Progress, nullIfEmpty(p.Owner), p.Tags, p.UpdatedAt, string(p.ID),
	)
	if err != nil {
		return fmt.Errorf("failed to update project: %w", err)
	}
	return nil
}

// DeleteProject removes the project row; the tasks FK cascades, so the
// project and its tasks disappear as one unit.
func (r *PostgresRepository) DeleteProject(ctx context.Context, id core.ID) error {
	if _, err := r.q.Exec(ctx, "DELETE FROM projects WHERE id = $1", string(id)); err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}
	return nil
}

func (r *PostgresRepository) SearchProjects(
	ctx context.Context,
	text string,
	fields []core.ProjectSearchField,
) ([]core.Project, error) {
	b := query.NewOr()
	for _, f := range fields {
		switch f {
		case core.SearchProjectName:
			b.Contains("name", text)
		case core.SearchProjectDescription:
			b.Contains("description", text)
		case core.SearchProjectTags:
			b.AnyContains("tags", text)
		}
	}
	if b.Empty() {
		return nil, core.Invalidf("at least one search field must be selected")
	}
	where, args := b.Where(1)
	sql := "SELECT " + projectColumns + " FROM projects" + where + " ORDER BY updated_at DESC"

	rows, err := r.q.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to search projects: %w", err)
	}
	defer rows.Close()
	return collectProjects(rows)
}

// -----
// Tasks
// -----

const taskColumns = "id, project_id, title, description, status, priority, assignee, due_date, progress, dependencies, created_at, updated_at"

func (r *PostgresRepository) ListTasks(ctx context.Context, filter *core.TaskFilter) ([]core.Task, error) {
	b := query.NewAnd()
	if filter != nil {
		if filter.ProjectID != "" {
			b.Eq("project_id", string(filter.ProjectID))
		}
		if filter.Status != "" {
			b.Eq("status", string(filter.Status))
		}
		if filter.Priority != "" {
			b.Eq("priority", string(filter.Priority))
		}
		if filter.Assignee != "" {
			b.Eq("assignee", filter.Assignee)
		}
	}
	where, args := b.Where(1)
	sql := "SELECT " + taskColumns + " FROM tasks" + where + " ORDER BY created_at"

	rows, err := r.q.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	defer rows.Close()
	return collectTasks(rows)
}

func (r *PostgresRepository) GetTask(ctx context.Context, id, projectID core.ID) (*core.Task, error) {
	row := r.q.QueryRow(ctx,
		"SELECT "+taskColumns+" FROM tasks WHERE id = $1 AND project_id = $2",
		string(id), string(projectID),
	)
	t, err := scanTask(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get task: %w", err)
	}
	return t, nil
}

func (r *PostgresRepository) InsertTask(ctx context.Context, t *core.Task) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO tasks (id, project_id, title, description, status, priority, assignee, due_date, progress, dependencies, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		string(t.ID), string(t.ProjectID), t.Title, t.Description,
		string(t.Status), string(t.Priority), nullIfEmpty(t.Assignee), t.DueDate,
		t.Progress, t.Dependencies, t.CreatedAt, t.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert task: %w", err)
	}
	return nil
}

func (r *PostgresRepository) UpdateTask(ctx context.Context, t *core.Task) error {
	_, err := r.q.Exec(ctx,
		`UPDATE tasks
		 SET title = $1, description = $2, status = $3, priority = $4, assignee = $5, due_date = $6, progress = $7, dependencies = $8, updated_at = $9
		 WHERE id = $10 AND project_id = $11`,
		t.Title, t.Description, string(t.Status), string(t.Priority),
		nullIfEmpty(t.Assignee), t.DueDate, t.Progress, t.Dependencies,
		t.UpdatedAt, string(t.ID), string(t.ProjectID),
	)
	if err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}
	return nil
}

func (r *PostgresRepository) DeleteTask(ctx context.Context, id, projectID core.ID) error {
	_, err := r.q.Exec(ctx,
		"DELETE FROM tasks WHERE id = $1 AND project_id = $2",
		string(id), string(projectID),
	)
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	return nil
}

func (r *PostgresRepository) SearchTasks(
	ctx context.Context,
	text string,
	projectID core.ID,
	fields []core.TaskSearchField,
) ([]core.Task, error) {
	b := query.NewOr()
	for _, f := range fields {
		switch f {
		case core.SearchTaskTitle:
			b.Contains("title", text)
		case core.SearchTaskDescription:
			b.Contains("description", text)
		case core.SearchTaskAssignee:
			b.Contains("assignee", text)
		}
	}
	if b.Empty() {
		return nil, core.Invalidf("at least one search field must be selected")
	}
	clause, args := b.Clause(1)
	sql := "SELECT " + taskColumns + " FROM tasks WHERE (" + clause + ")"
	if projectID != "" {
		sql += fmt.Sprintf(" AND project_id = $%d", len(args)+1)
		args = append(args, string(projectID))
	}
	sql += " ORDER BY created_at"

	rows, err := r.q.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to search tasks: %w", err)
	}
	defer rows.Close()
	return collectTasks(rows)
}

func (r *PostgresRepository) CountTasks(ctx context.Context, projectID core.ID) (int, error) {
	var count int
	err := r.q.QueryRow(ctx, "SELECT COUNT(*) FROM tasks WHERE project_id = $1", string(projectID)).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count tasks: %w", err)
	}
	return count, nil
}

// -----
// Row Mapping
// -----

type rowScanner interface {
	Scan(dest ...any) error
}

// scanProject maps a storage row to the domain entity. The mapping is
// total for every row shape the service's own write paths produce: null
// optional columns become the domain absent value and null arrays become
// empty sequences.
func scanProject(row rowScanner) (*core.Project, error) {
	var (
		id, name, description, status string
		start, end                    *time.Time
		progress                      int
		owner                         *string
		tags                          []string
		createdAt, updatedAt          time.Time
	)
	err := row.Scan(
		&id, &name, &description, &status,
		&start, &end, &progress, &owner, &tags,
		&createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}
	p := &core.Project{
		ID:          core.ID(id),
		Name:        name,
		Description: description,
		Status:      core.ProjectStatus(status),
		StartDate:   start,
		EndDate:     end,
		Progress:    progress,
		Tags:        tags,
		CreatedAt:   createdAt,
		UpdatedAt:   updatedAt,
	}
	if owner != nil {
		p.Owner = *owner
	}
	if p.Tags == nil {
		p.Tags = []string{}
	}
	return p, nil
}

func scanTask(row rowScanner) (*core.Task, error) {
	var (
		id, projectID, title, description, status, priority string
		assignee                                            *string
		due                                                 *time.Time
		progress                                            int
		dependencies                                        []string
		createdAt, updatedAt                                time.Time
	)
	err := row.Scan(
		&id, &projectID, &title, &description, &status, &priority,
		&assignee, &due, &progress, &dependencies,
		&createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}
	t := &core.Task{
		ID:           core.ID(id),
		ProjectID:    core.ID(projectID),
		Title:        title,
		Description:  description,
		Status:       core.TaskStatus(status),
		Priority:     core.TaskPriority(priority),
		DueDate:      due,
		Progress:     progress,
		Dependencies: dependencies,
		CreatedAt:    createdAt,
		UpdatedAt:    updatedAt,
	}
	if assignee != nil {
		t.Assignee = *assignee
	}
	if t.Dependencies == nil {
		t.Dependencies = []string{}
	}
	return t, nil
}

func collectProjects(rows pgx.Rows) ([]core.Project, error) {
	out := make([]core.Project, 0)
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan project row: %w", err)
		}
		out = append(out, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read project rows: %w", err)
	}
	return out, nil
}

func collectTasks(rows pgx.Rows) ([]core.Task, error) {
	out := make([]core.Task, 0)
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan task row: %w", err)
		}
		out = append(out, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read task rows: %w", err)
	}
	return out, nil
}

func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
