package infra

import (
	"context"
	"fmt"

	"github.com/taskdeck/taskdeck/pkg/logger"
)

// schemaDDL is the relational shape the repository assumes. Statements are
// idempotent; `taskdeck init` applies them. This is bootstrap only, not
// migration tooling.
var schemaDDL = []string{
	`CREATE TABLE IF NOT EXISTS projects (
		id          TEXT PRIMARY KEY,
		name        TEXT NOT NULL,
		description TEXT NOT NULL,
		status      TEXT NOT NULL DEFAULT 'planning',
		start_date  TIMESTAMPTZ,
		end_date    TIMESTAMPTZ,
		progress    INTEGER NOT NULL DEFAULT 0,
		owner       TEXT,
		tags        TEXT[] NOT NULL DEFAULT '{}',
		created_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at  TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS tasks (
		id           TEXT PRIMARY KEY,
		project_id   TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
		title        TEXT NOT NULL,
		description  TEXT NOT NULL,
		status       TEXT NOT NULL DEFAULT 'not_started',
		priority     TEXT NOT NULL DEFAULT 'medium',
		assignee     TEXT,
		due_date     TIMESTAMPTZ,
		progress     INTEGER NOT NULL DEFAULT 0,
		dependencies TEXT[] NOT NULL DEFAULT '{}',
		created_at   TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at   TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_tasks_project_id ON tasks (project_id)`,
	`CREATE INDEX IF NOT EXISTS idx_projects_updated_at ON projects (updated_at DESC)`,
}

// InitSchema creates the projects and tasks tables if they do not exist.
func (r *PostgresRepository) InitSchema(ctx context.Context) error {
	for _, stmt := range schemaDDL {
		if _, err := r.q.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply schema statement: %w", err)
		}
	}
	logger.Info("schema initialized")
	return nil
}
