package commands

import (
	"context"
	"fmt"
	"sync"

	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the database schema",
	Long: `Create the projects and tasks tables, constraints, and indexes in the
configured Postgres database. The statements are idempotent, so running
init against an already initialized database is safe.`,
	Example: `  # Initialize against the configured database
  taskdeck init

  # Initialize a different database
  TASKDECK_DATABASE_NAME=staging taskdeck init`,
	RunE: runInit,
}

var initInitOnce sync.Once

// InitInitCommand registers the init command
func InitInitCommand() {
	initInitOnce.Do(func() {
		rootCmd.AddCommand(initCmd)
	})
}

func runInit(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	_, repo, _, cleanup, err := setupService(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	if err := repo.InitSchema(ctx); err != nil {
		return err
	}
	fmt.Println("Database schema initialized successfully")
	return nil
}
