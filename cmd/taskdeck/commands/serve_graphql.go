package commands

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/taskdeck/taskdeck/engine/graphql"
	"github.com/taskdeck/taskdeck/pkg/config"
	"github.com/taskdeck/taskdeck/pkg/logger"
)

var (
	graphqlHost string
	graphqlPort int
)

var serveGraphQLCmd = &cobra.Command{
	Use:   "serve-graphql",
	Short: "Start the GraphQL HTTP server",
	Long: `Start the GraphQL server over HTTP with GraphiQL enabled. The schema
exposes queries over projects, tasks, search, and statistics, plus
mutations mirroring the MCP tool catalog.`,
	Example: `  # Start on the configured address (default localhost:4000)
  taskdeck serve-graphql

  # Override the bind address
  taskdeck serve-graphql --host 0.0.0.0 --port 8080`,
	RunE: runServeGraphQL,
}

var initServeGraphQLOnce sync.Once

// InitServeGraphQLCommand registers the serve-graphql command
func InitServeGraphQLCommand() {
	initServeGraphQLOnce.Do(func() {
		serveGraphQLCmd.Flags().StringVar(&graphqlHost, "host", "", "host to bind (overrides config)")
		serveGraphQLCmd.Flags().IntVar(&graphqlPort, "port", 0, "port to bind (overrides config)")
		rootCmd.AddCommand(serveGraphQLCmd)
	})
}

func runServeGraphQL(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	service, _, cfg, cleanup, err := setupService(ctx)
	if err != nil {
		return err
	}
	defer cleanup()
	host, port := bindAddress(cfg)

	server, err := graphql.NewServer(service, host, port)
	if err != nil {
		return err
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-sigCh:
		logger.Info("shutting down", "signal", sig.String())
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	}
}

func bindAddress(cfg *config.Config) (string, int) {
	host, port := cfg.GraphQL.Host, cfg.GraphQL.Port
	if graphqlHost != "" {
		host = graphqlHost
	}
	if graphqlPort != 0 {
		port = graphqlPort
	}
	return host, port
}
