package graphql

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/graphql-go/handler"
	"github.com/taskdeck/taskdeck/engine/tracker"
	"github.com/taskdeck/taskdeck/pkg/logger"
)

// Server serves the query adapter over HTTP with GraphiQL enabled.
type Server struct {
	httpServer *http.Server
}

// NewServer builds the schema over the data service and binds it to
// host:port.
func NewServer(service tracker.Service, host string, port int) (*Server, error) {
	schema, err := NewSchema(service)
	if err != nil {
		return nil, fmt.Errorf("failed to build schema: %w", err)
	}

	h := handler.New(&handler.Config{
		Schema:   &schema,
		Pretty:   true,
		GraphiQL: true,
	})

	mux := http.NewServeMux()
	mux.Handle("/graphql", h)

	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf("%s:%d", host, port),
			Handler:           mux,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}, nil
}

// Start serves until the listener fails or Shutdown is called.
func (s *Server) Start() error {
	logger.Info("starting GraphQL server", "addr", s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("graphql server failed: %w", err)
	}
	return nil
}

// Shutdown drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	logger.Info("stopping GraphQL server")
	return s.httpServer.Shutdown(ctx)
}
