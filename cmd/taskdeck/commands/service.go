package commands

import (
	"context"

	"github.com/taskdeck/taskdeck/engine/infra"
	"github.com/taskdeck/taskdeck/engine/tracker"
	"github.com/taskdeck/taskdeck/pkg/config"
	"github.com/taskdeck/taskdeck/pkg/logger"
)

// setupService loads configuration once, connects to Postgres, and builds
// the data service. The caller must call the returned cleanup function.
func setupService(ctx context.Context) (tracker.Service, *infra.PostgresRepository, *config.Config, func(), error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, nil, nil, nil, err
	}

	logger.InitLogger()
	logger.SetDebug(cfg.Debug)

	repo, err := infra.NewPostgresRepository(ctx, postgresConfig(cfg))
	if err != nil {
		return nil, nil, nil, nil, err
	}

	return tracker.NewService(repo), repo, cfg, repo.Close, nil
}

func postgresConfig(cfg *config.Config) *infra.PostgresConfig {
	return &infra.PostgresConfig{
		Host:     cfg.Database.Host,
		Port:     cfg.Database.Port,
		Name:     cfg.Database.Name,
		User:     cfg.Database.User,
		Password: cfg.Database.Password,
		SSLMode:  cfg.Database.SSLMode,
	}
}
