package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	t.Run("Should carry documented defaults", func(t *testing.T) {
		cfg := DefaultConfig()
		assert.Equal(t, "localhost", cfg.Database.Host)
		assert.Equal(t, 5432, cfg.Database.Port)
		assert.Equal(t, "project_management", cfg.Database.Name)
		assert.Equal(t, "disable", cfg.Database.SSLMode)
		assert.Equal(t, "localhost", cfg.GraphQL.Host)
		assert.Equal(t, 4000, cfg.GraphQL.Port)
		assert.False(t, cfg.Debug)
	})
	t.Run("Should validate out of the box", func(t *testing.T) {
		require.NoError(t, DefaultConfig().Validate())
	})
}

func TestLoad(t *testing.T) {
	t.Run("Should fall back to defaults when the file is missing", func(t *testing.T) {
		cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
		require.NoError(t, err)
		assert.Equal(t, DefaultConfig().Database.Host, cfg.Database.Host)
	})
	t.Run("Should validate overrides when the file is missing", func(t *testing.T) {
		viper.Set("database.port", 0)
		t.Cleanup(viper.Reset)
		_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.Error(t, err)
	})
	t.Run("Should layer file values over defaults", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "taskdeck.yaml")
		require.NoError(t, os.WriteFile(path, []byte(
			"database:\n  host: db.internal\n  port: 6432\ngraphql:\n  port: 8080\n",
		), 0o644))

		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, "db.internal", cfg.Database.Host)
		assert.Equal(t, 6432, cfg.Database.Port)
		assert.Equal(t, 8080, cfg.GraphQL.Port)
		// Untouched keys keep their defaults.
		assert.Equal(t, "project_management", cfg.Database.Name)
	})
	t.Run("Should reject malformed files", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "taskdeck.yaml")
		require.NoError(t, os.WriteFile(path, []byte("database: [broken"), 0o644))
		_, err := Load(path)
		assert.Error(t, err)
	})
}

func TestValidate(t *testing.T) {
	t.Run("Should reject missing host", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Database.Host = ""
		assert.Error(t, cfg.Validate())
	})
	t.Run("Should reject out-of-range port", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Database.Port = 70000
		assert.Error(t, cfg.Validate())
	})
	t.Run("Should reject missing database name", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Database.Name = ""
		assert.Error(t, cfg.Validate())
	})
}
