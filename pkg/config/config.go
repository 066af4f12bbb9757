package config

import (
	"fmt"
	"os"

	"github.com/spf13/viper"
)

const (
	defaultConfigType = "yaml"

	defaultDatabaseHost = "localhost"
	defaultDatabasePort = 5432
	defaultDatabaseName = "project_management"
	defaultDatabaseUser = "taskdeck"
	defaultDatabasePass = "taskdeck"

	defaultGraphQLHost = "localhost"
	defaultGraphQLPort = 4000
)

// Config represents the application configuration. It is an explicit value
// passed to constructors; no package keeps ambient global state.
type Config struct {
	Database DatabaseConfig `mapstructure:"database"`
	GraphQL  GraphQLConfig  `mapstructure:"graphql"`
	Debug    bool           `mapstructure:"debug"`
}

// DatabaseConfig represents storage backend connection configuration.
type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Name     string `mapstructure:"name"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	SSLMode  string `mapstructure:"sslmode"`
}

// GraphQLConfig represents the query-language HTTP surface configuration.
type GraphQLConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

// DefaultConfig returns the documented default configuration.
func DefaultConfig() *Config {
	return &Config{
		Database: DatabaseConfig{
			Host:     defaultDatabaseHost,
			Port:     defaultDatabasePort,
			Name:     defaultDatabaseName,
			User:     defaultDatabaseUser,
			Password: defaultDatabasePass,
			SSLMode:  "disable",
		},
		GraphQL: GraphQLConfig{
			Host: defaultGraphQLHost,
			Port: defaultGraphQLPort,
		},
	}
}

// Load loads configuration from a file, layered over the defaults and under
// any TASKDECK_* environment variables already bound in viper. A missing
// file is not an error; the defaults apply.
func Load(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	if configPath == "" {
		configPath = "taskdeck.yaml"
	}
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		applyViperOverrides(cfg)
		if err := cfg.Validate(); err != nil {
			return nil, fmt.Errorf("invalid config: %w", err)
		}
		return cfg, nil
	}

	viper.SetConfigFile(configPath)
	viper.SetConfigType(defaultConfigType)

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	applyViperOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// applyViperOverrides layers bound environment variables over cfg.
func applyViperOverrides(cfg *Config) {
	if viper.IsSet("database.host") {
		cfg.Database.Host = viper.GetString("database.host")
	}
	if viper.IsSet("database.port") {
		cfg.Database.Port = viper.GetInt("database.port")
	}
	if viper.IsSet("database.name") {
		cfg.Database.Name = viper.GetString("database.name")
	}
	if viper.IsSet("database.user") {
		cfg.Database.User = viper.GetString("database.user")
	}
	if viper.IsSet("database.password") {
		cfg.Database.Password = viper.GetString("database.password")
	}
	if viper.IsSet("database.sslmode") {
		cfg.Database.SSLMode = viper.GetString("database.sslmode")
	}
	if viper.IsSet("graphql.host") {
		cfg.GraphQL.Host = viper.GetString("graphql.host")
	}
	if viper.IsSet("graphql.port") {
		cfg.GraphQL.Port = viper.GetInt("graphql.port")
	}
	if viper.IsSet("debug") {
		cfg.Debug = viper.GetBool("debug")
	}
}

// Validate ensures the configuration is valid.
func (c *Config) Validate() error {
	if c.Database.Host == "" {
		return fmt.Errorf("database.host is required")
	}
	if c.Database.Port <= 0 || c.Database.Port > 65535 {
		return fmt.Errorf("database.port must be between 1 and 65535")
	}
	if c.Database.Name == "" {
		return fmt.Errorf("database.name is required")
	}
	if c.Database.User == "" {
		return fmt.Errorf("database.user is required")
	}
	if c.GraphQL.Port <= 0 || c.GraphQL.Port > 65535 {
		return fmt.Errorf("graphql.port must be between 1 and 65535")
	}
	return nil
}
