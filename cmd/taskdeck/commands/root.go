package commands

import (
	"strings"
	"sync"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "taskdeck",
	Short: "Project and task tracking over Postgres with MCP and GraphQL front ends",
	Long: `TaskDeck stores projects and their tasks in Postgres and exposes the same
data service through two adapters: a set of MCP tools for LLM applications
(stdio transport) and a GraphQL API for programmatic queries.

Example workflow:
  1. Initialize the schema:  taskdeck init
  2. Serve MCP tools:        taskdeck serve-mcp
  3. Serve GraphQL:          taskdeck serve-graphql
  4. Inspect the data:       taskdeck stats`,
}

var (
	initRootOnce sync.Once
	cfgFile      string
)

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	InitConfig()

	InitInitCommand()
	InitServeMCPCommand()
	InitServeGraphQLCommand()
	InitStatsCommand()
	InitVersionCommand()

	cobra.CheckErr(rootCmd.Execute())
}

// InitConfig initializes the configuration
func InitConfig() {
	initRootOnce.Do(func() {
		rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./taskdeck.yaml)")
		rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")
		cobra.OnInitialize(initConfigEnv)
	})
}

func initConfigEnv() {
	viper.SetEnvPrefix("TASKDECK")
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
}
