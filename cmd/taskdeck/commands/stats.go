package commands

import (
	"context"
	"fmt"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/taskdeck/taskdeck/engine/core"
)

var (
	statsHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("69"))
	statsLabelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	statsValueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("82"))
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print global project and task statistics",
	Long: `Compute and print the system-wide statistics snapshot: totals, status and
priority breakdowns, average progress, and unique assignee/owner counts.`,
	Example: `  # Show global statistics
  taskdeck stats`,
	RunE: runStats,
}

var initStatsOnce sync.Once

// InitStatsCommand registers the stats command
func InitStatsCommand() {
	initStatsOnce.Do(func() {
		rootCmd.AddCommand(statsCmd)
	})
}

func runStats(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	service, _, _, cleanup, err := setupService(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	stats, err := service.GlobalStats(ctx)
	if err != nil {
		return err
	}
	fmt.Println(renderGlobalStats(stats))
	return nil
}

func renderGlobalStats(stats *core.GlobalStats) string {
	out := statsHeaderStyle.Render("TaskDeck Statistics") + "\n\n"
	out += statsLine("Projects", stats.TotalProjects)
	out += statsLine("Tasks", stats.TotalTasks)
	out += "\n" + statsHeaderStyle.Render("Projects by status") + "\n"
	out += statsLine("  planning", stats.ProjectsByStatus.Planning)
	out += statsLine("  active", stats.ProjectsByStatus.Active)
	out += statsLine("  on_hold", stats.ProjectsByStatus.OnHold)
	out += statsLine("  completed", stats.ProjectsByStatus.Completed)
	out += statsLine("  cancelled", stats.ProjectsByStatus.Cancelled)
	out += "\n" + statsHeaderStyle.Render("Tasks by status") + "\n"
	out += statsLine("  not_started", stats.TasksByStatus.NotStarted)
	out += statsLine("  in_progress", stats.TasksByStatus.InProgress)
	out += statsLine("  completed", stats.TasksByStatus.Completed)
	out += statsLine("  blocked", stats.TasksByStatus.Blocked)
	out += "\n" + statsHeaderStyle.Render("Tasks by priority") + "\n"
	out += statsLine("  low", stats.TasksByPriority.Low)
	out += statsLine("  medium", stats.TasksByPriority.Medium)
	out += statsLine("  high", stats.TasksByPriority.High)
	out += statsLine("  critical", stats.TasksByPriority.Critical)
	out += "\n"
	out += statsFloatLine("Avg project progress", stats.AverageProjectProgress)
	out += statsFloatLine("Avg task progress", stats.AverageTaskProgress)
	out += statsLine("Unique assignees", stats.UniqueAssignees)
	out += statsLine("Unique owners", stats.UniqueOwners)
	return out
}

func statsLine(label string, value int) string {
	return fmt.Sprintf("%s %s\n",
		statsLabelStyle.Render(label+":"),
		statsValueStyle.Render(fmt.Sprintf("%d", value)))
}

func statsFloatLine(label string, value float64) string {
	return fmt.Sprintf("%s %s\n",
		statsLabelStyle.Render(label+":"),
		statsValueStyle.Render(fmt.Sprintf("%.1f%%", value)))
}
