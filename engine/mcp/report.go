package mcp

import (
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/taskdeck/taskdeck/engine/core"
)

// jsonResult renders a payload as an indented JSON tool result.
func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to encode result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

// Mutation confirmations are short sentences rather than JSON so a calling
// agent can echo them verbatim.

func reportProjectCreated(p *core.Project) string {
	return fmt.Sprintf("Project %q created successfully with ID: %s", p.Name, p.ID)
}

func reportProjectUpdated(p *core.Project) string {
	return fmt.Sprintf("Project %q updated successfully", p.Name)
}

func reportProjectDeleted(d *core.ProjectDeletion) string {
	return fmt.Sprintf("Project %q and all %d tasks deleted successfully", d.Name, d.TaskCount)
}

func reportProgressUpdated(p *core.Project) string {
	return fmt.Sprintf("Project %q progress updated to %d%%", p.Name, p.Progress)
}

func reportTaskCreated(t *core.Task) string {
	return fmt.Sprintf("Task %q created successfully with ID: %s", t.Title, t.ID)
}

func reportTaskUpdated(t *core.Task) string {
	return fmt.Sprintf("Task %q updated successfully", t.Title)
}

func reportTaskDeleted(d *core.TaskDeletion) string {
	return fmt.Sprintf("Task %q deleted successfully", d.Title)
}
