package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/taskdeck/taskdeck/engine/core"
	"github.com/taskdeck/taskdeck/engine/tracker"
	pkgerrors "github.com/taskdeck/taskdeck/pkg/errors"
	"github.com/taskdeck/taskdeck/pkg/logger"
)

const (
	serverName    = "taskdeck"
	serverVersion = "1.0.0"
)

// Server exposes the data service as a fixed catalog of MCP tools over the
// stdio transport. Every raised error is converted into an error-text tool
// result at this boundary so malformed input never faults the tool loop.
type Server struct {
	service   tracker.Service
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP server instance bound to the data service.
func NewServer(service tracker.Service) *Server {
	s := &Server{
		service: service,
		mcpServer: server.NewMCPServer(
			serverName,
			serverVersion,
			server.WithToolCapabilities(false), // Static tool set
		),
	}
	s.registerTools()
	return s
}

// Start serves MCP over stdio until the transport closes.
func (s *Server) Start(_ context.Context) error {
	logger.Info("starting MCP server on stdio")
	return server.ServeStdio(s.mcpServer)
}

func (s *Server) registerTools() {
	s.registerProjectTools()
	s.registerTaskTools()
	s.registerSearchAndStatsTools()
}

// addTool wires a handler with panic recovery at the adapter boundary.
func (s *Server) addTool(tool mcp.Tool, handler server.ToolHandlerFunc) {
	s.mcpServer.AddTool(tool, func(ctx context.Context, req mcp.CallToolRequest) (res *mcp.CallToolResult, err error) {
		recErr := pkgerrors.WithRecover(tool.Name, func() error {
			res, err = handler(ctx, req)
			return nil
		})
		if recErr != nil {
			return mcp.NewToolResultError(recErr.Error()), nil
		}
		return res, err
	})
}

func (s *Server) registerProjectTools() {
	listProjectsTool := mcp.NewTool(
		"list_projects",
		mcp.WithDescription("List all projects, optionally filtered by status, owner, or tags"),
		mcp.WithString("status", mcp.Description("Filter by project status"),
			mcp.Enum(enumValues(core.ProjectStatuses())...)),
		mcp.WithString("owner", mcp.Description("Filter by project owner")),
		mcp.WithArray("tags", mcp.Description("Filter to projects carrying at least one of these tags")),
	)
	s.addTool(listProjectsTool, s.handleListProjects)

	getProjectTool := mcp.NewTool(
		"get_project",
		mcp.WithDescription("Get a project with all of its tasks"),
		mcp.WithString("projectId", mcp.Required(), mcp.Description("Project ID")),
	)
	s.addTool(getProjectTool, s.handleGetProject)

	createProjectTool := mcp.NewTool(
		"create_project",
		mcp.WithDescription("Create a new project"),
		mcp.WithString("name", mcp.Required(), mcp.Description("Project name")),
		mcp.WithString("description", mcp.Required(), mcp.Description("Project description")),
		mcp.WithString("status", mcp.Description("Project status (default: planning)"),
			mcp.Enum(enumValues(core.ProjectStatuses())...)),
		mcp.WithString("startDate", mcp.Description("Start date (RFC 3339 or YYYY-MM-DD)")),
		mcp.WithString("endDate", mcp.Description("End date (RFC 3339 or YYYY-MM-DD)")),
		mcp.WithString("owner", mcp.Description("Project owner")),
		mcp.WithArray("tags", mcp.Description("Project tags")),
	)
	s.addTool(createProjectTool, s.handleCreateProject)

	updateProjectTool := mcp.NewTool(
		"update_project",
		mcp.WithDescription("Update a project; omitted fields keep their stored values"),
		mcp.WithString("projectId", mcp.Required(), mcp.Description("Project ID")),
		mcp.WithString("name", mcp.Description("New project name")),
		mcp.WithString("description", mcp.Description("New project description")),
		mcp.WithString("status", mcp.Description("New project status"),
			mcp.Enum(enumValues(core.ProjectStatuses())...)),
		mcp.WithString("startDate", mcp.Description("New start date; empty string clears it")),
		mcp.WithString("endDate", mcp.Description("New end date; empty string clears it")),
		mcp.WithString("owner", mcp.Description("New owner; empty string clears it")),
		mcp.WithArray("tags", mcp.Description("Replacement tag list")),
	)
	s.addTool(updateProjectTool, s.handleUpdateProject)

	deleteProjectTool := mcp.NewTool(
		"delete_project",
		mcp.WithDescription("Delete a project and all of its tasks"),
		mcp.WithString("projectId", mcp.Required(), mcp.Description("Project ID")),
	)
	s.addTool(deleteProjectTool, s.handleDeleteProject)

	updateProgressTool := mcp.NewTool(
		"update_project_progress",
		mcp.WithDescription("Recalculate project progress from the mean of its tasks' progress"),
		mcp.WithString("projectId", mcp.Required(), mcp.Description("Project ID to update progress for")),
	)
	s.addTool(updateProgressTool, s.handleUpdateProjectProgress)
}

func (s *Server) registerTaskTools() {
	listTasksTool := mcp.NewTool(
		"list_tasks",
		mcp.WithDescription("List tasks, optionally filtered by project, status, priority, or assignee"),
		mcp.WithString("projectId", mcp.Description("Filter by owning project")),
		mcp.WithString("status", mcp.Description("Filter by task status"),
			mcp.Enum(enumValues(core.TaskStatuses())...)),
		mcp.WithString("priority", mcp.Description("Filter by task priority"),
			mcp.Enum(enumValues(core.TaskPriorities())...)),
		mcp.WithString("assignee", mcp.Description("Filter by assignee")),
	)
	s.addTool(listTasksTool, s.handleListTasks)

	getTaskTool := mcp.NewTool(
		"get_task",
		mcp.WithDescription("Get a single task"),
		mcp.WithString("taskId", mcp.Required(), mcp.Description("Task ID")),
		mcp.WithString("projectId", mcp.Required(), mcp.Description("Owning project ID")),
	)
	s.addTool(getTaskTool, s.handleGetTask)

	createTaskTool := mcp.NewTool(
		"create_task",
		mcp.WithDescription("Create a new task in a project"),
		mcp.WithString("projectId", mcp.Required(), mcp.Description("Owning project ID")),
		mcp.WithString("title", mcp.Required(), mcp.Description("Task title")),
		mcp.WithString("description", mcp.Required(), mcp.Description("Task description")),
		mcp.WithString("status", mcp.Description("Task status (default: not_started)"),
			mcp.Enum(enumValues(core.TaskStatuses())...)),
		mcp.WithString("priority", mcp.Description("Task priority (default: medium)"),
			mcp.Enum(enumValues(core.TaskPriorities())...)),
		mcp.WithString("assignee", mcp.Description("Assignee")),
		mcp.WithString("dueDate", mcp.Description("Due date (RFC 3339 or YYYY-MM-DD)")),
		mcp.WithNumber("progress", mcp.Description("Progress 0-100 (default: 0)")),
		mcp.WithArray("dependencies", mcp.Description("IDs of tasks this task depends on")),
	)
	s.addTool(createTaskTool, s.handleCreateTask)

	updateTaskTool := mcp.NewTool(
		"update_task",
		mcp.WithDescription("Update a task; omitted fields keep their stored values"),
		mcp.WithString("taskId", mcp.Required(), mcp.Description("Task ID")),
		mcp.WithString("projectId", mcp.Required(), mcp.Description("Owning project ID")),
		mcp.WithString("title", mcp.Description("New title")),
		mcp.WithString("description", mcp.Description("New description")),
		mcp.WithString("status", mcp.Description("New status"),
			mcp.Enum(enumValues(core.TaskStatuses())...)),
		mcp.WithString("priority", mcp.Description("New priority"),
			mcp.Enum(enumValues(core.TaskPriorities())...)),
		mcp.WithString("assignee", mcp.Description("New assignee; empty string clears it")),
		mcp.WithString("dueDate", mcp.Description("New due date; empty string clears it")),
		mcp.WithNumber("progress", mcp.Description("New progress 0-100")),
		mcp.WithArray("dependencies", mcp.Description("Replacement dependency list")),
	)
	s.addTool(updateTaskTool, s.handleUpdateTask)

	deleteTaskTool := mcp.NewTool(
		"delete_task",
		mcp.WithDescription("Delete a task"),
		mcp.WithString("taskId", mcp.Required(), mcp.Description("Task ID")),
		mcp.WithString("projectId", mcp.Required(), mcp.Description("Owning project ID")),
	)
	s.addTool(deleteTaskTool, s.handleDeleteTask)
}

func (s *Server) registerSearchAndStatsTools() {
	searchProjectsTool := mcp.NewTool(
		"search_projects",
		mcp.WithDescription("Search projects by name, description, or tags"),
		mcp.WithString("query", mcp.Required(), mcp.Description("Search query")),
		mcp.WithArray("searchFields",
			mcp.Description("Fields to search in (default: name, description, tags)")),
	)
	s.addTool(searchProjectsTool, s.handleSearchProjects)

	searchTasksTool := mcp.NewTool(
		"search_tasks",
		mcp.WithDescription("Search tasks by title, description, or assignee"),
		mcp.WithString("query", mcp.Required(), mcp.Description("Search query")),
		mcp.WithString("projectId", mcp.Description("Limit search to specific project (optional)")),
		mcp.WithArray("searchFields",
			mcp.Description("Fields to search in (default: title, description)")),
	)
	s.addTool(searchTasksTool, s.handleSearchTasks)

	statsTool := mcp.NewTool(
		"get_project_stats",
		mcp.WithDescription("Get statistics for a project, or global statistics when no project is given"),
		mcp.WithString("projectId", mcp.Description("Project ID for specific stats (optional)")),
	)
	s.addTool(statsTool, s.handleGetProjectStats)
}

func enumValues[T ~string](values []T) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		out = append(out, string(v))
	}
	return out
}
