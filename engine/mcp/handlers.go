package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/taskdeck/taskdeck/engine/core"
)

// -----
// Project handlers
// -----

func (s *Server) handleListProjects(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	filter := &core.ProjectFilter{
		Status: core.ProjectStatus(argString(req, "status")),
		Owner:  argString(req, "owner"),
		Tags:   argStringSlice(req, "tags"),
	}
	projects, err := s.service.ListProjects(ctx, filter)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(projects)
}

func (s *Server) handleGetProject(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := core.ID(argString(req, "projectId"))
	project, err := s.service.GetProjectWithTasks(ctx, id)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(project)
}

func (s *Server) handleCreateProject(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	startDate, err := argDate(req, "startDate")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	endDate, err := argDate(req, "endDate")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	input := &core.CreateProjectInput{
		Name:        argString(req, "name"),
		Description: argString(req, "description"),
		Status:      core.ProjectStatus(argString(req, "status")),
		StartDate:   startDate,
		EndDate:     endDate,
		Owner:       argString(req, "owner"),
		Tags:        argStringSlice(req, "tags"),
	}
	project, err := s.service.CreateProject(ctx, input)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(reportProjectCreated(project)), nil
}

func (s *Server) handleUpdateProject(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := core.ID(argString(req, "projectId"))
	patch := &core.ProjectPatch{}
	if hasArg(req, "name") {
		patch.Name = core.Some(argString(req, "name"))
	}
	if hasArg(req, "description") {
		patch.Description = core.Some(argString(req, "description"))
	}
	if hasArg(req, "status") {
		patch.Status = core.Some(core.ProjectStatus(argString(req, "status")))
	}
	if hasArg(req, "startDate") {
		startDate, err := argDate(req, "startDate")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		patch.StartDate = core.Some(startDate)
	}
	if hasArg(req, "endDate") {
		endDate, err := argDate(req, "endDate")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		patch.EndDate = core.Some(endDate)
	}
	if hasArg(req, "owner") {
		patch.Owner = core.Some(argString(req, "owner"))
	}
	if hasArg(req, "tags") {
		patch.Tags = core.Some(argStringSlice(req, "tags"))
	}
	project, err := s.service.UpdateProject(ctx, id, patch)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(reportProjectUpdated(project)), nil
}

func (s *Server) handleDeleteProject(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := core.ID(argString(req, "projectId"))
	deletion, err := s.service.DeleteProject(ctx, id)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(reportProjectDeleted(deletion)), nil
}

func (s *Server) handleUpdateProjectProgress(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := core.ID(argString(req, "projectId"))
	project, err := s.service.RecalculateProgress(ctx, id)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(reportProgressUpdated(project)), nil
}

// -----
// Task handlers
// -----

func (s *Server) handleListTasks(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	filter := &core.TaskFilter{
		ProjectID: core.ID(argString(req, "projectId")),
		Status:    core.TaskStatus(argString(req, "status")),
		Priority:  core.TaskPriority(argString(req, "priority")),
		Assignee:  argString(req, "assignee"),
	}
	tasks, err := s.service.ListTasks(ctx, filter)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(tasks)
}

func (s *Server) handleGetTask(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := core.ID(argString(req, "taskId"))
	projectID := core.ID(argString(req, "projectId"))
	task, err := s.service.GetTask(ctx, id, projectID)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(task)
}

func (s *Server) handleCreateTask(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	dueDate, err := argDate(req, "dueDate")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	input := &core.CreateTaskInput{
		ProjectID:    core.ID(argString(req, "projectId")),
		Title:        argString(req, "title"),
		Description:  argString(req, "description"),
		Status:       core.TaskStatus(argString(req, "status")),
		Priority:     core.TaskPriority(argString(req, "priority")),
		Assignee:     argString(req, "assignee"),
		DueDate:      dueDate,
		Progress:     argInt(req, "progress"),
		Dependencies: argStringSlice(req, "dependencies"),
	}
	task, err := s.service.CreateTask(ctx, input)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(reportTaskCreated(task)), nil
}

func (s *Server) handleUpdateTask(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := core.ID(argString(req, "taskId"))
	projectID := core.ID(argString(req, "projectId"))
	patch := &core.TaskPatch{}
	if hasArg(req, "title") {
		patch.Title = core.Some(argString(req, "title"))
	}
	if hasArg(req, "description") {
		patch.Description = core.Some(argString(req, "description"))
	}
	if hasArg(req, "status") {
		patch.Status = core.Some(core.TaskStatus(argString(req, "status")))
	}
	if hasArg(req, "priority") {
		patch.Priority = core.Some(core.TaskPriority(argString(req, "priority")))
	}
	if hasArg(req, "assignee") {
		patch.Assignee = core.Some(argString(req, "assignee"))
	}
	if hasArg(req, "dueDate") {
		dueDate, err := argDate(req, "dueDate")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		patch.DueDate = core.Some(dueDate)
	}
	if hasArg(req, "progress") {
		patch.Progress = core.Some(argInt(req, "progress"))
	}
	if hasArg(req, "dependencies") {
		patch.Dependencies = core.Some(argStringSlice(req, "dependencies"))
	}
	task, err := s.service.UpdateTask(ctx, id, projectID, patch)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(reportTaskUpdated(task)), nil
}

func (s *Server) handleDeleteTask(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := core.ID(argString(req, "taskId"))
	projectID := core.ID(argString(req, "projectId"))
	deletion, err := s.service.DeleteTask(ctx, id, projectID)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(reportTaskDeleted(deletion)), nil
}

// -----
// Search and stats handlers
// -----

func (s *Server) handleSearchProjects(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	fields := projectSearchFields(argStringSlice(req, "searchFields"))
	projects, err := s.service.SearchProjects(ctx, argString(req, "query"), fields)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(projects)
}

func (s *Server) handleSearchTasks(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	fields := taskSearchFields(argStringSlice(req, "searchFields"))
	projectID := core.ID(argString(req, "projectId"))
	tasks, err := s.service.SearchTasks(ctx, argString(req, "query"), projectID, fields)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(tasks)
}

func (s *Server) handleGetProjectStats(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if !hasArg(req, "projectId") || argString(req, "projectId") == "" {
		stats, err := s.service.GlobalStats(ctx)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return jsonResult(stats)
	}
	stats, err := s.service.ProjectStats(ctx, core.ID(argString(req, "projectId")))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(stats)
}
