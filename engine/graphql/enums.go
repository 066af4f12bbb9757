package graphql

import (
	"github.com/graphql-go/graphql"
	"github.com/taskdeck/taskdeck/engine/core"
)

// Enum names follow GraphQL convention (UPPER_SNAKE) while values stay the
// lower_snake strings used internally and in storage. The enum value maps
// below are the single source of both recasings: graphql-go serializes by
// looking up the internal value and parses by looking up the exposed name.

var projectStatusEnum = graphql.NewEnum(graphql.EnumConfig{
	Name:        "ProjectStatus",
	Description: "Lifecycle status of a project",
	Values: graphql.EnumValueConfigMap{
		"PLANNING":  {Value: core.ProjectPlanning},
		"ACTIVE":    {Value: core.ProjectActive},
		"ON_HOLD":   {Value: core.ProjectOnHold},
		"COMPLETED": {Value: core.ProjectCompleted},
		"CANCELLED": {Value: core.ProjectCancelled},
	},
})

var taskStatusEnum = graphql.NewEnum(graphql.EnumConfig{
	Name:        "TaskStatus",
	Description: "Work state of a task",
	Values: graphql.EnumValueConfigMap{
		"NOT_STARTED": {Value: core.TaskNotStarted},
		"IN_PROGRESS": {Value: core.TaskInProgress},
		"COMPLETED":   {Value: core.TaskCompleted},
		"BLOCKED":     {Value: core.TaskBlocked},
	},
})

var taskPriorityEnum = graphql.NewEnum(graphql.EnumConfig{
	Name:        "TaskPriority",
	Description: "Urgency of a task",
	Values: graphql.EnumValueConfigMap{
		"LOW":      {Value: core.PriorityLow},
		"MEDIUM":   {Value: core.PriorityMedium},
		"HIGH":     {Value: core.PriorityHigh},
		"CRITICAL": {Value: core.PriorityCritical},
	},
})

// ProjectStatusEnumValues exposes the exposed-name to internal-value table
// for exhaustiveness checks.
func ProjectStatusEnumValues() map[string]core.ProjectStatus {
	out := make(map[string]core.ProjectStatus, len(projectStatusEnum.Values()))
	for _, v := range projectStatusEnum.Values() {
		out[v.Name] = v.Value.(core.ProjectStatus)
	}
	return out
}

// TaskStatusEnumValues exposes the task status name table.
func TaskStatusEnumValues() map[string]core.TaskStatus {
	out := make(map[string]core.TaskStatus, len(taskStatusEnum.Values()))
	for _, v := range taskStatusEnum.Values() {
		out[v.Name] = v.Value.(core.TaskStatus)
	}
	return out
}

// TaskPriorityEnumValues exposes the task priority name table.
func TaskPriorityEnumValues() map[string]core.TaskPriority {
	out := make(map[string]core.TaskPriority, len(taskPriorityEnum.Values()))
	for _, v := range taskPriorityEnum.Values() {
		out[v.Name] = v.Value.(core.TaskPriority)
	}
	return out
}
