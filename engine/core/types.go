package core

import (
	"time"

	"github.com/google/uuid"
)

// ID represents a unique entity identifier. IDs are short, URL-safe,
// opaque tokens generated by the service; clients never supply them.
type ID string

// NewID generates a new unique ID (first 12 characters of a random UUID).
func NewID() ID {
	return ID(uuid.New().String()[:12])
}

// String returns the string representation of the ID.
func (id ID) String() string {
	return string(id)
}

// ProjectStatus represents the lifecycle state of a project.
type ProjectStatus string

const (
	ProjectPlanning  ProjectStatus = "planning"
	ProjectActive    ProjectStatus = "active"
	ProjectOnHold    ProjectStatus = "on_hold"
	ProjectCompleted ProjectStatus = "completed"
	ProjectCancelled ProjectStatus = "cancelled"
)

// ProjectStatuses lists every valid project status.
func ProjectStatuses() []ProjectStatus {
	return []ProjectStatus{ProjectPlanning, ProjectActive, ProjectOnHold, ProjectCompleted, ProjectCancelled}
}

// Valid reports whether the status is a declared enumeration value.
func (s ProjectStatus) Valid() bool {
	switch s {
	case ProjectPlanning, ProjectActive, ProjectOnHold, ProjectCompleted, ProjectCancelled:
		return true
	}
	return false
}

// TaskStatus represents the lifecycle state of a task.
type TaskStatus string

const (
	TaskNotStarted TaskStatus = "not_started"
	TaskInProgress TaskStatus = "in_progress"
	TaskCompleted  TaskStatus = "completed"
	TaskBlocked    TaskStatus = "blocked"
)

// TaskStatuses lists every valid task status.
func TaskStatuses() []TaskStatus {
	return []TaskStatus{TaskNotStarted, TaskInProgress, TaskCompleted, TaskBlocked}
}

// Valid reports whether the status is a declared enumeration value.
func (s TaskStatus) Valid() bool {
	switch s {
	case TaskNotStarted, TaskInProgress, TaskCompleted, TaskBlocked:
		return true
	}
	return false
}

// TaskPriority represents the urgency of a task.
type TaskPriority string

const (
	PriorityLow      TaskPriority = "low"
	PriorityMedium   TaskPriority = "medium"
	PriorityHigh     TaskPriority = "high"
	PriorityCritical TaskPriority = "critical"
)

// TaskPriorities lists every valid task priority.
func TaskPriorities() []TaskPriority {
	return []TaskPriority{PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical}
}

// Valid reports whether the priority is a declared enumeration value.
func (p TaskPriority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical:
		return true
	}
	return false
}

// Project is a tracked project. Optional text fields use the empty string
// as the absent value; optional dates use nil.
type Project struct {
	ID          ID            `json:"id"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Status      ProjectStatus `json:"status"`
	StartDate   *time.Time    `json:"startDate,omitempty"`
	EndDate     *time.Time    `json:"endDate,omitempty"`
	Progress    int           `json:"progress"`
	Owner       string        `json:"owner,omitempty"`
	Tags        []string      `json:"tags"`
	CreatedAt   time.Time     `json:"createdAt"`
	UpdatedAt   time.Time     `json:"updatedAt"`
}

// Task is a unit of work owned by exactly one project. Dependencies hold
// ids of other tasks as descriptive metadata; no referential integrity is
// enforced on them.
type Task struct {
	ID           ID           `json:"id"`
	ProjectID    ID           `json:"projectId"`
	Title        string       `json:"title"`
	Description  string       `json:"description"`
	Status       TaskStatus   `json:"status"`
	Priority     TaskPriority `json:"priority"`
	Assignee     string       `json:"assignee,omitempty"`
	DueDate      *time.Time   `json:"dueDate,omitempty"`
	Progress     int          `json:"progress"`
	Dependencies []string     `json:"dependencies"`
	CreatedAt    time.Time    `json:"createdAt"`
	UpdatedAt    time.Time    `json:"updatedAt"`
}

// ProjectWithTasks is a project bundled with its tasks in creation order.
type ProjectWithTasks struct {
	Project
	Tasks []Task `json:"tasks"`
}

// Opt is a tri-state optional value for merge-patch updates: the zero value
// means "not provided, keep the stored value"; a set Opt overwrites, even
// with an empty or nil value.
type Opt[T any] struct {
	Val T
	Set bool
}

// Some returns a set Opt holding v.
func Some[T any](v T) Opt[T] {
	return Opt[T]{Val: v, Set: true}
}

// Or returns the held value when set, otherwise fallback.
func (o Opt[T]) Or(fallback T) T {
	if o.Set {
		return o.Val
	}
	return fallback
}

// CreateProjectInput carries the fields for project creation. Status
// defaults to planning, tags to an empty sequence, progress to 0.
type CreateProjectInput struct {
	Name        string
	Description string
	Status      ProjectStatus
	StartDate   *time.Time
	EndDate     *time.Time
	Owner       string
	Tags        []string
}

// ProjectPatch is a merge-patch for a project. Unset fields keep the stored
// value. A set date with a nil value clears the date.
type ProjectPatch struct {
	Name        Opt[string]
	Description Opt[string]
	Status      Opt[ProjectStatus]
	StartDate   Opt[*time.Time]
	EndDate     Opt[*time.Time]
	Owner       Opt[string]
	Tags        Opt[[]string]
}

// CreateTaskInput carries the fields for task creation. Status defaults to
// not_started, priority to medium, progress to 0, dependencies to empty.
type CreateTaskInput struct {
	ProjectID    ID
	Title        string
	Description  string
	Status       TaskStatus
	Priority     TaskPriority
	Assignee     string
	DueDate      *time.Time
	Progress     int
	Dependencies []string
}

// TaskPatch is a merge-patch for a task.
type TaskPatch struct {
	Title        Opt[string]
	Description  Opt[string]
	Status       Opt[TaskStatus]
	Priority     Opt[TaskPriority]
	Assignee     Opt[string]
	DueDate      Opt[*time.Time]
	Progress     Opt[int]
	Dependencies Opt[[]string]
}

// ProjectFilter holds optional equality filters for project listing.
// Set filters combine conjunctively; Tags matches by intersection.
type ProjectFilter struct {
	Status ProjectStatus
	Owner  string
	Tags   []string
}

// TaskFilter holds optional equality filters for task listing.
type TaskFilter struct {
	ProjectID ID
	Status    TaskStatus
	Priority  TaskPriority
	Assignee  string
}

// ProjectSearchField selects a project field for free-text search.
type ProjectSearchField string

const (
	SearchProjectName        ProjectSearchField = "name"
	SearchProjectDescription ProjectSearchField = "description"
	SearchProjectTags        ProjectSearchField = "tags"
)

// Valid reports whether the field is searchable.
func (f ProjectSearchField) Valid() bool {
	switch f {
	case SearchProjectName, SearchProjectDescription, SearchProjectTags:
		return true
	}
	return false
}

// DefaultProjectSearchFields is the field set used when the caller supplies none.
func DefaultProjectSearchFields() []ProjectSearchField {
	return []ProjectSearchField{SearchProjectName, SearchProjectDescription, SearchProjectTags}
}

// TaskSearchField selects a task field for free-text search.
type TaskSearchField string

const (
	SearchTaskTitle       TaskSearchField = "title"
	SearchTaskDescription TaskSearchField = "description"
	SearchTaskAssignee    TaskSearchField = "assignee"
)

// Valid reports whether the field is searchable.
func (f TaskSearchField) Valid() bool {
	switch f {
	case SearchTaskTitle, SearchTaskDescription, SearchTaskAssignee:
		return true
	}
	return false
}

// DefaultTaskSearchFields is the field set used when the caller supplies none.
func DefaultTaskSearchFields() []TaskSearchField {
	return []TaskSearchField{SearchTaskTitle, SearchTaskDescription}
}

// ProjectDeletion reports the outcome of a cascade delete.
type ProjectDeletion struct {
	Name      string `json:"name"`
	TaskCount int    `json:"taskCount"`
}

// TaskDeletion reports the outcome of a task delete.
type TaskDeletion struct {
	Title string `json:"title"`
}

// ProjectStatusCounts partitions projects by status.
type ProjectStatusCounts struct {
	Planning  int `json:"planning"`
	Active    int `json:"active"`
	OnHold    int `json:"onHold"`
	Completed int `json:"completed"`
	Cancelled int `json:"cancelled"`
}

// TaskStatusCounts partitions tasks by status.
type TaskStatusCounts struct {
	NotStarted int `json:"notStarted"`
	InProgress int `json:"inProgress"`
	Completed  int `json:"completed"`
	Blocked    int `json:"blocked"`
}

// TaskPriorityCounts partitions tasks by priority.
type TaskPriorityCounts struct {
	Low      int `json:"low"`
	Medium   int `json:"medium"`
	High     int `json:"high"`
	Critical int `json:"critical"`
}

// GlobalStats is the system-wide aggregation snapshot.
type GlobalStats struct {
	TotalProjects          int                 `json:"totalProjects"`
	TotalTasks             int                 `json:"totalTasks"`
	ProjectsByStatus       ProjectStatusCounts `json:"projectsByStatus"`
	TasksByStatus          TaskStatusCounts    `json:"tasksByStatus"`
	TasksByPriority        TaskPriorityCounts  `json:"tasksByPriority"`
	AverageProjectProgress float64             `json:"averageProjectProgress"`
	AverageTaskProgress    float64             `json:"averageTaskProgress"`
	UniqueAssignees        int                 `json:"uniqueAssignees"`
	UniqueOwners           int                 `json:"uniqueOwners"`
}

// ProjectStats is the aggregation snapshot scoped to one project.
type ProjectStats struct {
	ProjectID             ID                 `json:"projectId"`
	ProjectName           string             `json:"projectName"`
	TotalTasks            int                `json:"totalTasks"`
	TasksByStatus         TaskStatusCounts   `json:"tasksByStatus"`
	TasksByPriority       TaskPriorityCounts `json:"tasksByPriority"`
	OverallProgress       int                `json:"overallProgress"`
	AverageTaskProgress   float64            `json:"averageTaskProgress"`
	TasksWithDependencies int                `json:"tasksWithDependencies"`
}
