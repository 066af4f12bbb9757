package graphql

import (
	"time"

	"github.com/graphql-go/graphql"
	"github.com/taskdeck/taskdeck/engine/core"
	"github.com/taskdeck/taskdeck/engine/tracker"
)

// NewSchema builds the executable schema over the data service. Entity
// types resolve their scalar fields straight off the domain structs; the
// project/task relationship fields go back through the service so nested
// selections always see current rows.
func NewSchema(svc tracker.Service) (graphql.Schema, error) {
	types := newTypeRegistry(svc)
	return graphql.NewSchema(graphql.SchemaConfig{
		Query:        types.query(),
		Mutation:     types.mutation(),
		Subscription: types.subscription(),
	})
}

type typeRegistry struct {
	svc         tracker.Service
	projectType *graphql.Object
	taskType    *graphql.Object
}

func newTypeRegistry(svc tracker.Service) *typeRegistry {
	r := &typeRegistry{svc: svc}
	r.buildEntityTypes()
	return r
}

// -----
// Entity types
// -----

func (r *typeRegistry) buildEntityTypes() {
	r.projectType = graphql.NewObject(graphql.ObjectConfig{
		Name: "Project",
		Fields: graphql.Fields{
			"id":          &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
			"name":        &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"description": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"status":      &graphql.Field{Type: graphql.NewNonNull(projectStatusEnum)},
			"startDate":   &graphql.Field{Type: graphql.DateTime},
			"endDate":     &graphql.Field{Type: graphql.DateTime},
			"progress":    &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
			"owner": &graphql.Field{
				Type: graphql.String,
				Resolve: func(p graphql.ResolveParams) (any, error) {
					return nullableText(sourceProject(p).Owner), nil
				},
			},
			"tags":      &graphql.Field{Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(graphql.String)))},
			"createdAt": &graphql.Field{Type: graphql.NewNonNull(graphql.DateTime)},
			"updatedAt": &graphql.Field{Type: graphql.NewNonNull(graphql.DateTime)},
		},
	})

	r.taskType = graphql.NewObject(graphql.ObjectConfig{
		Name: "Task",
		Fields: graphql.Fields{
			"id":          &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
			"projectId":   &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
			"title":       &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"description": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"status":      &graphql.Field{Type: graphql.NewNonNull(taskStatusEnum)},
			"priority":    &graphql.Field{Type: graphql.NewNonNull(taskPriorityEnum)},
			"assignee": &graphql.Field{
				Type: graphql.String,
				Resolve: func(p graphql.ResolveParams) (any, error) {
					return nullableText(sourceTask(p).Assignee), nil
				},
			},
			"dueDate":      &graphql.Field{Type: graphql.DateTime},
			"progress":     &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
			"dependencies": &graphql.Field{Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(graphql.String)))},
			"createdAt":    &graphql.Field{Type: graphql.NewNonNull(graphql.DateTime)},
			"updatedAt":    &graphql.Field{Type: graphql.NewNonNull(graphql.DateTime)},
		},
	})

	// Relationship fields are attached after both objects exist to close
	// the Project/Task reference cycle.
	r.projectType.AddFieldConfig("tasks", &graphql.Field{
		Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(r.taskType))),
		Resolve: func(p graphql.ResolveParams) (any, error) {
			return r.svc.ListTasks(p.Context, &core.TaskFilter{ProjectID: sourceProject(p).ID})
		},
	})
	r.projectType.AddFieldConfig("taskCount", &graphql.Field{
		Type: graphql.NewNonNull(graphql.Int),
		Resolve: func(p graphql.ResolveParams) (any, error) {
			tasks, err := r.svc.ListTasks(p.Context, &core.TaskFilter{ProjectID: sourceProject(p).ID})
			if err != nil {
				return nil, err
			}
			return len(tasks), nil
		},
	})
	r.projectType.AddFieldConfig("completedTaskCount", &graphql.Field{
		Type: graphql.NewNonNull(graphql.Int),
		Resolve: func(p graphql.ResolveParams) (any, error) {
			tasks, err := r.svc.ListTasks(p.Context, &core.TaskFilter{
				ProjectID: sourceProject(p).ID,
				Status:    core.TaskCompleted,
			})
			if err != nil {
				return nil, err
			}
			return len(tasks), nil
		},
	})
	r.taskType.AddFieldConfig("project", &graphql.Field{
		Type: graphql.NewNonNull(r.projectType),
		Resolve: func(p graphql.ResolveParams) (any, error) {
			return r.svc.GetProject(p.Context, sourceTask(p).ProjectID)
		},
	})
}

// -----
// Stats types
// -----

func (r *typeRegistry) statsTypes() (global, perProject *graphql.Object) {
	projectStatusCounts := graphql.NewObject(graphql.ObjectConfig{
		Name: "ProjectStatusCounts",
		Fields: graphql.Fields{
			"planning":  &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
			"active":    &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
			"onHold":    &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
			"completed": &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
			"cancelled": &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
		},
	})
	taskStatusCounts := graphql.NewObject(graphql.ObjectConfig{
		Name: "TaskStatusCounts",
		Fields: graphql.Fields{
			"notStarted": &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
			"inProgress": &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
			"completed":  &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
			"blocked":    &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
		},
	})
	taskPriorityCounts := graphql.NewObject(graphql.ObjectConfig{
		Name: "TaskPriorityCounts",
		Fields: graphql.Fields{
			"low":      &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
			"medium":   &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
			"high":     &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
			"critical": &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
		},
	})

	global = graphql.NewObject(graphql.ObjectConfig{
		Name: "GlobalStats",
		Fields: graphql.Fields{
			"totalProjects":          &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
			"totalTasks":             &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
			"projectsByStatus":       &graphql.Field{Type: graphql.NewNonNull(projectStatusCounts)},
			"tasksByStatus":          &graphql.Field{Type: graphql.NewNonNull(taskStatusCounts)},
			"tasksByPriority":        &graphql.Field{Type: graphql.NewNonNull(taskPriorityCounts)},
			"averageProjectProgress": &graphql.Field{Type: graphql.NewNonNull(graphql.Float)},
			"averageTaskProgress":    &graphql.Field{Type: graphql.NewNonNull(graphql.Float)},
			"uniqueAssignees":        &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
			"uniqueOwners":           &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
		},
	})
	perProject = graphql.NewObject(graphql.ObjectConfig{
		Name: "ProjectStats",
		Fields: graphql.Fields{
			"projectId":             &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
			"projectName":           &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"totalTasks":            &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
			"tasksByStatus":         &graphql.Field{Type: graphql.NewNonNull(taskStatusCounts)},
			"tasksByPriority":       &graphql.Field{Type: graphql.NewNonNull(taskPriorityCounts)},
			"overallProgress":       &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
			"averageTaskProgress":   &graphql.Field{Type: graphql.NewNonNull(graphql.Float)},
			"tasksWithDependencies": &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
		},
	})
	return global, perProject
}

// -----
// Query
// -----

func (r *typeRegistry) query() *graphql.Object {
	globalStatsType, projectStatsType := r.statsTypes()

	return graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"projects": &graphql.Field{
				Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(r.projectType))),
				Args: graphql.FieldConfigArgument{
					"status": &graphql.ArgumentConfig{Type: projectStatusEnum},
					"owner":  &graphql.ArgumentConfig{Type: graphql.String},
					"tags":   &graphql.ArgumentConfig{Type: graphql.NewList(graphql.NewNonNull(graphql.String))},
				},
				Resolve: func(p graphql.ResolveParams) (any, error) {
					filter := &core.ProjectFilter{
						Owner: argText(p.Args, "owner"),
						Tags:  argTextList(p.Args, "tags"),
					}
					if v, ok := p.Args["status"].(core.ProjectStatus); ok {
						filter.Status = v
					}
					return r.svc.ListProjects(p.Context, filter)
				},
			},
			"project": &graphql.Field{
				Type: r.projectType,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: func(p graphql.ResolveParams) (any, error) {
					return r.svc.GetProject(p.Context, argID(p.Args, "id"))
				},
			},
			"searchProjects": &graphql.Field{
				Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(r.projectType))),
				Args: graphql.FieldConfigArgument{
					"query":  &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"fields": &graphql.ArgumentConfig{Type: graphql.NewList(graphql.NewNonNull(graphql.String))},
				},
				Resolve: func(p graphql.ResolveParams) (any, error) {
					var fields []core.ProjectSearchField
					if raw, ok := p.Args["fields"]; ok && raw != nil {
						for _, f := range argTextList(p.Args, "fields") {
							fields = append(fields, core.ProjectSearchField(f))
						}
						if fields == nil {
							fields = []core.ProjectSearchField{}
						}
					}
					return r.svc.SearchProjects(p.Context, argText(p.Args, "query"), fields)
				},
			},
			"tasks": &graphql.Field{
				Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(r.taskType))),
				Args: graphql.FieldConfigArgument{
					"projectId": &graphql.ArgumentConfig{Type: graphql.ID},
					"status":    &graphql.ArgumentConfig{Type: taskStatusEnum},
					"priority":  &graphql.ArgumentConfig{Type: taskPriorityEnum},
					"assignee":  &graphql.ArgumentConfig{Type: graphql.String},
				},
				Resolve: func(p graphql.ResolveParams) (any, error) {
					filter := &core.TaskFilter{
						ProjectID: argID(p.Args, "projectId"),
						Assignee:  argText(p.Args, "assignee"),
					}
					if v, ok := p.Args["status"].(core.TaskStatus); ok {
						filter.Status = v
					}
					if v, ok := p.Args["priority"].(core.TaskPriority); ok {
						filter.Priority = v
					}
					return r.svc.ListTasks(p.Context, filter)
				},
			},
			"task": &graphql.Field{
				Type: r.taskType,
				Args: graphql.FieldConfigArgument{
					"id":        &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
					"projectId": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: func(p graphql.ResolveParams) (any, error) {
					return r.svc.GetTask(p.Context, argID(p.Args, "id"), argID(p.Args, "projectId"))
				},
			},
			"searchTasks": &graphql.Field{
				Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(r.taskType))),
				Args: graphql.FieldConfigArgument{
					"query":     &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"projectId": &graphql.ArgumentConfig{Type: graphql.ID},
					"fields":    &graphql.ArgumentConfig{Type: graphql.NewList(graphql.NewNonNull(graphql.String))},
				},
				Resolve: func(p graphql.ResolveParams) (any, error) {
					var fields []core.TaskSearchField
					if raw, ok := p.Args["fields"]; ok && raw != nil {
						for _, f := range argTextList(p.Args, "fields") {
							fields = append(fields, core.TaskSearchField(f))
						}
						if fields == nil {
							fields = []core.TaskSearchField{}
						}
					}
					return r.svc.SearchTasks(p.Context, argText(p.Args, "query"), argID(p.Args, "projectId"), fields)
				},
			},
			"globalStats": &graphql.Field{
				Type: graphql.NewNonNull(globalStatsType),
				Resolve: func(p graphql.ResolveParams) (any, error) {
					return r.svc.GlobalStats(p.Context)
				},
			},
			"projectStats": &graphql.Field{
				Type: graphql.NewNonNull(projectStatsType),
				Args: graphql.FieldConfigArgument{
					"projectId": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: func(p graphql.ResolveParams) (any, error) {
					return r.svc.ProjectStats(p.Context, argID(p.Args, "projectId"))
				},
			},
		},
	})
}

// -----
// Mutation
// -----

func (r *typeRegistry) mutation() *graphql.Object {
	createProjectInput := graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "CreateProjectInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"name":        &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"description": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"status":      &graphql.InputObjectFieldConfig{Type: projectStatusEnum},
			"startDate":   &graphql.InputObjectFieldConfig{Type: graphql.DateTime},
			"endDate":     &graphql.InputObjectFieldConfig{Type: graphql.DateTime},
			"owner":       &graphql.InputObjectFieldConfig{Type: graphql.String},
			"tags":        &graphql.InputObjectFieldConfig{Type: graphql.NewList(graphql.NewNonNull(graphql.String))},
		},
	})
	// Update-input dates are plain strings so a client can clear a stored
	// date by providing an empty string; a null-valued field never reaches
	// the resolver's input map, which would read as "keep".
	updateProjectInput := graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "UpdateProjectInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"name":        &graphql.InputObjectFieldConfig{Type: graphql.String},
			"description": &graphql.InputObjectFieldConfig{Type: graphql.String},
			"status":      &graphql.InputObjectFieldConfig{Type: projectStatusEnum},
			"startDate": &graphql.InputObjectFieldConfig{
				Type:        graphql.String,
				Description: "RFC 3339 or YYYY-MM-DD; empty string clears the date",
			},
			"endDate": &graphql.InputObjectFieldConfig{
				Type:        graphql.String,
				Description: "RFC 3339 or YYYY-MM-DD; empty string clears the date",
			},
			"owner": &graphql.InputObjectFieldConfig{Type: graphql.String},
			"tags":  &graphql.InputObjectFieldConfig{Type: graphql.NewList(graphql.NewNonNull(graphql.String))},
		},
	})
	createTaskInput := graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "CreateTaskInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"projectId":    &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.ID)},
			"title":        &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"description":  &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"status":       &graphql.InputObjectFieldConfig{Type: taskStatusEnum},
			"priority":     &graphql.InputObjectFieldConfig{Type: taskPriorityEnum},
			"assignee":     &graphql.InputObjectFieldConfig{Type: graphql.String},
			"dueDate":      &graphql.InputObjectFieldConfig{Type: graphql.DateTime},
			"progress":     &graphql.InputObjectFieldConfig{Type: graphql.Int},
			"dependencies": &graphql.InputObjectFieldConfig{Type: graphql.NewList(graphql.NewNonNull(graphql.String))},
		},
	})
	updateTaskInput := graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "UpdateTaskInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"title":       &graphql.InputObjectFieldConfig{Type: graphql.String},
			"description": &graphql.InputObjectFieldConfig{Type: graphql.String},
			"status":      &graphql.InputObjectFieldConfig{Type: taskStatusEnum},
			"priority":    &graphql.InputObjectFieldConfig{Type: taskPriorityEnum},
			"assignee":    &graphql.InputObjectFieldConfig{Type: graphql.String},
			"dueDate": &graphql.InputObjectFieldConfig{
				Type:        graphql.String,
				Description: "RFC 3339 or YYYY-MM-DD; empty string clears the date",
			},
			"progress":     &graphql.InputObjectFieldConfig{Type: graphql.Int},
			"dependencies": &graphql.InputObjectFieldConfig{Type: graphql.NewList(graphql.NewNonNull(graphql.String))},
		},
	})

	return graphql.NewObject(graphql.ObjectConfig{
		Name: "Mutation",
		Fields: graphql.Fields{
			"createProject": &graphql.Field{
				Type: graphql.NewNonNull(r.projectType),
				Args: graphql.FieldConfigArgument{
					"input": &graphql.ArgumentConfig{Type: graphql.NewNonNull(createProjectInput)},
				},
				Resolve: func(p graphql.ResolveParams) (any, error) {
					in := inputMap(p.Args, "input")
					startDate, endDate := inputDate(in, "startDate"), inputDate(in, "endDate")
					input := &core.CreateProjectInput{
						Name:        inputText(in, "name"),
						Description: inputText(in, "description"),
						StartDate:   startDate,
						EndDate:     endDate,
						Owner:       inputText(in, "owner"),
						Tags:        inputTextList(in, "tags"),
					}
					if v, ok := in["status"].(core.ProjectStatus); ok {
						input.Status = v
					}
					return r.svc.CreateProject(p.Context, input)
				},
			},
			"updateProject": &graphql.Field{
				Type: graphql.NewNonNull(r.projectType),
				Args: graphql.FieldConfigArgument{
					"id":    &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
					"input": &graphql.ArgumentConfig{Type: graphql.NewNonNull(updateProjectInput)},
				},
				Resolve: func(p graphql.ResolveParams) (any, error) {
					in := inputMap(p.Args, "input")
					patch := &core.ProjectPatch{}
					if _, ok := in["name"]; ok {
						patch.Name = core.Some(inputText(in, "name"))
					}
					if _, ok := in["description"]; ok {
						patch.Description = core.Some(inputText(in, "description"))
					}
					if v, ok := in["status"].(core.ProjectStatus); ok {
						patch.Status = core.Some(v)
					}
					if _, ok := in["startDate"]; ok {
						startDate, err := inputDateText(in, "startDate")
						if err != nil {
							return nil, err
						}
						patch.StartDate = core.Some(startDate)
					}
					if _, ok := in["endDate"]; ok {
						endDate, err := inputDateText(in, "endDate")
						if err != nil {
							return nil, err
						}
						patch.EndDate = core.Some(endDate)
					}
					if _, ok := in["owner"]; ok {
						patch.Owner = core.Some(inputText(in, "owner"))
					}
					if _, ok := in["tags"]; ok {
						patch.Tags = core.Some(inputTextList(in, "tags"))
					}
					return r.svc.UpdateProject(p.Context, argID(p.Args, "id"), patch)
				},
			},
			"deleteProject": &graphql.Field{
				Type: graphql.NewNonNull(graphql.Boolean),
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: func(p graphql.ResolveParams) (any, error) {
					if _, err := r.svc.DeleteProject(p.Context, argID(p.Args, "id")); err != nil {
						return false, err
					}
					return true, nil
				},
			},
			"updateProjectProgress": &graphql.Field{
				Type: graphql.NewNonNull(r.projectType),
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: func(p graphql.ResolveParams) (any, error) {
					return r.svc.RecalculateProgress(p.Context, argID(p.Args, "id"))
				},
			},
			"createTask": &graphql.Field{
				Type: graphql.NewNonNull(r.taskType),
				Args: graphql.FieldConfigArgument{
					"input": &graphql.ArgumentConfig{Type: graphql.NewNonNull(createTaskInput)},
				},
				Resolve: func(p graphql.ResolveParams) (any, error) {
					in := inputMap(p.Args, "input")
					input := &core.CreateTaskInput{
						ProjectID:    core.ID(inputText(in, "projectId")),
						Title:        inputText(in, "title"),
						Description:  inputText(in, "description"),
						Assignee:     inputText(in, "assignee"),
						DueDate:      inputDate(in, "dueDate"),
						Progress:     inputInt(in, "progress"),
						Dependencies: inputTextList(in, "dependencies"),
					}
					if v, ok := in["status"].(core.TaskStatus); ok {
						input.Status = v
					}
					if v, ok := in["priority"].(core.TaskPriority); ok {
						input.Priority = v
					}
					return r.svc.CreateTask(p.Context, input)
				},
			},
			"updateTask": &graphql.Field{
				Type: graphql.NewNonNull(r.taskType),
				Args: graphql.FieldConfigArgument{
					"id":        &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
					"projectId": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
					"input":     &graphql.ArgumentConfig{Type: graphql.NewNonNull(updateTaskInput)},
				},
				Resolve: func(p graphql.ResolveParams) (any, error) {
					in := inputMap(p.Args, "input")
					patch := &core.TaskPatch{}
					if _, ok := in["title"]; ok {
						patch.Title = core.Some(inputText(in, "title"))
					}
					if _, ok := in["description"]; ok {
						patch.Description = core.Some(inputText(in, "description"))
					}
					if v, ok := in["status"].(core.TaskStatus); ok {
						patch.Status = core.Some(v)
					}
					if v, ok := in["priority"].(core.TaskPriority); ok {
						patch.Priority = core.Some(v)
					}
					if _, ok := in["assignee"]; ok {
						patch.Assignee = core.Some(inputText(in, "assignee"))
					}
					if _, ok := in["dueDate"]; ok {
						dueDate, err := inputDateText(in, "dueDate")
						if err != nil {
							return nil, err
						}
						patch.DueDate = core.Some(dueDate)
					}
					if _, ok := in["progress"]; ok {
						patch.Progress = core.Some(inputInt(in, "progress"))
					}
					if _, ok := in["dependencies"]; ok {
						patch.Dependencies = core.Some(inputTextList(in, "dependencies"))
					}
					return r.svc.UpdateTask(p.Context, argID(p.Args, "id"), argID(p.Args, "projectId"), patch)
				},
			},
			"deleteTask": &graphql.Field{
				Type: graphql.NewNonNull(graphql.Boolean),
				Args: graphql.FieldConfigArgument{
					"id":        &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
					"projectId": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: func(p graphql.ResolveParams) (any, error) {
					if _, err := r.svc.DeleteTask(p.Context, argID(p.Args, "id"), argID(p.Args, "projectId")); err != nil {
						return false, err
					}
					return true, nil
				},
			},
		},
	})
}

// -----
// Subscription
// -----

// subscription declares the event fields for schema completeness. No pubsub
// backend is wired; subscribing returns an execution error.
func (r *typeRegistry) subscription() *graphql.Object {
	return graphql.NewObject(graphql.ObjectConfig{
		Name: "Subscription",
		Fields: graphql.Fields{
			"projectUpdated": &graphql.Field{
				Type: r.projectType,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.ID},
				},
			},
			"taskUpdated": &graphql.Field{
				Type: r.taskType,
				Args: graphql.FieldConfigArgument{
					"projectId": &graphql.ArgumentConfig{Type: graphql.ID},
				},
			},
		},
	})
}

// -----
// Argument helpers
// -----

func sourceProject(p graphql.ResolveParams) core.Project {
	switch src := p.Source.(type) {
	case core.Project:
		return src
	case *core.Project:
		return *src
	case core.ProjectWithTasks:
		return src.Project
	case *core.ProjectWithTasks:
		return src.Project
	}
	return core.Project{}
}

func sourceTask(p graphql.ResolveParams) core.Task {
	switch src := p.Source.(type) {
	case core.Task:
		return src
	case *core.Task:
		return *src
	}
	return core.Task{}
}

func nullableText(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func argID(args map[string]any, key string) core.ID {
	if v, ok := args[key].(string); ok {
		return core.ID(v)
	}
	return ""
}

func argText(args map[string]any, key string) string {
	if v, ok := args[key].(string); ok {
		return v
	}
	return ""
}

func argTextList(args map[string]any, key string) []string {
	raw, ok := args[key].([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, item := range raw {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

func inputMap(args map[string]any, key string) map[string]any {
	if v, ok := args[key].(map[string]any); ok {
		return v
	}
	return map[string]any{}
}

func inputText(in map[string]any, key string) string {
	if v, ok := in[key].(string); ok {
		return v
	}
	return ""
}

func inputInt(in map[string]any, key string) int {
	if v, ok := in[key].(int); ok {
		return v
	}
	return 0
}

func inputTextList(in map[string]any, key string) []string {
	raw, ok := in[key].([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, item := range raw {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// inputDate reads an optional timestamp from input. An explicit null or
// absent key yields nil.
func inputDate(in map[string]any, key string) *time.Time {
	if v, ok := in[key].(time.Time); ok {
		t := v.UTC()
		return &t
	}
	return nil
}

// inputDateText parses a string-typed date field on an update input. An
// empty string reads as nil, which clears the stored date.
func inputDateText(in map[string]any, key string) (*time.Time, error) {
	s := inputText(in, key)
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		t, err = time.Parse("2006-01-02", s)
		if err != nil {
			return nil, core.Invalidf("invalid %s: %q is not an RFC 3339 timestamp or YYYY-MM-DD date", key, s)
		}
	}
	t = t.UTC()
	return &t, nil
}
