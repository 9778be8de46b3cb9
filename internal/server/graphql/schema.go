// Package graphql exposes the domain operations as a single query/mutation
// endpoint with typed arguments and cross-entity field resolution.
package graphql

import (
	"github.com/graphql-go/graphql"

	"github.com/taskboard/taskboard/internal/server/services"
	"github.com/taskboard/taskboard/internal/server/storage"
)

// NewSchema assembles the full query/mutation schema over the given
// services. The store is used only for cross-entity field resolution,
// which bypasses the per-operation authorization gates.
func NewSchema(store storage.Store, us *services.UserService, ps *services.ProjectService, ts *services.TaskService) (graphql.Schema, error) {
	userType := newUserType()
	projectType, taskType := newEntityTypes(store, userType)

	rootQuery := graphql.NewObject(graphql.ObjectConfig{
		Name: "RootQueryType",
		Fields: graphql.Fields{
			"users": &graphql.Field{
				Type: graphql.NewList(userType),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return us.GetAll(p.Context)
				},
			},
			"user": &graphql.Field{
				Type: userType,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.ID},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return us.GetByID(p.Context, stringArg(p, "id"))
				},
			},
			"projects": &graphql.Field{
				Type: graphql.NewList(projectType),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return ps.GetAll(p.Context)
				},
			},
			"project": &graphql.Field{
				Type: projectType,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.ID},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return ps.GetByID(p.Context, stringArg(p, "id"))
				},
			},
			"tasks": &graphql.Field{
				Type: graphql.NewList(taskType),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return ts.GetAll(p.Context)
				},
			},
			"task": &graphql.Field{
				Type: taskType,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.ID},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return ts.GetByID(p.Context, stringArg(p, "id"))
				},
			},
		},
	})

	mutation := graphql.NewObject(graphql.ObjectConfig{
		Name: "Mutation",
		Fields: graphql.Fields{
			// User mutations
			"createUser": &graphql.Field{
				Type: userType,
				Args: graphql.FieldConfigArgument{
					"name":     &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"email":    &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"password": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"role":     &graphql.ArgumentConfig{Type: graphql.String},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return us.Create(p.Context,
						stringArg(p, "name"), stringArg(p, "email"),
						stringArg(p, "password"), stringArg(p, "role"))
				},
			},
			"updateUser": &graphql.Field{
				Type: userType,
				Args: graphql.FieldConfigArgument{
					"id":       &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
					"name":     &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"email":    &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"password": &graphql.ArgumentConfig{Type: graphql.String},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return us.Update(p.Context,
						stringArg(p, "id"), stringArg(p, "name"),
						stringArg(p, "email"), stringArg(p, "password"))
				},
			},
			"deleteUser": &graphql.Field{
				Type: userType,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return us.Delete(p.Context, stringArg(p, "id"))
				},
			},
			"deleteAllUsers": &graphql.Field{
				Type: graphql.String,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return us.DeleteAll(p.Context)
				},
			},
			"loginUser": &graphql.Field{
				Type: userType,
				Args: graphql.FieldConfigArgument{
					"email":    &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"password": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return us.Login(p.Context, stringArg(p, "email"), stringArg(p, "password"))
				},
			},
			"requestPasswordReset": &graphql.Field{
				Type: graphql.String,
				Args: graphql.FieldConfigArgument{
					"email": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return us.RequestPasswordReset(p.Context, stringArg(p, "email"))
				},
			},
			"resetPassword": &graphql.Field{
				Type: graphql.String,
				Args: graphql.FieldConfigArgument{
					"token":           &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"oldPassword":     &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"newPassword":     &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"confirmPassword": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return us.ResetPassword(p.Context,
						stringArg(p, "token"), stringArg(p, "oldPassword"),
						stringArg(p, "newPassword"), stringArg(p, "confirmPassword"))
				},
			},

			// Project mutations
			"createProject": &graphql.Field{
				Type: projectType,
				Args: graphql.FieldConfigArgument{
					"name":        &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"description": &graphql.ArgumentConfig{Type: graphql.String},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return ps.Create(p.Context, stringArg(p, "name"), stringArg(p, "description"))
				},
			},
			"updateProject": &graphql.Field{
				Type: projectType,
				Args: graphql.FieldConfigArgument{
					"id":          &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
					"name":        &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"description": &graphql.ArgumentConfig{Type: graphql.String},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return ps.Update(p.Context,
						stringArg(p, "id"), stringArg(p, "name"), stringArg(p, "description"))
				},
			},
			"deleteProject": &graphql.Field{
				Type: projectType,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return ps.Delete(p.Context, stringArg(p, "id"))
				},
			},
			"deleteAllProjects": &graphql.Field{
				Type: graphql.String,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return ps.DeleteAll(p.Context)
				},
			},

			// Task mutations
			"createTask": &graphql.Field{
				Type: taskType,
				Args: graphql.FieldConfigArgument{
					"title":       &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"description": &graphql.ArgumentConfig{Type: graphql.String},
					"status":      &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"assignedTo":  &graphql.ArgumentConfig{Type: graphql.ID},
					"finishedBy":  &graphql.ArgumentConfig{Type: graphql.ID},
					"project":     &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
					"tags":        &graphql.ArgumentConfig{Type: graphql.NewList(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return ts.Create(p.Context, services.TaskCreate{
						Title:       stringArg(p, "title"),
						Description: stringArg(p, "description"),
						Status:      stringArg(p, "status"),
						AssignedTo:  stringArg(p, "assignedTo"),
						FinishedBy:  stringArg(p, "finishedBy"),
						Project:     stringArg(p, "project"),
						Tags:        stringListArg(p, "tags"),
					})
				},
			},
			"updateTask": &graphql.Field{
				Type: taskType,
				Args: graphql.FieldConfigArgument{
					"id":          &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
					"title":       &graphql.ArgumentConfig{Type: graphql.String},
					"description": &graphql.ArgumentConfig{Type: graphql.String},
					"status":      &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"finishedBy":  &graphql.ArgumentConfig{Type: graphql.ID},
					"tags":        &graphql.ArgumentConfig{Type: graphql.NewList(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return ts.Update(p.Context, services.TaskUpdate{
						ID:          stringArg(p, "id"),
						Title:       stringArg(p, "title"),
						Description: stringArg(p, "description"),
						Status:      stringArg(p, "status"),
						FinishedBy:  stringArg(p, "finishedBy"),
						Tags:        stringListArg(p, "tags"),
					})
				},
			},
			"deleteTask": &graphql.Field{
				Type: taskType,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return ts.Delete(p.Context, stringArg(p, "id"))
				},
			},
			"assignTask": &graphql.Field{
				Type: taskType,
				Args: graphql.FieldConfigArgument{
					"taskId": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
					"userId": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return ts.Assign(p.Context, stringArg(p, "taskId"), stringArg(p, "userId"))
				},
			},
		},
	})

	return graphql.NewSchema(graphql.SchemaConfig{
		Query:    rootQuery,
		Mutation: mutation,
	})
}
