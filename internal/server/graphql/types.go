package graphql

import (
	"time"

	"github.com/graphql-go/graphql"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/taskboard/taskboard/internal/server/models"
	"github.com/taskboard/taskboard/internal/server/services"
	"github.com/taskboard/taskboard/internal/server/storage"
)

// userFromSource unwraps the two shapes a user field can be resolved from:
// a bare record, or the login payload bundling the record with its token.
func userFromSource(src interface{}) *models.User {
	switch v := src.(type) {
	case *models.User:
		return v
	case *services.LoginResult:
		return v.User
	}
	return nil
}

// newUserType exposes a user record. The token field is non-null only on
// the login payload.
func newUserType() *graphql.Object {
	return graphql.NewObject(graphql.ObjectConfig{
		Name: "User",
		Fields: graphql.Fields{
			"id": &graphql.Field{
				Type: graphql.ID,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					if u := userFromSource(p.Source); u != nil {
						return u.ID.Hex(), nil
					}
					return nil, nil
				},
			},
			"name": &graphql.Field{
				Type: graphql.String,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					if u := userFromSource(p.Source); u != nil {
						return u.Name, nil
					}
					return nil, nil
				},
			},
			"email": &graphql.Field{
				Type: graphql.String,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					if u := userFromSource(p.Source); u != nil {
						return u.Email, nil
					}
					return nil, nil
				},
			},
			"role": &graphql.Field{
				Type: graphql.String,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					if u := userFromSource(p.Source); u != nil {
						return string(u.Role), nil
					}
					return nil, nil
				},
			},
			"token": &graphql.Field{
				Type: graphql.String,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					if lr, ok := p.Source.(*services.LoginResult); ok {
						return lr.Token, nil
					}
					return nil, nil
				},
			},
		},
	})
}

// newEntityTypes builds the Project and Task object types. They reference
// each other, so the cyclic fields are declared through thunks. Cross-entity
// fields resolve by store lookup; a dangling reference resolves to null.
func newEntityTypes(store storage.Store, userType *graphql.Object) (projectType, taskType *graphql.Object) {
	projectType = graphql.NewObject(graphql.ObjectConfig{
		Name: "Project",
		Fields: graphql.FieldsThunk(func() graphql.Fields {
			return graphql.Fields{
				"id": &graphql.Field{
					Type: graphql.ID,
					Resolve: func(p graphql.ResolveParams) (interface{}, error) {
						return p.Source.(*models.Project).ID.Hex(), nil
					},
				},
				"name": &graphql.Field{
					Type: graphql.String,
					Resolve: func(p graphql.ResolveParams) (interface{}, error) {
						return p.Source.(*models.Project).Name, nil
					},
				},
				"description": &graphql.Field{
					Type: graphql.String,
					Resolve: func(p graphql.ResolveParams) (interface{}, error) {
						return p.Source.(*models.Project).Description, nil
					},
				},
				"createdAt": &graphql.Field{
					Type: graphql.String,
					Resolve: func(p graphql.ResolveParams) (interface{}, error) {
						return p.Source.(*models.Project).CreatedAt.Format(time.RFC3339), nil
					},
				},
				// Derived view: tasks are looked up by their project
				// pointer, not by following the stored id list.
				"tasks": &graphql.Field{
					Type: graphql.NewList(taskType),
					Resolve: func(p graphql.ResolveParams) (interface{}, error) {
						project := p.Source.(*models.Project)
						return store.Tasks().GetByProject(p.Context, project.ID)
					},
				},
			}
		}),
	})

	lookupUser := func(p graphql.ResolveParams, id primitive.ObjectID) (interface{}, error) {
		if id.IsZero() {
			return nil, nil
		}
		user, err := store.Users().GetByID(p.Context, id)
		if err != nil {
			return nil, nil
		}
		return user, nil
	}

	taskType = graphql.NewObject(graphql.ObjectConfig{
		Name: "Task",
		Fields: graphql.FieldsThunk(func() graphql.Fields {
			return graphql.Fields{
				"id": &graphql.Field{
					Type: graphql.ID,
					Resolve: func(p graphql.ResolveParams) (interface{}, error) {
						return p.Source.(*models.Task).ID.Hex(), nil
					},
				},
				"title": &graphql.Field{
					Type: graphql.String,
					Resolve: func(p graphql.ResolveParams) (interface{}, error) {
						return p.Source.(*models.Task).Title, nil
					},
				},
				"description": &graphql.Field{
					Type: graphql.String,
					Resolve: func(p graphql.ResolveParams) (interface{}, error) {
						return p.Source.(*models.Task).Description, nil
					},
				},
				"status": &graphql.Field{
					Type: graphql.String,
					Resolve: func(p graphql.ResolveParams) (interface{}, error) {
						return string(p.Source.(*models.Task).Status), nil
					},
				},
				"createdAt": &graphql.Field{
					Type: graphql.String,
					Resolve: func(p graphql.ResolveParams) (interface{}, error) {
						return p.Source.(*models.Task).CreatedAt.Format(time.RFC3339), nil
					},
				},
				"tags": &graphql.Field{
					Type: graphql.NewList(graphql.String),
					Resolve: func(p graphql.ResolveParams) (interface{}, error) {
						return p.Source.(*models.Task).Tags, nil
					},
				},
				"assignedTo": &graphql.Field{
					Type: userType,
					Resolve: func(p graphql.ResolveParams) (interface{}, error) {
						return lookupUser(p, p.Source.(*models.Task).AssignedTo)
					},
				},
				"finishedBy": &graphql.Field{
					Type: userType,
					Resolve: func(p graphql.ResolveParams) (interface{}, error) {
						return lookupUser(p, p.Source.(*models.Task).FinishedBy)
					},
				},
				"project": &graphql.Field{
					Type: projectType,
					Resolve: func(p graphql.ResolveParams) (interface{}, error) {
						project, err := store.Projects().GetByID(p.Context, p.Source.(*models.Task).Project)
						if err != nil {
							return nil, nil
						}
						return project, nil
					},
				},
			}
		}),
	})

	return projectType, taskType
}

// stringArg reads an optional string argument, returning "" when absent.
func stringArg(p graphql.ResolveParams, name string) string {
	v, _ := p.Args[name].(string)
	return v
}

// stringListArg reads an optional list-of-string argument. A nil return
// means the argument was not supplied at all.
func stringListArg(p graphql.ResolveParams, name string) []string {
	raw, ok := p.Args[name].([]interface{})
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
