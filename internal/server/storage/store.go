// Package storage wires the document store and hands out entity
// repositories to the service layer.
package storage

import (
	"context"

	"github.com/taskboard/taskboard/internal/server/repositories/projects"
	"github.com/taskboard/taskboard/internal/server/repositories/tasks"
	"github.com/taskboard/taskboard/internal/server/repositories/users"
)

// Store provides access to the entity repositories backed by one shared
// database handle.
type Store interface {
	Users() users.Repository
	Projects() projects.Repository
	Tasks() tasks.Repository
	Close(ctx context.Context) error
}
