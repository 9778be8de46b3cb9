// Package tasks defines the task repository contract and its backends.
package tasks

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/taskboard/taskboard/internal/server/models"
)

// Repository is the persistence contract for task records. Lookups that
// match nothing return common.ErrorNotFound.
type Repository interface {
	Create(ctx context.Context, task *models.Task) (*models.Task, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Task, error)
	GetAll(ctx context.Context) ([]*models.Task, error)

	// GetByProject returns every task whose Project field equals projectID.
	// This is the authoritative read side of the task-project relationship.
	GetByProject(ctx context.Context, projectID primitive.ObjectID) ([]*models.Task, error)

	Update(ctx context.Context, task *models.Task) (*models.Task, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}
