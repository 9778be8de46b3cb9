// Package projects defines the project repository contract and its backends.
package projects

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/taskboard/taskboard/internal/server/models"
)

// Repository is the persistence contract for project records. Lookups that
// match nothing return common.ErrorNotFound.
type Repository interface {
	Create(ctx context.Context, project *models.Project) (*models.Project, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Project, error)
	GetAll(ctx context.Context) ([]*models.Project, error)
	Update(ctx context.Context, project *models.Project) (*models.Project, error)
	Delete(ctx context.Context, id primitive.ObjectID) error

	// DeleteAll removes every project and returns the number removed.
	DeleteAll(ctx context.Context) (int64, error)
}
