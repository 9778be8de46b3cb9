// Package users defines the user repository contract and its backends.
package users

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/taskboard/taskboard/internal/server/models"
)

// Repository is the persistence contract for user records. Lookups that
// match nothing return common.ErrorNotFound.
type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)

	// GetByResetToken returns the user holding the given reset token whose
	// expiry is still after now.
	GetByResetToken(ctx context.Context, token string, now time.Time) (*models.User, error)

	GetAll(ctx context.Context) ([]*models.User, error)
	Update(ctx context.Context, user *models.User) (*models.User, error)
	Delete(ctx context.Context, id primitive.ObjectID) error

	// DeleteAllExceptRole removes every user whose role differs from keep
	// and returns the number of records removed.
	DeleteAllExceptRole(ctx context.Context, keep models.Role) (int64, error)

	Count(ctx context.Context) (int64, error)
}
