package services

import (
	"context"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/taskboard/taskboard/internal/server/auth"
	"github.com/taskboard/taskboard/internal/server/config"
	"github.com/taskboard/taskboard/internal/server/models"
	"github.com/taskboard/taskboard/internal/server/storage"
)

// fakeMailer records dispatched reset tokens instead of talking to SMTP.
type fakeMailer struct {
	to     []string
	tokens []string
	err    error
}

func (f *fakeMailer) SendResetToken(ctx context.Context, to string, token string) error {
	if f.err != nil {
		return f.err
	}
	f.to = append(f.to, to)
	f.tokens = append(f.tokens, token)
	return nil
}

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.SecretKey = "test-secret"
	return cfg
}

func adminCtx() context.Context {
	return auth.WithIdentity(context.Background(), &auth.Identity{
		ID: primitive.NewObjectID().Hex(), Email: "admin@example.com", Role: models.RoleAdmin,
	})
}

func userCtx() context.Context {
	return auth.WithIdentity(context.Background(), &auth.Identity{
		ID: primitive.NewObjectID().Hex(), Email: "user@example.com", Role: models.RoleUser,
	})
}

func newTestServices(t *testing.T) (*storage.MemoryStore, *UserService, *ProjectService, *TaskService, *fakeMailer) {
	t.Helper()
	store := storage.NewMemoryStore()
	mailer := &fakeMailer{}
	us := NewUserService(store, mailer, testConfig())
	ps := NewProjectService(store)
	ts := NewTaskService(store)
	return store, us, ps, ts, mailer
}

// seedUser inserts a user with a hashed password directly into the store.
func seedUser(t *testing.T, store *storage.MemoryStore, name, email, password string, role models.Role) *models.User {
	t.Helper()
	hash, err := auth.HashPassword(password)
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	u, err := store.Users().Create(context.Background(), &models.User{
		Name: name, Email: email, Password: hash, Role: role,
	})
	if err != nil {
		t.Fatalf("seed user error: %v", err)
	}
	return u
}

// seedProject inserts an empty project directly into the store.
func seedProject(t *testing.T, store *storage.MemoryStore, name string) *models.Project {
	t.Helper()
	p, err := store.Projects().Create(context.Background(), &models.Project{
		Name: name, CreatedAt: time.Now(), TaskIDs: []primitive.ObjectID{},
	})
	if err != nil {
		t.Fatalf("seed project error: %v", err)
	}
	return p
}
