package storage

import (
	"context"

	"github.com/taskboard/taskboard/internal/server/repositories/projects"
	"github.com/taskboard/taskboard/internal/server/repositories/tasks"
	"github.com/taskboard/taskboard/internal/server/repositories/users"
)

// MemoryStore is an in-memory Store used by tests.
type MemoryStore struct {
	users    *users.MemoryRepository
	projects *projects.MemoryRepository
	tasks    *tasks.MemoryRepository
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:    users.NewMemoryRepository(),
		projects: projects.NewMemoryRepository(),
		tasks:    tasks.NewMemoryRepository(),
	}
}

func (s *MemoryStore) Users() users.Repository       { return s.users }
func (s *MemoryStore) Projects() projects.Repository { return s.projects }
func (s *MemoryStore) Tasks() tasks.Repository       { return s.tasks }

func (s *MemoryStore) Close(ctx context.Context) error { return nil }
