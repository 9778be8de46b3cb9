package projects

import (
	"context"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/taskboard/taskboard/internal/common"
	"github.com/taskboard/taskboard/internal/server/models"
)

// MemoryRepository is an in-memory Repository used by tests and by the
// in-memory store.
type MemoryRepository struct {
	mu       sync.RWMutex
	projects map[primitive.ObjectID]*models.Project
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{projects: make(map[primitive.ObjectID]*models.Project)}
}

func cloneProject(p *models.Project) *models.Project {
	c := *p
	c.TaskIDs = append([]primitive.ObjectID(nil), p.TaskIDs...)
	return &c
}

func (r *MemoryRepository) Create(ctx context.Context, project *models.Project) (*models.Project, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if project.ID.IsZero() {
		project.ID = primitive.NewObjectID()
	}
	r.projects[project.ID] = cloneProject(project)
	return project, nil
}

func (r *MemoryRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Project, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.projects[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return cloneProject(p), nil
}

func (r *MemoryRepository) GetAll(ctx context.Context) ([]*models.Project, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*models.Project, 0, len(r.projects))
	for _, p := range r.projects {
		out = append(out, cloneProject(p))
	}
	return out, nil
}

func (r *MemoryRepository) Update(ctx context.Context, project *models.Project) (*models.Project, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.projects[project.ID]; !ok {
		return nil, common.ErrorNotFound
	}
	r.projects[project.ID] = cloneProject(project)
	return project, nil
}

func (r *MemoryRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.projects[id]; !ok {
		return common.ErrorNotFound
	}
	delete(r.projects, id)
	return nil
}

func (r *MemoryRepository) DeleteAll(ctx context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := int64(len(r.projects))
	r.projects = make(map[primitive.ObjectID]*models.Project)
	return n, nil
}
