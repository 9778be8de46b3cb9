package tasks

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
	mu    sync.RWMutex
	tasks map[primitive.ObjectID]*models.Task
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{tasks: make(map[primitive.ObjectID]*models.Task)}
}

func cloneTask(t *models.Task) *models.Task {
	c := *t
	c.Tags = append([]string(nil), t.Tags...)
	return &c
}

func (r *MemoryRepository) Create(ctx context.Context, task *models.Task) (*models.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if task.ID.IsZero() {
		task.ID = primitive.NewObjectID()
	}
	r.tasks[task.ID] = cloneTask(task)
	return task, nil
}

func (r *MemoryRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.tasks[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return cloneTask(t), nil
}

func (r *MemoryRepository) GetAll(ctx context.Context) ([]*models.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*models.Task, 0, len(r.tasks))
	for _, t := range r.tasks {
		out = append(out, cloneTask(t))
	}
	return out, nil
}

func (r *MemoryRepository) GetByProject(ctx context.Context, projectID primitive.ObjectID) ([]*models.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*models.Task
	for _, t := range r.tasks {
		if t.Project == projectID {
			out = append(out, cloneTask(t))
		}
	}
	return out, nil
}

func (r *MemoryRepository) Update(ctx context.Context, task *models.Task) (*models.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.tasks[task.ID]; !ok {
		return nil, common.ErrorNotFound
	}
	r.tasks[task.ID] = cloneTask(task)
	return task, nil
}

func (r *MemoryRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.tasks[id]; !ok {
		return common.ErrorNotFound
	}
	delete(r.tasks, id)
	return nil
}
