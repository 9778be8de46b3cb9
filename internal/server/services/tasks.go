package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/taskboard/taskboard/internal/common"
	"github.com/taskboard/taskboard/internal/server/auth"
	"github.com/taskboard/taskboard/internal/server/models"
	"github.com/taskboard/taskboard/internal/server/storage"
)

// TaskCreate carries the arguments for TaskService.Create.
type TaskCreate struct {
	Title       string
	Description string
	Status      string
	AssignedTo  string
	FinishedBy  string
	Project     string
	Tags        []string
}

// TaskUpdate carries the arguments for TaskService.Update. Project and
// AssignedTo are deliberately absent: the project link is immutable and
// assignment goes through the dedicated Assign operation.
type TaskUpdate struct {
	ID          string
	Title       string
	Description string
	Status      string
	FinishedBy  string
	Tags        []string
}

// TaskService implements the task domain operations, including the
// bidirectional task-project link maintenance on create and delete.
//
// Reference fields are format-validated everywhere but existence-validated
// only where the original flow does it: the project on create, and both
// sides on Assign. FinishedBy is never checked against the store.
type TaskService struct {
	store storage.Store
}

func NewTaskService(store storage.Store) *TaskService {
	return &TaskService{store: store}
}

// GetAll returns every task. Any authenticated role.
func (s *TaskService) GetAll(ctx context.Context) ([]*models.Task, error) {
	if err := auth.Check(ctx, bothRoles, auth.Messages{
		Authentication: "You must be logged in to view tasks.",
	}); err != nil {
		return nil, fmt.Errorf("Failed to get tasks: %w", err)
	}

	tasks, err := s.store.Tasks().GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("Failed to get tasks: %w", err)
	}
	if len(tasks) == 0 {
		return nil, errors.New("Failed to get tasks: No tasks found")
	}
	return tasks, nil
}

// GetByID returns one task by identifier. Any authenticated role.
func (s *TaskService) GetByID(ctx context.Context, id string) (*models.Task, error) {
	if err := auth.Check(ctx, bothRoles, auth.Messages{
		Authentication: "You must be logged in to view a task.",
	}); err != nil {
		return nil, fmt.Errorf("Failed to get task: %w", err)
	}

	if !models.IsValidID(id) {
		return nil, errors.New("Failed to get task: Invalid task ID format")
	}

	task, err := s.store.Tasks().GetByID(ctx, oid(id))
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, fmt.Errorf("Failed to get task: Task with ID %s not found", id)
		}
		return nil, fmt.Errorf("Failed to get task: %w", err)
	}
	return task, nil
}

// Create validates the task shape and references, stores the task, and
// appends its identifier to the owning project's task list. The two writes
// are separate with no atomicity guarantee.
func (s *TaskService) Create(ctx context.Context, args TaskCreate) (*models.Task, error) {
	if err := auth.Check(ctx, bothRoles, auth.Messages{
		Authentication: "You must be logged in to create tasks.",
		Authorization:  "You do not have the necessary permissions to create tasks.",
	}); err != nil {
		return nil, fmt.Errorf("Failed to create task: %w", err)
	}

	status := models.TaskStatus(args.Status)
	if !status.Valid() {
		return nil, fmt.Errorf("Failed to create task: Invalid task status: %s. Allowed values are %s",
			args.Status, models.TaskStatusList())
	}
	if args.Title == "" || args.Status == "" || args.Description == "" {
		return nil, errors.New("Failed to create task: Title, description and status are required")
	}
	if !models.IsValidID(args.Project) {
		return nil, errors.New("Failed to create task: Invalid project ID format")
	}
	if !models.IsValidID(args.AssignedTo) {
		return nil, errors.New("Failed to create task: Invalid assignedTo ID format")
	}
	if args.FinishedBy != "" && !models.IsValidID(args.FinishedBy) {
		return nil, errors.New("Failed to create task: Invalid finishedBy ID format.")
	}

	project, err := s.store.Projects().GetByID(ctx, oid(args.Project))
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, fmt.Errorf("Failed to create task: Project with ID %s not found", args.Project)
		}
		return nil, fmt.Errorf("Failed to create task: %w", err)
	}

	task := &models.Task{
		Title:       args.Title,
		Description: args.Description,
		Status:      status,
		AssignedTo:  oid(args.AssignedTo),
		Project:     project.ID,
		CreatedAt:   time.Now(),
		Tags:        args.Tags,
	}
	if args.FinishedBy != "" {
		task.FinishedBy = oid(args.FinishedBy)
	}

	created, err := s.store.Tasks().Create(ctx, task)
	if err != nil {
		return nil, fmt.Errorf("Failed to create task: %w", err)
	}

	// Second, non-atomic write: concurrent mutations of the same project
	// can lose updates (accepted limitation).
	project.TaskIDs = append(project.TaskIDs, created.ID)
	if _, err := s.store.Projects().Update(ctx, project); err != nil {
		return nil, fmt.Errorf("Failed to create task: %w", err)
	}

	return created, nil
}

// Update modifies a task's title, description, status, finishedBy and tags.
// Title, description and status must be re-supplied even when unchanged;
// the project link and assignee are never touched here.
func (s *TaskService) Update(ctx context.Context, args TaskUpdate) (*models.Task, error) {
	if err := auth.Check(ctx, bothRoles, auth.Messages{
		Authentication: "You must be logged in to update tasks.",
		Authorization:  "You do not have the necessary permissions to update tasks.",
	}); err != nil {
		return nil, fmt.Errorf("Failed to update task: %w", err)
	}

	if !models.IsValidID(args.ID) {
		return nil, errors.New("Failed to update task: Invalid task ID format")
	}

	if args.Status != "" {
		if !models.TaskStatus(args.Status).Valid() {
			return nil, fmt.Errorf("Failed to update task: Invalid task status: %s. Allowed values are %s",
				args.Status, models.TaskStatusList())
		}
	}

	task, err := s.store.Tasks().GetByID(ctx, oid(args.ID))
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, fmt.Errorf("Failed to update task: Task with ID %s not found", args.ID)
		}
		return nil, fmt.Errorf("Failed to update task: %w", err)
	}

	if strings.TrimSpace(args.Title) == "" {
		return nil, errors.New("Failed to update task: Title is required and cannot be empty")
	}
	if strings.TrimSpace(args.Description) == "" {
		return nil, errors.New("Failed to update task: Description is required and cannot be empty")
	}
	if strings.TrimSpace(args.Status) == "" {
		return nil, errors.New("Failed to update task: Status is required and cannot be empty")
	}
	if args.FinishedBy != "" && !models.IsValidID(args.FinishedBy) {
		return nil, errors.New("Failed to update task: Invalid finishedBy ID format")
	}

	task.Title = args.Title
	task.Description = args.Description
	task.Status = models.TaskStatus(args.Status)
	if args.FinishedBy != "" {
		task.FinishedBy = oid(args.FinishedBy)
	}
	if args.Tags != nil {
		task.Tags = args.Tags
	}

	updated, err := s.store.Tasks().Update(ctx, task)
	if err != nil {
		return nil, fmt.Errorf("Failed to update task: %w", err)
	}
	return updated, nil
}

// Delete removes a task, first detaching its identifier from the owning
// project's task list if that project still exists.
func (s *TaskService) Delete(ctx context.Context, id string) (*models.Task, error) {
	if err := auth.Check(ctx, bothRoles, auth.Messages{
		Authentication: "You must be logged in to delete tasks.",
		Authorization:  "You do not have the necessary permissions to delete tasks.",
	}); err != nil {
		return nil, fmt.Errorf("Failed to delete task: %w", err)
	}

	if !models.IsValidID(id) {
		return nil, errors.New("Failed to delete task: Invalid task ID format")
	}

	task, err := s.store.Tasks().GetByID(ctx, oid(id))
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, fmt.Errorf("Failed to delete task: Task with ID %s not found", id)
		}
		return nil, fmt.Errorf("Failed to delete task: %w", err)
	}

	if project, err := s.store.Projects().GetByID(ctx, task.Project); err == nil {
		kept := project.TaskIDs[:0]
		for _, tid := range project.TaskIDs {
			if tid != task.ID {
				kept = append(kept, tid)
			}
		}
		project.TaskIDs = kept
		if _, err := s.store.Projects().Update(ctx, project); err != nil {
			return nil, fmt.Errorf("Failed to delete task: %w", err)
		}
	} else if !errors.Is(err, common.ErrorNotFound) {
		return nil, fmt.Errorf("Failed to delete task: %w", err)
	}

	if err := s.store.Tasks().Delete(ctx, task.ID); err != nil {
		return nil, fmt.Errorf("Failed to delete task: %w", err)
	}
	return task, nil
}

// Assign sets a task's assignee after checking that both the task and the
// user exist. Distinct not-found messages name the offending identifier.
func (s *TaskService) Assign(ctx context.Context, taskID, userID string) (*models.Task, error) {
	if err := auth.Check(ctx, bothRoles, auth.Messages{
		Authentication: "You must be logged in to assign tasks.",
		Authorization:  "You do not have the necessary permissions to assign tasks.",
	}); err != nil {
		return nil, fmt.Errorf("Failed to assign task: %w", err)
	}

	if !models.IsValidID(taskID) || !models.IsValidID(userID) {
		return nil, errors.New("Failed to assign task: Invalid task or user ID format")
	}

	task, err := s.store.Tasks().GetByID(ctx, oid(taskID))
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, fmt.Errorf("Failed to assign task: Task with ID %s not found", taskID)
		}
		return nil, fmt.Errorf("Failed to assign task: %w", err)
	}

	user, err := s.store.Users().GetByID(ctx, oid(userID))
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, fmt.Errorf("Failed to assign task: User with ID %s not found", userID)
		}
		return nil, fmt.Errorf("Failed to assign task: %w", err)
	}

	task.AssignedTo = user.ID
	updated, err := s.store.Tasks().Update(ctx, task)
	if err != nil {
		return nil, fmt.Errorf("Failed to assign task: %w", err)
	}
	return updated, nil
}
