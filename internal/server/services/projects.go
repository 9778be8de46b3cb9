package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/taskboard/taskboard/internal/common"
	"github.com/taskboard/taskboard/internal/server/auth"
	"github.com/taskboard/taskboard/internal/server/models"
	"github.com/taskboard/taskboard/internal/server/storage"
)

var bothRoles = []models.Role{models.RoleAdmin, models.RoleUser}

// ProjectService implements the project domain operations.
type ProjectService struct {
	store storage.Store
}

func NewProjectService(store storage.Store) *ProjectService {
	return &ProjectService{store: store}
}

// GetAll returns every project. Any authenticated role.
func (s *ProjectService) GetAll(ctx context.Context) ([]*models.Project, error) {
	if err := auth.Check(ctx, bothRoles, auth.Messages{
		Authentication: "You must be logged in to view projects.",
		Authorization:  "Unauthorized: You do not have permission to view projects.",
	}); err != nil {
		return nil, fmt.Errorf("Failed to get projects: %w", err)
	}

	projects, err := s.store.Projects().GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("Failed to get projects: %w", err)
	}
	if len(projects) == 0 {
		return nil, errors.New("Failed to get projects: No projects found.")
	}
	return projects, nil
}

// GetByID returns one project by identifier. Any authenticated role.
func (s *ProjectService) GetByID(ctx context.Context, id string) (*models.Project, error) {
	if err := auth.Check(ctx, bothRoles, auth.Messages{
		Authentication: "You must be logged in to view this project.",
		Authorization:  "Unauthorized: You do not have permission to view this project.",
	}); err != nil {
		return nil, fmt.Errorf("Failed to get project: %w", err)
	}

	if !models.IsValidID(id) {
		return nil, errors.New("Failed to get project: Invalid project ID format.")
	}

	project, err := s.store.Projects().GetByID(ctx, oid(id))
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, fmt.Errorf("Failed to get project: Project with ID %s not found.", id)
		}
		return nil, fmt.Errorf("Failed to get project: %w", err)
	}
	return project, nil
}

// Create stores a new project with a server-assigned creation time and an
// empty task list. Any authenticated role.
func (s *ProjectService) Create(ctx context.Context, name, description string) (*models.Project, error) {
	if err := auth.Check(ctx, bothRoles, auth.Messages{
		Authentication: "Authentication required to create a project.",
		Authorization:  "You do not have the necessary permissions to create projects.",
	}); err != nil {
		return nil, fmt.Errorf("Failed to create project: %w", err)
	}

	if name == "" {
		return nil, errors.New("Failed to create project: Name is required")
	}

	project := &models.Project{
		Name:        name,
		Description: description,
		CreatedAt:   time.Now(),
		TaskIDs:     []primitive.ObjectID{},
	}
	created, err := s.store.Projects().Create(ctx, project)
	if err != nil {
		return nil, fmt.Errorf("Failed to create project: %w", err)
	}
	return created, nil
}

// Update modifies a project's name and description. Any authenticated role.
func (s *ProjectService) Update(ctx context.Context, id, name, description string) (*models.Project, error) {
	if err := auth.Check(ctx, bothRoles, auth.Messages{
		Authentication: "Authentication required to update a project.",
		Authorization:  "You do not have the necessary permissions to update projects.",
	}); err != nil {
		return nil, fmt.Errorf("Failed to update project: %w", err)
	}

	if !models.IsValidID(id) {
		return nil, errors.New("Failed to update project: Invalid project ID format.")
	}
	if name == "" {
		return nil, errors.New("Failed to update project: Name is required")
	}

	project, err := s.store.Projects().GetByID(ctx, oid(id))
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, fmt.Errorf("Failed to update project: Project with ID %s not found.", id)
		}
		return nil, fmt.Errorf("Failed to update project: %w", err)
	}

	project.Name = name
	project.Description = description
	updated, err := s.store.Projects().Update(ctx, project)
	if err != nil {
		return nil, fmt.Errorf("Failed to update project: %w", err)
	}
	return updated, nil
}

// Delete removes one project by identifier and returns the deleted record.
// Any authenticated role.
func (s *ProjectService) Delete(ctx context.Context, id string) (*models.Project, error) {
	if err := auth.Check(ctx, bothRoles, auth.Messages{
		Authentication: "Authentication required to delete a project.",
		Authorization:  "You do not have the necessary permissions to delete projects.",
	}); err != nil {
		return nil, fmt.Errorf("Failed to delete project: %w", err)
	}

	if !models.IsValidID(id) {
		return nil, errors.New("Failed to delete project: Invalid project ID format.")
	}

	project, err := s.store.Projects().GetByID(ctx, oid(id))
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, fmt.Errorf("Failed to delete project: Project with ID %s not found.", id)
		}
		return nil, fmt.Errorf("Failed to delete project: %w", err)
	}

	if err := s.store.Projects().Delete(ctx, project.ID); err != nil {
		return nil, fmt.Errorf("Failed to delete project: %w", err)
	}
	return project, nil
}

// DeleteAll removes every project. Fails when none existed. Admin only.
func (s *ProjectService) DeleteAll(ctx context.Context) (string, error) {
	if err := auth.Check(ctx, []models.Role{models.RoleAdmin}, auth.Messages{
		Authentication: "Authentication required to delete all projects.",
		Authorization:  "Only admin can delete all projects.",
	}); err != nil {
		return "", fmt.Errorf("Failed to delete all projects: %w", err)
	}

	deleted, err := s.store.Projects().DeleteAll(ctx)
	if err != nil {
		return "", fmt.Errorf("Failed to delete all projects: %w", err)
	}
	if deleted == 0 {
		return "", errors.New("Failed to delete all projects: No projects found to delete.")
	}

	return fmt.Sprintf("%d projects deleted.", deleted), nil
}
