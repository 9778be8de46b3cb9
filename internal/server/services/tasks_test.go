package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskboard/taskboard/internal/server/models"
)

func TestTaskCreate_StatusEnum(t *testing.T) {
	store, _, _, ts, _ := newTestServices(t)
	assignee := seedUser(t, store, "Alice", "alice@example.com", "secret1", models.RoleUser)
	project := seedProject(t, store, "Launch")

	// Every enumerated status succeeds.
	for i, status := range []string{"Todo", "In Progress", "Completed"} {
		created, err := ts.Create(adminCtx(), TaskCreate{
			Title:       fmt.Sprintf("Task %d", i),
			Description: "desc",
			Status:      status,
			AssignedTo:  assignee.ID.Hex(),
			Project:     project.ID.Hex(),
		})
		require.NoError(t, err, "status %q", status)
		assert.Equal(t, models.TaskStatus(status), created.Status)
	}

	// A non-enumerated status always fails.
	_, err := ts.Create(adminCtx(), TaskCreate{
		Title:       "Bad",
		Description: "desc",
		Status:      "Done",
		AssignedTo:  assignee.ID.Hex(),
		Project:     project.ID.Hex(),
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid task status: Done")
	assert.Contains(t, err.Error(), "Todo, In Progress, Completed")
}

func TestTaskCreate_MaintainsProjectTaskList(t *testing.T) {
	store, _, _, ts, _ := newTestServices(t)
	assignee := seedUser(t, store, "Alice", "alice@example.com", "secret1", models.RoleUser)
	project := seedProject(t, store, "Launch")

	created, err := ts.Create(adminCtx(), TaskCreate{
		Title:       "Write copy",
		Description: "marketing copy for the launch page",
		Status:      "Todo",
		AssignedTo:  assignee.ID.Hex(),
		Project:     project.ID.Hex(),
		Tags:        []string{"Urgent", "my-custom-tag"},
	})
	require.NoError(t, err)
	assert.Equal(t, project.ID, created.Project)

	// The owning project's task list now contains the new identifier.
	stored, err := store.Projects().GetByID(context.Background(), project.ID)
	require.NoError(t, err)
	require.Len(t, stored.TaskIDs, 1)
	assert.Equal(t, created.ID, stored.TaskIDs[0])

	// Deletion detaches it again.
	_, err = ts.Delete(adminCtx(), created.ID.Hex())
	require.NoError(t, err)

	stored, err = store.Projects().GetByID(context.Background(), project.ID)
	require.NoError(t, err)
	assert.Empty(t, stored.TaskIDs)
}

func TestTaskCreate_Validation(t *testing.T) {
	store, _, _, ts, _ := newTestServices(t)
	assignee := seedUser(t, store, "Alice", "alice@example.com", "secret1", models.RoleUser)
	project := seedProject(t, store, "Launch")

	base := TaskCreate{
		Title:       "T",
		Description: "d",
		Status:      "Todo",
		AssignedTo:  assignee.ID.Hex(),
		Project:     project.ID.Hex(),
	}

	tests := []struct {
		name       string
		mutate     func(*TaskCreate)
		wantSubstr string
	}{
		{"empty title", func(a *TaskCreate) { a.Title = "" }, "Title, description and status are required"},
		{"empty description", func(a *TaskCreate) { a.Description = "" }, "Title, description and status are required"},
		{"bad project id", func(a *TaskCreate) { a.Project = "xx" }, "Invalid project ID format"},
		{"bad assignedTo id", func(a *TaskCreate) { a.AssignedTo = "xx" }, "Invalid assignedTo ID format"},
		{"bad finishedBy id", func(a *TaskCreate) { a.FinishedBy = "xx" }, "Invalid finishedBy ID format"},
		{"missing project", func(a *TaskCreate) { a.Project = "507f1f77bcf86cd799439011" }, "Project with ID 507f1f77bcf86cd799439011 not found"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			args := base
			tc.mutate(&args)
			_, err := ts.Create(adminCtx(), args)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantSubstr)
		})
	}
}

func TestTaskUpdate(t *testing.T) {
	store, _, _, ts, _ := newTestServices(t)
	assignee := seedUser(t, store, "Alice", "alice@example.com", "secret1", models.RoleUser)
	project := seedProject(t, store, "Launch")

	created, err := ts.Create(adminCtx(), TaskCreate{
		Title:       "Write copy",
		Description: "desc",
		Status:      "Todo",
		AssignedTo:  assignee.ID.Hex(),
		Project:     project.ID.Hex(),
	})
	require.NoError(t, err)

	updated, err := ts.Update(userCtx(), TaskUpdate{
		ID:          created.ID.Hex(),
		Title:       "Write better copy",
		Description: "desc",
		Status:      "In Progress",
		Tags:        []string{"Testing"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Write better copy", updated.Title)
	assert.Equal(t, models.StatusInProgress, updated.Status)
	assert.Equal(t, []string{"Testing"}, updated.Tags)

	// The project link and assignee survive every update.
	assert.Equal(t, project.ID, updated.Project)
	assert.Equal(t, assignee.ID, updated.AssignedTo)

	// Required fields must be re-supplied even when unchanged.
	_, err = ts.Update(userCtx(), TaskUpdate{ID: created.ID.Hex(), Title: "X", Description: "", Status: "Todo"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Description is required and cannot be empty")

	_, err = ts.Update(userCtx(), TaskUpdate{ID: created.ID.Hex(), Title: "X", Description: "d", Status: "Bogus"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid task status")
}

func TestTaskAssign(t *testing.T) {
	store, _, _, ts, _ := newTestServices(t)
	alice := seedUser(t, store, "Alice", "alice@example.com", "secret1", models.RoleUser)
	bob := seedUser(t, store, "Bob", "bob@example.com", "secret1", models.RoleUser)
	project := seedProject(t, store, "Launch")

	created, err := ts.Create(adminCtx(), TaskCreate{
		Title:       "Write copy",
		Description: "desc",
		Status:      "Todo",
		AssignedTo:  alice.ID.Hex(),
		Project:     project.ID.Hex(),
	})
	require.NoError(t, err)

	updated, err := ts.Assign(userCtx(), created.ID.Hex(), bob.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, bob.ID, updated.AssignedTo)
}

func TestTaskAssign_UnknownUserLeavesTaskUnchanged(t *testing.T) {
	store, _, _, ts, _ := newTestServices(t)
	alice := seedUser(t, store, "Alice", "alice@example.com", "secret1", models.RoleUser)
	project := seedProject(t, store, "Launch")

	created, err := ts.Create(adminCtx(), TaskCreate{
		Title:       "Write copy",
		Description: "desc",
		Status:      "Todo",
		AssignedTo:  alice.ID.Hex(),
		Project:     project.ID.Hex(),
	})
	require.NoError(t, err)

	const unknown = "507f1f77bcf86cd799439011"
	_, err = ts.Assign(userCtx(), created.ID.Hex(), unknown)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "User with ID "+unknown+" not found")

	stored, err := store.Tasks().GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, alice.ID, stored.AssignedTo)
}

func TestTaskAssign_BadIDFormat(t *testing.T) {
	_, _, _, ts, _ := newTestServices(t)

	_, err := ts.Assign(userCtx(), "nope", "alsonope")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid task or user ID format")
}

func TestTaskQueries_RequireLogin(t *testing.T) {
	_, _, _, ts, _ := newTestServices(t)

	_, err := ts.GetAll(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "You must be logged in to view tasks.")
}

func TestTaskDelete_SurvivesMissingProject(t *testing.T) {
	store, _, _, ts, _ := newTestServices(t)
	alice := seedUser(t, store, "Alice", "alice@example.com", "secret1", models.RoleUser)
	project := seedProject(t, store, "Launch")

	created, err := ts.Create(adminCtx(), TaskCreate{
		Title:       "Orphan",
		Description: "desc",
		Status:      "Todo",
		AssignedTo:  alice.ID.Hex(),
		Project:     project.ID.Hex(),
	})
	require.NoError(t, err)

	// Project disappears out from under the task.
	require.NoError(t, store.Projects().Delete(context.Background(), project.ID))

	deleted, err := ts.Delete(adminCtx(), created.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, created.ID, deleted.ID)
}
