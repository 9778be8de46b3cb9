package models

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TaskStatus is the closed set of task states.
type TaskStatus string

const (
	StatusTodo       TaskStatus = "Todo"
	StatusInProgress TaskStatus = "In Progress"
	StatusCompleted  TaskStatus = "Completed"
)

// AllTaskStatuses lists the valid statuses in display order.
var AllTaskStatuses = []TaskStatus{StatusTodo, StatusInProgress, StatusCompleted}

// Valid reports whether s is a member of the status enumeration.
func (s TaskStatus) Valid() bool {
	switch s {
	case StatusTodo, StatusInProgress, StatusCompleted:
		return true
	}
	return false
}

// TaskStatusList renders the allowed statuses for error messages.
func TaskStatusList() string {
	parts := make([]string, len(AllTaskStatuses))
	for i, s := range AllTaskStatuses {
		parts[i] = string(s)
	}
	return strings.Join(parts, ", ")
}

// SuggestedTags are well-known task tags offered to clients. Tags remain
// free-form; this list is advisory only.
var SuggestedTags = []string{
	"Urgent",
	"High Priority",
	"Low Priority",
	"Maintenance",
	"Documentation",
	"Research",
	"Backlog",
	"Testing",
	"Deployment",
	"Discussion",
}

// Task is a unit of work. Project is required and never changed after
// creation; AssignedTo is changed only through the dedicated assign
// operation. A zero FinishedBy means nobody finished the task yet.
type Task struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Title       string             `bson:"title"`
	Description string             `bson:"description"`
	Status      TaskStatus         `bson:"status"`
	AssignedTo  primitive.ObjectID `bson:"assignedTo"`
	FinishedBy  primitive.ObjectID `bson:"finishedBy,omitempty"`
	Project     primitive.ObjectID `bson:"project"`
	CreatedAt   time.Time          `bson:"createdAt"`
	Tags        []string           `bson:"tags,omitempty"`
}
