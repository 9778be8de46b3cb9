package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Project is a container for tasks. TaskIDs is maintained on task
// create/delete but is treated as a derived view on read: the stored Task
// documents' Project field is the authoritative edge, and resolving a
// project's tasks queries by that field.
type Project struct {
	ID          primitive.ObjectID   `bson:"_id,omitempty"`
	Name        string               `bson:"name"`
	Description string               `bson:"description,omitempty"`
	CreatedAt   time.Time            `bson:"createdAt"`
	TaskIDs     []primitive.ObjectID `bson:"tasks"`
}
