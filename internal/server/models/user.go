// Package models defines the persisted document shapes for users, projects
// and tasks, together with their closed enumerations.
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Role is the closed set of user roles.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// Valid reports whether r is a member of the role enumeration.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleUser:
		return true
	}
	return false
}

// User is an identity record. Password holds only a bcrypt hash, never the
// plaintext. ResetToken and ResetTokenExpiry are set while a password-reset
// request is pending and cleared once the reset completes.
type User struct {
	ID               primitive.ObjectID `bson:"_id,omitempty"`
	Name             string             `bson:"name"`
	Email            string             `bson:"email"`
	Password         string             `bson:"password"`
	Role             Role               `bson:"role"`
	ResetToken       string             `bson:"resetToken,omitempty"`
	ResetTokenExpiry *time.Time         `bson:"resetTokenExpiry,omitempty"`
}
