package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// IsValidID reports whether s is a syntactically valid store identifier
// (24-character hex ObjectID). Pure format check, no lookup.
func IsValidID(s string) bool {
	_, err := primitive.ObjectIDFromHex(s)
	return err == nil
}
