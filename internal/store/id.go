package store

import (
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ToExternal renders a store identifier in the form used in URLs and JSON.
func ToExternal(id primitive.ObjectID) string {
	return id.Hex()
}

// IsValidID reports whether s is a well-formed 24 hex character ObjectID.
func IsValidID(s string) bool {
	return primitive.IsValidObjectID(s)
}

// ToNative parses an external identifier. The error matches
// ErrInvalidIdentifier.
func ToNative(s string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(s)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w: %q", ErrInvalidIdentifier, s)
	}
	return id, nil
}
