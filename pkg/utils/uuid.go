package utils

import "github.com/google/uuid"

// NewID returns a random UUID string for catalogue row identity.
func NewID() string {
	return uuid.NewString()
}
