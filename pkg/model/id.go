package model

import "github.com/google/uuid"

// NewID returns a fresh random identifier for a record.
func NewID() string {
	return uuid.NewString()
}
