package utils

import "github.com/google/uuid"

// NewUUID returns a new time-ordered (v7) UUID string for use as an account
// identifier. Falls back to a random v4 UUID if v7 generation fails.
func NewUUID() string {
	v7, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}

	return v7.String()
}
