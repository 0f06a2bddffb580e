package utils

import (
	"github.com/google/uuid"
)

// GenerateUUIDv7 returns a time-ordered UUID so fresh rows sort naturally.
// Falls back to v4 when the v7 source errors.
func GenerateUUIDv7() uuid.UUID {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New()
	}
	return id
}
