package types

import (
	"github.com/google/uuid"
)

// ElementID identifies one page element (widget) owning a visibility rule.
// String alias enables type safety while maintaining JSON string serialization.
type ElementID string

// NewElementID generates a UUIDv7 element identifier.
// Time-ordered IDs ensure sequential inserts cluster in B-tree pages.
// Panics on clock regression (uuid.Must); acceptable for ID generation.
func NewElementID() ElementID {
	return ElementID(uuid.Must(uuid.NewV7()).String())
}

// ParseElementID validates and converts a string to ElementID.
// Rejects malformed UUIDs to prevent invalid IDs from entering the system.
func ParseElementID(s string) (ElementID, error) {
	_, err := uuid.Parse(s)
	if err != nil {
		return "", err
	}
	return ElementID(s), nil
}
