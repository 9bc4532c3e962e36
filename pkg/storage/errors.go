package storage

import "errors"

// Common errors returned by storage implementations.
var (
	// ErrInvalidSlotName is returned when a slot name cannot be mapped safely
	// onto the backend (e.g. it is empty or contains path separators).
	ErrInvalidSlotName = errors.New("invalid slot name")
)
