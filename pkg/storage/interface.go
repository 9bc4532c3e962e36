// Package storage defines the client-side persistence the application relies
// on: a single named slot holding the last serialized result set the client
// rendered. Backends live under pkg/storage/<backend>/.
package storage

import "context"

// Slot is a single named cache slot. It holds at most one value; Store
// replaces whatever was there before.
type Slot interface {
	// Load returns the stored bytes. found is false when nothing was stored
	// yet; that case is not an error.
	Load(ctx context.Context) (data []byte, found bool, err error)
	// Store replaces the slot content with data.
	Store(ctx context.Context, data []byte) error
}
