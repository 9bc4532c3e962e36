package storage

import (
	"bytes"
	"context"
	"sync"
)

// MemorySlot is an in-process Slot. The zero value is an empty slot ready
// for use.
type MemorySlot struct {
	mu    sync.Mutex
	data  []byte
	found bool
}

// NewMemorySlot returns an empty MemorySlot.
func NewMemorySlot() *MemorySlot {
	return &MemorySlot{}
}

// Load implements Slot.
func (s *MemorySlot) Load(_ context.Context) ([]byte, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return bytes.Clone(s.data), s.found, nil
}

// Store implements Slot.
func (s *MemorySlot) Store(_ context.Context, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data = bytes.Clone(data)
	s.found = true

	return nil
}

var _ Slot = (*MemorySlot)(nil)
