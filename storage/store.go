// Package storage persists tournament snapshots.
package storage

import (
	"context"
	"errors"
	"slices"
	"sync"
)

var ErrNotFound = errors.New("storage: no snapshot stored")

// A Store holds at most one snapshot.
type Store interface {
	// Returns ErrNotFound when nothing is stored
	Load(ctx context.Context) ([]byte, error)
	// Replaces the stored snapshot
	Save(ctx context.Context, data []byte) error
	// Removes the stored snapshot. Clearing an empty store is not an error.
	Clear(ctx context.Context) error
}

// MemoryStore keeps the snapshot in memory.
type MemoryStore struct {
	mu   sync.Mutex
	data []byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Load(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.data == nil {
		return nil, ErrNotFound
	}
	return slices.Clone(s.data), nil
}

func (s *MemoryStore) Save(ctx context.Context, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = slices.Clone(data)
	if s.data == nil {
		s.data = []byte{}
	}
	return nil
}

func (s *MemoryStore) Clear(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = nil
	return nil
}
