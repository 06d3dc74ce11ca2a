package storage

import (
	"context"
	"sync"

	"github.com/you/termbridge/domain"
)

// MemoryStore is a process-local token store. Sessions do not survive a
// restart; intended for tests and throwaway runs.
type MemoryStore struct {
	mu    sync.Mutex
	token string
}

// NewMemoryStore creates an in-memory token store
func NewMemoryStore() domain.TokenStore {
	return &MemoryStore{}
}

// Get implements domain.TokenStore
func (s *MemoryStore) Get(_ context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token, nil
}

// Set implements domain.TokenStore
func (s *MemoryStore) Set(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	return nil
}

// Remove implements domain.TokenStore
func (s *MemoryStore) Remove(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	return nil
}
