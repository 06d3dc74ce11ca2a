package mocks

import (
	"context"
	"sync"

	"github.com/you/termbridge/domain"
)

// MockTokenStore implements domain.TokenStore interface for testing. By
// default it behaves like a working in-memory slot; individual operations
// can be overridden to inject storage faults.
type MockTokenStore struct {
	GetFunc    func(ctx context.Context) (string, error)
	SetFunc    func(ctx context.Context, token string) error
	RemoveFunc func(ctx context.Context) error

	mu    sync.Mutex
	token string

	SetCalls    int
	RemoveCalls int
}

// NewMockTokenStore creates a new MockTokenStore with default behaviors
func NewMockTokenStore() *MockTokenStore {
	return &MockTokenStore{}
}

// SeedToken pre-loads the slot, simulating a token persisted by an earlier
// process instance.
func (m *MockTokenStore) SeedToken(token string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = token
}

// StoredToken returns the slot's current content.
func (m *MockTokenStore) StoredToken() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token
}

// Get reads the token slot
func (m *MockTokenStore) Get(ctx context.Context) (string, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token, nil
}

// Set writes the token slot
func (m *MockTokenStore) Set(ctx context.Context, token string) error {
	m.mu.Lock()
	m.SetCalls++
	m.mu.Unlock()
	if m.SetFunc != nil {
		return m.SetFunc(ctx, token)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = token
	return nil
}

// Remove clears the token slot
func (m *MockTokenStore) Remove(ctx context.Context) error {
	m.mu.Lock()
	m.RemoveCalls++
	m.mu.Unlock()
	if m.RemoveFunc != nil {
		return m.RemoveFunc(ctx)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = ""
	return nil
}

var _ domain.TokenStore = (*MockTokenStore)(nil)
