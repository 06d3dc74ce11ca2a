package mocks

import "github.com/you/termbridge/domain"

// MockPolicyService implements domain.PolicyService interface for testing
type MockPolicyService struct {
	AllowedFunc func(status domain.SessionStatus, operation string) (bool, error)
}

// NewMockPolicyService creates a new MockPolicyService with default behaviors
func NewMockPolicyService() *MockPolicyService {
	return &MockPolicyService{}
}

// Allowed reports whether the status permits the operation. Default: allow
// everything.
func (m *MockPolicyService) Allowed(status domain.SessionStatus, operation string) (bool, error) {
	if m.AllowedFunc != nil {
		return m.AllowedFunc(status, operation)
	}
	return true, nil
}
