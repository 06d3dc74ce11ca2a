package mocks

import (
	"context"

	"github.com/you/termbridge/domain"
)

// MockGatewayClient implements domain.GatewayClient interface for testing
type MockGatewayClient struct {
	LoginFunc           func(ctx context.Context, abhaID, phone string) (*domain.LoginResult, error)
	FetchProfileFunc    func(ctx context.Context) (*domain.UserProfile, error)
	FetchHistoryFunc    func(ctx context.Context) ([]domain.TranslationHistoryEntry, error)
	SaveTranslationFunc func(ctx context.Context, rec *domain.TranslationRecord) (int64, error)
	SearchFunc          func(ctx context.Context, system domain.SearchSystem, query string) ([]domain.CodeSystemConcept, error)
	TranslateFunc       func(ctx context.Context, system domain.TranslateSystem, code string, saveHistory bool) ([]domain.ConceptMapMapping, error)
}

// NewMockGatewayClient creates a new MockGatewayClient with default behaviors
func NewMockGatewayClient() *MockGatewayClient {
	return &MockGatewayClient{}
}

// DefaultProfile is the profile the mock returns when no override is set.
func DefaultProfile() *domain.UserProfile {
	return &domain.UserProfile{
		ABHAID:    "ABHA001",
		Name:      "Asha Rao",
		Email:     "asha.rao@example.com",
		Phone:     "9876543210",
		DOB:       "1985-04-12",
		Gender:    "F",
		Address:   "12 MG Road, Bengaluru",
		CreatedAt: "2023-01-15T09:30:00Z",
	}
}

// Login exchanges credentials for a token and profile
func (m *MockGatewayClient) Login(ctx context.Context, abhaID, phone string) (*domain.LoginResult, error) {
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, abhaID, phone)
	}
	return &domain.LoginResult{
		Message:     "Login successful",
		User:        DefaultProfile(),
		AccessToken: "mock_access_token",
	}, nil
}

// FetchProfile returns the authenticated user's profile
func (m *MockGatewayClient) FetchProfile(ctx context.Context) (*domain.UserProfile, error) {
	if m.FetchProfileFunc != nil {
		return m.FetchProfileFunc(ctx)
	}
	return DefaultProfile(), nil
}

// FetchHistory returns the user's translation history
func (m *MockGatewayClient) FetchHistory(ctx context.Context) ([]domain.TranslationHistoryEntry, error) {
	if m.FetchHistoryFunc != nil {
		return m.FetchHistoryFunc(ctx)
	}
	return []domain.TranslationHistoryEntry{}, nil
}

// SaveTranslation persists one translation record
func (m *MockGatewayClient) SaveTranslation(ctx context.Context, rec *domain.TranslationRecord) (int64, error) {
	if m.SaveTranslationFunc != nil {
		return m.SaveTranslationFunc(ctx, rec)
	}
	return 1, nil
}

// Search returns concepts matching the query
func (m *MockGatewayClient) Search(ctx context.Context, system domain.SearchSystem, query string) ([]domain.CodeSystemConcept, error) {
	if m.SearchFunc != nil {
		return m.SearchFunc(ctx, system, query)
	}
	return []domain.CodeSystemConcept{}, nil
}

// Translate returns mappings for a code
func (m *MockGatewayClient) Translate(ctx context.Context, system domain.TranslateSystem, code string, saveHistory bool) ([]domain.ConceptMapMapping, error) {
	if m.TranslateFunc != nil {
		return m.TranslateFunc(ctx, system, code, saveHistory)
	}
	return []domain.ConceptMapMapping{}, nil
}
