package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/you/termbridge/domain"
)

// loginFailedMessage is shown when the backend gives no usable detail.
const loginFailedMessage = "Login failed"

// SessionServiceImpl implements domain.SessionService. It is the single
// writer of the token store; the gateway client only reads it. The mutex
// makes each exported method atomic, nothing more: overlapping Login calls
// are not deduplicated and the last one to resolve determines final state.
type SessionServiceImpl struct {
	gateway domain.GatewayClient
	tokens  domain.TokenStore
	policy  domain.PolicyService
	logger  *zap.Logger

	mu        sync.RWMutex
	user      *domain.UserProfile
	token     string
	status    domain.SessionStatus
	lastError string
	listeners []domain.SessionListener
}

// NewSessionService creates a session service starting in the anonymous
// state. Call Initialize once at process start to restore a persisted
// session.
func NewSessionService(
	gateway domain.GatewayClient,
	tokens domain.TokenStore,
	policy domain.PolicyService,
	logger *zap.Logger,
) domain.SessionService {
	return &SessionServiceImpl{
		gateway: gateway,
		tokens:  tokens,
		policy:  policy,
		logger:  logger,
		status:  domain.StatusAnonymous,
	}
}

// Initialize implements domain.SessionService. A persisted token that the
// profile fetch rejects is discarded silently; the distinction between an
// invalid token and an unreachable server is deliberately not made here.
func (s *SessionServiceImpl) Initialize(ctx context.Context) error {
	token, err := s.tokens.Get(ctx)
	if err != nil {
		return fmt.Errorf("failed to read persisted token: %w", err)
	}
	if token == "" {
		return nil
	}

	s.mu.Lock()
	s.token = token
	s.status = domain.StatusAuthenticating
	s.mu.Unlock()

	profile, err := s.gateway.FetchProfile(ctx)
	if err != nil {
		s.logger.Info("discarding persisted session", zap.Error(err))
		s.mu.Lock()
		s.status = domain.StatusInvalid
		s.mu.Unlock()
		s.reset(ctx)
		// Recorded for diagnostics only; the silent reset is the
		// documented behavior and nothing is surfaced to the caller.
		s.mu.Lock()
		s.lastError = err.Error()
		s.mu.Unlock()
		s.emit(domain.NewSessionEvent(domain.SessionInvalidatedEvent, domain.StatusAnonymous).WithError(err))
		return nil
	}

	s.mu.Lock()
	s.user = profile
	s.status = domain.StatusAuthenticated
	s.lastError = ""
	s.mu.Unlock()

	s.logger.Info("session restored", zap.String("abha_id", profile.ABHAID))
	s.emit(domain.NewSessionEvent(domain.SessionRestoredEvent, domain.StatusAuthenticated).WithABHAID(profile.ABHAID))
	return nil
}

// Login implements domain.SessionService
func (s *SessionServiceImpl) Login(ctx context.Context, abhaID, phone string) error {
	if strings.TrimSpace(abhaID) == "" {
		return &domain.ValidationError{Field: "abha_id", Message: "must not be empty"}
	}
	if strings.TrimSpace(phone) == "" {
		return &domain.ValidationError{Field: "phone", Message: "must not be empty"}
	}

	s.mu.Lock()
	s.status = domain.StatusAuthenticating
	s.lastError = ""
	s.mu.Unlock()

	result, err := s.gateway.Login(ctx, abhaID, phone)
	if err != nil {
		return s.failLogin(ctx, abhaID, err)
	}
	if result.AccessToken == "" || result.User == nil {
		return s.failLogin(ctx, abhaID, domain.ErrInvalidResponse)
	}

	if err := s.tokens.Set(ctx, result.AccessToken); err != nil {
		return s.failLogin(ctx, abhaID, fmt.Errorf("failed to persist token: %w", err))
	}

	s.mu.Lock()
	s.user = result.User
	s.token = result.AccessToken
	s.status = domain.StatusAuthenticated
	s.lastError = ""
	s.mu.Unlock()

	s.logger.Info("login succeeded", zap.String("abha_id", result.User.ABHAID))
	s.emit(domain.NewSessionEvent(domain.UserLoginEvent, domain.StatusAuthenticated).WithABHAID(result.User.ABHAID))
	return nil
}

// failLogin resets the session to anonymous, records a human-readable
// message, and returns the original error. No partial state survives a
// failed login.
func (s *SessionServiceImpl) failLogin(ctx context.Context, abhaID string, err error) error {
	s.mu.Lock()
	s.user = nil
	s.token = ""
	s.status = domain.StatusAnonymous
	s.lastError = loginErrorMessage(err)
	s.mu.Unlock()

	s.logger.Warn("login failed", zap.String("abha_id", abhaID), zap.Error(err))
	s.emit(domain.NewSessionEvent(domain.UserLoginFailureEvent, domain.StatusAnonymous).WithABHAID(abhaID).WithError(err))
	return err
}

// Logout implements domain.SessionService
func (s *SessionServiceImpl) Logout(ctx context.Context) {
	s.reset(ctx)
	s.emit(domain.NewSessionEvent(domain.UserLogoutEvent, domain.StatusAnonymous))
}

// reset erases the persisted token and clears all session state. Storage
// errors are logged and swallowed so that logout can never fail.
func (s *SessionServiceImpl) reset(ctx context.Context) {
	if err := s.tokens.Remove(ctx); err != nil {
		s.logger.Warn("failed to erase persisted token", zap.Error(err))
	}

	s.mu.Lock()
	s.user = nil
	s.token = ""
	s.status = domain.StatusAnonymous
	s.lastError = ""
	s.mu.Unlock()
}

// CurrentUser implements domain.SessionService
func (s *SessionServiceImpl) CurrentUser() *domain.UserProfile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

// Token implements domain.SessionService
func (s *SessionServiceImpl) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// Status implements domain.SessionService
func (s *SessionServiceImpl) Status() domain.SessionStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.status
}

// LastError implements domain.SessionService
func (s *SessionServiceImpl) LastError() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastError
}

// IsLoading implements domain.SessionService
func (s *SessionServiceImpl) IsLoading() bool {
	return s.Status() == domain.StatusAuthenticating
}

// Allows implements domain.SessionService. Policy evaluation errors deny.
func (s *SessionServiceImpl) Allows(operation string) bool {
	allowed, err := s.policy.Allowed(s.Status(), operation)
	if err != nil {
		s.logger.Warn("policy evaluation failed", zap.String("operation", operation), zap.Error(err))
		return false
	}
	return allowed
}

// Subscribe implements domain.SessionService
func (s *SessionServiceImpl) Subscribe(listener domain.SessionListener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, listener)
}

func (s *SessionServiceImpl) emit(event domain.SessionEvent) {
	s.mu.RLock()
	listeners := s.listeners
	s.mu.RUnlock()
	for _, l := range listeners {
		l(event)
	}
}

// loginErrorMessage extracts the user-facing message for a failed login:
// the backend's detail when it sent one, otherwise a generic fallback.
func loginErrorMessage(err error) string {
	if errors.Is(err, domain.ErrInvalidResponse) {
		return domain.ErrInvalidResponse.Error()
	}
	var reqErr *domain.RequestError
	if errors.As(err, &reqErr) && reqErr.Message != "" {
		return reqErr.Message
	}
	return loginFailedMessage
}
