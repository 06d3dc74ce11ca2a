package domain

import "context"

// TokenStore is the single persisted slot for the bearer token. Get returns
// an empty string, not an error, when no token is stored. Remove is
// idempotent. Only the session manager writes; the gateway client only
// reads.
type TokenStore interface {
	Get(ctx context.Context) (string, error)
	Set(ctx context.Context, token string) error
	Remove(ctx context.Context) error
}

// GatewayClient is the only component permitted to perform network I/O
// against the portal backend. Every operation attaches the bearer token
// from the token store when one is present, never retries, and surfaces
// errors to the caller unmodified.
type GatewayClient interface {
	// Login exchanges an ABHA id and phone number for a token and profile.
	// It does not persist the token; that is the session manager's job.
	Login(ctx context.Context, abhaID, phone string) (*LoginResult, error)
	// FetchProfile returns the profile for the current bearer token.
	FetchProfile(ctx context.Context) (*UserProfile, error)
	// FetchHistory returns the current user's translation history,
	// most-recent-first. An empty history is an empty slice, not an error.
	FetchHistory(ctx context.Context) ([]TranslationHistoryEntry, error)
	// SaveTranslation explicitly persists one translation record and
	// returns the new entry's id.
	SaveTranslation(ctx context.Context, rec *TranslationRecord) (int64, error)
	// Search returns concepts matching the query in the given code system.
	// No matches is an empty slice, not an error.
	Search(ctx context.Context, system SearchSystem, query string) ([]CodeSystemConcept, error)
	// Translate returns the mappings for a code. When saveHistory is true
	// and a valid token is attached, the backend records the lookup in the
	// user's history as a side effect.
	Translate(ctx context.Context, system TranslateSystem, code string, saveHistory bool) ([]ConceptMapMapping, error)
}

// SessionService is the single source of truth for who is using the client
// right now. It owns the persisted token slot and gates which operations
// the current session may perform.
type SessionService interface {
	// Initialize restores a persisted session at process start. A token
	// that the profile fetch rejects is discarded silently; the returned
	// error reports token-store I/O faults only.
	Initialize(ctx context.Context) error
	// Login exchanges credentials for an authenticated session. On any
	// failure the session resets to anonymous and the error is returned
	// for the caller to present.
	Login(ctx context.Context, abhaID, phone string) error
	// Logout unconditionally resets the session to anonymous. It is
	// idempotent and never fails.
	Logout(ctx context.Context)

	CurrentUser() *UserProfile
	Token() string
	Status() SessionStatus
	LastError() string
	IsLoading() bool

	// Allows reports whether the current session status permits the named
	// operation.
	Allows(operation string) bool
	// Subscribe registers a listener for session lifecycle events.
	Subscribe(SessionListener)
}

// PolicyService decides which operations a session status may perform.
type PolicyService interface {
	Allowed(status SessionStatus, operation string) (bool, error)
}
