package domain

import "time"

// SessionEventType defines the type of session lifecycle event
type SessionEventType string

const (
	SessionRestoredEvent    SessionEventType = "SESSION_RESTORED"
	SessionInvalidatedEvent SessionEventType = "SESSION_INVALIDATED"
	UserLoginEvent          SessionEventType = "USER_LOGIN"
	UserLoginFailureEvent   SessionEventType = "USER_LOGIN_FAILED"
	UserLogoutEvent         SessionEventType = "USER_LOGOUT"
)

// SessionEvent describes one transition of the session state machine.
// Consumers (the CLI, logging) receive it after the transition is applied.
type SessionEvent struct {
	EventType SessionEventType `json:"event_type"`
	ABHAID    string           `json:"abha_id,omitempty"`
	Status    SessionStatus    `json:"status"`
	Timestamp time.Time        `json:"timestamp"`
	ErrorMsg  string           `json:"error_msg,omitempty"`
	Success   bool             `json:"success"`
}

// SessionListener receives session lifecycle events. Listeners run on the
// caller's goroutine and must not call back into the session service.
type SessionListener func(SessionEvent)

// NewSessionEvent creates a session event with common fields populated
func NewSessionEvent(eventType SessionEventType, status SessionStatus) SessionEvent {
	return SessionEvent{
		EventType: eventType,
		Status:    status,
		Timestamp: time.Now().UTC(),
		Success:   true,
	}
}

// WithABHAID sets the acting account id
func (e SessionEvent) WithABHAID(id string) SessionEvent {
	e.ABHAID = id
	return e
}

// WithError marks the event failed and records the error message
func (e SessionEvent) WithError(err error) SessionEvent {
	e.Success = false
	if err != nil {
		e.ErrorMsg = err.Error()
	}
	return e
}
