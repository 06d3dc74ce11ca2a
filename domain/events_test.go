package domain

import (
	"errors"
	"testing"
)

func TestNewSessionEvent(t *testing.T) {
	ev := NewSessionEvent(UserLoginEvent, StatusAuthenticated).WithABHAID("ABHA001")

	if ev.EventType != UserLoginEvent {
		t.Errorf("expected event type %s, got %s", UserLoginEvent, ev.EventType)
	}
	if ev.Status != StatusAuthenticated {
		t.Errorf("expected status %s, got %s", StatusAuthenticated, ev.Status)
	}
	if ev.ABHAID != "ABHA001" {
		t.Errorf("expected abha id ABHA001, got %s", ev.ABHAID)
	}
	if !ev.Success {
		t.Error("new events default to success")
	}
	if ev.Timestamp.IsZero() {
		t.Error("timestamp must be populated")
	}
}

func TestSessionEvent_WithError(t *testing.T) {
	ev := NewSessionEvent(UserLoginFailureEvent, StatusAnonymous).
		WithError(errors.New("Invalid ABHA ID or phone number"))

	if ev.Success {
		t.Error("WithError must mark the event failed")
	}
	if ev.ErrorMsg != "Invalid ABHA ID or phone number" {
		t.Errorf("unexpected error message %q", ev.ErrorMsg)
	}
}
