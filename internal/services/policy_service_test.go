package services

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/you/termbridge/domain"
)

func TestDefaultPolicy(t *testing.T) {
	svc, err := NewDefaultPolicyService()
	if err != nil {
		t.Fatalf("build policy: %v", err)
	}

	tests := []struct {
		status    domain.SessionStatus
		operation string
		allowed   bool
	}{
		{domain.StatusAnonymous, OpLogin, true},
		{domain.StatusAnonymous, OpSearch, true},
		{domain.StatusAnonymous, OpTranslate, true},
		{domain.StatusAnonymous, OpProfile, false},
		{domain.StatusAnonymous, OpHistory, false},
		{domain.StatusAnonymous, OpSave, false},
		{domain.StatusAuthenticated, OpProfile, true},
		{domain.StatusAuthenticated, OpHistory, true},
		{domain.StatusAuthenticated, OpSearch, true},
		{domain.StatusAuthenticated, OpTranslate, true},
		{domain.StatusAuthenticated, OpSave, true},
		{domain.StatusAuthenticated, OpLogout, true},
		// A session in transit may do nothing.
		{domain.StatusAuthenticating, OpSearch, false},
		{domain.StatusAuthenticating, OpProfile, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.status)+"/"+tt.operation, func(t *testing.T) {
			allowed, err := svc.Allowed(tt.status, tt.operation)
			if err != nil {
				t.Fatalf("enforce: %v", err)
			}
			if allowed != tt.allowed {
				t.Errorf("Allowed(%s, %s) = %v, want %v", tt.status, tt.operation, allowed, tt.allowed)
			}
		})
	}
}

func TestPolicyFromCSVFile(t *testing.T) {
	policyPath := filepath.Join(t.TempDir(), "access_policy.csv")
	policy := "p, anonymous, login\np, authenticated, *\n"
	if err := os.WriteFile(policyPath, []byte(policy), 0o644); err != nil {
		t.Fatalf("write policy: %v", err)
	}

	svc, err := NewPolicyService(policyPath)
	if err != nil {
		t.Fatalf("load policy: %v", err)
	}

	allowed, err := svc.Allowed(domain.StatusAnonymous, OpLogin)
	if err != nil || !allowed {
		t.Errorf("anonymous login should be allowed (allowed=%v err=%v)", allowed, err)
	}
	allowed, err = svc.Allowed(domain.StatusAnonymous, OpHistory)
	if err != nil || allowed {
		t.Errorf("anonymous history should be denied (allowed=%v err=%v)", allowed, err)
	}
	allowed, err = svc.Allowed(domain.StatusAuthenticated, OpHistory)
	if err != nil || !allowed {
		t.Errorf("authenticated history should be allowed (allowed=%v err=%v)", allowed, err)
	}
}
