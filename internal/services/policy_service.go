package services

import (
	"fmt"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
	fileadapter "github.com/casbin/casbin/v2/persist/file-adapter"

	"github.com/you/termbridge/domain"
)

// Operation names used in the access policy. They name client operations,
// not URL paths; the gateway owns the path mapping.
const (
	OpLogin     = "login"
	OpLogout    = "logout"
	OpProfile   = "profile"
	OpHistory   = "history"
	OpSearch    = "search"
	OpTranslate = "translate"
	OpSave      = "save"
)

// accessModel maps a session status and an operation name to an allow
// decision. keyMatch lets the policy grant "*" to authenticated sessions.
const accessModel = `
[request_definition]
r = sub, obj

[policy_definition]
p = sub, obj

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = r.sub == p.sub && keyMatch(r.obj, p.obj)
`

// PolicyServiceImpl implements domain.PolicyService on a Casbin enforcer.
type PolicyServiceImpl struct {
	enforcer *casbin.Enforcer
}

// NewPolicyService loads the access policy from a CSV file.
func NewPolicyService(policyPath string) (domain.PolicyService, error) {
	m, err := model.NewModelFromString(accessModel)
	if err != nil {
		return nil, fmt.Errorf("failed to build access model: %w", err)
	}
	e, err := casbin.NewEnforcer(m, fileadapter.NewAdapter(policyPath))
	if err != nil {
		return nil, fmt.Errorf("failed to load access policy: %w", err)
	}
	return &PolicyServiceImpl{enforcer: e}, nil
}

// NewDefaultPolicyService builds the built-in policy: anonymous sessions
// may log in, search, and translate; authenticated sessions may do
// everything. Authenticating sessions are in transit and may do nothing.
func NewDefaultPolicyService() (domain.PolicyService, error) {
	m, err := model.NewModelFromString(accessModel)
	if err != nil {
		return nil, fmt.Errorf("failed to build access model: %w", err)
	}
	e, err := casbin.NewEnforcer(m)
	if err != nil {
		return nil, fmt.Errorf("failed to build enforcer: %w", err)
	}
	policies := [][]string{
		{string(domain.StatusAnonymous), OpLogin},
		{string(domain.StatusAnonymous), OpSearch},
		{string(domain.StatusAnonymous), OpTranslate},
		{string(domain.StatusAuthenticated), "*"},
	}
	for _, p := range policies {
		if _, err := e.AddPolicy(p[0], p[1]); err != nil {
			return nil, fmt.Errorf("failed to add policy %v: %w", p, err)
		}
	}
	return &PolicyServiceImpl{enforcer: e}, nil
}

// Allowed implements domain.PolicyService
func (s *PolicyServiceImpl) Allowed(status domain.SessionStatus, operation string) (bool, error) {
	return s.enforcer.Enforce(string(status), operation)
}
