package domain

import "fmt"

// Decider answers permission queries against a session.
type Decider interface {
	HasPermission(p Permission) bool
	HasAnyPermission(perms ...Permission) bool
	HasAllPermissions(perms ...Permission) bool
}

// Policy selects how a multi-permission requirement is evaluated.
type Policy string

const (
	PolicyAll Policy = "all"
	PolicyAny Policy = "any"
)

// ParsePolicy converts a raw name into a Policy. Empty means all.
func ParsePolicy(s string) (Policy, error) {
	switch Policy(s) {
	case "", PolicyAll:
		return PolicyAll, nil
	case PolicyAny:
		return PolicyAny, nil
	}
	return "", fmt.Errorf("unknown policy %q", s)
}

// Requirement is what a guarded view demands of the current session.
type Requirement struct {
	Permissions []Permission `json:"permissions"`
	Policy      Policy       `json:"policy"`
}

// Require builds a single-permission requirement.
func Require(p Permission) Requirement {
	return Requirement{Permissions: []Permission{p}, Policy: PolicyAll}
}

// RequireAny is satisfied by any one of perms.
func RequireAny(perms ...Permission) Requirement {
	return Requirement{Permissions: perms, Policy: PolicyAny}
}

// RequireAll is satisfied only when every one of perms is granted.
func RequireAll(perms ...Permission) Requirement {
	return Requirement{Permissions: perms, Policy: PolicyAll}
}

// Allows evaluates the requirement. An empty requirement never allows.
func (r Requirement) Allows(d Decider) bool {
	if d == nil || len(r.Permissions) == 0 {
		return false
	}
	if r.Policy == PolicyAny {
		return d.HasAnyPermission(r.Permissions...)
	}
	return d.HasAllPermissions(r.Permissions...)
}
