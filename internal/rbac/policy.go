package rbac

import (
	"errors"
	"slices"
)

var (
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrForbidden       = errors.New("forbidden")
)

// Principal is the authenticated caller of one request.
type Principal struct {
	UserID int64 `json:"user_id"`
	OrgID  int64 `json:"org_id"`
	Role   Role  `json:"role"`
}

// Requirement is declared per operation. A non-nil Roles is checked
// literally and wins over Permissions, so an empty role set admits nobody.
// A zero Requirement admits any authenticated principal.
type Requirement struct {
	Roles       []Role       `json:"roles,omitempty"`
	Permissions []Permission `json:"permissions,omitempty"`
}

// RequireRoles with no arguments yields a requirement nobody satisfies.
func RequireRoles(roles ...Role) Requirement {
	return Requirement{Roles: append([]Role{}, roles...)}
}

func RequirePermissions(perms ...Permission) Requirement {
	return Requirement{Permissions: perms}
}

type Decision bool

const (
	Deny  Decision = false
	Allow Decision = true
)

func (d Decision) String() string {
	if d {
		return "allow"
	}
	return "deny"
}

// Evaluate decides whether p may perform an operation guarded by req.
func Evaluate(p *Principal, req Requirement) Decision {
	if p == nil {
		return Deny
	}
	if req.Roles != nil {
		return Decision(slices.Contains(req.Roles, p.Role))
	}
	for _, perm := range req.Permissions {
		if !HasPermission(p.Role, perm) {
			return Deny
		}
	}
	return Allow
}

// Check is Evaluate expressed as an error: ErrUnauthenticated when there is
// no principal, ErrForbidden when the policy denies.
func Check(p *Principal, req Requirement) error {
	if p == nil {
		return ErrUnauthenticated
	}
	if !Evaluate(p, req) {
		return ErrForbidden
	}
	return nil
}
