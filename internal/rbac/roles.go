package rbac

import (
	"fmt"
	"strings"
)

type Role string

const (
	RoleOwner  Role = "owner"
	RoleAdmin  Role = "admin"
	RoleViewer Role = "viewer"
)

// Rank orders roles by privilege. Unknown roles rank below viewer.
func (r Role) Rank() int {
	switch r {
	case RoleOwner:
		return 3
	case RoleAdmin:
		return 2
	case RoleViewer:
		return 1
	default:
		return 0
	}
}

func (r Role) Valid() bool { return r.Rank() > 0 }

// ParseRole converts a stored or token role name into a Role.
func ParseRole(s string) (Role, error) {
	r := Role(strings.ToLower(strings.TrimSpace(s)))
	if !r.Valid() {
		return "", fmt.Errorf("unknown role %q", s)
	}
	return r, nil
}

// Permission is an "<action>:<resourceKind>" tag.
type Permission string

const (
	PermCreateTask Permission = "create:task"
	PermReadTask   Permission = "read:task"
	PermUpdateTask Permission = "update:task"
	PermDeleteTask Permission = "delete:task"
	PermReadAudit  Permission = "read:audit"
)

// Key composes a permission like "read:task" from action and resource kind.
func Key(action, resource string) Permission {
	return Permission(strings.ToLower(action + ":" + resource))
}

// basePermissions holds what each role grants on its own; inherits lists the
// lower roles whose permissions are folded in.
var (
	basePermissions = map[Role][]Permission{
		RoleOwner:  {PermCreateTask, PermReadTask, PermUpdateTask, PermDeleteTask, PermReadAudit},
		RoleAdmin:  {PermCreateTask, PermReadTask, PermUpdateTask, PermDeleteTask},
		RoleViewer: {PermReadTask},
	}
	inherits = map[Role][]Role{
		RoleAdmin: {RoleViewer},
	}
)

// effective is built once at init and never written afterwards.
var effective = buildEffective()

func buildEffective() map[Role]map[Permission]struct{} {
	out := make(map[Role]map[Permission]struct{}, len(basePermissions))
	for role := range basePermissions {
		set := make(map[Permission]struct{})
		for _, p := range basePermissions[role] {
			set[p] = struct{}{}
		}
		for _, lower := range inherits[role] {
			for _, p := range basePermissions[lower] {
				set[p] = struct{}{}
			}
		}
		out[role] = set
	}
	return out
}

// HasPermission reports whether role confers perm, inherited permissions included.
func HasPermission(role Role, perm Permission) bool {
	_, ok := effective[role][perm]
	return ok
}

// EffectivePermissions returns a fresh copy of the role's full permission set.
func EffectivePermissions(role Role) map[Permission]struct{} {
	set := effective[role]
	out := make(map[Permission]struct{}, len(set))
	for p := range set {
		out[p] = struct{}{}
	}
	return out
}
