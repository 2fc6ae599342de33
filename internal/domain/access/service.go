package access

import "context"

// GateDecision is the outcome of a guard check. A denied check carries the
// reason so the caller can surface it instead of rendering partial data.
type GateDecision struct {
	Allowed bool
	Reason  string
}

func Allow() GateDecision {
	return GateDecision{Allowed: true}
}

func Deny(reason string) GateDecision {
	return GateDecision{Allowed: false, Reason: reason}
}

type AccessService interface {
	// Resolver
	EffectivePermissions(ctx context.Context, principal Principal) (PermissionSet, error)
	HasPermission(ctx context.Context, principal Principal, tag Tag, action Action) (bool, error)

	// Gate
	Guard(ctx context.Context, principal Principal, tag Tag, action Action) (GateDecision, error)
	GuardAny(ctx context.Context, principal Principal, tag Tag, actions []Action) (GateDecision, error)

	// Roles
	CreateRole(ctx context.Context, principal Principal, req CreateRoleRequest) (Role, error)
	GetRole(ctx context.Context, principal Principal, roleID string) (Role, error)
	ListRoles(ctx context.Context, principal Principal) ([]Role, error)
	UpdateRole(ctx context.Context, principal Principal, req UpdateRoleRequest) error
	DeleteRole(ctx context.Context, principal Principal, roleID string) error

	// Role permission assignment
	GetRolePermissions(ctx context.Context, principal Principal, roleID string) ([]Permission, error)
	ReplaceRolePermissions(ctx context.Context, principal Principal, req ReplaceRolePermissionsRequest) error

	// Catalogue
	ListPermissions(ctx context.Context, filter ListPermissionsFilter) (ListPermissionsResponse, error)
}
