package access

import "context"

// PermissionRepository - interface for the permissions catalogue
type PermissionRepository interface {
	List(ctx context.Context, filter ListPermissionsFilter) ([]Permission, int64, error)
	// ListAll returns the whole catalogue, unpaged.
	ListAll(ctx context.Context) ([]Permission, error)
	GetByIDs(ctx context.Context, ids []string) ([]Permission, error)
	// EnsureCatalogue upserts catalogue entries by (tag, action); run at boot.
	EnsureCatalogue(ctx context.Context, permissions []Permission) error
}

// RoleRepository - interface for roles and role_permissions tables
type RoleRepository interface {
	Create(ctx context.Context, role Role) (Role, error)
	GetByID(ctx context.Context, id string) (Role, error)
	ListByOrganization(ctx context.Context, organizationID string) ([]Role, error)
	Update(ctx context.Context, role UpdateRoleRequest) error
	Delete(ctx context.Context, id string) error
	GetPermissions(ctx context.Context, roleID string) ([]Permission, error)
	ReplacePermissions(ctx context.Context, roleID string, permissionIDs []string) error
}
