package access

import "errors"

var (
	ErrRoleNotFound         = errors.New("role not found")
	ErrRoleNameExists       = errors.New("role name already exists in this organization")
	ErrPermissionNotFound   = errors.New("permission not found")
	ErrUnknownPermission    = errors.New("unknown permission id in assignment")
	ErrAccessDenied         = errors.New("access denied")
	ErrOrganizationMismatch = errors.New("resource belongs to a different organization")
)
