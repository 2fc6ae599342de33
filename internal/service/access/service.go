package access

import (
	"context"
	"fmt"

	"github.com/leavehq/leave-backend-go/internal/domain/access"
	"github.com/leavehq/leave-backend-go/internal/pkg/database"
	"github.com/leavehq/leave-backend-go/internal/repository/postgresql"
)

type accessServiceImpl struct {
	db             *database.DB
	roleRepo       access.RoleRepository
	permissionRepo access.PermissionRepository
}

func NewAccessService(
	db *database.DB,
	roleRepo access.RoleRepository,
	permissionRepo access.PermissionRepository,
) access.AccessService {
	return &accessServiceImpl{
		db:             db,
		roleRepo:       roleRepo,
		permissionRepo: permissionRepo,
	}
}

// EffectivePermissions resolves the principal's permission set. Super admins
// get the whole catalogue; org users get whatever their role carries.
func (s *accessServiceImpl) EffectivePermissions(ctx context.Context, principal access.Principal) (access.PermissionSet, error) {
	if principal.IsSuperAdmin() {
		permissions, err := s.permissionRepo.ListAll(ctx)
		if err != nil {
			return nil, err
		}
		return access.NewPermissionSet(permissions), nil
	}

	permissions, err := s.roleRepo.GetPermissions(ctx, principal.RoleID)
	if err != nil {
		return nil, err
	}
	return access.NewPermissionSet(permissions), nil
}

func (s *accessServiceImpl) HasPermission(ctx context.Context, principal access.Principal, tag access.Tag, action access.Action) (bool, error) {
	if principal.IsSuperAdmin() {
		return true, nil
	}

	set, err := s.EffectivePermissions(ctx, principal)
	if err != nil {
		return false, err
	}
	return set.Has(tag, action), nil
}

func (s *accessServiceImpl) Guard(ctx context.Context, principal access.Principal, tag access.Tag, action access.Action) (access.GateDecision, error) {
	ok, err := s.HasPermission(ctx, principal, tag, action)
	if err != nil {
		return access.GateDecision{}, err
	}
	if !ok {
		return access.Deny(fmt.Sprintf("missing permission %s:%s", tag, action)), nil
	}
	return access.Allow(), nil
}

// GuardAny allows when the principal holds at least one of the actions under
// the tag. One resolver round trip regardless of how many actions are probed.
func (s *accessServiceImpl) GuardAny(ctx context.Context, principal access.Principal, tag access.Tag, actions []access.Action) (access.GateDecision, error) {
	if principal.IsSuperAdmin() {
		return access.Allow(), nil
	}

	set, err := s.EffectivePermissions(ctx, principal)
	if err != nil {
		return access.GateDecision{}, err
	}
	for _, action := range actions {
		if set.Has(tag, action) {
			return access.Allow(), nil
		}
	}
	return access.Deny(fmt.Sprintf("missing permission %s:%v", tag, actions)), nil
}

func (s *accessServiceImpl) CreateRole(ctx context.Context, principal access.Principal, req access.CreateRoleRequest) (access.Role, error) {
	if err := req.Validate(); err != nil {
		return access.Role{}, err
	}
	if principal.IsSuperAdmin() {
		return access.Role{}, access.ErrOrganizationMismatch
	}

	role := access.Role{
		OrganizationID: principal.OrganizationID,
		Name:           req.Name,
		Description:    req.Description,
	}
	return s.roleRepo.Create(ctx, role)
}

func (s *accessServiceImpl) GetRole(ctx context.Context, principal access.Principal, roleID string) (access.Role, error) {
	role, err := s.roleRepo.GetByID(ctx, roleID)
	if err != nil {
		return access.Role{}, err
	}
	if !principal.IsSuperAdmin() && role.OrganizationID != principal.OrganizationID {
		return access.Role{}, access.ErrRoleNotFound
	}
	return role, nil
}

func (s *accessServiceImpl) ListRoles(ctx context.Context, principal access.Principal) ([]access.Role, error) {
	if principal.IsSuperAdmin() {
		return nil, access.ErrOrganizationMismatch
	}
	return s.roleRepo.ListByOrganization(ctx, principal.OrganizationID)
}

func (s *accessServiceImpl) UpdateRole(ctx context.Context, principal access.Principal, req access.UpdateRoleRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}
	if _, err := s.GetRole(ctx, principal, req.ID); err != nil {
		return err
	}
	return s.roleRepo.Update(ctx, req)
}

func (s *accessServiceImpl) DeleteRole(ctx context.Context, principal access.Principal, roleID string) error {
	if _, err := s.GetRole(ctx, principal, roleID); err != nil {
		return err
	}
	return s.roleRepo.Delete(ctx, roleID)
}

func (s *accessServiceImpl) GetRolePermissions(ctx context.Context, principal access.Principal, roleID string) ([]access.Permission, error) {
	if _, err := s.GetRole(ctx, principal, roleID); err != nil {
		return nil, err
	}
	return s.roleRepo.GetPermissions(ctx, roleID)
}

// ReplaceRolePermissions swaps a role's grant set wholesale. Every id must
// resolve to a catalogue entry; an empty list clears the role.
func (s *accessServiceImpl) ReplaceRolePermissions(ctx context.Context, principal access.Principal, req access.ReplaceRolePermissionsRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}
	if _, err := s.GetRole(ctx, principal, req.RoleID); err != nil {
		return err
	}

	permissions, err := s.permissionRepo.GetByIDs(ctx, req.PermissionIDs)
	if err != nil {
		return err
	}
	if len(permissions) != len(req.PermissionIDs) {
		return access.ErrUnknownPermission
	}

	return postgresql.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		return s.roleRepo.ReplacePermissions(txCtx, req.RoleID, req.PermissionIDs)
	})
}

func (s *accessServiceImpl) ListPermissions(ctx context.Context, filter access.ListPermissionsFilter) (access.ListPermissionsResponse, error) {
	permissions, count, err := s.permissionRepo.List(ctx, filter)
	if err != nil {
		return access.ListPermissionsResponse{}, err
	}
	if permissions == nil {
		permissions = []access.Permission{}
	}
	return access.ListPermissionsResponse{Count: count, Rows: permissions}, nil
}
