package organization

import (
	"context"

	"github.com/leavehq/leave-backend-go/internal/domain/access"
	"github.com/leavehq/leave-backend-go/internal/domain/leave"
	"github.com/leavehq/leave-backend-go/internal/domain/organization"
	"github.com/leavehq/leave-backend-go/internal/fixtures"
	"github.com/leavehq/leave-backend-go/internal/pkg/database"
	"github.com/leavehq/leave-backend-go/internal/repository/postgresql"
)

type organizationServiceImpl struct {
	db             *database.DB
	orgRepo        organization.OrganizationRepository
	roleRepo       access.RoleRepository
	permissionRepo access.PermissionRepository
	typeRepo       leave.LeaveTypeRepository
}

func NewOrganizationService(
	db *database.DB,
	orgRepo organization.OrganizationRepository,
	roleRepo access.RoleRepository,
	permissionRepo access.PermissionRepository,
	typeRepo leave.LeaveTypeRepository,
) organization.OrganizationService {
	return &organizationServiceImpl{
		db:             db,
		orgRepo:        orgRepo,
		roleRepo:       roleRepo,
		permissionRepo: permissionRepo,
		typeRepo:       typeRepo,
	}
}

// CreateOrganization provisions an organization along with its default
// roles, role grants, and leave types in a single transaction.
func (s *organizationServiceImpl) CreateOrganization(ctx context.Context, principal access.Principal, req organization.CreateOrganizationRequest) (organization.Organization, error) {
	if !principal.IsSuperAdmin() {
		return organization.Organization{}, access.ErrAccessDenied
	}
	if err := req.Validate(); err != nil {
		return organization.Organization{}, err
	}

	permissions, err := s.permissionRepo.ListAll(ctx)
	if err != nil {
		return organization.Organization{}, err
	}
	permissionIDByGrant := make(map[[2]string]string, len(permissions))
	for _, p := range permissions {
		permissionIDByGrant[[2]string{string(p.Tag), string(p.Action)}] = p.ID
	}

	var created organization.Organization
	err = postgresql.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		var txErr error
		created, txErr = s.orgRepo.Create(txCtx, organization.Organization{Name: req.Name})
		if txErr != nil {
			return txErr
		}

		for _, seed := range fixtures.DefaultRoles() {
			role, txErr := s.roleRepo.Create(txCtx, access.Role{
				OrganizationID: created.ID,
				Name:           seed.Name,
				Description:    &seed.Description,
			})
			if txErr != nil {
				return txErr
			}

			permissionIDs := make([]string, 0, len(seed.Grants))
			for _, grant := range seed.Grants {
				if id, ok := permissionIDByGrant[grant]; ok {
					permissionIDs = append(permissionIDs, id)
				}
			}
			if txErr := s.roleRepo.ReplacePermissions(txCtx, role.ID, permissionIDs); txErr != nil {
				return txErr
			}
		}

		for _, leaveType := range fixtures.DefaultLeaveTypes(created.ID) {
			if _, txErr := s.typeRepo.Create(txCtx, leaveType); txErr != nil {
				return txErr
			}
		}

		return nil
	})
	if err != nil {
		return organization.Organization{}, err
	}

	return created, nil
}

func (s *organizationServiceImpl) GetOrganization(ctx context.Context, principal access.Principal, id string) (organization.Organization, error) {
	if !principal.IsSuperAdmin() && principal.OrganizationID != id {
		return organization.Organization{}, organization.ErrOrganizationNotFound
	}
	return s.orgRepo.GetByID(ctx, id)
}

func (s *organizationServiceImpl) ListOrganizations(ctx context.Context, principal access.Principal) ([]organization.Organization, error) {
	if !principal.IsSuperAdmin() {
		return nil, access.ErrAccessDenied
	}
	return s.orgRepo.List(ctx)
}

func (s *organizationServiceImpl) MyOrganization(ctx context.Context, principal access.Principal) (organization.Organization, error) {
	if principal.IsSuperAdmin() {
		return organization.Organization{}, organization.ErrOrganizationNotFound
	}
	return s.orgRepo.GetByID(ctx, principal.OrganizationID)
}
