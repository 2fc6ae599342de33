package user

import (
	"context"

	"golang.org/x/crypto/bcrypt"

	"github.com/leavehq/leave-backend-go/internal/domain/access"
	"github.com/leavehq/leave-backend-go/internal/domain/user"
)

type userServiceImpl struct {
	userRepo user.UserRepository
	roleRepo access.RoleRepository
}

func NewUserService(userRepo user.UserRepository, roleRepo access.RoleRepository) user.UserService {
	return &userServiceImpl{
		userRepo: userRepo,
		roleRepo: roleRepo,
	}
}

// CreateUser provisions an account within an organization. Org users create
// in their own organization; super admins must name the target organization.
func (s *userServiceImpl) CreateUser(ctx context.Context, principal access.Principal, req user.CreateUserRequest) (user.User, error) {
	if err := req.Validate(); err != nil {
		return user.User{}, err
	}

	organizationID := principal.OrganizationID
	if principal.IsSuperAdmin() {
		if req.OrganizationID == "" {
			return user.User{}, access.ErrOrganizationMismatch
		}
		organizationID = req.OrganizationID
	}

	if err := s.verifyRole(ctx, req.RoleID, organizationID); err != nil {
		return user.User{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return user.User{}, err
	}
	passwordHash := string(hash)

	return s.userRepo.Create(ctx, user.User{
		OrganizationID: &organizationID,
		RoleID:         &req.RoleID,
		Email:          req.Email,
		PasswordHash:   &passwordHash,
		FullName:       req.FullName,
	})
}

func (s *userServiceImpl) GetUser(ctx context.Context, principal access.Principal, userID string) (user.User, error) {
	u, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return user.User{}, err
	}
	if !principal.IsSuperAdmin() && !u.InOrganization(principal.OrganizationID) {
		return user.User{}, user.ErrUserNotFound
	}
	return u, nil
}

func (s *userServiceImpl) ListUsers(ctx context.Context, principal access.Principal) ([]user.User, error) {
	if principal.IsSuperAdmin() {
		return nil, access.ErrOrganizationMismatch
	}
	return s.userRepo.ListByOrganization(ctx, principal.OrganizationID)
}

func (s *userServiceImpl) UpdateUser(ctx context.Context, principal access.Principal, req user.UpdateUserRequest) (user.User, error) {
	if err := req.Validate(); err != nil {
		return user.User{}, err
	}

	existing, err := s.GetUser(ctx, principal, req.ID)
	if err != nil {
		return user.User{}, err
	}

	fields := user.UpdateUserFields{
		ID:       req.ID,
		FullName: req.FullName,
		RoleID:   req.RoleID,
	}

	if req.RoleID != nil {
		if existing.OrganizationID == nil {
			return user.User{}, access.ErrRoleNotFound
		}
		if err := s.verifyRole(ctx, *req.RoleID, *existing.OrganizationID); err != nil {
			return user.User{}, err
		}
	}

	if req.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			return user.User{}, err
		}
		passwordHash := string(hash)
		fields.PasswordHash = &passwordHash
	}

	if err := s.userRepo.Update(ctx, fields); err != nil {
		return user.User{}, err
	}

	return s.userRepo.GetByID(ctx, req.ID)
}

func (s *userServiceImpl) DeleteUser(ctx context.Context, principal access.Principal, userID string) error {
	if userID == principal.UserID {
		return access.ErrAccessDenied
	}
	if _, err := s.GetUser(ctx, principal, userID); err != nil {
		return err
	}
	return s.userRepo.Delete(ctx, userID)
}

// verifyRole hides roles outside the target organization the same way the
// role endpoints do.
func (s *userServiceImpl) verifyRole(ctx context.Context, roleID, organizationID string) error {
	role, err := s.roleRepo.GetByID(ctx, roleID)
	if err != nil {
		return err
	}
	if role.OrganizationID != organizationID {
		return access.ErrRoleNotFound
	}
	return nil
}
