package leave

import (
	"context"

	"github.com/leavehq/leave-backend-go/internal/domain/access"
	"github.com/leavehq/leave-backend-go/internal/domain/leave"
	"github.com/leavehq/leave-backend-go/internal/domain/user"
	"github.com/leavehq/leave-backend-go/internal/pkg/database"
)

type leaveServiceImpl struct {
	db          *database.DB
	requestRepo leave.LeaveRequestRepository
	typeRepo    leave.LeaveTypeRepository
	userRepo    user.UserRepository
}

func NewLeaveService(
	db *database.DB,
	requestRepo leave.LeaveRequestRepository,
	typeRepo leave.LeaveTypeRepository,
	userRepo user.UserRepository,
) leave.LeaveService {
	return &leaveServiceImpl{
		db:          db,
		requestRepo: requestRepo,
		typeRepo:    typeRepo,
		userRepo:    userRepo,
	}
}

// activeLeaveType loads the leave type and verifies it belongs to the
// organization and accepts new requests.
func (s *leaveServiceImpl) activeLeaveType(ctx context.Context, organizationID, leaveTypeID string) (leave.LeaveType, error) {
	leaveType, err := s.typeRepo.GetByID(ctx, leaveTypeID)
	if err != nil {
		return leave.LeaveType{}, err
	}
	if leaveType.OrganizationID != organizationID {
		return leave.LeaveType{}, leave.ErrLeaveTypeNotFound
	}
	if leaveType.IsActive != nil && !*leaveType.IsActive {
		return leave.LeaveType{}, leave.ErrLeaveTypeInactive
	}
	return leaveType, nil
}

func (s *leaveServiceImpl) CreateLeaveType(ctx context.Context, principal access.Principal, req leave.CreateLeaveTypeRequest) (leave.LeaveType, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveType{}, err
	}
	if principal.IsSuperAdmin() {
		return leave.LeaveType{}, access.ErrOrganizationMismatch
	}

	leaveType := leave.LeaveType{
		OrganizationID: principal.OrganizationID,
		Name:           req.Name,
		Code:           req.Code,
		Description:    req.Description,
	}
	return s.typeRepo.Create(ctx, leaveType)
}

func (s *leaveServiceImpl) UpdateLeaveType(ctx context.Context, principal access.Principal, req leave.UpdateLeaveTypeRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}
	if _, err := s.GetLeaveType(ctx, principal, req.ID); err != nil {
		return err
	}
	return s.typeRepo.Update(ctx, req)
}

func (s *leaveServiceImpl) GetLeaveType(ctx context.Context, principal access.Principal, id string) (leave.LeaveType, error) {
	leaveType, err := s.typeRepo.GetByID(ctx, id)
	if err != nil {
		return leave.LeaveType{}, err
	}
	if !principal.IsSuperAdmin() && leaveType.OrganizationID != principal.OrganizationID {
		return leave.LeaveType{}, leave.ErrLeaveTypeNotFound
	}
	return leaveType, nil
}

func (s *leaveServiceImpl) ListLeaveTypes(ctx context.Context, principal access.Principal) ([]leave.LeaveType, error) {
	if principal.IsSuperAdmin() {
		return nil, access.ErrOrganizationMismatch
	}
	return s.typeRepo.GetByOrganizationID(ctx, principal.OrganizationID)
}

func (s *leaveServiceImpl) DeleteLeaveType(ctx context.Context, principal access.Principal, id string) error {
	if _, err := s.GetLeaveType(ctx, principal, id); err != nil {
		return err
	}
	return s.typeRepo.Delete(ctx, id)
}
