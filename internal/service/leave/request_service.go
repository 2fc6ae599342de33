package leave

import (
	"context"

	"github.com/leavehq/leave-backend-go/internal/domain/access"
	"github.com/leavehq/leave-backend-go/internal/domain/leave"
	"github.com/leavehq/leave-backend-go/internal/pkg/validator"
	"github.com/leavehq/leave-backend-go/internal/repository/postgresql"
)

// verifyManagers checks that the assigned managers exist, belong to the
// requester's organization, and do not include the requester.
func (s *leaveServiceImpl) verifyManagers(ctx context.Context, principal access.Principal, managerIDs []string) error {
	for _, id := range managerIDs {
		if id == principal.UserID {
			return validator.ValidationErrors{{
				Field:   "managers",
				Message: "managers must not include the requester",
			}}
		}
	}

	managers, err := s.userRepo.GetByIDs(ctx, managerIDs)
	if err != nil {
		return err
	}
	if len(managers) != len(managerIDs) {
		return leave.ErrManagerNotInOrganization
	}
	for _, m := range managers {
		if !m.InOrganization(principal.OrganizationID) {
			return leave.ErrManagerNotInOrganization
		}
	}
	return nil
}

func (s *leaveServiceImpl) CreateLeaveRequest(ctx context.Context, principal access.Principal, req leave.CreateLeaveRequestRequest) (leave.LeaveRequest, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveRequest{}, err
	}
	if principal.IsSuperAdmin() {
		return leave.LeaveRequest{}, access.ErrAccessDenied
	}

	if _, err := s.activeLeaveType(ctx, principal.OrganizationID, req.LeaveTypeID); err != nil {
		return leave.LeaveRequest{}, err
	}
	if err := s.verifyManagers(ctx, principal, req.ManagerIDs); err != nil {
		return leave.LeaveRequest{}, err
	}

	startDate, _ := validator.IsValidDate(req.StartDate)
	endDate, _ := validator.IsValidDate(req.EndDate)

	request := leave.LeaveRequest{
		OrganizationID: principal.OrganizationID,
		RequesterID:    principal.UserID,
		LeaveTypeID:    req.LeaveTypeID,
		StartDate:      startDate,
		EndDate:        endDate,
		Kind:           leave.LeaveKind(req.Kind),
		DayRange:       leave.DayRange(req.DayRange),
		Reason:         req.Reason,
		Status:         leave.LeaveRequestStatusPending,
	}
	for _, managerID := range req.ManagerIDs {
		request.Decisions = append(request.Decisions, leave.ManagerDecision{
			ManagerID: managerID,
			Decision:  leave.DecisionPending,
		})
	}

	var created leave.LeaveRequest
	err := postgresql.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		var txErr error
		created, txErr = s.requestRepo.Create(txCtx, request)
		return txErr
	})
	if err != nil {
		return leave.LeaveRequest{}, err
	}

	return created, nil
}

func (s *leaveServiceImpl) UpdateLeaveRequest(ctx context.Context, principal access.Principal, req leave.UpdateLeaveRequestRequest) (leave.LeaveRequest, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveRequest{}, err
	}

	if _, err := s.activeLeaveType(ctx, principal.OrganizationID, req.LeaveTypeID); err != nil {
		return leave.LeaveRequest{}, err
	}
	if err := s.verifyManagers(ctx, principal, req.ManagerIDs); err != nil {
		return leave.LeaveRequest{}, err
	}

	startDate, _ := validator.IsValidDate(req.StartDate)
	endDate, _ := validator.IsValidDate(req.EndDate)
	kind := leave.LeaveKind(req.Kind)
	dayRange := leave.DayRange(req.DayRange)

	fields := leave.UpdateLeaveRequestFields{
		ID:          req.ID,
		LeaveTypeID: &req.LeaveTypeID,
		Kind:        &kind,
		DayRange:    &dayRange,
		StartDate:   &startDate,
		EndDate:     &endDate,
		Reason:      &req.Reason,
	}

	// The ownership and pending checks run under the same row lock the
	// decision path takes, so a decision committing concurrently cannot slip
	// in between the check and the write.
	err := postgresql.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		existing, txErr := s.requestRepo.GetByIDForUpdate(txCtx, req.ID)
		if txErr != nil {
			return txErr
		}
		if existing.RequesterID != principal.UserID {
			return leave.ErrNotRequestOwner
		}
		if existing.Status != leave.LeaveRequestStatusPending {
			return leave.ErrLeaveRequestNotPending
		}

		if txErr := s.requestRepo.Update(txCtx, fields); txErr != nil {
			return txErr
		}
		return s.requestRepo.ReplaceAssignees(txCtx, req.ID, req.ManagerIDs)
	})
	if err != nil {
		return leave.LeaveRequest{}, err
	}

	return s.requestRepo.GetByID(ctx, req.ID)
}

// CancelLeaveRequest is the owner's delete: a pending request transitions to
// cancelled and stays on record.
func (s *leaveServiceImpl) CancelLeaveRequest(ctx context.Context, principal access.Principal, requestID string) (leave.LeaveRequest, error) {
	err := postgresql.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		// Lock the row first: a decision committing concurrently must either
		// land before the pending check or wait until the cancel is durable.
		existing, txErr := s.requestRepo.GetByIDForUpdate(txCtx, requestID)
		if txErr != nil {
			return txErr
		}
		if existing.RequesterID != principal.UserID {
			return leave.ErrNotRequestOwner
		}
		if existing.Status != leave.LeaveRequestStatusPending {
			return leave.ErrLeaveRequestNotPending
		}
		return s.requestRepo.UpdateStatus(txCtx, requestID, leave.LeaveRequestStatusCancelled)
	})
	if err != nil {
		return leave.LeaveRequest{}, err
	}

	return s.requestRepo.GetByID(ctx, requestID)
}

func (s *leaveServiceImpl) GetLeaveRequest(ctx context.Context, principal access.Principal, requestID string) (leave.LeaveRequest, error) {
	request, err := s.requestRepo.GetByID(ctx, requestID)
	if err != nil {
		return leave.LeaveRequest{}, err
	}
	if !principal.IsSuperAdmin() && request.OrganizationID != principal.OrganizationID {
		return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
	}
	return request, nil
}

func (s *leaveServiceImpl) ListLeaveRequests(ctx context.Context, principal access.Principal, filter leave.LeaveRequestFilter) (leave.ListLeaveRequestsResponse, error) {
	if err := filter.Validate(); err != nil {
		return leave.ListLeaveRequestsResponse{}, err
	}
	if principal.IsSuperAdmin() {
		return leave.ListLeaveRequestsResponse{}, access.ErrOrganizationMismatch
	}
	return s.list(ctx, principal.OrganizationID, filter)
}

// ListMyLeaveRequests scopes the listing to requests the principal filed.
func (s *leaveServiceImpl) ListMyLeaveRequests(ctx context.Context, principal access.Principal, filter leave.LeaveRequestFilter) (leave.ListLeaveRequestsResponse, error) {
	if err := filter.Validate(); err != nil {
		return leave.ListLeaveRequestsResponse{}, err
	}
	filter.RequesterID = &principal.UserID
	filter.ManagerID = nil
	return s.list(ctx, principal.OrganizationID, filter)
}

// ListAssignedLeaveRequests is the manager inbox: requests the principal is
// assigned to decide on.
func (s *leaveServiceImpl) ListAssignedLeaveRequests(ctx context.Context, principal access.Principal, filter leave.LeaveRequestFilter) (leave.ListLeaveRequestsResponse, error) {
	if err := filter.Validate(); err != nil {
		return leave.ListLeaveRequestsResponse{}, err
	}
	filter.ManagerID = &principal.UserID
	filter.RequesterID = nil
	return s.list(ctx, principal.OrganizationID, filter)
}

func (s *leaveServiceImpl) list(ctx context.Context, organizationID string, filter leave.LeaveRequestFilter) (leave.ListLeaveRequestsResponse, error) {
	rows, count, err := s.requestRepo.ListByOrganization(ctx, organizationID, filter)
	if err != nil {
		return leave.ListLeaveRequestsResponse{}, err
	}
	if rows == nil {
		rows = []leave.LeaveRequest{}
	}
	return leave.ListLeaveRequestsResponse{Count: count, Rows: rows}, nil
}
