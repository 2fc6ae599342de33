package leave

import (
	"context"
	"time"
)

// LeaveTypeRepository - interface for leave_types table
type LeaveTypeRepository interface {
	Create(ctx context.Context, leaveType LeaveType) (LeaveType, error)
	GetByID(ctx context.Context, id string) (LeaveType, error)
	GetByOrganizationID(ctx context.Context, organizationID string) ([]LeaveType, error)
	Update(ctx context.Context, req UpdateLeaveTypeRequest) error
	Delete(ctx context.Context, id string) error
}

// UpdateLeaveRequestFields - partial update of a pending request
type UpdateLeaveRequestFields struct {
	ID          string
	LeaveTypeID *string
	Kind        *LeaveKind
	DayRange    *DayRange
	StartDate   *time.Time
	EndDate     *time.Time
	Reason      *string
}

// LeaveRequestRepository - interface for leave_requests and manager_decisions
// tables
type LeaveRequestRepository interface {
	// Create inserts the request plus one pending decision per assigned
	// manager.
	Create(ctx context.Context, request LeaveRequest) (LeaveRequest, error)
	GetByID(ctx context.Context, id string) (LeaveRequest, error)
	// GetByIDForUpdate locks the request row for the remainder of the
	// surrounding transaction.
	GetByIDForUpdate(ctx context.Context, id string) (LeaveRequest, error)
	ListByOrganization(ctx context.Context, organizationID string, filter LeaveRequestFilter) ([]LeaveRequest, int64, error)
	Update(ctx context.Context, fields UpdateLeaveRequestFields) error
	UpdateStatus(ctx context.Context, id string, status LeaveRequestStatus) error

	GetDecisions(ctx context.Context, requestID string) ([]ManagerDecision, error)
	// SetDecision overwrites the (request, manager) decision record.
	SetDecision(ctx context.Context, requestID, managerID string, decision Decision, remark *string) error
	// ReplaceAssignees swaps the assigned manager set, resetting all
	// decisions to pending.
	ReplaceAssignees(ctx context.Context, requestID string, managerIDs []string) error
}
