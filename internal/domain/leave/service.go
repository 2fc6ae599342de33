package leave

import (
	"context"

	"github.com/leavehq/leave-backend-go/internal/domain/access"
)

type LeaveService interface {
	// Requests (state machine)
	CreateLeaveRequest(ctx context.Context, principal access.Principal, req CreateLeaveRequestRequest) (LeaveRequest, error)
	UpdateLeaveRequest(ctx context.Context, principal access.Principal, req UpdateLeaveRequestRequest) (LeaveRequest, error)
	CancelLeaveRequest(ctx context.Context, principal access.Principal, requestID string) (LeaveRequest, error)
	GetLeaveRequest(ctx context.Context, principal access.Principal, requestID string) (LeaveRequest, error)
	ListLeaveRequests(ctx context.Context, principal access.Principal, filter LeaveRequestFilter) (ListLeaveRequestsResponse, error)
	ListMyLeaveRequests(ctx context.Context, principal access.Principal, filter LeaveRequestFilter) (ListLeaveRequestsResponse, error)
	ListAssignedLeaveRequests(ctx context.Context, principal access.Principal, filter LeaveRequestFilter) (ListLeaveRequestsResponse, error)

	// Decisions (approval orchestration)
	RecordDecision(ctx context.Context, principal access.Principal, req DecisionRequest) (LeaveRequest, error)

	// Types
	CreateLeaveType(ctx context.Context, principal access.Principal, req CreateLeaveTypeRequest) (LeaveType, error)
	UpdateLeaveType(ctx context.Context, principal access.Principal, req UpdateLeaveTypeRequest) error
	GetLeaveType(ctx context.Context, principal access.Principal, id string) (LeaveType, error)
	ListLeaveTypes(ctx context.Context, principal access.Principal) ([]LeaveType, error)
	DeleteLeaveType(ctx context.Context, principal access.Principal, id string) error
}
