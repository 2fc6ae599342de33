package leave

import "errors"

var (
	ErrLeaveRequestNotFound         = errors.New("leave request not found")
	ErrLeaveRequestNotPending       = errors.New("leave request is no longer pending")
	ErrLeaveRequestAlreadyProcessed = errors.New("leave request already processed")
	ErrNotAssignedManager           = errors.New("manager is not assigned to this leave request")
	ErrNotRequestOwner              = errors.New("only the requester may modify this leave request")
	ErrDecisionConflict             = errors.New("leave request was modified concurrently")
	ErrLeaveTypeNotFound            = errors.New("leave type not found")
	ErrLeaveTypeInactive            = errors.New("leave type is inactive")
	ErrLeaveTypeNameExists          = errors.New("leave type name already exists in this organization")
	ErrManagerNotInOrganization     = errors.New("assigned manager does not belong to the organization")
)
