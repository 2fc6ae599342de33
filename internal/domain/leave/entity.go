package leave

import "time"

// LeaveType entity
type LeaveType struct {
	ID             string
	OrganizationID string
	Name           string
	Code           *string
	Description    *string
	IsActive       *bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// LeaveKind maps to leave_kind_enum in DB
type LeaveKind string

const (
	LeaveKindFullDay    LeaveKind = "full_day"
	LeaveKindHalfDay    LeaveKind = "half_day"
	LeaveKindShortLeave LeaveKind = "short_leave"
)

// DayRange maps to day_range_enum in DB
type DayRange string

const (
	DayRangeFullDay       DayRange = "full_day"
	DayRangeFirstHalf     DayRange = "first_half"
	DayRangeSecondHalf    DayRange = "second_half"
	DayRangeFirstQuarter  DayRange = "first_quarter"
	DayRangeSecondQuarter DayRange = "second_quarter"
	DayRangeThirdQuarter  DayRange = "third_quarter"
	DayRangeFourthQuarter DayRange = "fourth_quarter"
)

var allowedRanges = map[LeaveKind][]DayRange{
	LeaveKindFullDay: {DayRangeFullDay},
	LeaveKindHalfDay: {DayRangeFirstHalf, DayRangeSecondHalf},
	LeaveKindShortLeave: {
		DayRangeFirstQuarter, DayRangeSecondQuarter,
		DayRangeThirdQuarter, DayRangeFourthQuarter,
	},
}

// IsValid reports whether the kind is a known enum value.
func (k LeaveKind) IsValid() bool {
	_, ok := allowedRanges[k]
	return ok
}

// Allows reports whether the day range is valid for this kind.
func (k LeaveKind) Allows(r DayRange) bool {
	for _, allowed := range allowedRanges[k] {
		if allowed == r {
			return true
		}
	}
	return false
}

// AllowedRanges returns the day ranges valid for this kind.
func (k LeaveKind) AllowedRanges() []DayRange {
	return allowedRanges[k]
}

type LeaveRequestStatus string

const (
	LeaveRequestStatusPending     LeaveRequestStatus = "pending"
	LeaveRequestStatusApproved    LeaveRequestStatus = "approved"
	LeaveRequestStatusRejected    LeaveRequestStatus = "rejected"
	LeaveRequestStatusRecommended LeaveRequestStatus = "recommended"
	LeaveRequestStatusCancelled   LeaveRequestStatus = "cancelled"
)

// IsTerminal reports whether the status accepts no further decisions.
// Recommended is a display state mid-workflow, not terminal.
func (s LeaveRequestStatus) IsTerminal() bool {
	switch s {
	case LeaveRequestStatusApproved, LeaveRequestStatusRejected, LeaveRequestStatusCancelled:
		return true
	}
	return false
}

func IsValidStatus(s string) bool {
	switch LeaveRequestStatus(s) {
	case LeaveRequestStatusPending, LeaveRequestStatusApproved, LeaveRequestStatusRejected,
		LeaveRequestStatusRecommended, LeaveRequestStatusCancelled:
		return true
	}
	return false
}

// Decision is one manager's verdict on a leave request.
type Decision string

const (
	DecisionPending     Decision = "pending"
	DecisionApproved    Decision = "approved"
	DecisionRejected    Decision = "rejected"
	DecisionRecommended Decision = "recommended"
)

// IsActionable reports whether the decision is one a manager may record.
// DecisionPending is the initial placeholder, never a manager action.
func (d Decision) IsActionable() bool {
	switch d {
	case DecisionApproved, DecisionRejected, DecisionRecommended:
		return true
	}
	return false
}

// ManagerDecision entity - one per (leave_request, manager) pair
type ManagerDecision struct {
	ID             string
	LeaveRequestID string
	ManagerID      string
	Decision       Decision
	Remark         *string
	DecidedAt      *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time

	// Join (for responses)
	ManagerName *string
}

// LeaveRequest entity
type LeaveRequest struct {
	ID             string
	OrganizationID string
	RequesterID    string
	LeaveTypeID    string

	StartDate time.Time
	EndDate   time.Time

	Kind     LeaveKind
	DayRange DayRange
	Reason   string

	Status LeaveRequestStatus

	CreatedAt time.Time
	UpdatedAt time.Time

	Decisions []ManagerDecision

	// Joins (for responses)
	LeaveTypeName *string
	RequesterName *string
}

// DecisionFor returns this request's decision record for the given manager.
func (r *LeaveRequest) DecisionFor(managerID string) (ManagerDecision, bool) {
	for _, d := range r.Decisions {
		if d.ManagerID == managerID {
			return d, true
		}
	}
	return ManagerDecision{}, false
}
