package leave

import (
	"fmt"

	"github.com/leavehq/leave-backend-go/internal/pkg/validator"
)

const maxReasonLength = 500

type CreateLeaveRequestRequest struct {
	LeaveTypeID string   `json:"leave_type_uuid"`
	Kind        string   `json:"type"`
	DayRange    string   `json:"range"`
	StartDate   string   `json:"start_date"`
	EndDate     string   `json:"end_date"`
	Reason      string   `json:"reason"`
	ManagerIDs  []string `json:"managers"`
}

func (r *CreateLeaveRequestRequest) Validate() error {
	var errs validator.ValidationErrors

	// Leave type
	if validator.IsEmpty(r.LeaveTypeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "leave_type_uuid",
			Message: "leave_type_uuid is required",
		})
	} else if !validator.IsValidUUID(r.LeaveTypeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "leave_type_uuid",
			Message: "leave_type_uuid must be a valid uuid",
		})
	}

	// Kind and day range compatibility
	kind := LeaveKind(r.Kind)
	if validator.IsEmpty(r.Kind) {
		errs = append(errs, validator.ValidationError{
			Field:   "type",
			Message: "type is required",
		})
	} else if !kind.IsValid() {
		errs = append(errs, validator.ValidationError{
			Field:   "type",
			Message: "type must be one of full_day, half_day, short_leave",
		})
	} else if !kind.Allows(DayRange(r.DayRange)) {
		errs = append(errs, validator.ValidationError{
			Field:   "range",
			Message: fmt.Sprintf("range %q is not valid for type %q", r.DayRange, r.Kind),
		})
	}

	// Dates
	startDate, startOK := validator.IsValidDate(r.StartDate)
	if !startOK {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date must be a valid date (YYYY-MM-DD)",
		})
	}
	endDate, endOK := validator.IsValidDate(r.EndDate)
	if !endOK {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must be a valid date (YYYY-MM-DD)",
		})
	}
	if startOK && endOK && endDate.Before(startDate) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must not be before start_date",
		})
	}

	// Reason
	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{
			Field:   "reason",
			Message: "reason is required",
		})
	}
	if len(r.Reason) > maxReasonLength {
		errs = append(errs, validator.ValidationError{
			Field:   "reason",
			Message: fmt.Sprintf("reason must not exceed %d characters", maxReasonLength),
		})
	}

	// Managers
	if len(r.ManagerIDs) == 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "managers",
			Message: "at least one manager must be assigned",
		})
	}
	for _, id := range r.ManagerIDs {
		if !validator.IsValidUUID(id) {
			errs = append(errs, validator.ValidationError{
				Field:   "managers",
				Message: "managers must all be valid uuids",
			})
			break
		}
	}
	if validator.HasDuplicates(r.ManagerIDs) {
		errs = append(errs, validator.ValidationError{
			Field:   "managers",
			Message: "managers must not contain duplicates",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// UpdateLeaveRequestRequest carries the same fields as creation; a pending
// request is edited wholesale.
type UpdateLeaveRequestRequest struct {
	ID          string   `json:"leave_request_uuid"`
	LeaveTypeID string   `json:"leave_type_uuid"`
	Kind        string   `json:"type"`
	DayRange    string   `json:"range"`
	StartDate   string   `json:"start_date"`
	EndDate     string   `json:"end_date"`
	Reason      string   `json:"reason"`
	ManagerIDs  []string `json:"managers"`
}

func (r *UpdateLeaveRequestRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "leave_request_uuid",
			Message: "leave_request_uuid is required",
		})
	} else if !validator.IsValidUUID(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "leave_request_uuid",
			Message: "leave_request_uuid must be a valid uuid",
		})
	}

	create := CreateLeaveRequestRequest{
		LeaveTypeID: r.LeaveTypeID,
		Kind:        r.Kind,
		DayRange:    r.DayRange,
		StartDate:   r.StartDate,
		EndDate:     r.EndDate,
		Reason:      r.Reason,
		ManagerIDs:  r.ManagerIDs,
	}
	if err := create.Validate(); err != nil {
		if fieldErrs, ok := err.(validator.ValidationErrors); ok {
			errs = append(errs, fieldErrs...)
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type DecisionRequest struct {
	RequestID string  `json:"leave_request_uuid"`
	Decision  string  `json:"decision"`
	Remark    *string `json:"remark,omitempty"`
}

func (r *DecisionRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.RequestID) {
		errs = append(errs, validator.ValidationError{
			Field:   "leave_request_uuid",
			Message: "leave_request_uuid is required",
		})
	} else if !validator.IsValidUUID(r.RequestID) {
		errs = append(errs, validator.ValidationError{
			Field:   "leave_request_uuid",
			Message: "leave_request_uuid must be a valid uuid",
		})
	}

	if !Decision(r.Decision).IsActionable() {
		errs = append(errs, validator.ValidationError{
			Field:   "decision",
			Message: "decision must be one of approved, rejected, recommended",
		})
	}

	if r.Remark != nil && len(*r.Remark) > maxReasonLength {
		errs = append(errs, validator.ValidationError{
			Field:   "remark",
			Message: fmt.Sprintf("remark must not exceed %d characters", maxReasonLength),
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type LeaveRequestFilter struct {
	RequesterID *string
	ManagerID   *string
	LeaveTypeID *string
	Status      *string
	StartDate   *string
	EndDate     *string
	Search      *string
	Page        int
	Limit       int
	SortBy      string
	SortOrder   string
}

func (f *LeaveRequestFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Status != nil && !IsValidStatus(*f.Status) {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be one of pending, approved, rejected, recommended, cancelled",
		})
	}
	if f.StartDate != nil {
		if _, ok := validator.IsValidDate(*f.StartDate); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "start_date",
				Message: "start_date must be a valid date (YYYY-MM-DD)",
			})
		}
	}
	if f.EndDate != nil {
		if _, ok := validator.IsValidDate(*f.EndDate); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "end_date",
				Message: "end_date must be a valid date (YYYY-MM-DD)",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ListLeaveRequestsResponse struct {
	Count int64          `json:"count"`
	Rows  []LeaveRequest `json:"rows"`
}

type CreateLeaveTypeRequest struct {
	Name        string  `json:"leave_type_name"`
	Code        *string `json:"leave_type_code,omitempty"`
	Description *string `json:"leave_type_description,omitempty"`
}

func (r *CreateLeaveTypeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "leave_type_name",
			Message: "leave_type_name is required",
		})
	}
	if len(r.Name) > 255 {
		errs = append(errs, validator.ValidationError{
			Field:   "leave_type_name",
			Message: "leave_type_name must not exceed 255 characters",
		})
	}
	if r.Code != nil && len(*r.Code) > 20 {
		errs = append(errs, validator.ValidationError{
			Field:   "leave_type_code",
			Message: "leave_type_code must not exceed 20 characters",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type UpdateLeaveTypeRequest struct {
	ID          string  `json:"leave_type_uuid"`
	Name        *string `json:"leave_type_name,omitempty"`
	Code        *string `json:"leave_type_code,omitempty"`
	Description *string `json:"leave_type_description,omitempty"`
	IsActive    *bool   `json:"leave_type_is_active,omitempty"`
}

func (r *UpdateLeaveTypeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "leave_type_uuid",
			Message: "leave_type_uuid is required",
		})
	}

	if r.Name != nil {
		if validator.IsEmpty(*r.Name) {
			errs = append(errs, validator.ValidationError{
				Field:   "leave_type_name",
				Message: "leave_type_name must not be empty",
			})
		}
		if len(*r.Name) > 255 {
			errs = append(errs, validator.ValidationError{
				Field:   "leave_type_name",
				Message: "leave_type_name must not exceed 255 characters",
			})
		}
	}
	if r.Code != nil && len(*r.Code) > 20 {
		errs = append(errs, validator.ValidationError{
			Field:   "leave_type_code",
			Message: "leave_type_code must not exceed 20 characters",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}
