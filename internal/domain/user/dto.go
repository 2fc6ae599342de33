package user

import (
	"time"

	"github.com/leavehq/leave-backend-go/internal/pkg/validator"
)

const minPasswordLength = 8

type CreateUserRequest struct {
	// Required for super admins, who carry no organization of their own;
	// org users always provision within their own organization.
	OrganizationID string `json:"organization_uuid,omitempty"`
	RoleID         string `json:"role_uuid"`
	Email          string `json:"email"`
	Password       string `json:"password"`
	FullName       string `json:"full_name"`
}

func (r *CreateUserRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "email is required",
		})
	} else if !validator.IsValidEmail(r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "email format is invalid",
		})
	}

	if len(r.Password) < minPasswordLength {
		errs = append(errs, validator.ValidationError{
			Field:   "password",
			Message: "password must be at least 8 characters",
		})
	}

	if validator.IsEmpty(r.FullName) {
		errs = append(errs, validator.ValidationError{
			Field:   "full_name",
			Message: "full_name is required",
		})
	}

	if validator.IsEmpty(r.RoleID) {
		errs = append(errs, validator.ValidationError{
			Field:   "role_uuid",
			Message: "role_uuid is required",
		})
	} else if !validator.IsValidUUID(r.RoleID) {
		errs = append(errs, validator.ValidationError{
			Field:   "role_uuid",
			Message: "role_uuid must be a valid uuid",
		})
	}

	if r.OrganizationID != "" && !validator.IsValidUUID(r.OrganizationID) {
		errs = append(errs, validator.ValidationError{
			Field:   "organization_uuid",
			Message: "organization_uuid must be a valid uuid",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type UpdateUserRequest struct {
	ID       string  `json:"user_uuid"`
	FullName *string `json:"full_name,omitempty"`
	RoleID   *string `json:"role_uuid,omitempty"`
	Password *string `json:"password,omitempty"`
}

func (r *UpdateUserRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "user_uuid",
			Message: "user_uuid is required",
		})
	} else if !validator.IsValidUUID(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "user_uuid",
			Message: "user_uuid must be a valid uuid",
		})
	}

	if r.FullName == nil && r.RoleID == nil && r.Password == nil {
		errs = append(errs, validator.ValidationError{
			Field:   "full_name",
			Message: "at least one field must be provided",
		})
	}

	if r.FullName != nil && validator.IsEmpty(*r.FullName) {
		errs = append(errs, validator.ValidationError{
			Field:   "full_name",
			Message: "full_name must not be empty",
		})
	}

	if r.RoleID != nil && !validator.IsValidUUID(*r.RoleID) {
		errs = append(errs, validator.ValidationError{
			Field:   "role_uuid",
			Message: "role_uuid must be a valid uuid",
		})
	}

	if r.Password != nil && len(*r.Password) < minPasswordLength {
		errs = append(errs, validator.ValidationError{
			Field:   "password",
			Message: "password must be at least 8 characters",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// UserResponse is the outward shape of a user. The password hash never
// leaves the service layer.
type UserResponse struct {
	ID             string    `json:"user_uuid"`
	OrganizationID *string   `json:"organization_uuid"`
	RoleID         *string   `json:"role_uuid"`
	RoleName       *string   `json:"role_name"`
	Email          string    `json:"email"`
	FullName       string    `json:"full_name"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func NewUserResponse(u User) UserResponse {
	return UserResponse{
		ID:             u.ID,
		OrganizationID: u.OrganizationID,
		RoleID:         u.RoleID,
		RoleName:       u.RoleName,
		Email:          u.Email,
		FullName:       u.FullName,
		CreatedAt:      u.CreatedAt,
		UpdatedAt:      u.UpdatedAt,
	}
}

func NewUserResponses(users []User) []UserResponse {
	responses := make([]UserResponse, 0, len(users))
	for _, u := range users {
		responses = append(responses, NewUserResponse(u))
	}
	return responses
}
