package access

import "github.com/leavehq/leave-backend-go/internal/pkg/validator"

type CreateRoleRequest struct {
	Name        string  `json:"role_name"`
	Description *string `json:"role_description,omitempty"`
}

func (r *CreateRoleRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "role_name",
			Message: "role_name is required",
		})
	}
	if len(r.Name) > 100 {
		errs = append(errs, validator.ValidationError{
			Field:   "role_name",
			Message: "role_name must not exceed 100 characters",
		})
	}
	if r.Description != nil && len(*r.Description) > 500 {
		errs = append(errs, validator.ValidationError{
			Field:   "role_description",
			Message: "role_description must not exceed 500 characters",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type UpdateRoleRequest struct {
	ID          string  `json:"role_id"`
	Name        *string `json:"role_name,omitempty"`
	Description *string `json:"role_description,omitempty"`
}

func (r *UpdateRoleRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "role_id",
			Message: "role_id is required",
		})
	} else if !validator.IsValidUUID(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "role_id",
			Message: "role_id must be a valid uuid",
		})
	}

	if r.Name != nil {
		if validator.IsEmpty(*r.Name) {
			errs = append(errs, validator.ValidationError{
				Field:   "role_name",
				Message: "role_name must not be empty",
			})
		}
		if len(*r.Name) > 100 {
			errs = append(errs, validator.ValidationError{
				Field:   "role_name",
				Message: "role_name must not exceed 100 characters",
			})
		}
	}
	if r.Description != nil && len(*r.Description) > 500 {
		errs = append(errs, validator.ValidationError{
			Field:   "role_description",
			Message: "role_description must not exceed 500 characters",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// ReplaceRolePermissionsRequest replaces a role's permission set wholesale.
// An empty list is valid and clears the role.
type ReplaceRolePermissionsRequest struct {
	RoleID        string   `json:"role_id"`
	PermissionIDs []string `json:"permission_ids"`
}

func (r *ReplaceRolePermissionsRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.RoleID) {
		errs = append(errs, validator.ValidationError{
			Field:   "role_id",
			Message: "role_id is required",
		})
	} else if !validator.IsValidUUID(r.RoleID) {
		errs = append(errs, validator.ValidationError{
			Field:   "role_id",
			Message: "role_id must be a valid uuid",
		})
	}

	for _, id := range r.PermissionIDs {
		if !validator.IsValidUUID(id) {
			errs = append(errs, validator.ValidationError{
				Field:   "permission_ids",
				Message: "permission_ids must all be valid uuids",
			})
			break
		}
	}
	if validator.HasDuplicates(r.PermissionIDs) {
		errs = append(errs, validator.ValidationError{
			Field:   "permission_ids",
			Message: "permission_ids must not contain duplicates",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ListPermissionsFilter struct {
	Search    string
	Page      int
	Limit     int
	SortBy    string
	SortOrder string
}

type ListPermissionsResponse struct {
	Count int64        `json:"count"`
	Rows  []Permission `json:"rows"`
}
