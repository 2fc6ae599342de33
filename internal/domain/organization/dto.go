package organization

import "github.com/leavehq/leave-backend-go/internal/pkg/validator"

type CreateOrganizationRequest struct {
	Name string `json:"organization_name"`
}

func (r *CreateOrganizationRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "organization_name",
			Message: "organization_name is required",
		})
	}
	if len(r.Name) > 255 {
		errs = append(errs, validator.ValidationError{
			Field:   "organization_name",
			Message: "organization_name must not exceed 255 characters",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}
