package response

import (
	"context"
	"errors"
	"net"
	"net/http"

	"github.com/leavehq/leave-backend-go/internal/domain/access"
	"github.com/leavehq/leave-backend-go/internal/domain/auth"
	"github.com/leavehq/leave-backend-go/internal/domain/leave"
	"github.com/leavehq/leave-backend-go/internal/domain/organization"
	"github.com/leavehq/leave-backend-go/internal/domain/user"
	"github.com/leavehq/leave-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	// Retryable infrastructure failures
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		ServiceUnavailable(w, "Temporary failure, please retry")
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, "Invalid email or password")
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid token")
	case errors.Is(err, auth.ErrTokenExpired):
		Unauthorized(w, "Token expired")
	case errors.Is(err, auth.ErrRefreshTokenRevoked):
		Unauthorized(w, "Refresh token revoked")
	case errors.Is(err, auth.ErrOAuthEmailNotFound):
		NotFound(w, "No account registered for this email")
	case errors.Is(err, auth.ErrOAuthStateMismatch):
		Unauthorized(w, "OAuth state mismatch")

	// Access domain errors
	case errors.Is(err, access.ErrAccessDenied):
		Forbidden(w, "You do not have permission to perform this action")
	case errors.Is(err, access.ErrOrganizationMismatch):
		Forbidden(w, "Operation requires an organization context")
	case errors.Is(err, access.ErrRoleNotFound):
		NotFound(w, "Role not found")
	case errors.Is(err, access.ErrRoleNameExists):
		Conflict(w, "Role name already exists in this organization")
	case errors.Is(err, access.ErrPermissionNotFound):
		NotFound(w, "Permission not found")
	case errors.Is(err, access.ErrUnknownPermission):
		ValidationError(w, map[string]string{"permission_ids": "one or more permission ids are unknown"})
	case errors.Is(err, access.ErrInvalidPrincipalClaims):
		Unauthorized(w, "Invalid token")

	// Leave domain errors
	case errors.Is(err, leave.ErrLeaveRequestNotFound):
		NotFound(w, "Leave request not found")
	case errors.Is(err, leave.ErrLeaveRequestNotPending):
		Conflict(w, "Leave request is no longer pending")
	case errors.Is(err, leave.ErrLeaveRequestAlreadyProcessed):
		Conflict(w, "Leave request already processed")
	case errors.Is(err, leave.ErrNotAssignedManager):
		Forbidden(w, "You are not assigned to decide this leave request")
	case errors.Is(err, leave.ErrNotRequestOwner):
		Forbidden(w, "Only the requester may modify this leave request")
	case errors.Is(err, leave.ErrDecisionConflict):
		ConflictWithCode(w, "CONCURRENT_MODIFICATION", "Leave request was modified concurrently, re-fetch and retry")
	case errors.Is(err, leave.ErrLeaveTypeNotFound):
		NotFound(w, "Leave type not found")
	case errors.Is(err, leave.ErrLeaveTypeInactive):
		Conflict(w, "Leave type is inactive")
	case errors.Is(err, leave.ErrLeaveTypeNameExists):
		Conflict(w, "Leave type name already exists in this organization")
	case errors.Is(err, leave.ErrManagerNotInOrganization):
		ValidationError(w, map[string]string{"managers": "all managers must belong to your organization"})

	// User domain errors
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, user.ErrUserEmailExists):
		Conflict(w, "Email already registered")

	// Organization domain errors
	case errors.Is(err, organization.ErrOrganizationNotFound):
		NotFound(w, "Organization not found")
	case errors.Is(err, organization.ErrOrganizationNameExists):
		Conflict(w, "Organization name already exists")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
