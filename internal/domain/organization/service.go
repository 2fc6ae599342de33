package organization

import (
	"context"

	"github.com/leavehq/leave-backend-go/internal/domain/access"
)

type OrganizationService interface {
	// CreateOrganization provisions an organization with its default roles
	// and leave types. Super admin only.
	CreateOrganization(ctx context.Context, principal access.Principal, req CreateOrganizationRequest) (Organization, error)
	GetOrganization(ctx context.Context, principal access.Principal, id string) (Organization, error)
	ListOrganizations(ctx context.Context, principal access.Principal) ([]Organization, error)
	// MyOrganization returns the org user's own organization.
	MyOrganization(ctx context.Context, principal access.Principal) (Organization, error)
}
