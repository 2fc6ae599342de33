package organization

import "context"

// OrganizationRepository - interface for organizations table
type OrganizationRepository interface {
	Create(ctx context.Context, org Organization) (Organization, error)
	GetByID(ctx context.Context, id string) (Organization, error)
	List(ctx context.Context) ([]Organization, error)
}
