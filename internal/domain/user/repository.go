package user

import "context"

// UpdateUserFields carries the nullable field set for partial user updates.
type UpdateUserFields struct {
	ID           string
	FullName     *string
	RoleID       *string
	PasswordHash *string
}

// UserRepository - interface for users table
type UserRepository interface {
	Create(ctx context.Context, u User) (User, error)
	GetByID(ctx context.Context, id string) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
	// GetByIDs returns the users for the given ids; missing ids are simply
	// absent from the result.
	GetByIDs(ctx context.Context, ids []string) ([]User, error)
	ListByOrganization(ctx context.Context, organizationID string) ([]User, error)
	Update(ctx context.Context, fields UpdateUserFields) error
	Delete(ctx context.Context, id string) error
}
