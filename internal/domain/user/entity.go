package user

import "time"

type User struct {
	ID             string
	OrganizationID *string // nil for super admins
	RoleID         *string // nil for super admins
	Email          string
	PasswordHash   *string
	FullName       string
	IsSuperAdmin   bool

	OAuthProvider   *string
	OAuthProviderID *string

	CreatedAt time.Time
	UpdatedAt time.Time

	// Join (for responses)
	RoleName *string
}

// InOrganization reports whether the user belongs to the given organization.
func (u *User) InOrganization(organizationID string) bool {
	return u.OrganizationID != nil && *u.OrganizationID == organizationID
}
