package access

import (
	"context"
	"errors"
)

// PrincipalKind distinguishes the super-admin escape hatch from regular
// organization users. The kind is fixed at token issuance, never derived
// from an email compare at check time.
type PrincipalKind string

const (
	PrincipalSuperAdmin PrincipalKind = "super_admin"
	PrincipalOrgUser    PrincipalKind = "org_user"
)

// Principal is the authenticated actor behind every operation. Services take
// it as an explicit argument; it is never looked up as a hidden side effect.
type Principal struct {
	Kind           PrincipalKind
	UserID         string
	Email          string
	OrganizationID string // empty for super admins
	RoleID         string // empty for super admins
}

func SuperAdminPrincipal(userID, email string) Principal {
	return Principal{Kind: PrincipalSuperAdmin, UserID: userID, Email: email}
}

func OrgUserPrincipal(userID, email, organizationID, roleID string) Principal {
	return Principal{
		Kind:           PrincipalOrgUser,
		UserID:         userID,
		Email:          email,
		OrganizationID: organizationID,
		RoleID:         roleID,
	}
}

func (p Principal) IsSuperAdmin() bool {
	return p.Kind == PrincipalSuperAdmin
}

var ErrInvalidPrincipalClaims = errors.New("token claims do not form a valid principal")

// PrincipalFromClaims rebuilds the principal from access-token claims.
func PrincipalFromClaims(claims map[string]interface{}) (Principal, error) {
	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return Principal{}, ErrInvalidPrincipalClaims
	}
	email, ok := claims["email"].(string)
	if !ok || email == "" {
		return Principal{}, ErrInvalidPrincipalClaims
	}

	if superAdmin, ok := claims["super_admin"].(bool); ok && superAdmin {
		return SuperAdminPrincipal(userID, email), nil
	}

	orgID, ok := claims["org_id"].(string)
	if !ok || orgID == "" {
		return Principal{}, ErrInvalidPrincipalClaims
	}
	roleID, ok := claims["role_id"].(string)
	if !ok || roleID == "" {
		return Principal{}, ErrInvalidPrincipalClaims
	}

	return OrgUserPrincipal(userID, email, orgID, roleID), nil
}

type principalContextKey struct{}

func ContextWithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalContextKey{}, p)
}

func PrincipalFromContext(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(principalContextKey{}).(Principal)
	return p, ok
}
