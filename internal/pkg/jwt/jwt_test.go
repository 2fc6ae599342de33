package jwt

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leavehq/leave-backend-go/internal/domain/access"
)

const testSecret = "test-secret-key-for-jwt"

func decodeClaims(t *testing.T, svc *JWTService, token string) map[string]interface{} {
	t.Helper()
	decoded, err := svc.tokenAuth.Decode(token)
	require.NoError(t, err)
	claims, err := decoded.AsMap(context.Background())
	require.NoError(t, err)
	return claims
}

func TestAccessTokenCarriesOrgUserPrincipal(t *testing.T) {
	svc := NewJWTService(testSecret, "1h", "24h").(*JWTService)
	principal := access.OrgUserPrincipal("u1", "u1@example.com", "o1", "r1")

	token, expiresAt, err := svc.GenerateAccessToken(principal)
	require.NoError(t, err)
	assert.Greater(t, expiresAt, int64(0))

	claims := decodeClaims(t, svc, token)
	rebuilt, err := access.PrincipalFromClaims(claims)
	require.NoError(t, err)

	assert.Equal(t, principal, rebuilt)
	assert.Equal(t, "access", claims["type"])
}

func TestAccessTokenCarriesSuperAdminPrincipal(t *testing.T) {
	svc := NewJWTService(testSecret, "1h", "24h").(*JWTService)
	principal := access.SuperAdminPrincipal("u0", "root@example.com")

	token, _, err := svc.GenerateAccessToken(principal)
	require.NoError(t, err)

	claims := decodeClaims(t, svc, token)
	rebuilt, err := access.PrincipalFromClaims(claims)
	require.NoError(t, err)

	assert.True(t, rebuilt.IsSuperAdmin())
	assert.Equal(t, true, claims["super_admin"])
	// No org claims on a super admin token.
	_, hasOrg := claims["org_id"]
	assert.False(t, hasOrg)
}

func TestRefreshTokenRoundTrip(t *testing.T) {
	svc := NewJWTService(testSecret, "1h", "24h").(*JWTService)

	token, _, err := svc.GenerateRefreshToken("u1")
	require.NoError(t, err)

	userID, err := svc.ValidateRefreshToken(token)
	require.NoError(t, err)
	assert.Equal(t, "u1", userID)
}

func TestValidateRefreshTokenRejectsAccessToken(t *testing.T) {
	svc := NewJWTService(testSecret, "1h", "24h").(*JWTService)
	principal := access.OrgUserPrincipal("u1", "u1@example.com", "o1", "r1")

	accessToken, _, err := svc.GenerateAccessToken(principal)
	require.NoError(t, err)

	_, err = svc.ValidateRefreshToken(accessToken)
	assert.Error(t, err)
}
