package http

import (
	"net/http"

	"github.com/leavehq/leave-backend-go/internal/domain/access"
	"github.com/leavehq/leave-backend-go/internal/domain/auth"
)

// principalFrom pulls the authenticated principal installed by the
// AuthRequired middleware.
func principalFrom(r *http.Request) (access.Principal, error) {
	principal, ok := access.PrincipalFromContext(r.Context())
	if !ok {
		return access.Principal{}, auth.ErrInvalidToken
	}
	return principal, nil
}
