package middleware

import (
	"net/http"

	"github.com/leavehq/leave-backend-go/internal/domain/access"
	"github.com/leavehq/leave-backend-go/internal/domain/auth"
	"github.com/leavehq/leave-backend-go/internal/handler/http/response"
)

// SuperAdminOnly restricts a route to the super-admin principal variant.
func SuperAdminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		principal, ok := access.PrincipalFromContext(r.Context())
		if !ok {
			response.HandleError(w, auth.ErrInvalidToken)
			return
		}

		if !principal.IsSuperAdmin() {
			response.HandleError(w, access.ErrAccessDenied)
			return
		}

		next.ServeHTTP(w, r)
	})
}
