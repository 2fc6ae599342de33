package middleware

import (
	"net/http"

	"github.com/leavehq/leave-backend-go/internal/domain/access"
	"github.com/leavehq/leave-backend-go/internal/domain/auth"
	"github.com/leavehq/leave-backend-go/internal/handler/http/response"
)

// OrganizationScope rejects requests whose X-Organization-ID header does not
// match the principal's organization. The header is optional; super admins
// are exempt.
func OrganizationScope(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		principal, ok := access.PrincipalFromContext(r.Context())
		if !ok {
			response.HandleError(w, auth.ErrInvalidToken)
			return
		}

		header := r.Header.Get("X-Organization-ID")
		if header != "" && !principal.IsSuperAdmin() && header != principal.OrganizationID {
			response.HandleError(w, access.ErrOrganizationMismatch)
			return
		}

		next.ServeHTTP(w, r)
	})
}
