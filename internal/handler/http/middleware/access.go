package middleware

import (
	"net/http"

	"github.com/leavehq/leave-backend-go/internal/domain/access"
	"github.com/leavehq/leave-backend-go/internal/domain/auth"
	"github.com/leavehq/leave-backend-go/internal/handler/http/response"
)

// RequirePermission gates a route on one (tag, action) pair. A denied check
// writes 403 and stops; the handler never runs.
func RequirePermission(accessService access.AccessService, tag access.Tag, action access.Action) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal, ok := access.PrincipalFromContext(r.Context())
			if !ok {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			decision, err := accessService.Guard(r.Context(), principal, tag, action)
			if err != nil {
				response.HandleError(w, err)
				return
			}
			if !decision.Allowed {
				response.Forbidden(w, decision.Reason)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequireAnyAction gates a route on holding at least one of the actions
// under the tag.
func RequireAnyAction(accessService access.AccessService, tag access.Tag, actions ...access.Action) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal, ok := access.PrincipalFromContext(r.Context())
			if !ok {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			decision, err := accessService.GuardAny(r.Context(), principal, tag, actions)
			if err != nil {
				response.HandleError(w, err)
				return
			}
			if !decision.Allowed {
				response.Forbidden(w, decision.Reason)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
