package http

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"

	"github.com/leavehq/leave-backend-go/internal/domain/access"
	"github.com/leavehq/leave-backend-go/internal/handler/http/middleware"
	"github.com/leavehq/leave-backend-go/internal/pkg/jwt"
)

func NewRouter(
	jwtService jwt.Service,
	accessService access.AccessService,
	authHandler AuthHandler,
	leaveHandler LeaveHandler,
	roleHandler RoleHandler,
	userHandler UserHandler,
	organizationHandler OrganizationHandler,
	frontendURL string,
	env string,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "leave-backend"),
		slog.String("version", "v1.0.0"),
		slog.String("env", env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{frontendURL},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Organization-ID"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.Post("/refresh", authHandler.RefreshToken)
			r.Post("/logout", authHandler.Logout)
			r.Route("/oauth/callback", func(r chi.Router) {
				r.Get("/google", authHandler.OAuthCallbackGoogle)
			})

			r.Route("/login", func(r chi.Router) {
				r.Post("/", authHandler.Login)
				r.Route("/oauth", func(r chi.Router) {
					r.Get("/google", authHandler.LoginWithGoogle)
				})
			})
		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))
			r.Use(middleware.OrganizationScope)

			r.Route("/leave-requests", func(r chi.Router) {
				r.With(middleware.RequirePermission(accessService, access.TagLeaveRequestManagement, access.ActionCreate)).
					Post("/", leaveHandler.CreateRequest)
				r.With(middleware.RequirePermission(accessService, access.TagLeaveRequestManagement, access.ActionRead)).
					Get("/", leaveHandler.ListRequests)
				r.With(middleware.RequireAnyAction(accessService, access.TagLeaveRequestManagement, access.ActionCreate, access.ActionRead)).
					Get("/my", leaveHandler.GetMyRequests)
				r.With(middleware.RequirePermission(accessService, access.TagLeaveRequestManagement, access.ActionApprove)).
					Get("/assigned", leaveHandler.GetAssignedRequests)

				r.Route("/{id}", func(r chi.Router) {
					r.With(middleware.RequireAnyAction(accessService, access.TagLeaveRequestManagement,
						access.ActionRead, access.ActionCreate, access.ActionApprove)).
						Get("/", leaveHandler.GetRequest)
					r.With(middleware.RequirePermission(accessService, access.TagLeaveRequestManagement, access.ActionUpdate)).
						Patch("/", leaveHandler.UpdateRequest)
					r.With(middleware.RequirePermission(accessService, access.TagLeaveRequestManagement, access.ActionDelete)).
						Delete("/", leaveHandler.CancelRequest)

					r.Group(func(r chi.Router) {
						r.Use(middleware.RequirePermission(accessService, access.TagLeaveRequestManagement, access.ActionApprove))
						r.Patch("/approve", leaveHandler.ApproveRequest)
						r.Patch("/reject", leaveHandler.RejectRequest)
						r.Patch("/recommend", leaveHandler.RecommendRequest)
					})
				})
			})

			r.Route("/leave-types", func(r chi.Router) {
				r.With(middleware.RequirePermission(accessService, access.TagLeaveTypeManagement, access.ActionRead)).
					Get("/", leaveHandler.ListTypes)
				r.With(middleware.RequirePermission(accessService, access.TagLeaveTypeManagement, access.ActionCreate)).
					Post("/", leaveHandler.CreateType)
				r.With(middleware.RequirePermission(accessService, access.TagLeaveTypeManagement, access.ActionUpdate)).
					Put("/{id}", leaveHandler.UpdateType)
				r.With(middleware.RequirePermission(accessService, access.TagLeaveTypeManagement, access.ActionDelete)).
					Delete("/{id}", leaveHandler.DeleteType)
			})

			r.Route("/roles", func(r chi.Router) {
				r.With(middleware.RequirePermission(accessService, access.TagRoleManagement, access.ActionRead)).
					Get("/", roleHandler.List)
				r.With(middleware.RequirePermission(accessService, access.TagRoleManagement, access.ActionCreate)).
					Post("/", roleHandler.Create)

				r.Route("/{id}", func(r chi.Router) {
					r.With(middleware.RequirePermission(accessService, access.TagRoleManagement, access.ActionRead)).
						Get("/", roleHandler.Get)
					r.With(middleware.RequirePermission(accessService, access.TagRoleManagement, access.ActionUpdate)).
						Put("/", roleHandler.Update)
					r.With(middleware.RequirePermission(accessService, access.TagRoleManagement, access.ActionDelete)).
						Delete("/", roleHandler.Delete)

					r.With(middleware.RequirePermission(accessService, access.TagRoleManagement, access.ActionRead)).
						Get("/permissions", roleHandler.GetPermissions)
					r.With(middleware.RequirePermission(accessService, access.TagRoleManagement, access.ActionUpdate)).
						Put("/permissions", roleHandler.ReplacePermissions)
				})
			})

			r.Route("/users", func(r chi.Router) {
				r.With(middleware.RequirePermission(accessService, access.TagUserManagement, access.ActionRead)).
					Get("/", userHandler.List)
				r.With(middleware.RequirePermission(accessService, access.TagUserManagement, access.ActionCreate)).
					Post("/", userHandler.Create)

				r.Route("/{id}", func(r chi.Router) {
					r.With(middleware.RequirePermission(accessService, access.TagUserManagement, access.ActionRead)).
						Get("/", userHandler.Get)
					r.With(middleware.RequirePermission(accessService, access.TagUserManagement, access.ActionUpdate)).
						Put("/", userHandler.Update)
					r.With(middleware.RequirePermission(accessService, access.TagUserManagement, access.ActionDelete)).
						Delete("/", userHandler.Delete)
				})
			})

			r.Get("/permissions", roleHandler.ListCatalogue)

			r.Route("/organizations", func(r chi.Router) {
				r.Get("/my", organizationHandler.My)

				// Super admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.SuperAdminOnly)
					r.Get("/", organizationHandler.List)
					r.Post("/", organizationHandler.Create)
					r.Get("/{id}", organizationHandler.Get)
				})
			})
		})
	})

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok\n"))
	})

	return r
}
