package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/leavehq/leave-backend-go/internal/config"
	"github.com/leavehq/leave-backend-go/internal/fixtures"
	appHTTP "github.com/leavehq/leave-backend-go/internal/handler/http"
	"github.com/leavehq/leave-backend-go/internal/pkg/database"
	"github.com/leavehq/leave-backend-go/internal/pkg/jwt"
	"github.com/leavehq/leave-backend-go/internal/pkg/oauth"
	"github.com/leavehq/leave-backend-go/internal/repository/postgresql"
	accessService "github.com/leavehq/leave-backend-go/internal/service/access"
	authService "github.com/leavehq/leave-backend-go/internal/service/auth"
	leaveService "github.com/leavehq/leave-backend-go/internal/service/leave"
	organizationService "github.com/leavehq/leave-backend-go/internal/service/organization"
	userService "github.com/leavehq/leave-backend-go/internal/service/user"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Error loading config: ", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL(), cfg.Database.MaxConns, cfg.Database.MinConns)
	if err != nil {
		log.Fatal("Error connecting to database: ", err)
	}
	defer db.Close()

	userRepo := postgresql.NewUserRepository(db)
	organizationRepo := postgresql.NewOrganizationRepository(db)
	roleRepo := postgresql.NewRoleRepository(db)
	permissionRepo := postgresql.NewPermissionRepository(db)
	leaveTypeRepo := postgresql.NewLeaveTypeRepository(db)
	leaveRequestRepo := postgresql.NewLeaveRequestRepository(db)
	jwtRepo := postgresql.NewJWTRepository(db)

	// The permission catalogue is code-defined; sync it into the database at
	// boot so roles can reference it.
	if err := permissionRepo.EnsureCatalogue(ctx, fixtures.PermissionCatalogue()); err != nil {
		log.Fatal("Error seeding permission catalogue: ", err)
	}

	jwtSvc := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)
	googleSvc := oauth.NewGoogleService(cfg.OAuth2Google.ClientID, cfg.OAuth2Google.ClientSecret, cfg.OAuth2Google.RedirectURL, cfg.OAuth2Google.Scopes)

	accessSvc := accessService.NewAccessService(db, roleRepo, permissionRepo)
	authSvc := authService.NewAuthService(userRepo, jwtRepo, jwtSvc, googleSvc)
	leaveSvc := leaveService.NewLeaveService(db, leaveRequestRepo, leaveTypeRepo, userRepo)
	organizationSvc := organizationService.NewOrganizationService(db, organizationRepo, roleRepo, permissionRepo, leaveTypeRepo)
	userSvc := userService.NewUserService(userRepo, roleRepo)

	authHandler := appHTTP.NewAuthHandler(jwtSvc, authSvc, cfg.App.FrontendURL)
	leaveHandler := appHTTP.NewLeaveHandler(leaveSvc)
	roleHandler := appHTTP.NewRoleHandler(accessSvc)
	userHandler := appHTTP.NewUserHandler(userSvc)
	organizationHandler := appHTTP.NewOrganizationHandler(organizationSvc)

	router := appHTTP.NewRouter(
		jwtSvc,
		accessSvc,
		authHandler,
		leaveHandler,
		roleHandler,
		userHandler,
		organizationHandler,
		cfg.App.FrontendURL,
		cfg.App.Env,
	)

	addr := fmt.Sprintf(":%d", cfg.App.Port)
	log.Println("Listening on", addr)
	if err := http.ListenAndServe(addr, router); err != nil {
		log.Fatal("Server error: ", err)
	}
}
