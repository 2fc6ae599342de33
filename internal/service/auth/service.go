package auth

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"

	"github.com/leavehq/leave-backend-go/internal/domain/access"
	"github.com/leavehq/leave-backend-go/internal/domain/auth"
	"github.com/leavehq/leave-backend-go/internal/domain/user"
	"github.com/leavehq/leave-backend-go/internal/pkg/jwt"
	"github.com/leavehq/leave-backend-go/internal/pkg/oauth"
	"github.com/leavehq/leave-backend-go/internal/repository/postgresql"
)

type authServiceImpl struct {
	userRepo      user.UserRepository
	jwtRepo       postgresql.JWTRepository
	jwtService    jwt.Service
	googleService oauth.GoogleService
}

func NewAuthService(
	userRepo user.UserRepository,
	jwtRepo postgresql.JWTRepository,
	jwtService jwt.Service,
	googleService oauth.GoogleService,
) auth.AuthService {
	return &authServiceImpl{
		userRepo:      userRepo,
		jwtRepo:       jwtRepo,
		jwtService:    jwtService,
		googleService: googleService,
	}
}

// principalFor builds the principal variant from the user row. The
// super-admin flag is a provisioning-time column; it is never inferred from
// the email address.
func principalFor(u user.User) (access.Principal, error) {
	if u.IsSuperAdmin {
		return access.SuperAdminPrincipal(u.ID, u.Email), nil
	}
	if u.OrganizationID == nil || u.RoleID == nil {
		return access.Principal{}, auth.ErrInvalidCredentials
	}
	return access.OrgUserPrincipal(u.ID, u.Email, *u.OrganizationID, *u.RoleID), nil
}

func (s *authServiceImpl) issueTokens(ctx context.Context, u user.User, session auth.SessionTrackingRequest) (auth.TokenResponse, error) {
	principal, err := principalFor(u)
	if err != nil {
		return auth.TokenResponse{}, err
	}

	accessToken, accessExpiresAt, err := s.jwtService.GenerateAccessToken(principal)
	if err != nil {
		return auth.TokenResponse{}, err
	}
	refreshToken, refreshExpiresAt, err := s.jwtService.GenerateRefreshToken(u.ID)
	if err != nil {
		return auth.TokenResponse{}, err
	}

	if err := s.jwtRepo.CreateRefreshToken(ctx, u.ID, refreshToken, refreshExpiresAt, session); err != nil {
		return auth.TokenResponse{}, err
	}

	return auth.TokenResponse{
		AccessToken:           accessToken,
		AccessTokenExpiresIn:  accessExpiresAt,
		RefreshToken:          refreshToken,
		RefreshTokenExpiresIn: refreshExpiresAt,
	}, nil
}

func (s *authServiceImpl) Login(ctx context.Context, req auth.LoginRequest, session auth.SessionTrackingRequest) (auth.TokenResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.TokenResponse{}, err
	}

	u, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return auth.TokenResponse{}, auth.ErrInvalidCredentials
		}
		return auth.TokenResponse{}, err
	}

	if u.PasswordHash == nil {
		return auth.TokenResponse{}, auth.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(*u.PasswordHash), []byte(req.Password)); err != nil {
		return auth.TokenResponse{}, auth.ErrInvalidCredentials
	}

	return s.issueTokens(ctx, u, session)
}

func (s *authServiceImpl) LoginWithGoogle(ctx context.Context, userAgent string) (string, error) {
	state := s.googleService.GenerateState(userAgent)
	if state == "" {
		return "", auth.ErrOAuthStateMismatch
	}
	return s.googleService.RedirectURL(state), nil
}

// OAuthCallbackGoogle exchanges the authorization code and logs in the
// matching account. Unknown emails are rejected; accounts are provisioned
// via user management, never on first OAuth login.
func (s *authServiceImpl) OAuthCallbackGoogle(ctx context.Context, code string, session auth.SessionTrackingRequest) (auth.TokenResponse, error) {
	token, err := s.googleService.VerifyToken(ctx, code)
	if err != nil {
		return auth.TokenResponse{}, auth.ErrInvalidToken
	}

	info, err := s.googleService.VerifyUser(ctx, token)
	if err != nil {
		return auth.TokenResponse{}, auth.ErrInvalidToken
	}

	u, err := s.userRepo.GetByEmail(ctx, info.Email)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return auth.TokenResponse{}, auth.ErrOAuthEmailNotFound
		}
		return auth.TokenResponse{}, err
	}

	return s.issueTokens(ctx, u, session)
}

// RefreshToken rotates the refresh token: the presented token is validated,
// checked against the revocation store, revoked, and a fresh pair is issued.
func (s *authServiceImpl) RefreshToken(ctx context.Context, req auth.RefreshTokenRequest, session auth.SessionTrackingRequest) (auth.TokenResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.TokenResponse{}, err
	}

	userID, err := s.jwtService.ValidateRefreshToken(req.RefreshToken)
	if err != nil {
		return auth.TokenResponse{}, auth.ErrInvalidToken
	}

	revoked, err := s.jwtRepo.IsRefreshTokenRevoked(ctx, req.RefreshToken)
	if err != nil {
		return auth.TokenResponse{}, auth.ErrInvalidToken
	}
	if revoked {
		return auth.TokenResponse{}, auth.ErrRefreshTokenRevoked
	}

	u, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return auth.TokenResponse{}, auth.ErrInvalidToken
	}

	if err := s.jwtRepo.RevokeRefreshToken(ctx, req.RefreshToken); err != nil {
		return auth.TokenResponse{}, err
	}

	return s.issueTokens(ctx, u, session)
}

func (s *authServiceImpl) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}
	return s.jwtRepo.RevokeRefreshToken(ctx, refreshToken)
}
