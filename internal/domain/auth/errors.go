package auth

import "errors"

var (
	ErrInvalidCredentials  = errors.New("invalid email or password")
	ErrInvalidToken        = errors.New("invalid token")
	ErrTokenExpired        = errors.New("token expired")
	ErrRefreshTokenRevoked = errors.New("refresh token revoked")
	ErrOAuthEmailNotFound  = errors.New("no account registered for this google email")
	ErrOAuthStateMismatch  = errors.New("oauth state mismatch")
)
