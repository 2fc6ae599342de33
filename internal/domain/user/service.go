package user

import (
	"context"

	"github.com/leavehq/leave-backend-go/internal/domain/access"
)

type UserService interface {
	CreateUser(ctx context.Context, principal access.Principal, req CreateUserRequest) (User, error)
	GetUser(ctx context.Context, principal access.Principal, userID string) (User, error)
	ListUsers(ctx context.Context, principal access.Principal) ([]User, error)
	UpdateUser(ctx context.Context, principal access.Principal, req UpdateUserRequest) (User, error)
	DeleteUser(ctx context.Context, principal access.Principal, userID string) error
}
