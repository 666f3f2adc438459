package auth

import (
	"context"

	"github.com/cmlabs-hris/timeleave-backend-go/internal/domain/user"
)

type AuthService interface {
	Login(ctx context.Context, req LoginRequest) (TokenResponse, error)
	ChangePassword(ctx context.Context, actor user.Actor, req ChangePasswordRequest) error
}
