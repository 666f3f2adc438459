package auth

import (
	"context"
	"testing"

	"github.com/cmlabs-hris/timeleave-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/timeleave-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/timeleave-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/timeleave-backend-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const (
	testAccessExp = "1h"
	testSecret    = "test-secret-key-for-jwt"
)

type fakeUserRepo struct {
	byEmail map[string]user.User
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (user.User, error) {
	u, ok := f.byEmail[email]
	if !ok {
		return user.User{}, user.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (user.User, error) {
	for _, u := range f.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return user.User{}, user.ErrUserNotFound
}

func (f *fakeUserRepo) Create(ctx context.Context, u user.User) (user.User, error) {
	f.byEmail[u.Email] = u
	return u, nil
}

func (f *fakeUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, ok := f.byEmail[email]
	return ok, nil
}

func (f *fakeUserRepo) UpdatePassword(ctx context.Context, id, hash string) error {
	for email, u := range f.byEmail {
		if u.ID == id {
			u.PasswordHash = hash
			f.byEmail[email] = u
			return nil
		}
	}
	return user.ErrUserNotFound
}

func setupAuthService(t *testing.T) (auth.AuthService, *fakeUserRepo, jwt.Service) {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)

	employeeID := "emp-1"
	repo := &fakeUserRepo{byEmail: map[string]user.User{
		"jane@example.com": {
			ID:           "user-1",
			EmployeeID:   &employeeID,
			Email:        "jane@example.com",
			PasswordHash: string(hash),
			Role:         user.RoleEmployee,
		},
	}}

	jwtService, err := jwt.NewJWTService(testSecret, testAccessExp)
	require.NoError(t, err)

	return NewAuthService(repo, jwtService), repo, jwtService
}

func TestLogin(t *testing.T) {
	svc, _, jwtService := setupAuthService(t)
	ctx := context.Background()

	t.Run("valid credentials", func(t *testing.T) {
		resp, err := svc.Login(ctx, auth.LoginRequest{Email: "jane@example.com", Password: "password123"})
		require.NoError(t, err)

		assert.NotEmpty(t, resp.AccessToken)
		assert.Positive(t, resp.AccessTokenExpiresIn)
		assert.Equal(t, "user-1", resp.UserID)
		require.NotNil(t, resp.EmployeeID)
		assert.Equal(t, "emp-1", *resp.EmployeeID)
		assert.Equal(t, "employee", resp.Role)

		token, err := jwtService.JWTAuth().Decode(resp.AccessToken)
		require.NoError(t, err)
		claims, err := token.AsMap(ctx)
		require.NoError(t, err)
		assert.Equal(t, "user-1", claims["user_id"])
		assert.Equal(t, "emp-1", claims["employee_id"])
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Login(ctx, auth.LoginRequest{Email: "jane@example.com", Password: "wrongpassword"})
		assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := svc.Login(ctx, auth.LoginRequest{Email: "nobody@example.com", Password: "password123"})
		assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
	})

	t.Run("invalid body", func(t *testing.T) {
		_, err := svc.Login(ctx, auth.LoginRequest{Email: "not-an-email"})
		var verrs validator.ValidationErrors
		require.ErrorAs(t, err, &verrs)
		assert.Contains(t, verrs.ToMap(), "email")
		assert.Contains(t, verrs.ToMap(), "password")
	})
}

func TestChangePassword(t *testing.T) {
	svc, repo, _ := setupAuthService(t)
	ctx := context.Background()
	actor := user.Actor{UserID: "user-1", EmployeeID: "emp-1", Role: user.RoleEmployee}

	err := svc.ChangePassword(ctx, actor, auth.ChangePasswordRequest{
		CurrentPassword: "not-my-password",
		NewPassword:     "newpassword456",
		ConfirmPassword: "newpassword456",
	})
	assert.ErrorIs(t, err, auth.ErrWrongPassword)

	err = svc.ChangePassword(ctx, actor, auth.ChangePasswordRequest{
		CurrentPassword: "password123",
		NewPassword:     "newpassword456",
		ConfirmPassword: "mismatch456",
	})
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs.ToMap(), "confirm_password")

	err = svc.ChangePassword(ctx, actor, auth.ChangePasswordRequest{
		CurrentPassword: "password123",
		NewPassword:     "newpassword456",
		ConfirmPassword: "newpassword456",
	})
	require.NoError(t, err)

	stored := repo.byEmail["jane@example.com"].PasswordHash
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored), []byte("newpassword456")))

	_, err = svc.Login(ctx, auth.LoginRequest{Email: "jane@example.com", Password: "password123"})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
	_, err = svc.Login(ctx, auth.LoginRequest{Email: "jane@example.com", Password: "newpassword456"})
	assert.NoError(t, err)
}
