package jwt

import (
	"testing"

	"github.com/cmlabs-hris/timeleave-backend-go/internal/domain/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewJWTService_InvalidDuration(t *testing.T) {
	_, err := NewJWTService("secret", "fifteen minutes")
	assert.Error(t, err)
}

func TestGenerateAccessToken_RoundTrip(t *testing.T) {
	svc, err := NewJWTService("test-secret-key", "15m")
	require.NoError(t, err)

	employeeID := "emp-1"
	tokenString, expiresAt, err := svc.GenerateAccessToken("user-1", "jane@example.com", &employeeID, user.RoleEmployee)
	require.NoError(t, err)
	assert.NotEmpty(t, tokenString)
	assert.Greater(t, expiresAt, int64(0))

	token, err := svc.JWTAuth().Decode(tokenString)
	require.NoError(t, err)

	claims, err := token.AsMap(t.Context())
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims["user_id"])
	assert.Equal(t, "emp-1", claims["employee_id"])
	assert.Equal(t, "employee", claims["role"])
	assert.Equal(t, TokenTypeAccess, claims["type"])
}

func TestGenerateAccessToken_NoEmployee(t *testing.T) {
	svc, err := NewJWTService("test-secret-key", "1h")
	require.NoError(t, err)

	tokenString, _, err := svc.GenerateAccessToken("admin-1", "admin@example.com", nil, user.RoleAdmin)
	require.NoError(t, err)

	token, err := svc.JWTAuth().Decode(tokenString)
	require.NoError(t, err)

	claims, err := token.AsMap(t.Context())
	require.NoError(t, err)
	assert.Nil(t, claims["employee_id"])
}

func TestJWTAuth_RejectsForeignSignature(t *testing.T) {
	a, err := NewJWTService("key-a", "1h")
	require.NoError(t, err)
	b, err := NewJWTService("key-b", "1h")
	require.NoError(t, err)

	tokenString, _, err := a.GenerateAccessToken("user-1", "x@example.com", nil, user.RoleAdmin)
	require.NoError(t, err)

	_, err = b.JWTAuth().Decode(tokenString)
	assert.Error(t, err)
}
