package jwt

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAccessToken(t *testing.T) {
	svc := NewJWTService("test-secret", time.Hour)
	employeeID := "0190a000-0000-7000-8000-000000000001"

	token, expiresAt, err := svc.GenerateAccessToken("user-1", &employeeID, RoleEmployee)
	require.NoError(t, err)
	assert.Greater(t, expiresAt, time.Now().Unix())

	decoded, err := svc.JWTAuth().Decode(token)
	require.NoError(t, err)

	claims, err := decoded.AsMap(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims["user_id"])
	assert.Equal(t, employeeID, claims["employee_id"])
	assert.Equal(t, "employee", claims["role"])
	assert.Equal(t, "access", claims["type"])
}

func TestGenerateAccessToken_AdminWithoutEmployee(t *testing.T) {
	svc := NewJWTService("test-secret", time.Hour)

	token, _, err := svc.GenerateAccessToken("admin-1", nil, RoleAdmin)
	require.NoError(t, err)

	decoded, err := svc.JWTAuth().Decode(token)
	require.NoError(t, err)
	claims, err := decoded.AsMap(context.Background())
	require.NoError(t, err)
	assert.Nil(t, claims["employee_id"])
	assert.Equal(t, "admin", claims["role"])
}

func TestRoleIsValid(t *testing.T) {
	assert.True(t, RoleAdmin.IsValid())
	assert.True(t, RoleEmployee.IsValid())
	assert.False(t, Role("owner").IsValid())
}
