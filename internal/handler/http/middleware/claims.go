package middleware

import (
	"context"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/auth"
	"github.com/go-chi/jwtauth/v5"
)

// EmployeeID returns the employee the token was issued for.
func EmployeeID(ctx context.Context) (string, error) {
	return stringClaim(ctx, "employee_id", auth.ErrEmployeeRequired)
}

// UserID returns the caller's user id, recorded as reviewer on approvals.
func UserID(ctx context.Context) (string, error) {
	return stringClaim(ctx, "user_id", auth.ErrInvalidToken)
}

func stringClaim(ctx context.Context, key string, missing error) (string, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", auth.ErrInvalidToken
	}
	value, ok := claims[key].(string)
	if !ok || value == "" {
		return "", missing
	}
	return value, nil
}
