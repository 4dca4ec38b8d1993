package auth

import "errors"

// Access errors raised while checking the bearer token. Identities are
// issued elsewhere; this service only reads their claims.
var (
	ErrInvalidToken           = errors.New("invalid or expired token")
	ErrAdminPrivilegeRequired = errors.New("admin privilege required")
	ErrEmployeeRequired       = errors.New("an employee account is required")
)
