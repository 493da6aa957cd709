package auth

import "errors"

var (
	ErrInvalidCredentials  = errors.New("invalid email or password")
	ErrAccountLocked       = errors.New("too many failed attempts, account is temporarily locked")
	ErrRoleMismatch        = errors.New("account is not registered for this login surface")
	ErrInvalidAdminCode    = errors.New("invalid admin registration code")
	ErrInvalidToken        = errors.New("invalid or expired token")
	ErrTokenExpired        = errors.New("token has expired")
	ErrRefreshTokenRevoked = errors.New("refresh token has been revoked")
	ErrUserNotFound        = errors.New("user not found")
)
