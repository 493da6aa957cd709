package user

import "errors"

var (
	ErrUserNotFound           = errors.New("user not found")
	ErrUserEmailExists        = errors.New("email already registered")
	ErrInvalidRole            = errors.New("invalid role")
	ErrInvalidStatus          = errors.New("invalid account status")
	ErrRoleDenied             = errors.New("role is not permitted to access this surface")
	ErrAdminPrivilegeRequired = errors.New("admin privilege required")
	ErrAccountNotActive       = errors.New("account is not active")
	ErrCannotDeleteSelf       = errors.New("cannot delete your own account")
)
