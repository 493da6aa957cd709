package user

import "context"

// UserService defines admin-facing employee management operations
type UserService interface {
	// ListEmployees retrieves user accounts with filters and pagination
	ListEmployees(ctx context.Context, filter ListFilter) (ListUsersResponse, error)

	// GetEmployee retrieves a single user account by ID
	GetEmployee(ctx context.Context, id string) (UserResponse, error)

	// UpdateEmployee edits full name, role, or account status
	UpdateEmployee(ctx context.Context, req UpdateUserRequest) (UserResponse, error)

	// DeleteEmployee removes a user account
	DeleteEmployee(ctx context.Context, id string) error
}
