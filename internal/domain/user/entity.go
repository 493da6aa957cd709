package user

import "time"

type Role string

const (
	RoleAdmin    Role = "admin"    // Manages tasks, employees, reports
	RoleEmployee Role = "employee" // Tracks own attendance and tasks
)

type Status string

const (
	StatusActive    Status = "active"
	StatusInactive  Status = "inactive"
	StatusSuspended Status = "suspended"
)

type User struct {
	ID              string
	FullName        string
	Email           string
	PasswordHash    *string
	Role            Role
	Status          Status
	OAuthProvider   *string
	OAuthProviderID *string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// IsAdmin checks if user may access the admin dashboard surface
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// CanAuthenticate checks if the account is allowed to sign in at all
func (u *User) CanAuthenticate() bool {
	return u.Status == StatusActive
}

// ValidRole reports whether s names a known role.
func ValidRole(s string) bool {
	return Role(s) == RoleAdmin || Role(s) == RoleEmployee
}

// ValidStatus reports whether s names a known account status.
func ValidStatus(s string) bool {
	switch Status(s) {
	case StatusActive, StatusInactive, StatusSuspended:
		return true
	}
	return false
}
