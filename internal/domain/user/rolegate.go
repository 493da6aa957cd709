package user

import "context"

// Authorize allows an identity onto a dashboard surface only when its
// role matches exactly. A denied role must not silently view the other
// surface; callers terminate the session on ErrRoleDenied.
func Authorize(identityRole, requiredRole Role) error {
	if identityRole != requiredRole {
		return ErrRoleDenied
	}
	return nil
}

// RoleProvider yields a role for a user, or false when it cannot.
type RoleProvider interface {
	Role(ctx context.Context, userID string) (Role, bool)
}

// RoleProviderFunc adapts a function to the RoleProvider interface.
type RoleProviderFunc func(ctx context.Context, userID string) (Role, bool)

func (f RoleProviderFunc) Role(ctx context.Context, userID string) (Role, bool) {
	return f(ctx, userID)
}

// RoleResolver resolves a user's role through an ordered provider
// chain: identity metadata first, then the persisted user record.
// When every provider abstains the resolver falls back to the least
// privileged role; ambiguous resolution never yields admin.
type RoleResolver struct {
	providers []RoleProvider
}

func NewRoleResolver(providers ...RoleProvider) *RoleResolver {
	return &RoleResolver{providers: providers}
}

func (r *RoleResolver) Resolve(ctx context.Context, userID string) Role {
	for _, p := range r.providers {
		if role, ok := p.Role(ctx, userID); ok && ValidRole(string(role)) {
			return role
		}
	}
	return RoleEmployee
}

// ClaimsRoleProvider reads the role from token metadata claims.
func ClaimsRoleProvider(claims map[string]interface{}) RoleProvider {
	return RoleProviderFunc(func(ctx context.Context, userID string) (Role, bool) {
		roleStr, ok := claims["role"].(string)
		if !ok || !ValidRole(roleStr) {
			return "", false
		}
		return Role(roleStr), true
	})
}

// RepositoryRoleProvider falls back to the persisted users row.
func RepositoryRoleProvider(repo UserRepository) RoleProvider {
	return RoleProviderFunc(func(ctx context.Context, userID string) (Role, bool) {
		u, err := repo.GetByID(ctx, userID)
		if err != nil || !ValidRole(string(u.Role)) {
			return "", false
		}
		return u.Role, true
	})
}
