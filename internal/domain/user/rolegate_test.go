package user

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAuthorize(t *testing.T) {
	assert.NoError(t, Authorize(RoleAdmin, RoleAdmin))
	assert.NoError(t, Authorize(RoleEmployee, RoleEmployee))
	assert.ErrorIs(t, Authorize(RoleEmployee, RoleAdmin), ErrRoleDenied)
	assert.ErrorIs(t, Authorize(RoleAdmin, RoleEmployee), ErrRoleDenied)
}

func staticProvider(role Role, ok bool) RoleProvider {
	return RoleProviderFunc(func(ctx context.Context, userID string) (Role, bool) {
		return role, ok
	})
}

func TestRoleResolver_FirstProviderWins(t *testing.T) {
	resolver := NewRoleResolver(
		staticProvider(RoleAdmin, true),
		staticProvider(RoleEmployee, true),
	)
	assert.Equal(t, RoleAdmin, resolver.Resolve(context.Background(), "u1"))
}

func TestRoleResolver_FallsThroughAbstainingProviders(t *testing.T) {
	resolver := NewRoleResolver(
		staticProvider("", false),
		staticProvider(RoleAdmin, true),
	)
	assert.Equal(t, RoleAdmin, resolver.Resolve(context.Background(), "u1"))
}

func TestRoleResolver_UnknownRoleNeverEscalates(t *testing.T) {
	// A provider claiming an unrecognized role is skipped, and full
	// abstention resolves to the least privileged role
	resolver := NewRoleResolver(
		staticProvider("superuser", true),
		staticProvider("", false),
	)
	assert.Equal(t, RoleEmployee, resolver.Resolve(context.Background(), "u1"))
}

func TestClaimsRoleProvider(t *testing.T) {
	p := ClaimsRoleProvider(map[string]interface{}{"role": "admin"})
	role, ok := p.Role(context.Background(), "u1")
	assert.True(t, ok)
	assert.Equal(t, RoleAdmin, role)

	p = ClaimsRoleProvider(map[string]interface{}{"role": "root"})
	_, ok = p.Role(context.Background(), "u1")
	assert.False(t, ok)

	p = ClaimsRoleProvider(map[string]interface{}{})
	_, ok = p.Role(context.Background(), "u1")
	assert.False(t, ok)
}
