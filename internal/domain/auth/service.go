package auth

import (
	"context"
)

type AuthService interface {
	// Register creates an account for the selected role tab; the admin
	// tab requires the configured registration code
	Register(ctx context.Context, req RegisterRequest, track SessionTrackingRequest) (TokenResponse, error)

	// Login authenticates credentials under the LoginAttemptGuard and
	// refuses to issue tokens when the role tab does not match
	Login(ctx context.Context, req LoginRequest, track SessionTrackingRequest) (TokenResponse, error)

	// LoginWithGoogle links or creates an account from a verified
	// Google identity and issues tokens
	LoginWithGoogle(ctx context.Context, email string, googleID string, track SessionTrackingRequest) (TokenResponse, error)

	// RefreshToken exchanges a valid refresh token for a new access token
	RefreshToken(ctx context.Context, req RefreshTokenRequest) (AccessTokenResponse, error)

	// Logout revokes the refresh token
	Logout(ctx context.Context, refreshToken string) error

	// Me resolves the authenticated identity, role via the fallback chain
	Me(ctx context.Context) (Me, error)
}
