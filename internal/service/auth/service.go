package auth

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"

	"github.com/go-chi/jwtauth/v5"
	"github.com/hasinesrak/Time-Track-Hub-TTH/internal/domain/auth"
	"github.com/hasinesrak/Time-Track-Hub-TTH/internal/domain/user"
	"github.com/hasinesrak/Time-Track-Hub-TTH/internal/pkg/database"
	"github.com/hasinesrak/Time-Track-Hub-TTH/internal/pkg/jwt"
	"github.com/hasinesrak/Time-Track-Hub-TTH/internal/pkg/lockout"
	"github.com/hasinesrak/Time-Track-Hub-TTH/internal/repository/postgresql"
	"golang.org/x/crypto/bcrypt"
)

type AuthServiceImpl struct {
	db *database.DB
	user.UserRepository
	jwt.Service
	postgresql.JWTRepository
	guard     *lockout.Guard
	adminCode string
}

func NewAuthService(db *database.DB, userRepository user.UserRepository, jwtService jwt.Service, jwtRepository postgresql.JWTRepository, guard *lockout.Guard, adminCode string) auth.AuthService {
	return &AuthServiceImpl{
		db:             db,
		UserRepository: userRepository,
		Service:        jwtService,
		JWTRepository:  jwtRepository,
		guard:          guard,
		adminCode:      adminCode,
	}
}

func (a *AuthServiceImpl) hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// guardKey identifies the throttled client. Keying on email plus
// source address keeps one household from locking out an office.
func guardKey(email, ip string) string {
	return strings.ToLower(email) + "|" + ip
}

// issueTokens generates the token pair and stores the refresh session
// in one transaction.
func (a *AuthServiceImpl) issueTokens(ctx context.Context, userData user.User, track auth.SessionTrackingRequest) (auth.TokenResponse, error) {
	tokenResponse := auth.TokenResponse{
		User: auth.Me{
			ID:       userData.ID,
			FullName: userData.FullName,
			Email:    userData.Email,
			Role:     string(userData.Role),
		},
	}

	err := postgresql.WithTransaction(ctx, a.db, func(txCtx context.Context) error {
		var err error
		tokenResponse.AccessToken, tokenResponse.AccessTokenExpiresIn, err = a.Service.GenerateAccessToken(userData.ID, userData.Email, userData.Role)
		if err != nil {
			return fmt.Errorf("failed to create access token: %w", err)
		}
		tokenResponse.RefreshToken, tokenResponse.RefreshTokenExpiresIn, err = a.Service.GenerateRefreshToken(userData.ID)
		if err != nil {
			return fmt.Errorf("failed to create refresh token: %w", err)
		}

		if err := a.CreateRefreshToken(txCtx, userData.ID, tokenResponse.RefreshToken, tokenResponse.RefreshTokenExpiresIn, track); err != nil {
			return fmt.Errorf("failed to save refresh token to database: %w", err)
		}
		return nil
	})
	if err != nil {
		return auth.TokenResponse{}, err
	}

	return tokenResponse, nil
}

// Register implements auth.AuthService.
func (a *AuthServiceImpl) Register(ctx context.Context, req auth.RegisterRequest, track auth.SessionTrackingRequest) (auth.TokenResponse, error) {
	role := user.Role(req.Role)

	// The admin tab requires the registration code before anything
	// touches the database
	if role == user.RoleAdmin {
		if subtle.ConstantTimeCompare([]byte(req.AdminCode), []byte(a.adminCode)) != 1 {
			return auth.TokenResponse{}, auth.ErrInvalidAdminCode
		}
	}

	exists, err := a.UserRepository.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to check email existence: %w", err)
	}
	if exists {
		return auth.TokenResponse{}, user.ErrUserEmailExists
	}

	hashedPassword, err := a.hashPassword(req.Password)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to hash password: %w", err)
	}

	newUser := user.User{
		FullName:     req.FullName,
		Email:        strings.ToLower(req.Email),
		PasswordHash: &hashedPassword,
		Role:         role,
		Status:       user.StatusActive,
	}
	newUser, err = a.UserRepository.Create(ctx, newUser)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to create user: %w", err)
	}

	return a.issueTokens(ctx, newUser, track)
}

// Login implements auth.AuthService.
func (a *AuthServiceImpl) Login(ctx context.Context, req auth.LoginRequest, track auth.SessionTrackingRequest) (auth.TokenResponse, error) {
	key := guardKey(req.Email, track.IPAddress)

	locked, err := a.guard.IsLocked(ctx, key)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to check lockout state: %w", err)
	}
	if locked {
		return auth.TokenResponse{}, auth.ErrAccountLocked
	}

	userData, err := a.UserRepository.GetByEmail(ctx, strings.ToLower(req.Email))
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return auth.TokenResponse{}, a.failAttempt(ctx, key)
		}
		return auth.TokenResponse{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	if userData.PasswordHash == nil {
		return auth.TokenResponse{}, a.failAttempt(ctx, key)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(*userData.PasswordHash), []byte(req.Password)); err != nil {
		return auth.TokenResponse{}, a.failAttempt(ctx, key)
	}

	if !userData.CanAuthenticate() {
		return auth.TokenResponse{}, user.ErrAccountNotActive
	}

	// Credentials are good but the account belongs to the other tab;
	// this does not count against the attempt budget
	if err := user.Authorize(userData.Role, user.Role(req.Role)); err != nil {
		return auth.TokenResponse{}, auth.ErrRoleMismatch
	}

	if err := a.guard.RecordSuccess(ctx, key); err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to reset lockout state: %w", err)
	}

	return a.issueTokens(ctx, userData, track)
}

// failAttempt counts a failure and decides which error the caller
// sees; the attempt that exhausts the budget reports the lock.
func (a *AuthServiceImpl) failAttempt(ctx context.Context, key string) error {
	status, err := a.guard.RecordFailure(ctx, key)
	if err != nil {
		return fmt.Errorf("failed to record login failure: %w", err)
	}
	if status.Locked {
		return auth.ErrAccountLocked
	}
	return auth.ErrInvalidCredentials
}

// LoginWithGoogle implements auth.AuthService. A first-time Google
// sign-in provisions an employee account; admin accounts only ever
// come from the registration code path.
func (a *AuthServiceImpl) LoginWithGoogle(ctx context.Context, email string, googleID string, track auth.SessionTrackingRequest) (auth.TokenResponse, error) {
	userData, err := a.UserRepository.GetByEmail(ctx, strings.ToLower(email))
	if err != nil {
		if !errors.Is(err, user.ErrUserNotFound) {
			return auth.TokenResponse{}, fmt.Errorf("failed to get user data by email: %w", err)
		}

		provider := "google"
		newUser := user.User{
			FullName:        email,
			Email:           strings.ToLower(email),
			PasswordHash:    nil,
			Role:            user.RoleEmployee,
			Status:          user.StatusActive,
			OAuthProvider:   &provider,
			OAuthProviderID: &googleID,
		}
		userData, err = a.UserRepository.Create(ctx, newUser)
		if err != nil {
			return auth.TokenResponse{}, fmt.Errorf("failed to create user: %w", err)
		}
	}

	if !userData.CanAuthenticate() {
		return auth.TokenResponse{}, user.ErrAccountNotActive
	}

	if userData.OAuthProvider == nil || userData.OAuthProviderID == nil {
		userData, err = a.UserRepository.LinkGoogleAccount(ctx, googleID, userData.Email)
		if err != nil {
			return auth.TokenResponse{}, fmt.Errorf("failed to link google account: %w", err)
		}
	}

	return a.issueTokens(ctx, userData, track)
}

// RefreshToken implements auth.AuthService.
func (a *AuthServiceImpl) RefreshToken(ctx context.Context, req auth.RefreshTokenRequest) (auth.AccessTokenResponse, error) {
	token, err := jwtauth.VerifyToken(a.JWTAuth(), req.RefreshToken)
	if err != nil {
		return auth.AccessTokenResponse{}, auth.ErrInvalidToken
	}

	claims, err := token.AsMap(ctx)
	if err != nil {
		return auth.AccessTokenResponse{}, auth.ErrInvalidToken
	}
	tokenType, ok := claims["type"].(string)
	if !ok || tokenType != "refresh" {
		return auth.AccessTokenResponse{}, auth.ErrInvalidToken
	}
	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return auth.AccessTokenResponse{}, auth.ErrInvalidToken
	}

	isRevoked, err := a.JWTRepository.IsRefreshTokenRevoked(ctx, req.RefreshToken)
	if err != nil {
		return auth.AccessTokenResponse{}, auth.ErrInvalidToken
	}
	if isRevoked {
		return auth.AccessTokenResponse{}, auth.ErrRefreshTokenRevoked
	}

	userData, err := a.UserRepository.GetByID(ctx, userID)
	if err != nil {
		return auth.AccessTokenResponse{}, auth.ErrUserNotFound
	}
	if !userData.CanAuthenticate() {
		return auth.AccessTokenResponse{}, user.ErrAccountNotActive
	}

	var resp auth.AccessTokenResponse
	resp.AccessToken, resp.AccessTokenExpiresIn, err = a.Service.GenerateAccessToken(userData.ID, userData.Email, userData.Role)
	if err != nil {
		return auth.AccessTokenResponse{}, fmt.Errorf("failed to generate access token: %w", err)
	}

	return resp, nil
}

// Logout implements auth.AuthService.
func (a *AuthServiceImpl) Logout(ctx context.Context, refreshToken string) error {
	if err := a.JWTRepository.RevokeRefreshToken(ctx, refreshToken); err != nil {
		return fmt.Errorf("failed to revoke refresh token: %w", err)
	}
	return nil
}

// Me implements auth.AuthService. The role comes from the resolver
// chain: token claims first, then the users row, employee as the
// last resort.
func (a *AuthServiceImpl) Me(ctx context.Context) (auth.Me, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return auth.Me{}, auth.ErrInvalidToken
	}
	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return auth.Me{}, auth.ErrInvalidToken
	}

	userData, err := a.UserRepository.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return auth.Me{}, auth.ErrUserNotFound
		}
		return auth.Me{}, fmt.Errorf("failed to get user: %w", err)
	}

	resolver := user.NewRoleResolver(user.ClaimsRoleProvider(claims), user.RepositoryRoleProvider(a.UserRepository))
	role := resolver.Resolve(ctx, userID)

	return auth.Me{
		ID:       userData.ID,
		FullName: userData.FullName,
		Email:    userData.Email,
		Role:     string(role),
	}, nil
}
