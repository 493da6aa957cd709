package auth

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/hasinesrak/Time-Track-Hub-TTH/internal/domain/auth"
	"github.com/hasinesrak/Time-Track-Hub-TTH/internal/domain/user"
	"github.com/hasinesrak/Time-Track-Hub-TTH/internal/pkg/jwt"
	"github.com/hasinesrak/Time-Track-Hub-TTH/internal/pkg/keyvalue"
	"github.com/hasinesrak/Time-Track-Hub-TTH/internal/pkg/lockout"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const (
	testAdminCode   = "super-secret-admin-code"
	testMaxAttempts = 3
	testPassword    = "correct-horse-battery"
)

type fakeUserRepo struct {
	byEmail map[string]user.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byEmail: make(map[string]user.User)}
}

func (f *fakeUserRepo) addUser(t *testing.T, email, password string, role user.Role, status user.Status) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	hashed := string(hash)
	f.byEmail[email] = user.User{
		ID:           "0190c000-0000-7000-8000-000000000001",
		FullName:     "Test User",
		Email:        email,
		PasswordHash: &hashed,
		Role:         role,
		Status:       status,
	}
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (user.User, error) {
	u, ok := f.byEmail[strings.ToLower(email)]
	if !ok {
		return user.User{}, user.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (user.User, error) {
	for _, u := range f.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return user.User{}, user.ErrUserNotFound
}

func (f *fakeUserRepo) Create(ctx context.Context, newUser user.User) (user.User, error) {
	newUser.ID = "0190c000-0000-7000-8000-000000000002"
	f.byEmail[newUser.Email] = newUser
	return newUser, nil
}

func (f *fakeUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, ok := f.byEmail[strings.ToLower(email)]
	return ok, nil
}

func (f *fakeUserRepo) LinkGoogleAccount(ctx context.Context, googleID string, email string) (user.User, error) {
	return f.GetByEmail(ctx, email)
}

func (f *fakeUserRepo) List(ctx context.Context, filter user.ListFilter) ([]user.User, int64, error) {
	return nil, 0, nil
}

func (f *fakeUserRepo) Update(ctx context.Context, req user.UpdateUserRequest) (user.User, error) {
	return user.User{}, user.ErrUserNotFound
}

func (f *fakeUserRepo) Delete(ctx context.Context, id string) error {
	return nil
}

func newTestAuthService(repo *fakeUserRepo) auth.AuthService {
	jwtService := jwt.NewJWTService("test-secret-key-for-jwt", "1h", "24h")
	guard := lockout.NewGuard(keyvalue.NewMemoryStore(), testMaxAttempts, 15*time.Minute)
	return NewAuthService(nil, repo, jwtService, nil, guard, testAdminCode)
}

func track() auth.SessionTrackingRequest {
	return auth.SessionTrackingRequest{IPAddress: "203.0.113.7", UserAgent: "test-agent"}
}

func TestRegister_AdminCodeRejected(t *testing.T) {
	svc := newTestAuthService(newFakeUserRepo())

	_, err := svc.Register(context.Background(), auth.RegisterRequest{
		FullName:        "Eve Admin",
		Email:           "eve@example.com",
		Password:        testPassword,
		ConfirmPassword: testPassword,
		Role:            "admin",
		AdminCode:       "wrong-code",
	}, track())
	assert.ErrorIs(t, err, auth.ErrInvalidAdminCode)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	repo := newFakeUserRepo()
	repo.addUser(t, "taken@example.com", testPassword, user.RoleEmployee, user.StatusActive)
	svc := newTestAuthService(repo)

	_, err := svc.Register(context.Background(), auth.RegisterRequest{
		FullName:        "New Person",
		Email:           "taken@example.com",
		Password:        testPassword,
		ConfirmPassword: testPassword,
		Role:            "employee",
	}, track())
	assert.ErrorIs(t, err, user.ErrUserEmailExists)
}

func TestLogin_UnknownEmail(t *testing.T) {
	svc := newTestAuthService(newFakeUserRepo())

	_, err := svc.Login(context.Background(), auth.LoginRequest{
		Email:    "nobody@example.com",
		Password: testPassword,
		Role:     "employee",
	}, track())
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestLogin_LocksAfterRepeatedFailures(t *testing.T) {
	repo := newFakeUserRepo()
	repo.addUser(t, "worker@example.com", testPassword, user.RoleEmployee, user.StatusActive)
	svc := newTestAuthService(repo)
	ctx := context.Background()

	req := auth.LoginRequest{Email: "worker@example.com", Password: "wrong", Role: "employee"}
	for i := 0; i < testMaxAttempts-1; i++ {
		_, err := svc.Login(ctx, req, track())
		assert.ErrorIs(t, err, auth.ErrInvalidCredentials, "attempt %d", i+1)
	}

	// The attempt that exhausts the budget reports the lock
	_, err := svc.Login(ctx, req, track())
	assert.ErrorIs(t, err, auth.ErrAccountLocked)

	// Even the correct password is refused while locked
	req.Password = testPassword
	_, err = svc.Login(ctx, req, track())
	assert.ErrorIs(t, err, auth.ErrAccountLocked)
}

func TestLogin_LockIsPerEmailAndAddress(t *testing.T) {
	repo := newFakeUserRepo()
	repo.addUser(t, "worker@example.com", testPassword, user.RoleEmployee, user.StatusActive)
	svc := newTestAuthService(repo)
	ctx := context.Background()

	req := auth.LoginRequest{Email: "worker@example.com", Password: "wrong", Role: "employee"}
	for i := 0; i < testMaxAttempts; i++ {
		_, _ = svc.Login(ctx, req, track())
	}

	// A different source address is not locked out
	other := auth.SessionTrackingRequest{IPAddress: "198.51.100.9", UserAgent: "test-agent"}
	_, err := svc.Login(ctx, req, other)
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestLogin_RoleMismatchDoesNotCountAgainstBudget(t *testing.T) {
	repo := newFakeUserRepo()
	repo.addUser(t, "worker@example.com", testPassword, user.RoleEmployee, user.StatusActive)
	svc := newTestAuthService(repo)
	ctx := context.Background()

	// Correct credentials through the wrong tab, more times than the
	// attempt budget allows
	adminTab := auth.LoginRequest{Email: "worker@example.com", Password: testPassword, Role: "admin"}
	for i := 0; i < testMaxAttempts+2; i++ {
		_, err := svc.Login(ctx, adminTab, track())
		assert.ErrorIs(t, err, auth.ErrRoleMismatch)
	}

	// The client is still unlocked, so a bad password reports invalid
	// credentials rather than a lock
	wrongPassword := auth.LoginRequest{Email: "worker@example.com", Password: "wrong", Role: "employee"}
	_, err := svc.Login(ctx, wrongPassword, track())
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestLogin_SuspendedAccountRefused(t *testing.T) {
	repo := newFakeUserRepo()
	repo.addUser(t, "worker@example.com", testPassword, user.RoleEmployee, user.StatusSuspended)
	svc := newTestAuthService(repo)

	_, err := svc.Login(context.Background(), auth.LoginRequest{
		Email:    "worker@example.com",
		Password: testPassword,
		Role:     "employee",
	}, track())
	assert.ErrorIs(t, err, user.ErrAccountNotActive)
}
