package user

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/hasinesrak/Time-Track-Hub-TTH/internal/domain/user"
	"github.com/hasinesrak/Time-Track-Hub-TTH/internal/pkg/database"
	"github.com/hasinesrak/Time-Track-Hub-TTH/internal/repository/postgresql"
)

type UserServiceImpl struct {
	db *database.DB
	user.UserRepository
	jwtRepository postgresql.JWTRepository
}

func NewUserService(db *database.DB, userRepository user.UserRepository, jwtRepository postgresql.JWTRepository) user.UserService {
	return &UserServiceImpl{
		db:             db,
		UserRepository: userRepository,
		jwtRepository:  jwtRepository,
	}
}

func toResponse(u user.User) user.UserResponse {
	return user.UserResponse{
		ID:        u.ID,
		FullName:  u.FullName,
		Email:     u.Email,
		Role:      string(u.Role),
		Status:    string(u.Status),
		CreatedAt: u.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt: u.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

// ListEmployees implements user.UserService.
func (s *UserServiceImpl) ListEmployees(ctx context.Context, filter user.ListFilter) (user.ListUsersResponse, error) {
	filter.Normalize()

	users, total, err := s.UserRepository.List(ctx, filter)
	if err != nil {
		return user.ListUsersResponse{}, err
	}

	responses := make([]user.UserResponse, 0, len(users))
	for _, u := range users {
		responses = append(responses, toResponse(u))
	}

	return user.ListUsersResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: int(math.Ceil(float64(total) / float64(filter.Limit))),
		Users:      responses,
	}, nil
}

// GetEmployee implements user.UserService.
func (s *UserServiceImpl) GetEmployee(ctx context.Context, id string) (user.UserResponse, error) {
	found, err := s.UserRepository.GetByID(ctx, id)
	if err != nil {
		return user.UserResponse{}, err
	}
	return toResponse(found), nil
}

// UpdateEmployee implements user.UserService. Suspending or
// deactivating an account also revokes its open sessions.
func (s *UserServiceImpl) UpdateEmployee(ctx context.Context, req user.UpdateUserRequest) (user.UserResponse, error) {
	if err := req.Validate(); err != nil {
		return user.UserResponse{}, err
	}

	var updated user.User
	err := postgresql.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		var err error
		updated, err = s.UserRepository.Update(txCtx, req)
		if err != nil {
			return err
		}
		if req.Status != nil && user.Status(*req.Status) != user.StatusActive {
			if err := s.jwtRepository.RevokeAllForUser(txCtx, updated.ID); err != nil {
				return fmt.Errorf("failed to revoke sessions: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return user.UserResponse{}, err
	}

	return toResponse(updated), nil
}

// DeleteEmployee implements user.UserService. Admins cannot remove
// their own account.
func (s *UserServiceImpl) DeleteEmployee(ctx context.Context, id string) error {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return fmt.Errorf("failed to extract claims from context: %w", err)
	}
	if callerID, ok := claims["user_id"].(string); ok && callerID == id {
		return user.ErrCannotDeleteSelf
	}

	return postgresql.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		if err := s.jwtRepository.RevokeAllForUser(txCtx, id); err != nil {
			return fmt.Errorf("failed to revoke sessions: %w", err)
		}
		return s.UserRepository.Delete(txCtx, id)
	})
}
