package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/bookdenapp/bookden-server/internal/domain"
	"github.com/bookdenapp/bookden-server/internal/id"
	"github.com/bookdenapp/bookden-server/internal/store"
	"github.com/bookdenapp/bookden-server/internal/validation"
)

// UserService manages reader accounts.
type UserService struct {
	store     store.Store
	validator *validation.Validator
	logger    *slog.Logger
}

// NewUserService creates a new user service.
func NewUserService(st store.Store, validator *validation.Validator, logger *slog.Logger) *UserService {
	return &UserService{
		store:     st,
		validator: validator,
		logger:    logger,
	}
}

// CreateUserParams describes a new reader account.
type CreateUserParams struct {
	Email       string `json:"email" validate:"required,email,max=256"`
	DisplayName string `json:"display_name" validate:"required,max=128"`
}

// CreateUser registers a new reader.
func (s *UserService) CreateUser(ctx context.Context, params CreateUserParams) (*domain.User, error) {
	if err := s.validator.Validate(params); err != nil {
		return nil, err
	}

	user := &domain.User{
		ID:          id.NewUserID(),
		Email:       params.Email,
		DisplayName: params.DisplayName,
	}
	user.InitTimestamps()

	if err := s.store.CreateUser(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.logger.Info("user created", "user_id", user.ID)
	return user, nil
}

// GetUser returns a reader by ID.
func (s *UserService) GetUser(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.store.GetUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get user %s: %w", userID, err)
	}
	return user, nil
}
