package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/piyushKumar-1/betterbe/internal/model"
	"github.com/piyushKumar-1/betterbe/internal/store"
)

// UserService orchestrates account profile use cases.
type UserService struct {
	store store.Store
}

func NewUserService(s store.Store) *UserService {
	return &UserService{store: s}
}

func (s *UserService) CreateUser(ctx context.Context, u *model.User) (*model.User, error) {
	if u.UserID == "" {
		return nil, fmt.Errorf("%w: user id is required", model.ErrValidation)
	}
	if !strings.Contains(u.Email, "@") {
		return nil, fmt.Errorf("%w: invalid email %q", model.ErrValidation, u.Email)
	}
	return s.store.Users().Create(ctx, u)
}

func (s *UserService) GetUser(ctx context.Context, userID string) (*model.User, error) {
	return s.store.Users().Get(ctx, userID)
}

func (s *UserService) UpdateUser(ctx context.Context, userID string, req model.UpdateUserRequest) (*model.User, error) {
	if req.Name != nil && *req.Name == "" {
		return nil, fmt.Errorf("%w: name cannot be empty", model.ErrValidation)
	}
	return s.store.Users().Update(ctx, userID, req)
}
