package service

import (
	"context"

	"fable/internal/models"
	"fable/internal/store"
)

type UserService struct {
	store *store.Store
}

type CreateUserInput struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	Bio       string `json:"bio"`
	AvatarURL string `json:"avatarUrl"`
}

func NewUserService(st *store.Store) *UserService {
	return &UserService{store: st}
}

// GetUser returns the user with the given id.
func (s *UserService) GetUser(ctx context.Context, id string) (*models.User, error) {
	user, err := s.store.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// CreateUser validates the input and registers a new user.
func (s *UserService) CreateUser(ctx context.Context, in CreateUserInput) (*models.User, error) {
	if in.Name == "" {
		return nil, models.NewValidationError("Name is required")
	}
	user := &models.User{
		Name:      in.Name,
		Email:     in.Email,
		Bio:       in.Bio,
		AvatarURL: in.AvatarURL,
	}
	if err := s.store.CreateUser(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}
