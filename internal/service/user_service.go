package service

import (
	"context"

	"github.com/news-board-api/internal/apperror"
	"github.com/news-board-api/internal/models"
	"github.com/news-board-api/internal/repository"
)

type userService struct {
	users repository.UserRepository
}

func newUserService(users repository.UserRepository) *userService {
	return &userService{users: users}
}

// ListUsers returns every user
func (s *userService) ListUsers(ctx context.Context) ([]models.User, error) {
	return s.users.List(ctx)
}

// GetUser returns a single user or a 404
func (s *userService) GetUser(ctx context.Context, username string) (*models.User, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.NotFound(repository.UserByUsername.NotFoundMessage())
	}
	return user, nil
}
