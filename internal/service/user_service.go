package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	apperrors "showcase/internal/errors"
	"showcase/internal/model"
	"showcase/internal/repository"
)

// UserService exposes read-only user views.
type UserService interface {
	GetUser(ctx context.Context, id uuid.UUID) (*model.User, error)
	// GetProfile returns the user and their projects, newest first.
	GetProfile(ctx context.Context, id string) (*model.Profile, error)
}

type userService struct {
	userRepo    repository.UserRepository
	projectRepo repository.ProjectRepository
}

// NewUserService builds a UserService.
func NewUserService(userRepo repository.UserRepository, projectRepo repository.ProjectRepository) UserService {
	return &userService{userRepo: userRepo, projectRepo: projectRepo}
}

func (s *userService) GetUser(ctx context.Context, id uuid.UUID) (*model.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return user, nil
}

func (s *userService) GetProfile(ctx context.Context, id string) (*model.Profile, error) {
	userID, err := uuid.Parse(id)
	if err != nil {
		return nil, apperrors.NewValidationError("id", "invalid user id")
	}
	user, err := s.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	projects, err := s.projectRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list user projects: %w", err)
	}
	if projects == nil {
		projects = []model.Project{}
	}
	return &model.Profile{User: *user, Projects: projects}, nil
}
