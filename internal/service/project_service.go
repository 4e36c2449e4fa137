package service

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"showcase/internal/asset"
	apperrors "showcase/internal/errors"
	"showcase/internal/model"
	"showcase/internal/repository"
)

// ImageField is the multipart field carrying a project image.
const ImageField = "projectImage"

// CreateProjectInput carries the fields of a new project.
type CreateProjectInput struct {
	Title       string
	Description string
	Category    string
	Image       *multipart.FileHeader
}

// UpdateProjectInput carries a partial update. Nil fields are left unchanged.
type UpdateProjectInput struct {
	Title       *string
	Description *string
	Category    *string
	Image       *multipart.FileHeader
}

// ProjectService handles project operations.
type ProjectService interface {
	List(ctx context.Context) ([]model.Project, error)
	Get(ctx context.Context, id string) (*model.Project, error)
	Create(ctx context.Context, ownerID uuid.UUID, in CreateProjectInput) (*model.Project, error)
	Update(ctx context.Context, id string, callerID uuid.UUID, in UpdateProjectInput) (*model.Project, error)
	Delete(ctx context.Context, id string, callerID uuid.UUID) error
}

type projectService struct {
	projectRepo repository.ProjectRepository
	commentRepo repository.CommentRepository
	userRepo    repository.UserRepository
	assets      asset.Uploader
	log         zerolog.Logger
}

// NewProjectService creates a new project service.
func NewProjectService(
	projectRepo repository.ProjectRepository,
	commentRepo repository.CommentRepository,
	userRepo repository.UserRepository,
	assets asset.Uploader,
	log zerolog.Logger,
) ProjectService {
	return &projectService{
		projectRepo: projectRepo,
		commentRepo: commentRepo,
		userRepo:    userRepo,
		assets:      assets,
		log:         log.With().Str("component", "project_service").Logger(),
	}
}

// List returns every project, newest first.
func (s *projectService) List(ctx context.Context) ([]model.Project, error) {
	projects, err := s.projectRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	return projects, nil
}

// Get returns a single project. A malformed id is reported as not found.
func (s *projectService) Get(ctx context.Context, id string) (*model.Project, error) {
	projectID, err := uuid.Parse(id)
	if err != nil {
		return nil, apperrors.ErrNotFound
	}
	return s.find(ctx, projectID)
}

// Create stores the image first and removes it again if the record cannot be written.
func (s *projectService) Create(ctx context.Context, ownerID uuid.UUID, in CreateProjectInput) (*model.Project, error) {
	in.Title = strings.TrimSpace(in.Title)
	verr := &apperrors.ValidationError{}
	if in.Title == "" {
		verr.Add("title", "title is required")
	}
	if strings.TrimSpace(in.Description) == "" {
		verr.Add("description", "description is required")
	}
	if in.Image == nil {
		verr.Add(ImageField, "project image is required")
	}
	if err := verr.OrNil(); err != nil {
		return nil, err
	}
	if err := s.assets.Validate(in.Image); err != nil {
		return nil, err
	}

	if _, err := s.userRepo.FindByID(ctx, ownerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUnauthenticated
		}
		return nil, fmt.Errorf("find owner: %w", err)
	}

	ref, err := s.assets.Store(ctx, ImageField, in.Image)
	if err != nil {
		return nil, err
	}

	project := &model.Project{
		ID:          uuid.New(),
		Title:       in.Title,
		Description: in.Description,
		Category:    strings.TrimSpace(in.Category),
		ImageURL:    ref,
		UserID:      ownerID,
	}
	if err := s.projectRepo.Create(ctx, project); err != nil {
		s.assets.Remove(ctx, ref, asset.ReasonOrphaned)
		return nil, fmt.Errorf("create project: %w", err)
	}

	s.log.Info().Str("project_id", project.ID.String()).Str("user_id", ownerID.String()).Msg("project created")
	return project, nil
}

// Update applies a partial update. Only the owner may update; a replaced image is removed after the write succeeds.
func (s *projectService) Update(ctx context.Context, id string, callerID uuid.UUID, in UpdateProjectInput) (*model.Project, error) {
	projectID, err := uuid.Parse(id)
	if err != nil {
		return nil, apperrors.ErrNotFound
	}
	project, err := s.find(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if project.UserID != callerID {
		return nil, apperrors.ErrForbidden
	}

	// Present fields are applied as given, including empty strings.
	if in.Title != nil {
		project.Title = strings.TrimSpace(*in.Title)
	}
	if in.Description != nil {
		project.Description = *in.Description
	}
	if in.Category != nil {
		project.Category = strings.TrimSpace(*in.Category)
	}

	oldRef := project.ImageURL
	newRef := ""
	if in.Image != nil {
		newRef, err = s.assets.Store(ctx, ImageField, in.Image)
		if err != nil {
			return nil, err
		}
		project.ImageURL = newRef
	}

	if err := s.projectRepo.Update(ctx, project, project.Version); err != nil {
		if newRef != "" {
			s.assets.Remove(ctx, newRef, asset.ReasonOrphaned)
		}
		if errors.Is(err, apperrors.ErrConflict) {
			return nil, err
		}
		return nil, fmt.Errorf("update project: %w", err)
	}

	if newRef != "" {
		s.assets.Remove(ctx, oldRef, asset.ReasonReplaced)
	}
	return project, nil
}

// Delete removes a project, then its comments and image. Cleanup failures are logged, not returned.
func (s *projectService) Delete(ctx context.Context, id string, callerID uuid.UUID) error {
	projectID, err := uuid.Parse(id)
	if err != nil {
		return apperrors.ErrNotFound
	}
	project, err := s.find(ctx, projectID)
	if err != nil {
		return err
	}
	if project.UserID != callerID {
		return apperrors.ErrForbidden
	}

	if err := s.projectRepo.Delete(ctx, projectID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrNotFound
		}
		return fmt.Errorf("delete project: %w", err)
	}

	n, err := s.commentRepo.DeleteByProject(ctx, projectID)
	if err != nil {
		s.log.Warn().Err(err).Str("project_id", projectID.String()).Msg("failed to delete project comments")
	} else if n > 0 {
		s.log.Debug().Int64("comments", n).Str("project_id", projectID.String()).Msg("project comments deleted")
	}

	s.assets.Remove(ctx, project.ImageURL, asset.ReasonProjectDeleted)
	s.log.Info().Str("project_id", projectID.String()).Str("user_id", callerID.String()).Msg("project deleted")
	return nil
}

func (s *projectService) find(ctx context.Context, id uuid.UUID) (*model.Project, error) {
	project, err := s.projectRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("find project: %w", err)
	}
	return project, nil
}
