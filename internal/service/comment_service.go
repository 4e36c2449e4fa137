package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"gorm.io/gorm"

	apperrors "showcase/internal/errors"
	"showcase/internal/model"
	"showcase/internal/repository"
)

// CommentService handles comment operations.
type CommentService interface {
	Create(ctx context.Context, projectID string, authorID uuid.UUID, text string) (*model.Comment, error)
	List(ctx context.Context, projectID string) ([]model.Comment, error)
	Update(ctx context.Context, id string, callerID uuid.UUID, text string) (*model.Comment, error)
	Delete(ctx context.Context, id string, callerID uuid.UUID) error
}

type commentService struct {
	commentRepo repository.CommentRepository
	projectRepo repository.ProjectRepository
	userRepo    repository.UserRepository
}

// NewCommentService creates a new comment service.
func NewCommentService(
	commentRepo repository.CommentRepository,
	projectRepo repository.ProjectRepository,
	userRepo repository.UserRepository,
) CommentService {
	return &commentService{
		commentRepo: commentRepo,
		projectRepo: projectRepo,
		userRepo:    userRepo,
	}
}

// ValidateCommentText trims text and enforces the 1..1000 character bounds.
func ValidateCommentText(text string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", apperrors.NewValidationError("text", "comment text cannot be empty")
	}
	if utf8.RuneCountInString(text) > model.MaxCommentLength {
		return "", apperrors.NewValidationError("text",
			fmt.Sprintf("comment cannot exceed %d characters", model.MaxCommentLength))
	}
	return text, nil
}

// Create adds a comment to an existing project.
func (s *commentService) Create(ctx context.Context, projectID string, authorID uuid.UUID, text string) (*model.Comment, error) {
	text, err := ValidateCommentText(text)
	if err != nil {
		return nil, err
	}
	pid, err := uuid.Parse(projectID)
	if err != nil {
		return nil, apperrors.ErrNotFound
	}
	if _, err := s.projectRepo.FindByID(ctx, pid); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("find project: %w", err)
	}
	if _, err := s.userRepo.FindByID(ctx, authorID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUnauthenticated
		}
		return nil, fmt.Errorf("find author: %w", err)
	}

	comment := &model.Comment{
		ID:        uuid.New(),
		Text:      text,
		ProjectID: pid,
		UserID:    authorID,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, fmt.Errorf("create comment: %w", err)
	}
	return comment, nil
}

// List returns a project's comments, newest first.
func (s *commentService) List(ctx context.Context, projectID string) ([]model.Comment, error) {
	pid, err := uuid.Parse(projectID)
	if err != nil {
		return nil, apperrors.NewValidationError("id", "invalid project id")
	}
	comments, err := s.commentRepo.ListByProject(ctx, pid)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	return comments, nil
}

// Update replaces the text of a comment. Only the author may update.
func (s *commentService) Update(ctx context.Context, id string, callerID uuid.UUID, text string) (*model.Comment, error) {
	text, err := ValidateCommentText(text)
	if err != nil {
		return nil, err
	}
	comment, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if comment.UserID != callerID {
		return nil, apperrors.ErrForbidden
	}

	comment.Text = text
	if err := s.commentRepo.Update(ctx, comment, comment.Version); err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			return nil, err
		}
		return nil, fmt.Errorf("update comment: %w", err)
	}
	return comment, nil
}

// Delete removes a comment. Only the author may delete.
func (s *commentService) Delete(ctx context.Context, id string, callerID uuid.UUID) error {
	comment, err := s.find(ctx, id)
	if err != nil {
		return err
	}
	if comment.UserID != callerID {
		return apperrors.ErrForbidden
	}
	if err := s.commentRepo.Delete(ctx, comment.ID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrNotFound
		}
		return fmt.Errorf("delete comment: %w", err)
	}
	return nil
}

func (s *commentService) find(ctx context.Context, id string) (*model.Comment, error) {
	cid, err := uuid.Parse(id)
	if err != nil {
		return nil, apperrors.ErrNotFound
	}
	comment, err := s.commentRepo.FindByID(ctx, cid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("find comment: %w", err)
	}
	return comment, nil
}
