package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	apperrors "showcase/internal/errors"
	"showcase/internal/model"
)

// CommentRepository defines comment persistence operations.
type CommentRepository interface {
	Create(ctx context.Context, comment *model.Comment) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Comment, error)
	ListByProject(ctx context.Context, projectID uuid.UUID) ([]model.Comment, error)
	Update(ctx context.Context, comment *model.Comment, expectedVersion int) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByProject(ctx context.Context, projectID uuid.UUID) (int64, error)
}

type commentRepository struct {
	db *gorm.DB
}

// NewCommentRepository creates a new comment repository.
func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

// Only the author's id and username are exposed next to a comment.
func authorColumns(db *gorm.DB) *gorm.DB {
	return db.Select("id", "username")
}

func (r *commentRepository) Create(ctx context.Context, comment *model.Comment) error {
	if err := r.db.WithContext(ctx).Omit("User").Create(comment).Error; err != nil {
		return err
	}
	return r.db.WithContext(ctx).Preload("User", authorColumns).First(comment, "id = ?", comment.ID).Error
}

func (r *commentRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Comment, error) {
	var comment model.Comment
	if err := r.db.WithContext(ctx).Preload("User", authorColumns).
		Where("id = ?", id).First(&comment).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

func (r *commentRepository) ListByProject(ctx context.Context, projectID uuid.UUID) ([]model.Comment, error) {
	comments := []model.Comment{}
	if err := r.db.WithContext(ctx).Preload("User", authorColumns).
		Where("project_id = ?", projectID).
		Order("created_at DESC").Find(&comments).Error; err != nil {
		return nil, err
	}
	return comments, nil
}

func (r *commentRepository) Update(ctx context.Context, comment *model.Comment, expectedVersion int) error {
	now := time.Now()
	res := r.db.WithContext(ctx).Model(&model.Comment{}).
		Where("id = ? AND version = ?", comment.ID, expectedVersion).
		Updates(map[string]interface{}{
			"text":       comment.Text,
			"version":    expectedVersion + 1,
			"updated_at": now,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrConflict
	}
	comment.Version = expectedVersion + 1
	comment.UpdatedAt = now
	return nil
}

func (r *commentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Comment{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DeleteByProject removes every comment attached to projectID.
func (r *commentRepository) DeleteByProject(ctx context.Context, projectID uuid.UUID) (int64, error) {
	res := r.db.WithContext(ctx).Where("project_id = ?", projectID).Delete(&model.Comment{})
	return res.RowsAffected, res.Error
}
