package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	apperrors "showcase/internal/errors"
	"showcase/internal/model"
)

// ProjectRepository defines project persistence operations.
type ProjectRepository interface {
	Create(ctx context.Context, project *model.Project) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Project, error)
	List(ctx context.Context) ([]model.Project, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Project, error)
	// Update writes the mutable fields if the stored version still equals
	// expectedVersion, and bumps the version. A lost race yields errors.ErrConflict.
	Update(ctx context.Context, project *model.Project, expectedVersion int) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type projectRepository struct {
	db *gorm.DB
}

// NewProjectRepository creates a new project repository.
func NewProjectRepository(db *gorm.DB) ProjectRepository {
	return &projectRepository{db: db}
}

// Create inserts the project and loads its owner.
func (r *projectRepository) Create(ctx context.Context, project *model.Project) error {
	if err := r.db.WithContext(ctx).Omit("User").Create(project).Error; err != nil {
		return err
	}
	return r.db.WithContext(ctx).Preload("User").First(project, "id = ?", project.ID).Error
}

// FindByID finds a project by ID with its owner resolved.
func (r *projectRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Project, error) {
	var project model.Project
	if err := r.db.WithContext(ctx).Preload("User").
		Where("id = ?", id).First(&project).Error; err != nil {
		return nil, err
	}
	return &project, nil
}

// List returns all projects, newest first.
func (r *projectRepository) List(ctx context.Context) ([]model.Project, error) {
	projects := []model.Project{}
	if err := r.db.WithContext(ctx).Preload("User").
		Order("created_at DESC").Find(&projects).Error; err != nil {
		return nil, err
	}
	return projects, nil
}

// ListByUser returns the projects owned by userID, newest first.
func (r *projectRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Project, error) {
	projects := []model.Project{}
	if err := r.db.WithContext(ctx).
		Preload("User", func(db *gorm.DB) *gorm.DB { return db.Select("id", "username") }).
		Where("user_id = ?", userID).
		Order("created_at DESC").Find(&projects).Error; err != nil {
		return nil, err
	}
	return projects, nil
}

// Update performs a compare-and-swap on the version column.
func (r *projectRepository) Update(ctx context.Context, project *model.Project, expectedVersion int) error {
	now := time.Now()
	res := r.db.WithContext(ctx).Model(&model.Project{}).
		Where("id = ? AND version = ?", project.ID, expectedVersion).
		Updates(map[string]interface{}{
			"title":       project.Title,
			"description": project.Description,
			"category":    project.Category,
			"image_url":   project.ImageURL,
			"version":     expectedVersion + 1,
			"updated_at":  now,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrConflict
	}
	project.Version = expectedVersion + 1
	project.UpdatedAt = now
	return nil
}

// Delete removes a project by ID.
func (r *projectRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Project{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
