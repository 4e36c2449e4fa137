package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	// DefaultCategory is applied when a project is created without a category.
	DefaultCategory = "General"
	// PlaceholderImageURL is the built-in image of projects that never had an upload.
	PlaceholderImageURL = "https://via.placeholder.com/300x200.png?text=My+Project"
	// UploadsPrefix is the public path under which stored assets are served.
	UploadsPrefix = "/uploads/"
)

// Project is a user-submitted content item.
type Project struct {
	ID          uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	Title       string    `json:"title" gorm:"size:255;not null"`
	Description string    `json:"description" gorm:"type:text;not null"`
	Category    string    `json:"category" gorm:"size:100;not null;default:'General'"`
	ImageURL    string    `json:"imageUrl" gorm:"size:512;not null"`
	UserID      uuid.UUID `json:"userId" gorm:"type:char(36);not null;index"`
	Version     int       `json:"version" gorm:"not null;default:1"`
	CreatedAt   time.Time `json:"createdAt" gorm:"index"`
	UpdatedAt   time.Time `json:"updatedAt"`

	// Relations
	User *User `json:"user,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

// BeforeCreate sets UUID and defaults before creating the record.
func (p *Project) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if strings.TrimSpace(p.Category) == "" {
		p.Category = DefaultCategory
	}
	if p.ImageURL == "" {
		p.ImageURL = PlaceholderImageURL
	}
	if p.Version == 0 {
		p.Version = 1
	}
	return nil
}
