package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MaxCommentLength is the upper bound on comment text, in characters.
const MaxCommentLength = 1000

// Comment is a remark left by a user on a project.
type Comment struct {
	ID        uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	Text      string    `json:"text" gorm:"type:text;not null"`
	ProjectID uuid.UUID `json:"projectId" gorm:"type:char(36);not null;index"`
	UserID    uuid.UUID `json:"userId" gorm:"type:char(36);not null;index"`
	Version   int       `json:"version" gorm:"not null;default:1"`
	CreatedAt time.Time `json:"createdAt" gorm:"index"`
	UpdatedAt time.Time `json:"updatedAt"`

	// Relations
	User *User `json:"user,omitempty" gorm:"foreignKey:UserID"`
}

// BeforeCreate sets UUID before creating the record.
func (c *Comment) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	if c.Version == 0 {
		c.Version = 1
	}
	return nil
}
