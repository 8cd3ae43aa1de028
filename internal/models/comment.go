package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Comment struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	Content   string    `json:"content" gorm:"not null"`
	Timestamp time.Time `json:"timestamp" gorm:"not null"`
	PostID    uuid.UUID `json:"postId" gorm:"type:uuid;not null;index"`
	AuthorID  uuid.UUID `json:"authorId" gorm:"type:uuid;not null;index"`

	Author User `json:"-" gorm:"constraint:OnDelete:CASCADE"`
}

func (c *Comment) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	if c.Timestamp.IsZero() {
		c.Timestamp = time.Now().UTC()
	}
	return nil
}

type CommentView struct {
	ID        uuid.UUID   `json:"id"`
	Content   string      `json:"content"`
	Timestamp time.Time   `json:"timestamp"`
	PostID    uuid.UUID   `json:"postId"`
	AuthorID  uuid.UUID   `json:"authorId"`
	Author    UserCompact `json:"author"`
}

func (c *Comment) ToView() CommentView {
	return CommentView{
		ID:        c.ID,
		Content:   c.Content,
		Timestamp: c.Timestamp,
		PostID:    c.PostID,
		AuthorID:  c.AuthorID,
		Author:    c.Author.ToCompact(),
	}
}

type CreateCommentRequest struct {
	PostID  uuid.UUID `json:"postId" validate:"required"`
	Content string    `json:"content" validate:"required,max=2000"`
	UserID  uuid.UUID `json:"userId" validate:"required"`
}
