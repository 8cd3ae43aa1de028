package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Like is unique per (user, post); the index backs insert-or-ignore.
type Like struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID `json:"userId" gorm:"type:uuid;not null;uniqueIndex:idx_like_user_post"`
	PostID    uuid.UUID `json:"postId" gorm:"type:uuid;not null;uniqueIndex:idx_like_user_post;index"`
	CreatedAt time.Time `json:"createdAt"`

	User User `json:"-" gorm:"constraint:OnDelete:CASCADE"`
}

func (l *Like) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}

// LikeRequest is shared by like/create and like/delete
type LikeRequest struct {
	UserID uuid.UUID `json:"userId" validate:"required"`
	PostID uuid.UUID `json:"postId" validate:"required"`
}
