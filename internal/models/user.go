package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	Username  string    `json:"username" gorm:"size:256;not null;uniqueIndex"`
	Email     string    `json:"email" gorm:"size:256;not null;uniqueIndex"`
	Bio       *string   `json:"bio"`
	Avatar    *string   `json:"avatar"`
	Location  *string   `json:"location" gorm:"size:256"`
	CreatedAt time.Time `json:"createdAt" gorm:"not null"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// UserCompact is the author/creator summary embedded in other payloads
type UserCompact struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
	Avatar   *string   `json:"avatar"`
}

func (u *User) ToCompact() UserCompact {
	return UserCompact{
		ID:       u.ID,
		Username: u.Username,
		Avatar:   u.Avatar,
	}
}

type CreateUserRequest struct {
	ID       *uuid.UUID `json:"id"`
	Username string     `json:"username" validate:"required,max=256"`
	Email    string     `json:"email" validate:"required,email,max=256"`
	Bio      *string    `json:"bio"`
	Avatar   *string    `json:"avatar"`
	Location *string    `json:"location" validate:"omitempty,max=256"`
}

type GetUserRequest struct {
	UserID uuid.UUID `json:"userId" validate:"required"`
}

type UpdateUserRequest struct {
	ID       uuid.UUID `json:"id" validate:"required"`
	Username string    `json:"username" validate:"required,max=256"`
	Email    string    `json:"email" validate:"required,email,max=256"`
	Bio      *string   `json:"bio"`
	Avatar   *string   `json:"avatar"`
	Location *string   `json:"location" validate:"omitempty,max=256"`
}
