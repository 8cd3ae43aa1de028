package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Follow is a directed edge from follower to following, unique per pair.
type Follow struct {
	ID          uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	FollowerID  uuid.UUID `json:"followerId" gorm:"type:uuid;not null;index;uniqueIndex:idx_follower_following"`
	FollowingID uuid.UUID `json:"followingId" gorm:"type:uuid;not null;index;uniqueIndex:idx_follower_following"`
	Timestamp   time.Time `json:"timestamp" gorm:"not null"`

	Follower  User `json:"-" gorm:"foreignKey:FollowerID;constraint:OnDelete:CASCADE"`
	Following User `json:"-" gorm:"foreignKey:FollowingID;constraint:OnDelete:CASCADE"`
}

func (f *Follow) BeforeCreate(tx *gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	if f.Timestamp.IsZero() {
		f.Timestamp = time.Now().UTC()
	}
	return nil
}

// FollowRequest is shared by follow/create and follow/delete
type FollowRequest struct {
	FollowerID  uuid.UUID `json:"followerId" validate:"required"`
	FollowingID uuid.UUID `json:"followingId" validate:"required"`
}

// UserIDRequest is the body of the followers, following and notification
// listings.
type UserIDRequest struct {
	UserID uuid.UUID `json:"userId" validate:"required"`
}
