package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type NotificationType string

const (
	NotificationLike    NotificationType = "LIKE"
	NotificationComment NotificationType = "COMMENT"
	NotificationFollow  NotificationType = "FOLLOW"
)

// Notification is addressed to UserID and caused by CreatedByID.
type Notification struct {
	ID          uuid.UUID        `json:"id" gorm:"type:uuid;primaryKey"`
	Type        NotificationType `json:"type" gorm:"size:16;not null"`
	Message     string           `json:"message" gorm:"not null"`
	UserID      uuid.UUID        `json:"userId" gorm:"type:uuid;not null;index"`
	CreatedByID uuid.UUID        `json:"createdById" gorm:"type:uuid;not null"`
	IsRead      bool             `json:"isRead" gorm:"not null;default:false"`
	Timestamp   time.Time        `json:"timestamp" gorm:"not null"`
	PostID      *uuid.UUID       `json:"postId" gorm:"type:uuid"`

	User      User  `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	CreatedBy User  `json:"-" gorm:"foreignKey:CreatedByID;constraint:OnDelete:CASCADE"`
	Post      *Post `json:"-" gorm:"foreignKey:PostID;constraint:OnDelete:SET NULL"`
}

func (n *Notification) BeforeCreate(tx *gorm.DB) error {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	if n.Timestamp.IsZero() {
		n.Timestamp = time.Now().UTC()
	}
	return nil
}

type NotificationView struct {
	Notification
	Creator UserCompact `json:"creator"`
}

// ToView expects CreatedBy to be preloaded.
func (n *Notification) ToView() NotificationView {
	return NotificationView{Notification: *n, Creator: n.CreatedBy.ToCompact()}
}

type MarkNotificationReadRequest struct {
	NotificationID uuid.UUID `json:"notificationId" validate:"required"`
}
