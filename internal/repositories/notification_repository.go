package repositories

import (
	"context"

	"github.com/anonto42/nexa/backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// NotificationRepository defines the interface for notification operations
type NotificationRepository interface {
	CreateNotification(ctx context.Context, notification *models.Notification) error
	GetUnread(ctx context.Context, userID uuid.UUID) ([]models.Notification, error)
	MarkAsRead(ctx context.Context, notificationID uuid.UUID) error
}

type PostgresNotificationRepository struct {
	db *gorm.DB
}

func NewPostgresNotificationRepository(db *gorm.DB) *PostgresNotificationRepository {
	return &PostgresNotificationRepository{db: db}
}

func (r *PostgresNotificationRepository) CreateNotification(ctx context.Context, notification *models.Notification) error {
	err := r.db.WithContext(ctx).
		Omit("User", "CreatedBy", "Post").
		Create(notification).Error
	return translateError(err, "create notification")
}

// GetUnread returns the unread notifications addressed to userID, newest
// first, with their creator loaded.
func (r *PostgresNotificationRepository) GetUnread(ctx context.Context, userID uuid.UUID) ([]models.Notification, error) {
	var notifications []models.Notification
	err := r.db.WithContext(ctx).
		Preload("CreatedBy").
		Where("user_id = ? AND is_read = ?", userID, false).
		Order(`"timestamp" DESC, "id" DESC`).
		Find(&notifications).Error
	if err != nil {
		return nil, translateError(err, "get unread notifications")
	}
	return notifications, nil
}

// MarkAsRead returns ErrNotFound for an unknown id. Marking an already read
// notification is a no-op success.
func (r *PostgresNotificationRepository) MarkAsRead(ctx context.Context, notificationID uuid.UUID) error {
	res := r.db.WithContext(ctx).
		Model(&models.Notification{}).
		Where("id = ?", notificationID).
		Update("is_read", true)
	if res.Error != nil {
		return translateError(res.Error, "mark notification read")
	}
	if res.RowsAffected == 0 {
		return translateError(gorm.ErrRecordNotFound, "mark notification read")
	}
	return nil
}
