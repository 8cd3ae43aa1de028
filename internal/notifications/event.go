package notifications

import (
	"fmt"

	"github.com/anonto42/nexa/backend/internal/models"
	"github.com/google/uuid"
)

// TopicPending carries events whose notification has not been stored yet.
const TopicPending = "notifications.pending"

const unknownActor = "Someone"

// Event is what a like, comment or follow emits once its own write committed.
type Event struct {
	Type        models.NotificationType `json:"type"`
	RecipientID uuid.UUID               `json:"recipientId"`
	ActorID     uuid.UUID               `json:"actorId"`
	PostID      *uuid.UUID              `json:"postId,omitempty"`
}

// SelfAction reports whether the actor would be notifying themselves.
func (e Event) SelfAction() bool {
	return e.RecipientID == e.ActorID
}

func Message(kind models.NotificationType, actor string) string {
	switch kind {
	case models.NotificationLike:
		return fmt.Sprintf("%s liked your post", actor)
	case models.NotificationComment:
		return fmt.Sprintf("%s commented on your post", actor)
	case models.NotificationFollow:
		return fmt.Sprintf("%s started following you", actor)
	default:
		return fmt.Sprintf("%s interacted with you", actor)
	}
}
