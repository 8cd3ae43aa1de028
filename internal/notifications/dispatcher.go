package notifications

import (
	"context"
	"encoding/json"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/anonto42/nexa/backend/internal/models"
	"github.com/anonto42/nexa/backend/pkg/log"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

type UserGetter interface {
	GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

type NotificationCreator interface {
	CreateNotification(ctx context.Context, notification *models.Notification) error
}

// Forwarder hands a stored notification to something outside the process.
type Forwarder interface {
	Forward(notification *models.Notification) error
}

// Dispatcher consumes TopicPending, stores a notification per event and
// forwards it. Every message is acked whatever happens to it: a lost
// notification is logged, never retried.
type Dispatcher struct {
	subscriber    message.Subscriber
	users         UserGetter
	notifications NotificationCreator
	forwarder     Forwarder
	done          chan struct{}
}

// NewDispatcher builds a dispatcher. forwarder may be nil.
func NewDispatcher(subscriber message.Subscriber, users UserGetter, notifications NotificationCreator, forwarder Forwarder) *Dispatcher {
	return &Dispatcher{
		subscriber:    subscriber,
		users:         users,
		notifications: notifications,
		forwarder:     forwarder,
		done:          make(chan struct{}),
	}
}

// Start subscribes before returning so no event published afterwards is
// missed. Consumption stops when ctx is cancelled or the subscriber closes.
func (d *Dispatcher) Start(ctx context.Context) error {
	messages, err := d.subscriber.Subscribe(ctx, TopicPending)
	if err != nil {
		return errors.Wrap(err, "subscribe to "+TopicPending)
	}

	go func() {
		defer close(d.done)
		for msg := range messages {
			d.consume(ctx, msg)
			msg.Ack()
		}
	}()
	return nil
}

// Done is closed once the consumer goroutine has exited.
func (d *Dispatcher) Done() <-chan struct{} {
	return d.done
}

func (d *Dispatcher) consume(ctx context.Context, msg *message.Message) {
	var event Event
	if err := json.Unmarshal(msg.Payload, &event); err != nil {
		log.Log.WithError(err).WithField("message_id", msg.UUID).Error("malformed notification event")
		return
	}
	if _, err := d.Handle(ctx, event); err != nil {
		log.Log.WithError(err).WithFields(logrus.Fields{
			"type":      event.Type,
			"recipient": event.RecipientID,
			"actor":     event.ActorID,
		}).Error("notification dropped")
	}
}

// Handle stores the notification for one event. It returns nil, nil for
// self-actions, which never notify.
func (d *Dispatcher) Handle(ctx context.Context, event Event) (*models.Notification, error) {
	if event.SelfAction() {
		return nil, nil
	}

	actorName := unknownActor
	actor, err := d.users.GetUserByID(ctx, event.ActorID)
	if err != nil {
		log.Log.WithError(err).WithField("actor", event.ActorID).Warn("cannot resolve notification actor")
	} else {
		actorName = actor.Username
	}

	notification := &models.Notification{
		Type:        event.Type,
		Message:     Message(event.Type, actorName),
		UserID:      event.RecipientID,
		CreatedByID: event.ActorID,
		PostID:      event.PostID,
	}
	if err := d.notifications.CreateNotification(ctx, notification); err != nil {
		return nil, errors.Wrap(err, "store notification")
	}

	if d.forwarder != nil {
		if err := d.forwarder.Forward(notification); err != nil {
			log.Log.WithError(err).WithField("notification", notification.ID).Warn("cannot forward notification")
		}
	}
	return notification, nil
}
