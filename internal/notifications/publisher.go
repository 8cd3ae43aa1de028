package notifications

import (
	"context"
	"encoding/json"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/anonto42/nexa/backend/pkg/log"
	"github.com/sirupsen/logrus"
)

// Notifier accepts events fire-and-forget. Implementations must not block on
// delivery and must not report failure to the caller.
type Notifier interface {
	Notify(ctx context.Context, event Event)
}

// Publisher puts events on the in-process event bus.
type Publisher struct {
	bus message.Publisher
}

func NewPublisher(bus message.Publisher) *Publisher {
	return &Publisher{bus: bus}
}

func (p *Publisher) Notify(_ context.Context, event Event) {
	if event.SelfAction() {
		return
	}

	logger := log.Log.WithFields(logrus.Fields{
		"type":      event.Type,
		"recipient": event.RecipientID,
		"actor":     event.ActorID,
	})

	data, err := json.Marshal(event)
	if err != nil {
		logger.WithError(err).Error("cannot encode notification event")
		return
	}

	msg := message.NewMessage(watermill.NewUUID(), data)
	if err := p.bus.Publish(TopicPending, msg); err != nil {
		logger.WithError(err).Error("cannot publish notification event")
	}
}

// NopNotifier drops every event.
type NopNotifier struct{}

func (NopNotifier) Notify(context.Context, Event) {}
