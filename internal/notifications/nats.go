package notifications

import (
	"encoding/json"

	"github.com/anonto42/nexa/backend/internal/models"
	"github.com/nats-io/nats.go"
)

// SubjectPrefix is followed by the recipient id.
const SubjectPrefix = "nexa.notifications."

// NatsForwarder publishes stored notifications so that connected clients can
// be pushed updates.
type NatsForwarder struct {
	conn *nats.Conn
}

func NewNatsForwarder(conn *nats.Conn) *NatsForwarder {
	return &NatsForwarder{conn: conn}
}

func Subject(notification *models.Notification) string {
	return SubjectPrefix + notification.UserID.String()
}

func (f *NatsForwarder) Forward(notification *models.Notification) error {
	data, err := json.Marshal(notification)
	if err != nil {
		return err
	}
	return f.conn.Publish(Subject(notification), data)
}
