package facades

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/sbilibin2017/pocket-wallet/internal/logger"
	"github.com/sbilibin2017/pocket-wallet/internal/models"
	"github.com/segmentio/kafka-go"
)

// ErrNotifierNotConfigured is returned when no Kafka writer is set.
var ErrNotifierNotConfigured = errors.New("notification writer not configured")

// NotificationKafkaFacade hands email requests to the mail service over Kafka.
type NotificationKafkaFacade struct {
	writer KafkaWriter
}

// NewNotificationKafkaFacade creates a new facade with a Kafka writer.
func NewNotificationKafkaFacade(writer KafkaWriter) *NotificationKafkaFacade {
	return &NotificationKafkaFacade{writer: writer}
}

// Send publishes the notification keyed by recipient.
func (f *NotificationKafkaFacade) Send(ctx context.Context, n models.Notification) error {
	if f.writer == nil {
		logger.Log.Warnw("Kafka writer not configured, skipping notification", "template", n.Template)
		return ErrNotifierNotConfigured
	}

	data, err := json.Marshal(n)
	if err != nil {
		logger.Log.Errorw("failed to marshal notification", "template", n.Template, "error", err)
		return err
	}

	msg := kafka.Message{
		Key:   []byte(n.Recipient),
		Value: data,
	}
	if err := f.writer.WriteMessages(ctx, msg); err != nil {
		logger.Log.Errorw("failed to publish notification to Kafka", "template", n.Template, "error", err)
		return err
	}

	logger.Log.Infow("notification published to Kafka", "template", n.Template)
	return nil
}
