package facades

import (
	"context"
	"encoding/json"

	"github.com/sbilibin2017/pocket-wallet/internal/logger"
	"github.com/sbilibin2017/pocket-wallet/internal/models"
	"github.com/segmentio/kafka-go"
)

// TransactionEventKafkaFacade publishes transaction lifecycle events.
// Messages are keyed by pocket id so events of one pocket stay ordered.
type TransactionEventKafkaFacade struct {
	writer KafkaWriter
}

// NewTransactionEventKafkaFacade creates a new facade with a Kafka writer.
// A nil writer disables publishing.
func NewTransactionEventKafkaFacade(writer KafkaWriter) *TransactionEventKafkaFacade {
	return &TransactionEventKafkaFacade{writer: writer}
}

// Publish writes the event to Kafka.
func (f *TransactionEventKafkaFacade) Publish(ctx context.Context, event models.TransactionEvent) error {
	if f.writer == nil {
		logger.Log.Warnw("Kafka writer not configured, skipping publishing", "transaction_id", event.TransactionID)
		return nil
	}

	data, err := json.Marshal(event)
	if err != nil {
		logger.Log.Errorw("failed to marshal transaction event", "transaction_id", event.TransactionID, "error", err)
		return err
	}

	msg := kafka.Message{
		Key:   []byte(event.PocketID.String()),
		Value: data,
		Headers: []kafka.Header{
			{Key: "type", Value: []byte(event.Type)},
		},
	}
	if err := f.writer.WriteMessages(ctx, msg); err != nil {
		logger.Log.Errorw("failed to publish transaction event to Kafka", "transaction_id", event.TransactionID, "error", err)
		return err
	}

	logger.Log.Infow("transaction event published to Kafka",
		"transaction_id", event.TransactionID, "type", event.Type, "amount", event.Amount)
	return nil
}
