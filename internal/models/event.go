package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Transaction lifecycle event types.
const (
	EventTransactionFinished  = "transaction.finished"
	EventTransactionCancelled = "transaction.cancelled"
	EventTransactionDeleted   = "transaction.deleted"
)

// TransactionEvent is published after a committed transaction state change.
type TransactionEvent struct {
	Type          string          `json:"type"`           // One of the Event* constants
	TransactionID uuid.UUID       `json:"transaction_id"` // Transaction the event is about
	PocketID      uuid.UUID       `json:"pocket_id"`      // Owning pocket
	UserID        uuid.UUID       `json:"user_id"`        // Owner of the pocket
	Kind          string          `json:"kind"`           // REFILL or DEBIT
	Status        string          `json:"status"`         // Status after the change
	Amount        decimal.Decimal `json:"amount"`         // Transaction amount
	Balance       decimal.Decimal `json:"balance"`        // Pocket balance after the change
	Timestamp     int64           `json:"timestamp"`      // Unix seconds
}

// NewTransactionEvent builds an event from the committed state of t and p.
func NewTransactionEvent(eventType string, t *Transaction, p *Pocket, timestamp int64) TransactionEvent {
	return TransactionEvent{
		Type:          eventType,
		TransactionID: t.TransactionID,
		PocketID:      t.PocketID,
		UserID:        p.UserID,
		Kind:          t.Kind.String(),
		Status:        t.Status.String(),
		Amount:        t.Amount,
		Balance:       p.Balance,
		Timestamp:     timestamp,
	}
}
