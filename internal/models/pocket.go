package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Pocket limits.
const (
	MaxPocketNameLength        = 128
	MaxPocketDescriptionLength = 512
)

// Pocket represents a pocket row in the database.
// Pockets are never hard-deleted, archiving hides them and freezes the balance.
type Pocket struct {
	PocketID    uuid.UUID       `json:"pocket_id" db:"pocket_id"`     // Unique pocket identifier
	UserID      uuid.UUID       `json:"user_id" db:"user_id"`         // Identifier of the pocket's owner
	Name        string          `json:"name" db:"name"`               // Display name
	Description *string         `json:"description" db:"description"` // Optional free text
	Balance     decimal.Decimal `json:"balance" db:"balance"`         // Current balance, never negative
	Archived    bool            `json:"archived" db:"is_archived"`    // Soft-delete flag, one-way
	CreatedAt   time.Time       `json:"created_at" db:"created_at"`   // Timestamp when the pocket was created
	UpdatedAt   time.Time       `json:"updated_at" db:"updated_at"`   // Timestamp of the last pocket update
}

// NewPocket validates the input and returns an empty pocket owned by userID.
func NewPocket(userID uuid.UUID, name string, description *string) (*Pocket, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}
	if err := validateDescription(description); err != nil {
		return nil, err
	}

	return &Pocket{
		PocketID:    uuid.New(),
		UserID:      userID,
		Name:        name,
		Description: description,
		Balance:     decimal.Zero,
	}, nil
}

func validateName(name string) error {
	if name == "" {
		return &ValidationError{Field: "name", Reason: "must not be empty"}
	}
	if len([]rune(name)) > MaxPocketNameLength {
		return &ValidationError{Field: "name", Reason: "is too long"}
	}
	return nil
}

func validateDescription(description *string) error {
	if description != nil && len([]rune(*description)) > MaxPocketDescriptionLength {
		return &ValidationError{Field: "description", Reason: "is too long"}
	}
	return nil
}

// Update replaces the fields that are not nil. An empty description clears
// it. Archived pockets are frozen and yield ErrArchivedPocket.
func (p *Pocket) Update(name, description *string) error {
	if p.Archived {
		return ErrArchivedPocket
	}
	if name == nil && description == nil {
		return &ValidationError{Field: "name", Reason: "name or description must be set"}
	}
	if name != nil {
		if err := validateName(*name); err != nil {
			return err
		}
	}
	if err := validateDescription(description); err != nil {
		return err
	}

	if name != nil {
		p.Name = *name
	}
	if description != nil {
		if *description == "" {
			p.Description = nil
		} else {
			d := *description
			p.Description = &d
		}
	}
	return nil
}

// Refill increases the balance by amount.
func (p *Pocket) Refill(amount decimal.Decimal) error {
	if amount.IsNegative() {
		return &ValidationError{Field: "amount", Reason: "must not be negative"}
	}
	if p.Archived {
		return ErrArchivedPocket
	}
	p.Balance = p.Balance.Add(amount)
	return nil
}

// Debit decreases the balance by amount. The balance is left untouched when
// it would drop below zero.
func (p *Pocket) Debit(amount decimal.Decimal) error {
	if amount.IsNegative() {
		return &ValidationError{Field: "amount", Reason: "must not be negative"}
	}
	if p.Archived {
		return ErrArchivedPocket
	}
	if amount.GreaterThan(p.Balance) {
		return &InsufficientFundsError{Amount: amount, Balance: p.Balance}
	}
	p.Balance = p.Balance.Sub(amount)
	return nil
}

// Archive marks the pocket as archived. Calling it twice is a no-op.
func (p *Pocket) Archive() {
	p.Archived = true
}

// OwnedBy reports whether userID owns the pocket.
func (p *Pocket) OwnedBy(userID uuid.UUID) bool {
	return p.UserID == userID
}
