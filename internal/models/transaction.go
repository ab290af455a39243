package models

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MaxTransactionAmount is the upper bound for a single transaction amount.
var MaxTransactionAmount = decimal.NewFromInt(100000)

// MaxAmountScale is the number of decimal places stored for amounts and balances.
const MaxAmountScale = 2

// TransactionKind is the monetary effect a transaction has on its pocket.
type TransactionKind int16

const (
	KindRefill TransactionKind = 1 // Adds the amount to the balance
	KindDebit  TransactionKind = 2 // Takes the amount from the balance
)

func (k TransactionKind) String() string {
	switch k {
	case KindRefill:
		return "REFILL"
	case KindDebit:
		return "DEBIT"
	}
	return fmt.Sprintf("KIND(%d)", int16(k))
}

// ParseTransactionKind accepts the kind name in any case.
func ParseTransactionKind(s string) (TransactionKind, error) {
	switch strings.ToUpper(s) {
	case "REFILL":
		return KindRefill, nil
	case "DEBIT":
		return KindDebit, nil
	}
	return 0, &ValidationError{Field: "kind", Reason: "must be REFILL or DEBIT"}
}

// TransactionStatus is a state of the transaction state machine.
type TransactionStatus int16

const (
	StatusCreated   TransactionStatus = 1
	StatusInProcess TransactionStatus = 2
	StatusConfirmed TransactionStatus = 3
	StatusFinished  TransactionStatus = 4
	StatusCancelled TransactionStatus = 5
)

var statusNames = map[TransactionStatus]string{
	StatusCreated:   "CREATED",
	StatusInProcess: "IN_PROCESS",
	StatusConfirmed: "CONFIRMED",
	StatusFinished:  "FINISHED",
	StatusCancelled: "CANCELLED",
}

func (s TransactionStatus) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return fmt.Sprintf("STATUS(%d)", int16(s))
}

// ParseTransactionStatus accepts the status name in any case.
func ParseTransactionStatus(s string) (TransactionStatus, error) {
	for status, name := range statusNames {
		if strings.EqualFold(name, s) {
			return status, nil
		}
	}
	return 0, &ValidationError{Field: "status", Reason: "unknown status"}
}

// transitions lists the allowed target states for every state.
// IN_PROCESS -> IN_PROCESS is a re-issue of the confirmation code.
var transitions = map[TransactionStatus][]TransactionStatus{
	StatusCreated:   {StatusInProcess, StatusCancelled},
	StatusInProcess: {StatusInProcess, StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusFinished, StatusCancelled},
	StatusFinished:  {StatusCancelled},
	StatusCancelled: {},
}

var operations = map[TransactionStatus]string{
	StatusInProcess: "request confirmation for",
	StatusConfirmed: "confirm",
	StatusFinished:  "activate",
	StatusCancelled: "cancel",
}

// CheckTransition validates a status change against the transition table.
func CheckTransition(from, to TransactionStatus) error {
	for _, allowed := range transitions[from] {
		if allowed == to {
			return nil
		}
	}

	switch {
	case from == StatusCancelled && to == StatusCancelled:
		return ErrAlreadyCancelled
	case from == StatusFinished && to == StatusFinished:
		return ErrAlreadyFinished
	}

	return &InvalidStateError{
		Operation: operations[to],
		Current:   from,
		Required:  sourcesOf(to),
	}
}

// sourcesOf returns the states that may move to the given state, in status order.
func sourcesOf(to TransactionStatus) []TransactionStatus {
	var sources []TransactionStatus
	for s := StatusCreated; s <= StatusCancelled; s++ {
		for _, allowed := range transitions[s] {
			if allowed == to {
				sources = append(sources, s)
				break
			}
		}
	}
	return sources
}

// Transaction represents a transaction row in the database.
type Transaction struct {
	TransactionID uuid.UUID         `json:"transaction_id" db:"transaction_id"` // Unique transaction identifier
	PocketID      uuid.UUID         `json:"pocket_id" db:"pocket_id"`           // Owning pocket
	Amount        decimal.Decimal   `json:"amount" db:"amount"`                 // Amount in [0, MaxTransactionAmount]
	Kind          TransactionKind   `json:"kind" db:"kind"`                     // REFILL or DEBIT
	Status        TransactionStatus `json:"status" db:"status"`                 // State machine position
	Comment       *string           `json:"comment" db:"comment"`               // Optional free text
	CreatedAt     time.Time         `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at" db:"updated_at"`
}

// TransactionFilter narrows transaction listings. Nil fields are ignored.
type TransactionFilter struct {
	PocketID *uuid.UUID
	Status   *TransactionStatus
}

// NewTransaction validates the input and returns a CREATED transaction.
func NewTransaction(pocketID uuid.UUID, kind TransactionKind, amount decimal.Decimal, comment *string) (*Transaction, error) {
	if kind != KindRefill && kind != KindDebit {
		return nil, &ValidationError{Field: "kind", Reason: "must be REFILL or DEBIT"}
	}
	if amount.IsNegative() {
		return nil, &ValidationError{Field: "amount", Reason: "must not be negative"}
	}
	if amount.GreaterThan(MaxTransactionAmount) {
		return nil, &ValidationError{Field: "amount", Reason: fmt.Sprintf("must not exceed %s", MaxTransactionAmount)}
	}
	if !amount.Equal(amount.Truncate(MaxAmountScale)) {
		return nil, &ValidationError{Field: "amount", Reason: fmt.Sprintf("must have at most %d decimal places", MaxAmountScale)}
	}

	return &Transaction{
		TransactionID: uuid.New(),
		PocketID:      pocketID,
		Amount:        amount,
		Kind:          kind,
		Status:        StatusCreated,
		Comment:       comment,
	}, nil
}

// IsTerminal reports whether no further forward transition is possible.
func (t *Transaction) IsTerminal() bool {
	return t.Status == StatusFinished || t.Status == StatusCancelled
}

func (t *Transaction) transition(to TransactionStatus) error {
	if err := CheckTransition(t.Status, to); err != nil {
		return err
	}
	t.Status = to
	return nil
}

// MarkInProcess moves the transaction to awaiting confirmation.
func (t *Transaction) MarkInProcess() error {
	return t.transition(StatusInProcess)
}

// Confirm records that a valid confirmation code was submitted.
func (t *Transaction) Confirm() error {
	return t.transition(StatusConfirmed)
}

// Activate applies the transaction to pocket and marks it FINISHED.
// When the pocket rejects the change the transaction becomes CANCELLED and
// the pocket error is returned. The pocket is untouched on any error.
func (t *Transaction) Activate(pocket *Pocket) error {
	if err := CheckTransition(t.Status, StatusFinished); err != nil {
		return err
	}
	if err := t.checkPocket(pocket); err != nil {
		return err
	}

	var err error
	switch t.Kind {
	case KindDebit:
		err = pocket.Debit(t.Amount)
	case KindRefill:
		err = pocket.Refill(t.Amount)
	default:
		err = &ValidationError{Field: "kind", Reason: "must be REFILL or DEBIT"}
	}
	if err != nil {
		t.Status = StatusCancelled
		return err
	}

	t.Status = StatusFinished
	return nil
}

// Cancel moves the transaction to CANCELLED. A FINISHED transaction is
// refunded first: a debit is refilled back, a refill is debited back.
func (t *Transaction) Cancel(pocket *Pocket) error {
	if err := CheckTransition(t.Status, StatusCancelled); err != nil {
		return err
	}

	if t.Status == StatusFinished {
		if err := t.checkPocket(pocket); err != nil {
			return err
		}
		switch t.Kind {
		case KindDebit:
			if err := pocket.Refill(t.Amount); err != nil {
				return err
			}
		case KindRefill:
			if err := pocket.Debit(t.Amount); err != nil {
				var funds *InsufficientFundsError
				if errors.As(err, &funds) {
					return &RefundError{Amount: t.Amount, Balance: pocket.Balance}
				}
				return err
			}
		}
	}

	t.Status = StatusCancelled
	return nil
}

func (t *Transaction) checkPocket(pocket *Pocket) error {
	if pocket == nil || pocket.PocketID != t.PocketID {
		return fmt.Errorf("transaction %s does not belong to the given pocket", t.TransactionID)
	}
	if pocket.Archived {
		return ErrArchivedPocket
	}
	return nil
}
