package models

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Domain errors. All of them are expected, caller-recoverable conditions.
var (
	ErrValidation          = errors.New("validation error")
	ErrArchivedPocket      = errors.New("pocket is archived")
	ErrInvalidState        = errors.New("invalid transaction state")
	ErrInsufficientFunds   = errors.New("insufficient funds")
	ErrRefundFailed        = errors.New("refund failed")
	ErrInvalidCode         = errors.New("invalid confirmation code")
	ErrAlreadyCancelled    = errors.New("transaction has already been cancelled")
	ErrAlreadyFinished     = errors.New("transaction has already been finished")
	ErrPocketNotFound      = errors.New("pocket not found")
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrForbidden           = errors.New("forbidden")
)

// ValidationError describes malformed input.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// InsufficientFundsError is returned when a debit exceeds the pocket balance.
type InsufficientFundsError struct {
	Amount  decimal.Decimal
	Balance decimal.Decimal
}

func (e *InsufficientFundsError) Error() string {
	return fmt.Sprintf("insufficient funds: debit of %s exceeds balance %s", e.Amount, e.Balance)
}

func (e *InsufficientFundsError) Unwrap() error { return ErrInsufficientFunds }

// RefundError is returned when a finished refill cannot be taken back.
type RefundError struct {
	Amount  decimal.Decimal
	Balance decimal.Decimal
}

func (e *RefundError) Error() string {
	return fmt.Sprintf("refund failed: cannot take back %s from balance %s", e.Amount, e.Balance)
}

func (e *RefundError) Unwrap() error { return ErrRefundFailed }

// InvalidStateError names the state an operation required.
type InvalidStateError struct {
	Operation string
	Current   TransactionStatus
	Required  []TransactionStatus
}

func (e *InvalidStateError) Error() string {
	required := make([]string, 0, len(e.Required))
	for _, s := range e.Required {
		required = append(required, s.String())
	}
	return fmt.Sprintf("can %s transaction only with status %s, current status is %s",
		e.Operation, strings.Join(required, " or "), e.Current)
}

func (e *InvalidStateError) Unwrap() error { return ErrInvalidState }
