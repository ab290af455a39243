package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sbilibin2017/pocket-wallet/internal/logger"
	"github.com/sbilibin2017/pocket-wallet/internal/models"
	"github.com/shopspring/decimal"
)

//go:generate mockgen -source=transaction.go -destination=transaction_mock_test.go -package=services

// TransactionReader reads transactions.
type TransactionReader interface {
	GetByID(ctx context.Context, transactionID uuid.UUID) (*models.Transaction, error)
	GetByIDForUpdate(ctx context.Context, transactionID uuid.UUID) (*models.Transaction, error)
	ListVisible(ctx context.Context, userID uuid.UUID, filter models.TransactionFilter) ([]models.Transaction, error)
}

// TransactionWriter writes transactions. Inserts and updates fail with
// models.ErrArchivedPocket when the owning pocket is archived.
type TransactionWriter interface {
	Insert(ctx context.Context, t *models.Transaction) error
	UpdateStatus(ctx context.Context, t *models.Transaction) error
	Delete(ctx context.Context, transactionID uuid.UUID) error
}

// EventPublisher publishes committed transaction lifecycle events.
type EventPublisher interface {
	Publish(ctx context.Context, event models.TransactionEvent) error
}

// TransactionService drives the transaction confirmation workflow.
// Every read-modify-write runs in one database transaction that locks the
// transaction row first and the pocket row second.
type TransactionService struct {
	transactor   Transactor
	pockets      PocketReader
	pocketWriter PocketWriter
	reader       TransactionReader
	writer       TransactionWriter
	codes        CodeManager
	users        UserReader
	notifier     Notifier
	events       EventPublisher
	now          func() time.Time
}

// NewTransactionService creates a new TransactionService.
func NewTransactionService(
	transactor Transactor,
	pockets PocketReader,
	pocketWriter PocketWriter,
	reader TransactionReader,
	writer TransactionWriter,
	codes CodeManager,
	users UserReader,
	notifier Notifier,
	events EventPublisher,
) *TransactionService {
	return &TransactionService{
		transactor:   transactor,
		pockets:      pockets,
		pocketWriter: pocketWriter,
		reader:       reader,
		writer:       writer,
		codes:        codes,
		users:        users,
		notifier:     notifier,
		events:       events,
		now:          time.Now,
	}
}

// CreateTransaction adds a CREATED transaction to a pocket of userID.
// A debit larger than the current balance is accepted here and rejected at
// activation.
func (s *TransactionService) CreateTransaction(
	ctx context.Context,
	userID, pocketID uuid.UUID,
	kind models.TransactionKind,
	amount decimal.Decimal,
	comment *string,
) (*models.Transaction, error) {
	t, err := models.NewTransaction(pocketID, kind, amount, comment)
	if err != nil {
		return nil, err
	}

	p, err := s.pockets.GetByID(ctx, pocketID)
	if err != nil {
		return nil, err
	}
	if !p.OwnedBy(userID) {
		return nil, models.ErrForbidden
	}
	if p.Archived {
		return nil, models.ErrArchivedPocket
	}

	if err := s.writer.Insert(ctx, t); err != nil {
		logger.Log.Errorw("failed to create transaction", "pocket_id", pocketID, "user_id", userID, "error", err)
		return nil, err
	}

	logger.Log.Infow("transaction created", "transaction_id", t.TransactionID, "pocket_id", pocketID, "kind", t.Kind.String(), "amount", t.Amount)
	return t, nil
}

// GetTransaction returns a visible transaction of userID. Transactions of
// archived or foreign pockets are reported as not found.
func (s *TransactionService) GetTransaction(ctx context.Context, userID, transactionID uuid.UUID) (*models.Transaction, error) {
	t, err := s.reader.GetByID(ctx, transactionID)
	if err != nil {
		return nil, err
	}

	p, err := s.pockets.GetByID(ctx, t.PocketID)
	if err != nil {
		return nil, err
	}
	if p.Archived || !p.OwnedBy(userID) {
		return nil, models.ErrTransactionNotFound
	}
	return t, nil
}

// ListTransactions returns visible transactions of userID.
func (s *TransactionService) ListTransactions(ctx context.Context, userID uuid.UUID, filter models.TransactionFilter) ([]models.Transaction, error) {
	list, err := s.reader.ListVisible(ctx, userID, filter)
	if err != nil {
		logger.Log.Errorw("failed to list transactions", "user_id", userID, "error", err)
		return nil, err
	}
	return list, nil
}

// lock loads and locks the transaction and its pocket.
func (s *TransactionService) lock(ctx context.Context, userID, transactionID uuid.UUID) (*models.Transaction, *models.Pocket, error) {
	t, err := s.reader.GetByIDForUpdate(ctx, transactionID)
	if err != nil {
		return nil, nil, err
	}
	p, err := s.pockets.GetByIDForUpdate(ctx, t.PocketID)
	if err != nil {
		return nil, nil, err
	}
	if !p.OwnedBy(userID) {
		return nil, nil, models.ErrForbidden
	}
	return t, p, nil
}

// RequestConfirmationCode moves the transaction to IN_PROCESS and emails a
// fresh confirmation code to the pocket owner. Requesting again re-issues the
// code and restarts its TTL.
// The code is issued after commit so the row locks are not held across the
// key-expiry store round-trip. If issuing fails the transaction stays
// IN_PROCESS and the request can simply be repeated.
func (s *TransactionService) RequestConfirmationCode(ctx context.Context, userID, transactionID uuid.UUID) error {
	err := s.transactor.Do(ctx, func(ctx context.Context) error {
		t, p, err := s.lock(ctx, userID, transactionID)
		if err != nil {
			return err
		}
		if p.Archived {
			return models.ErrArchivedPocket
		}
		if err := t.MarkInProcess(); err != nil {
			return err
		}
		return s.writer.UpdateStatus(ctx, t)
	})
	if err != nil {
		logger.Log.Warnw("confirmation code request failed", "transaction_id", transactionID, "user_id", userID, "error", err)
		return err
	}

	code, err := s.codes.Issue(ctx, NamespaceTransactionConfirm, transactionID)
	if err != nil {
		logger.Log.Errorw("failed to issue confirmation code", "transaction_id", transactionID, "user_id", userID, "error", err)
		return err
	}

	sendCode(ctx, s.users, s.notifier, userID, models.TemplateTransactionConfirmation, transactionID, code)
	return nil
}

// ConfirmTransaction checks the code, confirms the transaction and activates
// it. When activation is rejected by the pocket the transaction is stored as
// CANCELLED and the rejection is returned. A wrong, expired or never issued
// code yields models.ErrInvalidCode and changes nothing.
func (s *TransactionService) ConfirmTransaction(ctx context.Context, userID, transactionID uuid.UUID, code string) (*models.Transaction, error) {
	if err := ValidateCode(code, 0); err != nil {
		return nil, err
	}

	var (
		t           *models.Transaction
		p           *models.Pocket
		activateErr error
	)

	err := s.transactor.Do(ctx, func(ctx context.Context) error {
		var err error
		t, p, err = s.lock(ctx, userID, transactionID)
		if err != nil {
			return err
		}
		if p.Archived {
			return models.ErrArchivedPocket
		}
		if err := models.CheckTransition(t.Status, models.StatusConfirmed); err != nil {
			return err
		}

		ok, err := s.codes.Verify(ctx, NamespaceTransactionConfirm, t.TransactionID, code)
		if err != nil {
			return err
		}
		if !ok {
			return models.ErrInvalidCode
		}

		if err := t.Confirm(); err != nil {
			return err
		}

		activateErr = t.Activate(p)
		switch {
		case activateErr == nil:
			if err := s.pocketWriter.UpdateBalance(ctx, p.PocketID, p.Balance); err != nil {
				return err
			}
		case t.Status != models.StatusCancelled:
			return activateErr
		}

		return s.writer.UpdateStatus(ctx, t)
	})
	if err != nil {
		logger.Log.Warnw("transaction confirmation failed", "transaction_id", transactionID, "user_id", userID, "error", err)
		return nil, err
	}

	if activateErr != nil {
		logger.Log.Warnw("transaction activation rejected", "transaction_id", transactionID, "pocket_id", p.PocketID, "error", activateErr)
		s.publish(ctx, models.EventTransactionCancelled, t, p)
		return nil, activateErr
	}

	logger.Log.Infow("transaction finished", "transaction_id", transactionID, "pocket_id", p.PocketID, "balance", p.Balance)
	s.publish(ctx, models.EventTransactionFinished, t, p)
	return t, nil
}

// CancelTransaction cancels the transaction, refunding it first when it is
// FINISHED.
func (s *TransactionService) CancelTransaction(ctx context.Context, userID, transactionID uuid.UUID) (*models.Transaction, error) {
	var (
		t *models.Transaction
		p *models.Pocket
	)

	err := s.transactor.Do(ctx, func(ctx context.Context) error {
		var err error
		t, p, err = s.lock(ctx, userID, transactionID)
		if err != nil {
			return err
		}
		if err := s.cancel(ctx, t, p); err != nil {
			return err
		}
		return s.writer.UpdateStatus(ctx, t)
	})
	if err != nil {
		logger.Log.Warnw("transaction cancellation failed", "transaction_id", transactionID, "user_id", userID, "error", err)
		return nil, err
	}

	logger.Log.Infow("transaction cancelled", "transaction_id", transactionID, "pocket_id", p.PocketID, "balance", p.Balance)
	s.publish(ctx, models.EventTransactionCancelled, t, p)
	return t, nil
}

// DeleteTransaction removes the transaction. A transaction that is not yet
// CANCELLED is cancelled first, refunding it when FINISHED. When that forced
// cancel fails nothing is deleted.
func (s *TransactionService) DeleteTransaction(ctx context.Context, userID, transactionID uuid.UUID) error {
	var (
		t *models.Transaction
		p *models.Pocket
	)

	err := s.transactor.Do(ctx, func(ctx context.Context) error {
		var err error
		t, p, err = s.lock(ctx, userID, transactionID)
		if err != nil {
			return err
		}
		if t.Status != models.StatusCancelled {
			if err := s.cancel(ctx, t, p); err != nil {
				return err
			}
		}
		return s.writer.Delete(ctx, t.TransactionID)
	})
	if err != nil {
		logger.Log.Warnw("transaction deletion failed", "transaction_id", transactionID, "user_id", userID, "error", err)
		return err
	}

	logger.Log.Infow("transaction deleted", "transaction_id", transactionID, "pocket_id", p.PocketID)
	s.publish(ctx, models.EventTransactionDeleted, t, p)
	return nil
}

// cancel applies t.Cancel and stores the refunded balance. The status is not
// stored.
func (s *TransactionService) cancel(ctx context.Context, t *models.Transaction, p *models.Pocket) error {
	if p.Archived {
		return models.ErrArchivedPocket
	}

	refund := t.Status == models.StatusFinished
	if err := t.Cancel(p); err != nil {
		return err
	}
	if refund {
		return s.pocketWriter.UpdateBalance(ctx, p.PocketID, p.Balance)
	}
	return nil
}

func (s *TransactionService) publish(ctx context.Context, eventType string, t *models.Transaction, p *models.Pocket) {
	event := models.NewTransactionEvent(eventType, t, p, s.now().Unix())
	if err := s.events.Publish(ctx, event); err != nil {
		logger.Log.Errorw("failed to publish transaction event", "transaction_id", t.TransactionID, "type", eventType, "error", err)
	}
}
