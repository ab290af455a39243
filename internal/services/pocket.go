package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/sbilibin2017/pocket-wallet/internal/logger"
	"github.com/sbilibin2017/pocket-wallet/internal/models"
	"github.com/shopspring/decimal"
)

//go:generate mockgen -source=pocket.go -destination=pocket_mock_test.go -package=services

// PocketReader reads pockets.
type PocketReader interface {
	GetByID(ctx context.Context, pocketID uuid.UUID) (*models.Pocket, error)          // Returns a pocket
	GetByIDForUpdate(ctx context.Context, pocketID uuid.UUID) (*models.Pocket, error) // Returns a pocket and locks it
	ListByUserID(ctx context.Context, userID uuid.UUID) ([]models.Pocket, error)      // Returns non-archived pockets of a user
}

// PocketWriter writes pockets.
type PocketWriter interface {
	Create(ctx context.Context, p *models.Pocket) error                                   // Inserts a new pocket
	UpdateBalance(ctx context.Context, pocketID uuid.UUID, balance decimal.Decimal) error // Stores a new balance
	Update(ctx context.Context, p *models.Pocket) error                                   // Stores name and description
	Archive(ctx context.Context, pocketID uuid.UUID) error                                // Sets the archived flag
}

// PocketService manages pockets and the pocket deletion workflow.
type PocketService struct {
	transactor Transactor
	reader     PocketReader
	writer     PocketWriter
	codes      CodeManager
	users      UserReader
	notifier   Notifier
}

// NewPocketService creates a new PocketService.
func NewPocketService(
	transactor Transactor,
	reader PocketReader,
	writer PocketWriter,
	codes CodeManager,
	users UserReader,
	notifier Notifier,
) *PocketService {
	return &PocketService{
		transactor: transactor,
		reader:     reader,
		writer:     writer,
		codes:      codes,
		users:      users,
		notifier:   notifier,
	}
}

// CreatePocket creates an empty pocket owned by userID.
func (s *PocketService) CreatePocket(ctx context.Context, userID uuid.UUID, name string, description *string) (*models.Pocket, error) {
	p, err := models.NewPocket(userID, name, description)
	if err != nil {
		return nil, err
	}
	if err := s.writer.Create(ctx, p); err != nil {
		logger.Log.Errorw("failed to create pocket", "user_id", userID, "error", err)
		return nil, err
	}
	return p, nil
}

// GetPocket returns a visible pocket of userID.
func (s *PocketService) GetPocket(ctx context.Context, userID, pocketID uuid.UUID) (*models.Pocket, error) {
	p, err := s.reader.GetByID(ctx, pocketID)
	if err != nil {
		return nil, err
	}
	if p.Archived {
		return nil, models.ErrPocketNotFound
	}
	if !p.OwnedBy(userID) {
		return nil, models.ErrForbidden
	}
	return p, nil
}

// UpdatePocket changes the name and description of a pocket of userID.
// Nil fields are left as they are.
func (s *PocketService) UpdatePocket(ctx context.Context, userID, pocketID uuid.UUID, name, description *string) (*models.Pocket, error) {
	var p *models.Pocket

	err := s.transactor.Do(ctx, func(ctx context.Context) error {
		var err error
		p, err = s.reader.GetByIDForUpdate(ctx, pocketID)
		if err != nil {
			return err
		}
		if !p.OwnedBy(userID) {
			return models.ErrForbidden
		}
		if err := p.Update(name, description); err != nil {
			return err
		}
		return s.writer.Update(ctx, p)
	})
	if err != nil {
		logger.Log.Warnw("pocket update failed", "pocket_id", pocketID, "user_id", userID, "error", err)
		return nil, err
	}

	logger.Log.Infow("pocket updated", "pocket_id", pocketID, "user_id", userID)
	return p, nil
}

// ListPockets returns the non-archived pockets of userID.
func (s *PocketService) ListPockets(ctx context.Context, userID uuid.UUID) ([]models.Pocket, error) {
	pockets, err := s.reader.ListByUserID(ctx, userID)
	if err != nil {
		logger.Log.Errorw("failed to list pockets", "user_id", userID, "error", err)
		return nil, err
	}
	return pockets, nil
}

// RequestPocketDeletionCode issues a deletion code for the pocket and emails
// it to the owner.
func (s *PocketService) RequestPocketDeletionCode(ctx context.Context, userID, pocketID uuid.UUID) error {
	p, err := s.reader.GetByID(ctx, pocketID)
	if err != nil {
		return err
	}
	if !p.OwnedBy(userID) {
		return models.ErrForbidden
	}
	if p.Archived {
		return models.ErrArchivedPocket
	}

	code, err := s.codes.Issue(ctx, NamespacePocketDeletion, pocketID)
	if err != nil {
		return err
	}

	sendCode(ctx, s.users, s.notifier, p.UserID, models.TemplatePocketDeletion, pocketID, code)
	return nil
}

// ConfirmPocketDeletion archives the pocket when code matches the live
// deletion code. Transactions of the pocket are kept but become invisible.
func (s *PocketService) ConfirmPocketDeletion(ctx context.Context, userID, pocketID uuid.UUID, code string) error {
	if err := ValidateCode(code, s.codes.Length()); err != nil {
		return err
	}

	err := s.transactor.Do(ctx, func(ctx context.Context) error {
		p, err := s.reader.GetByIDForUpdate(ctx, pocketID)
		if err != nil {
			return err
		}
		if !p.OwnedBy(userID) {
			return models.ErrForbidden
		}
		if p.Archived {
			return models.ErrArchivedPocket
		}

		ok, err := s.codes.Verify(ctx, NamespacePocketDeletion, pocketID, code)
		if err != nil {
			return err
		}
		if !ok {
			return models.ErrInvalidCode
		}

		p.Archive()
		return s.writer.Archive(ctx, pocketID)
	})
	if err != nil {
		logger.Log.Warnw("pocket deletion failed", "pocket_id", pocketID, "user_id", userID, "error", err)
		return err
	}

	logger.Log.Infow("pocket archived", "pocket_id", pocketID, "user_id", userID)
	return nil
}
