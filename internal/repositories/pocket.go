package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/sbilibin2017/pocket-wallet/internal/models"
	"github.com/shopspring/decimal"
)

const pocketColumns = `pocket_id, user_id, name, description, balance, is_archived, created_at, updated_at`

// PocketWriteRepository handles pocket write operations.
type PocketWriteRepository struct {
	db       *sqlx.DB
	txGetter TxGetter
}

func NewPocketWriteRepository(db *sqlx.DB, txGetter TxGetter) *PocketWriteRepository {
	return &PocketWriteRepository{db: db, txGetter: txGetter}
}

// Create inserts a new pocket and fills its timestamps.
func (r *PocketWriteRepository) Create(ctx context.Context, p *models.Pocket) error {
	const query = `
		INSERT INTO pockets (pocket_id, user_id, name, description, balance, is_archived, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, FALSE, NOW(), NOW())
		RETURNING created_at, updated_at
	`
	args := []any{p.PocketID, p.UserID, p.Name, p.Description, p.Balance}

	row := executor(ctx, r.db, r.txGetter).QueryRowxContext(ctx, query, args...)
	err := row.Scan(&p.CreatedAt, &p.UpdatedAt)

	logQuery(query, args, p.PocketID, err)
	return err
}

// UpdateBalance stores a new balance. Archived pockets are never updated and
// yield models.ErrArchivedPocket.
func (r *PocketWriteRepository) UpdateBalance(ctx context.Context, pocketID uuid.UUID, balance decimal.Decimal) error {
	const query = `
		UPDATE pockets
		SET balance = $2, updated_at = NOW()
		WHERE pocket_id = $1 AND NOT is_archived
	`
	args := []any{pocketID, balance}

	res, err := executor(ctx, r.db, r.txGetter).ExecContext(ctx, query, args...)
	var rowsAffected int64
	if res != nil {
		rowsAffected, _ = res.RowsAffected()
	}

	logQuery(query, args, rowsAffected, err)

	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return models.ErrArchivedPocket
	}
	return nil
}

// Update stores the name and description and refreshes updated_at. Archived
// pockets are never updated and yield models.ErrArchivedPocket.
func (r *PocketWriteRepository) Update(ctx context.Context, p *models.Pocket) error {
	const query = `
		UPDATE pockets
		SET name = $2, description = $3, updated_at = NOW()
		WHERE pocket_id = $1 AND NOT is_archived
		RETURNING updated_at
	`
	args := []any{p.PocketID, p.Name, p.Description}

	row := executor(ctx, r.db, r.txGetter).QueryRowxContext(ctx, query, args...)
	err := row.Scan(&p.UpdatedAt)

	logQuery(query, args, p.PocketID, err)

	if errors.Is(err, sql.ErrNoRows) {
		return models.ErrArchivedPocket
	}
	return err
}

// Archive sets the archived flag. Repeated calls succeed.
func (r *PocketWriteRepository) Archive(ctx context.Context, pocketID uuid.UUID) error {
	const query = `
		UPDATE pockets
		SET is_archived = TRUE, updated_at = NOW()
		WHERE pocket_id = $1
	`
	args := []any{pocketID}

	res, err := executor(ctx, r.db, r.txGetter).ExecContext(ctx, query, args...)
	var rowsAffected int64
	if res != nil {
		rowsAffected, _ = res.RowsAffected()
	}

	logQuery(query, args, rowsAffected, err)

	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return models.ErrPocketNotFound
	}
	return nil
}

// PocketReadRepository handles pocket read operations.
type PocketReadRepository struct {
	db       *sqlx.DB
	txGetter TxGetter
}

func NewPocketReadRepository(db *sqlx.DB, txGetter TxGetter) *PocketReadRepository {
	return &PocketReadRepository{db: db, txGetter: txGetter}
}

// GetByID returns the pocket regardless of its archived flag.
func (r *PocketReadRepository) GetByID(ctx context.Context, pocketID uuid.UUID) (*models.Pocket, error) {
	const query = `SELECT ` + pocketColumns + ` FROM pockets WHERE pocket_id = $1`
	return r.get(ctx, query, pocketID)
}

// GetByIDForUpdate returns the pocket and locks its row until the enclosing
// transaction ends. It must be called inside a transactor.
func (r *PocketReadRepository) GetByIDForUpdate(ctx context.Context, pocketID uuid.UUID) (*models.Pocket, error) {
	const query = `SELECT ` + pocketColumns + ` FROM pockets WHERE pocket_id = $1 FOR UPDATE`
	return r.get(ctx, query, pocketID)
}

func (r *PocketReadRepository) get(ctx context.Context, query string, pocketID uuid.UUID) (*models.Pocket, error) {
	var p models.Pocket
	err := sqlx.GetContext(ctx, executor(ctx, r.db, r.txGetter), &p, query, pocketID)

	logQuery(query, []any{pocketID}, p.PocketID, err)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrPocketNotFound
		}
		return nil, err
	}
	return &p, nil
}

// ListByUserID returns the non-archived pockets of a user, newest first.
func (r *PocketReadRepository) ListByUserID(ctx context.Context, userID uuid.UUID) ([]models.Pocket, error) {
	const query = `
		SELECT ` + pocketColumns + `
		FROM pockets
		WHERE user_id = $1 AND NOT is_archived
		ORDER BY created_at DESC
	`

	pockets := []models.Pocket{}
	err := sqlx.SelectContext(ctx, executor(ctx, r.db, r.txGetter), &pockets, query, userID)

	logQuery(query, []any{userID}, len(pockets), err)

	if err != nil {
		return nil, err
	}
	return pockets, nil
}
