package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/sbilibin2017/pocket-wallet/internal/models"
)

const transactionColumns = `t.transaction_id, t.pocket_id, t.amount, t.kind, t.status, t.comment, t.created_at, t.updated_at`

// TransactionWriteRepository handles transaction write operations.
// Inserts and updates re-check the owning pocket in the same statement, so a
// pocket archived after the caller loaded it still blocks the write.
type TransactionWriteRepository struct {
	db       *sqlx.DB
	txGetter TxGetter
}

func NewTransactionWriteRepository(db *sqlx.DB, txGetter TxGetter) *TransactionWriteRepository {
	return &TransactionWriteRepository{db: db, txGetter: txGetter}
}

// Insert stores a new transaction. Returns models.ErrArchivedPocket when the
// pocket is archived or missing.
func (r *TransactionWriteRepository) Insert(ctx context.Context, t *models.Transaction) error {
	const query = `
		INSERT INTO transactions (transaction_id, pocket_id, amount, kind, status, comment, created_at, updated_at)
		SELECT $1, p.pocket_id, $3, $4, $5, $6, NOW(), NOW()
		FROM pockets p
		WHERE p.pocket_id = $2 AND NOT p.is_archived
		RETURNING created_at, updated_at
	`
	args := []any{t.TransactionID, t.PocketID, t.Amount, int16(t.Kind), int16(t.Status), t.Comment}

	row := executor(ctx, r.db, r.txGetter).QueryRowxContext(ctx, query, args...)
	err := row.Scan(&t.CreatedAt, &t.UpdatedAt)

	logQuery(query, args, t.TransactionID, err)

	if errors.Is(err, sql.ErrNoRows) {
		return models.ErrArchivedPocket
	}
	return err
}

// UpdateStatus stores the current status of t and refreshes UpdatedAt.
// Returns models.ErrArchivedPocket when the owning pocket is archived.
func (r *TransactionWriteRepository) UpdateStatus(ctx context.Context, t *models.Transaction) error {
	const query = `
		UPDATE transactions AS t
		SET status = $2, updated_at = NOW()
		FROM pockets AS p
		WHERE t.transaction_id = $1 AND p.pocket_id = t.pocket_id AND NOT p.is_archived
		RETURNING t.updated_at
	`
	args := []any{t.TransactionID, int16(t.Status)}

	row := executor(ctx, r.db, r.txGetter).QueryRowxContext(ctx, query, args...)
	err := row.Scan(&t.UpdatedAt)

	logQuery(query, args, t.Status.String(), err)

	if errors.Is(err, sql.ErrNoRows) {
		return models.ErrArchivedPocket
	}
	return err
}

// Delete removes the transaction row.
func (r *TransactionWriteRepository) Delete(ctx context.Context, transactionID uuid.UUID) error {
	const query = `DELETE FROM transactions WHERE transaction_id = $1`
	args := []any{transactionID}

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
		return models.ErrTransactionNotFound
	}
	return nil
}

// TransactionReadRepository handles transaction read operations.
type TransactionReadRepository struct {
	db       *sqlx.DB
	txGetter TxGetter
}

func NewTransactionReadRepository(db *sqlx.DB, txGetter TxGetter) *TransactionReadRepository {
	return &TransactionReadRepository{db: db, txGetter: txGetter}
}

// GetByID returns the transaction regardless of the pocket's archived flag.
func (r *TransactionReadRepository) GetByID(ctx context.Context, transactionID uuid.UUID) (*models.Transaction, error) {
	const query = `SELECT ` + transactionColumns + ` FROM transactions t WHERE t.transaction_id = $1`
	return r.get(ctx, query, transactionID)
}

// GetByIDForUpdate returns the transaction and locks its row until the
// enclosing transaction ends. Concurrent confirmations of the same
// transaction are serialized here.
func (r *TransactionReadRepository) GetByIDForUpdate(ctx context.Context, transactionID uuid.UUID) (*models.Transaction, error) {
	const query = `SELECT ` + transactionColumns + ` FROM transactions t WHERE t.transaction_id = $1 FOR UPDATE`
	return r.get(ctx, query, transactionID)
}

func (r *TransactionReadRepository) get(ctx context.Context, query string, transactionID uuid.UUID) (*models.Transaction, error) {
	var t models.Transaction
	err := sqlx.GetContext(ctx, executor(ctx, r.db, r.txGetter), &t, query, transactionID)

	logQuery(query, []any{transactionID}, t.Status.String(), err)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrTransactionNotFound
		}
		return nil, err
	}
	return &t, nil
}

// ListVisible returns the user's transactions whose pocket is not archived,
// newest first.
func (r *TransactionReadRepository) ListVisible(ctx context.Context, userID uuid.UUID, filter models.TransactionFilter) ([]models.Transaction, error) {
	const query = `
		SELECT ` + transactionColumns + `
		FROM transactions t
		JOIN pockets p ON p.pocket_id = t.pocket_id
		WHERE p.user_id = $1
		  AND NOT p.is_archived
		  AND ($2::UUID IS NULL OR t.pocket_id = $2)
		  AND ($3::SMALLINT IS NULL OR t.status = $3)
		ORDER BY t.created_at DESC
	`

	var status *int16
	if filter.Status != nil {
		s := int16(*filter.Status)
		status = &s
	}
	args := []any{userID, filter.PocketID, status}

	transactions := []models.Transaction{}
	err := sqlx.SelectContext(ctx, executor(ctx, r.db, r.txGetter), &transactions, query, args...)

	logQuery(query, args, len(transactions), err)

	if err != nil {
		return nil, err
	}
	return transactions, nil
}
