package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/sbilibin2017/pocket-wallet/internal/models"
)

// ErrUserNotFound is returned when the identity table has no such user.
var ErrUserNotFound = errors.New("user not found")

// UserReadRepository reads users owned by the identity service.
type UserReadRepository struct {
	db *sqlx.DB
}

func NewUserReadRepository(db *sqlx.DB) *UserReadRepository {
	return &UserReadRepository{db: db}
}

// GetByID returns the user with the given id.
func (r *UserReadRepository) GetByID(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	const query = `
		SELECT user_id, username, email
		FROM users
		WHERE user_id = $1
	`

	var user models.User
	err := r.db.GetContext(ctx, &user, query, userID)

	logQuery(query, []any{userID}, user.Username, err)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}
