package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/sbilibin2017/pocket-wallet/internal/logger"
	"github.com/sbilibin2017/pocket-wallet/internal/models"
)

//go:generate mockgen -source=notify.go -destination=notify_mock_test.go -package=services

// Transactor runs fn in a single database transaction.
type Transactor interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// CodeManager issues and verifies confirmation codes.
type CodeManager interface {
	Issue(ctx context.Context, namespace string, subjectID uuid.UUID) (string, error)                  // Issues a fresh code
	Verify(ctx context.Context, namespace string, subjectID uuid.UUID, candidate string) (bool, error) // Checks a candidate code
	Length() int                                                                                       // Number of digits in a code
}

// UserReader reads users from the identity store.
type UserReader interface {
	GetByID(ctx context.Context, userID uuid.UUID) (*models.User, error)
}

// Notifier delivers email requests to the mail service.
type Notifier interface {
	Send(ctx context.Context, n models.Notification) error
}

// sendCode emails a confirmation code to the user. Failures are logged and
// swallowed.
func sendCode(ctx context.Context, users UserReader, notifier Notifier, userID uuid.UUID, template string, subjectID uuid.UUID, code string) {
	user, err := users.GetByID(ctx, userID)
	if err != nil {
		logger.Log.Warnw("failed to resolve code recipient", "user_id", userID, "template", template, "error", err)
		return
	}

	n := models.Notification{
		Recipient: user.Email,
		Template:  template,
		Context: map[string]any{
			"uuid": subjectID.String(),
			"code": code,
		},
	}
	if err := notifier.Send(ctx, n); err != nil {
		logger.Log.Warnw("failed to send confirmation code", "user_id", userID, "template", template, "error", err)
		return
	}
	logger.Log.Infow("confirmation code sent", "user_id", userID, "template", template, "subject_id", subjectID)
}
