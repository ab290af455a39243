package services

import (
	"context"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sbilibin2017/pocket-wallet/internal/logger"
	"github.com/sbilibin2017/pocket-wallet/internal/models"
	"golang.org/x/crypto/blake2b"
)

//go:generate mockgen -source=confirmation_code.go -destination=confirmation_code_mock_test.go -package=services

// Code namespaces. A subject id may hold one live code per namespace.
const (
	NamespacePocketDeletion     = "pocket-deletion"
	NamespaceTransactionConfirm = "transaction-confirm"
)

// Confirmation code defaults.
const (
	DefaultCodeLength = 5
	DefaultCodeTTL    = 300 * time.Second
)

// KeyValueStore is a key-expiry store.
type KeyValueStore interface {
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Get(ctx context.Context, key string) (value string, ok bool, err error)
}

// CodeConfig holds the confirmation code settings.
type CodeConfig struct {
	Length int           // Number of digits in an issued code
	TTL    time.Duration // Lifetime of an issued code
	Secret string        // Installation secret used to derive store keys
}

// ConfirmationCodeStore issues and verifies short numeric codes bound to a
// namespace and a subject id. Codes live in the key-expiry store under a keyed
// hash, so the subject id never appears in the store.
type ConfirmationCodeStore struct {
	store  KeyValueStore
	length int
	ttl    time.Duration
	key    []byte
	digit  func() int
}

// NewConfirmationCodeStore creates a new ConfirmationCodeStore. Zero values
// in cfg fall back to the defaults.
func NewConfirmationCodeStore(store KeyValueStore, cfg CodeConfig) *ConfirmationCodeStore {
	if cfg.Length <= 0 {
		cfg.Length = DefaultCodeLength
	}
	if cfg.TTL <= 0 {
		cfg.TTL = DefaultCodeTTL
	}
	// blake2b accepts keys up to 64 bytes.
	key := blake2b.Sum512([]byte(cfg.Secret))

	return &ConfirmationCodeStore{
		store:  store,
		length: cfg.Length,
		ttl:    cfg.TTL,
		key:    key[:],
		digit:  func() int { return rand.IntN(10) },
	}
}

// Length returns the number of digits in issued codes.
func (s *ConfirmationCodeStore) Length() int {
	return s.length
}

func (s *ConfirmationCodeStore) storeKey(namespace string, subjectID uuid.UUID) string {
	h, _ := blake2b.New256(s.key)
	h.Write([]byte(namespace + ":" + subjectID.String()))
	return hex.EncodeToString(h.Sum(nil))
}

func (s *ConfirmationCodeStore) generate() string {
	var b strings.Builder
	b.Grow(s.length)
	for i := 0; i < s.length; i++ {
		b.WriteByte(byte('0' + s.digit()))
	}
	return b.String()
}

// Issue generates a fresh code for subjectID and stores it for the configured
// TTL, replacing any previous code in the same namespace.
func (s *ConfirmationCodeStore) Issue(ctx context.Context, namespace string, subjectID uuid.UUID) (string, error) {
	code := s.generate()
	if err := s.store.Set(ctx, s.storeKey(namespace, subjectID), code, s.ttl); err != nil {
		logger.Log.Errorw("failed to store confirmation code", "namespace", namespace, "subject_id", subjectID, "error", err)
		return "", fmt.Errorf("store confirmation code: %w", err)
	}
	return code, nil
}

// Verify reports whether candidate matches the live code for subjectID.
// A missing or expired code never matches.
func (s *ConfirmationCodeStore) Verify(ctx context.Context, namespace string, subjectID uuid.UUID, candidate string) (bool, error) {
	code, ok, err := s.store.Get(ctx, s.storeKey(namespace, subjectID))
	if err != nil {
		logger.Log.Errorw("failed to read confirmation code", "namespace", namespace, "subject_id", subjectID, "error", err)
		return false, fmt.Errorf("read confirmation code: %w", err)
	}
	if !ok {
		return false, nil
	}
	return subtle.ConstantTimeCompare([]byte(code), []byte(candidate)) == 1, nil
}

// ValidateCode checks that code is a non-empty string of ASCII digits. When
// length is positive the code must have exactly that many digits.
func ValidateCode(code string, length int) error {
	if code == "" {
		return &models.ValidationError{Field: "code", Reason: "must not be empty"}
	}
	for _, r := range code {
		if r < '0' || r > '9' {
			return &models.ValidationError{Field: "code", Reason: "must contain only digits"}
		}
	}
	if length > 0 && len(code) != length {
		return &models.ValidationError{Field: "code", Reason: fmt.Sprintf("must be %d digits long", length)}
	}
	return nil
}
