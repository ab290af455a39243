package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sbilibin2017/pocket-wallet/internal/logger"
)

// ConfirmationCodeCacheRepository is the key-expiry store for confirmation
// codes. Keys are namespaced with a deployment prefix.
type ConfirmationCodeCacheRepository struct {
	client redis.Cmdable
	prefix string
}

// NewConfirmationCodeCacheRepository creates a new repository instance.
func NewConfirmationCodeCacheRepository(client redis.Cmdable, prefix string) *ConfirmationCodeCacheRepository {
	return &ConfirmationCodeCacheRepository{
		client: client,
		prefix: prefix,
	}
}

func (r *ConfirmationCodeCacheRepository) key(key string) string {
	if r.prefix == "" {
		return key
	}
	return r.prefix + "-" + key
}

// Set stores value under key for ttl. An existing value is replaced and its
// ttl restarted.
func (r *ConfirmationCodeCacheRepository) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	fullKey := r.key(key)
	err := r.client.Set(ctx, fullKey, value, ttl).Err()

	logger.Log.Infow(
		"cache set",
		"key", fullKey,
		"ttl", ttl,
		"error", err,
	)

	return err
}

// Get returns the value stored under key. ok is false when the key is
// missing or expired.
func (r *ConfirmationCodeCacheRepository) Get(ctx context.Context, key string) (value string, ok bool, err error) {
	fullKey := r.key(key)
	value, err = r.client.Get(ctx, fullKey).Result()

	logger.Log.Infow(
		"cache get",
		"key", fullKey,
		"found", err == nil,
		"error", err,
	)

	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", false, nil
		}
		return "", false, err
	}
	return value, true, nil
}
