package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultIdempotencyTTL = 24 * time.Hour

// IdempotencyStore remembers which credit request an Idempotency-Key created.
// Key format: idem:credit:<rm_id>:<key>
type IdempotencyStore struct {
	client *redis.Client
}

// NewIdempotencyStore creates an IdempotencyStore wrapping the given Redis client.
func NewIdempotencyStore(client *redis.Client) *IdempotencyStore {
	return &IdempotencyStore{client: client}
}

// Lookup returns the request id stored for key, if any.
func (s *IdempotencyStore) Lookup(ctx context.Context, rmID, key string) (string, bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	id, err := s.client.Get(ctx, idempotencyKey(rmID, key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("idempotency lookup: %w", err)
	}
	return id, true, nil
}

// Remember binds key to requestID unless another request already claimed it.
// It returns the id the key is bound to, which is the earlier claimant's when
// the race was lost.
func (s *IdempotencyStore) Remember(ctx context.Context, rmID, key, requestID string, ttl time.Duration) (string, error) {
	if ttl <= 0 {
		ttl = defaultIdempotencyTTL
	}
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	k := idempotencyKey(rmID, key)
	stored, err := s.client.SetNX(ctx, k, requestID, ttl).Result()
	if err != nil {
		return "", fmt.Errorf("idempotency remember: %w", err)
	}
	if stored {
		return requestID, nil
	}

	winner, err := s.client.Get(ctx, k).Result()
	if errors.Is(err, redis.Nil) {
		// expired between the two calls
		return requestID, nil
	}
	if err != nil {
		return "", fmt.Errorf("idempotency remember: %w", err)
	}
	return winner, nil
}

func idempotencyKey(rmID, key string) string {
	return fmt.Sprintf("idem:credit:%s:%s", rmID, key)
}
