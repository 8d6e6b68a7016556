package redis

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// pendingPlaceholder marks a key whose first request is still in flight.
const pendingPlaceholder = "processing"

// IdempotencyStore implements usecase.IdempotencyStore on Redis.
type IdempotencyStore struct {
	client *redis.Client
	prefix string
}

// NewIdempotencyStore creates a new IdempotencyStore.
func NewIdempotencyStore(client *redis.Client) *IdempotencyStore {
	return &IdempotencyStore{
		client: client,
		prefix: "wallet:idempotency:",
	}
}

// CheckAndSet returns the cached response for key if one exists. On a miss
// it claims the key, either with the given response or with a pending
// placeholder when response is nil.
func (s *IdempotencyStore) CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error) {
	fullKey := s.prefix + key

	existing, err := s.client.Get(ctx, fullKey).Bytes()
	switch {
	case err == nil:
		return true, existing, nil
	case !errors.Is(err, redis.Nil):
		return false, nil, err
	}

	if response != nil {
		if err := s.client.Set(ctx, fullKey, response, ttl).Err(); err != nil {
			return false, nil, err
		}
		return false, nil, nil
	}

	set, err := s.client.SetNX(ctx, fullKey, pendingPlaceholder, ttl).Result()
	if err != nil {
		return false, nil, err
	}
	if !set {
		// A concurrent request claimed the key between Get and SetNX.
		existing, err := s.client.Get(ctx, fullKey).Bytes()
		if err != nil && !errors.Is(err, redis.Nil) {
			return false, nil, err
		}
		return true, existing, nil
	}

	return false, nil, nil
}

// Update overwrites the key with the final response.
func (s *IdempotencyStore) Update(ctx context.Context, key string, response []byte, ttl time.Duration) error {
	return s.client.Set(ctx, s.prefix+key, response, ttl).Err()
}
