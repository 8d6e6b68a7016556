package redis

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	redislib "github.com/redis/go-redis/v9"
)

func newTestStore(t *testing.T) (*IdempotencyStore, *redislib.Client, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redislib.NewClient(&redislib.Options{
		Addr: mr.Addr(),
	})
	t.Cleanup(func() { client.Close() })

	return NewIdempotencyStore(client), client, mr
}

func seedCachedResponse(t *testing.T, client *redislib.Client, store *IdempotencyStore, key, body string) {
	t.Helper()

	if err := client.Set(context.Background(), store.prefix+key, body, time.Minute).Err(); err != nil {
		t.Fatalf("failed to seed cached response: %v", err)
	}
}
