package middleware

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

type fakeIdempotencyStore struct {
	checkAndSetFn func(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	updateFn      func(ctx context.Context, key string, response []byte, ttl time.Duration) error
}

func (f *fakeIdempotencyStore) CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error) {
	if f.checkAndSetFn != nil {
		return f.checkAndSetFn(ctx, key, response, ttl)
	}
	return false, nil, nil
}

func (f *fakeIdempotencyStore) Update(ctx context.Context, key string, response []byte, ttl time.Duration) error {
	if f.updateFn != nil {
		return f.updateFn(ctx, key, response, ttl)
	}
	return nil
}

func newKeyedRequest(method, target, key string) *http.Request {
	req := httptest.NewRequest(method, target, bytes.NewBufferString(`{}`))
	if key != "" {
		req.Header.Set(IdempotencyKeyHeader, key)
	}
	return req
}

func TestIdempotencyMiddleware_PassesThroughWithoutKey(t *testing.T) {
	var storeHit bool
	store := &fakeIdempotencyStore{
		checkAndSetFn: func(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error) {
			storeHit = true
			return false, nil, nil
		},
	}
	mw := NewIdempotencyMiddleware(store)

	called := false
	rr := httptest.NewRecorder()
	mw.Wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	})).ServeHTTP(rr, newKeyedRequest(http.MethodPost, "/api/v1/deposits", ""))

	if !called {
		t.Fatalf("expected handler to run when no key is present")
	}
	if storeHit {
		t.Fatalf("store should not be consulted without a key")
	}
}

func TestIdempotencyMiddleware_SkipsReads(t *testing.T) {
	var storeHit bool
	store := &fakeIdempotencyStore{
		checkAndSetFn: func(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error) {
			storeHit = true
			return false, nil, nil
		},
	}
	mw := NewIdempotencyMiddleware(store)

	req := newKeyedRequest(http.MethodGet, "/api/v1/accounts/acct-1/balance", "get-key")
	rr := httptest.NewRecorder()

	called := false
	mw.Wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	})).ServeHTTP(rr, req)

	if !called {
		t.Fatalf("expected handler to run for GET requests")
	}
	if storeHit {
		t.Fatalf("GET requests should bypass the idempotency store")
	}
}

func TestIdempotencyMiddleware_ReplaysCachedResponse(t *testing.T) {
	store := &fakeIdempotencyStore{
		checkAndSetFn: func(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error) {
			return true, []byte(`{"record_id":"rec-1"}`), nil
		},
	}
	mw := NewIdempotencyMiddleware(store)

	rr := httptest.NewRecorder()
	mw.Wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatalf("handler must not run when a cached response exists")
	})).ServeHTTP(rr, newKeyedRequest(http.MethodPost, "/api/v1/transfers", "seen-before"))

	if rr.Header().Get("X-Idempotency-Replay") != "true" {
		t.Fatalf("expected the replay header to be set")
	}
	if got := rr.Body.String(); got != `{"record_id":"rec-1"}` {
		t.Fatalf("unexpected replayed body: %s", got)
	}
}

func TestIdempotencyMiddleware_CachesSuccessfulResponse(t *testing.T) {
	var cached []byte
	store := &fakeIdempotencyStore{
		updateFn: func(ctx context.Context, key string, response []byte, ttl time.Duration) error {
			cached = append([]byte(nil), response...)
			return nil
		},
	}
	mw := NewIdempotencyMiddleware(store)

	rr := httptest.NewRecorder()
	mw.Wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"ok":true}`))
	})).ServeHTTP(rr, newKeyedRequest(http.MethodPost, "/api/v1/transfers", "first-time"))

	if rr.Code != http.StatusCreated {
		t.Fatalf("unexpected status code: %d", rr.Code)
	}
	if string(cached) != `{"ok":true}` {
		t.Fatalf("expected the response body to be cached, got %s", cached)
	}
}

func TestIdempotencyMiddleware_DoesNotCacheErrors(t *testing.T) {
	var updated bool
	store := &fakeIdempotencyStore{
		updateFn: func(ctx context.Context, key string, response []byte, ttl time.Duration) error {
			updated = true
			return nil
		},
	}
	mw := NewIdempotencyMiddleware(store)

	rr := httptest.NewRecorder()
	mw.Wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
	})).ServeHTTP(rr, newKeyedRequest(http.MethodPost, "/api/v1/transfers", "failed-op"))

	if updated {
		t.Fatalf("failed responses must not be cached")
	}
}

func TestIdempotencyMiddleware_RejectsOnStoreError(t *testing.T) {
	store := &fakeIdempotencyStore{
		checkAndSetFn: func(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error) {
			return false, nil, context.DeadlineExceeded
		},
	}
	mw := NewIdempotencyMiddleware(store)

	rr := httptest.NewRecorder()
	called := false
	mw.Wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	})).ServeHTTP(rr, newKeyedRequest(http.MethodPost, "/api/v1/transfers", "store-down"))

	if called {
		t.Fatalf("handler must not run when the store check fails")
	}
	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("expected status 500, got %d", rr.Code)
	}
}
