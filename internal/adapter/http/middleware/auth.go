package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/walletd/walletd/internal/infrastructure/auth"
)

// ContextKey is the type for context keys
type ContextKey string

const (
	// AccountContextKey is the context key for the authenticated account
	AccountContextKey ContextKey = "account"
)

// AuthMiddleware creates an authentication middleware. A verified token
// scopes the request to the account carried in its claims.
func AuthMiddleware(jwtManager *auth.JWTManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				http.Error(w, "missing authorization header", http.StatusUnauthorized)
				return
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || parts[0] != "Bearer" {
				http.Error(w, "invalid authorization header format", http.StatusUnauthorized)
				return
			}

			claims, err := jwtManager.Verify(parts[1])
			if err != nil {
				http.Error(w, "invalid or expired token", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), AccountContextKey, claims.AccountID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// OptionalAuth extracts the account if a valid token is present but does
// not require one.
func OptionalAuth(jwtManager *auth.JWTManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				next.ServeHTTP(w, r)
				return
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) == 2 && parts[0] == "Bearer" {
				if claims, err := jwtManager.Verify(parts[1]); err == nil {
					ctx := context.WithValue(r.Context(), AccountContextKey, claims.AccountID)
					next.ServeHTTP(w, r.WithContext(ctx))
					return
				}
			}

			// Invalid auth, but don't fail - just continue anonymously
			next.ServeHTTP(w, r)
		})
	}
}

// AccountFromContext returns the authenticated account id, if any.
func AccountFromContext(ctx context.Context) (string, bool) {
	accountID, ok := ctx.Value(AccountContextKey).(string)
	return accountID, ok
}
