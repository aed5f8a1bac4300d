package middleware

import (
	"context"
	"net/http"
	"strconv"
)

// userIDKey is the context key for the authenticated user ID.
type userIDKey struct{}

// AccessChecker answers whether a user may submit downloads.
type AccessChecker interface {
	HasAccess(ctx context.Context, userID int64) (bool, error)
}

// UserID returns the user ID stored by UserAccess, if any.
func UserID(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(userIDKey{}).(int64)
	return id, ok
}

// WithUserID stores a user ID in the context. Exported for handler tests.
func WithUserID(ctx context.Context, userID int64) context.Context {
	return context.WithValue(ctx, userIDKey{}, userID)
}

// UserAccess creates a middleware that identifies the requesting user via
// the X-User-ID header and rejects users outside the allow-list.
func UserAccess(checker AccessChecker) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := r.Header.Get("X-User-ID")
			if raw == "" {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				w.Write([]byte(`{"error":"missing user ID"}`))
				return
			}

			userID, err := strconv.ParseInt(raw, 10, 64)
			if err != nil {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				w.Write([]byte(`{"error":"invalid user ID"}`))
				return
			}

			allowed, err := checker.HasAccess(r.Context(), userID)
			if err != nil {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusInternalServerError)
				w.Write([]byte(`{"error":"access check failed"}`))
				return
			}
			if !allowed {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusForbidden)
				w.Write([]byte(`{"error":"access denied"}`))
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), userID)))
		})
	}
}
