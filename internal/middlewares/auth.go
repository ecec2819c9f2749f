package middlewares

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/eleontev/flower-shop-api/internal/logger"
)

// Tokener defines the minimal token interface needed by the middleware.
type Tokener interface {
	GetTokensFromRequest(ctx context.Context, r *http.Request) ([]string, error)
	GetUserID(ctx context.Context, tokenString string) (string, error)
}

// contextKey is an unexported type for keys in context.
type contextKey struct{}

var userIDKey = contextKey{}

// AuthMiddleware resolves the request's identity (bearer header first,
// auth cookie second) and stores the user id in the request context.
// Requests with no resolvable identity get a 401.
func AuthMiddleware(tokener Tokener) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			userID, err := ResolveUserID(ctx, tokener, r)
			if err != nil {
				logger.Log.Infow("authorization failed", "err", err)
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				json.NewEncoder(w).Encode(map[string]string{"error": "Unauthorized"})
				return
			}

			next.ServeHTTP(w, r.WithContext(SetUserID(ctx, userID)))
		})
	}
}

// ResolveUserID verifies the request's token candidates in order and
// returns the first identity that verifies. A bearer header that fails
// verification falls through to the auth cookie; only when every candidate
// fails does the caller see an error.
func ResolveUserID(ctx context.Context, tokener Tokener, r *http.Request) (string, error) {
	tokens, err := tokener.GetTokensFromRequest(ctx, r)
	if err != nil {
		return "", err
	}

	var lastErr error
	for _, token := range tokens {
		userID, err := tokener.GetUserID(ctx, token)
		if err == nil {
			return userID, nil
		}
		lastErr = err
	}
	return "", lastErr
}

// SetUserID stores the resolved user id in the context.
func SetUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// UserIDFromContext returns the user id stored by AuthMiddleware.
func UserIDFromContext(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(userIDKey).(string)
	return userID, ok && userID != ""
}
