package middlewares

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/eleontev/flower-shop-api/internal/logger"
	"github.com/eleontev/flower-shop-api/internal/models"
)

// AdminChecker reports whether an identity belongs to the admin
// allow-list.
type AdminChecker interface {
	Check(ctx context.Context, userID string) *models.User
}

// AdminMiddleware requires the resolved identity to be an admin. It must
// run after AuthMiddleware: a missing identity is a 401, an authenticated
// non-admin a 403.
func AdminMiddleware(checker AdminChecker) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			w.Header().Set("Content-Type", "application/json")

			userID, ok := UserIDFromContext(ctx)
			if !ok {
				w.WriteHeader(http.StatusUnauthorized)
				json.NewEncoder(w).Encode(map[string]string{"error": "Unauthorized"})
				return
			}

			if checker.Check(ctx, userID) == nil {
				logger.Log.Infow("admin access denied", "user_id", userID)
				w.WriteHeader(http.StatusForbidden)
				json.NewEncoder(w).Encode(map[string]string{"error": "Access denied. Administrator rights required"})
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
