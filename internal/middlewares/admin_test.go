package middlewares_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/eleontev/flower-shop-api/internal/middlewares"
	"github.com/eleontev/flower-shop-api/internal/models"
)

type stubAdminChecker struct {
	admins map[string]bool
}

func (s *stubAdminChecker) Check(ctx context.Context, userID string) *models.User {
	if !s.admins[userID] {
		return nil
	}
	return &models.User{ID: userID}
}

func TestAdminMiddleware(t *testing.T) {
	checker := &stubAdminChecker{admins: map[string]bool{"boss": true}}

	handler := middlewares.AdminMiddleware(checker)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	tests := []struct {
		name       string
		userID     string
		wantStatus int
		wantError  string
	}{
		{
			name:       "admin passes",
			userID:     "boss",
			wantStatus: http.StatusOK,
		},
		{
			name:       "authenticated non-admin",
			userID:     "alice",
			wantStatus: http.StatusForbidden,
			wantError:  "Access denied. Administrator rights required",
		},
		{
			name:       "no identity",
			wantStatus: http.StatusUnauthorized,
			wantError:  "Unauthorized",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/admin/users", nil)
			if tt.userID != "" {
				req = req.WithContext(middlewares.SetUserID(req.Context(), tt.userID))
			}
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantError != "" {
				assert.JSONEq(t, `{"error":"`+tt.wantError+`"}`, rec.Body.String())
			}
		})
	}
}
