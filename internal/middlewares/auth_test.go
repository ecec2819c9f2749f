package middlewares_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eleontev/flower-shop-api/internal/jwt"
	"github.com/eleontev/flower-shop-api/internal/middlewares"
)

func TestAuthMiddleware(t *testing.T) {
	tokener := jwt.New(jwt.WithSecretKey("test-secret"))

	token, err := tokener.Generate(context.Background(), "user-1")
	require.NoError(t, err)
	stale, err := jwt.New(jwt.WithSecretKey("rotated-out-secret")).Generate(context.Background(), "user-1")
	require.NoError(t, err)

	var gotUserID string
	handler := middlewares.AuthMiddleware(tokener)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserID, _ = middlewares.UserIDFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	tests := []struct {
		name       string
		setup      func(r *http.Request)
		wantStatus int
		wantUserID string
	}{
		{
			name: "bearer header",
			setup: func(r *http.Request) {
				r.Header.Set("Authorization", "Bearer "+token)
			},
			wantStatus: http.StatusOK,
			wantUserID: "user-1",
		},
		{
			name: "auth cookie",
			setup: func(r *http.Request) {
				r.AddCookie(&http.Cookie{Name: jwt.AuthCookieName, Value: token})
			},
			wantStatus: http.StatusOK,
			wantUserID: "user-1",
		},
		{
			name: "stale header falls back to valid cookie",
			setup: func(r *http.Request) {
				r.Header.Set("Authorization", "Bearer "+stale)
				r.AddCookie(&http.Cookie{Name: jwt.AuthCookieName, Value: token})
			},
			wantStatus: http.StatusOK,
			wantUserID: "user-1",
		},
		{
			name: "garbage header falls back to valid cookie",
			setup: func(r *http.Request) {
				r.Header.Set("Authorization", "Bearer not.a.token")
				r.AddCookie(&http.Cookie{Name: jwt.AuthCookieName, Value: token})
			},
			wantStatus: http.StatusOK,
			wantUserID: "user-1",
		},
		{
			name:       "no token",
			setup:      func(r *http.Request) {},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name: "garbage token",
			setup: func(r *http.Request) {
				r.Header.Set("Authorization", "Bearer not.a.token")
			},
			wantStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotUserID = ""
			req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
			tt.setup(req)
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantUserID, gotUserID)
			if tt.wantStatus == http.StatusUnauthorized {
				assert.JSONEq(t, `{"error":"Unauthorized"}`, rec.Body.String())
			}
		})
	}
}

func TestUserIDFromContext_Empty(t *testing.T) {
	_, ok := middlewares.UserIDFromContext(context.Background())
	assert.False(t, ok)

	_, ok = middlewares.UserIDFromContext(middlewares.SetUserID(context.Background(), ""))
	assert.False(t, ok)
}
