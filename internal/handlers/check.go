package handlers

import (
	"context"
	"net/http"

	"github.com/eleontev/flower-shop-api/internal/middlewares"
	"github.com/eleontev/flower-shop-api/internal/models"
)

// UserGetter returns a user record by id, nil when absent.
type UserGetter interface {
	Get(ctx context.Context, id string) *models.User
}

// AuthCheckResponse reports whether the request carries a valid identity.
// swagger:model AuthCheckResponse
type AuthCheckResponse struct {
	IsAuthenticated bool          `json:"isAuthenticated"`
	User            *UserResponse `json:"user,omitempty"`
}

// NewAuthCheckHandler returns an HTTP handler reporting the request's
// authentication state. Unlike the protected routes it answers with a body
// on failure, so it resolves the identity itself instead of sitting behind
// the auth middleware.
// @Summary Check authentication
// @Tags auth
// @Produce json
// @Success 200 {object} handlers.AuthCheckResponse
// @Failure 401 {object} handlers.AuthCheckResponse "Not authenticated"
// @Failure 404 {object} handlers.AuthCheckResponse "Token valid but user no longer exists"
// @Router /auth/check [get]
func NewAuthCheckHandler(tokener middlewares.Tokener, users UserGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		userID, err := middlewares.ResolveUserID(ctx, tokener, r)
		if err != nil {
			writeJSON(w, http.StatusUnauthorized, AuthCheckResponse{IsAuthenticated: false})
			return
		}

		user := users.Get(ctx, userID)
		if user == nil {
			writeJSON(w, http.StatusNotFound, AuthCheckResponse{IsAuthenticated: false})
			return
		}

		writeJSON(w, http.StatusOK, AuthCheckResponse{
			IsAuthenticated: true,
			User: &UserResponse{
				ID:       user.ID,
				Username: user.Username,
				Email:    user.Email,
			},
		})
	}
}
