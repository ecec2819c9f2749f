package handlers

import (
	"context"
	"net/http"
)

// CookieClearer expires the identity cookie on the response.
type CookieClearer interface {
	ClearAuthCookie(ctx context.Context, w http.ResponseWriter)
}

// LogoutResponse represents a successful logout response
// swagger:model LogoutResponse
type LogoutResponse struct {
	Message string `json:"message"`
}

// NewLogoutHandler returns an HTTP handler that clears the auth cookie.
// @Summary Log out
// @Tags auth
// @Produce json
// @Success 200 {object} handlers.LogoutResponse
// @Router /auth/logout [post]
func NewLogoutHandler(cookies CookieClearer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cookies.ClearAuthCookie(r.Context(), w)
		writeJSON(w, http.StatusOK, LogoutResponse{Message: "Logged out successfully"})
	}
}
