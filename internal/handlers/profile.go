package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/mail"

	"github.com/eleontev/flower-shop-api/internal/logger"
	"github.com/eleontev/flower-shop-api/internal/middlewares"
	"github.com/eleontev/flower-shop-api/internal/models"
	"github.com/eleontev/flower-shop-api/internal/services"
)

// Profiler defines the profile operations the /users/me handlers need.
type Profiler interface {
	Get(ctx context.Context, id string) (*models.User, error)
	Update(ctx context.Context, id string, username, email *string) (*models.User, error)
	Delete(ctx context.Context, id string) error
}

// ProfileResponse is the authenticated user's own profile.
// swagger:model ProfileResponse
type ProfileResponse struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	CreatedAt int64  `json:"createdAt"`
}

// UpdateProfileRequest carries the optional profile fields to change.
// swagger:model UpdateProfileRequest
type UpdateProfileRequest struct {
	Username *string `json:"username,omitempty"`
	Email    *string `json:"email,omitempty"`
}

// NewGetProfileHandler returns the current user's profile.
// @Summary Get own profile
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} handlers.ProfileResponse
// @Failure 401 {object} handlers.ErrorResponse
// @Failure 404 {object} handlers.ErrorResponse
// @Router /users/me [get]
func NewGetProfileHandler(svc Profiler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, _ := middlewares.UserIDFromContext(r.Context())

		user, err := svc.Get(r.Context(), userID)
		if err != nil {
			if errors.Is(err, services.ErrUserNotFound) {
				writeError(w, http.StatusNotFound, "User not found")
				return
			}
			logger.Log.Errorw("internal server error", "err", err)
			writeError(w, http.StatusInternalServerError, "Internal server error")
			return
		}

		writeJSON(w, http.StatusOK, ProfileResponse{
			ID:        user.ID,
			Username:  user.Username,
			Email:     user.Email,
			CreatedAt: user.CreatedAt,
		})
	}
}

// NewUpdateProfileHandler applies a partial profile update.
// @Summary Update own profile
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param updateProfileRequest body handlers.UpdateProfileRequest true "Fields to update"
// @Success 200 {object} handlers.UserResponse
// @Failure 400 {object} handlers.ErrorResponse
// @Failure 401 {object} handlers.ErrorResponse
// @Failure 404 {object} handlers.ErrorResponse
// @Failure 409 {object} handlers.ErrorResponse "Email already in use"
// @Router /users/me [patch]
func NewUpdateProfileHandler(svc Profiler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, _ := middlewares.UserIDFromContext(r.Context())

		var req UpdateProfileRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if req.Username != nil && len(*req.Username) < 3 {
			writeError(w, http.StatusBadRequest, "Username must be at least 3 characters")
			return
		}
		if req.Email != nil {
			if _, err := mail.ParseAddress(*req.Email); err != nil {
				writeError(w, http.StatusBadRequest, "Invalid email format")
				return
			}
		}

		user, err := svc.Update(r.Context(), userID, req.Username, req.Email)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrUserNotFound):
				writeError(w, http.StatusNotFound, "User not found")
			case errors.Is(err, services.ErrEmailTaken):
				writeError(w, http.StatusConflict, "This email is already taken")
			default:
				logger.Log.Errorw("internal server error", "err", err)
				writeError(w, http.StatusInternalServerError, "Internal server error")
			}
			return
		}

		writeJSON(w, http.StatusOK, UserResponse{
			ID:       user.ID,
			Username: user.Username,
			Email:    user.Email,
		})
	}
}

// DeleteProfileResponse confirms account deletion.
// swagger:model DeleteProfileResponse
type DeleteProfileResponse struct {
	Message string `json:"message"`
}

// NewDeleteProfileHandler deletes the account with its cart and password
// record, then clears the auth cookie.
// @Summary Delete own account
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} handlers.DeleteProfileResponse
// @Failure 401 {object} handlers.ErrorResponse
// @Failure 404 {object} handlers.ErrorResponse
// @Router /users/me [delete]
func NewDeleteProfileHandler(svc Profiler, cookies CookieClearer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, _ := middlewares.UserIDFromContext(r.Context())

		if err := svc.Delete(r.Context(), userID); err != nil {
			if errors.Is(err, services.ErrUserNotFound) {
				writeError(w, http.StatusNotFound, "User not found")
				return
			}
			logger.Log.Errorw("internal server error", "err", err)
			writeError(w, http.StatusInternalServerError, "Internal server error")
			return
		}

		cookies.ClearAuthCookie(r.Context(), w)
		writeJSON(w, http.StatusOK, DeleteProfileResponse{Message: "Account and cart deleted successfully"})
	}
}
