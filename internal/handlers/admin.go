package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/eleontev/flower-shop-api/internal/logger"
	"github.com/eleontev/flower-shop-api/internal/middlewares"
	"github.com/eleontev/flower-shop-api/internal/models"
	"github.com/eleontev/flower-shop-api/internal/services"
)

// Adminer defines the admin panel operations.
type Adminer interface {
	Check(ctx context.Context, userID string) *models.User
	ListUsers(ctx context.Context) []services.UserWithStats
	DeleteUser(ctx context.Context, adminID, targetID string) (*models.User, error)
}

// AdminUsersResponse lists all users with cart aggregates.
// swagger:model AdminUsersResponse
type AdminUsersResponse struct {
	Users []services.UserWithStats `json:"users"`
	Total int                      `json:"total"`
}

// NewAdminListUsersHandler returns every user with cart stats.
// @Summary List users (admin)
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} handlers.AdminUsersResponse
// @Failure 401 {object} handlers.ErrorResponse
// @Failure 403 {object} handlers.ErrorResponse
// @Router /admin/users [get]
func NewAdminListUsersHandler(svc Adminer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		users := svc.ListUsers(r.Context())
		writeJSON(w, http.StatusOK, AdminUsersResponse{
			Users: users,
			Total: len(users),
		})
	}
}

// AdminDeleteResponse confirms a user deletion.
// swagger:model AdminDeleteResponse
type AdminDeleteResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// NewAdminDeleteUserHandler cascades the deletion of another account.
// @Summary Delete user (admin)
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param userId path string true "User id"
// @Success 200 {object} handlers.AdminDeleteResponse
// @Failure 400 {object} handlers.ErrorResponse "Cannot delete own account"
// @Failure 401 {object} handlers.ErrorResponse
// @Failure 403 {object} handlers.ErrorResponse
// @Failure 404 {object} handlers.ErrorResponse
// @Router /admin/users/{userId} [delete]
func NewAdminDeleteUserHandler(svc Adminer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		adminID, _ := middlewares.UserIDFromContext(r.Context())
		targetID := chi.URLParam(r, "userId")

		user, err := svc.DeleteUser(r.Context(), adminID, targetID)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrSelfDelete):
				writeError(w, http.StatusBadRequest, "You cannot delete your own account")
			case errors.Is(err, services.ErrUserNotFound):
				writeError(w, http.StatusNotFound, "User not found")
			default:
				logger.Log.Errorw("internal server error", "err", err)
				writeError(w, http.StatusInternalServerError, "Internal server error")
			}
			return
		}

		writeJSON(w, http.StatusOK, AdminDeleteResponse{
			Success: true,
			Message: fmt.Sprintf("User %s deleted successfully", user.Email),
		})
	}
}

// AdminCheckResponse reports whether the identity is an admin.
// swagger:model AdminCheckResponse
type AdminCheckResponse struct {
	IsAdmin bool          `json:"isAdmin"`
	User    *UserResponse `json:"user,omitempty"`
}

// NewAdminCheckHandler reports the admin status of the current identity.
// Always answers 200 with a body, so it sits behind neither the auth nor
// the admin middleware.
// @Summary Check admin status
// @Tags admin
// @Produce json
// @Success 200 {object} handlers.AdminCheckResponse
// @Router /admin/check [get]
func NewAdminCheckHandler(tokener middlewares.Tokener, svc Adminer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		userID, err := middlewares.ResolveUserID(ctx, tokener, r)
		if err != nil {
			writeJSON(w, http.StatusOK, AdminCheckResponse{IsAdmin: false})
			return
		}

		user := svc.Check(ctx, userID)
		if user == nil {
			writeJSON(w, http.StatusOK, AdminCheckResponse{IsAdmin: false})
			return
		}

		writeJSON(w, http.StatusOK, AdminCheckResponse{
			IsAdmin: true,
			User: &UserResponse{
				ID:       user.ID,
				Username: user.Username,
				Email:    user.Email,
			},
		})
	}
}
