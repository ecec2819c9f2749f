package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/eleontev/flower-shop-api/internal/logger"
	"github.com/eleontev/flower-shop-api/internal/middlewares"
	"github.com/eleontev/flower-shop-api/internal/services"
)

// NewRemoveFromCartHandler deletes one of the user's cart items.
// @Summary Remove cart item
// @Tags cart
// @Produce json
// @Security BearerAuth
// @Param id path string true "Cart item id"
// @Success 200 {object} handlers.SuccessResponse
// @Failure 401 {object} handlers.ErrorResponse
// @Failure 403 {object} handlers.ErrorResponse "Item missing or owned by another user"
// @Failure 404 {object} handlers.ErrorResponse
// @Router /cart/{id} [delete]
func NewRemoveFromCartHandler(svc Carter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, _ := middlewares.UserIDFromContext(r.Context())
		itemID := chi.URLParam(r, "id")

		err := svc.Remove(r.Context(), userID, itemID)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrCartItemForbidden):
				writeError(w, http.StatusForbidden, "Forbidden")
			case errors.Is(err, services.ErrCartItemNotFound):
				writeError(w, http.StatusNotFound, "Item not found")
			default:
				logger.Log.Errorw("internal server error", "err", err)
				writeError(w, http.StatusInternalServerError, "Internal server error")
			}
			return
		}

		writeJSON(w, http.StatusOK, SuccessResponse{Success: true})
	}
}
