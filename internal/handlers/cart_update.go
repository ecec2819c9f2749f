package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/eleontev/flower-shop-api/internal/logger"
	"github.com/eleontev/flower-shop-api/internal/middlewares"
	"github.com/eleontev/flower-shop-api/internal/services"
)

// UpdateCountRequest represents the JSON body for changing an item's count.
// swagger:model UpdateCountRequest
type UpdateCountRequest struct {
	// Cart item id
	// required: true
	ItemID string `json:"itemId"`

	// New count; zero removes the item
	// required: true
	Count *int `json:"count"`
}

// SuccessResponse is a bare success confirmation.
// swagger:model SuccessResponse
type SuccessResponse struct {
	Success bool `json:"success"`
}

// NewUpdateCartHandler changes the count on one of the user's items.
// @Summary Update cart item count
// @Tags cart
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param updateCountRequest body handlers.UpdateCountRequest true "Item and new count"
// @Success 200 {object} handlers.SuccessResponse
// @Failure 400 {object} handlers.ErrorResponse
// @Failure 401 {object} handlers.ErrorResponse
// @Failure 403 {object} handlers.ErrorResponse "Item missing or owned by another user"
// @Failure 404 {object} handlers.ErrorResponse
// @Router /cart/update [post]
func NewUpdateCartHandler(svc Carter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, _ := middlewares.UserIDFromContext(r.Context())

		var req UpdateCountRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if req.ItemID == "" {
			writeError(w, http.StatusBadRequest, "itemId is required")
			return
		}
		if req.Count == nil || *req.Count < 0 {
			writeError(w, http.StatusBadRequest, "count must be zero or a positive integer")
			return
		}

		err := svc.UpdateCount(r.Context(), userID, req.ItemID, *req.Count)
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
