package handlers

import (
	"context"
	"net/http"

	"github.com/eleontev/flower-shop-api/internal/logger"
	"github.com/eleontev/flower-shop-api/internal/middlewares"
	"github.com/eleontev/flower-shop-api/internal/models"
	"github.com/eleontev/flower-shop-api/internal/services"
)

// Carter defines the cart operations the /cart handlers need.
type Carter interface {
	Summary(ctx context.Context, userID string) services.CartSummary
	Add(ctx context.Context, userID, productID, name string, price float64, image string, count int) (*models.CartItem, error)
	UpdateCount(ctx context.Context, userID, itemID string, count int) error
	Remove(ctx context.Context, userID, itemID string) error
	Clear(ctx context.Context, userID string) error
	Totals(ctx context.Context, userID string) (total float64, count int)
	Checkout(ctx context.Context, userID string, req services.CheckoutRequest) (int64, error)
}

// CartResponse is the user's cart with derived aggregates.
// swagger:model CartResponse
type CartResponse struct {
	Items []models.CartItem `json:"items"`
	Total float64           `json:"total"`
	Count int               `json:"count"`
}

// NewGetCartHandler returns the user's cart with total and count.
// @Summary Get cart
// @Tags cart
// @Produce json
// @Security BearerAuth
// @Success 200 {object} handlers.CartResponse
// @Failure 401 {object} handlers.ErrorResponse
// @Router /cart [get]
func NewGetCartHandler(svc Carter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, _ := middlewares.UserIDFromContext(r.Context())

		summary := svc.Summary(r.Context(), userID)
		writeJSON(w, http.StatusOK, CartResponse{
			Items: summary.Items,
			Total: summary.Total,
			Count: summary.Count,
		})
	}
}

// CartTotalResponse carries the cart aggregates without the items.
// swagger:model CartTotalResponse
type CartTotalResponse struct {
	Total float64 `json:"total"`
	Count int     `json:"count"`
}

// NewCartTotalHandler returns only the cart aggregates.
// @Summary Get cart total
// @Tags cart
// @Produce json
// @Security BearerAuth
// @Success 200 {object} handlers.CartTotalResponse
// @Failure 401 {object} handlers.ErrorResponse
// @Router /cart/total [get]
func NewCartTotalHandler(svc Carter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, _ := middlewares.UserIDFromContext(r.Context())

		total, count := svc.Totals(r.Context(), userID)
		writeJSON(w, http.StatusOK, CartTotalResponse{Total: total, Count: count})
	}
}

// ClearCartResponse confirms the cart was emptied.
// swagger:model ClearCartResponse
type ClearCartResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// NewClearCartHandler empties the user's cart.
// @Summary Clear cart
// @Tags cart
// @Produce json
// @Security BearerAuth
// @Success 200 {object} handlers.ClearCartResponse
// @Failure 401 {object} handlers.ErrorResponse
// @Router /cart [delete]
func NewClearCartHandler(svc Carter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, _ := middlewares.UserIDFromContext(r.Context())

		if err := svc.Clear(r.Context(), userID); err != nil {
			logger.Log.Errorw("internal server error", "err", err)
			writeError(w, http.StatusInternalServerError, "Internal server error")
			return
		}
		writeJSON(w, http.StatusOK, ClearCartResponse{Success: true, Message: "Cart cleared"})
	}
}
