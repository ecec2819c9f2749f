package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"regexp"

	"github.com/eleontev/flower-shop-api/internal/logger"
	"github.com/eleontev/flower-shop-api/internal/middlewares"
	"github.com/eleontev/flower-shop-api/internal/services"
)

var checkoutPhonePattern = regexp.MustCompile(`^\+?[0-9]{7,15}$`)

// CheckoutRequest represents the JSON body for placing an order.
// swagger:model CheckoutRequest
type CheckoutRequest struct {
	// Contact phone, 7-15 digits with optional leading +
	// required: true
	Phone string `json:"phone"`

	// Customer name, up to 50 characters
	Name string `json:"name"`

	// Delivery address
	// required: true
	Address string `json:"address"`

	// Whether to include a postcard
	PostCard bool `json:"postCard"`

	// Postcard text
	PostCardText string `json:"postCardText"`
}

// CheckoutResponse confirms the order was forwarded.
// swagger:model CheckoutResponse
type CheckoutResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	OrderID int64  `json:"orderId"`
}

// NewCheckoutHandler forwards the order to the shop owner and clears the
// cart.
// @Summary Checkout
// @Tags cart
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param checkoutRequest body handlers.CheckoutRequest true "Order details"
// @Success 200 {object} handlers.CheckoutResponse
// @Failure 400 {object} handlers.ErrorResponse "Invalid body or empty cart"
// @Failure 401 {object} handlers.ErrorResponse
// @Failure 500 {object} handlers.ErrorResponse "Order delivery failed"
// @Router /cart/checkout [post]
func NewCheckoutHandler(svc Carter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, _ := middlewares.UserIDFromContext(r.Context())

		var req CheckoutRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if !checkoutPhonePattern.MatchString(req.Phone) {
			writeError(w, http.StatusBadRequest, "Invalid phone format")
			return
		}
		if len(req.Name) > 50 {
			writeError(w, http.StatusBadRequest, "Name is too long")
			return
		}
		if req.Address == "" {
			writeError(w, http.StatusBadRequest, "address is required")
			return
		}

		orderID, err := svc.Checkout(r.Context(), userID, services.CheckoutRequest{
			Phone:        req.Phone,
			Name:         req.Name,
			Address:      req.Address,
			PostCard:     req.PostCard,
			PostCardText: req.PostCardText,
		})
		if err != nil {
			switch {
			case errors.Is(err, services.ErrCartEmpty):
				writeError(w, http.StatusBadRequest, "Cart is empty")
			default:
				logger.Log.Errorw("checkout failed", "err", err)
				writeError(w, http.StatusInternalServerError, "Failed to send order")
			}
			return
		}

		writeJSON(w, http.StatusOK, CheckoutResponse{
			Success: true,
			Message: "Order sent successfully",
			OrderID: orderID,
		})
	}
}
