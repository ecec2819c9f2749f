package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/eleontev/flower-shop-api/internal/logger"
	"github.com/eleontev/flower-shop-api/internal/middlewares"
)

// AddItemRequest represents the JSON body for adding a product to the cart.
// swagger:model AddItemRequest
type AddItemRequest struct {
	// Catalog product id
	// required: true
	ProductID string `json:"productId"`

	// Product name
	// required: true
	Name string `json:"name"`

	// Unit price, must be positive
	// required: true
	Price float64 `json:"price"`

	// Product image URL
	// required: true
	Image string `json:"image"`

	// Quantity to add, defaults to 1
	Count *int `json:"count,omitempty"`
}

// NewAddToCartHandler adds a product to the cart, merging with an existing
// line item for the same product.
// @Summary Add item to cart
// @Tags cart
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param addItemRequest body handlers.AddItemRequest true "Item to add"
// @Success 201 {object} models.CartItem
// @Failure 400 {object} handlers.ErrorResponse
// @Failure 401 {object} handlers.ErrorResponse
// @Router /cart/add [post]
func NewAddToCartHandler(svc Carter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, _ := middlewares.UserIDFromContext(r.Context())

		var req AddItemRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if msg := validateAddItem(req); msg != "" {
			writeError(w, http.StatusBadRequest, msg)
			return
		}

		count := 1
		if req.Count != nil {
			count = *req.Count
		}

		item, err := svc.Add(r.Context(), userID, req.ProductID, req.Name, req.Price, req.Image, count)
		if err != nil {
			logger.Log.Errorw("internal server error", "err", err)
			writeError(w, http.StatusInternalServerError, "Internal server error")
			return
		}

		writeJSON(w, http.StatusCreated, item)
	}
}

func validateAddItem(req AddItemRequest) string {
	if req.ProductID == "" {
		return "productId is required"
	}
	if req.Name == "" {
		return "name is required"
	}
	if req.Price <= 0 {
		return "price must be positive"
	}
	if req.Image == "" {
		return "image is required"
	}
	if req.Count != nil && *req.Count <= 0 {
		return "count must be a positive integer"
	}
	return ""
}
