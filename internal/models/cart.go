package models

// CartItem represents one line item in a user's cart, stored in cart.json.
// At most one item exists per (UserID, ProductID) pair; adding the same
// product again increments Count on the existing item.
type CartItem struct {
	ID        string  `json:"id"`        // Opaque unique identifier
	UserID    string  `json:"userId"`    // Owning user
	ProductID string  `json:"productId"` // Catalog product reference
	Name      string  `json:"name"`      // Product name at time of adding
	Price     float64 `json:"price"`     // Unit price, positive
	Image     string  `json:"image"`     // Product image URL
	Count     int     `json:"count"`     // Quantity, positive
	CreatedAt int64   `json:"createdAt"` // Unix milliseconds
}
