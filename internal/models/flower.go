package models

// Flower represents a catalog product stored in flowers.json.
type Flower struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Image       string  `json:"image"`
	Description string  `json:"description,omitempty"`
	Rating      float64 `json:"rating"`      // Running average, 0 when unrated
	RatingCount int     `json:"ratingCount"` // Number of submitted ratings
}
