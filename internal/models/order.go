package models

// OrderEvent is published to Kafka when a checkout succeeds.
type OrderEvent struct {
	EventID   string     `json:"event_id"`
	UserID    string     `json:"user_id"`
	Phone     string     `json:"phone"`
	Name      string     `json:"name,omitempty"`
	Address   string     `json:"address"`
	Items     []CartItem `json:"items"`
	Total     float64    `json:"total"`
	Timestamp int64      `json:"timestamp"` // Unix seconds
}
