package models

// User represents a registered account stored in users.json.
type User struct {
	ID        string `json:"id"`        // Opaque unique identifier
	Username  string `json:"username"`  // Display name
	Email     string `json:"email"`     // Unique email address
	CreatedAt int64  `json:"createdAt"` // Unix milliseconds
}
