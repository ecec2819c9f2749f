package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"html"
	"net/http"
	"net/mail"
	"regexp"
	"strings"

	"github.com/eleontev/flower-shop-api/internal/logger"
)

var (
	contactPhonePattern = regexp.MustCompile(`^\+?[0-9]{7,15}$`)
	phoneStripPattern   = regexp.MustCompile(`[^\d+]`)
)

// ContactNotifier delivers a contact-form message to the shop owner.
type ContactNotifier interface {
	Send(ctx context.Context, text string) (int64, error)
}

// ContactRequest represents the JSON body of the contact form.
// swagger:model ContactRequest
type ContactRequest struct {
	// Sender name, up to 50 characters
	Name string `json:"name"`

	// Sender email
	Email string `json:"email"`

	// Contact phone, 7-15 digits with optional leading +
	// required: true
	Phone string `json:"phone"`

	// Message, 5-1000 characters
	// required: true
	Message string `json:"message"`
}

// ContactResponse confirms the message was forwarded.
// swagger:model ContactResponse
type ContactResponse struct {
	OK bool `json:"ok"`
}

// NewContactHandler forwards a contact-form message to the shop owner.
// @Summary Send contact message
// @Tags contact
// @Accept json
// @Produce json
// @Param contactRequest body handlers.ContactRequest true "Contact message"
// @Success 200 {object} handlers.ContactResponse
// @Failure 400 {object} handlers.ErrorResponse
// @Failure 500 {object} handlers.ErrorResponse "Message delivery failed"
// @Router /contact [post]
func NewContactHandler(notifier ContactNotifier) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ContactRequest

		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if msg := validateContact(req); msg != "" {
			writeError(w, http.StatusBadRequest, msg)
			return
		}

		var b strings.Builder
		b.WriteString("New message from the website:\n\n")
		if req.Name != "" {
			fmt.Fprintf(&b, "Name: %s\n", html.EscapeString(req.Name))
		} else {
			b.WriteString("Name: not provided\n")
		}
		if req.Email != "" {
			fmt.Fprintf(&b, "Email: %s\n", html.EscapeString(req.Email))
		} else {
			b.WriteString("Email: not provided\n")
		}
		fmt.Fprintf(&b, "Phone: %s\n", phoneStripPattern.ReplaceAllString(req.Phone, ""))
		fmt.Fprintf(&b, "Message: %s\n", html.EscapeString(req.Message))

		if _, err := notifier.Send(r.Context(), b.String()); err != nil {
			logger.Log.Errorw("failed to send contact message", "err", err)
			writeError(w, http.StatusInternalServerError, "Failed to send message")
			return
		}

		writeJSON(w, http.StatusOK, ContactResponse{OK: true})
	}
}

func validateContact(req ContactRequest) string {
	if len(req.Name) > 50 {
		return "Name is too long"
	}
	if req.Email != "" {
		if _, err := mail.ParseAddress(req.Email); err != nil {
			return "Invalid email format"
		}
	}
	if !contactPhonePattern.MatchString(req.Phone) {
		return "Invalid phone format"
	}
	if len(req.Message) < 5 {
		return "Message is too short"
	}
	if len(req.Message) > 1000 {
		return "Message is too long"
	}
	return ""
}
