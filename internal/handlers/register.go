package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/mail"

	"github.com/eleontev/flower-shop-api/internal/logger"
	"github.com/eleontev/flower-shop-api/internal/models"
	"github.com/eleontev/flower-shop-api/internal/services"
)

// Registerer defines the interface that the service must implement.
type Registerer interface {
	Register(ctx context.Context, username, email, password string) (*models.User, error)
}

// CookieIssuer attaches an identity cookie to the response and returns the
// issued token.
type CookieIssuer interface {
	SetAuthCookie(ctx context.Context, w http.ResponseWriter, userID string) (string, error)
}

// RegisterRequest represents the JSON body for user registration
// swagger:model RegisterRequest
type RegisterRequest struct {
	// Username, at least 3 characters
	// required: true
	Username string `json:"username"`

	// Email, must be unique
	// required: true
	Email string `json:"email"`

	// Password, at least 6 characters
	// required: true
	Password string `json:"password"`
}

// RegisterResponse represents a successful registration response
// swagger:model RegisterResponse
type RegisterResponse struct {
	User  UserResponse `json:"user"`
	Token string       `json:"token"`
}

// NewRegisterHandler returns an HTTP handler for user registration.
// @Summary Register a new user
// @Description Creates a new account, stores the password digest and sets the auth cookie.
// @Tags auth
// @Accept json
// @Produce json
// @Param registerRequest body handlers.RegisterRequest true "User registration request"
// @Success 201 {object} handlers.RegisterResponse "User successfully registered"
// @Failure 400 {object} handlers.ErrorResponse "Invalid request body"
// @Failure 409 {object} handlers.ErrorResponse "Email already in use"
// @Router /auth/register [post]
func NewRegisterHandler(svc Registerer, cookies CookieIssuer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req RegisterRequest

		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if msg := validateRegister(req); msg != "" {
			writeError(w, http.StatusBadRequest, msg)
			return
		}

		user, err := svc.Register(r.Context(), req.Username, req.Email, req.Password)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrEmailTaken):
				writeError(w, http.StatusConflict, "This email is already taken")
			default:
				logger.Log.Errorw("internal server error", "err", err)
				writeError(w, http.StatusInternalServerError, "Internal server error")
			}
			return
		}

		token, err := cookies.SetAuthCookie(r.Context(), w, user.ID)
		if err != nil {
			logger.Log.Errorw("failed to issue token", "err", err)
			writeError(w, http.StatusInternalServerError, "Internal server error")
			return
		}

		writeJSON(w, http.StatusCreated, RegisterResponse{
			User: UserResponse{
				ID:       user.ID,
				Username: user.Username,
				Email:    user.Email,
			},
			Token: token,
		})
	}
}

func validateRegister(req RegisterRequest) string {
	if len(req.Username) < 3 {
		return "Username must be at least 3 characters"
	}
	if _, err := mail.ParseAddress(req.Email); err != nil {
		return "Invalid email format"
	}
	if len(req.Password) < 6 {
		return "Password must be at least 6 characters"
	}
	return ""
}
