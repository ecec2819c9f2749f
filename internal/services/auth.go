package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/eleontev/flower-shop-api/internal/logger"
	"github.com/eleontev/flower-shop-api/internal/models"
)

var (
	ErrEmailTaken         = errors.New("email already in use")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserNotFound       = errors.New("user not found")
)

// UserReader defines read-only operations for users.
type UserReader interface {
	Get(ctx context.Context, id string) *models.User
	FindByEmail(ctx context.Context, email string) *models.User
}

// UserWriter defines write operations for users.
type UserWriter interface {
	Save(ctx context.Context, user models.User) error
}

// PasswordStore manages password digests keyed by user id.
type PasswordStore interface {
	Create(ctx context.Context, userID, plaintext string) error
	Verify(ctx context.Context, userID, plaintext string) bool
}

// AuthService handles registration and login.
type AuthService struct {
	reader    UserReader
	writer    UserWriter
	passwords PasswordStore
}

// NewAuthService creates a new AuthService instance.
func NewAuthService(reader UserReader, writer UserWriter, passwords PasswordStore) *AuthService {
	return &AuthService{
		reader:    reader,
		writer:    writer,
		passwords: passwords,
	}
}

// Register creates a new user and its password record. Fails with
// ErrEmailTaken when the email is already registered. The two writes are
// sequential and not atomic; a failed password write leaves the user
// record in place and surfaces the error.
func (svc *AuthService) Register(ctx context.Context, username, email, password string) (*models.User, error) {
	if existing := svc.reader.FindByEmail(ctx, email); existing != nil {
		logger.Log.Infow("registration rejected, email taken", "email", email)
		return nil, ErrEmailTaken
	}

	user := models.User{
		ID:        uuid.NewString(),
		Username:  username,
		Email:     email,
		CreatedAt: time.Now().UnixMilli(),
	}

	if err := svc.writer.Save(ctx, user); err != nil {
		return nil, err
	}
	if err := svc.passwords.Create(ctx, user.ID, password); err != nil {
		return nil, err
	}

	logger.Log.Infow("user registered", "user_id", user.ID)
	return &user, nil
}

// Login authenticates a user by email and password and returns the user.
// A missing user and a wrong password are indistinguishable to the caller.
func (svc *AuthService) Login(ctx context.Context, email, password string) (*models.User, error) {
	user := svc.reader.FindByEmail(ctx, email)
	if user == nil || !svc.passwords.Verify(ctx, user.ID, password) {
		logger.Log.Infow("login rejected", "email", email)
		return nil, ErrInvalidCredentials
	}

	logger.Log.Infow("user logged in", "user_id", user.ID)
	return user, nil
}
