package services

import (
	"context"

	"github.com/eleontev/flower-shop-api/internal/logger"
	"github.com/eleontev/flower-shop-api/internal/models"
)

// UserDeleter removes a user record.
type UserDeleter interface {
	Delete(ctx context.Context, id string) (bool, error)
}

// CartClearer removes all cart items owned by a user.
type CartClearer interface {
	ClearForUser(ctx context.Context, userID string) error
}

// PasswordDeleter removes a user's password record.
type PasswordDeleter interface {
	Delete(ctx context.Context, userID string) error
}

// UserService handles profile reads, updates and account deletion.
type UserService struct {
	reader UserReader
	writer UserWriter
	users  UserDeleter
	cart   CartClearer
	pass   PasswordDeleter
}

// NewUserService creates a new UserService instance.
func NewUserService(reader UserReader, writer UserWriter, users UserDeleter, cart CartClearer, pass PasswordDeleter) *UserService {
	return &UserService{
		reader: reader,
		writer: writer,
		users:  users,
		cart:   cart,
		pass:   pass,
	}
}

// Get returns the user's profile.
func (svc *UserService) Get(ctx context.Context, id string) (*models.User, error) {
	user := svc.reader.Get(ctx, id)
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// Update merges the non-nil fields onto the user's profile. A changed
// email is re-checked for uniqueness.
func (svc *UserService) Update(ctx context.Context, id string, username, email *string) (*models.User, error) {
	user := svc.reader.Get(ctx, id)
	if user == nil {
		return nil, ErrUserNotFound
	}

	if username != nil {
		user.Username = *username
	}
	if email != nil && *email != user.Email {
		if existing := svc.reader.FindByEmail(ctx, *email); existing != nil {
			return nil, ErrEmailTaken
		}
		user.Email = *email
	}

	if err := svc.writer.Save(ctx, *user); err != nil {
		return nil, err
	}

	logger.Log.Infow("user profile updated", "user_id", id)
	return user, nil
}

// Delete removes the account with its cart items and password record. The
// three writes are an independent best-effort sequence, not a transaction.
func (svc *UserService) Delete(ctx context.Context, id string) error {
	if user := svc.reader.Get(ctx, id); user == nil {
		return ErrUserNotFound
	}

	if err := svc.cart.ClearForUser(ctx, id); err != nil {
		return err
	}
	if err := svc.pass.Delete(ctx, id); err != nil {
		return err
	}

	deleted, err := svc.users.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrUserNotFound
	}

	logger.Log.Infow("user deleted", "user_id", id)
	return nil
}
