package services

import (
	"context"
	"errors"

	"github.com/eleontev/flower-shop-api/internal/logger"
	"github.com/eleontev/flower-shop-api/internal/models"
)

var ErrSelfDelete = errors.New("admins cannot delete their own account")

// UserLister returns all user records.
type UserLister interface {
	GetAll(ctx context.Context) []models.User
}

// CartAggregator exposes per-user cart aggregates.
type CartAggregator interface {
	TotalForUser(ctx context.Context, userID string) float64
	CountForUser(ctx context.Context, userID string) int
}

// AccountDeleter cascades an account deletion (cart, password, user).
type AccountDeleter interface {
	Delete(ctx context.Context, id string) error
}

// UserWithStats is a user record enriched with cart aggregates for the
// admin panel.
type UserWithStats struct {
	models.User
	CartItemsCount int     `json:"cartItemsCount"`
	CartTotal      float64 `json:"cartTotal"`
}

// AdminService implements the admin panel capability: it layers an email
// allow-list on top of resolved identities.
type AdminService struct {
	reader   UserReader
	lister   UserLister
	cart     CartAggregator
	accounts AccountDeleter
	emails   map[string]struct{}
}

// NewAdminService creates a new AdminService. allowedEmails is the
// configured admin allow-list.
func NewAdminService(reader UserReader, lister UserLister, cart CartAggregator, accounts AccountDeleter, allowedEmails []string) *AdminService {
	emails := make(map[string]struct{}, len(allowedEmails))
	for _, e := range allowedEmails {
		emails[e] = struct{}{}
	}
	return &AdminService{
		reader:   reader,
		lister:   lister,
		cart:     cart,
		accounts: accounts,
		emails:   emails,
	}
}

// Check returns the user when the identity belongs to the admin
// allow-list, nil otherwise (including unknown user ids).
func (svc *AdminService) Check(ctx context.Context, userID string) *models.User {
	user := svc.reader.Get(ctx, userID)
	if user == nil {
		return nil
	}
	if _, ok := svc.emails[user.Email]; !ok {
		return nil
	}
	return user
}

// ListUsers returns every user with its cart aggregates.
func (svc *AdminService) ListUsers(ctx context.Context) []UserWithStats {
	users := svc.lister.GetAll(ctx)

	out := make([]UserWithStats, 0, len(users))
	for _, user := range users {
		out = append(out, UserWithStats{
			User:           user,
			CartItemsCount: svc.cart.CountForUser(ctx, user.ID),
			CartTotal:      svc.cart.TotalForUser(ctx, user.ID),
		})
	}
	return out
}

// DeleteUser cascades the deletion of another user's account. Admins may
// not delete themselves.
func (svc *AdminService) DeleteUser(ctx context.Context, adminID, targetID string) (*models.User, error) {
	if targetID == adminID {
		return nil, ErrSelfDelete
	}

	user := svc.reader.Get(ctx, targetID)
	if user == nil {
		return nil, ErrUserNotFound
	}

	if err := svc.accounts.Delete(ctx, targetID); err != nil {
		return nil, err
	}

	logger.Log.Infow("user deleted by admin", "admin_id", adminID, "user_id", targetID)
	return user, nil
}
