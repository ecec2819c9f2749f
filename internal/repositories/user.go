package repositories

import (
	"context"

	"github.com/eleontev/flower-shop-api/internal/logger"
	"github.com/eleontev/flower-shop-api/internal/models"
	"github.com/eleontev/flower-shop-api/internal/storage"
)

// UserRepository provides access to user records in users.json.
type UserRepository struct {
	doc *storage.Document[models.User]
}

func NewUserRepository(doc *storage.Document[models.User]) *UserRepository {
	return &UserRepository{doc: doc}
}

// Get returns the user with the given id, or nil when absent.
func (r *UserRepository) Get(ctx context.Context, id string) *models.User {
	user, ok := r.doc.Get(id)
	if !ok {
		return nil
	}
	return &user
}

// GetAll returns all users in storage-iteration order.
func (r *UserRepository) GetAll(ctx context.Context) []models.User {
	return r.doc.GetAll()
}

// FindByEmail returns the user with the given email (exact, case-sensitive
// match), or nil when absent.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) *models.User {
	user, ok := r.doc.Find(func(u models.User) bool { return u.Email == email })
	if !ok {
		return nil
	}
	return &user
}

// Save stores the user, overwriting any record with the same id.
func (r *UserRepository) Save(ctx context.Context, user models.User) error {
	err := r.doc.Update(func(data map[string]models.User) {
		data[user.ID] = user
	})
	if err != nil {
		logger.Log.Errorw("failed to save user", "user_id", user.ID, "error", err)
	}
	return err
}

// Delete removes the user with the given id. Returns false when no such
// user exists.
func (r *UserRepository) Delete(ctx context.Context, id string) (bool, error) {
	if _, ok := r.doc.Get(id); !ok {
		return false, nil
	}

	err := r.doc.Update(func(data map[string]models.User) {
		delete(data, id)
	})
	if err != nil {
		logger.Log.Errorw("failed to delete user", "user_id", id, "error", err)
		return false, err
	}
	return true, nil
}
