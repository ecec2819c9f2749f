package repositories

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/eleontev/flower-shop-api/internal/logger"
	"github.com/eleontev/flower-shop-api/internal/models"
	"github.com/eleontev/flower-shop-api/internal/storage"
)

// CartRepository provides access to cart line items in cart.json.
type CartRepository struct {
	doc *storage.Document[models.CartItem]
}

func NewCartRepository(doc *storage.Document[models.CartItem]) *CartRepository {
	return &CartRepository{doc: doc}
}

// GetOne returns the item with the given id, or nil when absent.
func (r *CartRepository) GetOne(ctx context.Context, itemID string) *models.CartItem {
	item, ok := r.doc.Get(itemID)
	if !ok {
		return nil
	}
	return &item
}

// GetAllForUser returns the user's items, newest first.
func (r *CartRepository) GetAllForUser(ctx context.Context, userID string) []models.CartItem {
	items := make([]models.CartItem, 0)
	for _, item := range r.doc.GetAll() {
		if item.UserID == userID {
			items = append(items, item)
		}
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].CreatedAt > items[j].CreatedAt
	})
	return items
}

// AddItem adds count units of a product to the user's cart. When an item
// for the same (user, product) pair already exists its count is incremented
// and its image refreshed instead of creating a second row.
func (r *CartRepository) AddItem(ctx context.Context, userID, productID, name string, price float64, image string, count int) (*models.CartItem, error) {
	existing, ok := r.doc.Find(func(it models.CartItem) bool {
		return it.UserID == userID && it.ProductID == productID
	})
	if ok {
		existing.Count += count
		existing.Image = image

		err := r.doc.Update(func(data map[string]models.CartItem) {
			data[existing.ID] = existing
		})
		if err != nil {
			logger.Log.Errorw("failed to update cart item", "item_id", existing.ID, "error", err)
			return nil, err
		}
		return &existing, nil
	}

	item := models.CartItem{
		ID:        uuid.NewString(),
		UserID:    userID,
		ProductID: productID,
		Name:      name,
		Price:     price,
		Image:     image,
		Count:     count,
		CreatedAt: time.Now().UnixMilli(),
	}

	err := r.doc.Update(func(data map[string]models.CartItem) {
		data[item.ID] = item
	})
	if err != nil {
		logger.Log.Errorw("failed to add cart item", "user_id", userID, "product_id", productID, "error", err)
		return nil, err
	}
	return &item, nil
}

// UpdateCount sets the item's count. A count of zero or less removes the
// item entirely. Returns false when no such item exists.
func (r *CartRepository) UpdateCount(ctx context.Context, itemID string, count int) (bool, error) {
	if _, ok := r.doc.Get(itemID); !ok {
		return false, nil
	}

	if count <= 0 {
		return r.RemoveItem(ctx, itemID)
	}

	err := r.doc.Update(func(data map[string]models.CartItem) {
		if item, ok := data[itemID]; ok {
			item.Count = count
			data[itemID] = item
		}
	})
	if err != nil {
		logger.Log.Errorw("failed to update cart item count", "item_id", itemID, "error", err)
		return false, err
	}
	return true, nil
}

// RemoveItem deletes the item. Returns false when no such item exists.
func (r *CartRepository) RemoveItem(ctx context.Context, itemID string) (bool, error) {
	if _, ok := r.doc.Get(itemID); !ok {
		return false, nil
	}

	err := r.doc.Update(func(data map[string]models.CartItem) {
		delete(data, itemID)
	})
	if err != nil {
		logger.Log.Errorw("failed to remove cart item", "item_id", itemID, "error", err)
		return false, err
	}
	return true, nil
}

// ClearForUser removes every item owned by the user. Idempotent.
func (r *CartRepository) ClearForUser(ctx context.Context, userID string) error {
	err := r.doc.Update(func(data map[string]models.CartItem) {
		for id, item := range data {
			if item.UserID == userID {
				delete(data, id)
			}
		}
	})
	if err != nil {
		logger.Log.Errorw("failed to clear cart", "user_id", userID, "error", err)
	}
	return err
}

// TotalForUser returns the sum of price*count over the user's items.
func (r *CartRepository) TotalForUser(ctx context.Context, userID string) float64 {
	var total float64
	for _, item := range r.GetAllForUser(ctx, userID) {
		total += item.Price * float64(item.Count)
	}
	return total
}

// CountForUser returns the sum of counts over the user's items.
func (r *CartRepository) CountForUser(ctx context.Context, userID string) int {
	var count int
	for _, item := range r.GetAllForUser(ctx, userID) {
		count += item.Count
	}
	return count
}
