package repositories

import (
	"context"
	"sort"
	"strconv"

	"github.com/eleontev/flower-shop-api/internal/logger"
	"github.com/eleontev/flower-shop-api/internal/models"
	"github.com/eleontev/flower-shop-api/internal/storage"
)

// FlowerRepository provides access to the product catalog in flowers.json.
type FlowerRepository struct {
	doc *storage.Document[models.Flower]
}

func NewFlowerRepository(doc *storage.Document[models.Flower]) *FlowerRepository {
	return &FlowerRepository{doc: doc}
}

// GetAll returns the catalog sorted by id.
func (r *FlowerRepository) GetAll(ctx context.Context) []models.Flower {
	flowers := r.doc.GetAll()
	sort.Slice(flowers, func(i, j int) bool {
		return flowers[i].ID < flowers[j].ID
	})
	return flowers
}

// Get returns the flower with the given id, or nil when absent.
func (r *FlowerRepository) Get(ctx context.Context, id int) *models.Flower {
	flower, ok := r.doc.Get(strconv.Itoa(id))
	if !ok {
		return nil
	}
	return &flower
}

// Rate folds a new 1..5 rating into the flower's running average and
// returns the updated record, or nil when no such flower exists.
func (r *FlowerRepository) Rate(ctx context.Context, id int, stars int) (*models.Flower, error) {
	key := strconv.Itoa(id)

	flower, ok := r.doc.Get(key)
	if !ok {
		return nil, nil
	}

	flower.Rating = (flower.Rating*float64(flower.RatingCount) + float64(stars)) / float64(flower.RatingCount+1)
	flower.RatingCount++

	err := r.doc.Update(func(data map[string]models.Flower) {
		data[key] = flower
	})
	if err != nil {
		logger.Log.Errorw("failed to save flower rating", "flower_id", id, "error", err)
		return nil, err
	}
	return &flower, nil
}
