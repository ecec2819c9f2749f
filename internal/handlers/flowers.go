package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"regexp"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/eleontev/flower-shop-api/internal/logger"
	"github.com/eleontev/flower-shop-api/internal/models"
)

var flowerIDPattern = regexp.MustCompile(`^\d+$`)

// FlowerCataloger defines the catalog operations the /flowers handlers
// need.
type FlowerCataloger interface {
	GetAll(ctx context.Context) []models.Flower
	Get(ctx context.Context, id int) *models.Flower
	Rate(ctx context.Context, id int, stars int) (*models.Flower, error)
}

// NewListFlowersHandler returns the whole catalog.
// @Summary List flowers
// @Tags flowers
// @Produce json
// @Success 200 {array} models.Flower
// @Router /flowers [get]
func NewListFlowersHandler(catalog FlowerCataloger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, catalog.GetAll(r.Context()))
	}
}

// NewGetFlowerHandler returns one catalog entry.
// @Summary Get flower
// @Tags flowers
// @Produce json
// @Param id path int true "Flower id"
// @Success 200 {object} models.Flower
// @Failure 400 {object} handlers.ErrorResponse
// @Failure 404 {object} handlers.ErrorResponse
// @Router /flowers/{id} [get]
func NewGetFlowerHandler(catalog FlowerCataloger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := parseFlowerID(w, r)
		if !ok {
			return
		}

		flower := catalog.Get(r.Context(), id)
		if flower == nil {
			writeError(w, http.StatusNotFound, "Flower not found")
			return
		}
		writeJSON(w, http.StatusOK, flower)
	}
}

// RateFlowerRequest carries a 1..5 star rating.
// swagger:model RateFlowerRequest
type RateFlowerRequest struct {
	// Rating from 1 to 5
	// required: true
	Rating *int `json:"rating"`
}

// RateFlowerResponse returns the updated catalog entry.
// swagger:model RateFlowerResponse
type RateFlowerResponse struct {
	Success bool           `json:"success"`
	Flower  *models.Flower `json:"flower"`
}

// NewRateFlowerHandler folds a new rating into the flower's average.
// @Summary Rate flower
// @Tags flowers
// @Accept json
// @Produce json
// @Param id path int true "Flower id"
// @Param rateFlowerRequest body handlers.RateFlowerRequest true "Rating"
// @Success 200 {object} handlers.RateFlowerResponse
// @Failure 400 {object} handlers.ErrorResponse
// @Failure 404 {object} handlers.ErrorResponse
// @Router /flowers/{id} [patch]
func NewRateFlowerHandler(catalog FlowerCataloger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := parseFlowerID(w, r)
		if !ok {
			return
		}

		var req RateFlowerRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if req.Rating == nil || *req.Rating < 1 || *req.Rating > 5 {
			writeError(w, http.StatusBadRequest, "Rating must be a number from 1 to 5")
			return
		}

		flower, err := catalog.Rate(r.Context(), id, *req.Rating)
		if err != nil {
			logger.Log.Errorw("failed to update rating", "err", err)
			writeError(w, http.StatusInternalServerError, "Failed to update rating")
			return
		}
		if flower == nil {
			writeError(w, http.StatusNotFound, "Flower not found")
			return
		}

		writeJSON(w, http.StatusOK, RateFlowerResponse{Success: true, Flower: flower})
	}
}

func parseFlowerID(w http.ResponseWriter, r *http.Request) (int, bool) {
	raw := chi.URLParam(r, "id")
	if !flowerIDPattern.MatchString(raw) {
		writeError(w, http.StatusBadRequest, "Invalid ID format")
		return 0, false
	}
	id, _ := strconv.Atoi(raw)
	return id, true
}
