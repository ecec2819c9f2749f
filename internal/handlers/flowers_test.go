package handlers_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eleontev/flower-shop-api/internal/handlers"
	"github.com/eleontev/flower-shop-api/internal/models"
)

func TestListFlowersHandler(t *testing.T) {
	srv := newTestServer(t)

	rec := srv.do(t, http.MethodGet, "/flowers/", "", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var flowers []models.Flower
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &flowers))
	require.Len(t, flowers, 2)
	assert.Equal(t, "Rose", flowers[0].Name)
	assert.Equal(t, "Tulip", flowers[1].Name)
}

func TestGetFlowerHandler(t *testing.T) {
	srv := newTestServer(t)

	rec := srv.do(t, http.MethodGet, "/flowers/1", "", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var flower models.Flower
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &flower))
	assert.Equal(t, "Rose", flower.Name)

	rec = srv.do(t, http.MethodGet, "/flowers/99", "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"Flower not found"}`, rec.Body.String())

	rec = srv.do(t, http.MethodGet, "/flowers/abc", "", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"Invalid ID format"}`, rec.Body.String())
}

func TestRateFlowerHandler(t *testing.T) {
	srv := newTestServer(t)

	// Rose starts at 4.0 with one vote; a 2 brings the average to 3.0
	rec := srv.do(t, http.MethodPatch, "/flowers/1", "", `{"rating":2}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp handlers.RateFlowerResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	require.NotNil(t, resp.Flower)
	assert.InDelta(t, 3.0, resp.Flower.Rating, 1e-9)
	assert.Equal(t, 2, resp.Flower.RatingCount)

	rec = srv.do(t, http.MethodPatch, "/flowers/99", "", `{"rating":5}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	for _, body := range []string{`{}`, `{"rating":0}`, `{"rating":6}`} {
		rec = srv.do(t, http.MethodPatch, "/flowers/1", "", body)
		assert.Equal(t, http.StatusBadRequest, rec.Code, body)
		assert.JSONEq(t, `{"error":"Rating must be a number from 1 to 5"}`, rec.Body.String())
	}
}
