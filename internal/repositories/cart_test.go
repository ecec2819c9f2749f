package repositories_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eleontev/flower-shop-api/internal/models"
	"github.com/eleontev/flower-shop-api/internal/repositories"
	"github.com/eleontev/flower-shop-api/internal/storage"
)

func newCartRepo(t *testing.T) *repositories.CartRepository {
	t.Helper()

	doc, err := storage.Open[models.CartItem](filepath.Join(t.TempDir(), "cart.json"))
	require.NoError(t, err)
	return repositories.NewCartRepository(doc)
}

func TestCartRepository_AddItem_Dedup(t *testing.T) {
	repo := newCartRepo(t)
	ctx := context.Background()

	first, err := repo.AddItem(ctx, "u1", "p1", "Rose", 10, "rose.jpg", 2)
	require.NoError(t, err)
	assert.Equal(t, 2, first.Count)

	// Same (user, product): count is incremented, image refreshed, no new row
	second, err := repo.AddItem(ctx, "u1", "p1", "Rose", 10, "rose-v2.jpg", 3)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 5, second.Count)
	assert.Equal(t, "rose-v2.jpg", second.Image)

	items := repo.GetAllForUser(ctx, "u1")
	require.Len(t, items, 1)
	assert.Equal(t, 5, items[0].Count)

	// Same product for a different user creates its own item
	other, err := repo.AddItem(ctx, "u2", "p1", "Rose", 10, "rose.jpg", 1)
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, other.ID)
}

func TestCartRepository_GetAllForUser_NewestFirst(t *testing.T) {
	repo := newCartRepo(t)
	ctx := context.Background()

	_, err := repo.AddItem(ctx, "u1", "p1", "Rose", 10, "rose.jpg", 1)
	require.NoError(t, err)
	time.Sleep(2 * time.Millisecond)
	_, err = repo.AddItem(ctx, "u1", "p2", "Tulip", 5, "tulip.jpg", 1)
	require.NoError(t, err)

	items := repo.GetAllForUser(ctx, "u1")
	require.Len(t, items, 2)
	assert.Equal(t, "p2", items[0].ProductID)
	assert.Equal(t, "p1", items[1].ProductID)
}

func TestCartRepository_UpdateCount(t *testing.T) {
	repo := newCartRepo(t)
	ctx := context.Background()

	item, err := repo.AddItem(ctx, "u1", "p1", "Rose", 10, "rose.jpg", 2)
	require.NoError(t, err)

	ok, err := repo.UpdateCount(ctx, item.ID, 7)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 7, repo.GetOne(ctx, item.ID).Count)

	// Zero removes the item entirely
	ok, err = repo.UpdateCount(ctx, item.ID, 0)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Nil(t, repo.GetOne(ctx, item.ID))

	ok, err = repo.UpdateCount(ctx, "missing", 3)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCartRepository_RemoveItem(t *testing.T) {
	repo := newCartRepo(t)
	ctx := context.Background()

	item, err := repo.AddItem(ctx, "u1", "p1", "Rose", 10, "rose.jpg", 1)
	require.NoError(t, err)

	ok, err := repo.RemoveItem(ctx, item.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.RemoveItem(ctx, item.ID)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCartRepository_ClearForUser(t *testing.T) {
	repo := newCartRepo(t)
	ctx := context.Background()

	_, err := repo.AddItem(ctx, "u1", "p1", "Rose", 10, "rose.jpg", 1)
	require.NoError(t, err)
	_, err = repo.AddItem(ctx, "u1", "p2", "Tulip", 5, "tulip.jpg", 1)
	require.NoError(t, err)
	_, err = repo.AddItem(ctx, "u2", "p1", "Rose", 10, "rose.jpg", 1)
	require.NoError(t, err)

	require.NoError(t, repo.ClearForUser(ctx, "u1"))
	assert.Empty(t, repo.GetAllForUser(ctx, "u1"))
	assert.Len(t, repo.GetAllForUser(ctx, "u2"), 1)

	// Idempotent
	require.NoError(t, repo.ClearForUser(ctx, "u1"))
}

func TestCartRepository_Aggregates(t *testing.T) {
	repo := newCartRepo(t)
	ctx := context.Background()

	assert.Zero(t, repo.TotalForUser(ctx, "u1"))
	assert.Zero(t, repo.CountForUser(ctx, "u1"))

	_, err := repo.AddItem(ctx, "u1", "p1", "Rose", 10, "rose.jpg", 2)
	require.NoError(t, err)
	_, err = repo.AddItem(ctx, "u1", "p2", "Tulip", 5.5, "tulip.jpg", 3)
	require.NoError(t, err)

	assert.InDelta(t, 10*2+5.5*3, repo.TotalForUser(ctx, "u1"), 1e-9)
	assert.Equal(t, 5, repo.CountForUser(ctx, "u1"))
}
