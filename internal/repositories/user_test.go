package repositories_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eleontev/flower-shop-api/internal/models"
	"github.com/eleontev/flower-shop-api/internal/repositories"
	"github.com/eleontev/flower-shop-api/internal/storage"
)

func newUserRepo(t *testing.T) *repositories.UserRepository {
	t.Helper()

	doc, err := storage.Open[models.User](filepath.Join(t.TempDir(), "users.json"))
	require.NoError(t, err)
	return repositories.NewUserRepository(doc)
}

func TestUserRepository_SaveAndGet(t *testing.T) {
	repo := newUserRepo(t)
	ctx := context.Background()

	user := models.User{ID: "u1", Username: "alice", Email: "alice@example.com", CreatedAt: 1000}
	require.NoError(t, repo.Save(ctx, user))

	got := repo.Get(ctx, "u1")
	require.NotNil(t, got)
	assert.Equal(t, user, *got)

	assert.Nil(t, repo.Get(ctx, "missing"))
}

func TestUserRepository_FindByEmail(t *testing.T) {
	repo := newUserRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, models.User{ID: "u1", Username: "alice", Email: "alice@example.com"}))
	require.NoError(t, repo.Save(ctx, models.User{ID: "u2", Username: "bob", Email: "bob@example.com"}))

	got := repo.FindByEmail(ctx, "bob@example.com")
	require.NotNil(t, got)
	assert.Equal(t, "u2", got.ID)

	// Exact, case-sensitive match
	assert.Nil(t, repo.FindByEmail(ctx, "BOB@example.com"))
	assert.Nil(t, repo.FindByEmail(ctx, "carol@example.com"))
}

func TestUserRepository_Delete(t *testing.T) {
	repo := newUserRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, models.User{ID: "u1", Email: "alice@example.com"}))

	found, err := repo.Delete(ctx, "u1")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Nil(t, repo.Get(ctx, "u1"))

	found, err = repo.Delete(ctx, "u1")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestUserRepository_GetAll(t *testing.T) {
	repo := newUserRepo(t)
	ctx := context.Background()

	assert.Empty(t, repo.GetAll(ctx))

	require.NoError(t, repo.Save(ctx, models.User{ID: "u1", Email: "a@example.com"}))
	require.NoError(t, repo.Save(ctx, models.User{ID: "u2", Email: "b@example.com"}))

	assert.Len(t, repo.GetAll(ctx), 2)
}
