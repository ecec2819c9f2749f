package services_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/eleontev/flower-shop-api/internal/models"
	"github.com/eleontev/flower-shop-api/internal/repositories"
	"github.com/eleontev/flower-shop-api/internal/storage"
)

// newStores opens fresh file-backed repositories in a temp dir.
func newStores(t *testing.T) (*repositories.UserRepository, *repositories.CartRepository, *repositories.PasswordRepository) {
	t.Helper()

	dir := t.TempDir()

	userDoc, err := storage.Open[models.User](filepath.Join(dir, "users.json"))
	require.NoError(t, err)
	cartDoc, err := storage.Open[models.CartItem](filepath.Join(dir, "cart.json"))
	require.NoError(t, err)
	passwordDoc, err := storage.Open[string](filepath.Join(dir, "passwords.json"))
	require.NoError(t, err)

	return repositories.NewUserRepository(userDoc),
		repositories.NewCartRepository(cartDoc),
		repositories.NewPasswordRepository(passwordDoc)
}
