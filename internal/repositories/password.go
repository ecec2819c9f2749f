package repositories

import (
	"context"
	"crypto/sha512"
	"encoding/hex"

	"golang.org/x/crypto/pbkdf2"

	"github.com/eleontev/flower-shop-api/internal/logger"
	"github.com/eleontev/flower-shop-api/internal/storage"
)

// Digest parameters are fixed so existing passwords.json files keep
// verifying across deployments.
const (
	passwordSalt       = "salt"
	passwordIterations = 1000
	passwordKeyLength  = 64
)

// PasswordRepository stores one salted password digest per user id in
// passwords.json.
type PasswordRepository struct {
	doc *storage.Document[string]
}

func NewPasswordRepository(doc *storage.Document[string]) *PasswordRepository {
	return &PasswordRepository{doc: doc}
}

// Create stores the digest of plaintext for userID, overwriting any
// existing entry.
func (r *PasswordRepository) Create(ctx context.Context, userID, plaintext string) error {
	digest := hashPassword(plaintext)
	err := r.doc.Update(func(data map[string]string) {
		data[userID] = digest
	})
	if err != nil {
		logger.Log.Errorw("failed to save password", "user_id", userID, "error", err)
	}
	return err
}

// Update replaces the stored digest for userID.
func (r *PasswordRepository) Update(ctx context.Context, userID, plaintext string) error {
	return r.Create(ctx, userID, plaintext)
}

// Verify reports whether plaintext matches the stored digest for userID.
// Returns false when no record exists.
func (r *PasswordRepository) Verify(ctx context.Context, userID, plaintext string) bool {
	stored, ok := r.doc.Get(userID)
	if !ok {
		return false
	}
	return stored == hashPassword(plaintext)
}

// Delete removes the password record for userID.
func (r *PasswordRepository) Delete(ctx context.Context, userID string) error {
	err := r.doc.Update(func(data map[string]string) {
		delete(data, userID)
	})
	if err != nil {
		logger.Log.Errorw("failed to delete password", "user_id", userID, "error", err)
	}
	return err
}

func hashPassword(plaintext string) string {
	key := pbkdf2.Key([]byte(plaintext), []byte(passwordSalt), passwordIterations, passwordKeyLength, sha512.New)
	return hex.EncodeToString(key)
}
