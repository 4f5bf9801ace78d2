package repository

// Test helper'ları — her test gerçek bir SQLite dosyası üzerinde çalışır
// (t.TempDir, test bitince otomatik silinir). Fake yerine gerçek SQL:
// buradaki testlerin amacı SQL'in kendisini doğrulamaktır.

import (
	"context"
	"io/fs"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/akinalp/balikhane/database"
	"github.com/akinalp/balikhane/models"
)

// newTestDB, migration'ları uygulanmış geçici bir SQLite DB açar.
func newTestDB(t *testing.T) *database.DB {
	t.Helper()

	migrationsFS, err := fs.Sub(database.EmbeddedMigrations, "migrations")
	require.NoError(t, err)

	db, err := database.New(filepath.Join(t.TempDir(), "test.db"), migrationsFS)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return db
}

// createTestUser, FK constraint'leri için bir user satırı oluşturur.
func createTestUser(t *testing.T, db *database.DB, phone string) *models.User {
	t.Helper()

	repo := NewSQLiteUserRepo(db.Conn)
	user := &models.User{
		ID:           uuid.NewString(),
		Name:         "Test Kullanıcı",
		Email:        phone + "@example.com",
		Phone:        phone,
		PasswordHash: "$2a$10$fakefakefakefakefakefake",
		Status:       models.UserStatusCreated,
		Role:         models.RoleUser,
	}
	require.NoError(t, repo.Create(context.Background(), user))
	return user
}
