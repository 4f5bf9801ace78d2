package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akinalp/balikhane/models"
	"github.com/akinalp/balikhane/pkg"
)

func TestUserCreateAndGet(t *testing.T) {
	db := newTestDB(t)
	repo := NewSQLiteUserRepo(db.Conn)

	user := createTestUser(t, db, "+905551234567")
	assert.False(t, user.Joined.IsZero(), "joined should be filled from RETURNING")

	byID, err := repo.GetByID(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.Phone, byID.Phone)
	assert.Equal(t, models.UserStatusCreated, byID.Status)

	byPhone, err := repo.GetByPhone(context.Background(), "+905551234567")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byPhone.ID)

	_, err = repo.GetByID(context.Background(), "no-such-id")
	assert.True(t, errors.Is(err, pkg.ErrNotFound))
	_, err = repo.GetByPhone(context.Background(), "+900000000000")
	assert.True(t, errors.Is(err, pkg.ErrNotFound))
}

func TestUserCreateDuplicatePhone(t *testing.T) {
	db := newTestDB(t)
	repo := NewSQLiteUserRepo(db.Conn)

	createTestUser(t, db, "+905551234567")

	dup := &models.User{
		ID:           uuid.NewString(),
		Name:         "İkinci Hesap",
		Email:        "ikinci@example.com",
		Phone:        "+905551234567",
		PasswordHash: "hash",
		Status:       models.UserStatusCreated,
		Role:         models.RoleUser,
	}
	err := repo.Create(context.Background(), dup)
	require.Error(t, err)
	assert.True(t, errors.Is(err, pkg.ErrAlreadyExists))
}

func TestUserUpdatePassword(t *testing.T) {
	db := newTestDB(t)
	repo := NewSQLiteUserRepo(db.Conn)

	user := createTestUser(t, db, "+905551234567")

	require.NoError(t, repo.UpdatePassword(context.Background(), user.ID, "new-hash"))

	got, err := repo.GetByID(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, "new-hash", got.PasswordHash)

	err = repo.UpdatePassword(context.Background(), "no-such-id", "hash")
	assert.True(t, errors.Is(err, pkg.ErrNotFound))
}

func TestUserUpdateStatus(t *testing.T) {
	db := newTestDB(t)
	repo := NewSQLiteUserRepo(db.Conn)

	user := createTestUser(t, db, "+905551234567")

	require.NoError(t, repo.UpdateStatus(context.Background(), user.ID, models.UserStatusVerified))

	got, err := repo.GetByID(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, models.UserStatusVerified, got.Status)
}

func TestUserGetAllAndCount(t *testing.T) {
	db := newTestDB(t)
	repo := NewSQLiteUserRepo(db.Conn)

	createTestUser(t, db, "+905551234567")
	createTestUser(t, db, "+905557654321")

	users, err := repo.GetAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, users, 2)

	count, err := repo.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}
