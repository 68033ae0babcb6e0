package repositories_test

import (
	"context"
	"testing"

	"umkami/internal/models"
	"umkami/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.WishlistEntry{}))

	// Keep every query on one connection; an in-memory sqlite database
	// exists per connection.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	return db
}

func TestGORMUserRepository_AdjustBalance(t *testing.T) {
	db := openTestDB(t)
	repo := repositories.NewGORMUserRepository(db)
	ctx := context.Background()

	user := &models.User{
		Email:       "budi@example.com",
		DisplayName: "Budi",
		Role:        models.RoleCustomer,
		Balance:     20000,
	}
	require.NoError(t, repo.Create(ctx, user))

	// Deduction within the balance succeeds.
	require.NoError(t, repo.AdjustBalance(ctx, user.UID, -15000))
	got, err := repo.GetByID(ctx, user.UID)
	require.NoError(t, err)
	assert.Equal(t, int64(5000), got.Balance)

	// Deducting exactly to zero is allowed.
	require.NoError(t, repo.AdjustBalance(ctx, user.UID, -5000))
	got, _ = repo.GetByID(ctx, user.UID)
	assert.Equal(t, int64(0), got.Balance)

	// A deduction past zero aborts and leaves the balance untouched.
	err = repo.AdjustBalance(ctx, user.UID, -1)
	assert.ErrorIs(t, err, repositories.ErrInsufficientBalance)
	got, _ = repo.GetByID(ctx, user.UID)
	assert.Equal(t, int64(0), got.Balance)

	// Top-ups always satisfy the invariant.
	require.NoError(t, repo.AdjustBalance(ctx, user.UID, 30000))
	got, _ = repo.GetByID(ctx, user.UID)
	assert.Equal(t, int64(30000), got.Balance)

	// A missing user is reported as not found, not as insufficient balance.
	err = repo.AdjustBalance(ctx, "no-such-uid", -100)
	require.Error(t, err)
	assert.NotErrorIs(t, err, repositories.ErrInsufficientBalance)
	assert.Contains(t, err.Error(), "not found")
}

func TestGORMWishlistRepository_Idempotency(t *testing.T) {
	db := openTestDB(t)
	repo := repositories.NewGORMWishlistRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Add(ctx, "user-1", "umkm-1"))
	require.NoError(t, repo.Add(ctx, "user-1", "umkm-1")) // duplicate is a no-op
	require.NoError(t, repo.Add(ctx, "user-1", "umkm-2"))

	ids, err := repo.List(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"umkm-1", "umkm-2"}, ids)

	wishlisted, err := repo.Contains(ctx, "user-1", "umkm-1")
	require.NoError(t, err)
	assert.True(t, wishlisted)

	require.NoError(t, repo.Remove(ctx, "user-1", "umkm-1"))
	require.NoError(t, repo.Remove(ctx, "user-1", "umkm-1")) // absent is a no-op

	wishlisted, err = repo.Contains(ctx, "user-1", "umkm-1")
	require.NoError(t, err)
	assert.False(t, wishlisted)
}
