package repositories

import (
	"context"
	"fmt"

	"umkami/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GORMWishlistRepository is a GORM implementation of WishlistRepository.
type GORMWishlistRepository struct {
	db *gorm.DB
}

// NewGORMWishlistRepository creates a new instance of GORMWishlistRepository.
func NewGORMWishlistRepository(db *gorm.DB) *GORMWishlistRepository {
	return &GORMWishlistRepository{
		db: db,
	}
}

// Add marks a business as saved by the user. Adding an entry that already
// exists is a no-op.
func (r *GORMWishlistRepository) Add(ctx context.Context, userID, umkmID string) error {
	entry := models.WishlistEntry{UserID: userID, UmkmID: umkmID}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&entry).Error
	if err != nil {
		return fmt.Errorf("failed to add umkm %s to wishlist of user %s: %w", umkmID, userID, err)
	}
	return nil
}

// Remove unsaves a business. Removing an absent entry is a no-op.
func (r *GORMWishlistRepository) Remove(ctx context.Context, userID, umkmID string) error {
	err := r.db.WithContext(ctx).Unscoped().
		Where("user_id = ? AND umkm_id = ?", userID, umkmID).
		Delete(&models.WishlistEntry{}).Error
	if err != nil {
		return fmt.Errorf("failed to remove umkm %s from wishlist of user %s: %w", umkmID, userID, err)
	}
	return nil
}

// List returns the IDs of all businesses the user has saved, oldest first.
func (r *GORMWishlistRepository) List(ctx context.Context, userID string) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).Model(&models.WishlistEntry{}).
		Where("user_id = ?", userID).Order("created_at ASC").
		Pluck("umkm_id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list wishlist of user %s: %w", userID, err)
	}
	return ids, nil
}

// Contains reports whether the user has saved the business.
func (r *GORMWishlistRepository) Contains(ctx context.Context, userID, umkmID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.WishlistEntry{}).
		Where("user_id = ? AND umkm_id = ?", userID, umkmID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check wishlist of user %s: %w", userID, err)
	}
	return count > 0, nil
}
