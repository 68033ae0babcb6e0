package repositories

import (
	"context"
	"fmt"

	"umkami/internal/models"

	"gorm.io/gorm"
)

// GORMReviewRepository is a GORM implementation of ReviewRepository.
type GORMReviewRepository struct {
	db *gorm.DB
}

// NewGORMReviewRepository creates a new instance of GORMReviewRepository.
func NewGORMReviewRepository(db *gorm.DB) *GORMReviewRepository {
	return &GORMReviewRepository{
		db: db,
	}
}

// GetByUmkmID retrieves all reviews for a business, oldest first.
func (r *GORMReviewRepository) GetByUmkmID(ctx context.Context, umkmID string) ([]models.Review, error) {
	var reviews []models.Review
	if err := r.db.WithContext(ctx).Where("umkm_id = ?", umkmID).Find(&reviews).Error; err != nil {
		return nil, fmt.Errorf("failed to get reviews for umkm %s: %w", umkmID, err)
	}
	return reviews, nil
}

// Create persists a new review.
func (r *GORMReviewRepository) Create(ctx context.Context, review *models.Review) error {
	if err := r.db.WithContext(ctx).Create(review).Error; err != nil {
		return fmt.Errorf("failed to create review: %w", err)
	}
	return nil
}
