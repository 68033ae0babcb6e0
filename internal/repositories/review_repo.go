package repositories

import (
	"context"

	"umkami/internal/models"
)

// ReviewRepository defines the interface for review data access.
type ReviewRepository interface {
	GetByUmkmID(ctx context.Context, umkmID string) ([]models.Review, error)
	Create(ctx context.Context, review *models.Review) error
}
