package repositories

import (
	"context"

	"umkami/internal/models"
)

// OrderRepository defines the interface for order data access. Orders are
// append-only history: there is no update or delete.
type OrderRepository interface {
	Create(ctx context.Context, order *models.Order) error
	GetByID(ctx context.Context, id string) (*models.Order, error)
	GetByUserID(ctx context.Context, userID string) ([]models.Order, error)
}
