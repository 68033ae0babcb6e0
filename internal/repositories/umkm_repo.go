package repositories

import (
	"context"

	"umkami/internal/models"
)

// UmkmRepository defines the interface for business directory data access.
// Save creates the record when the ID is blank and replaces it otherwise;
// ReplaceMenu and ReplaceServices swap the business's full item lists, which
// is how the owner dashboard submits edits.
type UmkmRepository interface {
	GetAll(ctx context.Context) ([]models.Umkm, error)
	GetByID(ctx context.Context, id string) (*models.Umkm, error)
	Search(ctx context.Context, query, category string) ([]models.Umkm, error)
	Save(ctx context.Context, umkm *models.Umkm) error
	GetMenu(ctx context.Context, umkmID string) ([]models.MenuItem, error)
	GetServices(ctx context.Context, umkmID string) ([]models.ServiceItem, error)
	ReplaceMenu(ctx context.Context, umkmID string, items []models.MenuItem) error
	ReplaceServices(ctx context.Context, umkmID string, items []models.ServiceItem) error
}
