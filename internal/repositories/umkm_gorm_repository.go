package repositories

import (
	"context"
	"fmt"
	"strings"

	"umkami/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMUmkmRepository is a GORM implementation of UmkmRepository.
type GORMUmkmRepository struct {
	db *gorm.DB
}

// NewGORMUmkmRepository creates a new instance of GORMUmkmRepository.
func NewGORMUmkmRepository(db *gorm.DB) *GORMUmkmRepository {
	return &GORMUmkmRepository{
		db: db,
	}
}

// GetAll retrieves every listed business.
func (r *GORMUmkmRepository) GetAll(ctx context.Context) ([]models.Umkm, error) {
	var list []models.Umkm
	if err := r.db.WithContext(ctx).Find(&list).Error; err != nil {
		return nil, fmt.Errorf("failed to get all umkm: %w", err)
	}
	return list, nil
}

// GetByID retrieves a single business by its ID.
func (r *GORMUmkmRepository) GetByID(ctx context.Context, id string) (*models.Umkm, error) {
	var umkm models.Umkm
	if err := r.db.WithContext(ctx).First(&umkm, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("umkm with ID %s not found", id)
		}
		return nil, fmt.Errorf("failed to get umkm by ID %s: %w", id, err)
	}
	return &umkm, nil
}

// Search filters businesses by a case-insensitive name substring and an
// exact category. Either filter may be blank to skip it.
func (r *GORMUmkmRepository) Search(ctx context.Context, query, category string) ([]models.Umkm, error) {
	tx := r.db.WithContext(ctx)
	if query != "" {
		tx = tx.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(query)+"%")
	}
	if category != "" {
		tx = tx.Where("category = ?", category)
	}

	var list []models.Umkm
	if err := tx.Find(&list).Error; err != nil {
		return nil, fmt.Errorf("failed to search umkm: %w", err)
	}
	return list, nil
}

// Save creates the business when its ID is blank, otherwise replaces the
// stored record.
func (r *GORMUmkmRepository) Save(ctx context.Context, umkm *models.Umkm) error {
	if umkm.ID == "" {
		umkm.ID = uuid.New().String()
		if err := r.db.WithContext(ctx).Create(umkm).Error; err != nil {
			return fmt.Errorf("failed to create umkm: %w", err)
		}
		return nil
	}

	res := r.db.WithContext(ctx).Save(umkm)
	if res.Error != nil {
		return fmt.Errorf("failed to save umkm: %w", res.Error)
	}
	return nil
}

// GetMenu retrieves the business's menu items.
func (r *GORMUmkmRepository) GetMenu(ctx context.Context, umkmID string) ([]models.MenuItem, error) {
	var items []models.MenuItem
	if err := r.db.WithContext(ctx).Where("umkm_id = ?", umkmID).Find(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to get menu for umkm %s: %w", umkmID, err)
	}
	return items, nil
}

// GetServices retrieves the business's service items.
func (r *GORMUmkmRepository) GetServices(ctx context.Context, umkmID string) ([]models.ServiceItem, error) {
	var items []models.ServiceItem
	if err := r.db.WithContext(ctx).Where("umkm_id = ?", umkmID).Find(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to get services for umkm %s: %w", umkmID, err)
	}
	return items, nil
}

// ReplaceMenu swaps the business's menu for the given items in one
// transaction, so readers never observe a half-replaced menu.
func (r *GORMUmkmRepository) ReplaceMenu(ctx context.Context, umkmID string, items []models.MenuItem) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Where("umkm_id = ?", umkmID).Delete(&models.MenuItem{}).Error; err != nil {
			return err
		}
		for i := range items {
			items[i].UmkmID = umkmID
			items[i].ID = 0
			if err := tx.Create(&items[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to replace menu for umkm %s: %w", umkmID, err)
	}
	return nil
}

// ReplaceServices swaps the business's service list, same shape as ReplaceMenu.
func (r *GORMUmkmRepository) ReplaceServices(ctx context.Context, umkmID string, items []models.ServiceItem) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Where("umkm_id = ?", umkmID).Delete(&models.ServiceItem{}).Error; err != nil {
			return err
		}
		for i := range items {
			items[i].UmkmID = umkmID
			items[i].ID = 0
			if err := tx.Create(&items[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to replace services for umkm %s: %w", umkmID, err)
	}
	return nil
}
