package repositories

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"umkami/internal/models"

	"github.com/google/uuid"
)

// MockUmkmRepository is an in-memory implementation of UmkmRepository.
type MockUmkmRepository struct {
	umkm     map[string]models.Umkm
	menus    map[string][]models.MenuItem
	services map[string][]models.ServiceItem
	order    []string // insertion order of umkm IDs
	mu       sync.RWMutex
}

// NewMockUmkmRepository creates a new instance of MockUmkmRepository.
func NewMockUmkmRepository() *MockUmkmRepository {
	return &MockUmkmRepository{
		umkm:     make(map[string]models.Umkm),
		menus:    make(map[string][]models.MenuItem),
		services: make(map[string][]models.ServiceItem),
	}
}

// GetAll returns all businesses in insertion order.
func (r *MockUmkmRepository) GetAll(ctx context.Context) ([]models.Umkm, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	list := make([]models.Umkm, 0, len(r.umkm))
	for _, id := range r.order {
		list = append(list, r.umkm[id])
	}
	return list, nil
}

// GetByID returns a business by its ID.
func (r *MockUmkmRepository) GetByID(ctx context.Context, id string) (*models.Umkm, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	umkm, ok := r.umkm[id]
	if !ok {
		return nil, fmt.Errorf("umkm with ID %s not found", id)
	}
	return &umkm, nil
}

// Search filters like the GORM version: name substring plus exact category.
func (r *MockUmkmRepository) Search(ctx context.Context, query, category string) ([]models.Umkm, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	q := strings.ToLower(query)
	var list []models.Umkm
	for _, id := range r.order {
		u := r.umkm[id]
		if q != "" && !strings.Contains(strings.ToLower(u.Name), q) {
			continue
		}
		if category != "" && u.Category != category {
			continue
		}
		list = append(list, u)
	}
	return list, nil
}

// Save creates or replaces a business.
func (r *MockUmkmRepository) Save(ctx context.Context, umkm *models.Umkm) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if umkm.ID == "" {
		umkm.ID = uuid.New().String()
	}
	if _, exists := r.umkm[umkm.ID]; !exists {
		r.order = append(r.order, umkm.ID)
	}
	r.umkm[umkm.ID] = *umkm
	return nil
}

// GetMenu returns the business's menu items.
func (r *MockUmkmRepository) GetMenu(ctx context.Context, umkmID string) ([]models.MenuItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	items := make([]models.MenuItem, len(r.menus[umkmID]))
	copy(items, r.menus[umkmID])
	return items, nil
}

// GetServices returns the business's service items.
func (r *MockUmkmRepository) GetServices(ctx context.Context, umkmID string) ([]models.ServiceItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	items := make([]models.ServiceItem, len(r.services[umkmID]))
	copy(items, r.services[umkmID])
	return items, nil
}

// ReplaceMenu swaps the business's menu.
func (r *MockUmkmRepository) ReplaceMenu(ctx context.Context, umkmID string, items []models.MenuItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	copied := make([]models.MenuItem, len(items))
	copy(copied, items)
	for i := range copied {
		copied[i].UmkmID = umkmID
	}
	r.menus[umkmID] = copied
	return nil
}

// ReplaceServices swaps the business's service list.
func (r *MockUmkmRepository) ReplaceServices(ctx context.Context, umkmID string, items []models.ServiceItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	copied := make([]models.ServiceItem, len(items))
	copy(copied, items)
	for i := range copied {
		copied[i].UmkmID = umkmID
	}
	r.services[umkmID] = copied
	return nil
}
