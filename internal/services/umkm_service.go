package services

import (
	"context"
	"fmt"

	"umkami/internal/models"
	"umkami/internal/repositories"
)

// UmkmService handles business logic for the directory catalog and the
// owner dashboard.
type UmkmService struct {
	repo     repositories.UmkmRepository
	userRepo repositories.UserRepository
}

// NewUmkmService creates a new UmkmService.
func NewUmkmService(repo repositories.UmkmRepository, userRepo repositories.UserRepository) *UmkmService {
	return &UmkmService{
		repo:     repo,
		userRepo: userRepo,
	}
}

// GetAllUmkm retrieves every listed business.
func (s *UmkmService) GetAllUmkm(ctx context.Context) ([]models.Umkm, error) {
	return s.repo.GetAll(ctx)
}

// GetUmkmByID retrieves a single business by its ID.
func (s *UmkmService) GetUmkmByID(ctx context.Context, id string) (*models.Umkm, error) {
	return s.repo.GetByID(ctx, id)
}

// SearchUmkm filters the directory by name substring and category.
func (s *UmkmService) SearchUmkm(ctx context.Context, query, category string) ([]models.Umkm, error) {
	return s.repo.Search(ctx, query, category)
}

// GetMenu retrieves the business's menu with each item bound to the
// business it came from, so cart lines always carry their origin.
func (s *UmkmService) GetMenu(ctx context.Context, umkmID string) ([]models.MenuItem, error) {
	items, err := s.repo.GetMenu(ctx, umkmID)
	if err != nil {
		return nil, err
	}
	for i := range items {
		items[i].UmkmID = umkmID
	}
	return items, nil
}

// GetServices retrieves the business's service offerings.
func (s *UmkmService) GetServices(ctx context.Context, umkmID string) ([]models.ServiceItem, error) {
	return s.repo.GetServices(ctx, umkmID)
}

// SaveProfile creates or updates the owner's business listing together with
// its menu and services, and returns the (possibly newly generated) ID.
func (s *UmkmService) SaveProfile(ctx context.Context, umkm *models.Umkm, menu []models.MenuItem, services []models.ServiceItem) (string, error) {
	created := umkm.ID == ""
	if err := s.repo.Save(ctx, umkm); err != nil {
		return "", fmt.Errorf("failed to save umkm profile: %w", err)
	}
	if created && umkm.OwnerID != "" {
		if err := s.userRepo.BindUmkm(ctx, umkm.OwnerID, umkm.ID); err != nil {
			return umkm.ID, fmt.Errorf("profile saved but owner binding failed: %w", err)
		}
	}
	if err := s.repo.ReplaceMenu(ctx, umkm.ID, menu); err != nil {
		return umkm.ID, fmt.Errorf("profile saved but menu update failed: %w", err)
	}
	if err := s.repo.ReplaceServices(ctx, umkm.ID, services); err != nil {
		return umkm.ID, fmt.Errorf("profile saved but services update failed: %w", err)
	}
	return umkm.ID, nil
}
