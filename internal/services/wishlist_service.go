package services

import (
	"context"

	"umkami/internal/models"
	"umkami/internal/repositories"
)

// WishlistService handles business logic for saved businesses.
type WishlistService struct {
	wishlistRepo repositories.WishlistRepository
	umkmRepo     repositories.UmkmRepository
}

// NewWishlistService creates a new WishlistService.
func NewWishlistService(wishlistRepo repositories.WishlistRepository, umkmRepo repositories.UmkmRepository) *WishlistService {
	return &WishlistService{
		wishlistRepo: wishlistRepo,
		umkmRepo:     umkmRepo,
	}
}

// Add saves a business to the user's wishlist. Idempotent.
func (s *WishlistService) Add(ctx context.Context, userID, umkmID string) error {
	return s.wishlistRepo.Add(ctx, userID, umkmID)
}

// Remove unsaves a business. Idempotent.
func (s *WishlistService) Remove(ctx context.Context, userID, umkmID string) error {
	return s.wishlistRepo.Remove(ctx, userID, umkmID)
}

// IsWishlisted reports whether the user has saved the business.
func (s *WishlistService) IsWishlisted(ctx context.Context, userID, umkmID string) (bool, error) {
	return s.wishlistRepo.Contains(ctx, userID, umkmID)
}

// List resolves the user's saved IDs into full business records. IDs whose
// business no longer exists are skipped rather than failing the whole list.
func (s *WishlistService) List(ctx context.Context, userID string) ([]models.Umkm, error) {
	ids, err := s.wishlistRepo.List(ctx, userID)
	if err != nil {
		return nil, err
	}

	var list []models.Umkm
	for _, id := range ids {
		umkm, err := s.umkmRepo.GetByID(ctx, id)
		if err != nil {
			continue
		}
		list = append(list, *umkm)
	}
	return list, nil
}
