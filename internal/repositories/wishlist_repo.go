package repositories

import "context"

// WishlistRepository defines the interface for wishlist data access.
// Add and Remove are idempotent.
type WishlistRepository interface {
	Add(ctx context.Context, userID, umkmID string) error
	Remove(ctx context.Context, userID, umkmID string) error
	List(ctx context.Context, userID string) ([]string, error)
	Contains(ctx context.Context, userID, umkmID string) (bool, error)
}
