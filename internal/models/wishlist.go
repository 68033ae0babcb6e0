package models

import "gorm.io/gorm"

// WishlistEntry marks one business as saved by one user.
type WishlistEntry struct {
	UserID     string `json:"user_id" gorm:"uniqueIndex:idx_wishlist_user_umkm;type:varchar(36)"`
	UmkmID     string `json:"umkm_id" gorm:"uniqueIndex:idx_wishlist_user_umkm;type:varchar(36)"`
	gorm.Model `json:"-"`
}
