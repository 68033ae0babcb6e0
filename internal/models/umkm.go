package models

import "gorm.io/gorm"

// Umkm represents a small local business listed in the directory.
type Umkm struct {
	ID          string  `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	OwnerID     string  `json:"owner_id" gorm:"index;type:varchar(36)"`
	Name        string  `json:"name" validate:"required,min=3,max=100"`
	Description string  `json:"description" validate:"omitempty,max=1000"`
	Category    string  `json:"category" validate:"required,max=50"` // e.g. "makanan", "minuman", "jasa"
	Address     string  `json:"address" validate:"omitempty,max=255"`
	Contact     string  `json:"contact" validate:"omitempty,max=50"`
	ImageURL    string  `json:"image_url" validate:"omitempty,url"`
	Lat         float64 `json:"lat"`
	Lng         float64 `json:"lng"`
	gorm.Model  `json:"-"` // Embed gorm.Model for CreatedAt, UpdatedAt, DeletedAt
}

// MenuItem is a single purchasable item on a business's menu.
// Prices are whole rupiah, stored as int64 to keep money arithmetic exact.
type MenuItem struct {
	UmkmID string `json:"umkm_id" gorm:"index;type:varchar(36)"`
	Name   string `json:"name" validate:"required,max=100"`
	Price  int64  `json:"price" validate:"required,gt=0"`
	gorm.Model `json:"-"`
}

// ServiceItem is a non-menu offering (e.g. repairs, laundry) with its own price.
type ServiceItem struct {
	UmkmID      string `json:"umkm_id" gorm:"index;type:varchar(36)"`
	Name        string `json:"name" validate:"required,max=100"`
	Price       int64  `json:"price" validate:"required,gt=0"`
	Description string `json:"description" validate:"omitempty,max=500"`
	gorm.Model  `json:"-"`
}
