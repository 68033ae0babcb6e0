package models

import "gorm.io/gorm"

// User roles. Owners additionally carry the ID of the business they manage.
const (
	RoleCustomer = "customer"
	RoleOwner    = "owner"
)

// User represents an account in the directory. Balance is whole rupiah and
// must never go negative; it is only ever changed through the repository's
// conditional balance update.
type User struct {
	UID         string `json:"uid" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Email       string `json:"email" gorm:"uniqueIndex;type:varchar(255)" validate:"required,email"`
	DisplayName string `json:"display_name" validate:"required,min=3,max=100"`
	Address     string `json:"address" validate:"omitempty,max=255"`
	Role        string `json:"role" validate:"required,oneof=customer owner"`
	UmkmID      string `json:"umkm_id,omitempty" gorm:"type:varchar(36)"`
	Password    string `json:"-" gorm:"type:varchar(255)"` // bcrypt hash, never serialized
	Balance     int64  `json:"balance" validate:"gte=0"`
	gorm.Model  `json:"-"`
}
