package repositories

import (
	"context"
	"errors"

	"umkami/internal/models"
)

// ErrInsufficientBalance is returned by AdjustBalance when applying the
// delta would take the balance below zero. The balance is left untouched.
var ErrInsufficientBalance = errors.New("insufficient balance")

// UserRepository defines the interface for user data access.
//
// AdjustBalance is the only way a balance changes: it is a conditional
// read-modify-write that applies delta atomically and aborts with
// ErrInsufficientBalance if the result would be negative. Callers must
// never read a balance and write it back themselves.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, uid string) (*models.User, error)
	UpdateAddress(ctx context.Context, uid, address string) error
	BindUmkm(ctx context.Context, uid, umkmID string) error
	AdjustBalance(ctx context.Context, uid string, delta int64) error
}
