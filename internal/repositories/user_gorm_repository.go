package repositories

import (
	"context"
	"fmt"

	"umkami/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMUserRepository is a GORM implementation of UserRepository.
type GORMUserRepository struct {
	db *gorm.DB
}

// NewGORMUserRepository creates a new instance of GORMUserRepository.
func NewGORMUserRepository(db *gorm.DB) *GORMUserRepository {
	return &GORMUserRepository{
		db: db,
	}
}

// Create creates a new user in the database.
func (r *GORMUserRepository) Create(ctx context.Context, user *models.User) error {
	if user.UID == "" {
		user.UID = uuid.New().String()
	}
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// GetByEmail retrieves a user by their email from the database.
func (r *GORMUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, "email = ?", email).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("user with email %s not found", email)
		}
		return nil, fmt.Errorf("failed to get user by email %s: %w", email, err)
	}
	return &user, nil
}

// GetByID retrieves a user by their UID from the database.
func (r *GORMUserRepository) GetByID(ctx context.Context, uid string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, "uid = ?", uid).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("user with UID %s not found", uid)
		}
		return nil, fmt.Errorf("failed to get user by UID %s: %w", uid, err)
	}
	return &user, nil
}

// UpdateAddress sets the user's primary address.
func (r *GORMUserRepository) UpdateAddress(ctx context.Context, uid, address string) error {
	res := r.db.WithContext(ctx).Model(&models.User{}).Where("uid = ?", uid).
		UpdateColumn("address", address)
	if res.Error != nil {
		return fmt.Errorf("failed to update address for user %s: %w", uid, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("user with UID %s not found for address update", uid)
	}
	return nil
}

// BindUmkm links an owner account to the business it manages.
func (r *GORMUserRepository) BindUmkm(ctx context.Context, uid, umkmID string) error {
	res := r.db.WithContext(ctx).Model(&models.User{}).Where("uid = ?", uid).
		UpdateColumn("umkm_id", umkmID)
	if res.Error != nil {
		return fmt.Errorf("failed to bind umkm %s to user %s: %w", umkmID, uid, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("user with UID %s not found for umkm binding", uid)
	}
	return nil
}

// AdjustBalance applies delta to the user's balance as a single guarded
// UPDATE. The WHERE clause carries the non-negative invariant, so a
// concurrent adjustment can never take the balance below zero: whichever
// statement runs second observes the already-deducted value.
func (r *GORMUserRepository) AdjustBalance(ctx context.Context, uid string, delta int64) error {
	res := r.db.WithContext(ctx).Model(&models.User{}).
		Where("uid = ? AND balance + ? >= 0", uid, delta).
		UpdateColumn("balance", gorm.Expr("balance + ?", delta))
	if res.Error != nil {
		return fmt.Errorf("failed to adjust balance for user %s: %w", uid, res.Error)
	}
	if res.RowsAffected == 0 {
		// Distinguish a failed invariant from a missing user.
		if _, err := r.GetByID(ctx, uid); err != nil {
			return err
		}
		return ErrInsufficientBalance
	}
	return nil
}
