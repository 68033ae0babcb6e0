package repositories

import (
	"context"
	"fmt"
	"sync"

	"umkami/internal/models"

	"github.com/google/uuid"
)

// MockUserRepository is an in-memory implementation of UserRepository.
type MockUserRepository struct {
	users map[string]models.User
	mu    sync.Mutex
}

// NewMockUserRepository creates a new instance of MockUserRepository.
func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		users: make(map[string]models.User),
	}
}

// Create adds a new user.
func (r *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if user.UID == "" {
		user.UID = uuid.New().String()
	}
	for _, u := range r.users {
		if u.Email == user.Email {
			return fmt.Errorf("user with email %s already exists", user.Email)
		}
	}
	r.users[user.UID] = *user
	return nil
}

// GetByEmail returns a user by email.
func (r *MockUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if u.Email == email {
			user := u
			return &user, nil
		}
	}
	return nil, fmt.Errorf("user with email %s not found", email)
}

// GetByID returns a user by UID.
func (r *MockUserRepository) GetByID(ctx context.Context, uid string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[uid]
	if !ok {
		return nil, fmt.Errorf("user with UID %s not found", uid)
	}
	return &user, nil
}

// UpdateAddress sets the user's primary address.
func (r *MockUserRepository) UpdateAddress(ctx context.Context, uid, address string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[uid]
	if !ok {
		return fmt.Errorf("user with UID %s not found for address update", uid)
	}
	user.Address = address
	r.users[uid] = user
	return nil
}

// BindUmkm links an owner account to the business it manages.
func (r *MockUserRepository) BindUmkm(ctx context.Context, uid, umkmID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[uid]
	if !ok {
		return fmt.Errorf("user with UID %s not found for umkm binding", uid)
	}
	user.UmkmID = umkmID
	r.users[uid] = user
	return nil
}

// AdjustBalance applies delta under the repository lock, so the check and
// the write are one step, same as the guarded UPDATE in the GORM version.
func (r *MockUserRepository) AdjustBalance(ctx context.Context, uid string, delta int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[uid]
	if !ok {
		return fmt.Errorf("user with UID %s not found", uid)
	}
	if user.Balance+delta < 0 {
		return ErrInsufficientBalance
	}
	user.Balance += delta
	r.users[uid] = user
	return nil
}
