package services_test

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"testing"
	"time"

	"umkami/internal/models"
	"umkami/internal/services"

	"github.com/dgrijalva/jwt-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
)

// MockUserRepository is a mock implementation of repositories.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByID(ctx context.Context, uid string) (*models.User, error) {
	args := m.Called(ctx, uid)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) UpdateAddress(ctx context.Context, uid, address string) error {
	args := m.Called(ctx, uid, address)
	return args.Error(0)
}

func (m *MockUserRepository) BindUmkm(ctx context.Context, uid, umkmID string) error {
	args := m.Called(ctx, uid, umkmID)
	return args.Error(0)
}

func (m *MockUserRepository) AdjustBalance(ctx context.Context, uid string, delta int64) error {
	args := m.Called(ctx, uid, delta)
	return args.Error(0)
}

// TestMain is used to setup test environment
func TestMain(m *testing.M) {
	log.SetOutput(io.Discard) // Suppress logging during tests
	code := m.Run()
	os.Exit(code)
}

func TestAuthService_RegisterUser(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := services.NewAuthService(mockRepo, "test_jwt_secret")
	ctx := context.Background()

	// Test successful registration
	user := &models.User{
		Email:       "test@example.com",
		DisplayName: "Test User",
		Password:    "password123",
		Balance:     99999, // must be reset to zero by registration
	}
	mockRepo.On("GetByEmail", mock.Anything, user.Email).Return(nil, nil).Once()
	mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.User")).Return(nil).Once()

	err := authService.RegisterUser(ctx, user)
	assert.NoError(t, err)
	assert.Equal(t, int64(0), user.Balance, "new users must start with zero balance")
	assert.Equal(t, models.RoleCustomer, user.Role, "role defaults to customer")
	assert.NotEqual(t, "password123", user.Password, "password must be hashed")
	mockRepo.AssertExpectations(t)

	// Test email already registered
	mockRepo.On("GetByEmail", mock.Anything, user.Email).Return(&models.User{UID: "1"}, nil).Once()
	err = authService.RegisterUser(ctx, user)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "email 'test@example.com' already registered")
	mockRepo.AssertExpectations(t)
}

func TestAuthService_LoginUser(t *testing.T) {
	mockRepo := new(MockUserRepository)
	testJWTSecret := "test_jwt_secret"
	authService := services.NewAuthService(mockRepo, testJWTSecret)
	ctx := context.Background()

	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	user := &models.User{
		UID:      "user-123",
		Email:    "test@example.com",
		Role:     models.RoleCustomer,
		Password: string(hashedPassword),
	}

	// Test successful login
	mockRepo.On("GetByEmail", mock.Anything, user.Email).Return(user, nil).Once()
	token, err := authService.LoginUser(ctx, user.Email, "password123")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	parsedToken, err := jwt.Parse(token, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(testJWTSecret), nil
	})
	assert.NoError(t, err)
	claims, ok := parsedToken.Claims.(jwt.MapClaims)
	assert.True(t, ok)
	assert.Equal(t, user.UID, claims["user_id"])
	assert.Equal(t, user.Role, claims["role"])
	mockRepo.AssertExpectations(t)

	// Test invalid credentials (wrong password)
	mockRepo.On("GetByEmail", mock.Anything, user.Email).Return(user, nil).Once()
	_, err = authService.LoginUser(ctx, user.Email, "wrongpassword")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid credentials")
	mockRepo.AssertExpectations(t)

	// Test invalid credentials (user not found)
	mockRepo.On("GetByEmail", mock.Anything, "nobody@example.com").
		Return(nil, fmt.Errorf("user with email nobody@example.com not found")).Once()
	_, err = authService.LoginUser(ctx, "nobody@example.com", "password123")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid credentials")
	mockRepo.AssertExpectations(t)
}

func TestAuthService_ValidateToken(t *testing.T) {
	mockRepo := new(MockUserRepository)
	testJWTSecret := "test_jwt_secret"
	authService := services.NewAuthService(mockRepo, testJWTSecret)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": "user-123",
		"role":    models.RoleCustomer,
		"exp":     jwt.TimeFunc().Add(time.Hour).Unix(),
	})
	validTokenString, _ := token.SignedString([]byte(testJWTSecret))

	// Test valid token
	claims, err := authService.ValidateToken(validTokenString)
	assert.NoError(t, err)
	assert.NotNil(t, claims)
	assert.Equal(t, "user-123", claims["user_id"])

	// Test garbage token
	_, err = authService.ValidateToken("invalid.token.string")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid token")

	// Test expired token
	expiredToken := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": "user-123",
		"exp":     jwt.TimeFunc().Add(-time.Hour).Unix(),
	})
	expiredTokenString, _ := expiredToken.SignedString([]byte(testJWTSecret))
	_, err = authService.ValidateToken(expiredTokenString)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid token")
}

func TestAuthService_TopUpBalance(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := services.NewAuthService(mockRepo, "test_jwt_secret")
	ctx := context.Background()

	// Positive amounts go through the conditional balance update.
	mockRepo.On("AdjustBalance", mock.Anything, "user-123", int64(50000)).Return(nil).Once()
	err := authService.TopUpBalance(ctx, "user-123", 50000)
	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)

	// Zero and negative amounts are rejected before any backend call.
	err = authService.TopUpBalance(ctx, "user-123", 0)
	assert.Error(t, err)
	err = authService.TopUpBalance(ctx, "user-123", -100)
	assert.Error(t, err)
	mockRepo.AssertNotCalled(t, "AdjustBalance", mock.Anything, "user-123", int64(0))
}
