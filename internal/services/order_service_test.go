package services_test

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"

	"umkami/internal/cart"
	"umkami/internal/models"
	"umkami/internal/repositories"
	"umkami/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockOrderRepository is a mock implementation of repositories.OrderRepository
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) Create(ctx context.Context, order *models.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockOrderRepository) GetByID(ctx context.Context, id string) (*models.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Order), args.Error(1)
}

func (m *MockOrderRepository) GetByUserID(ctx context.Context, userID string) ([]models.Order, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Order), args.Error(1)
}

// countingUserRepo wraps the in-memory user repository and counts backend
// calls, so precondition tests can assert that nothing was touched.
type countingUserRepo struct {
	*repositories.MockUserRepository
	calls int32
}

func (r *countingUserRepo) GetByID(ctx context.Context, uid string) (*models.User, error) {
	atomic.AddInt32(&r.calls, 1)
	return r.MockUserRepository.GetByID(ctx, uid)
}

func (r *countingUserRepo) AdjustBalance(ctx context.Context, uid string, delta int64) error {
	atomic.AddInt32(&r.calls, 1)
	return r.MockUserRepository.AdjustBalance(ctx, uid, delta)
}

func seedUser(t *testing.T, repo repositories.UserRepository, uid string, balance int64) {
	t.Helper()
	err := repo.Create(context.Background(), &models.User{
		UID:         uid,
		Email:       uid + "@example.com",
		DisplayName: "Budi",
		Role:        models.RoleCustomer,
		Balance:     balance,
	})
	require.NoError(t, err)
}

func cartWith(lines ...models.CartLine) *cart.Cart {
	c := cart.New()
	for _, l := range lines {
		for i := 0; i < l.Quantity; i++ {
			c.AddLine(l.Item, l.UmkmName)
		}
	}
	return c
}

func line(name, umkmID, umkmName string, price int64, qty int) models.CartLine {
	return models.CartLine{
		Item:     models.MenuItem{Name: name, Price: price, UmkmID: umkmID},
		Quantity: qty,
		UmkmID:   umkmID,
		UmkmName: umkmName,
	}
}

func TestSettle_EmptyCartMakesNoBackendCalls(t *testing.T) {
	userRepo := &countingUserRepo{MockUserRepository: repositories.NewMockUserRepository()}
	orderRepo := new(MockOrderRepository)
	service := services.NewOrderService(orderRepo, userRepo, nil)

	err := service.Settle(context.Background(), "user-1", cart.New())

	assert.ErrorIs(t, err, services.ErrEmptyCart)
	assert.Equal(t, int32(0), atomic.LoadInt32(&userRepo.calls))
	orderRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestSettle_BlankUserMakesNoBackendCalls(t *testing.T) {
	userRepo := &countingUserRepo{MockUserRepository: repositories.NewMockUserRepository()}
	orderRepo := new(MockOrderRepository)
	service := services.NewOrderService(orderRepo, userRepo, nil)

	c := cartWith(line("Bakso", "umkm-1", "Warung Bu Sri", 15000, 1))
	err := service.Settle(context.Background(), "", c)

	assert.ErrorIs(t, err, services.ErrNotAuthenticated)
	assert.Equal(t, int32(0), atomic.LoadInt32(&userRepo.calls))
	orderRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestSettle_ExactBalanceSucceedsToZero(t *testing.T) {
	userRepo := repositories.NewMockUserRepository()
	orderRepo := repositories.NewMockOrderRepository()
	service := services.NewOrderService(orderRepo, userRepo, nil)

	c := cartWith(
		line("Bakso", "umkm-1", "Warung Bu Sri", 15000, 2),
		line("Es Teh", "umkm-1", "Warung Bu Sri", 5000, 1),
	)
	seedUser(t, userRepo, "user-1", 35000) // exactly the cart total

	err := service.Settle(context.Background(), "user-1", c)
	require.NoError(t, err)

	assert.True(t, c.IsEmpty())

	user, err := userRepo.GetByID(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, int64(0), user.Balance)

	orders, err := orderRepo.GetByUserID(context.Background(), "user-1")
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, int64(35000), orders[0].TotalPrice)
	assert.Equal(t, "umkm-1", orders[0].UmkmID)
	assert.Equal(t, "Budi", orders[0].CustomerName)
}

func TestSettle_OneOrderPerBusinessWithOwnTotal(t *testing.T) {
	userRepo := repositories.NewMockUserRepository()
	orderRepo := repositories.NewMockOrderRepository()
	service := services.NewOrderService(orderRepo, userRepo, nil)

	c := cartWith(
		line("Bakso", "umkm-1", "Warung Bu Sri", 15000, 1),
		line("Cukur Rambut", "umkm-2", "Barber Mas Joko", 25000, 2),
	)
	seedUser(t, userRepo, "user-1", 100000)

	err := service.Settle(context.Background(), "user-1", c)
	require.NoError(t, err)

	orders, err := orderRepo.GetByUserID(context.Background(), "user-1")
	require.NoError(t, err)
	require.Len(t, orders, 2)

	totals := map[string]int64{}
	for _, o := range orders {
		totals[o.UmkmID] = o.TotalPrice
		var lineSum int64
		for _, l := range o.Lines {
			lineSum += l.Subtotal()
		}
		assert.Equal(t, lineSum, o.TotalPrice, "order total must come from its own lines")
	}
	assert.Equal(t, int64(15000), totals["umkm-1"])
	assert.Equal(t, int64(50000), totals["umkm-2"])

	user, _ := userRepo.GetByID(context.Background(), "user-1")
	assert.Equal(t, int64(35000), user.Balance)
}

func TestSettle_InsufficientBalanceStopsAtFailingPartition(t *testing.T) {
	userRepo := repositories.NewMockUserRepository()
	orderRepo := repositories.NewMockOrderRepository()
	service := services.NewOrderService(orderRepo, userRepo, nil)

	c := cartWith(
		line("Bakso", "umkm-1", "Warung Bu Sri", 15000, 1),  // partition A: 15000
		line("Cukur Rambut", "umkm-2", "Barber Mas Joko", 25000, 1), // partition B: 25000
	)
	seedUser(t, userRepo, "user-1", 20000) // covers A, not B

	err := service.Settle(context.Background(), "user-1", c)

	var insufficient *services.InsufficientBalanceError
	require.ErrorAs(t, err, &insufficient)
	assert.Equal(t, "umkm-2", insufficient.UmkmID)
	assert.Equal(t, int64(25000), insufficient.Needed)

	// Partition A stays committed.
	orders, _ := orderRepo.GetByUserID(context.Background(), "user-1")
	require.Len(t, orders, 1)
	assert.Equal(t, "umkm-1", orders[0].UmkmID)

	user, _ := userRepo.GetByID(context.Background(), "user-1")
	assert.Equal(t, int64(5000), user.Balance)

	// Partition B stays in the cart.
	lines := c.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, "umkm-2", lines[0].UmkmID)
}

func TestSettle_OrderCreateFailureLeavesBalanceDeducted(t *testing.T) {
	userRepo := repositories.NewMockUserRepository()
	orderRepo := new(MockOrderRepository)
	orderRepo.On("Create", mock.Anything, mock.Anything).Return(fmt.Errorf("backend write failed")).Once()
	service := services.NewOrderService(orderRepo, userRepo, nil)

	c := cartWith(line("Bakso", "umkm-1", "Warung Bu Sri", 15000, 1))
	seedUser(t, userRepo, "user-1", 50000)

	err := service.Settle(context.Background(), "user-1", c)

	var partial *services.PartialCommitError
	require.ErrorAs(t, err, &partial)
	assert.Equal(t, "umkm-1", partial.UmkmID)
	assert.Equal(t, "create_order", partial.Step)

	// No compensating refund, and the failed partition's lines stay put.
	user, _ := userRepo.GetByID(context.Background(), "user-1")
	assert.Equal(t, int64(35000), user.Balance)
	assert.False(t, c.IsEmpty())
	orderRepo.AssertExpectations(t)
}

func TestSettle_ConcurrentCheckoutsNeverDoubleSpend(t *testing.T) {
	userRepo := repositories.NewMockUserRepository()
	orderRepo := repositories.NewMockOrderRepository()
	service := services.NewOrderService(orderRepo, userRepo, nil)

	seedUser(t, userRepo, "user-1", 15000) // enough for exactly one checkout

	cartA := cartWith(line("Bakso", "umkm-1", "Warung Bu Sri", 15000, 1))
	cartB := cartWith(line("Soto", "umkm-2", "Warung Pak Dedi", 15000, 1))

	var wg sync.WaitGroup
	results := make([]error, 2)
	for i, c := range []*cart.Cart{cartA, cartB} {
		wg.Add(1)
		go func(i int, c *cart.Cart) {
			defer wg.Done()
			results[i] = service.Settle(context.Background(), "user-1", c)
		}(i, c)
	}
	wg.Wait()

	var successes, insufficient int
	for _, err := range results {
		var ib *services.InsufficientBalanceError
		switch {
		case err == nil:
			successes++
		case assert.ErrorAs(t, err, &ib):
			insufficient++
		}
	}
	assert.Equal(t, 1, successes, "exactly one checkout may win the balance")
	assert.Equal(t, 1, insufficient)

	user, _ := userRepo.GetByID(context.Background(), "user-1")
	assert.Equal(t, int64(0), user.Balance)

	orders, _ := orderRepo.GetByUserID(context.Background(), "user-1")
	assert.Len(t, orders, 1)
}

func TestSettle_CancelledContextAbortsBeforeDeduction(t *testing.T) {
	userRepo := repositories.NewMockUserRepository()
	orderRepo := repositories.NewMockOrderRepository()
	service := services.NewOrderService(orderRepo, userRepo, nil)

	c := cartWith(line("Bakso", "umkm-1", "Warung Bu Sri", 15000, 1))
	seedUser(t, userRepo, "user-1", 50000)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := service.Settle(ctx, "user-1", c)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)

	// Nothing was charged or written.
	user, _ := userRepo.GetByID(context.Background(), "user-1")
	assert.Equal(t, int64(50000), user.Balance)
	orders, _ := orderRepo.GetByUserID(context.Background(), "user-1")
	assert.Empty(t, orders)
	assert.False(t, c.IsEmpty())
}
