package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"umkami/internal/cart"
	"umkami/internal/models"
	"umkami/internal/repositories"
	"umkami/pkg/rabbitmq"

	"github.com/google/uuid"
)

// How long a single backend call within settlement may take.
const settlementCallTimeout = 10 * time.Second

// OrderService turns carts into committed orders with balance enforcement,
// and serves order history.
type OrderService struct {
	orderRepo repositories.OrderRepository
	userRepo  repositories.UserRepository
	mqClient  *rabbitmq.Client // may be nil; events are then skipped

	mu        sync.Mutex
	userLocks map[string]*sync.Mutex
}

// NewOrderService creates a new OrderService.
func NewOrderService(orderRepo repositories.OrderRepository, userRepo repositories.UserRepository, mqClient *rabbitmq.Client) *OrderService {
	return &OrderService{
		orderRepo: orderRepo,
		userRepo:  userRepo,
		mqClient:  mqClient,
		userLocks: make(map[string]*sync.Mutex),
	}
}

// Settle converts the cart into one order per business present in it,
// deducting each partition's total from the user's balance as it goes.
//
// Partitions are processed strictly in the order their business first
// appeared in the cart, and sequentially: a later partition's balance check
// must see the earlier partition's deduction. Settlement is not atomic
// across businesses. When partition N fails, partitions 1..N-1 stay
// committed (balance deducted, order written, their cart lines cleared) and
// partition N onward stay in the cart. Callers must re-read cart and
// balance after any non-nil return.
func (s *OrderService) Settle(ctx context.Context, userID string, c *cart.Cart) error {
	if userID == "" {
		return ErrNotAuthenticated
	}
	if c.IsEmpty() {
		return ErrEmptyCart
	}

	// One settlement at a time per user. Two concurrent checkouts would
	// otherwise race between their balance checks and deductions.
	lock := s.lockFor(userID)
	lock.Lock()
	defer lock.Unlock()

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to load user for settlement: %w", err)
	}
	customerName := user.DisplayName
	if customerName == "" {
		customerName = models.DefaultCustomerName
	}

	for _, partition := range c.GroupedByUmkm() {
		// Cancellation is only honored here, before the deduction.
		// Aborting between deduction and order creation would leave the
		// user charged with nothing to show for it.
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("settlement cancelled before umkm %s: %w", partition.UmkmID, err)
		}

		total := partition.Subtotal()

		if err := s.deduct(ctx, userID, total); err != nil {
			if errors.Is(err, repositories.ErrInsufficientBalance) {
				return &InsufficientBalanceError{UmkmID: partition.UmkmID, Needed: total}
			}
			return fmt.Errorf("balance deduction for umkm %s failed: %w", partition.UmkmID, err)
		}

		order := &models.Order{
			ID:             uuid.New().String(),
			UserID:         userID,
			UmkmID:         partition.UmkmID,
			Lines:          partition.Lines,
			TotalPrice:     total,
			OrderTimestamp: time.Now().UnixMilli(),
			CustomerName:   customerName,
		}

		if err := s.createOrder(ctx, order); err != nil {
			// The deduction already went through and is not reversed.
			log.Printf("ALERT: user %s debited %d for umkm %s but order creation failed: %v",
				userID, total, partition.UmkmID, err)
			return &PartialCommitError{UmkmID: partition.UmkmID, Step: "create_order", Err: err}
		}

		c.ClearUmkm(partition.UmkmID)

		s.publishOrderCreated(order)
	}

	return nil
}

// lockFor returns the per-user settlement mutex, creating it on first use.
func (s *OrderService) lockFor(userID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()

	lock, ok := s.userLocks[userID]
	if !ok {
		lock = &sync.Mutex{}
		s.userLocks[userID] = lock
	}
	return lock
}

func (s *OrderService) deduct(ctx context.Context, userID string, amount int64) error {
	callCtx, cancel := context.WithTimeout(ctx, settlementCallTimeout)
	defer cancel()
	return s.userRepo.AdjustBalance(callCtx, userID, -amount)
}

func (s *OrderService) createOrder(ctx context.Context, order *models.Order) error {
	callCtx, cancel := context.WithTimeout(ctx, settlementCallTimeout)
	defer cancel()
	return s.orderRepo.Create(callCtx, order)
}

// publishOrderCreated emits an order.created event. Publishing is best
// effort: the order is already committed, so a broker failure is only logged.
func (s *OrderService) publishOrderCreated(order *models.Order) {
	if s.mqClient == nil {
		return
	}

	event := map[string]interface{}{
		"orderID": order.ID,
		"userID":  order.UserID,
		"umkmID":  order.UmkmID,
		"total":   order.TotalPrice,
	}
	if err := s.mqClient.PublishOrderCreated(event); err != nil {
		log.Printf("Warning: failed to publish order created event for order %s: %v", order.ID, err)
	}
}

// GetOrdersByUserID retrieves the user's order history, newest first.
func (s *OrderService) GetOrdersByUserID(ctx context.Context, userID string) ([]models.Order, error) {
	return s.orderRepo.GetByUserID(ctx, userID)
}

// GetOrderByID retrieves a single order by its ID.
func (s *OrderService) GetOrderByID(ctx context.Context, id string) (*models.Order, error) {
	return s.orderRepo.GetByID(ctx, id)
}
