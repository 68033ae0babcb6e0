package cart

import "sync"

// Store hands out one cart per user. Carts are session state: they live in
// memory only and start empty, so a restart simply gives everyone a fresh
// cart. Nothing is persisted until an order is placed.
type Store struct {
	mu    sync.Mutex
	carts map[string]*Cart
}

// NewStore creates an empty cart store.
func NewStore() *Store {
	return &Store{
		carts: make(map[string]*Cart),
	}
}

// ForUser returns the user's cart, creating it on first use.
func (s *Store) ForUser(userID string) *Cart {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.carts[userID]
	if !ok {
		c = New()
		s.carts[userID] = c
	}
	return c
}

// Drop discards the user's cart entirely, e.g. on logout.
func (s *Store) Drop(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, userID)
}
