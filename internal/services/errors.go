package services

import (
	"errors"
	"fmt"
)

// Settlement precondition errors. Both are detected before any backend
// call, so a caller receiving one knows nothing was charged or written.
var (
	ErrEmptyCart        = errors.New("cart is empty")
	ErrNotAuthenticated = errors.New("not authenticated")
)

// InsufficientBalanceError reports that the balance could not cover the
// named business's partition. Partitions settled before this one stay
// committed; this partition's lines and all later ones remain in the cart.
type InsufficientBalanceError struct {
	UmkmID string
	Needed int64
}

func (e *InsufficientBalanceError) Error() string {
	return fmt.Sprintf("insufficient balance for umkm %s (needs %d)", e.UmkmID, e.Needed)
}

// PartialCommitError reports that a partition failed after its balance
// deduction already went through. There is no compensating refund: the
// caller must reconcile from the order history and balance.
type PartialCommitError struct {
	UmkmID string
	Step   string
	Err    error
}

func (e *PartialCommitError) Error() string {
	return fmt.Sprintf("partition for umkm %s failed at %s after balance was deducted: %v", e.UmkmID, e.Step, e.Err)
}

func (e *PartialCommitError) Unwrap() error {
	return e.Err
}
