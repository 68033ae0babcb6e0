package models

import "time"

// CartLine is one menu item in a cart together with how many of it the
// customer wants. Two lines are the same line when both the item name and
// the originating business match; quantities are merged, never duplicated.
type CartLine struct {
	Item     MenuItem `json:"item"`
	Quantity int      `json:"quantity"`
	UmkmID   string   `json:"umkm_id"`
	UmkmName string   `json:"umkm_name"`
}

// Subtotal returns the line's contribution to the cart total in rupiah.
func (l CartLine) Subtotal() int64 {
	return l.Item.Price * int64(l.Quantity)
}

// Order is an immutable record of one settled cart partition. An order
// never spans more than one business; settling a cart that holds items
// from several businesses produces one order per business.
type Order struct {
	ID             string     `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID         string     `json:"user_id" gorm:"index;type:varchar(36)"`
	UmkmID         string     `json:"umkm_id" gorm:"index;type:varchar(36)"`
	Lines          []CartLine `json:"lines" gorm:"serializer:json"`
	TotalPrice     int64      `json:"total_price"`
	OrderTimestamp int64      `json:"order_timestamp"` // unix millis
	CustomerName   string     `json:"customer_name"`
	CreatedAt      time.Time  `json:"created_at"`
}

// DefaultCustomerName is used when an order is placed without a display name.
const DefaultCustomerName = "Anonymous Customer"
