package cart

import (
	"sync"

	"umkami/internal/models"
)

// Cart is the in-memory, per-session collection of selected menu items.
// Lines keep their insertion order for display; totals and groupings are
// recomputed from the line set on every call, never cached.
//
// A line is identified by (item name, umkm ID): adding the same item again
// bumps its quantity instead of appending a duplicate line.
type Cart struct {
	mu    sync.RWMutex
	lines []models.CartLine
}

// New creates an empty cart.
func New() *Cart {
	return &Cart{}
}

// AddLine puts one unit of item into the cart, merging with an existing
// line for the same (item name, umkm ID) if present.
func (c *Cart) AddLine(item models.MenuItem, umkmName string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.lines {
		if c.lines[i].Item.Name == item.Name && c.lines[i].UmkmID == item.UmkmID {
			c.lines[i].Quantity++
			return
		}
	}
	c.lines = append(c.lines, models.CartLine{
		Item:     item,
		Quantity: 1,
		UmkmID:   item.UmkmID,
		UmkmName: umkmName,
	})
}

// RemoveLine takes one unit of item out of the cart. The line is deleted
// when its quantity reaches zero. Removing an item that is not in the cart
// is a no-op, not an error.
func (c *Cart) RemoveLine(item models.MenuItem) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.lines {
		if c.lines[i].Item.Name == item.Name && c.lines[i].UmkmID == item.UmkmID {
			if c.lines[i].Quantity > 1 {
				c.lines[i].Quantity--
			} else {
				c.lines = append(c.lines[:i], c.lines[i+1:]...)
			}
			return
		}
	}
}

// Lines returns a copy of the current line set in insertion order.
func (c *Cart) Lines() []models.CartLine {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]models.CartLine, len(c.lines))
	copy(out, c.lines)
	return out
}

// Total recomputes the cart total in rupiah from the current lines.
func (c *Cart) Total() int64 {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var total int64
	for _, l := range c.lines {
		total += l.Subtotal()
	}
	return total
}

// Group is the subset of a cart's lines belonging to one business.
type Group struct {
	UmkmID   string            `json:"umkm_id"`
	UmkmName string            `json:"umkm_name"`
	Lines    []models.CartLine `json:"lines"`
}

// Subtotal is the sum of the group's own lines, independent of the cart total.
func (g Group) Subtotal() int64 {
	var total int64
	for _, l := range g.Lines {
		total += l.Subtotal()
	}
	return total
}

// GroupedByUmkm partitions the lines by business, preserving both the order
// businesses first appeared in the cart and the order of lines within each
// business.
func (c *Cart) GroupedByUmkm() []Group {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var groups []Group
	index := make(map[string]int)
	for _, l := range c.lines {
		i, ok := index[l.UmkmID]
		if !ok {
			i = len(groups)
			index[l.UmkmID] = i
			groups = append(groups, Group{UmkmID: l.UmkmID, UmkmName: l.UmkmName})
		}
		groups[i].Lines = append(groups[i].Lines, l)
	}
	return groups
}

// IsEmpty reports whether the cart has no lines.
func (c *Cart) IsEmpty() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.lines) == 0
}

// Clear drops every line. Used after a fully successful settlement.
func (c *Cart) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lines = nil
}

// ClearUmkm drops only the lines belonging to one business. Settlement calls
// this after a partition commits, so a failed later partition leaves its own
// lines untouched.
func (c *Cart) ClearUmkm(umkmID string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	kept := c.lines[:0]
	for _, l := range c.lines {
		if l.UmkmID != umkmID {
			kept = append(kept, l)
		}
	}
	c.lines = kept
}
