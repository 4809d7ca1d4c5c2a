// internal/domain/session/entity.go
package session

import (
	"context"

	"github.com/your-org/storefront-session/internal/domain/catalog"
	"github.com/your-org/storefront-session/internal/domain/currency"
)

// CartLine is a product snapshot plus quantity and an optional color variant.
// Two lines are the same entry only when both product id and color match;
// adds against an existing key merge by summing quantity.
type CartLine struct {
	Product       catalog.Product `json:"product"`
	Quantity      int             `json:"quantity"`
	SelectedColor string          `json:"selected_color,omitempty"`
}

// Key returns the line's identity key
func (l CartLine) Key() LineKey {
	return LineKey{ProductID: l.Product.ID, Color: l.SelectedColor}
}

// Subtotal returns price * quantity in base units
func (l CartLine) Subtotal() int64 {
	return l.Product.Price * int64(l.Quantity)
}

// LineKey identifies a cart or saved line by (productID, selectedColor)
type LineKey struct {
	ProductID uint   `json:"product_id"`
	Color     string `json:"color,omitempty"`
}

// Snapshot is the durable portion of the session state. Transient UI state
// (mini-cart visibility, quick-view target) is never part of it.
type Snapshot struct {
	Cart          []CartLine        `json:"cart"`
	Wishlist      []catalog.Product `json:"wishlist"`
	SavedForLater []CartLine        `json:"saved_for_later"`
	Currency      currency.Currency `json:"currency"`
}

// StateRepository abstracts the durable medium a snapshot is persisted to.
// Implementations address a single namespaced key per session.
type StateRepository interface {
	Load(ctx context.Context) (*Snapshot, error)
	Save(ctx context.Context, snap *Snapshot) error
}

// Sanitize validates a rehydrated snapshot's shape, dropping malformed
// entries instead of trusting the stored data: lines without a product id or
// a positive quantity are removed, duplicate identity keys collapse into the
// first occurrence, and an unknown currency code falls back to the default.
func (s *Snapshot) Sanitize() *Snapshot {
	out := &Snapshot{
		Cart:          sanitizeLines(s.Cart),
		SavedForLater: sanitizeLines(s.SavedForLater),
	}

	seen := make(map[uint]bool)
	for _, p := range s.Wishlist {
		if p.ID == 0 || seen[p.ID] {
			continue
		}
		seen[p.ID] = true
		out.Wishlist = append(out.Wishlist, p)
	}

	if cur, ok := currency.Lookup(s.Currency.Code); ok {
		out.Currency = cur
	} else {
		out.Currency = currency.Default()
	}

	return out
}

func sanitizeLines(lines []CartLine) []CartLine {
	seen := make(map[LineKey]bool)
	var out []CartLine
	for _, l := range lines {
		if l.Product.ID == 0 || l.Quantity < 1 || seen[l.Key()] {
			continue
		}
		seen[l.Key()] = true
		out = append(out, l)
	}
	return out
}
