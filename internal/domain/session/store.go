// internal/domain/session/store.go
package session

import (
	"sync"

	"github.com/your-org/storefront-session/internal/domain/catalog"
	"github.com/your-org/storefront-session/internal/domain/currency"
)

// Store is the commerce session state container: cart lines, wishlist,
// saved-for-later lines, the active currency, and transient UI flags.
//
// Every operation is a total function over the in-memory state. Mutations
// against non-existent keys are absorbed as no-ops, never surfaced as errors.
// A mutex serializes mutations so operations stay strictly ordered when the
// store is shared by concurrent HTTP consumers.
type Store struct {
	mu            sync.Mutex
	cart          []CartLine
	wishlist      []catalog.Product
	savedForLater []CartLine
	currency      currency.Currency

	// Transient UI state, never persisted
	miniCartOpen bool
	quickView    *catalog.Product

	subMu       sync.Mutex
	subscribers []Subscriber
}

// NewStore creates a store with an empty session and the given active currency
func NewStore(active currency.Currency) *Store {
	return &Store{currency: active}
}

// Subscribe registers a subscriber for store events
func (s *Store) Subscribe(fn Subscriber) {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	s.subscribers = append(s.subscribers, fn)
}

// publish runs outside the state lock so subscribers may call back in
func (s *Store) publish(ev Event) {
	s.subMu.Lock()
	subs := make([]Subscriber, len(s.subscribers))
	copy(subs, s.subscribers)
	s.subMu.Unlock()

	for _, fn := range subs {
		fn(ev)
	}
}

// AddToCart merges quantity into an existing line with the same
// (productID, color) key or appends a new line. Non-positive quantity is
// normalized to 1 at this boundary.
func (s *Store) AddToCart(p catalog.Product, quantity int, color string) {
	if quantity < 1 {
		quantity = 1
	}

	line := CartLine{Product: p, Quantity: quantity, SelectedColor: color}

	s.mu.Lock()
	if i := findLine(s.cart, line.Key()); i >= 0 {
		s.cart[i].Quantity += quantity
		line = s.cart[i]
	} else {
		s.cart = append(s.cart, line)
	}
	s.mu.Unlock()

	s.publish(Event{Kind: EventItemAdded, Line: &line})
}

// RemoveFromCart deletes the line matching the key; no-op if absent
func (s *Store) RemoveFromCart(productID uint, color string) {
	s.mu.Lock()
	i := findLine(s.cart, LineKey{ProductID: productID, Color: color})
	if i >= 0 {
		s.cart = append(s.cart[:i], s.cart[i+1:]...)
	}
	s.mu.Unlock()

	if i >= 0 {
		s.publish(Event{Kind: EventCartUpdated})
	}
}

// UpdateQuantity sets a line's quantity to an absolute value. A quantity
// below 1 behaves exactly as RemoveFromCart. No-op if the line is absent.
func (s *Store) UpdateQuantity(productID uint, quantity int, color string) {
	if quantity < 1 {
		s.RemoveFromCart(productID, color)
		return
	}

	s.mu.Lock()
	i := findLine(s.cart, LineKey{ProductID: productID, Color: color})
	if i >= 0 {
		s.cart[i].Quantity = quantity
	}
	s.mu.Unlock()

	if i >= 0 {
		s.publish(Event{Kind: EventCartUpdated})
	}
}

// ToggleWishlist flips wishlist membership by product id only. Two
// consecutive calls with the same product restore the original state.
func (s *Store) ToggleWishlist(p catalog.Product) {
	s.mu.Lock()
	removed := false
	for i, entry := range s.wishlist {
		if entry.ID == p.ID {
			s.wishlist = append(s.wishlist[:i], s.wishlist[i+1:]...)
			removed = true
			break
		}
	}
	if !removed {
		s.wishlist = append(s.wishlist, p)
	}
	s.mu.Unlock()

	s.publish(Event{Kind: EventWishlistUpdated})
}

// IsInWishlist reports wishlist membership by product id
func (s *Store) IsInWishlist(productID uint) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, entry := range s.wishlist {
		if entry.ID == productID {
			return true
		}
	}
	return false
}

// MoveToSaved transfers a cart line to the saved-for-later list unmodified.
// The transfer is always whole-line, never a partial-quantity split.
func (s *Store) MoveToSaved(productID uint, color string) {
	s.mu.Lock()
	i := findLine(s.cart, LineKey{ProductID: productID, Color: color})
	if i >= 0 {
		line := s.cart[i]
		s.cart = append(s.cart[:i], s.cart[i+1:]...)
		s.savedForLater = append(s.savedForLater, line)
	}
	s.mu.Unlock()

	if i >= 0 {
		s.publish(Event{Kind: EventSavedUpdated})
	}
}

// MoveToCart transfers a saved line back to the cart using the same merge
// semantics as AddToCart: a matching cart line combines quantities rather
// than duplicating the entry.
func (s *Store) MoveToCart(productID uint, color string) {
	s.mu.Lock()
	i := findLine(s.savedForLater, LineKey{ProductID: productID, Color: color})
	var line CartLine
	if i >= 0 {
		line = s.savedForLater[i]
		s.savedForLater = append(s.savedForLater[:i], s.savedForLater[i+1:]...)
		if j := findLine(s.cart, line.Key()); j >= 0 {
			s.cart[j].Quantity += line.Quantity
		} else {
			s.cart = append(s.cart, line)
		}
	}
	s.mu.Unlock()

	if i >= 0 {
		s.publish(Event{Kind: EventSavedUpdated})
	}
}

// RemoveFromSaved deletes a saved line by key; no-op if absent
func (s *Store) RemoveFromSaved(productID uint, color string) {
	s.mu.Lock()
	i := findLine(s.savedForLater, LineKey{ProductID: productID, Color: color})
	if i >= 0 {
		s.savedForLater = append(s.savedForLater[:i], s.savedForLater[i+1:]...)
	}
	s.mu.Unlock()

	if i >= 0 {
		s.publish(Event{Kind: EventSavedUpdated})
	}
}

// ClearCart empties the cart only; wishlist and saved-for-later are untouched
func (s *Store) ClearCart() {
	s.mu.Lock()
	s.cart = nil
	s.mu.Unlock()

	s.publish(Event{Kind: EventCartCleared})
}

// SetCurrency swaps the active currency. Stored amounts stay in base units;
// only display formatting changes.
func (s *Store) SetCurrency(cur currency.Currency) {
	s.mu.Lock()
	s.currency = cur
	s.mu.Unlock()

	s.publish(Event{Kind: EventCurrencyChanged, Currency: &cur})
}

// FormatPrice renders a base-unit amount in the active currency
func (s *Store) FormatPrice(amountInBaseUnits int64) string {
	s.mu.Lock()
	cur := s.currency
	s.mu.Unlock()
	return currency.Format(amountInBaseUnits, cur)
}

// CartTotal sums price * quantity over all cart lines in base units,
// recomputed fresh on every call
func (s *Store) CartTotal() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	var total int64
	for _, line := range s.cart {
		total += line.Subtotal()
	}
	return total
}

// Cart returns a copy of the cart lines
func (s *Store) Cart() []CartLine {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]CartLine, len(s.cart))
	copy(out, s.cart)
	return out
}

// Wishlist returns a copy of the wishlist entries
func (s *Store) Wishlist() []catalog.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]catalog.Product, len(s.wishlist))
	copy(out, s.wishlist)
	return out
}

// SavedForLater returns a copy of the saved lines
func (s *Store) SavedForLater() []CartLine {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]CartLine, len(s.savedForLater))
	copy(out, s.savedForLater)
	return out
}

// ActiveCurrency returns the currently active currency
func (s *Store) ActiveCurrency() currency.Currency {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.currency
}

// SetMiniCartOpen sets the transient mini-cart visibility flag
func (s *Store) SetMiniCartOpen(open bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.miniCartOpen = open
}

// MiniCartOpen reports the transient mini-cart visibility flag
func (s *Store) MiniCartOpen() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.miniCartOpen
}

// SetQuickViewProduct sets or clears the transient quick-view target
func (s *Store) SetQuickViewProduct(p *catalog.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.quickView = p
}

// QuickViewProduct returns the transient quick-view target, nil when closed
func (s *Store) QuickViewProduct() *catalog.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.quickView
}

// Snapshot captures the durable state for persistence. Transient UI flags
// are excluded.
func (s *Store) Snapshot() *Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := &Snapshot{Currency: s.currency}
	snap.Cart = make([]CartLine, len(s.cart))
	copy(snap.Cart, s.cart)
	snap.Wishlist = make([]catalog.Product, len(s.wishlist))
	copy(snap.Wishlist, s.wishlist)
	snap.SavedForLater = make([]CartLine, len(s.savedForLater))
	copy(snap.SavedForLater, s.savedForLater)
	return snap
}

// Restore rehydrates the store from a persisted snapshot. The snapshot is
// sanitized first so malformed persisted records are dropped rather than
// crashing or corrupting state.
func (s *Store) Restore(snap *Snapshot) {
	if snap == nil {
		return
	}
	clean := snap.Sanitize()

	s.mu.Lock()
	s.cart = clean.Cart
	s.wishlist = clean.Wishlist
	s.savedForLater = clean.SavedForLater
	s.currency = clean.Currency
	s.mu.Unlock()
}

func findLine(lines []CartLine, key LineKey) int {
	for i, l := range lines {
		if l.Key() == key {
			return i
		}
	}
	return -1
}
