// internal/domain/session/events.go
package session

import "github.com/your-org/storefront-session/internal/domain/currency"

// EventKind identifies a state change published by the store
type EventKind string

const (
	EventItemAdded       EventKind = "item_added"
	EventCartUpdated     EventKind = "cart_updated"
	EventCartCleared     EventKind = "cart_cleared"
	EventWishlistUpdated EventKind = "wishlist_updated"
	EventSavedUpdated    EventKind = "saved_updated"
	EventCurrencyChanged EventKind = "currency_changed"
)

// Event is a discrete notification emitted after a mutation completes.
// UI coordinators subscribe to these instead of mutations reaching into
// UI state directly.
type Event struct {
	Kind     EventKind          `json:"kind"`
	Line     *CartLine          `json:"line,omitempty"`
	Currency *currency.Currency `json:"currency,omitempty"`
}

// Subscriber receives store events. Subscribers run synchronously after the
// mutation has released the store lock, so they may call back into the store.
type Subscriber func(Event)

// AttachMiniCartCoordinator wires the mini-cart panel to the store: adding an
// item opens the panel. Kept out of the mutation path so the cart transition
// itself stays pure.
func AttachMiniCartCoordinator(s *Store) {
	s.Subscribe(func(ev Event) {
		if ev.Kind == EventItemAdded {
			s.SetMiniCartOpen(true)
		}
	})
}
