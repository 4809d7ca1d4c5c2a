// internal/domain/checkout/registry.go
package checkout

import (
	"sync"
	"time"

	"github.com/your-org/storefront-session/internal/domain/order"
	"github.com/your-org/storefront-session/internal/domain/session"
)

// Registry holds one checkout controller per session. Controllers are
// ephemeral page-lifetime state: they are never persisted and expire after
// idling, which resets checkout form state the way navigating away does.
type Registry struct {
	mu      sync.Mutex
	entries map[string]*registryEntry
	placer  order.Placer
	ttl     time.Duration
}

type registryEntry struct {
	controller *Controller
	lastSeen   time.Time
}

// NewRegistry creates a checkout controller registry
func NewRegistry(placer order.Placer, ttl time.Duration) *Registry {
	return &Registry{
		entries: make(map[string]*registryEntry),
		placer:  placer,
		ttl:     ttl,
	}
}

// Controller returns the session's checkout controller, creating a fresh one
// when none exists or the previous one expired
func (r *Registry) Controller(sessionID string, store *session.Store) *Controller {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	for id, entry := range r.entries {
		if now.Sub(entry.lastSeen) > r.ttl {
			delete(r.entries, id)
		}
	}

	if entry, ok := r.entries[sessionID]; ok {
		entry.lastSeen = now
		return entry.controller
	}

	ctrl := NewController(store, r.placer)
	r.entries[sessionID] = &registryEntry{controller: ctrl, lastSeen: now}
	return ctrl
}

// Drop discards a session's controller, resetting its checkout state
func (r *Registry) Drop(sessionID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.entries, sessionID)
}
