// internal/domain/session/manager.go
package session

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-session/internal/domain/currency"
)

// RepositoryFactory returns the snapshot repository for a session id
type RepositoryFactory func(sessionID string) StateRepository

// Manager hands out one live Store per session. On first access the store is
// rehydrated from its repository; afterwards every mutation triggers an
// asynchronous snapshot flush. A crash between a mutation and its flush loses
// that mutation — accepted, the snapshot is a display cache of user intent,
// not a ledger.
type Manager struct {
	mu       sync.Mutex
	entries  map[string]*managedStore
	newRepo  RepositoryFactory
	log      *logrus.Logger
	idleTTL  time.Duration
	lastScan time.Time
}

type managedStore struct {
	store    *Store
	repo     StateRepository
	lastSeen time.Time

	// flushMu serializes Save calls; pendingMu guards the latest-value slot.
	// Flushers drain the slot rather than carrying their own snapshot, so a
	// late-scheduled flusher can never write state older than what a
	// faster one already persisted.
	flushMu   sync.Mutex
	pendingMu sync.Mutex
	pending   *Snapshot
}

// NewManager creates a session store manager
func NewManager(newRepo RepositoryFactory, idleTTL time.Duration, log *logrus.Logger) *Manager {
	return &Manager{
		entries: make(map[string]*managedStore),
		newRepo: newRepo,
		log:     log,
		idleTTL: idleTTL,
	}
}

// Store returns the live store for a session, rehydrating it on first access
func (m *Manager) Store(ctx context.Context, sessionID string) *Store {
	m.mu.Lock()
	m.sweepLocked()
	if entry, ok := m.entries[sessionID]; ok {
		entry.lastSeen = time.Now()
		m.mu.Unlock()
		return entry.store
	}
	m.mu.Unlock()

	repo := m.newRepo(sessionID)
	store := NewStore(currency.Default())

	snap, err := repo.Load(ctx)
	if err != nil {
		m.log.WithError(err).WithField("session_id", sessionID).
			Warn("snapshot load failed, starting with empty session")
	} else if snap != nil {
		store.Restore(snap)
	}

	entry := &managedStore{store: store, repo: repo, lastSeen: time.Now()}

	AttachMiniCartCoordinator(store)
	store.Subscribe(func(Event) {
		// Subscribers run synchronously in mutation order, so the slot always
		// holds the newest state by the time any flusher drains it.
		snap := store.Snapshot()
		entry.pendingMu.Lock()
		entry.pending = snap
		entry.pendingMu.Unlock()
		go m.flush(entry, sessionID)
	})

	m.mu.Lock()
	defer m.mu.Unlock()
	// Another request may have raced us here; keep the first instance so all
	// consumers share one store per session.
	if existing, ok := m.entries[sessionID]; ok {
		existing.lastSeen = time.Now()
		return existing.store
	}
	m.entries[sessionID] = entry
	return store
}

// flush drains the entry's latest-value slot and persists it. An empty slot
// means a concurrent flusher already wrote a snapshot at least as new.
func (m *Manager) flush(entry *managedStore, sessionID string) {
	entry.flushMu.Lock()
	defer entry.flushMu.Unlock()

	entry.pendingMu.Lock()
	snap := entry.pending
	entry.pending = nil
	entry.pendingMu.Unlock()

	if snap == nil {
		return
	}
	if err := entry.repo.Save(context.Background(), snap); err != nil {
		m.log.WithError(err).WithField("session_id", sessionID).
			Warn("snapshot flush failed")
	}
}

// sweepLocked drops idle entries. Their durable snapshots rehydrate them on
// the next access.
func (m *Manager) sweepLocked() {
	now := time.Now()
	if now.Sub(m.lastScan) < m.idleTTL/4 {
		return
	}
	m.lastScan = now
	for id, entry := range m.entries {
		if now.Sub(entry.lastSeen) > m.idleTTL {
			delete(m.entries, id)
		}
	}
}
