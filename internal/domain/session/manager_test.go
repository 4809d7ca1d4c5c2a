// internal/domain/session/manager_test.go
package session

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/storefront-session/internal/domain/currency"
)

type memoryRepo struct {
	mu      sync.Mutex
	snap    *Snapshot
	loadErr error
	saves   int
}

func (r *memoryRepo) Load(ctx context.Context) (*Snapshot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.loadErr != nil {
		return nil, r.loadErr
	}
	return r.snap, nil
}

func (r *memoryRepo) Save(ctx context.Context, snap *Snapshot) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.snap = snap
	r.saves++
	return nil
}

func (r *memoryRepo) saveCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.saves
}

func (r *memoryRepo) stored() *Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.snap
}

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func newTestManager(repos map[string]*memoryRepo) *Manager {
	factory := func(sessionID string) StateRepository {
		if repo, ok := repos[sessionID]; ok {
			return repo
		}
		repo := &memoryRepo{}
		repos[sessionID] = repo
		return repo
	}
	return NewManager(factory, time.Hour, quietLogger())
}

func TestManager_SameSessionSharesOneStore(t *testing.T) {
	m := newTestManager(map[string]*memoryRepo{})

	first := m.Store(context.Background(), "sess-1")
	second := m.Store(context.Background(), "sess-1")

	assert.Same(t, first, second)
}

func TestManager_DistinctSessionsAreIsolated(t *testing.T) {
	m := newTestManager(map[string]*memoryRepo{})

	one := m.Store(context.Background(), "sess-1")
	two := m.Store(context.Background(), "sess-2")

	one.AddToCart(testProduct(1, 100), 1, "")

	assert.Len(t, one.Cart(), 1)
	assert.Empty(t, two.Cart())
}

func TestManager_RehydratesFromSnapshot(t *testing.T) {
	repos := map[string]*memoryRepo{
		"sess-1": {snap: &Snapshot{
			Cart: []CartLine{
				{Product: testProduct(1, 100), Quantity: 2, SelectedColor: "black"},
			},
			Currency: currency.Default(),
		}},
	}
	m := newTestManager(repos)

	store := m.Store(context.Background(), "sess-1")

	cart := store.Cart()
	require.Len(t, cart, 1)
	assert.Equal(t, 2, cart[0].Quantity)
}

func TestManager_LoadFailureStartsEmpty(t *testing.T) {
	repos := map[string]*memoryRepo{
		"sess-1": {loadErr: errors.New("backend down")},
	}
	m := newTestManager(repos)

	store := m.Store(context.Background(), "sess-1")

	assert.Empty(t, store.Cart())
	assert.Equal(t, currency.Default().Code, store.ActiveCurrency().Code)
}

func TestManager_MutationsFlushSnapshots(t *testing.T) {
	repos := map[string]*memoryRepo{}
	m := newTestManager(repos)

	store := m.Store(context.Background(), "sess-1")
	store.AddToCart(testProduct(1, 100), 3, "navy")

	repo := repos["sess-1"]
	require.Eventually(t, func() bool {
		return repo.saveCount() > 0
	}, time.Second, 10*time.Millisecond)

	snap := repo.stored()
	require.NotNil(t, snap)
	require.Len(t, snap.Cart, 1)
	assert.Equal(t, 3, snap.Cart[0].Quantity)
}

func TestManager_BackToBackMutationsPersistTheNewestState(t *testing.T) {
	// Flushes run on separate goroutines; the durable snapshot must still
	// converge on the last mutation regardless of how they get scheduled.
	for i := 0; i < 50; i++ {
		repos := map[string]*memoryRepo{}
		m := newTestManager(repos)

		store := m.Store(context.Background(), "sess-1")
		store.AddToCart(testProduct(1, 100), 1, "navy")
		store.UpdateQuantity(1, 5, "navy")

		repo := repos["sess-1"]
		require.Eventually(t, func() bool {
			snap := repo.stored()
			return snap != nil && len(snap.Cart) == 1 && snap.Cart[0].Quantity == 5
		}, time.Second, time.Millisecond, "durable snapshot lost the newest mutation on iteration %d", i)
	}
}

func TestManager_StaleFlusherFindsNothingToWrite(t *testing.T) {
	repo := &memoryRepo{}
	m := newTestManager(map[string]*memoryRepo{"sess-1": repo})
	entry := &managedStore{repo: repo}

	snap := &Snapshot{Currency: currency.Default()}
	entry.pendingMu.Lock()
	entry.pending = snap
	entry.pendingMu.Unlock()

	m.flush(entry, "sess-1")
	assert.Equal(t, 1, repo.saveCount())

	// The slot was drained; a second flusher arriving late writes nothing.
	m.flush(entry, "sess-1")
	assert.Equal(t, 1, repo.saveCount())
}

func TestManager_RehydratedStoreOpensMiniCartOnAdd(t *testing.T) {
	m := newTestManager(map[string]*memoryRepo{})

	store := m.Store(context.Background(), "sess-1")
	require.False(t, store.MiniCartOpen())

	store.AddToCart(testProduct(1, 100), 1, "")

	assert.True(t, store.MiniCartOpen())
}
