// internal/infrastructure/persistence/file_test.go
package persistence

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/storefront-session/internal/domain/catalog"
	"github.com/your-org/storefront-session/internal/domain/currency"
	"github.com/your-org/storefront-session/internal/domain/session"
)

func TestFileRepository_LoadMissingReturnsNil(t *testing.T) {
	repo := NewFileRepository(t.TempDir(), "sess-1")

	snap, err := repo.Load(context.Background())

	require.NoError(t, err)
	assert.Nil(t, snap)
}

func TestFileRepository_SaveThenLoad(t *testing.T) {
	repo := NewFileRepository(t.TempDir(), "sess-1")

	want := &session.Snapshot{
		Cart: []session.CartLine{
			{
				Product:       catalog.Product{ID: 1, Name: "Classic Tee", Price: 100},
				Quantity:      2,
				SelectedColor: "black",
			},
		},
		Wishlist: []catalog.Product{{ID: 3, Name: "Stoneware Mug", Price: 25}},
		Currency: currency.Default(),
	}

	require.NoError(t, repo.Save(context.Background(), want))

	got, err := repo.Load(context.Background())
	require.NoError(t, err)
	require.NotNil(t, got)

	assert.Equal(t, want.Cart[0].Product.ID, got.Cart[0].Product.ID)
	assert.Equal(t, want.Cart[0].Quantity, got.Cart[0].Quantity)
	assert.Equal(t, want.Cart[0].SelectedColor, got.Cart[0].SelectedColor)
	assert.Len(t, got.Wishlist, 1)
	assert.Equal(t, "USD", got.Currency.Code)
}

func TestFileRepository_CorruptSnapshotTreatedAsEmpty(t *testing.T) {
	dir := t.TempDir()
	repo := NewFileRepository(dir, "sess-1")

	require.NoError(t, os.WriteFile(filepath.Join(dir, "sess-1.json"), []byte("{not json"), 0o644))

	snap, err := repo.Load(context.Background())

	require.NoError(t, err)
	assert.Nil(t, snap)
}

func TestFileRepository_SaveCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "sessions")
	repo := NewFileRepository(dir, "sess-1")

	err := repo.Save(context.Background(), &session.Snapshot{Currency: currency.Default()})

	require.NoError(t, err)
	_, statErr := os.Stat(filepath.Join(dir, "sess-1.json"))
	assert.NoError(t, statErr)
}

func TestFileRepository_SessionsAreIsolated(t *testing.T) {
	dir := t.TempDir()
	first := NewFileRepository(dir, "sess-1")
	second := NewFileRepository(dir, "sess-2")

	require.NoError(t, first.Save(context.Background(), &session.Snapshot{Currency: currency.Default()}))

	snap, err := second.Load(context.Background())
	require.NoError(t, err)
	assert.Nil(t, snap)
}
