// internal/domain/session/store_test.go
package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/storefront-session/internal/domain/catalog"
	"github.com/your-org/storefront-session/internal/domain/currency"
)

func testProduct(id uint, price int64) catalog.Product {
	return catalog.Product{
		ID:     id,
		SKU:    "SKU-TEST",
		Name:   "Test Product",
		Price:  price,
		Colors: "black,white,navy",
	}
}

func newTestStore() *Store {
	return NewStore(currency.Default())
}

func TestAddToCart_NewLine(t *testing.T) {
	store := newTestStore()
	store.AddToCart(testProduct(1, 100), 2, "black")

	cart := store.Cart()
	require.Len(t, cart, 1)
	assert.Equal(t, uint(1), cart[0].Product.ID)
	assert.Equal(t, 2, cart[0].Quantity)
	assert.Equal(t, "black", cart[0].SelectedColor)
}

func TestAddToCart_MergesSameProductAndColor(t *testing.T) {
	store := newTestStore()
	store.AddToCart(testProduct(1, 100), 2, "black")
	store.AddToCart(testProduct(1, 100), 3, "black")

	cart := store.Cart()
	require.Len(t, cart, 1)
	assert.Equal(t, 5, cart[0].Quantity)
}

func TestAddToCart_DistinctColorsAreDistinctLines(t *testing.T) {
	store := newTestStore()
	store.AddToCart(testProduct(1, 100), 1, "black")
	store.AddToCart(testProduct(1, 100), 1, "white")

	assert.Len(t, store.Cart(), 2)
}

func TestAddToCart_NormalizesQuantityToAtLeastOne(t *testing.T) {
	store := newTestStore()
	store.AddToCart(testProduct(1, 100), 0, "")
	store.AddToCart(testProduct(2, 50), -3, "")

	cart := store.Cart()
	require.Len(t, cart, 2)
	assert.Equal(t, 1, cart[0].Quantity)
	assert.Equal(t, 1, cart[1].Quantity)
}

func TestUpdateQuantity_ZeroRemovesLine(t *testing.T) {
	store := newTestStore()
	store.AddToCart(testProduct(1, 100), 2, "black")

	store.UpdateQuantity(1, 0, "black")

	assert.Empty(t, store.Cart())
}

func TestUpdateQuantity_OnlyTouchesMatchingLine(t *testing.T) {
	store := newTestStore()
	store.AddToCart(testProduct(1, 100), 1, "black")
	store.AddToCart(testProduct(1, 100), 1, "white")

	store.UpdateQuantity(1, 4, "black")

	cart := store.Cart()
	require.Len(t, cart, 2)
	for _, line := range cart {
		if line.SelectedColor == "black" {
			assert.Equal(t, 4, line.Quantity)
		} else {
			assert.Equal(t, 1, line.Quantity)
		}
	}
}

func TestRemoveFromCart_MissingKeyIsNoOp(t *testing.T) {
	store := newTestStore()
	store.AddToCart(testProduct(1, 100), 1, "black")

	var events []Event
	store.Subscribe(func(ev Event) { events = append(events, ev) })

	store.RemoveFromCart(1, "white")
	store.RemoveFromCart(99, "black")

	assert.Len(t, store.Cart(), 1)
	assert.Empty(t, events)
}

func TestToggleWishlist_IsAnInvolution(t *testing.T) {
	store := newTestStore()
	p := testProduct(7, 100)

	store.ToggleWishlist(p)
	assert.True(t, store.IsInWishlist(7))

	store.ToggleWishlist(p)
	assert.False(t, store.IsInWishlist(7))
	assert.Empty(t, store.Wishlist())
}

func TestMoveToSaved_TransfersWholeLine(t *testing.T) {
	store := newTestStore()
	store.AddToCart(testProduct(1, 100), 3, "navy")

	store.MoveToSaved(1, "navy")

	assert.Empty(t, store.Cart())
	saved := store.SavedForLater()
	require.Len(t, saved, 1)
	assert.Equal(t, 3, saved[0].Quantity)
	assert.Equal(t, "navy", saved[0].SelectedColor)
}

func TestMoveToCart_RoundTripPreservesLine(t *testing.T) {
	store := newTestStore()
	store.AddToCart(testProduct(1, 100), 3, "navy")

	store.MoveToSaved(1, "navy")
	store.MoveToCart(1, "navy")

	assert.Empty(t, store.SavedForLater())
	cart := store.Cart()
	require.Len(t, cart, 1)
	assert.Equal(t, 3, cart[0].Quantity)
}

func TestMoveToCart_MergesIntoExistingLine(t *testing.T) {
	store := newTestStore()
	store.AddToCart(testProduct(1, 100), 2, "navy")
	store.MoveToSaved(1, "navy")

	store.AddToCart(testProduct(1, 100), 1, "navy")
	store.MoveToCart(1, "navy")

	assert.Empty(t, store.SavedForLater())
	cart := store.Cart()
	require.Len(t, cart, 1)
	assert.Equal(t, 3, cart[0].Quantity)
}

func TestCartAndSavedNeverShareAKey(t *testing.T) {
	store := newTestStore()
	store.AddToCart(testProduct(1, 100), 2, "black")
	store.MoveToSaved(1, "black")
	store.AddToCart(testProduct(1, 100), 1, "black")
	store.MoveToSaved(1, "black")

	assert.Empty(t, store.Cart())
	saved := store.SavedForLater()
	require.Len(t, saved, 1)
	assert.Equal(t, 3, saved[0].Quantity)
}

func TestClearCart_LeavesSavedAndWishlistAlone(t *testing.T) {
	store := newTestStore()
	store.AddToCart(testProduct(1, 100), 1, "")
	store.AddToCart(testProduct(2, 50), 1, "")
	store.MoveToSaved(2, "")
	store.ToggleWishlist(testProduct(3, 25))

	store.ClearCart()

	assert.Empty(t, store.Cart())
	assert.Len(t, store.SavedForLater(), 1)
	assert.True(t, store.IsInWishlist(3))
}

func TestCartTotal_SumsLineSubtotals(t *testing.T) {
	store := newTestStore()
	store.AddToCart(testProduct(1, 100), 1, "")
	store.AddToCart(testProduct(2, 50), 2, "")

	assert.Equal(t, int64(200), store.CartTotal())
}

func TestFormatPrice_UsesActiveCurrency(t *testing.T) {
	store := newTestStore()
	assert.Equal(t, "$100.00", store.FormatPrice(100))

	eur, ok := currency.Lookup("EUR")
	require.True(t, ok)
	store.SetCurrency(eur)

	assert.Equal(t, "€92,00", store.FormatPrice(100))
}

func TestFormatPrice_SwitchingBackRestoresOriginal(t *testing.T) {
	store := newTestStore()
	original := store.FormatPrice(1250)

	eur, _ := currency.Lookup("EUR")
	store.SetCurrency(eur)
	store.SetCurrency(currency.Default())

	assert.Equal(t, original, store.FormatPrice(1250))
}

func TestCartTotalAndFormatting_EndToEnd(t *testing.T) {
	store := newTestStore()
	store.AddToCart(testProduct(1, 100), 1, "")
	store.AddToCart(testProduct(2, 50), 2, "")

	require.Equal(t, int64(200), store.CartTotal())

	store.SetCurrency(currency.Currency{
		Code:       "TST",
		Symbol:     "$",
		Rate:       2.0,
		MinorUnits: 2,
		Locale:     "en-US",
	})

	assert.Equal(t, "$400.00", store.FormatPrice(store.CartTotal()))
}

func TestAddToCart_OpensMiniCart(t *testing.T) {
	store := newTestStore()
	AttachMiniCartCoordinator(store)

	require.False(t, store.MiniCartOpen())
	store.AddToCart(testProduct(1, 100), 1, "")

	assert.True(t, store.MiniCartOpen())
}

func TestRemoveFromCart_DoesNotOpenMiniCart(t *testing.T) {
	store := newTestStore()
	store.AddToCart(testProduct(1, 100), 1, "")
	AttachMiniCartCoordinator(store)
	store.SetMiniCartOpen(false)

	store.RemoveFromCart(1, "")

	assert.False(t, store.MiniCartOpen())
}

func TestAddToCart_PublishesMergedLine(t *testing.T) {
	store := newTestStore()
	store.AddToCart(testProduct(1, 100), 2, "black")

	var got *CartLine
	store.Subscribe(func(ev Event) {
		if ev.Kind == EventItemAdded {
			got = ev.Line
		}
	})

	store.AddToCart(testProduct(1, 100), 3, "black")

	require.NotNil(t, got)
	assert.Equal(t, 5, got.Quantity)
}

func TestSnapshotRestore_RoundTrip(t *testing.T) {
	store := newTestStore()
	store.AddToCart(testProduct(1, 100), 2, "black")
	store.AddToCart(testProduct(2, 50), 1, "")
	store.MoveToSaved(2, "")
	store.ToggleWishlist(testProduct(3, 25))
	eur, _ := currency.Lookup("EUR")
	store.SetCurrency(eur)

	snap := store.Snapshot()

	restored := newTestStore()
	restored.Restore(snap)

	assert.Equal(t, store.Cart(), restored.Cart())
	assert.Equal(t, store.SavedForLater(), restored.SavedForLater())
	assert.Equal(t, store.Wishlist(), restored.Wishlist())
	assert.Equal(t, "EUR", restored.ActiveCurrency().Code)
}

func TestSnapshot_ExcludesUIState(t *testing.T) {
	store := newTestStore()
	store.SetMiniCartOpen(true)
	p := testProduct(1, 100)
	store.SetQuickViewProduct(&p)

	restored := newTestStore()
	restored.Restore(store.Snapshot())

	assert.False(t, restored.MiniCartOpen())
	assert.Nil(t, restored.QuickViewProduct())
}

func TestSanitize_DropsInvalidLines(t *testing.T) {
	snap := &Snapshot{
		Cart: []CartLine{
			{Product: testProduct(1, 100), Quantity: 2, SelectedColor: "black"},
			{Product: catalog.Product{}, Quantity: 1},
			{Product: testProduct(2, 50), Quantity: 0},
			{Product: testProduct(1, 100), Quantity: 9, SelectedColor: "black"},
		},
		Currency: currency.Default(),
	}

	clean := snap.Sanitize()

	require.Len(t, clean.Cart, 1)
	assert.Equal(t, uint(1), clean.Cart[0].Product.ID)
	assert.Equal(t, 2, clean.Cart[0].Quantity)
}

func TestSanitize_UnknownCurrencyFallsBackToDefault(t *testing.T) {
	snap := &Snapshot{
		Currency: currency.Currency{Code: "XXX", Rate: 1.0},
	}

	clean := snap.Sanitize()

	assert.Equal(t, currency.Default().Code, clean.Currency.Code)
}

func TestSanitize_DedupsWishlist(t *testing.T) {
	snap := &Snapshot{
		Wishlist: []catalog.Product{
			testProduct(1, 100),
			testProduct(1, 100),
			testProduct(2, 50),
		},
		Currency: currency.Default(),
	}

	clean := snap.Sanitize()

	assert.Len(t, clean.Wishlist, 2)
}
