// internal/domain/checkout/controller_test.go
package checkout

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/storefront-session/internal/domain/catalog"
	"github.com/your-org/storefront-session/internal/domain/currency"
	"github.com/your-org/storefront-session/internal/domain/order"
	"github.com/your-org/storefront-session/internal/domain/session"
)

type mockPlacer struct {
	mu     sync.Mutex
	orders []*order.Order
	err    error
}

func (m *mockPlacer) PlaceOrder(ctx context.Context, o *order.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.orders = append(m.orders, o)
	return m.err
}

func (m *mockPlacer) placed() []*order.Order {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.orders
}

func newTestController(placer order.Placer) (*Controller, *session.Store) {
	store := session.NewStore(currency.Default())
	store.AddToCart(catalog.Product{ID: 1, Name: "Classic Tee", Price: 100}, 1, "black")
	store.AddToCart(catalog.Product{ID: 2, Name: "Canvas Cap", Price: 50}, 2, "")
	return NewController(store, placer), store
}

func fillShipping(c *Controller) {
	c.SetField(FieldEmail, "jane@example.com")
	c.SetField(FieldName, "Jane Doe")
	c.SetField(FieldAddress, "1 Main St")
	c.SetField(FieldCity, "Springfield")
	c.SetField(FieldPostalCode, "12345")
}

func TestController_StartsAtShipping(t *testing.T) {
	ctrl, _ := newTestController(&mockPlacer{})
	assert.Equal(t, StepShipping, ctrl.Step())
}

func TestSetField_DoesNotValidate(t *testing.T) {
	ctrl, _ := newTestController(&mockPlacer{})

	ctrl.SetField(FieldEmail, "not-an-email")

	assert.Empty(t, ctrl.FieldError(FieldEmail))
}

func TestBlur_ValidatesSingleField(t *testing.T) {
	ctrl, _ := newTestController(&mockPlacer{})

	ctrl.SetField(FieldEmail, "not-an-email")
	ctrl.Blur(FieldEmail)

	assert.Equal(t, "Enter a valid email address", ctrl.FieldError(FieldEmail))
	assert.Empty(t, ctrl.FieldError(FieldName))
}

func TestBlur_ClearsErrorOnceFixed(t *testing.T) {
	ctrl, _ := newTestController(&mockPlacer{})

	ctrl.Blur(FieldEmail)
	require.Equal(t, "Email is required", ctrl.FieldError(FieldEmail))

	ctrl.SetField(FieldEmail, "jane@example.com")
	ctrl.Blur(FieldEmail)

	assert.Empty(t, ctrl.FieldError(FieldEmail))
}

func TestValidEmail(t *testing.T) {
	cases := []struct {
		email string
		want  bool
	}{
		{"jane@example.com", true},
		{"a@b.co", true},
		{"", false},
		{"plain", false},
		{"@example.com", false},
		{"jane@", false},
		{"jane@@example.com", false},
		{"jane@example", false},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, validEmail(tc.email), "email %q", tc.email)
	}
}

func TestNext_BlockedUntilShippingValid(t *testing.T) {
	ctrl, _ := newTestController(&mockPlacer{})

	err := ctrl.Next()

	require.ErrorIs(t, err, ErrValidationFailed)
	assert.Equal(t, StepShipping, ctrl.Step())
	assert.Equal(t, "Email is required", ctrl.FieldError(FieldEmail))
	assert.Equal(t, "Name is required", ctrl.FieldError(FieldName))
}

func TestNext_AdvancesWithValidShipping(t *testing.T) {
	ctrl, _ := newTestController(&mockPlacer{})
	fillShipping(ctrl)

	require.NoError(t, ctrl.Next())
	assert.Equal(t, StepPayment, ctrl.Step())
}

func TestNext_ShortPostalCodeBlocks(t *testing.T) {
	ctrl, _ := newTestController(&mockPlacer{})
	fillShipping(ctrl)
	ctrl.SetField(FieldPostalCode, "12")

	err := ctrl.Next()

	require.ErrorIs(t, err, ErrValidationFailed)
	assert.Equal(t, "Postal code is too short", ctrl.FieldError(FieldPostalCode))
}

func TestNext_CardMethodRequiresCardFields(t *testing.T) {
	ctrl, _ := newTestController(&mockPlacer{})
	fillShipping(ctrl)
	require.NoError(t, ctrl.Next())

	ctrl.SetField(FieldPaymentMethod, PaymentMethodCard)

	err := ctrl.Next()
	require.ErrorIs(t, err, ErrValidationFailed)
	assert.Equal(t, "This field is required", ctrl.FieldError(FieldCardNumber))

	ctrl.SetField(FieldCardNumber, "4242424242424242")
	ctrl.SetField(FieldCardExpiry, "12/28")
	ctrl.SetField(FieldCardCVV, "123")

	require.NoError(t, ctrl.Next())
	assert.Equal(t, StepReview, ctrl.Step())
}

func TestNext_NonCardMethodSkipsCardFields(t *testing.T) {
	ctrl, _ := newTestController(&mockPlacer{})
	fillShipping(ctrl)
	require.NoError(t, ctrl.Next())

	ctrl.SetField(FieldPaymentMethod, "cod")

	require.NoError(t, ctrl.Next())
	assert.Equal(t, StepReview, ctrl.Step())
}

func TestNext_UnknownPaymentMethodBlocks(t *testing.T) {
	ctrl, _ := newTestController(&mockPlacer{})
	fillShipping(ctrl)
	require.NoError(t, ctrl.Next())

	ctrl.SetField(FieldPaymentMethod, "barter")

	err := ctrl.Next()
	require.ErrorIs(t, err, ErrValidationFailed)
	assert.Equal(t, "Unknown payment method", ctrl.FieldError(FieldPaymentMethod))
}

func TestNext_FromReviewIsNoOp(t *testing.T) {
	ctrl := advanceToReview(t)

	require.NoError(t, ctrl.Next())
	assert.Equal(t, StepReview, ctrl.Step())
}

func TestBack_AlwaysAllowed(t *testing.T) {
	ctrl, _ := newTestController(&mockPlacer{})

	ctrl.Back()
	assert.Equal(t, StepShipping, ctrl.Step())

	fillShipping(ctrl)
	require.NoError(t, ctrl.Next())

	ctrl.SetField(FieldEmail, "broken")
	ctrl.Blur(FieldEmail)

	ctrl.Back()
	assert.Equal(t, StepShipping, ctrl.Step())
}

func advanceToReview(t *testing.T) *Controller {
	t.Helper()
	ctrl, _ := newTestController(&mockPlacer{})
	return advanceControllerToReview(t, ctrl)
}

func advanceControllerToReview(t *testing.T, ctrl *Controller) *Controller {
	t.Helper()
	fillShipping(ctrl)
	require.NoError(t, ctrl.Next())
	ctrl.SetField(FieldPaymentMethod, "cod")
	require.NoError(t, ctrl.Next())
	return ctrl
}

func TestPlaceOrder_OnlyFromReview(t *testing.T) {
	placer := &mockPlacer{}
	ctrl, store := newTestController(placer)

	_, err := ctrl.PlaceOrder(context.Background())

	require.ErrorIs(t, err, ErrNotAtReview)
	assert.Empty(t, placer.placed())
	assert.NotEmpty(t, store.Cart())
}

func TestPlaceOrder_BuildsOrderFromCartAndFields(t *testing.T) {
	placer := &mockPlacer{}
	ctrl, store := newTestController(placer)
	advanceControllerToReview(t, ctrl)

	placed, err := ctrl.PlaceOrder(context.Background())
	require.NoError(t, err)

	require.Len(t, placer.placed(), 1)
	assert.Equal(t, "jane@example.com", placed.Email)
	assert.Equal(t, "cod", placed.PaymentMethod)
	assert.Equal(t, "USD", placed.CurrencyCode)
	assert.Equal(t, int64(200), placed.TotalAmount)
	require.Len(t, placed.Items, 2)
	assert.Equal(t, "black", placed.Items[0].SelectedColor)
	assert.Empty(t, store.Cart())
}

func TestPlaceOrder_ResetsController(t *testing.T) {
	ctrl, _ := newTestController(&mockPlacer{})
	advanceControllerToReview(t, ctrl)

	_, err := ctrl.PlaceOrder(context.Background())
	require.NoError(t, err)

	assert.Equal(t, StepShipping, ctrl.Step())
	assert.Empty(t, ctrl.FieldValue(FieldEmail))
}

func TestPlaceOrder_ClearsCartEvenOnFailure(t *testing.T) {
	placerErr := errors.New("payment gateway down")
	placer := &mockPlacer{err: placerErr}
	ctrl, store := newTestController(placer)
	advanceControllerToReview(t, ctrl)

	_, err := ctrl.PlaceOrder(context.Background())

	require.ErrorIs(t, err, placerErr)
	assert.Empty(t, store.Cart())
	assert.Equal(t, StepShipping, ctrl.Step())
}

func TestPlaceOrder_EmptyCart(t *testing.T) {
	placer := &mockPlacer{}
	ctrl, store := newTestController(placer)
	advanceControllerToReview(t, ctrl)
	store.ClearCart()

	_, err := ctrl.PlaceOrder(context.Background())

	require.ErrorIs(t, err, ErrEmptyCart)
	assert.Empty(t, placer.placed())
}
