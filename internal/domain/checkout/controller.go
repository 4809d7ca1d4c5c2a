// internal/domain/checkout/controller.go
package checkout

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/your-org/storefront-session/internal/domain/order"
	"github.com/your-org/storefront-session/internal/domain/session"
)

// Step is a checkout progression state
type Step int

const (
	StepShipping Step = iota
	StepPayment
	StepReview
)

// String returns the step's wire name
func (s Step) String() string {
	switch s {
	case StepShipping:
		return "shipping"
	case StepPayment:
		return "payment"
	case StepReview:
		return "review"
	}
	return "unknown"
}

// Field identifies a checkout form field
type Field string

const (
	FieldEmail         Field = "email"
	FieldName          Field = "name"
	FieldAddress       Field = "address"
	FieldCity          Field = "city"
	FieldPostalCode    Field = "postal_code"
	FieldPaymentMethod Field = "payment_method"
	FieldCardNumber    Field = "card_number"
	FieldCardExpiry    Field = "card_expiry"
	FieldCardCVV       Field = "card_cvv"
)

// PaymentMethodCard is the only method with additional required fields
const PaymentMethodCard = "card"

// paymentMethods are the selectable payment options
var paymentMethods = []string{PaymentMethodCard, "cod", "wallet"}

const minPostalCodeLength = 4

var (
	// ErrValidationFailed is returned when a forward transition is blocked by
	// invalid fields. Per-field messages are available via FieldError.
	ErrValidationFailed = errors.New("validation failed")

	// ErrNotAtReview is returned when PlaceOrder is called before Review
	ErrNotAtReview = errors.New("order can only be placed from the review step")

	// ErrEmptyCart is returned when checkout starts or completes on an empty cart
	ErrEmptyCart = errors.New("cart is empty")
)

// Controller is the client-held checkout state machine layered on the
// session store's cart. Progression is linear Shipping -> Payment -> Review;
// forward movement is gated by validation, backward movement never is.
// Field validity is computed on blur, not on every keystroke.
type Controller struct {
	mu     sync.Mutex
	store  *session.Store
	placer order.Placer
	step   Step
	values map[Field]string
	errors map[Field]string
}

// NewController creates a controller bound to a session store
func NewController(store *session.Store, placer order.Placer) *Controller {
	return &Controller{
		store:  store,
		placer: placer,
		step:   StepShipping,
		values: make(map[Field]string),
		errors: make(map[Field]string),
	}
}

// Step returns the current checkout step
func (c *Controller) Step() Step {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.step
}

// SetField records a field's current value without validating it, so typing
// never flashes premature errors
func (c *Controller) SetField(f Field, value string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.values[f] = value
}

// Blur validates a single field when it loses focus. The result is advisory:
// it only blocks the forward step transition, never further editing.
func (c *Controller) Blur(f Field) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.validateLocked(f)
}

// FieldValue returns a field's current value
func (c *Controller) FieldValue(f Field) string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.values[f]
}

// FieldError returns the field's validation message, empty when valid or
// not yet validated
func (c *Controller) FieldError(f Field) string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.errors[f]
}

// FieldValues returns a copy of all entered field values
func (c *Controller) FieldValues() map[Field]string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make(map[Field]string, len(c.values))
	for f, value := range c.values {
		out[f] = value
	}
	return out
}

// FieldErrors returns a copy of all current validation messages
func (c *Controller) FieldErrors() map[Field]string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make(map[Field]string, len(c.errors))
	for f, msg := range c.errors {
		out[f] = msg
	}
	return out
}

// Next advances to the following step if every field the current step
// requires is present and valid. On failure the controller stays put and the
// per-field messages are refreshed. Next from Review is a no-op; placing the
// order is a separate action.
func (c *Controller) Next() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch c.step {
	case StepShipping:
		if !c.validateAllLocked(shippingFields()) {
			return ErrValidationFailed
		}
		c.step = StepPayment
	case StepPayment:
		if !c.validateAllLocked(c.paymentFieldsLocked()) {
			return ErrValidationFailed
		}
		c.step = StepReview
	}
	return nil
}

// Back moves to the previous step. Backward navigation is always permitted
// regardless of field state.
func (c *Controller) Back() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.step > StepShipping {
		c.step--
	}
}

// PlaceOrder is the terminal action, reachable only from Review and without
// re-validation. On any placer result the cart is cleared; the result is
// reported upward unchanged with no compensating action on failure.
func (c *Controller) PlaceOrder(ctx context.Context) (*order.Order, error) {
	c.mu.Lock()
	if c.step != StepReview {
		c.mu.Unlock()
		return nil, ErrNotAtReview
	}

	lines := c.store.Cart()
	if len(lines) == 0 {
		c.mu.Unlock()
		return nil, ErrEmptyCart
	}

	o := &order.Order{
		Email:         c.values[FieldEmail],
		Name:          c.values[FieldName],
		Address:       c.values[FieldAddress],
		City:          c.values[FieldCity],
		PostalCode:    c.values[FieldPostalCode],
		PaymentMethod: c.values[FieldPaymentMethod],
		CurrencyCode:  c.store.ActiveCurrency().Code,
		TotalAmount:   c.store.CartTotal(),
	}
	for _, line := range lines {
		o.Items = append(o.Items, order.OrderItem{
			ProductID:     line.Product.ID,
			Name:          line.Product.Name,
			Price:         line.Product.Price,
			Quantity:      line.Quantity,
			SelectedColor: line.SelectedColor,
		})
	}
	c.mu.Unlock()

	err := c.placer.PlaceOrder(ctx, o)

	c.store.ClearCart()
	c.reset()

	if err != nil {
		return nil, err
	}
	return o, nil
}

// reset returns the controller to its initial, empty state
func (c *Controller) reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.step = StepShipping
	c.values = make(map[Field]string)
	c.errors = make(map[Field]string)
}

func shippingFields() []Field {
	return []Field{FieldEmail, FieldName, FieldAddress, FieldCity, FieldPostalCode}
}

// paymentFieldsLocked returns the payment step's required fields; card
// details only count when the card method is selected
func (c *Controller) paymentFieldsLocked() []Field {
	fields := []Field{FieldPaymentMethod}
	if c.values[FieldPaymentMethod] == PaymentMethodCard {
		fields = append(fields, FieldCardNumber, FieldCardExpiry, FieldCardCVV)
	}
	return fields
}

func (c *Controller) validateAllLocked(fields []Field) bool {
	ok := true
	for _, f := range fields {
		if !c.validateLocked(f) {
			ok = false
		}
	}
	return ok
}

// validateLocked computes a single field's validity and records its message
func (c *Controller) validateLocked(f Field) bool {
	value := strings.TrimSpace(c.values[f])
	var msg string

	switch f {
	case FieldEmail:
		if value == "" {
			msg = "Email is required"
		} else if !validEmail(value) {
			msg = "Enter a valid email address"
		}
	case FieldName:
		if value == "" {
			msg = "Name is required"
		}
	case FieldAddress:
		if value == "" {
			msg = "Address is required"
		}
	case FieldCity:
		if value == "" {
			msg = "City is required"
		}
	case FieldPostalCode:
		if value == "" {
			msg = "Postal code is required"
		} else if len(value) < minPostalCodeLength {
			msg = "Postal code is too short"
		}
	case FieldPaymentMethod:
		if value == "" {
			msg = "Select a payment method"
		} else if !validPaymentMethod(value) {
			msg = "Unknown payment method"
		}
	case FieldCardNumber, FieldCardExpiry, FieldCardCVV:
		// Presence only; format is left to the payment processor
		if c.values[FieldPaymentMethod] == PaymentMethodCard && value == "" {
			msg = "This field is required"
		}
	}

	if msg == "" {
		delete(c.errors, f)
		return true
	}
	c.errors[f] = msg
	return false
}

// validEmail applies the structural check: exactly one '@' with non-empty
// segments on both sides and at least one '.' after it
func validEmail(s string) bool {
	at := strings.Index(s, "@")
	if at <= 0 || at != strings.LastIndex(s, "@") || at == len(s)-1 {
		return false
	}
	return strings.Contains(s[at+1:], ".")
}

func validPaymentMethod(method string) bool {
	for _, m := range paymentMethods {
		if m == method {
			return true
		}
	}
	return false
}
