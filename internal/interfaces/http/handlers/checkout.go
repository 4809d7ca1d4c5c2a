// internal/interfaces/http/handlers/checkout.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/storefront-session/internal/domain/checkout"
	"github.com/your-org/storefront-session/internal/domain/session"
)

// CheckoutHandler handles checkout flow endpoints
type CheckoutHandler struct {
	sessions  *session.Manager
	checkouts *checkout.Registry
}

// NewCheckoutHandler creates a new checkout handler
func NewCheckoutHandler(sessions *session.Manager, checkouts *checkout.Registry) *CheckoutHandler {
	return &CheckoutHandler{
		sessions:  sessions,
		checkouts: checkouts,
	}
}

// SetFieldRequest represents a checkout form field write
type SetFieldRequest struct {
	Field string `json:"field" binding:"required"`
	Value string `json:"value"`
}

// BlurFieldRequest represents a checkout form field blur
type BlurFieldRequest struct {
	Field string `json:"field" binding:"required"`
}

var checkoutFields = map[string]checkout.Field{
	"email":          checkout.FieldEmail,
	"name":           checkout.FieldName,
	"address":        checkout.FieldAddress,
	"city":           checkout.FieldCity,
	"postal_code":    checkout.FieldPostalCode,
	"payment_method": checkout.FieldPaymentMethod,
	"card_number":    checkout.FieldCardNumber,
	"card_expiry":    checkout.FieldCardExpiry,
	"card_cvv":       checkout.FieldCardCVV,
}

func (h *CheckoutHandler) controller(c *gin.Context) *checkout.Controller {
	sessionID := getOrCreateSessionID(c)
	store := h.sessions.Store(c.Request.Context(), sessionID)
	return h.checkouts.Controller(sessionID, store)
}

func checkoutState(ctrl *checkout.Controller, store *session.Store) gin.H {
	return gin.H{
		"step":   ctrl.Step().String(),
		"values": ctrl.FieldValues(),
		"errors": ctrl.FieldErrors(),
		"cart":   buildCartView(store),
	}
}

// GetCheckout handles GET /checkout
func (h *CheckoutHandler) GetCheckout(c *gin.Context) {
	store := h.sessions.Store(c.Request.Context(), getOrCreateSessionID(c))
	ctrl := h.controller(c)

	c.JSON(http.StatusOK, gin.H{
		"message": "Checkout state retrieved",
		"data":    checkoutState(ctrl, store),
	})
}

// SetField handles PUT /checkout/fields
func (h *CheckoutHandler) SetField(c *gin.Context) {
	var req SetFieldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	field, ok := checkoutFields[req.Field]
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Unknown checkout field",
		})
		return
	}

	ctrl := h.controller(c)
	ctrl.SetField(field, req.Value)

	c.JSON(http.StatusOK, gin.H{
		"message": "Field updated",
		"data": gin.H{
			"field": req.Field,
			"value": ctrl.FieldValue(field),
		},
	})
}

// BlurField handles POST /checkout/fields/blur
func (h *CheckoutHandler) BlurField(c *gin.Context) {
	var req BlurFieldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	field, ok := checkoutFields[req.Field]
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Unknown checkout field",
		})
		return
	}

	ctrl := h.controller(c)
	ctrl.Blur(field)

	c.JSON(http.StatusOK, gin.H{
		"message": "Field validated",
		"data": gin.H{
			"field": req.Field,
			"error": ctrl.FieldError(field),
		},
	})
}

// NextStep handles POST /checkout/next
func (h *CheckoutHandler) NextStep(c *gin.Context) {
	store := h.sessions.Store(c.Request.Context(), getOrCreateSessionID(c))
	ctrl := h.controller(c)

	if err := ctrl.Next(); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error": "Validation failed",
			"data":  checkoutState(ctrl, store),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Advanced to next step",
		"data":    checkoutState(ctrl, store),
	})
}

// PreviousStep handles POST /checkout/back
func (h *CheckoutHandler) PreviousStep(c *gin.Context) {
	store := h.sessions.Store(c.Request.Context(), getOrCreateSessionID(c))
	ctrl := h.controller(c)

	ctrl.Back()

	c.JSON(http.StatusOK, gin.H{
		"message": "Returned to previous step",
		"data":    checkoutState(ctrl, store),
	})
}

// PlaceOrder handles POST /checkout/order
func (h *CheckoutHandler) PlaceOrder(c *gin.Context) {
	sessionID := getOrCreateSessionID(c)
	store := h.sessions.Store(c.Request.Context(), sessionID)
	ctrl := h.checkouts.Controller(sessionID, store)

	placed, err := ctrl.PlaceOrder(c.Request.Context())
	if err != nil {
		switch {
		case errors.Is(err, checkout.ErrNotAtReview):
			c.JSON(http.StatusConflict, gin.H{
				"error": "Checkout is not at the review step",
			})
		case errors.Is(err, checkout.ErrEmptyCart):
			c.JSON(http.StatusConflict, gin.H{
				"error": "Cart is empty",
			})
		default:
			c.JSON(http.StatusBadGateway, gin.H{
				"error": "Order placement failed",
				"data":  checkoutState(ctrl, store),
			})
		}
		return
	}

	h.checkouts.Drop(sessionID)

	c.JSON(http.StatusCreated, gin.H{
		"message": "Order placed successfully",
		"data": gin.H{
			"reference": placed.Reference,
			"cart":      buildCartView(store),
		},
	})
}
