// internal/interfaces/http/handlers/currency.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/storefront-session/internal/domain/currency"
	"github.com/your-org/storefront-session/internal/domain/session"
)

// CurrencyHandler handles currency endpoints
type CurrencyHandler struct {
	sessions *session.Manager
}

// NewCurrencyHandler creates a new currency handler
func NewCurrencyHandler(sessions *session.Manager) *CurrencyHandler {
	return &CurrencyHandler{
		sessions: sessions,
	}
}

// SetCurrencyRequest represents a display currency change
type SetCurrencyRequest struct {
	Code string `json:"code" binding:"required"`
}

// ListCurrencies handles GET /currencies
func (h *CurrencyHandler) ListCurrencies(c *gin.Context) {
	store := h.sessions.Store(c.Request.Context(), getOrCreateSessionID(c))

	c.JSON(http.StatusOK, gin.H{
		"message": "Currencies retrieved successfully",
		"data": gin.H{
			"currencies": currency.Catalog(),
			"active":     store.ActiveCurrency(),
		},
	})
}

// SetCurrency handles PUT /currency
func (h *CurrencyHandler) SetCurrency(c *gin.Context) {
	store := h.sessions.Store(c.Request.Context(), getOrCreateSessionID(c))

	var req SetCurrencyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	cur, ok := currency.Lookup(req.Code)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Unknown currency code",
		})
		return
	}

	store.SetCurrency(cur)

	c.JSON(http.StatusOK, gin.H{
		"message": "Currency updated successfully",
		"data": gin.H{
			"active": store.ActiveCurrency(),
			"cart":   buildCartView(store),
		},
	})
}
