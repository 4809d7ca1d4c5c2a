// internal/interfaces/http/handlers/session.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/storefront-session/internal/domain/catalog"
	"github.com/your-org/storefront-session/internal/domain/session"
	"github.com/your-org/storefront-session/internal/interfaces/http/middleware"
)

// SessionHandler handles the aggregate session view and UI state endpoints
type SessionHandler struct {
	sessions *session.Manager
	products catalog.Provider
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(sessions *session.Manager, products catalog.Provider) *SessionHandler {
	return &SessionHandler{
		sessions: sessions,
		products: products,
	}
}

// MiniCartRequest represents a mini-cart visibility change
type MiniCartRequest struct {
	Open *bool `json:"open" binding:"required"`
}

// QuickViewRequest represents a quick-view target change, a null product
// id closes the overlay
type QuickViewRequest struct {
	ProductID *uint `json:"product_id"`
}

// GetSession handles GET /session
func (h *SessionHandler) GetSession(c *gin.Context) {
	store := h.sessions.Store(c.Request.Context(), getOrCreateSessionID(c))

	displayName := "Guest"
	if name, ok := middleware.GetDisplayNameFromContext(c); ok {
		displayName = name
	}

	wishlist := store.Wishlist()
	saved := store.SavedForLater()

	c.JSON(http.StatusOK, gin.H{
		"message": "Session retrieved successfully",
		"data": gin.H{
			"display_name":   displayName,
			"cart":           buildCartView(store),
			"wishlist_count": len(wishlist),
			"saved_count":    len(saved),
			"currency":       store.ActiveCurrency(),
			"ui": gin.H{
				"mini_cart_open": store.MiniCartOpen(),
				"quick_view":     store.QuickViewProduct(),
			},
		},
	})
}

// SetMiniCart handles PUT /session/mini-cart
func (h *SessionHandler) SetMiniCart(c *gin.Context) {
	store := h.sessions.Store(c.Request.Context(), getOrCreateSessionID(c))

	var req MiniCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	store.SetMiniCartOpen(*req.Open)

	c.JSON(http.StatusOK, gin.H{
		"message": "Mini-cart state updated",
		"data": gin.H{
			"mini_cart_open": store.MiniCartOpen(),
		},
	})
}

// SetQuickView handles PUT /session/quick-view
func (h *SessionHandler) SetQuickView(c *gin.Context) {
	store := h.sessions.Store(c.Request.Context(), getOrCreateSessionID(c))

	var req QuickViewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	if req.ProductID == nil {
		store.SetQuickViewProduct(nil)
		c.JSON(http.StatusOK, gin.H{
			"message": "Quick view closed",
		})
		return
	}

	product, err := h.products.GetProduct(c.Request.Context(), *req.ProductID)
	if err != nil {
		if errors.Is(err, catalog.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Product not found",
			})
			return
		}
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error": "Catalog unavailable",
		})
		return
	}

	store.SetQuickViewProduct(product)

	c.JSON(http.StatusOK, gin.H{
		"message": "Quick view opened",
		"data": gin.H{
			"quick_view": store.QuickViewProduct(),
		},
	})
}
