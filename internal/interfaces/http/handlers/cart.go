// internal/interfaces/http/handlers/cart.go
package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/your-org/storefront-session/internal/domain/catalog"
	"github.com/your-org/storefront-session/internal/domain/session"
)

// CartHandler handles cart and saved-for-later endpoints
type CartHandler struct {
	sessions *session.Manager
	products catalog.Provider
}

// NewCartHandler creates a new cart handler
func NewCartHandler(sessions *session.Manager, products catalog.Provider) *CartHandler {
	return &CartHandler{
		sessions: sessions,
		products: products,
	}
}

// AddToCartRequest represents a request to add a product to the cart
type AddToCartRequest struct {
	ProductID     uint   `json:"product_id" binding:"required"`
	Quantity      int    `json:"quantity"`
	SelectedColor string `json:"selected_color"`
}

// UpdateQuantityRequest represents a cart line quantity change
type UpdateQuantityRequest struct {
	Quantity int `json:"quantity" binding:"min=0"`
}

// GetCart handles GET /cart
func (h *CartHandler) GetCart(c *gin.Context) {
	store := h.sessions.Store(c.Request.Context(), getOrCreateSessionID(c))

	c.JSON(http.StatusOK, gin.H{
		"message": "Cart retrieved successfully",
		"data":    buildCartView(store),
	})
}

// AddToCart handles POST /cart/items
func (h *CartHandler) AddToCart(c *gin.Context) {
	store := h.sessions.Store(c.Request.Context(), getOrCreateSessionID(c))

	var req AddToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	product, err := h.products.GetProduct(c.Request.Context(), req.ProductID)
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

	if req.SelectedColor != "" && !product.HasColor(req.SelectedColor) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Selected color is not available for this product",
		})
		return
	}

	store.AddToCart(*product, req.Quantity, req.SelectedColor)

	c.JSON(http.StatusOK, gin.H{
		"message": "Item added to cart",
		"data":    buildCartView(store),
	})
}

// UpdateCartItem handles PUT /cart/items/:id
func (h *CartHandler) UpdateCartItem(c *gin.Context) {
	store := h.sessions.Store(c.Request.Context(), getOrCreateSessionID(c))

	productID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid product ID",
		})
		return
	}

	var req UpdateQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	store.UpdateQuantity(uint(productID), req.Quantity, c.Query("color"))

	c.JSON(http.StatusOK, gin.H{
		"message": "Cart updated successfully",
		"data":    buildCartView(store),
	})
}

// RemoveFromCart handles DELETE /cart/items/:id
func (h *CartHandler) RemoveFromCart(c *gin.Context) {
	store := h.sessions.Store(c.Request.Context(), getOrCreateSessionID(c))

	productID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid product ID",
		})
		return
	}

	store.RemoveFromCart(uint(productID), c.Query("color"))

	c.JSON(http.StatusOK, gin.H{
		"message": "Item removed from cart",
		"data":    buildCartView(store),
	})
}

// ClearCart handles DELETE /cart
func (h *CartHandler) ClearCart(c *gin.Context) {
	store := h.sessions.Store(c.Request.Context(), getOrCreateSessionID(c))

	store.ClearCart()

	c.JSON(http.StatusOK, gin.H{
		"message": "Cart cleared successfully",
		"data":    buildCartView(store),
	})
}

// SaveForLater handles POST /cart/items/:id/save
func (h *CartHandler) SaveForLater(c *gin.Context) {
	store := h.sessions.Store(c.Request.Context(), getOrCreateSessionID(c))

	productID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid product ID",
		})
		return
	}

	store.MoveToSaved(uint(productID), c.Query("color"))

	c.JSON(http.StatusOK, gin.H{
		"message": "Item saved for later",
		"data": gin.H{
			"cart":  buildCartView(store),
			"saved": buildLineViews(store, store.SavedForLater()),
		},
	})
}

// GetSavedForLater handles GET /cart/saved
func (h *CartHandler) GetSavedForLater(c *gin.Context) {
	store := h.sessions.Store(c.Request.Context(), getOrCreateSessionID(c))

	saved := store.SavedForLater()

	c.JSON(http.StatusOK, gin.H{
		"message": "Saved items retrieved successfully",
		"data": gin.H{
			"items": buildLineViews(store, saved),
			"count": len(saved),
		},
	})
}

// MoveToCart handles POST /cart/saved/:id/restore
func (h *CartHandler) MoveToCart(c *gin.Context) {
	store := h.sessions.Store(c.Request.Context(), getOrCreateSessionID(c))

	productID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid product ID",
		})
		return
	}

	store.MoveToCart(uint(productID), c.Query("color"))

	c.JSON(http.StatusOK, gin.H{
		"message": "Item moved to cart",
		"data": gin.H{
			"cart":  buildCartView(store),
			"saved": buildLineViews(store, store.SavedForLater()),
		},
	})
}

// RemoveFromSaved handles DELETE /cart/saved/:id
func (h *CartHandler) RemoveFromSaved(c *gin.Context) {
	store := h.sessions.Store(c.Request.Context(), getOrCreateSessionID(c))

	productID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid product ID",
		})
		return
	}

	store.RemoveFromSaved(uint(productID), c.Query("color"))

	c.JSON(http.StatusOK, gin.H{
		"message": "Saved item removed",
		"data": gin.H{
			"items": buildLineViews(store, store.SavedForLater()),
		},
	})
}
