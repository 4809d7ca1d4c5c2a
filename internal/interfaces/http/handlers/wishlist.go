// internal/interfaces/http/handlers/wishlist.go
package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/your-org/storefront-session/internal/domain/catalog"
	"github.com/your-org/storefront-session/internal/domain/session"
)

// WishlistHandler handles wishlist endpoints
type WishlistHandler struct {
	sessions *session.Manager
	products catalog.Provider
}

// NewWishlistHandler creates a new wishlist handler
func NewWishlistHandler(sessions *session.Manager, products catalog.Provider) *WishlistHandler {
	return &WishlistHandler{
		sessions: sessions,
		products: products,
	}
}

// ToggleWishlistRequest represents a wishlist toggle request
type ToggleWishlistRequest struct {
	ProductID uint `json:"product_id" binding:"required"`
}

// GetWishlist handles GET /wishlist
func (h *WishlistHandler) GetWishlist(c *gin.Context) {
	store := h.sessions.Store(c.Request.Context(), getOrCreateSessionID(c))

	items := store.Wishlist()

	c.JSON(http.StatusOK, gin.H{
		"message": "Wishlist retrieved successfully",
		"data": gin.H{
			"items": items,
			"count": len(items),
		},
	})
}

// ToggleWishlist handles POST /wishlist/toggle
func (h *WishlistHandler) ToggleWishlist(c *gin.Context) {
	store := h.sessions.Store(c.Request.Context(), getOrCreateSessionID(c))

	var req ToggleWishlistRequest
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

	store.ToggleWishlist(*product)

	c.JSON(http.StatusOK, gin.H{
		"message": "Wishlist updated successfully",
		"data": gin.H{
			"in_wishlist": store.IsInWishlist(product.ID),
			"count":       len(store.Wishlist()),
		},
	})
}

// CheckWishlist handles GET /wishlist/:id
func (h *WishlistHandler) CheckWishlist(c *gin.Context) {
	store := h.sessions.Store(c.Request.Context(), getOrCreateSessionID(c))

	productID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid product ID",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Wishlist status retrieved",
		"data": gin.H{
			"in_wishlist": store.IsInWishlist(uint(productID)),
		},
	})
}
