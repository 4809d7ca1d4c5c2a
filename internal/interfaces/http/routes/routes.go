// internal/interfaces/http/routes/routes.go
package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/your-org/storefront-session/internal/config"
	"github.com/your-org/storefront-session/internal/domain/catalog"
	"github.com/your-org/storefront-session/internal/domain/checkout"
	"github.com/your-org/storefront-session/internal/domain/session"
	"github.com/your-org/storefront-session/internal/interfaces/http/handlers"
	"github.com/your-org/storefront-session/internal/interfaces/http/middleware"
)

// Dependencies carries the shared services the route handlers are built on
type Dependencies struct {
	Config    *config.Config
	Sessions  *session.Manager
	Checkouts *checkout.Registry
	Catalog   *catalog.Service
}

// SetupRoutes wires every route group onto the API router
func SetupRoutes(rg *gin.RouterGroup, deps *Dependencies) {
	rg.Use(middleware.OptionalAuthMiddleware(deps.Config))

	SetupCatalogRoutes(rg, deps)
	SetupCartRoutes(rg, deps)
	SetupWishlistRoutes(rg, deps)
	SetupCurrencyRoutes(rg, deps)
	SetupCheckoutRoutes(rg, deps)
	SetupSessionRoutes(rg, deps)
	SetupAdminRoutes(rg, deps)
}

// SetupCatalogRoutes sets up public product catalog routes
func SetupCatalogRoutes(rg *gin.RouterGroup, deps *Dependencies) {
	catalogHandler := handlers.NewCatalogHandler(deps.Catalog)

	products := rg.Group("/products")
	{
		products.GET("", catalogHandler.GetProducts)
		products.GET("/:id", catalogHandler.GetProduct)
	}
}

// SetupCartRoutes sets up cart and saved-for-later routes
func SetupCartRoutes(rg *gin.RouterGroup, deps *Dependencies) {
	cartHandler := handlers.NewCartHandler(deps.Sessions, deps.Catalog)

	cart := rg.Group("/cart")
	{
		cart.GET("", cartHandler.GetCart)
		cart.DELETE("", cartHandler.ClearCart)
		cart.POST("/items", cartHandler.AddToCart)
		cart.PUT("/items/:id", cartHandler.UpdateCartItem)
		cart.DELETE("/items/:id", cartHandler.RemoveFromCart)
		cart.POST("/items/:id/save", cartHandler.SaveForLater)

		cart.GET("/saved", cartHandler.GetSavedForLater)
		cart.POST("/saved/:id/restore", cartHandler.MoveToCart)
		cart.DELETE("/saved/:id", cartHandler.RemoveFromSaved)
	}
}

// SetupWishlistRoutes sets up wishlist routes
func SetupWishlistRoutes(rg *gin.RouterGroup, deps *Dependencies) {
	wishlistHandler := handlers.NewWishlistHandler(deps.Sessions, deps.Catalog)

	wishlist := rg.Group("/wishlist")
	{
		wishlist.GET("", wishlistHandler.GetWishlist)
		wishlist.POST("/toggle", wishlistHandler.ToggleWishlist)
		wishlist.GET("/:id", wishlistHandler.CheckWishlist)
	}
}

// SetupCurrencyRoutes sets up display currency routes
func SetupCurrencyRoutes(rg *gin.RouterGroup, deps *Dependencies) {
	currencyHandler := handlers.NewCurrencyHandler(deps.Sessions)

	rg.GET("/currencies", currencyHandler.ListCurrencies)
	rg.PUT("/currency", currencyHandler.SetCurrency)
}

// SetupCheckoutRoutes sets up the checkout flow routes
func SetupCheckoutRoutes(rg *gin.RouterGroup, deps *Dependencies) {
	checkoutHandler := handlers.NewCheckoutHandler(deps.Sessions, deps.Checkouts)

	co := rg.Group("/checkout")
	{
		co.GET("", checkoutHandler.GetCheckout)
		co.PUT("/fields", checkoutHandler.SetField)
		co.POST("/fields/blur", checkoutHandler.BlurField)
		co.POST("/next", checkoutHandler.NextStep)
		co.POST("/back", checkoutHandler.PreviousStep)
		co.POST("/order", checkoutHandler.PlaceOrder)
	}
}

// SetupSessionRoutes sets up the aggregate session view and UI state routes
func SetupSessionRoutes(rg *gin.RouterGroup, deps *Dependencies) {
	sessionHandler := handlers.NewSessionHandler(deps.Sessions, deps.Catalog)

	sess := rg.Group("/session")
	{
		sess.GET("", sessionHandler.GetSession)
		sess.PUT("/mini-cart", sessionHandler.SetMiniCart)
		sess.PUT("/quick-view", sessionHandler.SetQuickView)
	}
}

// SetupAdminRoutes sets up catalog management routes, admin token required
func SetupAdminRoutes(rg *gin.RouterGroup, deps *Dependencies) {
	catalogHandler := handlers.NewCatalogHandler(deps.Catalog)

	admin := rg.Group("/admin")
	admin.Use(middleware.AuthMiddleware(deps.Config))
	admin.Use(middleware.AdminMiddleware())
	{
		admin.POST("/products", catalogHandler.CreateProduct)
		admin.PUT("/products/:id", catalogHandler.UpdateProduct)
		admin.DELETE("/products/:id", catalogHandler.DeleteProduct)
	}
}
