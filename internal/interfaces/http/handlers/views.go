// internal/interfaces/http/handlers/views.go
package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/your-org/storefront-session/internal/domain/catalog"
	"github.com/your-org/storefront-session/internal/domain/currency"
	"github.com/your-org/storefront-session/internal/domain/session"
)

const (
	sessionCookieName = "storefront_session"
	sessionContextKey = "session_id"
)

// getOrCreateSessionID resolves the commerce session id from the request,
// minting a new one for first-time visitors. The resolved id is cached on the
// gin context so every resolution within one request agrees.
func getOrCreateSessionID(c *gin.Context) string {
	if cached, ok := c.Get(sessionContextKey); ok {
		return cached.(string)
	}

	sessionID := resolveSessionID(c)
	c.Set(sessionContextKey, sessionID)
	return sessionID
}

func resolveSessionID(c *gin.Context) string {
	if cookie, err := c.Cookie(sessionCookieName); err == nil && cookie != "" {
		return cookie
	}
	if header := c.GetHeader("X-Session-ID"); header != "" {
		return header
	}

	sessionID := uuid.New().String()
	c.SetCookie(sessionCookieName, sessionID, 30*24*3600, "/", "", false, true)
	return sessionID
}

// LineView is a cart or saved line with its formatted prices
type LineView struct {
	Product           catalog.Product `json:"product"`
	Quantity          int             `json:"quantity"`
	SelectedColor     string          `json:"selected_color,omitempty"`
	Subtotal          int64           `json:"subtotal"`
	FormattedPrice    string          `json:"formatted_price"`
	FormattedSubtotal string          `json:"formatted_subtotal"`
}

// CartView is the cart with totals in base units and display formatting
type CartView struct {
	Lines          []LineView        `json:"lines"`
	ItemCount      int               `json:"item_count"`
	TotalQuantity  int               `json:"total_quantity"`
	Total          int64             `json:"total"`
	FormattedTotal string            `json:"formatted_total"`
	Currency       currency.Currency `json:"currency"`
}

func buildLineViews(store *session.Store, lines []session.CartLine) []LineView {
	views := make([]LineView, len(lines))
	for i, line := range lines {
		views[i] = LineView{
			Product:           line.Product,
			Quantity:          line.Quantity,
			SelectedColor:     line.SelectedColor,
			Subtotal:          line.Subtotal(),
			FormattedPrice:    store.FormatPrice(line.Product.Price),
			FormattedSubtotal: store.FormatPrice(line.Subtotal()),
		}
	}
	return views
}

func buildCartView(store *session.Store) CartView {
	lines := store.Cart()
	total := store.CartTotal()

	totalQuantity := 0
	for _, line := range lines {
		totalQuantity += line.Quantity
	}

	return CartView{
		Lines:          buildLineViews(store, lines),
		ItemCount:      len(lines),
		TotalQuantity:  totalQuantity,
		Total:          total,
		FormattedTotal: store.FormatPrice(total),
		Currency:       store.ActiveCurrency(),
	}
}
