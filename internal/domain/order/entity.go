// internal/domain/order/entity.go
package order

import (
	"time"

	"gorm.io/gorm"
)

// Order is the record written at the terminal checkout transition. Amounts
// are in base units; the currency code is the display currency active when
// the order was placed.
type Order struct {
	ID            uint           `gorm:"primaryKey" json:"id"`
	Reference     string         `gorm:"uniqueIndex;not null;size:64" json:"reference"`
	Email         string         `gorm:"not null;size:255" json:"email"`
	Name          string         `gorm:"not null;size:255" json:"name"`
	Address       string         `gorm:"not null;size:500" json:"address"`
	City          string         `gorm:"not null;size:255" json:"city"`
	PostalCode    string         `gorm:"not null;size:32" json:"postal_code"`
	PaymentMethod string         `gorm:"not null;size:32" json:"payment_method"`
	CurrencyCode  string         `gorm:"not null;size:8" json:"currency_code"`
	TotalAmount   int64          `gorm:"not null" json:"total_amount"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Items []OrderItem `gorm:"foreignKey:OrderID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"items"`
}

// OrderItem is a cart line frozen into an order
type OrderItem struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	OrderID       uint      `gorm:"not null;index" json:"order_id"`
	ProductID     uint      `gorm:"not null;index" json:"product_id"`
	Name          string    `gorm:"not null;size:255" json:"name"`
	Price         int64     `gorm:"not null" json:"price"`
	Quantity      int       `gorm:"not null;default:1" json:"quantity"`
	SelectedColor string    `gorm:"size:64" json:"selected_color,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// TableName overrides
func (Order) TableName() string     { return "orders" }
func (OrderItem) TableName() string { return "order_items" }
