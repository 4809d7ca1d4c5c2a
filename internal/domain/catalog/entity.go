// internal/domain/catalog/entity.go
package catalog

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// Product represents a storefront product. Prices are stored in base units;
// display conversion happens at formatting time only.
type Product struct {
	ID                uint           `gorm:"primaryKey" json:"id"`
	SKU               string         `gorm:"uniqueIndex;not null;size:100" json:"sku"`
	Name              string         `gorm:"not null;size:255" json:"name"`
	Slug              string         `gorm:"uniqueIndex;not null;size:255" json:"slug"`
	Description       string         `gorm:"type:text" json:"description"`
	Price             int64          `gorm:"not null" json:"price"`
	ComparePrice      int64          `json:"compare_price"` // Prior price for markdowns, 0 if none
	Quantity          int            `gorm:"default:0" json:"quantity"`
	CategoryID        uint           `gorm:"not null;index" json:"category_id"`
	Colors            string         `gorm:"size:500" json:"colors"` // Comma-separated color variants
	ImageURL          string         `gorm:"size:500" json:"image_url"`
	SecondaryImageURL string         `gorm:"size:500" json:"secondary_image_url"`
	IsActive          bool           `gorm:"default:true" json:"is_active"`
	CreatedAt         time.Time      `json:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at"`
	DeletedAt         gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Category Category `gorm:"foreignKey:CategoryID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"category"`
}

// Category represents product categories
type Category struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Name      string         `gorm:"not null;size:255" json:"name"`
	Slug      string         `gorm:"uniqueIndex;not null;size:255" json:"slug"`
	IsActive  bool           `gorm:"default:true" json:"is_active"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName overrides
func (Product) TableName() string  { return "products" }
func (Category) TableName() string { return "categories" }

// ColorVariants returns the product's color options, empty when it has none
func (p *Product) ColorVariants() []string {
	if p.Colors == "" {
		return nil
	}
	parts := strings.Split(p.Colors, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// HasColor reports whether color is one of the product's variants.
// The empty color is always valid and means "no variant selected".
func (p *Product) HasColor(color string) bool {
	if color == "" {
		return true
	}
	for _, c := range p.ColorVariants() {
		if strings.EqualFold(c, color) {
			return true
		}
	}
	return false
}
