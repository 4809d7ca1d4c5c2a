// internal/infrastructure/database/postgres/migration.go
package postgres

import (
	"fmt"
	"log"

	"github.com/your-org/storefront-session/internal/domain/catalog"
	"github.com/your-org/storefront-session/internal/domain/order"
	"gorm.io/gorm"
)

// Migration handles database migrations
type Migration struct {
	db *gorm.DB
}

// NewMigration creates a new migration instance
func NewMigration(db *gorm.DB) *Migration {
	return &Migration{
		db: db,
	}
}

// RunAutoMigrations runs GORM auto-migrations for all models
func (m *Migration) RunAutoMigrations() error {
	log.Println("🔄 Running database auto-migrations...")

	// Define all models that need migration in dependency order
	models := []interface{}{
		// Catalog domain - Base tables
		&catalog.Category{},
		&catalog.Product{},

		// Order domain - Dependent tables
		&order.Order{},
		&order.OrderItem{},
	}

	// Run auto-migration for each model
	for _, model := range models {
		log.Printf("Migrating model: %T", model)
		if err := m.db.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate model %T: %w", model, err)
		}
	}

	log.Println("✅ Database auto-migrations completed successfully")
	return nil
}

// CreateIndexes creates additional indexes for better performance
func (m *Migration) CreateIndexes() error {
	log.Println("🔄 Creating additional database indexes...")

	indexes := []string{
		// Product indexes
		"CREATE INDEX IF NOT EXISTS idx_products_category_active ON products(category_id, is_active)",
		"CREATE INDEX IF NOT EXISTS idx_products_price ON products(price)",
		"CREATE INDEX IF NOT EXISTS idx_products_created_at ON products(created_at DESC)",
		"CREATE INDEX IF NOT EXISTS idx_products_sku ON products(sku)",
		"CREATE INDEX IF NOT EXISTS idx_products_slug ON products(slug)",

		// Category indexes
		"CREATE INDEX IF NOT EXISTS idx_categories_slug ON categories(slug)",

		// Order indexes
		"CREATE INDEX IF NOT EXISTS idx_orders_reference ON orders(reference)",
		"CREATE INDEX IF NOT EXISTS idx_orders_created_at ON orders(created_at DESC)",
		"CREATE INDEX IF NOT EXISTS idx_order_items_order ON order_items(order_id)",
	}

	for _, index := range indexes {
		if err := m.db.Exec(index).Error; err != nil {
			return fmt.Errorf("failed to create index: %w", err)
		}
	}

	log.Println("✅ Database indexes created successfully")
	return nil
}

// SeedInitialData seeds the catalog with sample data in development
func (m *Migration) SeedInitialData() error {
	log.Println("🔄 Seeding initial data...")

	var count int64
	if err := m.db.Model(&catalog.Category{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to count categories: %w", err)
	}
	if count > 0 {
		log.Println("Initial data already present, skipping seed")
		return nil
	}

	categories := []catalog.Category{
		{Name: "Apparel", Slug: "apparel", IsActive: true},
		{Name: "Accessories", Slug: "accessories", IsActive: true},
		{Name: "Home", Slug: "home", IsActive: true},
	}
	if err := m.db.Create(&categories).Error; err != nil {
		return fmt.Errorf("failed to seed categories: %w", err)
	}

	products := []catalog.Product{
		{
			SKU:          "TSH-001",
			Name:         "Classic Tee",
			Slug:         "classic-tee",
			Description:  "Everyday cotton tee",
			Price:        100,
			ComparePrice: 120,
			Quantity:     50,
			CategoryID:   categories[0].ID,
			Colors:       "black,white,navy",
			ImageURL:     "/images/classic-tee.jpg",
			IsActive:     true,
		},
		{
			SKU:        "CAP-001",
			Name:       "Canvas Cap",
			Slug:       "canvas-cap",
			Price:      50,
			Quantity:   30,
			CategoryID: categories[1].ID,
			Colors:     "olive,sand",
			ImageURL:   "/images/canvas-cap.jpg",
			IsActive:   true,
		},
		{
			SKU:               "MUG-001",
			Name:              "Stoneware Mug",
			Slug:              "stoneware-mug",
			Price:             25,
			Quantity:          100,
			CategoryID:        categories[2].ID,
			ImageURL:          "/images/stoneware-mug.jpg",
			SecondaryImageURL: "/images/stoneware-mug-alt.jpg",
			IsActive:          true,
		},
	}
	if err := m.db.Create(&products).Error; err != nil {
		return fmt.Errorf("failed to seed products: %w", err)
	}

	log.Println("✅ Initial data seeded successfully")
	return nil
}
