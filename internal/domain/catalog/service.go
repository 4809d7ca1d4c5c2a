// internal/domain/catalog/service.go
package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-session/internal/config"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

// ErrProductNotFound is returned when a product does not exist or is inactive
var ErrProductNotFound = errors.New("product not found")

const productListCacheKey = "catalog:products"

// Provider is the read surface the session engine consumes. Failures propagate
// unmodified; consumers treat them as "no products available" and do not retry.
type Provider interface {
	ListProducts(ctx context.Context) ([]Product, error)
	GetProduct(ctx context.Context, id uint) (*Product, error)
}

// Service handles catalog business logic
type Service struct {
	db          *gorm.DB
	redisClient *redis.Client
	config      *config.Config
	log         *logrus.Logger
	sfg         singleflight.Group // Prevents cache stampede on the product list
}

// NewService creates a new catalog service
func NewService(db *gorm.DB, redisClient *redis.Client, cfg *config.Config, log *logrus.Logger) *Service {
	return &Service{
		db:          db,
		redisClient: redisClient,
		config:      cfg,
		log:         log,
	}
}

// ListProducts returns all active products, serving from the Redis snapshot
// when one exists and collapsing concurrent misses onto a single DB query.
func (s *Service) ListProducts(ctx context.Context) ([]Product, error) {
	if cached, err := s.cachedProducts(ctx); err == nil {
		return cached, nil
	} else if !errors.Is(err, redis.Nil) {
		s.log.WithError(err).Warn("catalog cache read failed")
	}

	v, err, _ := s.sfg.Do(productListCacheKey, func() (interface{}, error) {
		var products []Product
		err := s.db.WithContext(ctx).
			Preload("Category").
			Where("is_active = ?", true).
			Order("created_at DESC").
			Find(&products).Error
		if err != nil {
			return nil, fmt.Errorf("failed to list products: %w", err)
		}

		go func() {
			if err := s.cacheProducts(context.Background(), products); err != nil {
				s.log.WithError(err).Warn("catalog cache write failed")
			}
		}()

		return products, nil
	})
	if err != nil {
		return nil, err
	}

	return v.([]Product), nil
}

// GetProduct retrieves a single active product by id
func (s *Service) GetProduct(ctx context.Context, id uint) (*Product, error) {
	var prod Product
	err := s.db.WithContext(ctx).
		Preload("Category").
		Where("id = ? AND is_active = ?", id, true).
		First(&prod).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	return &prod, nil
}

// CreateProductRequest represents a product creation request
type CreateProductRequest struct {
	SKU               string `json:"sku" binding:"required"`
	Name              string `json:"name" binding:"required"`
	Slug              string `json:"slug" binding:"required"`
	Description       string `json:"description"`
	Price             int64  `json:"price" binding:"required,min=1"`
	ComparePrice      int64  `json:"compare_price"`
	Quantity          int    `json:"quantity" binding:"min=0"`
	CategoryID        uint   `json:"category_id" binding:"required"`
	Colors            string `json:"colors"`
	ImageURL          string `json:"image_url"`
	SecondaryImageURL string `json:"secondary_image_url"`
}

// CreateProduct creates a new product and invalidates the list cache
func (s *Service) CreateProduct(ctx context.Context, req *CreateProductRequest) (*Product, error) {
	prod := Product{
		SKU:               req.SKU,
		Name:              req.Name,
		Slug:              req.Slug,
		Description:       req.Description,
		Price:             req.Price,
		ComparePrice:      req.ComparePrice,
		Quantity:          req.Quantity,
		CategoryID:        req.CategoryID,
		Colors:            req.Colors,
		ImageURL:          req.ImageURL,
		SecondaryImageURL: req.SecondaryImageURL,
		IsActive:          true,
	}

	if err := s.db.WithContext(ctx).Create(&prod).Error; err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	s.invalidateCache(ctx)
	return &prod, nil
}

// UpdateProductRequest represents a product update request
type UpdateProductRequest struct {
	Name              *string `json:"name"`
	Description       *string `json:"description"`
	Price             *int64  `json:"price"`
	ComparePrice      *int64  `json:"compare_price"`
	Quantity          *int    `json:"quantity"`
	Colors            *string `json:"colors"`
	ImageURL          *string `json:"image_url"`
	SecondaryImageURL *string `json:"secondary_image_url"`
	IsActive          *bool   `json:"is_active"`
}

// UpdateProduct applies a partial update to a product
func (s *Service) UpdateProduct(ctx context.Context, id uint, req *UpdateProductRequest) (*Product, error) {
	var prod Product
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&prod).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Price != nil {
		updates["price"] = *req.Price
	}
	if req.ComparePrice != nil {
		updates["compare_price"] = *req.ComparePrice
	}
	if req.Quantity != nil {
		updates["quantity"] = *req.Quantity
	}
	if req.Colors != nil {
		updates["colors"] = *req.Colors
	}
	if req.ImageURL != nil {
		updates["image_url"] = *req.ImageURL
	}
	if req.SecondaryImageURL != nil {
		updates["secondary_image_url"] = *req.SecondaryImageURL
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}

	if len(updates) > 0 {
		if err := s.db.WithContext(ctx).Model(&prod).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("failed to update product: %w", err)
		}
	}

	s.invalidateCache(ctx)
	return &prod, nil
}

// DeleteProduct soft-deletes a product
func (s *Service) DeleteProduct(ctx context.Context, id uint) error {
	result := s.db.WithContext(ctx).Where("id = ?", id).Delete(&Product{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete product: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrProductNotFound
	}

	s.invalidateCache(ctx)
	return nil
}

// Private helper methods

func (s *Service) cachedProducts(ctx context.Context) ([]Product, error) {
	data, err := s.redisClient.Get(ctx, productListCacheKey).Result()
	if err != nil {
		return nil, err
	}

	var products []Product
	if err := json.Unmarshal([]byte(data), &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (s *Service) cacheProducts(ctx context.Context, products []Product) error {
	data, err := json.Marshal(products)
	if err != nil {
		return err
	}
	return s.redisClient.Set(ctx, productListCacheKey, data, 5*time.Minute).Err()
}

func (s *Service) invalidateCache(ctx context.Context) {
	if err := s.redisClient.Del(ctx, productListCacheKey).Err(); err != nil {
		s.log.WithError(err).Warn("catalog cache invalidation failed")
	}
}
