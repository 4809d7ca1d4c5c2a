// internal/domain/order/service.go
package order

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Placer is the order placement collaborator invoked at the terminal
// checkout transition. The contract is fire-and-forget: on any result the
// caller clears the cart and reports the outcome upward without compensating
// on failure.
type Placer interface {
	PlaceOrder(ctx context.Context, o *Order) error
}

// Service persists placed orders
type Service struct {
	db  *gorm.DB
	log *logrus.Logger
}

// NewService creates a new order service
func NewService(db *gorm.DB, log *logrus.Logger) *Service {
	return &Service{
		db:  db,
		log: log,
	}
}

// PlaceOrder assigns a reference and writes the order with its items
func (s *Service) PlaceOrder(ctx context.Context, o *Order) error {
	if o.Reference == "" {
		o.Reference = uuid.New().String()
	}

	if err := s.db.WithContext(ctx).Create(o).Error; err != nil {
		return fmt.Errorf("failed to place order: %w", err)
	}

	s.log.WithFields(logrus.Fields{
		"reference":    o.Reference,
		"total_amount": o.TotalAmount,
		"item_count":   len(o.Items),
	}).Info("Order placed")

	return nil
}

// GetOrder retrieves an order by its reference
func (s *Service) GetOrder(ctx context.Context, reference string) (*Order, error) {
	var o Order
	err := s.db.WithContext(ctx).
		Preload("Items").
		Where("reference = ?", reference).
		First(&o).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	return &o, nil
}
