package repository

import (
	"context"

	"gorm.io/gorm"

	"fruitseason/internal/model"
)

// OrderRepository defines order persistence operations. Orders are append
// only; there is deliberately no update or delete.
type OrderRepository interface {
	Create(ctx context.Context, order *model.Order) error
	FindByOrderNumber(ctx context.Context, orderNumber string) (*model.Order, error)
	ListByUserID(ctx context.Context, userID uint) ([]model.Order, error)
	ListAll(ctx context.Context) ([]model.Order, error)
}

type orderRepository struct {
	db *gorm.DB
}

// NewOrderRepository creates a new order repository.
func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepository{db: db}
}

// Create creates a new order.
func (r *orderRepository) Create(ctx context.Context, order *model.Order) error {
	return r.db.WithContext(ctx).Create(order).Error
}

// FindByOrderNumber finds an order by its unique order number.
func (r *orderRepository) FindByOrderNumber(ctx context.Context, orderNumber string) (*model.Order, error) {
	var order model.Order
	if err := r.db.WithContext(ctx).Where("order_number = ?", orderNumber).First(&order).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

// ListByUserID lists a user's orders, newest first.
func (r *orderRepository) ListByUserID(ctx context.Context, userID uint) ([]model.Order, error) {
	var orders []model.Order
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

// ListAll lists every order, newest first.
func (r *orderRepository) ListAll(ctx context.Context) ([]model.Order, error) {
	var orders []model.Order
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}
