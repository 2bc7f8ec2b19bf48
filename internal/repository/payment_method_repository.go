package repository

import (
	"context"

	"gorm.io/gorm"

	"fruitseason/internal/model"
)

// PaymentMethodRepository defines masked payment fingerprint persistence.
type PaymentMethodRepository interface {
	Create(ctx context.Context, method *model.PaymentMethod) error
	ListByUserID(ctx context.Context, userID uint) ([]model.PaymentMethod, error)
}

type paymentMethodRepository struct {
	db *gorm.DB
}

// NewPaymentMethodRepository creates a new payment method repository.
func NewPaymentMethodRepository(db *gorm.DB) PaymentMethodRepository {
	return &paymentMethodRepository{db: db}
}

// Create creates a new payment method record.
func (r *paymentMethodRepository) Create(ctx context.Context, method *model.PaymentMethod) error {
	return r.db.WithContext(ctx).Create(method).Error
}

// ListByUserID lists a user's stored payment fingerprints, newest first.
func (r *paymentMethodRepository) ListByUserID(ctx context.Context, userID uint) ([]model.PaymentMethod, error) {
	var methods []model.PaymentMethod
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&methods).Error
	if err != nil {
		return nil, err
	}
	return methods, nil
}
