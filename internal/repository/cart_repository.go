package repository

import (
	"context"

	"gorm.io/gorm"

	"fruitseason/internal/model"
)

// CartRepository defines cart persistence operations. Items are always loaded
// with the cart in insertion order.
type CartRepository interface {
	Create(ctx context.Context, cart *model.Cart) error
	FindByUserID(ctx context.Context, userID uint) (*model.Cart, error)
	Save(ctx context.Context, cart *model.Cart) error
	AddItem(ctx context.Context, item *model.CartItem) error
	RemoveItem(ctx context.Context, cartID uint, fruit model.Fruit) error
	ClearItems(ctx context.Context, cartID uint) error
}

type cartRepository struct {
	db *gorm.DB
}

// NewCartRepository creates a new cart repository.
func NewCartRepository(db *gorm.DB) CartRepository {
	return &cartRepository{db: db}
}

// Create creates a new cart.
func (r *cartRepository) Create(ctx context.Context, cart *model.Cart) error {
	return r.db.WithContext(ctx).Create(cart).Error
}

// FindByUserID finds the cart owned by the user, items included.
func (r *cartRepository) FindByUserID(ctx context.Context, userID uint) (*model.Cart, error) {
	var cart model.Cart
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("id") }).
		Where("user_id = ?", userID).
		First(&cart).Error
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

// Save persists the cart's own columns. Items are managed through AddItem,
// RemoveItem and ClearItems, never through association writes.
func (r *cartRepository) Save(ctx context.Context, cart *model.Cart) error {
	return r.db.WithContext(ctx).Omit("Items").Save(cart).Error
}

// AddItem inserts a cart item. The (cart_id, fruit) unique index backs the
// no-duplicates invariant at the database level.
func (r *cartRepository) AddItem(ctx context.Context, item *model.CartItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

// RemoveItem deletes one fruit from the cart.
func (r *cartRepository) RemoveItem(ctx context.Context, cartID uint, fruit model.Fruit) error {
	return r.db.WithContext(ctx).
		Where("cart_id = ? AND fruit = ?", cartID, fruit).
		Delete(&model.CartItem{}).Error
}

// ClearItems deletes all items from the cart.
func (r *cartRepository) ClearItems(ctx context.Context, cartID uint) error {
	return r.db.WithContext(ctx).
		Where("cart_id = ?", cartID).
		Delete(&model.CartItem{}).Error
}
