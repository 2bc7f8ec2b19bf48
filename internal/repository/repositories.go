package repository

import (
	"context"

	"gorm.io/gorm"
)

// Repositories bundles the repositories of one database connection so a
// service can run several of them inside a single transaction.
type Repositories struct {
	Users          UserRepository
	Carts          CartRepository
	Orders         OrderRepository
	PaymentMethods PaymentMethodRepository

	db *gorm.DB
}

// TxManager runs a unit of work atomically against the store.
type TxManager interface {
	Atomic(ctx context.Context, fn func(ctx context.Context, repos *Repositories) error) error
}

// NewRepositories creates the repository bundle for a DB handle.
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		Users:          NewUserRepository(db),
		Carts:          NewCartRepository(db),
		Orders:         NewOrderRepository(db),
		PaymentMethods: NewPaymentMethodRepository(db),
		db:             db,
	}
}

// Atomic executes fn within one database transaction, handing it a bundle
// rebound to the transaction. Any error rolls every write back.
func (r *Repositories) Atomic(ctx context.Context, fn func(ctx context.Context, repos *Repositories) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(ctx, NewRepositories(tx))
	})
}
