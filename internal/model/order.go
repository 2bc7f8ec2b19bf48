package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OrderStatus values. Orders are created COMPLETED and never mutated.
const (
	OrderStatusCompleted = "COMPLETED"
	OrderStatusPending   = "PENDING"
	OrderStatusCancelled = "CANCELLED"
)

// Order is an immutable record of a completed subscription purchase. It
// snapshots the plan and selected fruits at the time of checkout together
// with the masked payment data.
type Order struct {
	ID             uint             `json:"id" gorm:"primaryKey"`
	OrderNumber    string           `json:"order_number" gorm:"uniqueIndex;size:36;not null"`
	UserID         uint             `json:"user_id" gorm:"index;not null"`
	Plan           SubscriptionPlan `json:"plan" gorm:"size:20;not null"`
	SelectedFruits string           `json:"selected_fruits" gorm:"size:500;not null"` // comma-separated snapshot
	CardHolderName string           `json:"card_holder_name" gorm:"size:100;not null"`
	CardLast4      string           `json:"card_last4" gorm:"size:4;not null"`
	Status         string           `json:"status" gorm:"size:20;not null;default:'COMPLETED'"`
	CreatedAt      time.Time        `json:"created_at"`
}

// BeforeCreate assigns the unique order number.
func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.OrderNumber == "" {
		o.OrderNumber = uuid.New().String()
	}
	return nil
}

// SetFruits stores the fruit snapshot, preserving selection order.
func (o *Order) SetFruits(fruits []Fruit) {
	names := make([]string, 0, len(fruits))
	for _, f := range fruits {
		names = append(names, string(f))
	}
	o.SelectedFruits = strings.Join(names, ",")
}

// Fruits returns the snapshotted fruits. Entries no longer in the catalog are
// skipped.
func (o *Order) Fruits() []Fruit {
	if o.SelectedFruits == "" {
		return nil
	}
	parts := strings.Split(o.SelectedFruits, ",")
	fruits := make([]Fruit, 0, len(parts))
	for _, p := range parts {
		if f, err := ParseFruit(strings.TrimSpace(p)); err == nil {
			fruits = append(fruits, f)
		}
	}
	return fruits
}
