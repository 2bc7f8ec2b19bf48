package model

import "time"

// Cart is the per-user staging area for an in-progress plan and item
// selection. One cart per user, created lazily on first access and emptied,
// never deleted, on checkout.
type Cart struct {
	ID           uint             `json:"id" gorm:"primaryKey"`
	UserID       uint             `json:"user_id" gorm:"uniqueIndex;not null"`
	SelectedPlan SubscriptionPlan `json:"selected_plan,omitempty" gorm:"size:20"`
	Items        []CartItem       `json:"items" gorm:"foreignKey:CartID"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`
}

// CartItem is a single selected catalog entry. The (cart_id, fruit) pair is
// unique so the same fruit can never appear twice in one cart.
type CartItem struct {
	ID     uint  `json:"id" gorm:"primaryKey"`
	CartID uint  `json:"-" gorm:"uniqueIndex:idx_cart_fruit;not null"`
	Fruit  Fruit `json:"fruit" gorm:"uniqueIndex:idx_cart_fruit;size:30;not null"`
}

// HasPlan reports whether a purchasable plan has been selected.
func (c *Cart) HasPlan() bool {
	return c.SelectedPlan.IsPaid()
}

// RequiredItems returns the item count the selected plan calls for, zero when
// no plan is selected.
func (c *Cart) RequiredItems() int {
	return c.SelectedPlan.RequiredItems()
}

// Contains reports whether the fruit is already in the cart.
func (c *Cart) Contains(fruit Fruit) bool {
	for _, item := range c.Items {
		if item.Fruit == fruit {
			return true
		}
	}
	return false
}

// IsReady reports whether the cart satisfies its plan's required item count.
func (c *Cart) IsReady() bool {
	return c.HasPlan() && len(c.Items) >= c.RequiredItems()
}

// Fruits returns the selected fruits in insertion order.
func (c *Cart) Fruits() []Fruit {
	fruits := make([]Fruit, 0, len(c.Items))
	for _, item := range c.Items {
		fruits = append(fruits, item.Fruit)
	}
	return fruits
}
