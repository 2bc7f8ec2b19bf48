package service

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"fruitseason/internal/errors"
	"fruitseason/internal/model"
	"fruitseason/internal/repository"
)

// CartService manages the per-user staging area for plan and fruit selection.
// All mutations for one user are serialized through the shared lock table.
type CartService interface {
	GetCart(ctx context.Context, username string) (*model.Cart, error)
	SelectPlan(ctx context.Context, username string, plan model.SubscriptionPlan) (*model.Cart, error)
	AddFruit(ctx context.Context, username string, fruit model.Fruit) (*model.Cart, error)
	RemoveFruit(ctx context.Context, username string, fruit model.Fruit) (*model.Cart, error)
	Clear(ctx context.Context, username string) (*model.Cart, error)
}

type cartService struct {
	users repository.UserRepository
	carts repository.CartRepository
	locks *UserLocks
}

// NewCartService creates a new cart service.
func NewCartService(users repository.UserRepository, carts repository.CartRepository, locks *UserLocks) CartService {
	return &cartService{users: users, carts: carts, locks: locks}
}

// getOrCreate loads the user's cart, creating an empty one on first access.
func (s *cartService) getOrCreate(ctx context.Context, username string) (*model.Cart, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.NotFoundf("user not found")
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	cart, err := s.carts.FindByUserID(ctx, user.ID)
	if err == nil {
		return cart, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, fmt.Errorf("find cart: %w", err)
	}

	cart = &model.Cart{UserID: user.ID}
	if err := s.carts.Create(ctx, cart); err != nil {
		return nil, fmt.Errorf("create cart: %w", err)
	}
	return cart, nil
}

// GetCart returns the user's cart, creating it if absent.
func (s *cartService) GetCart(ctx context.Context, username string) (*model.Cart, error) {
	unlock := s.locks.Lock(username)
	defer unlock()
	return s.getOrCreate(ctx, username)
}

// SelectPlan sets the cart's plan. NONE is not selectable. Switching to a
// different plan discards the previous fruit selection: required counts differ
// per plan, so a stale selection cannot be assumed valid.
func (s *cartService) SelectPlan(ctx context.Context, username string, plan model.SubscriptionPlan) (*model.Cart, error) {
	if !plan.IsPaid() {
		return nil, errors.NewValidation("must choose a paid plan (BASIC, FAMILY or PREMIUM)")
	}

	unlock := s.locks.Lock(username)
	defer unlock()

	cart, err := s.getOrCreate(ctx, username)
	if err != nil {
		return nil, err
	}

	if cart.SelectedPlan != plan && len(cart.Items) > 0 {
		if err := s.carts.ClearItems(ctx, cart.ID); err != nil {
			return nil, fmt.Errorf("clear cart items: %w", err)
		}
		cart.Items = nil
	}

	cart.SelectedPlan = plan
	if err := s.carts.Save(ctx, cart); err != nil {
		return nil, fmt.Errorf("save cart: %w", err)
	}
	return cart, nil
}

// AddFruit adds one fruit to the cart. Checks run in a fixed order so the
// reported reason is deterministic: plan presence, then capacity, then
// duplicates.
func (s *cartService) AddFruit(ctx context.Context, username string, fruit model.Fruit) (*model.Cart, error) {
	unlock := s.locks.Lock(username)
	defer unlock()

	cart, err := s.getOrCreate(ctx, username)
	if err != nil {
		return nil, err
	}

	if !cart.HasPlan() {
		return nil, errors.NewValidation("select a plan before adding items")
	}
	if len(cart.Items) >= cart.RequiredItems() {
		return nil, errors.Validationf("plan %s allows only %d items", cart.SelectedPlan, cart.RequiredItems())
	}
	if cart.Contains(fruit) {
		return nil, errors.Validationf("%s is already in the cart", fruit.DisplayName())
	}

	item := &model.CartItem{CartID: cart.ID, Fruit: fruit}
	if err := s.carts.AddItem(ctx, item); err != nil {
		return nil, fmt.Errorf("add cart item: %w", err)
	}
	cart.Items = append(cart.Items, *item)

	if err := s.carts.Save(ctx, cart); err != nil { // touch last-modified
		return nil, fmt.Errorf("save cart: %w", err)
	}
	return cart, nil
}

// RemoveFruit removes one fruit from the cart.
func (s *cartService) RemoveFruit(ctx context.Context, username string, fruit model.Fruit) (*model.Cart, error) {
	unlock := s.locks.Lock(username)
	defer unlock()

	cart, err := s.getOrCreate(ctx, username)
	if err != nil {
		return nil, err
	}

	if !cart.Contains(fruit) {
		return nil, errors.NotFoundf("%s is not in the cart", fruit.DisplayName())
	}

	if err := s.carts.RemoveItem(ctx, cart.ID, fruit); err != nil {
		return nil, fmt.Errorf("remove cart item: %w", err)
	}
	kept := cart.Items[:0]
	for _, item := range cart.Items {
		if item.Fruit != fruit {
			kept = append(kept, item)
		}
	}
	cart.Items = kept

	if err := s.carts.Save(ctx, cart); err != nil {
		return nil, fmt.Errorf("save cart: %w", err)
	}
	return cart, nil
}

// Clear empties the cart and unsets its plan.
func (s *cartService) Clear(ctx context.Context, username string) (*model.Cart, error) {
	unlock := s.locks.Lock(username)
	defer unlock()

	cart, err := s.getOrCreate(ctx, username)
	if err != nil {
		return nil, err
	}
	return clearCart(ctx, s.carts, cart)
}

// clearCart resets a loaded cart through the given repository. The checkout
// commit reuses this with its transactional repositories.
func clearCart(ctx context.Context, carts repository.CartRepository, cart *model.Cart) (*model.Cart, error) {
	if err := carts.ClearItems(ctx, cart.ID); err != nil {
		return nil, fmt.Errorf("clear cart items: %w", err)
	}
	cart.Items = nil
	cart.SelectedPlan = ""
	if err := carts.Save(ctx, cart); err != nil {
		return nil, fmt.Errorf("save cart: %w", err)
	}
	return cart, nil
}
