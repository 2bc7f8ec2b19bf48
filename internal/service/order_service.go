package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"fruitseason/internal/cache"
	"fruitseason/internal/errors"
	"fruitseason/internal/model"
	"fruitseason/internal/repository"
)

const orderCacheTTL = 10 * time.Minute

// OrderService turns a ready cart into an immutable order and answers order
// queries.
type OrderService interface {
	Checkout(ctx context.Context, username, cardHolderName, cardNumber string) (*model.Order, error)
	UserOrders(ctx context.Context, username string) ([]model.Order, error)
	OrderByNumber(ctx context.Context, orderNumber, username, role string) (*model.Order, error)
	AllOrders(ctx context.Context) ([]model.Order, error)
	UserPaymentMethods(ctx context.Context, username string) ([]model.PaymentMethod, error)
}

type orderService struct {
	repos     *repository.Repositories
	tx        repository.TxManager
	cache     *cache.Client
	validator *CardValidator
	locks     *UserLocks
}

// NewOrderService creates a new order service. repos and tx are normally the
// same bundle; they are separate parameters so tests can fake the transaction
// boundary.
func NewOrderService(repos *repository.Repositories, tx repository.TxManager, cache *cache.Client, locks *UserLocks) OrderService {
	return &orderService{
		repos:     repos,
		tx:        tx,
		cache:     cache,
		validator: NewCardValidator(),
		locks:     locks,
	}
}

// Checkout validates the user's cart and payment input, then atomically
// creates the order, stores the masked payment fingerprint, upgrades the
// user's plan and empties the cart. Validation failures leave no trace; a
// failure anywhere in the commit phase rolls back every write.
//
// Checkout is not idempotent: every call that reaches the commit phase
// creates a new order. Callers must not blindly retry on timeout.
func (s *orderService) Checkout(ctx context.Context, username, cardHolderName, cardNumber string) (*model.Order, error) {
	unlock := s.locks.Lock(username)
	defer unlock()

	user, err := s.repos.Users.FindByUsername(ctx, username)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.NotFoundf("user not found")
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	cart, err := s.repos.Carts.FindByUserID(ctx, user.ID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.NewValidation("select a subscription plan")
		}
		return nil, fmt.Errorf("find cart: %w", err)
	}

	if err := validateCartForCheckout(cart); err != nil {
		return nil, err
	}
	if strings.TrimSpace(cardHolderName) == "" {
		return nil, errors.NewValidation("card holder name is required")
	}
	if strings.TrimSpace(cardNumber) == "" {
		return nil, errors.NewValidation("card number is required")
	}

	digits, err := s.validator.ValidateNumber(cardNumber)
	if err != nil {
		return nil, err
	}
	last4 := s.validator.Last4(digits)

	// Commit phase: all four writes or none.
	order := &model.Order{
		UserID:         user.ID,
		Plan:           cart.SelectedPlan,
		CardHolderName: cardHolderName,
		CardLast4:      last4,
		Status:         model.OrderStatusCompleted,
	}
	order.SetFruits(cart.Fruits())

	err = s.tx.Atomic(ctx, func(ctx context.Context, repos *repository.Repositories) error {
		if err := repos.Orders.Create(ctx, order); err != nil {
			return fmt.Errorf("create order: %w", err)
		}

		method := &model.PaymentMethod{
			UserID:       user.ID,
			HolderName:   cardHolderName,
			MaskedNumber: s.validator.MaskNumber(last4),
			Last4:        last4,
		}
		if err := repos.PaymentMethods.Create(ctx, method); err != nil {
			return fmt.Errorf("create payment method: %w", err)
		}

		if err := repos.Users.UpdatePlan(ctx, user.ID, order.Plan); err != nil {
			return fmt.Errorf("update user plan: %w", err)
		}

		if _, err := clearCart(ctx, repos.Carts, cart); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return order, nil
}

// validateCartForCheckout checks the cart satisfies its plan before any write
// happens.
func validateCartForCheckout(cart *model.Cart) error {
	if !cart.HasPlan() {
		return errors.NewValidation("select a subscription plan")
	}
	if required := cart.RequiredItems(); len(cart.Items) < required {
		return errors.Validationf("plan %s requires %d items, cart has %d",
			cart.SelectedPlan, required, len(cart.Items))
	}
	return nil
}

// UserOrders lists the user's orders, newest first.
func (s *orderService) UserOrders(ctx context.Context, username string) ([]model.Order, error) {
	user, err := s.repos.Users.FindByUsername(ctx, username)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.NotFoundf("user not found")
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return s.repos.Orders.ListByUserID(ctx, user.ID)
}

// OrderByNumber finds one order by its unique number. Only the owner and
// admins may read it. Orders are immutable once written, so cached copies
// never go stale.
func (s *orderService) OrderByNumber(ctx context.Context, orderNumber, username, role string) (*model.Order, error) {
	order, err := s.loadOrder(ctx, orderNumber)
	if err != nil {
		return nil, err
	}

	if role != model.RoleAdmin {
		user, err := s.repos.Users.FindByUsername(ctx, username)
		if err != nil || user.ID != order.UserID {
			return nil, errors.ErrForbidden
		}
	}
	return order, nil
}

func (s *orderService) loadOrder(ctx context.Context, orderNumber string) (*model.Order, error) {
	key := "order:" + orderNumber
	if data, _ := s.cache.Get(ctx, key); data != nil {
		var cached model.Order
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	order, err := s.repos.Orders.FindByOrderNumber(ctx, orderNumber)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.NotFoundf("order not found")
		}
		return nil, fmt.Errorf("find order: %w", err)
	}

	if data, err := json.Marshal(order); err == nil {
		_ = s.cache.Set(ctx, key, data, orderCacheTTL)
	}
	return order, nil
}

// AllOrders lists every order, newest first.
func (s *orderService) AllOrders(ctx context.Context) ([]model.Order, error) {
	return s.repos.Orders.ListAll(ctx)
}

// UserPaymentMethods lists the user's stored payment fingerprints, newest
// first. Only masked data exists to return.
func (s *orderService) UserPaymentMethods(ctx context.Context, username string) ([]model.PaymentMethod, error) {
	user, err := s.repos.Users.FindByUsername(ctx, username)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.NotFoundf("user not found")
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return s.repos.PaymentMethods.ListByUserID(ctx, user.ID)
}
