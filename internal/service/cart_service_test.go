package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"fruitseason/internal/errors"
	"fruitseason/internal/model"
)

func newCartFixture(plan model.SubscriptionPlan, fruits ...model.Fruit) *model.Cart {
	cart := &model.Cart{ID: 7, UserID: 1, SelectedPlan: plan}
	for i, f := range fruits {
		cart.Items = append(cart.Items, model.CartItem{ID: uint(i + 1), CartID: cart.ID, Fruit: f})
	}
	return cart
}

func TestCartService_GetCart_CreatesLazily(t *testing.T) {
	users := new(MockUserRepository)
	carts := new(MockCartRepository)
	svc := NewCartService(users, carts, NewUserLocks())

	users.On("FindByUsername", mock.Anything, "demo").Return(&model.User{ID: 1, Username: "demo"}, nil)
	carts.On("FindByUserID", mock.Anything, uint(1)).Return(nil, gorm.ErrRecordNotFound)
	carts.On("Create", mock.Anything, mock.AnythingOfType("*model.Cart")).Return(nil)

	cart, err := svc.GetCart(context.Background(), "demo")

	assert.NoError(t, err)
	assert.Empty(t, cart.Items)
	assert.False(t, cart.HasPlan())
	carts.AssertCalled(t, "Create", mock.Anything, mock.AnythingOfType("*model.Cart"))
}

func TestCartService_SelectPlan(t *testing.T) {
	tests := []struct {
		name      string
		plan      model.SubscriptionPlan
		existing  *model.Cart
		wantErr   string
		wantClear bool
		wantCount int
	}{
		{
			name:    "rejects NONE",
			plan:    model.PlanNone,
			wantErr: "must choose a paid plan (BASIC, FAMILY or PREMIUM)",
		},
		{
			name:      "plan change clears items",
			plan:      model.PlanFamily,
			existing:  newCartFixture(model.PlanBasic, model.FruitManzana, model.FruitPera),
			wantClear: true,
			wantCount: 0,
		},
		{
			name:      "same plan keeps items",
			plan:      model.PlanBasic,
			existing:  newCartFixture(model.PlanBasic, model.FruitManzana, model.FruitPera),
			wantCount: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users := new(MockUserRepository)
			carts := new(MockCartRepository)
			svc := NewCartService(users, carts, NewUserLocks())

			if tt.existing != nil {
				users.On("FindByUsername", mock.Anything, "demo").Return(&model.User{ID: 1, Username: "demo"}, nil)
				carts.On("FindByUserID", mock.Anything, uint(1)).Return(tt.existing, nil)
				carts.On("ClearItems", mock.Anything, tt.existing.ID).Return(nil)
				carts.On("Save", mock.Anything, tt.existing).Return(nil)
			}

			cart, err := svc.SelectPlan(context.Background(), "demo", tt.plan)

			if tt.wantErr != "" {
				assert.EqualError(t, err, tt.wantErr)
				assert.IsType(t, &errors.ValidationError{}, err)
				users.AssertNotCalled(t, "FindByUsername", mock.Anything, mock.Anything)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.plan, cart.SelectedPlan)
			assert.Len(t, cart.Items, tt.wantCount)
			if tt.wantClear {
				carts.AssertCalled(t, "ClearItems", mock.Anything, tt.existing.ID)
			} else {
				carts.AssertNotCalled(t, "ClearItems", mock.Anything, mock.Anything)
			}
		})
	}
}

func TestCartService_AddFruit(t *testing.T) {
	tests := []struct {
		name    string
		cart    *model.Cart
		fruit   model.Fruit
		wantErr string
	}{
		{
			name:    "requires a plan first",
			cart:    newCartFixture(""),
			fruit:   model.FruitManzana,
			wantErr: "select a plan before adding items",
		},
		{
			name:    "rejects fifth item on BASIC",
			cart:    newCartFixture(model.PlanBasic, model.FruitManzana, model.FruitPera, model.FruitKiwi, model.FruitUvas),
			fruit:   model.FruitMelon,
			wantErr: "plan BASIC allows only 4 items",
		},
		{
			name:    "rejects duplicate fruit",
			cart:    newCartFixture(model.PlanBasic, model.FruitManzana),
			fruit:   model.FruitManzana,
			wantErr: "Manzana is already in the cart",
		},
		{
			name:  "adds fruit",
			cart:  newCartFixture(model.PlanBasic, model.FruitManzana),
			fruit: model.FruitPera,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users := new(MockUserRepository)
			carts := new(MockCartRepository)
			svc := NewCartService(users, carts, NewUserLocks())

			users.On("FindByUsername", mock.Anything, "demo").Return(&model.User{ID: 1, Username: "demo"}, nil)
			carts.On("FindByUserID", mock.Anything, uint(1)).Return(tt.cart, nil)
			carts.On("AddItem", mock.Anything, mock.AnythingOfType("*model.CartItem")).Return(nil)
			carts.On("Save", mock.Anything, tt.cart).Return(nil)

			cart, err := svc.AddFruit(context.Background(), "demo", tt.fruit)

			if tt.wantErr != "" {
				assert.EqualError(t, err, tt.wantErr)
				assert.IsType(t, &errors.ValidationError{}, err)
				carts.AssertNotCalled(t, "AddItem", mock.Anything, mock.Anything)
				return
			}
			assert.NoError(t, err)
			assert.True(t, cart.Contains(tt.fruit))
		})
	}
}

func TestCartService_AddFruit_ChecksPlanBeforeCapacity(t *testing.T) {
	// A full cart whose plan was never set must report the missing plan, not
	// the capacity.
	users := new(MockUserRepository)
	carts := new(MockCartRepository)
	svc := NewCartService(users, carts, NewUserLocks())

	users.On("FindByUsername", mock.Anything, "demo").Return(&model.User{ID: 1, Username: "demo"}, nil)
	carts.On("FindByUserID", mock.Anything, uint(1)).Return(newCartFixture(""), nil)

	_, err := svc.AddFruit(context.Background(), "demo", model.FruitKiwi)
	assert.EqualError(t, err, "select a plan before adding items")
}

func TestCartService_RemoveFruit(t *testing.T) {
	users := new(MockUserRepository)
	carts := new(MockCartRepository)
	svc := NewCartService(users, carts, NewUserLocks())

	cart := newCartFixture(model.PlanBasic, model.FruitManzana)
	users.On("FindByUsername", mock.Anything, "demo").Return(&model.User{ID: 1, Username: "demo"}, nil)
	carts.On("FindByUserID", mock.Anything, uint(1)).Return(cart, nil)
	carts.On("RemoveItem", mock.Anything, cart.ID, model.FruitManzana).Return(nil)
	carts.On("Save", mock.Anything, cart).Return(nil)

	got, err := svc.RemoveFruit(context.Background(), "demo", model.FruitManzana)
	assert.NoError(t, err)
	assert.Empty(t, got.Items)

	// Second removal fails: the fruit is gone.
	_, err = svc.RemoveFruit(context.Background(), "demo", model.FruitManzana)
	assert.EqualError(t, err, "Manzana is not in the cart")
	assert.IsType(t, &errors.NotFoundError{}, err)
}

func TestCartService_Clear(t *testing.T) {
	users := new(MockUserRepository)
	carts := new(MockCartRepository)
	svc := NewCartService(users, carts, NewUserLocks())

	cart := newCartFixture(model.PlanPremium, model.FruitManzana, model.FruitPera)
	users.On("FindByUsername", mock.Anything, "demo").Return(&model.User{ID: 1, Username: "demo"}, nil)
	carts.On("FindByUserID", mock.Anything, uint(1)).Return(cart, nil)
	carts.On("ClearItems", mock.Anything, cart.ID).Return(nil)
	carts.On("Save", mock.Anything, cart).Return(nil)

	got, err := svc.Clear(context.Background(), "demo")
	assert.NoError(t, err)
	assert.Empty(t, got.Items)
	assert.False(t, got.HasPlan())
}
