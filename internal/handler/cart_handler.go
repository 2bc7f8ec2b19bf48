package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"fruitseason/internal/auth"
	"fruitseason/internal/errors"
	"fruitseason/internal/model"
	"fruitseason/internal/service"
)

// CartHandler handles cart endpoints. All routes require an authenticated
// identity.
type CartHandler struct {
	cartService service.CartService
}

// NewCartHandler creates a new cart handler.
func NewCartHandler(cartService service.CartService) *CartHandler {
	return &CartHandler{cartService: cartService}
}

// SelectPlanRequest represents a plan selection request.
type SelectPlanRequest struct {
	Plan string `json:"plan" validate:"required"`
}

// AddFruitRequest represents an add-to-cart request.
type AddFruitRequest struct {
	Fruit string `json:"fruit" validate:"required"`
}

// CartResponse summarizes a cart for the client.
type CartResponse struct {
	SelectedPlan  model.SubscriptionPlan `json:"selected_plan,omitempty"`
	Fruits        []model.FruitInfo      `json:"fruits"`
	FruitCount    int                    `json:"fruit_count"`
	RequiredCount int                    `json:"required_count"`
	Ready         bool                   `json:"ready"`
}

func newCartResponse(cart *model.Cart) CartResponse {
	fruits := make([]model.FruitInfo, 0, len(cart.Items))
	for _, f := range cart.Fruits() {
		fruits = append(fruits, f.Info())
	}
	return CartResponse{
		SelectedPlan:  cart.SelectedPlan,
		Fruits:        fruits,
		FruitCount:    len(cart.Items),
		RequiredCount: cart.RequiredItems(),
		Ready:         cart.IsReady(),
	}
}

// GetCart godoc
// @Summary Get the current cart
// @Tags cart
// @Produce json
// @Security BearerAuth
// @Success 200 {object} CartResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /cart [get]
func (h *CartHandler) GetCart(c echo.Context) error {
	identity, _ := auth.IdentityFromContext(c)

	cart, err := h.cartService.GetCart(c.Request().Context(), identity.Username)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, newCartResponse(cart))
}

// SelectPlan godoc
// @Summary Select a subscription plan for the cart
// @Description Switching to a different plan clears the previous fruit selection.
// @Tags cart
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body SelectPlanRequest true "Plan"
// @Success 200 {object} CartResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /cart/plan [post]
func (h *CartHandler) SelectPlan(c echo.Context) error {
	identity, _ := auth.IdentityFromContext(c)

	var req SelectPlanRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	plan, err := model.ParsePlan(req.Plan)
	if err != nil {
		return respondError(c, errors.NewValidation("must choose a paid plan (BASIC, FAMILY or PREMIUM)"))
	}

	cart, err := h.cartService.SelectPlan(c.Request().Context(), identity.Username, plan)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, newCartResponse(cart))
}

// AddFruit godoc
// @Summary Add a fruit to the cart
// @Tags cart
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body AddFruitRequest true "Fruit"
// @Success 200 {object} CartResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /cart/items [post]
func (h *CartHandler) AddFruit(c echo.Context) error {
	identity, _ := auth.IdentityFromContext(c)

	var req AddFruitRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	fruit, err := model.ParseFruit(req.Fruit)
	if err != nil {
		return respondError(c, errors.Validationf("unknown fruit %q", req.Fruit))
	}

	cart, err := h.cartService.AddFruit(c.Request().Context(), identity.Username, fruit)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, newCartResponse(cart))
}

// RemoveFruit godoc
// @Summary Remove a fruit from the cart
// @Tags cart
// @Produce json
// @Security BearerAuth
// @Param fruit path string true "Fruit identifier"
// @Success 200 {object} CartResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /cart/items/{fruit} [delete]
func (h *CartHandler) RemoveFruit(c echo.Context) error {
	identity, _ := auth.IdentityFromContext(c)

	fruit, err := model.ParseFruit(c.Param("fruit"))
	if err != nil {
		return respondError(c, errors.NotFoundf("unknown fruit %q", c.Param("fruit")))
	}

	cart, err := h.cartService.RemoveFruit(c.Request().Context(), identity.Username, fruit)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, newCartResponse(cart))
}

// ClearCart godoc
// @Summary Empty the cart and unset its plan
// @Tags cart
// @Produce json
// @Security BearerAuth
// @Success 200 {object} CartResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /cart [delete]
func (h *CartHandler) ClearCart(c echo.Context) error {
	identity, _ := auth.IdentityFromContext(c)

	cart, err := h.cartService.Clear(c.Request().Context(), identity.Username)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, newCartResponse(cart))
}
