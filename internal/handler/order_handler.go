package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"fruitseason/internal/auth"
	"fruitseason/internal/model"
	"fruitseason/internal/service"
)

// OrderHandler handles checkout and order query endpoints.
type OrderHandler struct {
	orderService service.OrderService
}

// NewOrderHandler creates a new order handler.
func NewOrderHandler(orderService service.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// CheckoutRequest represents a checkout request. The payment fields are not
// validated here; the order service owns the checkout error messages.
type CheckoutRequest struct {
	CardHolderName string `json:"card_holder_name"`
	CardNumber     string `json:"card_number"`
}

// OrderResponse represents an order for the client. The card number itself is
// gone by this point; only the last four digits were ever kept.
type OrderResponse struct {
	OrderNumber    string                 `json:"order_number"`
	Plan           model.SubscriptionPlan `json:"plan"`
	Fruits         []model.FruitInfo      `json:"fruits"`
	FruitCount     int                    `json:"fruit_count"`
	CardHolderName string                 `json:"card_holder_name"`
	CardLast4      string                 `json:"card_last4"`
	Status         string                 `json:"status"`
	CreatedAt      time.Time              `json:"created_at"`
}

func newOrderResponse(order *model.Order) OrderResponse {
	fruits := order.Fruits()
	infos := make([]model.FruitInfo, 0, len(fruits))
	for _, f := range fruits {
		infos = append(infos, f.Info())
	}
	return OrderResponse{
		OrderNumber:    order.OrderNumber,
		Plan:           order.Plan,
		Fruits:         infos,
		FruitCount:     len(fruits),
		CardHolderName: order.CardHolderName,
		CardLast4:      order.CardLast4,
		Status:         order.Status,
		CreatedAt:      order.CreatedAt,
	}
}

// Checkout godoc
// @Summary Check out the cart into an order
// @Description Validates the cart and card, creates the order, stores a masked payment fingerprint, updates the subscription and empties the cart — atomically.
// @Tags orders
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CheckoutRequest true "Payment data"
// @Success 201 {object} OrderResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /orders/checkout [post]
func (h *OrderHandler) Checkout(c echo.Context) error {
	identity, _ := auth.IdentityFromContext(c)

	var req CheckoutRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	order, err := h.orderService.Checkout(c.Request().Context(), identity.Username, req.CardHolderName, req.CardNumber)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, newOrderResponse(order))
}

// ListOrders godoc
// @Summary List the authenticated user's orders
// @Tags orders
// @Produce json
// @Security BearerAuth
// @Success 200 {array} OrderResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /orders [get]
func (h *OrderHandler) ListOrders(c echo.Context) error {
	identity, _ := auth.IdentityFromContext(c)

	orders, err := h.orderService.UserOrders(c.Request().Context(), identity.Username)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, ordersToResponses(orders))
}

// GetOrder godoc
// @Summary Get one order by its order number
// @Description Only the order's owner or an admin may read it.
// @Tags orders
// @Produce json
// @Security BearerAuth
// @Param orderNumber path string true "Order number"
// @Success 200 {object} OrderResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /orders/{orderNumber} [get]
func (h *OrderHandler) GetOrder(c echo.Context) error {
	identity, _ := auth.IdentityFromContext(c)

	order, err := h.orderService.OrderByNumber(c.Request().Context(), c.Param("orderNumber"), identity.Username, identity.Role)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, newOrderResponse(order))
}

// ListAllOrders godoc
// @Summary List every order (admin)
// @Tags orders
// @Produce json
// @Security BearerAuth
// @Success 200 {array} OrderResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /orders/all [get]
func (h *OrderHandler) ListAllOrders(c echo.Context) error {
	orders, err := h.orderService.AllOrders(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, ordersToResponses(orders))
}

// ListPaymentMethods godoc
// @Summary List the authenticated user's stored payment fingerprints
// @Description Only the holder name, the masked number and the last four digits were ever stored.
// @Tags orders
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.PaymentMethod
// @Failure 401 {object} errors.ErrorResponse
// @Router /payment-methods [get]
func (h *OrderHandler) ListPaymentMethods(c echo.Context) error {
	identity, _ := auth.IdentityFromContext(c)

	methods, err := h.orderService.UserPaymentMethods(c.Request().Context(), identity.Username)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, methods)
}

func ordersToResponses(orders []model.Order) []OrderResponse {
	out := make([]OrderResponse, 0, len(orders))
	for i := range orders {
		out = append(out, newOrderResponse(&orders[i]))
	}
	return out
}
