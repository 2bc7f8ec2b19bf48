package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"fruitseason/internal/auth"
	"fruitseason/internal/handler"
	"fruitseason/internal/model"
)

// Register wires routes and middleware. The identity gate runs on every /api
// request and never rejects by itself; RequireUser/RequireRole enforce access
// per route group.
func Register(
	e *echo.Echo,
	gate echo.MiddlewareFunc,
	authHandler *handler.AuthHandler,
	catalogHandler *handler.CatalogHandler,
	cartHandler *handler.CartHandler,
	orderHandler *handler.OrderHandler,
	seedHandler *handler.SeedHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	// Add validator
	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("", gate).Group("/api")

	// Public routes
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)
	api.POST("/auth/refresh", authHandler.Refresh)
	api.POST("/auth/logout", authHandler.Logout)
	api.GET("/catalog/fruits", catalogHandler.ListFruits)
	api.GET("/catalog/plans", catalogHandler.ListPlans)
	api.POST("/seed/users", seedHandler.SeedUsers)

	// Secured routes (require an authenticated identity)
	secured := api.Group("", auth.RequireUser())

	secured.GET("/cart", cartHandler.GetCart)
	secured.POST("/cart/plan", cartHandler.SelectPlan)
	secured.POST("/cart/items", cartHandler.AddFruit)
	secured.DELETE("/cart/items/:fruit", cartHandler.RemoveFruit)
	secured.DELETE("/cart", cartHandler.ClearCart)

	secured.POST("/orders/checkout", orderHandler.Checkout)
	secured.GET("/orders", orderHandler.ListOrders)
	secured.GET("/orders/all", orderHandler.ListAllOrders, auth.RequireRole(model.RoleAdmin))
	secured.GET("/orders/:orderNumber", orderHandler.GetOrder)
	secured.GET("/payment-methods", orderHandler.ListPaymentMethods)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
