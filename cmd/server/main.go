package main

import (
	"log"
	"net/http"

	"fruitseason/docs"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"fruitseason/internal/auth"
	"fruitseason/internal/cache"
	"fruitseason/internal/config"
	"fruitseason/internal/db"
	"fruitseason/internal/handler"
	"fruitseason/internal/model"
	"fruitseason/internal/repository"
	"fruitseason/internal/router"
	"fruitseason/internal/service"
)

// @title Fruitseason API
// @version 1.0
// @description Subscription produce box API: plan selection, cart, checkout and order history with JWT authentication.
// @host localhost:8080
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg := config.Load()
	if cfg.SwaggerHost != "" {
		docs.SwaggerInfo.Host = cfg.SwaggerHost
	}

	e := echo.New()
	e.Use(middleware.RequestID())

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	// Run migrations for all models
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Cart{},
		&model.CartItem{},
		&model.Order{},
		&model.PaymentMethod{},
	); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	// Initialize repositories
	repos := repository.NewRepositories(gormDB)

	// Initialize auth components
	jwtService := auth.NewJWTService(cfg.JWTSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)
	tokenStore := auth.NewTokenStore(cacheClient)
	gate := auth.Gate(jwtService, repos.Users)

	// Initialize services
	locks := service.NewUserLocks()
	authService := service.NewAuthService(repos.Users, jwtService, tokenStore)
	cartService := service.NewCartService(repos.Users, repos.Carts, locks)
	orderService := service.NewOrderService(repos, repos, cacheClient, locks)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	catalogHandler := handler.NewCatalogHandler()
	cartHandler := handler.NewCartHandler(cartService)
	orderHandler := handler.NewOrderHandler(orderService)
	seedHandler := handler.NewSeedHandler(authService)

	// Register routes
	router.Register(
		e,
		gate,
		authHandler,
		catalogHandler,
		cartHandler,
		orderHandler,
		seedHandler,
	)

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
