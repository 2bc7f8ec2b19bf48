package main

import (
	"context"
	"log"

	"fruitseason/internal/auth"
	"fruitseason/internal/cache"
	"fruitseason/internal/config"
	"fruitseason/internal/db"
	"fruitseason/internal/handler"
	"fruitseason/internal/model"
	"fruitseason/internal/repository"
	"fruitseason/internal/service"

	apperrors "fruitseason/internal/errors"
)

func main() {
	log.Println("Starting seed script...")

	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := gormDB.AutoMigrate(&model.User{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	repos := repository.NewRepositories(gormDB)
	jwtService := auth.NewJWTService(cfg.JWTSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)
	tokenStore := auth.NewTokenStore(cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB))
	authService := service.NewAuthService(repos.Users, jwtService, tokenStore)

	ctx := context.Background()
	created, skipped := 0, 0
	for _, u := range handler.DemoUsers {
		_, err := authService.Register(ctx, u.Username, u.Email, u.Password)
		switch err.(type) {
		case nil:
			created++
		case *apperrors.ValidationError:
			skipped++
		default:
			log.Fatalf("Failed to seed user %s: %v", u.Username, err)
		}
	}

	log.Printf("Seed complete: %d created, %d skipped", created, skipped)
}
