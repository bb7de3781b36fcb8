package main

import (
	"log"

	"messagebox/config"
	"messagebox/internal/domain/message"
	"messagebox/internal/domain/user"
	"messagebox/internal/handler"
	"messagebox/internal/redis"
	"messagebox/internal/repository"
	"messagebox/internal/server"
	"messagebox/internal/services"
	"messagebox/pkg/database"
	"messagebox/pkg/logger"
)

func main() {
	cfg := config.LoadConfig()

	mode := logger.DevelopmentMode
	if cfg.AppMode == server.ReleaseMode {
		mode = logger.ProductionMode
	}
	l := logger.New(mode)
	defer l.Sync()

	// Connect to Database
	database.Connect(cfg)

	if err := database.DB.AutoMigrate(
		&user.User{},
		&message.Message{},
	); err != nil {
		log.Fatalf("Failed to apply migrations: %v", err)
	}

	userRepo := repository.NewUserRepository(database.DB)
	messageRepo := repository.NewMessageRepository(database.DB)

	authService := services.NewAuthService(userRepo, cfg)
	userService := services.NewUserService(userRepo)
	messageService := services.NewMessageService(messageRepo, cfg)

	// Rate limiting is optional; without Redis the middleware is a no-op.
	var limiter *redis.RateLimiter
	if cfg.RedisAddr != "" {
		client := redis.NewClient(redis.Config{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		limits := redis.DefaultRateLimitConfig()
		limits.AuthLimit = cfg.RateLimitAuth
		limits.MessageLimit = cfg.RateLimitMessages
		limiter = redis.NewRateLimiter(client, limits)
	}

	handlers := &server.Handlers{
		User:    handler.NewUserHandler(userService, authService),
		Message: handler.NewMessageHandler(messageService),
	}

	srv := server.New(cfg, l)
	srv.SetupRoutes(handlers, authService, limiter)

	if err := srv.Start(); err != nil {
		l.Errorf("server exited with error: %s", err)
	}
}
