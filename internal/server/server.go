package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"messagebox/config"
	"messagebox/internal/handler"
	"messagebox/internal/middleware"
	"messagebox/internal/redis"
	"messagebox/internal/services"
	"messagebox/internal/transport/httpdto"
	"messagebox/pkg/database"
	"messagebox/pkg/logger"

	"github.com/gin-gonic/gin"
)

type Server struct {
	httpServer *http.Server
	engine     *gin.Engine
	config     *config.Config
	logger     *logger.Logger
}

var (
	ReleaseMode = "release"
	DebugMode   = "debug"
	TestMode    = "test"
)

type Handlers struct {
	User    *handler.UserHandler
	Message *handler.MessageHandler
}

func New(cfg *config.Config, l *logger.Logger) *Server {
	if cfg.AppMode == ReleaseMode {
		gin.SetMode(gin.ReleaseMode)
	} else if cfg.AppMode == TestMode {
		gin.SetMode(gin.TestMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.HandleMethodNotAllowed = true

	// Unrouted methods and paths answer with the same envelope as every
	// other error, not gin's plain-text defaults.
	engine.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, httpdto.NewErrorResponse("method not allowed", "METHOD_NOT_ALLOWED"))
	})
	engine.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, httpdto.NewErrorResponse("not found", "NOT_FOUND"))
	})

	return &Server{
		httpServer: &http.Server{
			Addr:    fmt.Sprintf(":%s", cfg.AppPort),
			Handler: engine,
		},
		engine: engine,
		config: cfg,
		logger: l,
	}
}

func (s *Server) SetupRoutes(handlers *Handlers, authService *services.AuthService, limiter *redis.RateLimiter) {
	s.engine.Use(middleware.RequestIDMiddleware())
	s.engine.Use(middleware.CORSMiddleware())
	s.engine.Use(middleware.LoggingMiddleware(s.logger))
	s.engine.Use(middleware.ErrorHandler(s.logger))

	s.engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, httpdto.NewSuccessResponse(gin.H{"message": "pong"}))
	})

	s.engine.GET("/health", func(c *gin.Context) {
		if err := database.HealthCheck(); err != nil {
			c.JSON(http.StatusServiceUnavailable, httpdto.NewErrorResponse(err.Error(), "UNHEALTHY"))
			return
		}
		c.JSON(http.StatusOK, httpdto.NewSuccessResponse(gin.H{"status": "healthy"}))
	})

	api := s.engine.Group("/api")

	user := api.Group("/user")
	{
		user.POST("/create/", middleware.AuthRateLimitMiddleware(limiter), handlers.User.Register)
		user.POST("/token/", middleware.AuthRateLimitMiddleware(limiter), handlers.User.Token)

		// Anonymous profile requests answer 401.
		profile := user.Group("/profile", middleware.AuthMiddleware(authService, http.StatusUnauthorized))
		{
			profile.GET("/", handlers.User.Profile)
			profile.PATCH("/", handlers.User.UpdateProfile)
			profile.DELETE("/", handlers.User.DeleteProfile)
		}
	}

	// Anonymous message requests answer 403.
	messages := api.Group("/message/messages", middleware.AuthMiddleware(authService, http.StatusForbidden))
	{
		messages.GET("/", handlers.Message.List)
		messages.POST("/", middleware.MessageRateLimitMiddleware(limiter), handlers.Message.Create)
		messages.GET("/:id/", handlers.Message.Get)
		messages.PATCH("/:id/", handlers.Message.Update)
		messages.DELETE("/:id/", handlers.Message.Delete)
	}
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) Start() error {
	go func() {
		if s.logger != nil {
			s.logger.Infof("Starting the server on port %s...", s.config.AppPort)
		}
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			if s.logger != nil {
				s.logger.Errorf("Error in starting the server: %s", err)
			}
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	if s.logger != nil {
		s.logger.Infof("Server is running on :%s", s.config.AppPort)
	}

	<-quit

	if s.logger != nil {
		s.logger.Infof("Quitting signal received.. Shutting down after 5 seconds")
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		if s.logger != nil {
			s.logger.Infof("Error in the graceful shutdown of the server: %s", err)
		}
		return err
	}

	if s.logger != nil {
		s.logger.Infof("Server stopped gracefully")
	}

	return nil
}
