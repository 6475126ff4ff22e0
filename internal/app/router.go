package app

import (
	"github.com/gin-gonic/gin"
	"github.com/newrelic/go-agent/v3/integrations/nrgin"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/redis/go-redis/v9"

	"github.com/CaptainFAHIM/uni-ride/internal/handler"
	"github.com/CaptainFAHIM/uni-ride/internal/middleware"
	"github.com/CaptainFAHIM/uni-ride/internal/service"
)

// RouterDeps contains all dependencies needed for the router.
type RouterDeps struct {
	AuthHandler    *handler.AuthHandler
	RideHandler    *handler.RideHandler
	MessageHandler *handler.MessageHandler
	PaymentHandler *handler.PaymentHandler
	SeedHandler    *handler.SeedHandler
	AuthService    *service.AuthService
	CookieName     string
	SeedEnabled    bool
	RedisClient    *redis.Client
	NewRelicApp    *newrelic.Application
}

// NewRouter creates a new Gin router with all routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	router := gin.New()

	// Global middleware.
	router.Use(gin.Recovery())
	router.Use(gin.Logger())
	router.Use(middleware.CORSMiddleware())

	// Add New Relic middleware if enabled.
	if deps.NewRelicApp != nil {
		router.Use(nrgin.Middleware(deps.NewRelicApp))
	}

	router.Use(middleware.IdempotencyMiddleware(deps.RedisClient))
	router.Use(middleware.SessionMiddleware(deps.AuthService, deps.CookieName))

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// API v1 routes.
	v1 := router.Group("/v1")
	{
		// Auth routes.
		auth := v1.Group("/auth")
		{
			auth.POST("/register", deps.AuthHandler.Register)
			auth.POST("/login", deps.AuthHandler.Login)
			auth.POST("/logout", deps.AuthHandler.Logout)
			auth.GET("/me", deps.AuthHandler.Me)
		}

		// Ride routes. Search and detail are public; the membership gate for
		// authenticated searchers is enforced in the service.
		rides := v1.Group("/rides")
		{
			rides.GET("/search", deps.RideHandler.Search)
			rides.GET("/:id", deps.RideHandler.GetRide)

			rides.POST("", middleware.RequireAuth(), deps.RideHandler.CreateRide)
			rides.GET("", middleware.RequireAuth(), deps.RideHandler.ListOwned)
			rides.POST("/:id/complete", middleware.RequireAuth(), deps.RideHandler.CompleteRide)
			rides.DELETE("/:id", middleware.RequireAuth(), deps.RideHandler.DeleteRide)
		}

		// Message routes.
		messages := v1.Group("/messages", middleware.RequireAuth())
		{
			messages.POST("", deps.MessageHandler.Send)
			messages.GET("/conversations", deps.MessageHandler.ListConversations)
			messages.GET("/:userId/:rideId", deps.MessageHandler.GetThread)
		}

		// Payment routes.
		payments := v1.Group("/payments", middleware.RequireAuth())
		{
			payments.POST("", deps.PaymentHandler.ProcessPayment)
			payments.GET("", deps.PaymentHandler.GetHistory)
		}

		// Demo bootstrap, env-gated.
		if deps.SeedEnabled {
			v1.POST("/seed", deps.SeedHandler.Seed)
		}
	}

	return router
}
