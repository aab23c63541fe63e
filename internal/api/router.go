package api

import (
	"github.com/gin-gonic/gin"

	"github.com/shafee-ullah/roommate-finder/backend-go/internal/handler"
	"github.com/shafee-ullah/roommate-finder/backend-go/internal/middleware"
)

func SetupRouter(
	userHandler *handler.UserHandler,
	listingHandler *handler.ListingHandler,
	authMiddleware *middleware.AuthMiddleware,
) *gin.Engine {
	r := gin.Default()
	r.SetTrustedProxies(nil)

	// Public routes
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	r.GET("/posts", listingHandler.List)
	r.GET("/posts/:id", authMiddleware.OptionalAuth(), listingHandler.Get)

	// User routes (authenticated)
	users := r.Group("/users")
	users.Use(authMiddleware.RequireAuth())
	{
		users.POST("", userHandler.Upsert)
		users.GET("/:email", userHandler.Get)
		users.PUT("/:email", userHandler.Update)
	}

	// Listing mutation routes (authenticated)
	posts := r.Group("/posts")
	posts.Use(authMiddleware.RequireAuth())
	{
		posts.POST("", listingHandler.Create)
		posts.PUT("/:id", listingHandler.Update)
		posts.DELETE("/:id", listingHandler.Delete)
		posts.PUT("/:id/like", listingHandler.Like)
	}

	return r
}
