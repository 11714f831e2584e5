package main

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Shot-your-pet/publications-groupe9/internal/shared/middleware"
	"github.com/Shot-your-pet/publications-groupe9/pkg/container"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	// Global middlewares
	router.Use(
		middleware.Recovery(),
		middleware.Logger(),
		middleware.CORS(),
	)

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", healthCheckHandler(c))

		setupPostRoutes(v1, c)
	}

	return router
}

// ========================================
// POST ROUTES
// ========================================
func setupPostRoutes(v1 *gin.RouterGroup, c *container.Container) {
	posts := v1.Group("/posts", middleware.AuthMiddleware(c.Config.JWT.Secret))
	{
		posts.POST("", c.PostHandler.CreatePost)
		posts.GET("", c.PostHandler.ListPublishedPosts)
		posts.GET("/:id", c.PostHandler.GetPost)
	}
}

// ========================================
// HEALTH CHECK
// ========================================
func healthCheckHandler(c *container.Container) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if err := c.DB.HealthCheck(ctx.Request.Context()); err != nil {
			ctx.JSON(http.StatusServiceUnavailable, gin.H{
				"status": "unhealthy",
				"error":  err.Error(),
			})
			return
		}

		ctx.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"name":    c.Config.App.Name,
			"version": c.Config.App.Version,
			"bus":     c.Bus.Status().String(),
		})
	}
}
