package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"blog-gateway/internal/shared/middleware"
	"blog-gateway/pkg/container"

	"github.com/gin-gonic/gin"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	// Global middlewares
	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.CORS(),
		middleware.ClientIPMiddleware(),
	)

	v1 := router.Group("/api/v1")
	{
		// Health check
		v1.GET("/health", healthCheckHandler(c))

		setupBlogRoutes(v1, c)
		setupAuthorRoutes(v1, c)
		setupTaxonomyRoutes(v1, c)
		setupStorageRoutes(v1, c)
	}

	// Cache invalidation protocol - lives outside /api/v1 because the
	// rendering tier calls it, not browsers.
	setupCacheRoutes(router, c)

	return router
}

// ========================================
// BLOG ROUTES
// ========================================
func setupBlogRoutes(v1 *gin.RouterGroup, c *container.Container) {
	blogs := v1.Group("/blogs")
	{
		blogs.GET("", c.BlogHandler.ListBlogs)
		blogs.GET("/:id", c.BlogHandler.GetBlogDetail)
		blogs.GET("/slug/:slug", c.BlogHandler.GetBlogBySlug)
		blogs.GET("/:id/related", c.BlogHandler.GetRelatedBlogs)

		// Mutations are rate limited per client IP
		limited := blogs.Group("")
		limited.Use(middleware.RateLimit(c.RateLimiter))
		{
			limited.POST("", c.BlogHandler.CreateBlog)
			limited.PUT("/:id", c.BlogHandler.UpdateBlog)
			limited.DELETE("/:id", c.BlogHandler.DeleteBlog)
		}
	}
}

// ========================================
// AUTHOR ROUTES
// ========================================
func setupAuthorRoutes(v1 *gin.RouterGroup, c *container.Container) {
	authors := v1.Group("/blog-authors")
	{
		authors.GET("", c.AuthorHandler.ListAuthors)
		authors.GET("/:id", c.AuthorHandler.GetAuthor)
		authors.GET("/:id/blogs", c.AuthorHandler.ListAuthorBlogs)

		limited := authors.Group("")
		limited.Use(middleware.RateLimit(c.RateLimiter))
		{
			limited.POST("", c.AuthorHandler.CreateAuthor)
			limited.PUT("/:id", c.AuthorHandler.UpdateAuthor)
			limited.DELETE("/:id", c.AuthorHandler.DeleteAuthor)
		}
	}
}

// ========================================
// TAXONOMY ROUTES
// ========================================
func setupTaxonomyRoutes(v1 *gin.RouterGroup, c *container.Container) {
	v1.GET("/blog-categories", c.TaxonomyHandler.Categories)
	v1.GET("/blog-tags", c.TaxonomyHandler.Tags)
}

// ========================================
// STORAGE ROUTES
// ========================================
func setupStorageRoutes(v1 *gin.RouterGroup, c *container.Container) {
	storage := v1.Group("/storage")
	storage.Use(middleware.RateLimit(c.RateLimiter))
	{
		storage.POST("/presign-upload", c.StorageHandler.PresignUpload)
	}
}

// ========================================
// CACHE INVALIDATION ROUTES
// ========================================
func setupCacheRoutes(router *gin.Engine, c *container.Container) {
	cacheAPI := router.Group("/api/cache")
	{
		cacheAPI.POST("/invalidate-all-blogs", c.RevalidateHandler.InvalidateAllBlogs)
		cacheAPI.POST("/invalidate-blog", c.RevalidateHandler.InvalidateBlog)
		cacheAPI.GET("/tags/:tag", c.RevalidateHandler.TagGeneration)
	}
}

// ========================================
// HEALTH CHECK HANDLER
// ========================================
func healthCheckHandler(appCtx *container.Container) gin.HandlerFunc {
	return func(c *gin.Context) {
		health := gin.H{
			"status":    "ok",
			"timestamp": time.Now().Format(time.RFC3339),
			"version":   appCtx.Config.App.Version,
			"services":  gin.H{},
		}

		// Check redis
		redisStatus := "ok"
		if appCtx.Redis == nil {
			redisStatus = "disconnected"
			health["status"] = "degraded"
		} else {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()

			if err := appCtx.Redis.Ping(ctx); err != nil {
				redisStatus = fmt.Sprintf("error: %v", err)
				health["status"] = "degraded"
			}
		}

		// Check remote backend
		backendStatus := "ok"
		{
			ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
			defer cancel()

			if err := appCtx.Remote.Ping(ctx); err != nil {
				backendStatus = fmt.Sprintf("error: %v", err)
				health["status"] = "degraded"
			}
		}

		health["services"] = gin.H{
			"redis":       redisStatus,
			"backend":     backendStatus,
			"backend_url": appCtx.Config.Remote.BaseURL,
			"cache_keys":  appCtx.Coordinator.Len(),
		}

		// Redis degradation is not fatal: reads keep working
		c.JSON(http.StatusOK, health)
	}
}
