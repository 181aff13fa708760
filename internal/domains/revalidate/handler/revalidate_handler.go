package handler

import (
	"net/http"

	"blog-gateway/internal/domains/revalidate/model"
	"blog-gateway/internal/domains/revalidate/service"
	"blog-gateway/pkg/logger"

	"github.com/gin-gonic/gin"
)

// Handler exposes the tag invalidation protocol to the rendering tier.
type Handler struct {
	service *service.RevalidateService
}

func NewHandler(service *service.RevalidateService) *Handler {
	return &Handler{service: service}
}

// InvalidateAllBlogs - POST /api/cache/invalidate-all-blogs
func (h *Handler) InvalidateAllBlogs(c *gin.Context) {
	if err := h.service.InvalidateAllBlogs(c.Request.Context()); err != nil {
		logger.Error("[Cache] invalidate-all-blogs failed", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// InvalidateBlog - POST /api/cache/invalidate-blog
// Body: {blogId: string, slug?: string}
func (h *Handler) InvalidateBlog(c *gin.Context) {
	var req model.InvalidateBlogRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.BlogID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "blogId is required"})
		return
	}

	if err := h.service.InvalidateBlog(c.Request.Context(), req.BlogID, req.Slug); err != nil {
		logger.Error("[Cache] invalidate-blog failed", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// TagGeneration - GET /api/cache/tags/:tag
// Lets the rendering tier key its caches on the current generation.
func (h *Handler) TagGeneration(c *gin.Context) {
	tag := c.Param("tag")

	gen, err := h.service.Generation(c.Request.Context(), tag)
	if err != nil {
		logger.Error("[Cache] tag generation read failed", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "tag": tag, "generation": gen})
}
