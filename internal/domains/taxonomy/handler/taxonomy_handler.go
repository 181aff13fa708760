package handler

import (
	"net/http"

	"blog-gateway/internal/domains/taxonomy/service"
	"blog-gateway/internal/shared/response"
	"blog-gateway/pkg/logger"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service service.ServiceInterface
}

func NewHandler(service service.ServiceInterface) *Handler {
	return &Handler{service: service}
}

// Categories - GET /api/v1/blog-categories
func (h *Handler) Categories(c *gin.Context) {
	categories, err := h.service.Categories(c.Request.Context())
	if err != nil {
		logger.Error("[Handler] categories request failed", err)
		response.BadGateway(c, "failed to load categories")
		return
	}
	response.Success(c, http.StatusOK, categories)
}

// Tags - GET /api/v1/blog-tags
func (h *Handler) Tags(c *gin.Context) {
	tags, err := h.service.Tags(c.Request.Context())
	if err != nil {
		logger.Error("[Handler] tags request failed", err)
		response.BadGateway(c, "failed to load tags")
		return
	}
	response.Success(c, http.StatusOK, tags)
}
