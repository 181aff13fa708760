package handler

import (
	"net/http"

	"blog-gateway/internal/domains/author/model"
	"blog-gateway/internal/domains/author/service"
	"blog-gateway/internal/shared/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service service.ServiceInterface
}

func NewHandler(service service.ServiceInterface) *Handler {
	return &Handler{service: service}
}

// ListAuthors - GET /api/v1/blog-authors
func (h *Handler) ListAuthors(c *gin.Context) {
	authors, err := h.service.ListAuthors(c.Request.Context())
	if model.HandleAuthorError(c, err) {
		return
	}
	response.Success(c, http.StatusOK, authors)
}

// GetAuthor - GET /api/v1/blog-authors/:id
func (h *Handler) GetAuthor(c *gin.Context) {
	author, err := h.service.GetAuthor(c.Request.Context(), c.Param("id"))
	if model.HandleAuthorError(c, err) {
		return
	}
	response.Success(c, http.StatusOK, author)
}

// CreateAuthor - POST /api/v1/blog-authors
func (h *Handler) CreateAuthor(c *gin.Context) {
	var req model.AuthorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	author, err := h.service.CreateAuthor(c.Request.Context(), req)
	if model.HandleAuthorError(c, err) {
		return
	}
	response.Success(c, http.StatusCreated, author)
}

// UpdateAuthor - PUT /api/v1/blog-authors/:id
func (h *Handler) UpdateAuthor(c *gin.Context) {
	var req model.AuthorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	author, err := h.service.UpdateAuthor(c.Request.Context(), c.Param("id"), req)
	if model.HandleAuthorError(c, err) {
		return
	}
	response.Success(c, http.StatusOK, author)
}

// DeleteAuthor - DELETE /api/v1/blog-authors/:id
func (h *Handler) DeleteAuthor(c *gin.Context) {
	err := h.service.DeleteAuthor(c.Request.Context(), c.Param("id"))
	if model.HandleAuthorError(c, err) {
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}

// ListAuthorBlogs - GET /api/v1/blog-authors/:id/blogs
func (h *Handler) ListAuthorBlogs(c *gin.Context) {
	posts, err := h.service.ListAuthorBlogs(c.Request.Context(), c.Param("id"))
	if model.HandleAuthorError(c, err) {
		return
	}
	response.Success(c, http.StatusOK, posts)
}
