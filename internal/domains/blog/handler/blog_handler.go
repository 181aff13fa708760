package handler

import (
	"net/http"
	"strconv"

	"blog-gateway/internal/domains/blog/model"
	"blog-gateway/internal/domains/blog/service"
	"blog-gateway/internal/shared/response"

	"github.com/gin-gonic/gin"
)

// Handler - HTTP layer for the blog resource
type Handler struct {
	service service.ServiceInterface
}

// NewHandler - Constructor with DI
func NewHandler(service service.ServiceInterface) *Handler {
	return &Handler{service: service}
}

// ListBlogs - GET /api/v1/blogs
// Query params: page, limit, category, tag, search, published, author_id
func (h *Handler) ListBlogs(c *gin.Context) {
	req := model.ListBlogsRequest{
		Category: c.Query("category"),
		Tag:      c.Query("tag"),
		Search:   c.Query("search"),
		AuthorID: c.Query("author_id"),
		Page:     1,
		Limit:    20,
	}

	if pageStr := c.Query("page"); pageStr != "" {
		if p, err := strconv.Atoi(pageStr); err == nil && p > 0 {
			req.Page = p
		}
	}
	if limitStr := c.Query("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 && l <= 100 {
			req.Limit = l
		}
	}
	if pubStr := c.Query("published"); pubStr != "" {
		if pub, err := strconv.ParseBool(pubStr); err == nil {
			req.Published = &pub
		}
	}

	data, err := h.service.ListBlogs(c.Request.Context(), req)
	if model.HandleBlogError(c, err) {
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, data, &response.Meta{
		Page:  data.Pagination.Page,
		Limit: data.Pagination.PageSize,
		Total: data.Pagination.Total,
	})
}

// GetBlogDetail - GET /api/v1/blogs/:id
func (h *Handler) GetBlogDetail(c *gin.Context) {
	post, err := h.service.GetBlogDetail(c.Request.Context(), c.Param("id"))
	if model.HandleBlogError(c, err) {
		return
	}
	response.Success(c, http.StatusOK, post)
}

// GetBlogBySlug - GET /api/v1/blogs/slug/:slug
// The slug is a route token with the post id embedded; resolution is
// id-authoritative.
func (h *Handler) GetBlogBySlug(c *gin.Context) {
	post, err := h.service.GetBlogBySlug(c.Request.Context(), c.Param("slug"))
	if model.HandleBlogError(c, err) {
		return
	}
	response.Success(c, http.StatusOK, post)
}

// GetRelatedBlogs - GET /api/v1/blogs/:id/related
func (h *Handler) GetRelatedBlogs(c *gin.Context) {
	posts, err := h.service.GetRelatedBlogs(c.Request.Context(), c.Param("id"))
	if model.HandleBlogError(c, err) {
		return
	}
	response.Success(c, http.StatusOK, posts)
}

// CreateBlog - POST /api/v1/blogs
func (h *Handler) CreateBlog(c *gin.Context) {
	var req model.CreateBlogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	post, err := h.service.CreateBlog(c.Request.Context(), req)
	if model.HandleBlogError(c, err) {
		return
	}
	response.Success(c, http.StatusCreated, post)
}

// UpdateBlog - PUT /api/v1/blogs/:id
func (h *Handler) UpdateBlog(c *gin.Context) {
	var req model.UpdateBlogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	post, err := h.service.UpdateBlog(c.Request.Context(), c.Param("id"), req)
	if model.HandleBlogError(c, err) {
		return
	}
	response.Success(c, http.StatusOK, post)
}

// DeleteBlog - DELETE /api/v1/blogs/:id
func (h *Handler) DeleteBlog(c *gin.Context) {
	err := h.service.DeleteBlog(c.Request.Context(), c.Param("id"))
	if model.HandleBlogError(c, err) {
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}
