package model

import (
	"errors"
	"net/http"

	"blog-gateway/internal/infrastructure/remote"
	"blog-gateway/internal/shared/response"
	"blog-gateway/pkg/logger"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/gin-gonic/gin"
)

var (
	ErrBlogNotFound  = errors.New("blog post not found")
	ErrInvalidBlogID = errors.New("invalid blog id")
	ErrInvalidSlug   = errors.New("slug does not carry a resolvable id")
)

var blogErrorMap = map[error]struct {
	Status  int
	Code    string
	Message string
}{
	ErrBlogNotFound: {
		Status:  http.StatusNotFound,
		Code:    "BLOG_NOT_FOUND",
		Message: "The requested blog post does not exist",
	},
	ErrInvalidBlogID: {
		Status:  http.StatusBadRequest,
		Code:    "INVALID_BLOG_ID",
		Message: "Blog id must be a UUID",
	},
	ErrInvalidSlug: {
		Status:  http.StatusNotFound,
		Code:    "SLUG_NOT_RESOLVABLE",
		Message: "The slug does not carry a resolvable post id",
	},
}

// HandleBlogError writes the HTTP response for a service error.
// Returns true when err was non-nil and a response has been written.
func HandleBlogError(c *gin.Context, err error) bool {
	if err == nil {
		return false
	}

	if cfg, ok := blogErrorMap[err]; ok {
		response.ErrorResponse(c, cfg.Status, cfg.Code, cfg.Message)
		return true
	}

	// Backend rejections pass through with their original status
	var reqErr *remote.RequestError
	if errors.As(err, &reqErr) {
		response.ErrorResponse(c, reqErr.StatusCode, "REMOTE_ERROR", reqErr.Message)
		return true
	}

	var valErrs validation.Errors
	if errors.As(err, &valErrs) {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid request", valErrs)
		return true
	}

	logger.Error("[Handler] blog request failed", err)
	response.InternalServerError(c, "Internal server error")
	return true
}
