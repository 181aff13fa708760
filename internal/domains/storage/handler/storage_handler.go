package handler

import (
	"errors"
	"net/http"

	"blog-gateway/internal/domains/storage/model"
	"blog-gateway/internal/domains/storage/repository"
	"blog-gateway/internal/infrastructure/remote"
	"blog-gateway/internal/shared/response"
	"blog-gateway/pkg/logger"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/gin-gonic/gin"
)

type Handler struct {
	repo repository.RepositoryInterface
}

func NewHandler(repo repository.RepositoryInterface) *Handler {
	return &Handler{repo: repo}
}

// PresignUpload - POST /api/v1/storage/presign-upload
func (h *Handler) PresignUpload(c *gin.Context) {
	var req model.PresignUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		var valErrs validation.Errors
		if errors.As(err, &valErrs) {
			response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid request", valErrs)
			return
		}
		response.BadRequest(c, err.Error())
		return
	}

	resp, err := h.repo.PresignUpload(c.Request.Context(), req)
	if err != nil {
		var reqErr *remote.RequestError
		if errors.As(err, &reqErr) {
			response.ErrorResponse(c, reqErr.StatusCode, "REMOTE_ERROR", reqErr.Message)
			return
		}
		logger.Error("[Handler] presign upload failed", err)
		response.BadGateway(c, "storage service unavailable")
		return
	}
	response.Success(c, http.StatusOK, resp)
}
