package model

import (
	"errors"
	"net/http"

	"blog-gateway/internal/infrastructure/remote"
	"blog-gateway/internal/shared/response"
	"blog-gateway/pkg/logger"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/gin-gonic/gin"
)

// Author as served by the remote backend. The gateway references ids only;
// it never constructs one.
type Author struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email,omitempty"`
	Bio       string `json:"bio,omitempty"`
	Avatar    string `json:"avatar,omitempty"`
	URL       string `json:"url,omitempty"`
	CreatedAt string `json:"created_at,omitempty"`
	UpdatedAt string `json:"updated_at,omitempty"`
}

type AuthorRequest struct {
	Name   string `json:"name"`
	Email  string `json:"email,omitempty"`
	Bio    string `json:"bio,omitempty"`
	Avatar string `json:"avatar,omitempty"`
	URL    string `json:"url,omitempty"`
}

func (r AuthorRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name,
			validation.Required.Error("name is required"),
			validation.Length(1, 200),
		),
		validation.Field(&r.Email,
			validation.When(r.Email != "", is.Email.Error("invalid email format")),
		),
		validation.Field(&r.Avatar,
			validation.When(r.Avatar != "", is.URL.Error("avatar must be a URL")),
		),
		validation.Field(&r.URL,
			validation.When(r.URL != "", is.URL.Error("url must be a URL")),
		),
	)
}

var (
	ErrAuthorNotFound  = errors.New("author not found")
	ErrInvalidAuthorID = errors.New("invalid author id")
)

// HandleAuthorError writes the HTTP response for a service error.
func HandleAuthorError(c *gin.Context, err error) bool {
	if err == nil {
		return false
	}

	switch {
	case errors.Is(err, ErrAuthorNotFound):
		response.NotFound(c, "The requested author does not exist")
	case errors.Is(err, ErrInvalidAuthorID):
		response.BadRequest(c, "Author id must be a UUID")
	default:
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
		logger.Error("[Handler] author request failed", err)
		response.InternalServerError(c, "Internal server error")
	}
	return true
}
