package model

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// ========================================
// LIST
// ========================================

type ListBlogsRequest struct {
	Page      int
	Limit     int
	Category  string
	Tag       string
	Search    string
	AuthorID  string
	Published *bool
}

func (r ListBlogsRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Page, validation.Min(1).Error("page must be positive")),
		validation.Field(&r.Limit, validation.Min(1), validation.Max(100).Error("limit must be 1-100")),
		validation.Field(&r.AuthorID, validation.When(r.AuthorID != "", is.UUIDv4.Error("author_id must be a UUID"))),
	)
}

// ListBlogsData mirrors the backend list payload:
// { blogs, total, page, limit, total_pages }
type ListBlogsData struct {
	Blogs      []BlogPost `json:"blogs"`
	Total      int        `json:"total"`
	Page       int        `json:"page"`
	Limit      int        `json:"limit"`
	TotalPages int        `json:"total_pages"`
}

// ========================================
// MUTATIONS
// ========================================

type CreateBlogRequest struct {
	Title           string   `json:"title"`
	Excerpt         string   `json:"excerpt,omitempty"`
	Content         string   `json:"content"`
	Category        string   `json:"category,omitempty"`
	AuthorName      string   `json:"author_name,omitempty"`
	AuthorID        string   `json:"author_id,omitempty"`
	FeaturedImage   string   `json:"featured_image,omitempty"`
	Published       bool     `json:"published"`
	Tags            []string `json:"tags,omitempty"`
	MetaDescription string   `json:"meta_description,omitempty"`
}

func (r CreateBlogRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title,
			validation.Required.Error("title is required"),
			validation.Length(1, 300),
		),
		validation.Field(&r.Content,
			validation.Required.Error("content is required"),
		),
		validation.Field(&r.AuthorID,
			validation.When(r.AuthorID != "", is.UUIDv4.Error("author_id must be a UUID")),
		),
		validation.Field(&r.FeaturedImage,
			validation.When(r.FeaturedImage != "", is.URL.Error("featured_image must be a URL")),
		),
	)
}

// UpdateBlogRequest is a partial update: nil means "leave unchanged".
type UpdateBlogRequest struct {
	Title           *string   `json:"title,omitempty"`
	Excerpt         *string   `json:"excerpt,omitempty"`
	Content         *string   `json:"content,omitempty"`
	Category        *string   `json:"category,omitempty"`
	AuthorName      *string   `json:"author_name,omitempty"`
	AuthorID        *string   `json:"author_id,omitempty"`
	FeaturedImage   *string   `json:"featured_image,omitempty"`
	Published       *bool     `json:"published,omitempty"`
	Tags            *[]string `json:"tags,omitempty"`
	MetaDescription *string   `json:"meta_description,omitempty"`
}

func (r UpdateBlogRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title,
			validation.When(r.Title != nil, validation.Length(1, 300).Error("title must be 1-300 characters")),
		),
		validation.Field(&r.Content,
			validation.When(r.Content != nil, validation.Length(1, 0).Error("content must not be empty")),
		),
	)
}

// ========================================
// LIST RESPONSE (gateway -> frontend)
// ========================================

type ListBlogsAPIResponse struct {
	Blogs      []BlogPost     `json:"blogs"`
	Pagination PaginationMeta `json:"pagination"`
}

type PaginationMeta struct {
	Page      int `json:"page"`
	PageSize  int `json:"page_size"`
	Total     int `json:"total"`
	TotalPage int `json:"total_page"`
}
