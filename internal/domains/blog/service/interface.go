package service

import (
	"context"

	"blog-gateway/internal/domains/blog/model"
)

type ServiceInterface interface {
	ListBlogs(ctx context.Context, req model.ListBlogsRequest) (*model.ListBlogsAPIResponse, error)
	GetBlogDetail(ctx context.Context, id string) (*model.BlogPost, error)
	GetBlogBySlug(ctx context.Context, token string) (*model.BlogPost, error)
	GetRelatedBlogs(ctx context.Context, id string) ([]model.BlogPost, error)
	CreateBlog(ctx context.Context, req model.CreateBlogRequest) (*model.BlogPost, error)
	UpdateBlog(ctx context.Context, id string, req model.UpdateBlogRequest) (*model.BlogPost, error)
	DeleteBlog(ctx context.Context, id string) error
}
