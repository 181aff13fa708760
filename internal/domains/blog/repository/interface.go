package repository

import (
	"context"

	"blog-gateway/internal/domains/blog/model"
)

// RepositoryInterface is the typed surface over the remote blog resource.
// One operation per backend action; no caching at this layer.
type RepositoryInterface interface {
	List(ctx context.Context, req model.ListBlogsRequest) (*model.ListBlogsData, error)
	GetByID(ctx context.Context, id string) (*model.BlogPost, error)
	GetBySlug(ctx context.Context, slug string) (*model.BlogPost, error)
	Create(ctx context.Context, req model.CreateBlogRequest) (*model.BlogPost, error)
	Update(ctx context.Context, id string, req model.UpdateBlogRequest) (*model.BlogPost, error)
	Delete(ctx context.Context, id string) error
	Related(ctx context.Context, id string) ([]model.BlogPost, error)
}
