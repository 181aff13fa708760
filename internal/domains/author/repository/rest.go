package repository

import (
	"context"
	"fmt"

	"blog-gateway/internal/domains/author/model"
	blogmodel "blog-gateway/internal/domains/blog/model"
	"blog-gateway/internal/infrastructure/remote"
)

type RepositoryInterface interface {
	List(ctx context.Context) ([]model.Author, error)
	GetByID(ctx context.Context, id string) (*model.Author, error)
	Create(ctx context.Context, req model.AuthorRequest) (*model.Author, error)
	Update(ctx context.Context, id string, req model.AuthorRequest) (*model.Author, error)
	Delete(ctx context.Context, id string) error
	ListBlogs(ctx context.Context, id string) ([]blogmodel.BlogPost, error)
}

// AuthorRepository proxies author resource calls to the remote backend.
type AuthorRepository struct {
	client *remote.Client
}

func NewAuthorRepository(client *remote.Client) RepositoryInterface {
	return &AuthorRepository{client: client}
}

func (r *AuthorRepository) List(ctx context.Context) ([]model.Author, error) {
	var authors []model.Author
	if err := r.client.Get(ctx, "/blog-authors", nil, &authors); err != nil {
		return nil, fmt.Errorf("list authors: %w", err)
	}
	return authors, nil
}

func (r *AuthorRepository) GetByID(ctx context.Context, id string) (*model.Author, error) {
	var author model.Author
	if err := r.client.Get(ctx, "/blog-authors/"+id, nil, &author); err != nil {
		if remote.IsNotFound(err) {
			return nil, model.ErrAuthorNotFound
		}
		return nil, fmt.Errorf("get author %s: %w", id, err)
	}
	return &author, nil
}

func (r *AuthorRepository) Create(ctx context.Context, req model.AuthorRequest) (*model.Author, error) {
	var author model.Author
	if err := r.client.Post(ctx, "/blog-authors", req, &author); err != nil {
		return nil, fmt.Errorf("create author: %w", err)
	}
	return &author, nil
}

func (r *AuthorRepository) Update(ctx context.Context, id string, req model.AuthorRequest) (*model.Author, error) {
	var author model.Author
	if err := r.client.Put(ctx, "/blog-authors/"+id, req, &author); err != nil {
		if remote.IsNotFound(err) {
			return nil, model.ErrAuthorNotFound
		}
		return nil, fmt.Errorf("update author %s: %w", id, err)
	}
	return &author, nil
}

func (r *AuthorRepository) Delete(ctx context.Context, id string) error {
	if err := r.client.Delete(ctx, "/blog-authors/"+id); err != nil {
		if remote.IsNotFound(err) {
			return model.ErrAuthorNotFound
		}
		return fmt.Errorf("delete author %s: %w", id, err)
	}
	return nil
}

func (r *AuthorRepository) ListBlogs(ctx context.Context, id string) ([]blogmodel.BlogPost, error) {
	var posts []blogmodel.BlogPost
	if err := r.client.Get(ctx, "/blog-authors/"+id+"/blogs", nil, &posts); err != nil {
		if remote.IsNotFound(err) {
			return nil, model.ErrAuthorNotFound
		}
		return nil, fmt.Errorf("list author blogs %s: %w", id, err)
	}
	return posts, nil
}
