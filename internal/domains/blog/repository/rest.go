package repository

import (
	"context"
	"fmt"
	"strconv"

	"blog-gateway/internal/domains/blog/model"
	"blog-gateway/internal/infrastructure/remote"
)

// BlogRepository performs blog resource calls against the remote backend.
type BlogRepository struct {
	client *remote.Client
}

func NewBlogRepository(client *remote.Client) RepositoryInterface {
	return &BlogRepository{client: client}
}

func (r *BlogRepository) List(ctx context.Context, req model.ListBlogsRequest) (*model.ListBlogsData, error) {
	query := remote.Query{
		"page":      strconv.Itoa(req.Page),
		"limit":     strconv.Itoa(req.Limit),
		"category":  req.Category,
		"tag":       req.Tag,
		"search":    req.Search,
		"author_id": req.AuthorID,
	}
	if req.Published != nil {
		query["published"] = strconv.FormatBool(*req.Published)
	}

	var data model.ListBlogsData
	if err := r.client.Get(ctx, "/blogs", query, &data); err != nil {
		return nil, fmt.Errorf("list blogs: %w", err)
	}
	return &data, nil
}

func (r *BlogRepository) GetByID(ctx context.Context, id string) (*model.BlogPost, error) {
	var post model.BlogPost
	if err := r.client.Get(ctx, "/blogs/"+id, nil, &post); err != nil {
		if remote.IsNotFound(err) {
			return nil, model.ErrBlogNotFound
		}
		return nil, fmt.Errorf("get blog %s: %w", id, err)
	}
	return &post, nil
}

func (r *BlogRepository) GetBySlug(ctx context.Context, slug string) (*model.BlogPost, error) {
	var post model.BlogPost
	if err := r.client.Get(ctx, "/blogs/slug/"+slug, nil, &post); err != nil {
		if remote.IsNotFound(err) {
			return nil, model.ErrBlogNotFound
		}
		return nil, fmt.Errorf("get blog by slug %s: %w", slug, err)
	}
	return &post, nil
}

func (r *BlogRepository) Create(ctx context.Context, req model.CreateBlogRequest) (*model.BlogPost, error) {
	var post model.BlogPost
	if err := r.client.Post(ctx, "/blogs", req, &post); err != nil {
		return nil, fmt.Errorf("create blog: %w", err)
	}
	return &post, nil
}

func (r *BlogRepository) Update(ctx context.Context, id string, req model.UpdateBlogRequest) (*model.BlogPost, error) {
	var post model.BlogPost
	if err := r.client.Put(ctx, "/blogs/"+id, req, &post); err != nil {
		if remote.IsNotFound(err) {
			return nil, model.ErrBlogNotFound
		}
		return nil, fmt.Errorf("update blog %s: %w", id, err)
	}
	return &post, nil
}

func (r *BlogRepository) Delete(ctx context.Context, id string) error {
	if err := r.client.Delete(ctx, "/blogs/"+id); err != nil {
		if remote.IsNotFound(err) {
			return model.ErrBlogNotFound
		}
		return fmt.Errorf("delete blog %s: %w", id, err)
	}
	return nil
}

func (r *BlogRepository) Related(ctx context.Context, id string) ([]model.BlogPost, error) {
	var posts []model.BlogPost
	if err := r.client.Get(ctx, "/blogs/"+id+"/related", nil, &posts); err != nil {
		if remote.IsNotFound(err) {
			return nil, model.ErrBlogNotFound
		}
		return nil, fmt.Errorf("related blogs %s: %w", id, err)
	}
	return posts, nil
}
