package service

import (
	"context"
	"fmt"
	"time"

	"blog-gateway/internal/config"
	"blog-gateway/internal/domains/blog/model"
	"blog-gateway/internal/domains/blog/repository"
	revalidate "blog-gateway/internal/domains/revalidate/service"
	"blog-gateway/internal/shared/utils"
	"blog-gateway/pkg/cache"
	"blog-gateway/pkg/logger"
)

// BlogService serves reads through the query cache coordinator and runs the
// mutation flow: remote write first, then local + tag invalidation.
type BlogService struct {
	repo        repository.RepositoryInterface
	coordinator *cache.Coordinator
	tags        revalidate.TagInvalidator
	staleness   config.StalenessConfig
}

// NewService - Constructor with DI
func NewService(
	repo repository.RepositoryInterface,
	coordinator *cache.Coordinator,
	tags revalidate.TagInvalidator,
	staleness config.StalenessConfig,
) ServiceInterface {
	return &BlogService{
		repo:        repo,
		coordinator: coordinator,
		tags:        tags,
		staleness:   staleness,
	}
}

// ========================================
// READS
// ========================================

func (s *BlogService) ListBlogs(ctx context.Context, req model.ListBlogsRequest) (*model.ListBlogsAPIResponse, error) {
	if req.Page <= 0 {
		req.Page = 1
	}
	if req.Limit <= 0 {
		req.Limit = 20
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	key := model.ListCacheKey(req)
	res, err := s.coordinator.Read(ctx, key, func(ctx context.Context) (interface{}, error) {
		data, err := s.repo.List(ctx, req)
		if err != nil {
			return nil, err
		}
		for i := range data.Blogs {
			data.Blogs[i].Normalize()
		}
		return data, nil
	}, s.readOptions(s.staleness.List))
	if err != nil {
		return nil, err
	}
	if res.Err != nil {
		// Revalidation failed - serve the stale value, surface separately
		logger.Warn("serving stale blog list", map[string]interface{}{
			"key":   key,
			"error": res.Err.Error(),
		})
	}

	data, ok := res.Data.(*model.ListBlogsData)
	if !ok {
		return nil, fmt.Errorf("unexpected cache payload for %s", key)
	}

	totalPages := data.TotalPages
	if totalPages == 0 && req.Limit > 0 {
		totalPages = (data.Total + req.Limit - 1) / req.Limit
	}
	return &model.ListBlogsAPIResponse{
		Blogs: data.Blogs,
		Pagination: model.PaginationMeta{
			Page:      req.Page,
			PageSize:  req.Limit,
			Total:     data.Total,
			TotalPage: totalPages,
		},
	}, nil
}

func (s *BlogService) GetBlogDetail(ctx context.Context, id string) (*model.BlogPost, error) {
	if !utils.IsValidUUID(id) {
		return nil, model.ErrInvalidBlogID
	}

	res, err := s.coordinator.Read(ctx, model.DetailCacheKey(id), func(ctx context.Context) (interface{}, error) {
		post, err := s.repo.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		post.Normalize()
		return post, nil
	}, s.readOptions(s.staleness.Detail))
	if err != nil {
		return nil, err
	}

	post, ok := res.Data.(*model.BlogPost)
	if !ok {
		return nil, fmt.Errorf("unexpected cache payload for blog %s", id)
	}
	return post, nil
}

// GetBlogBySlug resolves a browsable route token. Resolution is
// id-authoritative: the UUID embedded in the token decides which post is
// meant; a token without an extractable id fails rather than guessing,
// because slug prefixes are not unique across posts.
func (s *BlogService) GetBlogBySlug(ctx context.Context, token string) (*model.BlogPost, error) {
	id := utils.DecodeSlug(token)
	if id == "" {
		return nil, model.ErrInvalidSlug
	}

	res, err := s.coordinator.Read(ctx, model.SlugCacheKey(token), func(ctx context.Context) (interface{}, error) {
		post, err := s.repo.GetBySlug(ctx, token)
		if err != nil || post.ID != id {
			// Slug lookup missed or landed on a colliding prefix -
			// the embedded id is the source of truth.
			post, err = s.repo.GetByID(ctx, id)
			if err != nil {
				return nil, err
			}
		}
		post.Normalize()
		return post, nil
	}, s.readOptions(s.staleness.Detail))
	if err != nil {
		return nil, err
	}

	post, ok := res.Data.(*model.BlogPost)
	if !ok {
		return nil, fmt.Errorf("unexpected cache payload for slug %s", token)
	}
	return post, nil
}

func (s *BlogService) GetRelatedBlogs(ctx context.Context, id string) ([]model.BlogPost, error) {
	if !utils.IsValidUUID(id) {
		return nil, model.ErrInvalidBlogID
	}

	res, err := s.coordinator.Read(ctx, model.RelatedCacheKey(id), func(ctx context.Context) (interface{}, error) {
		posts, err := s.repo.Related(ctx, id)
		if err != nil {
			return nil, err
		}
		for i := range posts {
			posts[i].Normalize()
		}
		return posts, nil
	}, s.readOptions(s.staleness.Related))
	if err != nil {
		return nil, err
	}

	posts, ok := res.Data.([]model.BlogPost)
	if !ok {
		return nil, fmt.Errorf("unexpected cache payload for related %s", id)
	}
	return posts, nil
}

// ========================================
// MUTATIONS
// ========================================
// The remote write must succeed before any invalidation is attempted.
// Invalidation failure is logged and swallowed: the primary write already
// happened, and failing the operation would mislead the caller into
// retrying a write that succeeded.

func (s *BlogService) CreateBlog(ctx context.Context, req model.CreateBlogRequest) (*model.BlogPost, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	post, err := s.repo.Create(ctx, req)
	if err != nil {
		return nil, err
	}
	post.Normalize()

	// A new post could appear in any list page
	s.coordinator.Invalidate(model.ListKeyPrefix)
	if err := s.tags.InvalidateAllBlogs(ctx); err != nil {
		logger.ErrorFields("tag invalidation failed after create", err, map[string]interface{}{
			"blog_id": post.ID,
		})
	}
	return post, nil
}

func (s *BlogService) UpdateBlog(ctx context.Context, id string, req model.UpdateBlogRequest) (*model.BlogPost, error) {
	if !utils.IsValidUUID(id) {
		return nil, model.ErrInvalidBlogID
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	post, err := s.repo.Update(ctx, id, req)
	if err != nil {
		return nil, err
	}
	post.Normalize()

	// Only this post's detail plus any list page previewing it
	s.coordinator.Invalidate(model.DetailCacheKey(id))
	s.coordinator.Invalidate(model.ListKeyPrefix)
	s.coordinator.Invalidate(model.SlugKeyPrefix)
	if err := s.tags.InvalidateBlog(ctx, id, post.Slug); err != nil {
		logger.ErrorFields("tag invalidation failed after update", err, map[string]interface{}{
			"blog_id": id,
		})
	}
	return post, nil
}

func (s *BlogService) DeleteBlog(ctx context.Context, id string) error {
	if !utils.IsValidUUID(id) {
		return model.ErrInvalidBlogID
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	// Stale display of a deleted post is never acceptable - remove, don't
	// just mark stale.
	s.coordinator.Remove(model.DetailCacheKey(id))
	s.coordinator.Remove(model.RelatedCacheKey(id))
	s.coordinator.Invalidate(model.ListKeyPrefix)
	s.coordinator.Invalidate(model.SlugKeyPrefix)
	if err := s.tags.InvalidateAllBlogs(ctx); err != nil {
		logger.ErrorFields("tag invalidation failed after delete", err, map[string]interface{}{
			"blog_id": id,
		})
	}
	return nil
}

// readOptions derives eviction from staleness: entries linger for twice
// their freshness window (min 30m) before the janitor drops them.
func (s *BlogService) readOptions(staleAfter time.Duration) cache.Options {
	gc := 2 * staleAfter
	if gc < 30*time.Minute {
		gc = 30 * time.Minute
	}
	return cache.Options{StaleAfter: staleAfter, GCAfter: gc}
}
