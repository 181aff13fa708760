package service

import (
	"context"

	"blog-gateway/internal/domains/revalidate/model"
	"blog-gateway/internal/domains/revalidate/repository"
)

// TagInvalidator is what the mutation flow calls after a successful write.
// Both operations are idempotent and order-independent.
type TagInvalidator interface {
	InvalidateAllBlogs(ctx context.Context) error
	InvalidateBlog(ctx context.Context, id, slug string) error
}

type RevalidateService struct {
	tags *repository.TagStore
}

func NewService(tags *repository.TagStore) *RevalidateService {
	return &RevalidateService{tags: tags}
}

// InvalidateAllBlogs bumps the broad tags plus the blog index path cache.
// Used after create/delete, where the set of affected list pages is
// unbounded.
func (s *RevalidateService) InvalidateAllBlogs(ctx context.Context) error {
	return s.tags.Bump(ctx,
		model.TagBlogs,
		model.TagBlogList,
		model.TagBlogDetail,
		model.PathTag(model.BlogIndexPath),
	)
}

// InvalidateBlog bumps only the one post's tags plus the list tags that can
// show a preview of it. Used after update. Unknown ids are a no-op success.
func (s *RevalidateService) InvalidateBlog(ctx context.Context, id, slug string) error {
	tags := []string{
		model.BlogTag(id),
		model.TagBlogDetail,
		model.TagBlogList,
	}
	if slug != "" {
		tags = append(tags, model.BlogSlugTag(slug))
	}
	tags = append(tags, model.PathTag(model.BlogIndexPath))
	return s.tags.Bump(ctx, tags...)
}

// Generation exposes the current generation for the rendering tier.
func (s *RevalidateService) Generation(ctx context.Context, tag string) (int64, error) {
	return s.tags.Generation(ctx, tag)
}
