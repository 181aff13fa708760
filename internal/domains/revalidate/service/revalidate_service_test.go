package service

import (
	"context"
	"testing"

	"blog-gateway/internal/domains/revalidate/model"
	"blog-gateway/internal/domains/revalidate/repository"
	"blog-gateway/pkg/cache"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRevalidate() *RevalidateService {
	return NewService(repository.NewTagStore(cache.NewMemoryStore()))
}

func TestInvalidateAllBlogsBumpsBroadTags(t *testing.T) {
	svc := newTestRevalidate()
	ctx := context.Background()

	require.NoError(t, svc.InvalidateAllBlogs(ctx))

	for _, tag := range []string{
		model.TagBlogs,
		model.TagBlogList,
		model.TagBlogDetail,
		model.PathTag(model.BlogIndexPath),
	} {
		gen, err := svc.Generation(ctx, tag)
		require.NoError(t, err)
		assert.EqualValues(t, 1, gen, "tag %s", tag)
	}
}

func TestInvalidateBlogBumpsScopedTags(t *testing.T) {
	svc := newTestRevalidate()
	ctx := context.Background()

	require.NoError(t, svc.InvalidateBlog(ctx, "post-1", "my-post"))

	for _, tag := range []string{
		model.BlogTag("post-1"),
		model.TagBlogDetail,
		model.TagBlogList,
		model.BlogSlugTag("my-post"),
		model.PathTag(model.BlogIndexPath),
	} {
		gen, err := svc.Generation(ctx, tag)
		require.NoError(t, err)
		assert.EqualValues(t, 1, gen, "tag %s", tag)
	}

	// The broad "everything" tag stays untouched
	gen, err := svc.Generation(ctx, model.TagBlogs)
	require.NoError(t, err)
	assert.Zero(t, gen)
}

func TestInvalidateBlogWithoutSlug(t *testing.T) {
	svc := newTestRevalidate()
	ctx := context.Background()

	require.NoError(t, svc.InvalidateBlog(ctx, "post-1", ""))

	gen, err := svc.Generation(ctx, model.BlogTag("post-1"))
	require.NoError(t, err)
	assert.EqualValues(t, 1, gen)
}

func TestRepeatedInvalidationStaysMonotonic(t *testing.T) {
	svc := newTestRevalidate()
	ctx := context.Background()

	// Double delivery is the normal case, not an error
	require.NoError(t, svc.InvalidateAllBlogs(ctx))
	require.NoError(t, svc.InvalidateAllBlogs(ctx))

	gen, err := svc.Generation(ctx, model.TagBlogs)
	require.NoError(t, err)
	assert.EqualValues(t, 2, gen)

	require.NoError(t, svc.InvalidateBlog(ctx, "post-1", ""))
	gen2, err := svc.Generation(ctx, model.TagBlogs)
	require.NoError(t, err)
	assert.Equal(t, gen, gen2, "scoped invalidation must not move the broad tag")
}

func TestGenerationOfUnknownTagIsZero(t *testing.T) {
	svc := newTestRevalidate()

	gen, err := svc.Generation(context.Background(), "never-bumped")
	require.NoError(t, err)
	assert.Zero(t, gen)
}
