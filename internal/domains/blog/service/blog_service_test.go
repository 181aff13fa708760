package service

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"blog-gateway/internal/config"
	"blog-gateway/internal/domains/blog/model"
	"blog-gateway/internal/shared/utils"
	"blog-gateway/pkg/cache"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRepo counts calls per operation so tests can observe cache behavior.
type fakeRepo struct {
	listCalls   int32
	getCalls    int32
	slugCalls   int32
	createCalls int32

	listFn    func(ctx context.Context, req model.ListBlogsRequest) (*model.ListBlogsData, error)
	getByIDFn func(ctx context.Context, id string) (*model.BlogPost, error)
	bySlugFn  func(ctx context.Context, slug string) (*model.BlogPost, error)
	createFn  func(ctx context.Context, req model.CreateBlogRequest) (*model.BlogPost, error)
	updateFn  func(ctx context.Context, id string, req model.UpdateBlogRequest) (*model.BlogPost, error)
	deleteFn  func(ctx context.Context, id string) error
	relatedFn func(ctx context.Context, id string) ([]model.BlogPost, error)
}

func (f *fakeRepo) List(ctx context.Context, req model.ListBlogsRequest) (*model.ListBlogsData, error) {
	atomic.AddInt32(&f.listCalls, 1)
	return f.listFn(ctx, req)
}

func (f *fakeRepo) GetByID(ctx context.Context, id string) (*model.BlogPost, error) {
	atomic.AddInt32(&f.getCalls, 1)
	return f.getByIDFn(ctx, id)
}

func (f *fakeRepo) GetBySlug(ctx context.Context, slug string) (*model.BlogPost, error) {
	atomic.AddInt32(&f.slugCalls, 1)
	return f.bySlugFn(ctx, slug)
}

func (f *fakeRepo) Create(ctx context.Context, req model.CreateBlogRequest) (*model.BlogPost, error) {
	atomic.AddInt32(&f.createCalls, 1)
	return f.createFn(ctx, req)
}

func (f *fakeRepo) Update(ctx context.Context, id string, req model.UpdateBlogRequest) (*model.BlogPost, error) {
	return f.updateFn(ctx, id, req)
}

func (f *fakeRepo) Delete(ctx context.Context, id string) error {
	return f.deleteFn(ctx, id)
}

func (f *fakeRepo) Related(ctx context.Context, id string) ([]model.BlogPost, error) {
	return f.relatedFn(ctx, id)
}

// fakeTags records which invalidations ran.
type fakeTags struct {
	allCalls  int32
	blogCalls int32
	lastID    string
	lastSlug  string
	err       error
}

func (f *fakeTags) InvalidateAllBlogs(ctx context.Context) error {
	atomic.AddInt32(&f.allCalls, 1)
	return f.err
}

func (f *fakeTags) InvalidateBlog(ctx context.Context, id, slug string) error {
	atomic.AddInt32(&f.blogCalls, 1)
	f.lastID = id
	f.lastSlug = slug
	return f.err
}

func testStaleness() config.StalenessConfig {
	return config.StalenessConfig{
		List:     time.Minute,
		Detail:   time.Minute,
		Related:  time.Minute,
		Taxonomy: time.Minute,
	}
}

func newTestService(t *testing.T, repo *fakeRepo, tags *fakeTags) ServiceInterface {
	t.Helper()
	coordinator := cache.NewCoordinator(cache.Config{})
	t.Cleanup(coordinator.Close)
	return NewService(repo, coordinator, tags, testStaleness())
}

func samplePost(id string) *model.BlogPost {
	return &model.BlogPost{
		ID:        id,
		Title:     "Sample Post",
		Content:   "body",
		CreatedAt: "2025-01-01T00:00:00Z",
	}
}

// ========================================
// READS
// ========================================

func TestListBlogsCachesPerParameterSet(t *testing.T) {
	repo := &fakeRepo{
		listFn: func(ctx context.Context, req model.ListBlogsRequest) (*model.ListBlogsData, error) {
			return &model.ListBlogsData{Blogs: []model.BlogPost{}, Total: 0}, nil
		},
	}
	svc := newTestService(t, repo, &fakeTags{})

	reqA := model.ListBlogsRequest{Page: 1, Limit: 10}
	reqB := model.ListBlogsRequest{Page: 2, Limit: 10}

	_, err := svc.ListBlogs(context.Background(), reqA)
	require.NoError(t, err)
	_, err = svc.ListBlogs(context.Background(), reqA)
	require.NoError(t, err)
	assert.EqualValues(t, 1, atomic.LoadInt32(&repo.listCalls), "identical requests share one fetch")

	_, err = svc.ListBlogs(context.Background(), reqB)
	require.NoError(t, err)
	assert.EqualValues(t, 2, atomic.LoadInt32(&repo.listCalls), "different parameters get their own entry")
}

func TestListBlogsComputesPagination(t *testing.T) {
	repo := &fakeRepo{
		listFn: func(ctx context.Context, req model.ListBlogsRequest) (*model.ListBlogsData, error) {
			return &model.ListBlogsData{Blogs: make([]model.BlogPost, 10), Total: 45}, nil
		},
	}
	svc := newTestService(t, repo, &fakeTags{})

	resp, err := svc.ListBlogs(context.Background(), model.ListBlogsRequest{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, 45, resp.Pagination.Total)
	assert.Equal(t, 5, resp.Pagination.TotalPage)
}

func TestGetBlogDetailRejectsInvalidID(t *testing.T) {
	svc := newTestService(t, &fakeRepo{}, &fakeTags{})

	_, err := svc.GetBlogDetail(context.Background(), "not-a-uuid")
	assert.ErrorIs(t, err, model.ErrInvalidBlogID)
}

func TestGetBlogBySlugRequiresEmbeddedID(t *testing.T) {
	svc := newTestService(t, &fakeRepo{}, &fakeTags{})

	_, err := svc.GetBlogBySlug(context.Background(), "just-a-title-slug")
	assert.ErrorIs(t, err, model.ErrInvalidSlug)
}

func TestGetBlogBySlugFallsBackToEmbeddedID(t *testing.T) {
	id := uuid.NewString()
	otherID := uuid.NewString()
	token := utils.EncodeSlug("Sample Post", id)

	repo := &fakeRepo{
		// Slug lookup lands on a colliding prefix: a different post
		bySlugFn: func(ctx context.Context, slug string) (*model.BlogPost, error) {
			return samplePost(otherID), nil
		},
		getByIDFn: func(ctx context.Context, gotID string) (*model.BlogPost, error) {
			assert.Equal(t, id, gotID)
			return samplePost(id), nil
		},
	}
	svc := newTestService(t, repo, &fakeTags{})

	post, err := svc.GetBlogBySlug(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, id, post.ID, "the embedded id decides which post is meant")
	assert.EqualValues(t, 1, atomic.LoadInt32(&repo.getCalls))
}

// ========================================
// MUTATIONS
// ========================================

func TestCreateBlogInvalidatesAfterRemoteWrite(t *testing.T) {
	id := uuid.NewString()
	repo := &fakeRepo{
		listFn: func(ctx context.Context, req model.ListBlogsRequest) (*model.ListBlogsData, error) {
			return &model.ListBlogsData{Blogs: []model.BlogPost{}}, nil
		},
		createFn: func(ctx context.Context, req model.CreateBlogRequest) (*model.BlogPost, error) {
			return samplePost(id), nil
		},
	}
	tags := &fakeTags{}
	svc := newTestService(t, repo, tags)

	// Warm the list cache, then create
	_, err := svc.ListBlogs(context.Background(), model.ListBlogsRequest{Page: 1, Limit: 10})
	require.NoError(t, err)

	post, err := svc.CreateBlog(context.Background(), model.CreateBlogRequest{Title: "Sample Post", Content: "body"})
	require.NoError(t, err)
	assert.Equal(t, id, post.ID)
	assert.EqualValues(t, 1, atomic.LoadInt32(&tags.allCalls))

	// The warmed list entry is stale now; the next read revalidates
	_, err = svc.ListBlogs(context.Background(), model.ListBlogsRequest{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Eventually(t, func() bool {
		return atomic.LoadInt32(&repo.listCalls) == 2
	}, 2*time.Second, 10*time.Millisecond)
}

func TestCreateBlogFailureSkipsInvalidation(t *testing.T) {
	repoErr := errors.New("backend rejected the write")
	repo := &fakeRepo{
		createFn: func(ctx context.Context, req model.CreateBlogRequest) (*model.BlogPost, error) {
			return nil, repoErr
		},
	}
	tags := &fakeTags{}
	svc := newTestService(t, repo, tags)

	_, err := svc.CreateBlog(context.Background(), model.CreateBlogRequest{Title: "T", Content: "c"})
	assert.ErrorIs(t, err, repoErr)
	assert.Zero(t, atomic.LoadInt32(&tags.allCalls), "no invalidation when the remote write fails")
	assert.Zero(t, atomic.LoadInt32(&tags.blogCalls))
}

func TestCreateBlogSwallowsInvalidationFailure(t *testing.T) {
	id := uuid.NewString()
	repo := &fakeRepo{
		createFn: func(ctx context.Context, req model.CreateBlogRequest) (*model.BlogPost, error) {
			return samplePost(id), nil
		},
	}
	tags := &fakeTags{err: errors.New("redis down")}
	svc := newTestService(t, repo, tags)

	post, err := svc.CreateBlog(context.Background(), model.CreateBlogRequest{Title: "T", Content: "c"})
	require.NoError(t, err, "the write succeeded; invalidation failure must not surface")
	assert.Equal(t, id, post.ID)
}

func TestUpdateBlogInvalidatesTheOnePost(t *testing.T) {
	id := uuid.NewString()
	repo := &fakeRepo{
		updateFn: func(ctx context.Context, gotID string, req model.UpdateBlogRequest) (*model.BlogPost, error) {
			post := samplePost(gotID)
			post.Slug = "sample-post"
			return post, nil
		},
	}
	tags := &fakeTags{}
	svc := newTestService(t, repo, tags)

	title := "New Title"
	_, err := svc.UpdateBlog(context.Background(), id, model.UpdateBlogRequest{Title: &title})
	require.NoError(t, err)

	assert.EqualValues(t, 1, atomic.LoadInt32(&tags.blogCalls))
	assert.Equal(t, id, tags.lastID)
	assert.Equal(t, "sample-post", tags.lastSlug)
	assert.Zero(t, atomic.LoadInt32(&tags.allCalls))
}

func TestUpdateBlogLeavesOtherDetailsFresh(t *testing.T) {
	updatedID := uuid.NewString()
	otherID := uuid.NewString()
	repo := &fakeRepo{
		getByIDFn: func(ctx context.Context, gotID string) (*model.BlogPost, error) {
			return samplePost(gotID), nil
		},
		updateFn: func(ctx context.Context, gotID string, req model.UpdateBlogRequest) (*model.BlogPost, error) {
			return samplePost(gotID), nil
		},
	}
	svc := newTestService(t, repo, &fakeTags{})

	// Warm both detail entries
	_, err := svc.GetBlogDetail(context.Background(), updatedID)
	require.NoError(t, err)
	_, err = svc.GetBlogDetail(context.Background(), otherID)
	require.NoError(t, err)
	require.EqualValues(t, 2, atomic.LoadInt32(&repo.getCalls))

	title := "New Title"
	_, err = svc.UpdateBlog(context.Background(), updatedID, model.UpdateBlogRequest{Title: &title})
	require.NoError(t, err)

	// The untouched post must still be served from cache
	_, err = svc.GetBlogDetail(context.Background(), otherID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, atomic.LoadInt32(&repo.getCalls), "unrelated detail entry must stay fresh")
}

func TestDeleteBlogRemovesDetailEntry(t *testing.T) {
	id := uuid.NewString()
	repo := &fakeRepo{
		getByIDFn: func(ctx context.Context, gotID string) (*model.BlogPost, error) {
			return samplePost(gotID), nil
		},
		deleteFn: func(ctx context.Context, gotID string) error { return nil },
	}
	tags := &fakeTags{}
	svc := newTestService(t, repo, tags)

	// Warm the detail cache
	_, err := svc.GetBlogDetail(context.Background(), id)
	require.NoError(t, err)
	require.EqualValues(t, 1, atomic.LoadInt32(&repo.getCalls))

	require.NoError(t, svc.DeleteBlog(context.Background(), id))
	assert.EqualValues(t, 1, atomic.LoadInt32(&tags.allCalls))

	// The detail entry is gone, not just stale
	_, err = svc.GetBlogDetail(context.Background(), id)
	require.NoError(t, err)
	assert.EqualValues(t, 2, atomic.LoadInt32(&repo.getCalls))
}
