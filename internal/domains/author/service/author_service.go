package service

import (
	"context"
	"fmt"
	"time"

	"blog-gateway/internal/config"
	"blog-gateway/internal/domains/author/model"
	"blog-gateway/internal/domains/author/repository"
	blogmodel "blog-gateway/internal/domains/blog/model"
	"blog-gateway/internal/shared/utils"
	"blog-gateway/pkg/cache"
)

const (
	listKey         = "author-list"
	detailKeyPrefix = "author-detail:"
	blogsKeyPrefix  = "author-blogs:"
)

type ServiceInterface interface {
	ListAuthors(ctx context.Context) ([]model.Author, error)
	GetAuthor(ctx context.Context, id string) (*model.Author, error)
	CreateAuthor(ctx context.Context, req model.AuthorRequest) (*model.Author, error)
	UpdateAuthor(ctx context.Context, id string, req model.AuthorRequest) (*model.Author, error)
	DeleteAuthor(ctx context.Context, id string) error
	ListAuthorBlogs(ctx context.Context, id string) ([]blogmodel.BlogPost, error)
}

// AuthorService caches author reads and invalidates blog list keys on
// author mutations - posts embed the author name, so a renamed author
// changes what the lists display.
type AuthorService struct {
	repo        repository.RepositoryInterface
	coordinator *cache.Coordinator
	staleness   config.StalenessConfig
}

func NewService(
	repo repository.RepositoryInterface,
	coordinator *cache.Coordinator,
	staleness config.StalenessConfig,
) ServiceInterface {
	return &AuthorService{
		repo:        repo,
		coordinator: coordinator,
		staleness:   staleness,
	}
}

func (s *AuthorService) ListAuthors(ctx context.Context) ([]model.Author, error) {
	res, err := s.coordinator.Read(ctx, listKey, func(ctx context.Context) (interface{}, error) {
		return s.repo.List(ctx)
	}, cache.Options{StaleAfter: s.staleness.Taxonomy, GCAfter: 2 * time.Hour})
	if err != nil {
		return nil, err
	}

	authors, ok := res.Data.([]model.Author)
	if !ok {
		return nil, fmt.Errorf("unexpected cache payload for %s", listKey)
	}
	return authors, nil
}

func (s *AuthorService) GetAuthor(ctx context.Context, id string) (*model.Author, error) {
	if !utils.IsValidUUID(id) {
		return nil, model.ErrInvalidAuthorID
	}

	res, err := s.coordinator.Read(ctx, detailKeyPrefix+id, func(ctx context.Context) (interface{}, error) {
		return s.repo.GetByID(ctx, id)
	}, cache.Options{StaleAfter: s.staleness.Detail, GCAfter: time.Hour})
	if err != nil {
		return nil, err
	}

	author, ok := res.Data.(*model.Author)
	if !ok {
		return nil, fmt.Errorf("unexpected cache payload for author %s", id)
	}
	return author, nil
}

func (s *AuthorService) CreateAuthor(ctx context.Context, req model.AuthorRequest) (*model.Author, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	author, err := s.repo.Create(ctx, req)
	if err != nil {
		return nil, err
	}
	s.coordinator.Invalidate(listKey)
	return author, nil
}

func (s *AuthorService) UpdateAuthor(ctx context.Context, id string, req model.AuthorRequest) (*model.Author, error) {
	if !utils.IsValidUUID(id) {
		return nil, model.ErrInvalidAuthorID
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	author, err := s.repo.Update(ctx, id, req)
	if err != nil {
		return nil, err
	}
	s.coordinator.Invalidate(listKey)
	s.coordinator.Invalidate(detailKeyPrefix + id)
	s.coordinator.Invalidate(blogmodel.ListKeyPrefix)
	return author, nil
}

func (s *AuthorService) DeleteAuthor(ctx context.Context, id string) error {
	if !utils.IsValidUUID(id) {
		return model.ErrInvalidAuthorID
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.coordinator.Remove(detailKeyPrefix + id)
	s.coordinator.Remove(blogsKeyPrefix + id)
	s.coordinator.Invalidate(listKey)
	return nil
}

func (s *AuthorService) ListAuthorBlogs(ctx context.Context, id string) ([]blogmodel.BlogPost, error) {
	if !utils.IsValidUUID(id) {
		return nil, model.ErrInvalidAuthorID
	}

	res, err := s.coordinator.Read(ctx, blogsKeyPrefix+id, func(ctx context.Context) (interface{}, error) {
		posts, err := s.repo.ListBlogs(ctx, id)
		if err != nil {
			return nil, err
		}
		for i := range posts {
			posts[i].Normalize()
		}
		return posts, nil
	}, cache.Options{StaleAfter: s.staleness.List, GCAfter: time.Hour})
	if err != nil {
		return nil, err
	}

	posts, ok := res.Data.([]blogmodel.BlogPost)
	if !ok {
		return nil, fmt.Errorf("unexpected cache payload for author blogs %s", id)
	}
	return posts, nil
}
