package service

import (
	"context"
	"fmt"
	"time"

	"blog-gateway/internal/config"
	"blog-gateway/internal/domains/taxonomy/model"
	"blog-gateway/internal/domains/taxonomy/repository"
	"blog-gateway/pkg/cache"
)

const (
	CategoriesKey = "taxonomy:categories"
	TagsKey       = "taxonomy:tags"
)

type ServiceInterface interface {
	Categories(ctx context.Context) ([]model.Category, error)
	Tags(ctx context.Context) ([]model.Tag, error)
}

// TaxonomyService serves categories and tags with the longest staleness
// window: they change rarely and are read by every page.
type TaxonomyService struct {
	repo        repository.RepositoryInterface
	coordinator *cache.Coordinator
	staleness   config.StalenessConfig
}

func NewService(
	repo repository.RepositoryInterface,
	coordinator *cache.Coordinator,
	staleness config.StalenessConfig,
) ServiceInterface {
	return &TaxonomyService{
		repo:        repo,
		coordinator: coordinator,
		staleness:   staleness,
	}
}

func (s *TaxonomyService) Categories(ctx context.Context) ([]model.Category, error) {
	res, err := s.coordinator.Read(ctx, CategoriesKey, func(ctx context.Context) (interface{}, error) {
		return s.repo.Categories(ctx)
	}, cache.Options{StaleAfter: s.staleness.Taxonomy, GCAfter: 4 * time.Hour})
	if err != nil {
		return nil, err
	}

	categories, ok := res.Data.([]model.Category)
	if !ok {
		return nil, fmt.Errorf("unexpected cache payload for %s", CategoriesKey)
	}
	return categories, nil
}

func (s *TaxonomyService) Tags(ctx context.Context) ([]model.Tag, error) {
	res, err := s.coordinator.Read(ctx, TagsKey, func(ctx context.Context) (interface{}, error) {
		return s.repo.Tags(ctx)
	}, cache.Options{StaleAfter: s.staleness.Taxonomy, GCAfter: 4 * time.Hour})
	if err != nil {
		return nil, err
	}

	tags, ok := res.Data.([]model.Tag)
	if !ok {
		return nil, fmt.Errorf("unexpected cache payload for %s", TagsKey)
	}
	return tags, nil
}
