package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"blog-gateway/internal/domains/taxonomy/model"
	"blog-gateway/internal/infrastructure/remote"
)

type RepositoryInterface interface {
	Categories(ctx context.Context) ([]model.Category, error)
	Tags(ctx context.Context) ([]model.Tag, error)
}

type TaxonomyRepository struct {
	client *remote.Client
}

func NewTaxonomyRepository(client *remote.Client) RepositoryInterface {
	return &TaxonomyRepository{client: client}
}

func (r *TaxonomyRepository) Categories(ctx context.Context) ([]model.Category, error) {
	var raw []json.RawMessage
	if err := r.client.Get(ctx, "/blog-categories", nil, &raw); err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}

	// Legacy endpoint mixes plain strings and objects in one list
	categories := make([]model.Category, 0, len(raw))
	for _, item := range raw {
		var name string
		if err := json.Unmarshal(item, &name); err == nil {
			categories = append(categories, model.Category{Name: name})
			continue
		}
		var cat model.Category
		if err := json.Unmarshal(item, &cat); err != nil {
			return nil, fmt.Errorf("decode category: %w", err)
		}
		categories = append(categories, cat)
	}
	return categories, nil
}

func (r *TaxonomyRepository) Tags(ctx context.Context) ([]model.Tag, error) {
	var raw []json.RawMessage
	if err := r.client.Get(ctx, "/blog-tags", nil, &raw); err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}

	tags := make([]model.Tag, 0, len(raw))
	for _, item := range raw {
		var name string
		if err := json.Unmarshal(item, &name); err == nil {
			tags = append(tags, model.Tag{Name: name})
			continue
		}
		var tag model.Tag
		if err := json.Unmarshal(item, &tag); err != nil {
			return nil, fmt.Errorf("decode tag: %w", err)
		}
		tags = append(tags, tag)
	}
	return tags, nil
}
