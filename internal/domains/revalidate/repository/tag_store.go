package repository

import (
	"context"
	"fmt"

	"blog-gateway/pkg/cache"
)

const tagKeyPrefix = "cachetag:"

// TagStore keeps one generation counter per cache tag in the shared store.
// Counters only ever grow, so concurrent bumps commute and need no locking;
// a tag that does not exist yet reads as generation 0.
type TagStore struct {
	store cache.Store
}

func NewTagStore(store cache.Store) *TagStore {
	return &TagStore{store: store}
}

// Bump increments the generation of every given tag. Bumping an unknown
// tag creates it - never an error.
func (s *TagStore) Bump(ctx context.Context, tags ...string) error {
	for _, tag := range tags {
		if _, err := s.store.Increment(ctx, tagKeyPrefix+tag); err != nil {
			return fmt.Errorf("bump tag %s: %w", tag, err)
		}
	}
	return nil
}

// Generation reads the current generation of a tag. Missing tags are
// generation 0.
func (s *TagStore) Generation(ctx context.Context, tag string) (int64, error) {
	gen, _, err := s.store.GetInt64(ctx, tagKeyPrefix+tag)
	if err != nil {
		return 0, fmt.Errorf("read tag %s: %w", tag, err)
	}
	return gen, nil
}
