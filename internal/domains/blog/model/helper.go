package model

import (
	"fmt"
	"strconv"
	"strings"
)

// Canonical cache key prefixes. Invalidation is prefix-based, so the list
// prefix must cover every parameterized list key.
const (
	ListKeyPrefix    = "blog-list"
	DetailKeyPrefix  = "blog-detail:"
	SlugKeyPrefix    = "blog-slug:"
	RelatedKeyPrefix = "blog-related:"
)

// ListCacheKey builds the canonical key for a list request: the prefix plus
// a short hash over every parameter, so two identical requests always map
// to the same key.
func ListCacheKey(req ListBlogsRequest) string {
	published := ""
	if req.Published != nil {
		published = strconv.FormatBool(*req.Published)
	}
	parts := []string{
		strconv.Itoa(req.Page),
		strconv.Itoa(req.Limit),
		req.Category,
		req.Tag,
		req.Search,
		req.AuthorID,
		published,
	}
	return fmt.Sprintf("%s:%x", ListKeyPrefix, hashString(strings.Join(parts, ":")))
}

func DetailCacheKey(id string) string { return DetailKeyPrefix + id }

func SlugCacheKey(slug string) string { return SlugKeyPrefix + slug }

func RelatedCacheKey(id string) string { return RelatedKeyPrefix + id }

// Helper: Hash string to integer (djb2)
func hashString(s string) uint32 {
	h := uint32(5381)
	for i := 0; i < len(s); i++ {
		h = ((h << 5) + h) + uint32(s[i])
	}
	return h
}
