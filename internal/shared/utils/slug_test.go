package utils

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		name  string
		title string
		want  string
	}{
		{"simple title", "Hello World", "hello-world"},
		{"mixed case and punctuation", "Go: The Good Parts!", "go-the-good-parts"},
		{"whitespace runs", "too   many    spaces", "too-many-spaces"},
		{"repeated hyphens", "a -- b --- c", "a-b-c"},
		{"leading and trailing junk", "  --Hello--  ", "hello"},
		{"empty title", "", "untitled"},
		{"punctuation only", "!!! ???", "untitled"},
		{"korean is stripped but digits survive", "2025년 SEO의 미래", "2025-seo"},
		{"underscores are word chars", "snake_case_title", "snake_case_title"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Slugify(tt.title))
		})
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	titles := []string{
		"Hello World",
		"",
		"2025년 SEO의 미래",
		"   ",
		"a--b",
		"Ünïcôdé Tïtlé",
	}

	for _, title := range titles {
		id := uuid.NewString()
		token := EncodeSlug(title, id)
		assert.Equal(t, id, DecodeSlug(token), "title=%q token=%q", title, token)
	}
}

func TestEncodeSlugEmptyTitleFallsBack(t *testing.T) {
	id := "a1b2c3d4-e5f6-7890-abcd-ef1234567890"

	token := EncodeSlug("", id)
	assert.Equal(t, "untitled-"+id, token)
	assert.Contains(t, token, "untitled")
}

func TestEncodeSlugMissingID(t *testing.T) {
	token := EncodeSlug("Hello", "")
	assert.Equal(t, "hello-unknown", token)
	assert.Empty(t, DecodeSlug(token))
}

func TestDecodeSlugKoreanTitle(t *testing.T) {
	id := "a1b2c3d4-e5f6-7890-abcd-ef1234567890"

	token := EncodeSlug("2025년 SEO의 미래", id)
	assert.True(t, len(token) > len(id))
	assert.Equal(t, "2025-seo-"+id, token)
	assert.Equal(t, id, DecodeSlug(token))
}

func TestDecodeSlugMalformed(t *testing.T) {
	tests := []string{
		"",
		"no-uuid-here",
		"almost-a1b2c3d4-e5f6-7890-abcd-ef12345678",   // 10 hex in last group
		"a1b2c3d4e5f67890abcdef1234567890",            // no dashes
	}

	for _, token := range tests {
		assert.Empty(t, DecodeSlug(token), "token=%q", token)
	}
}

func TestIsValidUUID(t *testing.T) {
	assert.True(t, IsValidUUID("a1b2c3d4-e5f6-7890-abcd-ef1234567890"))
	assert.False(t, IsValidUUID("a1b2c3d4-e5f6-7890-abcd"))
	assert.False(t, IsValidUUID("prefix-a1b2c3d4-e5f6-7890-abcd-ef1234567890"))
}
