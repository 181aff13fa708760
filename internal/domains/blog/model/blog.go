package model

import (
	"encoding/json"

	"blog-gateway/internal/shared/utils"
)

// BlogPost is the normalized read model served to the frontend.
// The remote backend has grown several historical names for the same field
// (image/featured_image, date/published_at/publishedAt, metaDescription/
// meta_description); UnmarshalJSON resolves them so the rest of the gateway
// only ever sees the canonical names.
type BlogPost struct {
	ID              string    `json:"id"`
	Slug            string    `json:"slug"`
	Title           string    `json:"title"`
	Excerpt         string    `json:"excerpt"`
	Content         string    `json:"content"`
	Category        string    `json:"category"`
	AuthorName      string    `json:"author_name"`
	Author          AuthorRef `json:"author,omitempty"`
	FeaturedImage   string    `json:"featured_image"`
	Published       bool      `json:"published"`
	PublishedAt     string    `json:"published_at"`
	CreatedAt       string    `json:"created_at"`
	UpdatedAt       string    `json:"updated_at"`
	Tags            []string  `json:"tags"`
	MetaDescription string    `json:"meta_description,omitempty"`
}

// blogPostAliases mirrors BlogPost with every legacy alias present.
// Pointer fields distinguish "absent" from "empty".
type blogPostAliases struct {
	ID              string    `json:"id"`
	Slug            string    `json:"slug"`
	Title           string    `json:"title"`
	Excerpt         string    `json:"excerpt"`
	Content         string    `json:"content"`
	Category        string    `json:"category"`
	AuthorName      string    `json:"author_name"`
	Author          AuthorRef `json:"author"`
	FeaturedImage   *string   `json:"featured_image"`
	Image           *string   `json:"image"`
	Published       bool      `json:"published"`
	PublishedAt     *string   `json:"published_at"`
	PublishedAtAlt  *string   `json:"publishedAt"`
	Date            *string   `json:"date"`
	CreatedAt       string    `json:"created_at"`
	UpdatedAt       string    `json:"updated_at"`
	Tags            []string  `json:"tags"`
	MetaDescription *string   `json:"meta_description"`
	MetaDescAlt     *string   `json:"metaDescription"`
}

// UnmarshalJSON resolves field aliases with a fixed precedence: the new
// name wins, the legacy name fills in when the new one is absent. Absence
// of one alias never means absence of the field.
func (p *BlogPost) UnmarshalJSON(data []byte) error {
	var aux blogPostAliases
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	*p = BlogPost{
		ID:              aux.ID,
		Slug:            aux.Slug,
		Title:           aux.Title,
		Excerpt:         aux.Excerpt,
		Content:         aux.Content,
		Category:        aux.Category,
		AuthorName:      aux.AuthorName,
		Author:          aux.Author,
		Published:       aux.Published,
		CreatedAt:       aux.CreatedAt,
		UpdatedAt:       aux.UpdatedAt,
		Tags:            aux.Tags,
		FeaturedImage:   firstSet(aux.FeaturedImage, aux.Image),
		PublishedAt:     firstSet(aux.PublishedAt, aux.PublishedAtAlt, aux.Date),
		MetaDescription: firstSet(aux.MetaDescription, aux.MetaDescAlt),
	}
	return nil
}

func firstSet(values ...*string) string {
	for _, v := range values {
		if v != nil && *v != "" {
			return *v
		}
	}
	return ""
}

// Normalize fills every missing field with a documented default so that
// nothing undefined propagates into rendering.
// Defaults: slug derived from title+id, category "General", author name
// resolved from the author ref (fallback "Editorial Team"), publish
// timestamp falls back to created_at, tags become an empty list.
func (p *BlogPost) Normalize() {
	if p.Slug == "" {
		p.Slug = utils.EncodeSlug(p.Title, p.ID)
	}
	if p.Category == "" {
		p.Category = "General"
	}
	name, _ := ResolveAuthorDisplay(p.Author, p.AuthorName)
	if name == "" {
		name = "Editorial Team"
	}
	p.AuthorName = name
	if p.PublishedAt == "" {
		p.PublishedAt = p.CreatedAt
	}
	if p.Tags == nil {
		p.Tags = []string{}
	}
}

// RouteToken is the browsable URL token for the post.
func (p *BlogPost) RouteToken() string {
	return utils.EncodeSlug(p.Title, p.ID)
}
