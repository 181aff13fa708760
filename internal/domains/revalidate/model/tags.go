package model

// Cache tag namespaces shared with the rendering tier. A tag carries no
// payload, only a monotonically increasing generation counter; bumping it
// invalidates every render cached against the previous generation.
const (
	TagBlogs      = "blogs"
	TagBlogList   = "blog-list"
	TagBlogDetail = "blog-detail"

	// BlogIndexPath is the path-cache entry for the blog index route.
	BlogIndexPath = "/blog"
)

func BlogTag(id string) string { return "blog-" + id }

func BlogSlugTag(slug string) string { return "blog-slug-" + slug }

func PathTag(path string) string { return "path:" + path }

// InvalidateBlogRequest is the body of POST /api/cache/invalidate-blog.
type InvalidateBlogRequest struct {
	BlogID string `json:"blogId"`
	Slug   string `json:"slug,omitempty"`
}
