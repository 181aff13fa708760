package model

// Category is one of the small enumerated blog categories. The backend may
// return either plain strings or objects; the repository flattens both.
type Category struct {
	ID    string `json:"id,omitempty"`
	Name  string `json:"name"`
	Slug  string `json:"slug,omitempty"`
	Count int    `json:"count,omitempty"`
}

// Tag is a free-form label attached to posts.
type Tag struct {
	Name  string `json:"name"`
	Count int    `json:"count,omitempty"`
}
