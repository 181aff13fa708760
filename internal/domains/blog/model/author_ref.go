package model

import (
	"bytes"
	"encoding/json"
)

// BlogAuthor is owned by the remote backend; the gateway only references
// ids, it never mints one.
type BlogAuthor struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email,omitempty"`
	Bio    string `json:"bio,omitempty"`
	Avatar string `json:"avatar,omitempty"`
	URL    string `json:"url,omitempty"`
}

// AuthorRef is a tagged variant over the backend's polymorphic author
// field: either a bare legacy name string or an embedded author object.
// Exactly one of Name/Embedded is set; the zero value means "no author".
type AuthorRef struct {
	Name     string
	Embedded *BlogAuthor
}

func (r AuthorRef) IsZero() bool {
	return r.Name == "" && r.Embedded == nil
}

func (r *AuthorRef) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*r = AuthorRef{}
		return nil
	}

	if trimmed[0] == '"' {
		var name string
		if err := json.Unmarshal(trimmed, &name); err != nil {
			return err
		}
		*r = AuthorRef{Name: name}
		return nil
	}

	var author BlogAuthor
	if err := json.Unmarshal(trimmed, &author); err != nil {
		return err
	}
	*r = AuthorRef{Embedded: &author}
	return nil
}

func (r AuthorRef) MarshalJSON() ([]byte, error) {
	if r.Embedded != nil {
		return json.Marshal(r.Embedded)
	}
	if r.Name != "" {
		return json.Marshal(r.Name)
	}
	return []byte("null"), nil
}

// ResolveAuthorDisplay collapses the variant into what rendering needs.
// Single resolver so the string-vs-object check never leaks to call sites.
func ResolveAuthorDisplay(ref AuthorRef, fallbackName string) (name, avatar string) {
	switch {
	case ref.Embedded != nil:
		name = ref.Embedded.Name
		avatar = ref.Embedded.Avatar
	case ref.Name != "":
		name = ref.Name
	}
	if name == "" {
		name = fallbackName
	}
	return name, avatar
}
