package model

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// PresignUploadRequest asks the backend for a presigned PUT target.
type PresignUploadRequest struct {
	Slug          string `json:"slug"`
	Kind          string `json:"kind"`
	Filename      string `json:"filename"`
	ContentType   string `json:"content_type"`
	FileSize      int64  `json:"file_size,omitempty"`
	ExpirySeconds int    `json:"expiry_seconds,omitempty"`
}

func (r PresignUploadRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Slug, validation.Required.Error("slug is required")),
		validation.Field(&r.Kind, validation.Required, validation.In("featured", "content", "avatar").Error("kind must be featured, content or avatar")),
		validation.Field(&r.Filename, validation.Required.Error("filename is required")),
		validation.Field(&r.ContentType, validation.Required.Error("content_type is required")),
		validation.Field(&r.FileSize, validation.Min(0)),
		validation.Field(&r.ExpirySeconds, validation.Min(0), validation.Max(86400)),
	)
}

type PresignUploadResponse struct {
	Key       string `json:"key"`
	UploadURL string `json:"upload_url"`
	PublicURL string `json:"public_url"`
}
