package repository

import (
	"context"
	"fmt"

	"blog-gateway/internal/domains/storage/model"
	"blog-gateway/internal/infrastructure/remote"
)

type RepositoryInterface interface {
	PresignUpload(ctx context.Context, req model.PresignUploadRequest) (*model.PresignUploadResponse, error)
}

// StorageRepository proxies presign requests to the backend's storage
// service. The browser uploads directly to the returned URL; file bytes
// never pass through the gateway.
type StorageRepository struct {
	client *remote.Client
}

func NewStorageRepository(client *remote.Client) RepositoryInterface {
	return &StorageRepository{client: client}
}

func (r *StorageRepository) PresignUpload(ctx context.Context, req model.PresignUploadRequest) (*model.PresignUploadResponse, error) {
	var resp model.PresignUploadResponse
	if err := r.client.Post(ctx, "/storage/presign-upload", req, &resp); err != nil {
		return nil, fmt.Errorf("presign upload: %w", err)
	}
	return &resp, nil
}
