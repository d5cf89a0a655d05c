package repository

import (
	"context"
	"io"
)

// StorageRepository wraps the object storage service holding image variants.
type StorageRepository interface {
	// Upload stores the object and returns its public URL.
	Upload(ctx context.Context, bucket, path string, body io.Reader, contentType string) (string, error)
	Delete(ctx context.Context, bucket, path string) error
}
