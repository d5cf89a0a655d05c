package usecase

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/estate-backoffice/internal/config"
	"github.com/estate-backoffice/internal/domain/repository"
	"github.com/estate-backoffice/internal/pkg/errors"
	"github.com/estate-backoffice/internal/usecase/dto"
)

// MediaUseCase stores the three pre-sized variants of a listing image under
// one object path across three buckets. Resizing happens client-side; the
// backend only fans the variants out.
type MediaUseCase struct {
	storageRepo repository.StorageRepository
	cfg         *config.StorageConfig
	logger      *zap.Logger
}

func NewMediaUseCase(storageRepo repository.StorageRepository, cfg *config.StorageConfig, logger *zap.Logger) *MediaUseCase {
	return &MediaUseCase{
		storageRepo: storageRepo,
		cfg:         cfg,
		logger:      logger,
	}
}

// ImageVariant is one of the three sizes uploaded together.
type ImageVariant struct {
	Body        io.Reader
	ContentType string
}

var allowedImageTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

// Upload stores full, large and thumb under a generated path and returns the
// three public URLs. The shared path is what identifies the image across
// listing edits.
func (uc *MediaUseCase) Upload(ctx context.Context, full, large, thumb ImageVariant) (*dto.MediaUploadResponse, error) {
	ext, ok := allowedImageTypes[full.ContentType]
	if !ok {
		return nil, errors.ErrInvalidRequest.WithDetails(map[string]interface{}{
			"content_type": full.ContentType,
		})
	}

	id := uuid.New().String()
	path := fmt.Sprintf("listings/%s/%s%s", id[:2], id, ext)

	fullURL, err := uc.storageRepo.Upload(ctx, uc.cfg.BucketFull, path, full.Body, full.ContentType)
	if err != nil {
		return nil, err
	}
	largeURL, err := uc.storageRepo.Upload(ctx, uc.cfg.BucketLarge, path, large.Body, large.ContentType)
	if err != nil {
		uc.cleanup(ctx, path, uc.cfg.BucketFull)
		return nil, err
	}
	thumbURL, err := uc.storageRepo.Upload(ctx, uc.cfg.BucketThumb, path, thumb.Body, thumb.ContentType)
	if err != nil {
		uc.cleanup(ctx, path, uc.cfg.BucketFull, uc.cfg.BucketLarge)
		return nil, err
	}

	return &dto.MediaUploadResponse{
		Path:     path,
		FullURL:  fullURL,
		LargeURL: largeURL,
		ThumbURL: thumbURL,
	}, nil
}

// Delete removes all variants of one image.
func (uc *MediaUseCase) Delete(ctx context.Context, path string) error {
	if !validObjectPath(path) {
		return errors.ErrInvalidRequest.WithDetails(map[string]interface{}{"path": path})
	}

	var firstErr error
	for _, bucket := range []string{uc.cfg.BucketFull, uc.cfg.BucketLarge, uc.cfg.BucketThumb} {
		if err := uc.storageRepo.Delete(ctx, bucket, path); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// cleanup best-effort removes already written variants after a partial
// failure so no orphaned objects accumulate.
func (uc *MediaUseCase) cleanup(ctx context.Context, path string, buckets ...string) {
	for _, bucket := range buckets {
		if err := uc.storageRepo.Delete(ctx, bucket, path); err != nil {
			uc.logger.Warn("Failed to clean up partial upload",
				zap.String("bucket", bucket),
				zap.String("path", path),
				zap.Error(err))
		}
	}
}

func validObjectPath(path string) bool {
	if path == "" || strings.Contains(path, "..") {
		return false
	}
	return strings.HasPrefix(filepath.ToSlash(path), "listings/")
}
