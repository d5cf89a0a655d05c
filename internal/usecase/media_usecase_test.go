package usecase_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"github.com/estate-backoffice/internal/config"
	"github.com/estate-backoffice/internal/pkg/errors"
	"github.com/estate-backoffice/internal/usecase"
)

func newMediaUseCase(storageRepo *MockStorageRepository) *usecase.MediaUseCase {
	cfg := &config.StorageConfig{
		BucketFull:  "img-full",
		BucketLarge: "img-large",
		BucketThumb: "img-thumb",
	}
	return usecase.NewMediaUseCase(storageRepo, cfg, zap.NewNop())
}

func jpegVariant() usecase.ImageVariant {
	return usecase.ImageVariant{Body: strings.NewReader("fake-jpeg"), ContentType: "image/jpeg"}
}

func TestMediaUseCase_UploadFansOutVariants(t *testing.T) {
	ctx := context.Background()
	storageRepo := &MockStorageRepository{}
	uc := newMediaUseCase(storageRepo)

	var paths []string
	record := func(args mock.Arguments) {
		paths = append(paths, args.String(2))
	}
	storageRepo.On("Upload", mock.Anything, "img-full", mock.Anything, mock.Anything, "image/jpeg").
		Run(record).Return("https://cdn.example.com/img-full/x.jpg", nil)
	storageRepo.On("Upload", mock.Anything, "img-large", mock.Anything, mock.Anything, "image/jpeg").
		Run(record).Return("https://cdn.example.com/img-large/x.jpg", nil)
	storageRepo.On("Upload", mock.Anything, "img-thumb", mock.Anything, mock.Anything, "image/jpeg").
		Run(record).Return("https://cdn.example.com/img-thumb/x.jpg", nil)

	resp, err := uc.Upload(ctx, jpegVariant(), jpegVariant(), jpegVariant())
	assert.NoError(t, err)
	assert.True(t, strings.HasPrefix(resp.Path, "listings/"))
	assert.True(t, strings.HasSuffix(resp.Path, ".jpg"))

	// All three variants share one object path.
	assert.Len(t, paths, 3)
	assert.Equal(t, paths[0], paths[1])
	assert.Equal(t, paths[1], paths[2])
}

func TestMediaUseCase_PartialFailureCleansUp(t *testing.T) {
	ctx := context.Background()
	storageRepo := &MockStorageRepository{}
	uc := newMediaUseCase(storageRepo)

	storageRepo.On("Upload", mock.Anything, "img-full", mock.Anything, mock.Anything, "image/jpeg").
		Return("https://cdn.example.com/img-full/x.jpg", nil)
	storageRepo.On("Upload", mock.Anything, "img-large", mock.Anything, mock.Anything, "image/jpeg").
		Return("", errors.ErrStorageError)
	storageRepo.On("Delete", mock.Anything, "img-full", mock.Anything).Return(nil)

	_, err := uc.Upload(ctx, jpegVariant(), jpegVariant(), jpegVariant())
	assert.ErrorIs(t, err, errors.ErrStorageError)
	storageRepo.AssertCalled(t, "Delete", mock.Anything, "img-full", mock.Anything)
	storageRepo.AssertNotCalled(t, "Upload", mock.Anything, "img-thumb", mock.Anything, mock.Anything, mock.Anything)
}

func TestMediaUseCase_RejectsUnknownContentType(t *testing.T) {
	ctx := context.Background()
	storageRepo := &MockStorageRepository{}
	uc := newMediaUseCase(storageRepo)

	variant := usecase.ImageVariant{Body: strings.NewReader("%PDF"), ContentType: "application/pdf"}
	_, err := uc.Upload(ctx, variant, variant, variant)
	assert.ErrorIs(t, err, errors.ErrInvalidRequest)
	storageRepo.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestMediaUseCase_DeleteValidatesPath(t *testing.T) {
	ctx := context.Background()
	storageRepo := &MockStorageRepository{}
	uc := newMediaUseCase(storageRepo)

	assert.ErrorIs(t, uc.Delete(ctx, "../etc/passwd"), errors.ErrInvalidRequest)
	assert.ErrorIs(t, uc.Delete(ctx, "avatars/x.jpg"), errors.ErrInvalidRequest)

	storageRepo.On("Delete", mock.Anything, mock.Anything, "listings/ab/x.jpg").Return(nil)
	assert.NoError(t, uc.Delete(ctx, "listings/ab/x.jpg"))
	storageRepo.AssertNumberOfCalls(t, "Delete", 3)
}
