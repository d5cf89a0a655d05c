package usecase

import (
	"context"

	"go.uber.org/zap"

	"github.com/estate-backoffice/internal/domain"
	"github.com/estate-backoffice/internal/domain/repository"
	"github.com/estate-backoffice/internal/usecase/dto"
)

// ContentUseCase manages the keyed rich-text blocks of the public site.
type ContentUseCase struct {
	contentRepo repository.ContentRepository
	logger      *zap.Logger
}

func NewContentUseCase(contentRepo repository.ContentRepository, logger *zap.Logger) *ContentUseCase {
	return &ContentUseCase{contentRepo: contentRepo, logger: logger}
}

func (uc *ContentUseCase) List(ctx context.Context) ([]domain.ContentBlock, error) {
	return uc.contentRepo.List(ctx)
}

func (uc *ContentUseCase) GetByKey(ctx context.Context, key string) (*domain.ContentBlock, error) {
	return uc.contentRepo.GetByKey(ctx, key)
}

func (uc *ContentUseCase) Create(ctx context.Context, req dto.ContentBlockRequest) (*domain.ContentBlock, error) {
	b := &domain.ContentBlock{
		Key:   req.Key,
		Title: req.Title,
		Body:  req.Body,
	}
	if err := uc.contentRepo.Create(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (uc *ContentUseCase) Update(ctx context.Context, key string, req dto.ContentBlockRequest) (*domain.ContentBlock, error) {
	b, err := uc.contentRepo.GetByKey(ctx, key)
	if err != nil {
		return nil, err
	}
	b.Key = req.Key
	b.Title = req.Title
	b.Body = req.Body
	if err := uc.contentRepo.Update(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (uc *ContentUseCase) Delete(ctx context.Context, id int64) error {
	return uc.contentRepo.Delete(ctx, id)
}
