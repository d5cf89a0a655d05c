package repository

import (
	"context"

	"github.com/estate-backoffice/internal/domain"
)

type ContentRepository interface {
	List(ctx context.Context) ([]domain.ContentBlock, error)
	GetByKey(ctx context.Context, key string) (*domain.ContentBlock, error)
	Create(ctx context.Context, b *domain.ContentBlock) error
	Update(ctx context.Context, b *domain.ContentBlock) error
	Delete(ctx context.Context, id int64) error
}
