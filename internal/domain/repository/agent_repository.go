package repository

import (
	"context"

	"github.com/estate-backoffice/internal/domain"
)

type AgentRepository interface {
	List(ctx context.Context, page, pageSize int) ([]domain.Agent, int, error)
	GetByID(ctx context.Context, id int64) (*domain.Agent, error)
	Create(ctx context.Context, a *domain.Agent) error
	Update(ctx context.Context, a *domain.Agent) error
	Delete(ctx context.Context, id int64) error
}
