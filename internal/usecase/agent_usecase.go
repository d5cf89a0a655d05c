package usecase

import (
	"context"

	"go.uber.org/zap"

	"github.com/estate-backoffice/internal/domain"
	"github.com/estate-backoffice/internal/domain/repository"
	"github.com/estate-backoffice/internal/usecase/dto"
)

type AgentUseCase struct {
	agentRepo repository.AgentRepository
	logger    *zap.Logger
}

func NewAgentUseCase(agentRepo repository.AgentRepository, logger *zap.Logger) *AgentUseCase {
	return &AgentUseCase{agentRepo: agentRepo, logger: logger}
}

func (uc *AgentUseCase) List(ctx context.Context, p *dto.Pagination) (*dto.AgentListResponse, error) {
	page, pageSize := normalizePage(p)
	items, total, err := uc.agentRepo.List(ctx, page, pageSize)
	if err != nil {
		return nil, err
	}
	return &dto.AgentListResponse{Items: items, Total: total}, nil
}

func (uc *AgentUseCase) Get(ctx context.Context, id int64) (*domain.Agent, error) {
	return uc.agentRepo.GetByID(ctx, id)
}

func (uc *AgentUseCase) Create(ctx context.Context, req dto.AgentRequest) (*domain.Agent, error) {
	a := &domain.Agent{
		Name:     req.Name,
		Phone:    req.Phone,
		Email:    req.Email,
		PhotoURL: req.PhotoURL,
		OfficeID: req.OfficeID,
	}
	if err := uc.agentRepo.Create(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (uc *AgentUseCase) Update(ctx context.Context, id int64, req dto.AgentRequest) (*domain.Agent, error) {
	a, err := uc.agentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	a.Name = req.Name
	a.Phone = req.Phone
	a.Email = req.Email
	a.PhotoURL = req.PhotoURL
	a.OfficeID = req.OfficeID
	if err := uc.agentRepo.Update(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (uc *AgentUseCase) Delete(ctx context.Context, id int64) error {
	return uc.agentRepo.Delete(ctx, id)
}
