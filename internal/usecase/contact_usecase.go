package usecase

import (
	"context"

	"go.uber.org/zap"

	"github.com/estate-backoffice/internal/domain"
	"github.com/estate-backoffice/internal/domain/repository"
	"github.com/estate-backoffice/internal/pkg/errors"
	"github.com/estate-backoffice/internal/usecase/dto"
)

// ContactUseCase receives public contact form submissions and serves the
// admin inbox.
type ContactUseCase struct {
	contactRepo repository.ContactRepository
	logger      *zap.Logger
}

func NewContactUseCase(contactRepo repository.ContactRepository, logger *zap.Logger) *ContactUseCase {
	return &ContactUseCase{contactRepo: contactRepo, logger: logger}
}

func (uc *ContactUseCase) Submit(ctx context.Context, req dto.ContactLeadRequest) (*domain.ContactLead, error) {
	lead := &domain.ContactLead{
		Name:      req.Name,
		Email:     req.Email,
		Phone:     req.Phone,
		Message:   req.Message,
		ListingID: req.ListingID,
		Status:    domain.LeadNew,
	}
	if err := uc.contactRepo.Create(ctx, lead); err != nil {
		return nil, err
	}
	uc.logger.Info("Contact lead received",
		zap.Int64("lead_id", lead.ID),
		zap.String("email", lead.Email))
	return lead, nil
}

func (uc *ContactUseCase) List(ctx context.Context, status *domain.LeadStatus, p *dto.Pagination) (*dto.ContactLeadListResponse, error) {
	if status != nil && *status != domain.LeadNew && *status != domain.LeadResolved {
		return nil, errors.ErrInvalidRequest.WithDetails(map[string]interface{}{
			"status": string(*status),
		})
	}
	page, pageSize := normalizePage(p)
	items, total, err := uc.contactRepo.List(ctx, status, page, pageSize)
	if err != nil {
		return nil, err
	}
	return &dto.ContactLeadListResponse{Items: items, Total: total}, nil
}

func (uc *ContactUseCase) Resolve(ctx context.Context, id int64) error {
	return uc.contactRepo.SetStatus(ctx, id, domain.LeadResolved)
}

func (uc *ContactUseCase) Delete(ctx context.Context, id int64) error {
	return uc.contactRepo.Delete(ctx, id)
}
