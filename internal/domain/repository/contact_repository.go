package repository

import (
	"context"

	"github.com/estate-backoffice/internal/domain"
)

type ContactRepository interface {
	List(ctx context.Context, status *domain.LeadStatus, page, pageSize int) ([]domain.ContactLead, int, error)
	Create(ctx context.Context, lead *domain.ContactLead) error
	SetStatus(ctx context.Context, id int64, status domain.LeadStatus) error
	Delete(ctx context.Context, id int64) error
}
