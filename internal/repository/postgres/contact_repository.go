package postgres

import (
	"context"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/estate-backoffice/internal/domain"
	"github.com/estate-backoffice/internal/domain/repository"
	"github.com/estate-backoffice/internal/pkg/errors"
)

type contactRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewContactRepository(db *DB) repository.ContactRepository {
	return &contactRepository{
		db:     db.DB,
		logger: db.logger,
	}
}

func (r *contactRepository) List(ctx context.Context, status *domain.LeadStatus, page, pageSize int) ([]domain.ContactLead, int, error) {
	limit, offset := pageOffset(page, pageSize)

	where := ""
	countArgs := []interface{}{}
	listArgs := []interface{}{limit, offset}
	tail := ` LIMIT $1 OFFSET $2`
	if status != nil {
		where = ` WHERE status = $1`
		countArgs = append(countArgs, *status)
		listArgs = []interface{}{*status, limit, offset}
		tail = ` LIMIT $2 OFFSET $3`
	}

	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM contact_leads`+where, countArgs...); err != nil {
		r.logger.Error("Failed to count leads", zap.Error(err))
		return nil, 0, errors.ErrDatabaseError
	}

	items := []domain.ContactLead{}
	query := `
		SELECT id, name, email, phone, message, listing_id, status, created_at
		FROM contact_leads` + where + `
		ORDER BY created_at DESC` + tail
	if err := r.db.SelectContext(ctx, &items, query, listArgs...); err != nil {
		r.logger.Error("Failed to list leads", zap.Error(err))
		return nil, 0, errors.ErrDatabaseError
	}

	return items, total, nil
}

func (r *contactRepository) Create(ctx context.Context, lead *domain.ContactLead) error {
	lead.Status = domain.LeadNew
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO contact_leads (name, email, phone, message, listing_id, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at`,
		lead.Name, lead.Email, lead.Phone, lead.Message, lead.ListingID, lead.Status).
		Scan(&lead.ID, &lead.CreatedAt)
	if err != nil {
		r.logger.Error("Failed to create lead", zap.Error(err))
		return translateConstraint(err)
	}
	return nil
}

func (r *contactRepository) SetStatus(ctx context.Context, id int64, status domain.LeadStatus) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE contact_leads SET status = $1 WHERE id = $2`, status, id)
	if err != nil {
		r.logger.Error("Failed to set lead status", zap.Int64("id", id), zap.Error(err))
		return errors.ErrDatabaseError
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return errors.ErrNotFound
	}
	return nil
}

func (r *contactRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM contact_leads WHERE id = $1`, id)
	if err != nil {
		r.logger.Warn("Failed to delete lead", zap.Int64("id", id), zap.Error(err))
		return errors.ErrDatabaseError
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return errors.ErrNotFound
	}
	return nil
}
