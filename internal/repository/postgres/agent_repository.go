package postgres

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/estate-backoffice/internal/domain"
	"github.com/estate-backoffice/internal/domain/repository"
	"github.com/estate-backoffice/internal/pkg/errors"
)

type agentRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewAgentRepository(db *DB) repository.AgentRepository {
	return &agentRepository{
		db:     db.DB,
		logger: db.logger,
	}
}

func (r *agentRepository) List(ctx context.Context, page, pageSize int) ([]domain.Agent, int, error) {
	limit, offset := pageOffset(page, pageSize)

	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM agents`); err != nil {
		r.logger.Error("Failed to count agents", zap.Error(err))
		return nil, 0, errors.ErrDatabaseError
	}

	items := []domain.Agent{}
	err := r.db.SelectContext(ctx, &items, `
		SELECT id, name, phone, email, photo_url, office_id, created_at, updated_at
		FROM agents
		ORDER BY name
		LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		r.logger.Error("Failed to list agents", zap.Error(err))
		return nil, 0, errors.ErrDatabaseError
	}

	return items, total, nil
}

func (r *agentRepository) GetByID(ctx context.Context, id int64) (*domain.Agent, error) {
	var a domain.Agent
	err := r.db.GetContext(ctx, &a, `
		SELECT id, name, phone, email, photo_url, office_id, created_at, updated_at
		FROM agents WHERE id = $1`, id)
	if err == sql.ErrNoRows {
		return nil, errors.ErrNotFound
	}
	if err != nil {
		r.logger.Error("Failed to get agent", zap.Int64("id", id), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	return &a, nil
}

func (r *agentRepository) Create(ctx context.Context, a *domain.Agent) error {
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO agents (name, phone, email, photo_url, office_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at`,
		a.Name, a.Phone, a.Email, a.PhotoURL, a.OfficeID).
		Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		r.logger.Error("Failed to create agent", zap.String("name", a.Name), zap.Error(err))
		return translateConstraint(err)
	}
	return nil
}

func (r *agentRepository) Update(ctx context.Context, a *domain.Agent) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE agents
		SET name = $1, phone = $2, email = $3, photo_url = $4, office_id = $5, updated_at = now()
		WHERE id = $6`,
		a.Name, a.Phone, a.Email, a.PhotoURL, a.OfficeID, a.ID)
	if err != nil {
		r.logger.Error("Failed to update agent", zap.Int64("id", a.ID), zap.Error(err))
		return translateConstraint(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return errors.ErrNotFound
	}
	return nil
}

func (r *agentRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM agents WHERE id = $1`, id)
	if err != nil {
		r.logger.Warn("Failed to delete agent", zap.Int64("id", id), zap.Error(err))
		return translateConstraint(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return errors.ErrNotFound
	}
	return nil
}
