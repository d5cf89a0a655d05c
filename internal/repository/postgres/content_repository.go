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

type contentRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewContentRepository(db *DB) repository.ContentRepository {
	return &contentRepository{
		db:     db.DB,
		logger: db.logger,
	}
}

func (r *contentRepository) List(ctx context.Context) ([]domain.ContentBlock, error) {
	items := []domain.ContentBlock{}
	err := r.db.SelectContext(ctx, &items, `
		SELECT id, key, title, body, updated_at
		FROM content_blocks
		ORDER BY key`)
	if err != nil {
		r.logger.Error("Failed to list content blocks", zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	return items, nil
}

func (r *contentRepository) GetByKey(ctx context.Context, key string) (*domain.ContentBlock, error) {
	var b domain.ContentBlock
	err := r.db.GetContext(ctx, &b, `
		SELECT id, key, title, body, updated_at
		FROM content_blocks WHERE key = $1`, key)
	if err == sql.ErrNoRows {
		return nil, errors.ErrNotFound
	}
	if err != nil {
		r.logger.Error("Failed to get content block", zap.String("key", key), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	return &b, nil
}

func (r *contentRepository) Create(ctx context.Context, b *domain.ContentBlock) error {
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO content_blocks (key, title, body)
		VALUES ($1, $2, $3)
		RETURNING id, updated_at`,
		b.Key, b.Title, b.Body).
		Scan(&b.ID, &b.UpdatedAt)
	if err != nil {
		r.logger.Error("Failed to create content block", zap.String("key", b.Key), zap.Error(err))
		return translateConstraint(err)
	}
	return nil
}

func (r *contentRepository) Update(ctx context.Context, b *domain.ContentBlock) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE content_blocks
		SET key = $1, title = $2, body = $3, updated_at = now()
		WHERE id = $4`,
		b.Key, b.Title, b.Body, b.ID)
	if err != nil {
		r.logger.Error("Failed to update content block", zap.Int64("id", b.ID), zap.Error(err))
		return translateConstraint(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return errors.ErrNotFound
	}
	return nil
}

func (r *contentRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM content_blocks WHERE id = $1`, id)
	if err != nil {
		r.logger.Warn("Failed to delete content block", zap.Int64("id", id), zap.Error(err))
		return errors.ErrDatabaseError
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return errors.ErrNotFound
	}
	return nil
}
