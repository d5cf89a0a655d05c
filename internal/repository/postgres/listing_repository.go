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

type listingRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

// NewListingRepository creates the Postgres-backed listing store.
func NewListingRepository(db *DB) repository.ListingRepository {
	return &listingRepository{
		db:     db.DB,
		logger: db.logger,
	}
}

const listingColumns = `
	l.id, l.kind, l.title, l.slug, l.description, l.category,
	l.price, l.currency, l.agent_id, l.published, l.created_at, l.updated_at
`

func (r *listingRepository) List(ctx context.Context, kind domain.ListingKind, page, pageSize int) ([]domain.Listing, int, error) {
	limit, offset := pageOffset(page, pageSize)

	var total int
	if err := r.db.GetContext(ctx, &total,
		`SELECT COUNT(*) FROM listings WHERE kind = $1`, kind); err != nil {
		r.logger.Error("Failed to count listings", zap.String("kind", string(kind)), zap.Error(err))
		return nil, 0, errors.ErrDatabaseError
	}

	query := `
		SELECT ` + listingColumns + `
		FROM listings l
		WHERE l.kind = $1
		ORDER BY l.updated_at DESC
		LIMIT $2 OFFSET $3
	`
	rows, err := r.db.QueryxContext(ctx, query, kind, limit, offset)
	if err != nil {
		r.logger.Error("Failed to list listings", zap.String("kind", string(kind)), zap.Error(err))
		return nil, 0, errors.ErrDatabaseError
	}
	defer rows.Close()

	items := []domain.Listing{}
	for rows.Next() {
		var l domain.Listing
		if err := rows.StructScan(&l); err != nil {
			r.logger.Error("Failed to scan listing", zap.Error(err))
			return nil, 0, errors.ErrDatabaseError
		}
		items = append(items, l)
	}
	if err := rows.Err(); err != nil {
		r.logger.Error("Error iterating listing rows", zap.Error(err))
		return nil, 0, errors.ErrDatabaseError
	}

	// List screens render "District, City" next to each row, so the location
	// is attached even in list mode. Children stay detail-only.
	for i := range items {
		loc, err := r.getLocation(ctx, items[i].ID)
		if err != nil {
			return nil, 0, err
		}
		if loc != nil {
			items[i].Location = *loc
		}
	}

	return items, total, nil
}

func (r *listingRepository) GetByID(ctx context.Context, kind domain.ListingKind, id int64) (*domain.Listing, error) {
	var l domain.Listing
	err := r.db.GetContext(ctx, &l, `
		SELECT `+listingColumns+`
		FROM listings l
		WHERE l.id = $1 AND l.kind = $2`, id, kind)
	if err == sql.ErrNoRows {
		return nil, errors.ErrNotFound
	}
	if err != nil {
		r.logger.Error("Failed to get listing", zap.Int64("id", id), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	loc, err := r.getLocation(ctx, l.ID)
	if err != nil {
		return nil, err
	}
	if loc != nil {
		l.Location = *loc
	}

	if err := r.loadChildren(ctx, &l); err != nil {
		return nil, err
	}

	return &l, nil
}

func (r *listingRepository) Save(ctx context.Context, l *domain.Listing) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		r.logger.Error("Failed to begin tx", zap.Error(err))
		return errors.ErrDatabaseError
	}
	defer tx.Rollback()

	query := `
		INSERT INTO listings (kind, title, slug, description, category, price, currency, agent_id, published)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at, updated_at
	`
	err = tx.QueryRowContext(ctx, query,
		l.Kind, l.Title, l.Slug, l.Description, l.Category,
		l.Price, l.Currency, l.AgentID, l.Published).
		Scan(&l.ID, &l.CreatedAt, &l.UpdatedAt)
	if err != nil {
		r.logger.Error("Failed to insert listing", zap.String("title", l.Title), zap.Error(err))
		return translateConstraint(err)
	}

	l.Location.ListingID = l.ID
	if err := r.insertLocation(ctx, tx, &l.Location); err != nil {
		return err
	}
	if err := r.insertImages(ctx, tx, l.ID, l.Images); err != nil {
		return err
	}
	if err := r.insertValueCollections(ctx, tx, l); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		r.logger.Error("Failed to commit listing insert", zap.Error(err))
		return errors.ErrDatabaseError
	}
	return nil
}

func (r *listingRepository) Update(ctx context.Context, l *domain.Listing) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		r.logger.Error("Failed to begin tx", zap.Error(err))
		return errors.ErrDatabaseError
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		UPDATE listings
		SET title = $1, slug = $2, description = $3, category = $4,
		    price = $5, currency = $6, agent_id = $7, updated_at = now()
		WHERE id = $8 AND kind = $9`,
		l.Title, l.Slug, l.Description, l.Category,
		l.Price, l.Currency, l.AgentID, l.ID, l.Kind)
	if err != nil {
		r.logger.Error("Failed to update listing", zap.Int64("id", l.ID), zap.Error(err))
		return translateConstraint(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return errors.ErrNotFound
	}

	l.Location.ListingID = l.ID
	if err := r.upsertLocation(ctx, tx, &l.Location); err != nil {
		return err
	}
	if err := r.diffImages(ctx, tx, l.ID, l.Images); err != nil {
		return err
	}

	// The value collections carry no per-row identity, so they are replaced
	// wholesale on every update.
	wipes := []string{
		`DELETE FROM listing_unit_sizes WHERE listing_id = $1`,
		`DELETE FROM listing_features WHERE listing_id = $1`,
		`DELETE FROM listing_descriptors WHERE listing_id = $1`,
	}
	for _, q := range wipes {
		if _, err := tx.ExecContext(ctx, q, l.ID); err != nil {
			r.logger.Error("Failed to clear listing children", zap.Int64("id", l.ID), zap.Error(err))
			return errors.ErrDatabaseError
		}
	}
	if err := r.insertValueCollections(ctx, tx, l); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		r.logger.Error("Failed to commit listing update", zap.Error(err))
		return errors.ErrDatabaseError
	}
	return nil
}

func (r *listingRepository) Delete(ctx context.Context, kind domain.ListingKind, id int64) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM listings WHERE id = $1 AND kind = $2`, id, kind)
	if err != nil {
		r.logger.Warn("Failed to delete listing", zap.Int64("id", id), zap.Error(err))
		return translateConstraint(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return errors.ErrNotFound
	}
	return nil
}

func (r *listingRepository) SetPublished(ctx context.Context, kind domain.ListingKind, id int64, published bool) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE listings SET published = $1, updated_at = now()
		WHERE id = $2 AND kind = $3`, published, id, kind)
	if err != nil {
		r.logger.Error("Failed to set published", zap.Int64("id", id), zap.Error(err))
		return errors.ErrDatabaseError
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return errors.ErrNotFound
	}
	return nil
}

// ============================================================================
// Location row
// ============================================================================

func (r *listingRepository) getLocation(ctx context.Context, listingID int64) (*domain.ListingLocation, error) {
	var loc domain.ListingLocation
	err := r.db.GetContext(ctx, &loc, `
		SELECT listing_id, country_id, country_name, city_id, city_name,
		       district_id, district_name, neighborhood_id, neighborhood_name,
		       street_address, zip, lat, lng
		FROM listing_locations WHERE listing_id = $1`, listingID)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to get listing location", zap.Int64("listing_id", listingID), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	return &loc, nil
}

func (r *listingRepository) insertLocation(ctx context.Context, tx *sqlx.Tx, loc *domain.ListingLocation) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO listing_locations (listing_id, country_id, country_name, city_id, city_name,
		                               district_id, district_name, neighborhood_id, neighborhood_name,
		                               street_address, zip, lat, lng)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		loc.ListingID, loc.CountryID, loc.CountryName, loc.CityID, loc.CityName,
		loc.DistrictID, loc.DistrictName, loc.NeighborhoodID, loc.NeighborhoodName,
		loc.StreetAddress, loc.Zip, loc.Lat, loc.Lng)
	if err != nil {
		r.logger.Error("Failed to insert listing location", zap.Int64("listing_id", loc.ListingID), zap.Error(err))
		return translateConstraint(err)
	}
	return nil
}

func (r *listingRepository) upsertLocation(ctx context.Context, tx *sqlx.Tx, loc *domain.ListingLocation) error {
	res, err := tx.ExecContext(ctx, `
		UPDATE listing_locations
		SET country_id = $1, country_name = $2, city_id = $3, city_name = $4,
		    district_id = $5, district_name = $6, neighborhood_id = $7, neighborhood_name = $8,
		    street_address = $9, zip = $10, lat = $11, lng = $12
		WHERE listing_id = $13`,
		loc.CountryID, loc.CountryName, loc.CityID, loc.CityName,
		loc.DistrictID, loc.DistrictName, loc.NeighborhoodID, loc.NeighborhoodName,
		loc.StreetAddress, loc.Zip, loc.Lat, loc.Lng, loc.ListingID)
	if err != nil {
		r.logger.Error("Failed to update listing location", zap.Int64("listing_id", loc.ListingID), zap.Error(err))
		return translateConstraint(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return r.insertLocation(ctx, tx, loc)
	}
	return nil
}

// ============================================================================
// Children
// ============================================================================

// diffImages reconciles the stored image set against the submitted one by
// object path, so image identity and ordering survive an edit.
func (r *listingRepository) diffImages(ctx context.Context, tx *sqlx.Tx, listingID int64, images []domain.ListingImage) error {
	existing := []domain.ListingImage{}
	if err := tx.SelectContext(ctx, &existing, `
		SELECT id, listing_id, path, full_url, large_url, thumb_url, sort_order
		FROM listing_images WHERE listing_id = $1`, listingID); err != nil {
		r.logger.Error("Failed to load existing images", zap.Int64("listing_id", listingID), zap.Error(err))
		return errors.ErrDatabaseError
	}

	byPath := make(map[string]domain.ListingImage, len(existing))
	for _, img := range existing {
		byPath[img.Path] = img
	}

	kept := make(map[string]bool, len(images))
	for i, img := range images {
		kept[img.Path] = true
		if old, ok := byPath[img.Path]; ok {
			_, err := tx.ExecContext(ctx, `
				UPDATE listing_images
				SET full_url = $1, large_url = $2, thumb_url = $3, sort_order = $4
				WHERE id = $5`,
				img.FullURL, img.LargeURL, img.ThumbURL, i, old.ID)
			if err != nil {
				r.logger.Error("Failed to update image", zap.String("path", img.Path), zap.Error(err))
				return errors.ErrDatabaseError
			}
			continue
		}
		if err := r.insertImage(ctx, tx, listingID, img, i); err != nil {
			return err
		}
	}

	for path, old := range byPath {
		if kept[path] {
			continue
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM listing_images WHERE id = $1`, old.ID); err != nil {
			r.logger.Error("Failed to delete image", zap.String("path", path), zap.Error(err))
			return errors.ErrDatabaseError
		}
	}

	return nil
}

func (r *listingRepository) insertImages(ctx context.Context, tx *sqlx.Tx, listingID int64, images []domain.ListingImage) error {
	for i, img := range images {
		if err := r.insertImage(ctx, tx, listingID, img, i); err != nil {
			return err
		}
	}
	return nil
}

func (r *listingRepository) insertImage(ctx context.Context, tx *sqlx.Tx, listingID int64, img domain.ListingImage, sortOrder int) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO listing_images (listing_id, path, full_url, large_url, thumb_url, sort_order)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		listingID, img.Path, img.FullURL, img.LargeURL, img.ThumbURL, sortOrder)
	if err != nil {
		r.logger.Error("Failed to insert image", zap.String("path", img.Path), zap.Error(err))
		return translateConstraint(err)
	}
	return nil
}

func (r *listingRepository) insertValueCollections(ctx context.Context, tx *sqlx.Tx, l *domain.Listing) error {
	for _, u := range l.UnitSizes {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO listing_unit_sizes (listing_id, name, min_m2, max_m2)
			VALUES ($1, $2, $3, $4)`, l.ID, u.Name, u.MinM2, u.MaxM2)
		if err != nil {
			r.logger.Error("Failed to insert unit size", zap.Int64("listing_id", l.ID), zap.Error(err))
			return errors.ErrDatabaseError
		}
	}
	for _, f := range l.Features {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO listing_features (listing_id, name)
			VALUES ($1, $2)`, l.ID, f)
		if err != nil {
			r.logger.Error("Failed to insert feature", zap.Int64("listing_id", l.ID), zap.Error(err))
			return errors.ErrDatabaseError
		}
	}
	for _, d := range l.Descriptors {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO listing_descriptors (listing_id, descriptor_id)
			VALUES ($1, $2)`, l.ID, d.ID)
		if err != nil {
			r.logger.Error("Failed to insert descriptor link", zap.Int64("listing_id", l.ID), zap.Error(err))
			return translateConstraint(err)
		}
	}
	return nil
}

func (r *listingRepository) loadChildren(ctx context.Context, l *domain.Listing) error {
	l.Images = []domain.ListingImage{}
	if err := r.db.SelectContext(ctx, &l.Images, `
		SELECT id, listing_id, path, full_url, large_url, thumb_url, sort_order
		FROM listing_images WHERE listing_id = $1
		ORDER BY sort_order`, l.ID); err != nil {
		r.logger.Error("Failed to load images", zap.Int64("listing_id", l.ID), zap.Error(err))
		return errors.ErrDatabaseError
	}

	l.UnitSizes = []domain.UnitSize{}
	if err := r.db.SelectContext(ctx, &l.UnitSizes, `
		SELECT listing_id, name, min_m2, max_m2
		FROM listing_unit_sizes WHERE listing_id = $1
		ORDER BY min_m2`, l.ID); err != nil {
		r.logger.Error("Failed to load unit sizes", zap.Int64("listing_id", l.ID), zap.Error(err))
		return errors.ErrDatabaseError
	}

	l.Features = []string{}
	if err := r.db.SelectContext(ctx, &l.Features, `
		SELECT name FROM listing_features WHERE listing_id = $1
		ORDER BY name`, l.ID); err != nil {
		r.logger.Error("Failed to load features", zap.Int64("listing_id", l.ID), zap.Error(err))
		return errors.ErrDatabaseError
	}

	l.Descriptors = []domain.Descriptor{}
	if err := r.db.SelectContext(ctx, &l.Descriptors, `
		SELECT d.id, d.name, d.category
		FROM descriptors d
		JOIN listing_descriptors ld ON ld.descriptor_id = d.id
		WHERE ld.listing_id = $1
		ORDER BY d.name`, l.ID); err != nil {
		r.logger.Error("Failed to load descriptors", zap.Int64("listing_id", l.ID), zap.Error(err))
		return errors.ErrDatabaseError
	}

	return nil
}
