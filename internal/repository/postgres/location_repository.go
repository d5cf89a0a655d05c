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

type locationRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

// NewLocationRepository creates the Postgres-backed location hierarchy store.
func NewLocationRepository(db *DB) repository.LocationRepository {
	return &locationRepository{
		db:     db.DB,
		logger: db.logger,
	}
}

func pageOffset(page, pageSize int) (int, int) {
	if pageSize <= 0 {
		pageSize = 20
	}
	if page <= 0 {
		page = 1
	}
	return pageSize, (page - 1) * pageSize
}

// ============================================================================
// Countries
// ============================================================================

func (r *locationRepository) ListCountries(ctx context.Context, page, pageSize int) ([]domain.Country, int, error) {
	limit, offset := pageOffset(page, pageSize)

	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM countries`); err != nil {
		r.logger.Error("Failed to count countries", zap.Error(err))
		return nil, 0, errors.ErrDatabaseError
	}

	items := []domain.Country{}
	query := `
		SELECT id, name, slug, created_at, updated_at
		FROM countries
		ORDER BY name
		LIMIT $1 OFFSET $2
	`
	if err := r.db.SelectContext(ctx, &items, query, limit, offset); err != nil {
		r.logger.Error("Failed to list countries", zap.Error(err))
		return nil, 0, errors.ErrDatabaseError
	}

	return items, total, nil
}

func (r *locationRepository) GetCountry(ctx context.Context, id int64) (*domain.Country, error) {
	var c domain.Country
	err := r.db.GetContext(ctx, &c,
		`SELECT id, name, slug, created_at, updated_at FROM countries WHERE id = $1`, id)
	if err == sql.ErrNoRows {
		return nil, errors.ErrNotFound
	}
	if err != nil {
		r.logger.Error("Failed to get country", zap.Int64("id", id), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	return &c, nil
}

func (r *locationRepository) CreateCountry(ctx context.Context, c *domain.Country) error {
	query := `
		INSERT INTO countries (name, slug)
		VALUES ($1, $2)
		RETURNING id, created_at, updated_at
	`
	err := r.db.QueryRowContext(ctx, query, c.Name, c.Slug).
		Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		r.logger.Error("Failed to create country", zap.String("name", c.Name), zap.Error(err))
		return translateConstraint(err)
	}
	return nil
}

// UpdateCountry renames the country and re-copies the denormalized name/slug
// onto every descendant level in the same transaction.
func (r *locationRepository) UpdateCountry(ctx context.Context, c *domain.Country) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		r.logger.Error("Failed to begin tx", zap.Error(err))
		return errors.ErrDatabaseError
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`UPDATE countries SET name = $1, slug = $2, updated_at = now() WHERE id = $3`,
		c.Name, c.Slug, c.ID)
	if err != nil {
		r.logger.Error("Failed to update country", zap.Int64("id", c.ID), zap.Error(err))
		return translateConstraint(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return errors.ErrNotFound
	}

	cascades := []string{
		`UPDATE cities SET country_name = $1, country_slug = $2 WHERE country_id = $3`,
		`UPDATE districts SET country_name = $1, country_slug = $2 WHERE country_id = $3`,
		`UPDATE neighborhoods SET country_name = $1, country_slug = $2 WHERE country_id = $3`,
	}
	for _, q := range cascades {
		if _, err := tx.ExecContext(ctx, q, c.Name, c.Slug, c.ID); err != nil {
			r.logger.Error("Failed to cascade country rename", zap.Int64("id", c.ID), zap.Error(err))
			return errors.ErrDatabaseError
		}
	}

	if err := tx.Commit(); err != nil {
		r.logger.Error("Failed to commit country update", zap.Error(err))
		return errors.ErrDatabaseError
	}
	return nil
}

func (r *locationRepository) DeleteCountry(ctx context.Context, id int64) error {
	return r.deleteRow(ctx, `DELETE FROM countries WHERE id = $1`, id, "country")
}

// ============================================================================
// Cities
// ============================================================================

func (r *locationRepository) ListCities(ctx context.Context, countryID *int64, page, pageSize int) ([]domain.City, int, error) {
	limit, offset := pageOffset(page, pageSize)

	where := ""
	countArgs := []interface{}{}
	listArgs := []interface{}{limit, offset}
	if countryID != nil {
		where = " WHERE country_id = $1"
		countArgs = append(countArgs, *countryID)
		listArgs = []interface{}{*countryID, limit, offset}
	}

	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM cities`+where, countArgs...); err != nil {
		r.logger.Error("Failed to count cities", zap.Error(err))
		return nil, 0, errors.ErrDatabaseError
	}

	query := `
		SELECT id, name, slug, country_id, country_name, country_slug, created_at, updated_at
		FROM cities` + where + `
		ORDER BY name
	`
	if countryID != nil {
		query += ` LIMIT $2 OFFSET $3`
	} else {
		query += ` LIMIT $1 OFFSET $2`
	}

	items := []domain.City{}
	if err := r.db.SelectContext(ctx, &items, query, listArgs...); err != nil {
		r.logger.Error("Failed to list cities", zap.Error(err))
		return nil, 0, errors.ErrDatabaseError
	}

	return items, total, nil
}

func (r *locationRepository) GetCity(ctx context.Context, id int64) (*domain.City, error) {
	var c domain.City
	err := r.db.GetContext(ctx, &c, `
		SELECT id, name, slug, country_id, country_name, country_slug, created_at, updated_at
		FROM cities WHERE id = $1`, id)
	if err == sql.ErrNoRows {
		return nil, errors.ErrNotFound
	}
	if err != nil {
		r.logger.Error("Failed to get city", zap.Int64("id", id), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	return &c, nil
}

func (r *locationRepository) GetCityBySlug(ctx context.Context, slug string) (*domain.City, error) {
	var c domain.City
	err := r.db.GetContext(ctx, &c, `
		SELECT id, name, slug, country_id, country_name, country_slug, created_at, updated_at
		FROM cities WHERE slug = $1`, slug)
	if err == sql.ErrNoRows {
		return nil, errors.ErrNotFound
	}
	if err != nil {
		r.logger.Error("Failed to get city by slug", zap.String("slug", slug), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	return &c, nil
}

func (r *locationRepository) CreateCity(ctx context.Context, c *domain.City) error {
	parent, err := r.GetCountry(ctx, c.CountryID)
	if err != nil {
		return err
	}
	c.CountryName = parent.Name
	c.CountrySlug = parent.Slug

	query := `
		INSERT INTO cities (name, slug, country_id, country_name, country_slug)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`
	err = r.db.QueryRowContext(ctx, query,
		c.Name, c.Slug, c.CountryID, c.CountryName, c.CountrySlug).
		Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		r.logger.Error("Failed to create city", zap.String("name", c.Name), zap.Error(err))
		return translateConstraint(err)
	}
	return nil
}

func (r *locationRepository) UpdateCity(ctx context.Context, c *domain.City) error {
	parent, err := r.GetCountry(ctx, c.CountryID)
	if err != nil {
		return err
	}
	c.CountryName = parent.Name
	c.CountrySlug = parent.Slug

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		r.logger.Error("Failed to begin tx", zap.Error(err))
		return errors.ErrDatabaseError
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		UPDATE cities
		SET name = $1, slug = $2, country_id = $3, country_name = $4, country_slug = $5, updated_at = now()
		WHERE id = $6`,
		c.Name, c.Slug, c.CountryID, c.CountryName, c.CountrySlug, c.ID)
	if err != nil {
		r.logger.Error("Failed to update city", zap.Int64("id", c.ID), zap.Error(err))
		return translateConstraint(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return errors.ErrNotFound
	}

	cascades := []string{
		`UPDATE districts
		 SET city_name = $1, city_slug = $2, country_id = $3, country_name = $4, country_slug = $5
		 WHERE city_id = $6`,
		`UPDATE neighborhoods
		 SET city_name = $1, city_slug = $2, country_id = $3, country_name = $4, country_slug = $5
		 WHERE city_id = $6`,
	}
	for _, q := range cascades {
		if _, err := tx.ExecContext(ctx, q,
			c.Name, c.Slug, c.CountryID, c.CountryName, c.CountrySlug, c.ID); err != nil {
			r.logger.Error("Failed to cascade city rename", zap.Int64("id", c.ID), zap.Error(err))
			return errors.ErrDatabaseError
		}
	}

	if err := tx.Commit(); err != nil {
		r.logger.Error("Failed to commit city update", zap.Error(err))
		return errors.ErrDatabaseError
	}
	return nil
}

func (r *locationRepository) DeleteCity(ctx context.Context, id int64) error {
	return r.deleteRow(ctx, `DELETE FROM cities WHERE id = $1`, id, "city")
}

// ============================================================================
// Districts
// ============================================================================

func (r *locationRepository) ListDistricts(ctx context.Context, cityID *int64, page, pageSize int) ([]domain.District, int, error) {
	if cityID != nil {
		return r.listDistrictsWhere(ctx, `city_id = $1`, *cityID, page, pageSize)
	}
	return r.listDistrictsWhere(ctx, "", nil, page, pageSize)
}

func (r *locationRepository) ListDistrictsByCitySlug(ctx context.Context, citySlug string, page, pageSize int) ([]domain.District, int, error) {
	return r.listDistrictsWhere(ctx, `city_slug = $1`, citySlug, page, pageSize)
}

func (r *locationRepository) listDistrictsWhere(ctx context.Context, cond string, arg interface{}, page, pageSize int) ([]domain.District, int, error) {
	limit, offset := pageOffset(page, pageSize)

	where := ""
	countArgs := []interface{}{}
	listArgs := []interface{}{limit, offset}
	tail := ` LIMIT $1 OFFSET $2`
	if cond != "" {
		where = " WHERE " + cond
		countArgs = append(countArgs, arg)
		listArgs = []interface{}{arg, limit, offset}
		tail = ` LIMIT $2 OFFSET $3`
	}

	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM districts`+where, countArgs...); err != nil {
		r.logger.Error("Failed to count districts", zap.Error(err))
		return nil, 0, errors.ErrDatabaseError
	}

	query := `
		SELECT id, name, slug, city_id, city_name, city_slug,
		       country_id, country_name, country_slug, created_at, updated_at
		FROM districts` + where + `
		ORDER BY name` + tail

	items := []domain.District{}
	if err := r.db.SelectContext(ctx, &items, query, listArgs...); err != nil {
		r.logger.Error("Failed to list districts", zap.Error(err))
		return nil, 0, errors.ErrDatabaseError
	}

	return items, total, nil
}

func (r *locationRepository) GetDistrict(ctx context.Context, id int64) (*domain.District, error) {
	var d domain.District
	err := r.db.GetContext(ctx, &d, `
		SELECT id, name, slug, city_id, city_name, city_slug,
		       country_id, country_name, country_slug, created_at, updated_at
		FROM districts WHERE id = $1`, id)
	if err == sql.ErrNoRows {
		return nil, errors.ErrNotFound
	}
	if err != nil {
		r.logger.Error("Failed to get district", zap.Int64("id", id), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	return &d, nil
}

func (r *locationRepository) CreateDistrict(ctx context.Context, d *domain.District) error {
	parent, err := r.GetCity(ctx, d.CityID)
	if err != nil {
		return err
	}
	d.CityName = parent.Name
	d.CitySlug = parent.Slug
	d.CountryID = parent.CountryID
	d.CountryName = parent.CountryName
	d.CountrySlug = parent.CountrySlug

	query := `
		INSERT INTO districts (name, slug, city_id, city_name, city_slug, country_id, country_name, country_slug)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at
	`
	err = r.db.QueryRowContext(ctx, query,
		d.Name, d.Slug, d.CityID, d.CityName, d.CitySlug,
		d.CountryID, d.CountryName, d.CountrySlug).
		Scan(&d.ID, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		r.logger.Error("Failed to create district", zap.String("name", d.Name), zap.Error(err))
		return translateConstraint(err)
	}
	return nil
}

func (r *locationRepository) UpdateDistrict(ctx context.Context, d *domain.District) error {
	parent, err := r.GetCity(ctx, d.CityID)
	if err != nil {
		return err
	}
	d.CityName = parent.Name
	d.CitySlug = parent.Slug
	d.CountryID = parent.CountryID
	d.CountryName = parent.CountryName
	d.CountrySlug = parent.CountrySlug

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		r.logger.Error("Failed to begin tx", zap.Error(err))
		return errors.ErrDatabaseError
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		UPDATE districts
		SET name = $1, slug = $2, city_id = $3, city_name = $4, city_slug = $5,
		    country_id = $6, country_name = $7, country_slug = $8, updated_at = now()
		WHERE id = $9`,
		d.Name, d.Slug, d.CityID, d.CityName, d.CitySlug,
		d.CountryID, d.CountryName, d.CountrySlug, d.ID)
	if err != nil {
		r.logger.Error("Failed to update district", zap.Int64("id", d.ID), zap.Error(err))
		return translateConstraint(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return errors.ErrNotFound
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE neighborhoods
		SET district_name = $1, district_slug = $2, city_id = $3, city_name = $4, city_slug = $5,
		    country_id = $6, country_name = $7, country_slug = $8
		WHERE district_id = $9`,
		d.Name, d.Slug, d.CityID, d.CityName, d.CitySlug,
		d.CountryID, d.CountryName, d.CountrySlug, d.ID)
	if err != nil {
		r.logger.Error("Failed to cascade district rename", zap.Int64("id", d.ID), zap.Error(err))
		return errors.ErrDatabaseError
	}

	if err := tx.Commit(); err != nil {
		r.logger.Error("Failed to commit district update", zap.Error(err))
		return errors.ErrDatabaseError
	}
	return nil
}

func (r *locationRepository) DeleteDistrict(ctx context.Context, id int64) error {
	return r.deleteRow(ctx, `DELETE FROM districts WHERE id = $1`, id, "district")
}

// ============================================================================
// Neighborhoods
// ============================================================================

func (r *locationRepository) ListNeighborhoods(ctx context.Context, districtID *int64, page, pageSize int) ([]domain.Neighborhood, int, error) {
	if districtID != nil {
		return r.listNeighborhoodsWhere(ctx, `district_id = $1`, []interface{}{*districtID}, page, pageSize)
	}
	return r.listNeighborhoodsWhere(ctx, "", nil, page, pageSize)
}

func (r *locationRepository) ListNeighborhoodsBySlugs(ctx context.Context, citySlug, districtSlug string, page, pageSize int) ([]domain.Neighborhood, int, error) {
	return r.listNeighborhoodsWhere(ctx, `city_slug = $1 AND district_slug = $2`,
		[]interface{}{citySlug, districtSlug}, page, pageSize)
}

func (r *locationRepository) listNeighborhoodsWhere(ctx context.Context, cond string, args []interface{}, page, pageSize int) ([]domain.Neighborhood, int, error) {
	limit, offset := pageOffset(page, pageSize)

	where := ""
	if cond != "" {
		where = " WHERE " + cond
	}

	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM neighborhoods`+where, args...); err != nil {
		r.logger.Error("Failed to count neighborhoods", zap.Error(err))
		return nil, 0, errors.ErrDatabaseError
	}

	query := `
		SELECT id, name, slug, district_id, district_name, district_slug,
		       city_id, city_name, city_slug, country_id, country_name, country_slug,
		       created_at, updated_at
		FROM neighborhoods` + where + `
		ORDER BY name`

	switch len(args) {
	case 0:
		query += ` LIMIT $1 OFFSET $2`
	case 1:
		query += ` LIMIT $2 OFFSET $3`
	default:
		query += ` LIMIT $3 OFFSET $4`
	}
	listArgs := append(append([]interface{}{}, args...), limit, offset)

	items := []domain.Neighborhood{}
	if err := r.db.SelectContext(ctx, &items, query, listArgs...); err != nil {
		r.logger.Error("Failed to list neighborhoods", zap.Error(err))
		return nil, 0, errors.ErrDatabaseError
	}

	return items, total, nil
}

func (r *locationRepository) GetNeighborhood(ctx context.Context, id int64) (*domain.Neighborhood, error) {
	var n domain.Neighborhood
	err := r.db.GetContext(ctx, &n, `
		SELECT id, name, slug, district_id, district_name, district_slug,
		       city_id, city_name, city_slug, country_id, country_name, country_slug,
		       created_at, updated_at
		FROM neighborhoods WHERE id = $1`, id)
	if err == sql.ErrNoRows {
		return nil, errors.ErrNotFound
	}
	if err != nil {
		r.logger.Error("Failed to get neighborhood", zap.Int64("id", id), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	return &n, nil
}

func (r *locationRepository) CreateNeighborhood(ctx context.Context, n *domain.Neighborhood) error {
	parent, err := r.GetDistrict(ctx, n.DistrictID)
	if err != nil {
		return err
	}
	n.DistrictName = parent.Name
	n.DistrictSlug = parent.Slug
	n.CityID = parent.CityID
	n.CityName = parent.CityName
	n.CitySlug = parent.CitySlug
	n.CountryID = parent.CountryID
	n.CountryName = parent.CountryName
	n.CountrySlug = parent.CountrySlug

	query := `
		INSERT INTO neighborhoods (name, slug, district_id, district_name, district_slug,
		                           city_id, city_name, city_slug, country_id, country_name, country_slug)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id, created_at, updated_at
	`
	err = r.db.QueryRowContext(ctx, query,
		n.Name, n.Slug, n.DistrictID, n.DistrictName, n.DistrictSlug,
		n.CityID, n.CityName, n.CitySlug, n.CountryID, n.CountryName, n.CountrySlug).
		Scan(&n.ID, &n.CreatedAt, &n.UpdatedAt)
	if err != nil {
		r.logger.Error("Failed to create neighborhood", zap.String("name", n.Name), zap.Error(err))
		return translateConstraint(err)
	}
	return nil
}

func (r *locationRepository) UpdateNeighborhood(ctx context.Context, n *domain.Neighborhood) error {
	parent, err := r.GetDistrict(ctx, n.DistrictID)
	if err != nil {
		return err
	}
	n.DistrictName = parent.Name
	n.DistrictSlug = parent.Slug
	n.CityID = parent.CityID
	n.CityName = parent.CityName
	n.CitySlug = parent.CitySlug
	n.CountryID = parent.CountryID
	n.CountryName = parent.CountryName
	n.CountrySlug = parent.CountrySlug

	res, err := r.db.ExecContext(ctx, `
		UPDATE neighborhoods
		SET name = $1, slug = $2, district_id = $3, district_name = $4, district_slug = $5,
		    city_id = $6, city_name = $7, city_slug = $8,
		    country_id = $9, country_name = $10, country_slug = $11, updated_at = now()
		WHERE id = $12`,
		n.Name, n.Slug, n.DistrictID, n.DistrictName, n.DistrictSlug,
		n.CityID, n.CityName, n.CitySlug, n.CountryID, n.CountryName, n.CountrySlug, n.ID)
	if err != nil {
		r.logger.Error("Failed to update neighborhood", zap.Int64("id", n.ID), zap.Error(err))
		return translateConstraint(err)
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		return errors.ErrNotFound
	}
	return nil
}

func (r *locationRepository) DeleteNeighborhood(ctx context.Context, id int64) error {
	return r.deleteRow(ctx, `DELETE FROM neighborhoods WHERE id = $1`, id, "neighborhood")
}

// deleteRow runs a single-row delete, translating a RESTRICT foreign key
// violation into HAS_DEPENDENTS and a missing row into NOT_FOUND.
func (r *locationRepository) deleteRow(ctx context.Context, query string, id int64, level string) error {
	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		r.logger.Warn("Failed to delete location node",
			zap.String("level", level),
			zap.Int64("id", id),
			zap.Error(err))
		return translateConstraint(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return errors.ErrNotFound
	}
	return nil
}
