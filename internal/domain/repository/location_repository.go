package repository

import (
	"context"

	"github.com/estate-backoffice/internal/domain"
)

// LocationRepository stores the four-level geographic hierarchy. Every child
// row carries a denormalized copy of its ancestors' names and slugs; the
// repository keeps those copies in sync transactionally on update.
type LocationRepository interface {
	ListCountries(ctx context.Context, page, pageSize int) ([]domain.Country, int, error)
	GetCountry(ctx context.Context, id int64) (*domain.Country, error)
	CreateCountry(ctx context.Context, c *domain.Country) error
	UpdateCountry(ctx context.Context, c *domain.Country) error
	DeleteCountry(ctx context.Context, id int64) error

	ListCities(ctx context.Context, countryID *int64, page, pageSize int) ([]domain.City, int, error)
	GetCity(ctx context.Context, id int64) (*domain.City, error)
	GetCityBySlug(ctx context.Context, slug string) (*domain.City, error)
	CreateCity(ctx context.Context, c *domain.City) error
	UpdateCity(ctx context.Context, c *domain.City) error
	DeleteCity(ctx context.Context, id int64) error

	ListDistricts(ctx context.Context, cityID *int64, page, pageSize int) ([]domain.District, int, error)
	ListDistrictsByCitySlug(ctx context.Context, citySlug string, page, pageSize int) ([]domain.District, int, error)
	GetDistrict(ctx context.Context, id int64) (*domain.District, error)
	CreateDistrict(ctx context.Context, d *domain.District) error
	UpdateDistrict(ctx context.Context, d *domain.District) error
	DeleteDistrict(ctx context.Context, id int64) error

	ListNeighborhoods(ctx context.Context, districtID *int64, page, pageSize int) ([]domain.Neighborhood, int, error)
	ListNeighborhoodsBySlugs(ctx context.Context, citySlug, districtSlug string, page, pageSize int) ([]domain.Neighborhood, int, error)
	GetNeighborhood(ctx context.Context, id int64) (*domain.Neighborhood, error)
	CreateNeighborhood(ctx context.Context, n *domain.Neighborhood) error
	UpdateNeighborhood(ctx context.Context, n *domain.Neighborhood) error
	DeleteNeighborhood(ctx context.Context, id int64) error
}
