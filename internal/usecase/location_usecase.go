package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/estate-backoffice/internal/domain"
	"github.com/estate-backoffice/internal/domain/repository"
	"github.com/estate-backoffice/internal/pkg/utils"
	"github.com/estate-backoffice/internal/usecase/dto"
)

const locationCachePrefix = "loc:"

// LocationUseCase serves the four-level hierarchy: admin CRUD plus the cached
// public reads used by the site's cascading selects.
type LocationUseCase struct {
	locationRepo repository.LocationRepository
	cacheRepo    repository.CacheRepository
	logger       *zap.Logger
	cacheTTL     time.Duration
}

func NewLocationUseCase(
	locationRepo repository.LocationRepository,
	cacheRepo repository.CacheRepository,
	logger *zap.Logger,
	cacheTTL time.Duration,
) *LocationUseCase {
	return &LocationUseCase{
		locationRepo: locationRepo,
		cacheRepo:    cacheRepo,
		logger:       logger,
		cacheTTL:     cacheTTL,
	}
}

func normalizePage(p *dto.Pagination) (int, int) {
	page, pageSize := 1, 50
	if p != nil {
		if p.Page > 0 {
			page = p.Page
		}
		if p.PageSize > 0 {
			pageSize = p.PageSize
		}
	}
	return page, pageSize
}

func (uc *LocationUseCase) ListCountries(ctx context.Context, p *dto.Pagination) (*dto.CountryListResponse, error) {
	page, pageSize := normalizePage(p)
	items, total, err := uc.locationRepo.ListCountries(ctx, page, pageSize)
	if err != nil {
		return nil, err
	}
	return &dto.CountryListResponse{Items: items, Total: total}, nil
}

func (uc *LocationUseCase) CreateCountry(ctx context.Context, req dto.CountryRequest) (*domain.Country, error) {
	c := &domain.Country{
		Name: req.Name,
		Slug: slugOrDerive(req.Slug, req.Name),
	}
	if err := uc.locationRepo.CreateCountry(ctx, c); err != nil {
		return nil, err
	}
	uc.invalidate(ctx)
	return c, nil
}

func (uc *LocationUseCase) UpdateCountry(ctx context.Context, id int64, req dto.CountryRequest) (*domain.Country, error) {
	c, err := uc.locationRepo.GetCountry(ctx, id)
	if err != nil {
		return nil, err
	}
	c.Name = req.Name
	c.Slug = slugOrDerive(req.Slug, req.Name)
	if err := uc.locationRepo.UpdateCountry(ctx, c); err != nil {
		return nil, err
	}
	uc.invalidate(ctx)
	return c, nil
}

func (uc *LocationUseCase) DeleteCountry(ctx context.Context, id int64) error {
	if err := uc.locationRepo.DeleteCountry(ctx, id); err != nil {
		return err
	}
	uc.invalidate(ctx)
	return nil
}

func (uc *LocationUseCase) ListCities(ctx context.Context, countryID *int64, p *dto.Pagination) (*dto.CityListResponse, error) {
	page, pageSize := normalizePage(p)
	items, total, err := uc.locationRepo.ListCities(ctx, countryID, page, pageSize)
	if err != nil {
		return nil, err
	}
	return &dto.CityListResponse{Items: items, Total: total}, nil
}

func (uc *LocationUseCase) CreateCity(ctx context.Context, req dto.CityRequest) (*domain.City, error) {
	c := &domain.City{
		Name:      req.Name,
		Slug:      slugOrDerive(req.Slug, req.Name),
		CountryID: req.CountryID,
	}
	if err := uc.locationRepo.CreateCity(ctx, c); err != nil {
		return nil, err
	}
	uc.invalidate(ctx)
	return c, nil
}

func (uc *LocationUseCase) UpdateCity(ctx context.Context, id int64, req dto.CityRequest) (*domain.City, error) {
	c, err := uc.locationRepo.GetCity(ctx, id)
	if err != nil {
		return nil, err
	}
	c.Name = req.Name
	c.Slug = slugOrDerive(req.Slug, req.Name)
	c.CountryID = req.CountryID
	if err := uc.locationRepo.UpdateCity(ctx, c); err != nil {
		return nil, err
	}
	uc.invalidate(ctx)
	return c, nil
}

func (uc *LocationUseCase) DeleteCity(ctx context.Context, id int64) error {
	if err := uc.locationRepo.DeleteCity(ctx, id); err != nil {
		return err
	}
	uc.invalidate(ctx)
	return nil
}

func (uc *LocationUseCase) ListDistricts(ctx context.Context, cityID *int64, p *dto.Pagination) (*dto.DistrictListResponse, error) {
	page, pageSize := normalizePage(p)
	items, total, err := uc.locationRepo.ListDistricts(ctx, cityID, page, pageSize)
	if err != nil {
		return nil, err
	}
	return &dto.DistrictListResponse{Items: items, Total: total}, nil
}

func (uc *LocationUseCase) CreateDistrict(ctx context.Context, req dto.DistrictRequest) (*domain.District, error) {
	d := &domain.District{
		Name:   req.Name,
		Slug:   slugOrDerive(req.Slug, req.Name),
		CityID: req.CityID,
	}
	if err := uc.locationRepo.CreateDistrict(ctx, d); err != nil {
		return nil, err
	}
	uc.invalidate(ctx)
	return d, nil
}

func (uc *LocationUseCase) UpdateDistrict(ctx context.Context, id int64, req dto.DistrictRequest) (*domain.District, error) {
	d, err := uc.locationRepo.GetDistrict(ctx, id)
	if err != nil {
		return nil, err
	}
	d.Name = req.Name
	d.Slug = slugOrDerive(req.Slug, req.Name)
	d.CityID = req.CityID
	if err := uc.locationRepo.UpdateDistrict(ctx, d); err != nil {
		return nil, err
	}
	uc.invalidate(ctx)
	return d, nil
}

func (uc *LocationUseCase) DeleteDistrict(ctx context.Context, id int64) error {
	if err := uc.locationRepo.DeleteDistrict(ctx, id); err != nil {
		return err
	}
	uc.invalidate(ctx)
	return nil
}

func (uc *LocationUseCase) ListNeighborhoods(ctx context.Context, districtID *int64, p *dto.Pagination) (*dto.NeighborhoodListResponse, error) {
	page, pageSize := normalizePage(p)
	items, total, err := uc.locationRepo.ListNeighborhoods(ctx, districtID, page, pageSize)
	if err != nil {
		return nil, err
	}
	return &dto.NeighborhoodListResponse{Items: items, Total: total}, nil
}

func (uc *LocationUseCase) CreateNeighborhood(ctx context.Context, req dto.NeighborhoodRequest) (*domain.Neighborhood, error) {
	n := &domain.Neighborhood{
		Name:       req.Name,
		Slug:       slugOrDerive(req.Slug, req.Name),
		DistrictID: req.DistrictID,
	}
	if err := uc.locationRepo.CreateNeighborhood(ctx, n); err != nil {
		return nil, err
	}
	uc.invalidate(ctx)
	return n, nil
}

func (uc *LocationUseCase) UpdateNeighborhood(ctx context.Context, id int64, req dto.NeighborhoodRequest) (*domain.Neighborhood, error) {
	n, err := uc.locationRepo.GetNeighborhood(ctx, id)
	if err != nil {
		return nil, err
	}
	n.Name = req.Name
	n.Slug = slugOrDerive(req.Slug, req.Name)
	n.DistrictID = req.DistrictID
	if err := uc.locationRepo.UpdateNeighborhood(ctx, n); err != nil {
		return nil, err
	}
	uc.invalidate(ctx)
	return n, nil
}

func (uc *LocationUseCase) DeleteNeighborhood(ctx context.Context, id int64) error {
	if err := uc.locationRepo.DeleteNeighborhood(ctx, id); err != nil {
		return err
	}
	uc.invalidate(ctx)
	return nil
}

// GetDistrictsByCitySlug is the public cascade read behind the city select.
// Results are cached per city slug and page.
func (uc *LocationUseCase) GetDistrictsByCitySlug(ctx context.Context, citySlug string, p *dto.Pagination) (*dto.DistrictListResponse, error) {
	page, pageSize := normalizePage(p)
	cacheKey := fmt.Sprintf("%sdistricts:%s:%d:%d", locationCachePrefix, citySlug, page, pageSize)

	if cached, err := uc.cacheRepo.Get(ctx, cacheKey); err == nil && cached != nil {
		var resp dto.DistrictListResponse
		if err := json.Unmarshal(cached, &resp); err == nil {
			return &resp, nil
		}
	}

	items, total, err := uc.locationRepo.ListDistrictsByCitySlug(ctx, citySlug, page, pageSize)
	if err != nil {
		return nil, err
	}

	resp := &dto.DistrictListResponse{Items: items, Total: total}
	if data, err := json.Marshal(resp); err == nil {
		if err := uc.cacheRepo.Set(ctx, cacheKey, data, uc.cacheTTL); err != nil {
			uc.logger.Warn("Failed to cache district list", zap.Error(err))
		}
	}
	return resp, nil
}

// GetNeighborhoodsBySlugs is the public cascade read behind the district
// select, addressed by city and district slug.
func (uc *LocationUseCase) GetNeighborhoodsBySlugs(ctx context.Context, citySlug, districtSlug string, p *dto.Pagination) (*dto.NeighborhoodListResponse, error) {
	page, pageSize := normalizePage(p)
	cacheKey := fmt.Sprintf("%sneighborhoods:%s:%s:%d:%d", locationCachePrefix, citySlug, districtSlug, page, pageSize)

	if cached, err := uc.cacheRepo.Get(ctx, cacheKey); err == nil && cached != nil {
		var resp dto.NeighborhoodListResponse
		if err := json.Unmarshal(cached, &resp); err == nil {
			return &resp, nil
		}
	}

	items, total, err := uc.locationRepo.ListNeighborhoodsBySlugs(ctx, citySlug, districtSlug, page, pageSize)
	if err != nil {
		return nil, err
	}

	resp := &dto.NeighborhoodListResponse{Items: items, Total: total}
	if data, err := json.Marshal(resp); err == nil {
		if err := uc.cacheRepo.Set(ctx, cacheKey, data, uc.cacheTTL); err != nil {
			uc.logger.Warn("Failed to cache neighborhood list", zap.Error(err))
		}
	}
	return resp, nil
}

// invalidate drops every cached public read. Writes to any level are rare
// compared to reads, so a full prefix flush is simpler than tracking which
// slugs a rename touched through the denormalized copies.
func (uc *LocationUseCase) invalidate(ctx context.Context) {
	if err := uc.cacheRepo.DeleteByPrefix(ctx, locationCachePrefix); err != nil {
		uc.logger.Warn("Failed to invalidate location cache", zap.Error(err))
	}
}

func slugOrDerive(slug, name string) string {
	if slug != "" {
		return utils.Slugify(slug)
	}
	return utils.Slugify(name)
}
