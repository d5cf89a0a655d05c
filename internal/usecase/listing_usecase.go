package usecase

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"github.com/estate-backoffice/internal/domain"
	"github.com/estate-backoffice/internal/domain/repository"
	"github.com/estate-backoffice/internal/pkg/errors"
	"github.com/estate-backoffice/internal/pkg/utils"
	"github.com/estate-backoffice/internal/usecase/dto"
)

// ListingUseCase covers the direct CRUD surface for properties, projects and
// offices, plus the publish toggle that feeds the search index stream.
type ListingUseCase struct {
	listingRepo  repository.ListingRepository
	locationRepo repository.LocationRepository
	streamRepo   repository.StreamRepository
	logger       *zap.Logger
}

func NewListingUseCase(
	listingRepo repository.ListingRepository,
	locationRepo repository.LocationRepository,
	streamRepo repository.StreamRepository,
	logger *zap.Logger,
) *ListingUseCase {
	return &ListingUseCase{
		listingRepo:  listingRepo,
		locationRepo: locationRepo,
		streamRepo:   streamRepo,
		logger:       logger,
	}
}

func (uc *ListingUseCase) List(ctx context.Context, kind domain.ListingKind, p *dto.Pagination) (*dto.ListingListResponse, error) {
	if !kind.Valid() {
		return nil, errors.ErrInvalidRequest.WithDetails(map[string]interface{}{"kind": string(kind)})
	}
	page, pageSize := normalizePage(p)
	items, total, err := uc.listingRepo.List(ctx, kind, page, pageSize)
	if err != nil {
		return nil, err
	}
	return &dto.ListingListResponse{Items: items, Total: total}, nil
}

func (uc *ListingUseCase) Get(ctx context.Context, kind domain.ListingKind, id int64) (*domain.Listing, error) {
	if !kind.Valid() {
		return nil, errors.ErrInvalidRequest.WithDetails(map[string]interface{}{"kind": string(kind)})
	}
	return uc.listingRepo.GetByID(ctx, kind, id)
}

func (uc *ListingUseCase) Create(ctx context.Context, kind domain.ListingKind, req dto.ListingRequest) (*domain.Listing, error) {
	if !kind.Valid() {
		return nil, errors.ErrInvalidRequest.WithDetails(map[string]interface{}{"kind": string(kind)})
	}

	l := listingFromRequest(kind, req)
	if err := uc.resolveLocationNames(ctx, &l.Location); err != nil {
		return nil, err
	}
	if err := uc.listingRepo.Save(ctx, l); err != nil {
		return nil, err
	}
	return l, nil
}

func (uc *ListingUseCase) Update(ctx context.Context, kind domain.ListingKind, id int64, req dto.ListingRequest) (*domain.Listing, error) {
	current, err := uc.Get(ctx, kind, id)
	if err != nil {
		return nil, err
	}

	l := listingFromRequest(kind, req)
	l.ID = id
	l.Published = current.Published
	if err := uc.resolveLocationNames(ctx, &l.Location); err != nil {
		return nil, err
	}
	if err := uc.listingRepo.Update(ctx, l); err != nil {
		return nil, err
	}

	// A published listing stays findable with its new attributes.
	if current.Published {
		uc.publishEvent(ctx, kind, id, domain.IndexUpsert)
	}
	return l, nil
}

func (uc *ListingUseCase) Delete(ctx context.Context, kind domain.ListingKind, id int64) error {
	current, err := uc.Get(ctx, kind, id)
	if err != nil {
		return err
	}
	if err := uc.listingRepo.Delete(ctx, kind, id); err != nil {
		return err
	}
	if current.Published {
		uc.publishEvent(ctx, kind, id, domain.IndexDelete)
	}
	return nil
}

// Publish flips the listing visible and queues an index upsert.
func (uc *ListingUseCase) Publish(ctx context.Context, kind domain.ListingKind, id int64) error {
	if err := uc.listingRepo.SetPublished(ctx, kind, id, true); err != nil {
		return err
	}
	uc.publishEvent(ctx, kind, id, domain.IndexUpsert)
	return nil
}

// Unpublish hides the listing and queues an index delete.
func (uc *ListingUseCase) Unpublish(ctx context.Context, kind domain.ListingKind, id int64) error {
	if err := uc.listingRepo.SetPublished(ctx, kind, id, false); err != nil {
		return err
	}
	uc.publishEvent(ctx, kind, id, domain.IndexDelete)
	return nil
}

// publishEvent appends to the index stream. The database write already
// succeeded, so a stream failure is logged and swallowed rather than rolled
// back; the worker reconciles from the database on the next event anyway.
func (uc *ListingUseCase) publishEvent(ctx context.Context, kind domain.ListingKind, id int64, action domain.IndexAction) {
	event := domain.ListingIndexEvent{Kind: kind, ID: id, Action: action}
	data, err := json.Marshal(event)
	if err != nil {
		uc.logger.Error("Failed to marshal index event", zap.Error(err))
		return
	}
	if err := uc.streamRepo.Publish(ctx, domain.StreamListingIndex, data); err != nil {
		uc.logger.Error("Failed to publish index event",
			zap.String("kind", string(kind)),
			zap.Int64("listing_id", id),
			zap.String("action", string(action)),
			zap.Error(err))
	}
}

// resolveLocationNames fills the denormalized name columns from the
// hierarchy, validating the referenced ids along the way.
func (uc *ListingUseCase) resolveLocationNames(ctx context.Context, loc *domain.ListingLocation) error {
	country, err := uc.locationRepo.GetCountry(ctx, loc.CountryID)
	if err != nil {
		return err
	}
	loc.CountryName = country.Name

	if loc.CityID != nil {
		city, err := uc.locationRepo.GetCity(ctx, *loc.CityID)
		if err != nil {
			return err
		}
		loc.CityName = city.Name
	}
	if loc.DistrictID != nil {
		district, err := uc.locationRepo.GetDistrict(ctx, *loc.DistrictID)
		if err != nil {
			return err
		}
		loc.DistrictName = district.Name
	}
	if loc.NeighborhoodID != nil {
		neighborhood, err := uc.locationRepo.GetNeighborhood(ctx, *loc.NeighborhoodID)
		if err != nil {
			return err
		}
		loc.NeighborhoodName = neighborhood.Name
	}
	return nil
}

func listingFromRequest(kind domain.ListingKind, req dto.ListingRequest) *domain.Listing {
	l := &domain.Listing{
		Kind:        kind,
		Title:       req.Title,
		Slug:        utils.Slugify(req.Title),
		Description: req.Description,
		Category:    req.Category,
		Price:       req.Price,
		Currency:    req.Currency,
		AgentID:     req.AgentID,
		Location: domain.ListingLocation{
			CountryID:      req.Location.CountryID,
			CityID:         req.Location.CityID,
			DistrictID:     req.Location.DistrictID,
			NeighborhoodID: req.Location.NeighborhoodID,
			StreetAddress:  req.Location.StreetAddress,
			Zip:            req.Location.Zip,
			Lat:            req.Location.Lat,
			Lng:            req.Location.Lng,
		},
	}

	for i, img := range req.Images {
		l.Images = append(l.Images, domain.ListingImage{
			Path:      img.Path,
			FullURL:   img.FullURL,
			LargeURL:  img.LargeURL,
			ThumbURL:  img.ThumbURL,
			SortOrder: i,
		})
	}
	for _, u := range req.UnitSizes {
		l.UnitSizes = append(l.UnitSizes, domain.UnitSize{Name: u.Name, MinM2: u.MinM2, MaxM2: u.MaxM2})
	}
	l.Features = append(l.Features, req.Features...)
	for _, d := range req.Descriptors {
		l.Descriptors = append(l.Descriptors, domain.Descriptor{ID: d.ID})
	}
	return l
}
