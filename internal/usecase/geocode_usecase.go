package usecase

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/estate-backoffice/internal/domain"
	"github.com/estate-backoffice/internal/domain/repository"
	"github.com/estate-backoffice/internal/pkg/errors"
	"github.com/estate-backoffice/internal/pkg/utils"
	"github.com/estate-backoffice/internal/usecase/dto"
)

// GeocodeUseCase resolves free-text locations and map points through the
// external provider, with a comma-separated fallback chain on the forward
// path.
type GeocodeUseCase struct {
	geocoderRepo repository.GeocoderRepository
	logger       *zap.Logger
	regionHint   string
}

func NewGeocodeUseCase(geocoderRepo repository.GeocoderRepository, logger *zap.Logger, regionHint string) *GeocodeUseCase {
	return &GeocodeUseCase{
		geocoderRepo: geocoderRepo,
		logger:       logger,
		regionHint:   regionHint,
	}
}

// Forward resolves "Neighborhood, District, City" style strings. When the full
// string yields nothing the most specific leading component is dropped and the
// remainder retried, so a misspelled neighborhood still lands on its district
// or city. Only when every suffix fails does the caller see ErrGeocodeNoResult.
func (uc *GeocodeUseCase) Forward(ctx context.Context, req dto.ForwardGeocodeRequest) (*dto.CoordinateResponse, error) {
	coord, err := uc.ResolveChain(ctx, req.Location)
	if err != nil {
		return nil, err
	}
	return &dto.CoordinateResponse{Lat: coord.Lat, Lng: coord.Lng}, nil
}

// ResolveChain runs the fallback chain and returns the first coordinate found.
func (uc *GeocodeUseCase) ResolveChain(ctx context.Context, location string) (*domain.Coordinate, error) {
	parts := splitLocation(location)
	if len(parts) == 0 {
		return nil, errors.ErrGeocodeNoResult
	}

	for i := 0; i < len(parts); i++ {
		candidate := strings.Join(parts[i:], ", ")
		coord, err := uc.geocoderRepo.Forward(ctx, candidate, uc.regionHint)
		if err == nil {
			if i > 0 {
				uc.logger.Info("Geocode resolved on fallback",
					zap.String("requested", location),
					zap.String("resolved", candidate))
			}
			return coord, nil
		}
		if err != errors.ErrGeocodeNoResult {
			return nil, err
		}
	}

	uc.logger.Warn("Geocode chain exhausted", zap.String("location", location))
	return nil, errors.ErrGeocodeNoResult
}

// Reverse resolves a map point to a postal address.
func (uc *GeocodeUseCase) Reverse(ctx context.Context, req dto.ReverseGeocodeRequest) (*dto.ReverseGeocodeResponse, error) {
	if !utils.ValidateCoordinates(req.Lat, req.Lng) {
		return nil, errors.ErrInvalidCoordinates
	}

	addr, err := uc.geocoderRepo.Reverse(ctx, req.Lat, req.Lng)
	if err != nil {
		return nil, err
	}

	return &dto.ReverseGeocodeResponse{
		Street:    addr.Street,
		Zip:       addr.Zip,
		Formatted: addr.Formatted,
	}, nil
}

func splitLocation(location string) []string {
	raw := strings.Split(location, ",")
	parts := make([]string, 0, len(raw))
	for _, p := range raw {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return parts
}
