package repository

import (
	"context"

	"github.com/estate-backoffice/internal/domain"
)

// GeocoderRepository wraps the external mapping provider. Implementations
// collapse transport and provider failures into ErrGeocodeNoResult so callers
// always get a defined, possibly empty, outcome.
type GeocoderRepository interface {
	// Forward resolves a free-text address to a coordinate.
	Forward(ctx context.Context, address, regionHint string) (*domain.Coordinate, error)

	// Reverse resolves a coordinate back to a postal address.
	Reverse(ctx context.Context, lat, lng float64) (*domain.Address, error)
}
