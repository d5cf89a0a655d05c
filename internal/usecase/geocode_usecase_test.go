package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"github.com/estate-backoffice/internal/domain"
	"github.com/estate-backoffice/internal/pkg/errors"
	"github.com/estate-backoffice/internal/usecase"
	"github.com/estate-backoffice/internal/usecase/dto"
)

func TestGeocodeUseCase_ForwardFallbackChain(t *testing.T) {
	ctx := context.Background()
	logger := zap.NewNop()

	t.Run("full string resolves directly", func(t *testing.T) {
		geoRepo := &MockGeocoderRepository{}
		uc := usecase.NewGeocodeUseCase(geoRepo, logger, "tr")

		geoRepo.On("Forward", mock.Anything, "Moda, Kadıköy, İstanbul", "tr").
			Return(&domain.Coordinate{Lat: 40.98, Lng: 29.02}, nil)

		resp, err := uc.Forward(ctx, dto.ForwardGeocodeRequest{Location: "Moda, Kadıköy, İstanbul"})
		assert.NoError(t, err)
		assert.Equal(t, 40.98, resp.Lat)
		geoRepo.AssertNumberOfCalls(t, "Forward", 1)
	})

	t.Run("drops leading component until a hit", func(t *testing.T) {
		geoRepo := &MockGeocoderRepository{}
		uc := usecase.NewGeocodeUseCase(geoRepo, logger, "tr")

		geoRepo.On("Forward", mock.Anything, "Modaa, Kadıköy, İstanbul", "tr").
			Return(nil, errors.ErrGeocodeNoResult)
		geoRepo.On("Forward", mock.Anything, "Kadıköy, İstanbul", "tr").
			Return(&domain.Coordinate{Lat: 40.99, Lng: 29.03}, nil)

		resp, err := uc.Forward(ctx, dto.ForwardGeocodeRequest{Location: "Modaa, Kadıköy, İstanbul"})
		assert.NoError(t, err)
		assert.Equal(t, 40.99, resp.Lat)
		geoRepo.AssertNumberOfCalls(t, "Forward", 2)
	})

	t.Run("exhausted chain surfaces no result", func(t *testing.T) {
		geoRepo := &MockGeocoderRepository{}
		uc := usecase.NewGeocodeUseCase(geoRepo, logger, "tr")

		geoRepo.On("Forward", mock.Anything, mock.Anything, "tr").
			Return(nil, errors.ErrGeocodeNoResult)

		_, err := uc.Forward(ctx, dto.ForwardGeocodeRequest{Location: "Nowhere, Atlantis"})
		assert.ErrorIs(t, err, errors.ErrGeocodeNoResult)
		geoRepo.AssertNumberOfCalls(t, "Forward", 2)
	})

	t.Run("whitespace-only components are skipped", func(t *testing.T) {
		geoRepo := &MockGeocoderRepository{}
		uc := usecase.NewGeocodeUseCase(geoRepo, logger, "tr")

		geoRepo.On("Forward", mock.Anything, "İstanbul", "tr").
			Return(&domain.Coordinate{Lat: 41.0, Lng: 28.97}, nil)

		resp, err := uc.Forward(ctx, dto.ForwardGeocodeRequest{Location: " , İstanbul, "})
		assert.NoError(t, err)
		assert.Equal(t, 41.0, resp.Lat)
	})
}

func TestGeocodeUseCase_Reverse(t *testing.T) {
	ctx := context.Background()
	logger := zap.NewNop()

	t.Run("returns address", func(t *testing.T) {
		geoRepo := &MockGeocoderRepository{}
		uc := usecase.NewGeocodeUseCase(geoRepo, logger, "tr")

		geoRepo.On("Reverse", mock.Anything, 40.98, 29.02).
			Return(&domain.Address{Street: "Moda Caddesi 5", Zip: "34710", Formatted: "Moda Caddesi 5, Kadıköy"}, nil)

		resp, err := uc.Reverse(ctx, dto.ReverseGeocodeRequest{Lat: 40.98, Lng: 29.02})
		assert.NoError(t, err)
		assert.Equal(t, "Moda Caddesi 5", resp.Street)
		assert.Equal(t, "34710", resp.Zip)
	})

	t.Run("rejects out-of-range coordinates", func(t *testing.T) {
		geoRepo := &MockGeocoderRepository{}
		uc := usecase.NewGeocodeUseCase(geoRepo, logger, "tr")

		_, err := uc.Reverse(ctx, dto.ReverseGeocodeRequest{Lat: 91.0, Lng: 29.02})
		assert.ErrorIs(t, err, errors.ErrInvalidCoordinates)
		geoRepo.AssertNotCalled(t, "Reverse", mock.Anything, mock.Anything, mock.Anything)
	})
}
