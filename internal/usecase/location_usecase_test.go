package usecase_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"github.com/estate-backoffice/internal/domain"
	"github.com/estate-backoffice/internal/usecase"
	"github.com/estate-backoffice/internal/usecase/dto"
)

func TestLocationUseCase_PublicReadsCached(t *testing.T) {
	ctx := context.Background()
	locRepo := &MockLocationRepository{}
	cacheRepo := &MockCacheRepository{}
	uc := usecase.NewLocationUseCase(locRepo, cacheRepo, zap.NewNop(), time.Hour)

	t.Run("miss hits the database and fills the cache", func(t *testing.T) {
		cacheRepo.On("Get", mock.Anything, "loc:districts:istanbul:1:50").
			Return(nil, nil).Once()
		locRepo.On("ListDistrictsByCitySlug", mock.Anything, "istanbul", 1, 50).
			Return([]domain.District{{ID: 20, Name: "Kadıköy", Slug: "kadikoy"}}, 1, nil).Once()
		cacheRepo.On("Set", mock.Anything, "loc:districts:istanbul:1:50", mock.Anything, time.Hour).
			Return(nil).Once()

		resp, err := uc.GetDistrictsByCitySlug(ctx, "istanbul", nil)
		assert.NoError(t, err)
		assert.Equal(t, 1, resp.Total)
		assert.Equal(t, "Kadıköy", resp.Items[0].Name)
	})

	t.Run("hit skips the database", func(t *testing.T) {
		cached, _ := json.Marshal(dto.DistrictListResponse{
			Items: []domain.District{{ID: 20, Name: "Kadıköy", Slug: "kadikoy"}},
			Total: 1,
		})
		cacheRepo.On("Get", mock.Anything, "loc:districts:istanbul:1:50").
			Return(cached, nil).Once()

		resp, err := uc.GetDistrictsByCitySlug(ctx, "istanbul", nil)
		assert.NoError(t, err)
		assert.Equal(t, "Kadıköy", resp.Items[0].Name)
		locRepo.AssertNumberOfCalls(t, "ListDistrictsByCitySlug", 1)
	})
}

func TestLocationUseCase_WriteInvalidatesCache(t *testing.T) {
	ctx := context.Background()
	locRepo := &MockLocationRepository{}
	cacheRepo := &MockCacheRepository{}
	uc := usecase.NewLocationUseCase(locRepo, cacheRepo, zap.NewNop(), time.Hour)

	locRepo.On("GetDistrict", mock.Anything, int64(20)).
		Return(&domain.District{ID: 20, Name: "Kadıköy", Slug: "kadikoy", CityID: 10}, nil)
	locRepo.On("UpdateDistrict", mock.Anything, mock.AnythingOfType("*domain.District")).
		Return(nil)
	cacheRepo.On("DeleteByPrefix", mock.Anything, "loc:").Return(nil)

	d, err := uc.UpdateDistrict(ctx, 20, dto.DistrictRequest{Name: "Kadıköy Merkez", CityID: 10})
	assert.NoError(t, err)
	assert.Equal(t, "kadikoy-merkez", d.Slug)
	cacheRepo.AssertCalled(t, "DeleteByPrefix", mock.Anything, "loc:")
}

func TestLocationUseCase_SlugDerivedFromTurkishName(t *testing.T) {
	ctx := context.Background()
	locRepo := &MockLocationRepository{}
	cacheRepo := &MockCacheRepository{}
	uc := usecase.NewLocationUseCase(locRepo, cacheRepo, zap.NewNop(), time.Hour)

	var created *domain.City
	locRepo.On("CreateCity", mock.Anything, mock.AnythingOfType("*domain.City")).
		Run(func(args mock.Arguments) {
			created = args.Get(1).(*domain.City)
			created.ID = 10
		}).
		Return(nil)
	cacheRepo.On("DeleteByPrefix", mock.Anything, "loc:").Return(nil)

	c, err := uc.CreateCity(ctx, dto.CityRequest{Name: "İstanbul", CountryID: 1})
	assert.NoError(t, err)
	assert.Equal(t, "istanbul", c.Slug)

	t.Run("explicit slug wins", func(t *testing.T) {
		c, err := uc.CreateCity(ctx, dto.CityRequest{Name: "İstanbul", Slug: "Stamboul", CountryID: 1})
		assert.NoError(t, err)
		assert.Equal(t, "stamboul", c.Slug)
	})
}
