package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"github.com/estate-backoffice/internal/domain"
	"github.com/estate-backoffice/internal/pkg/errors"
	"github.com/estate-backoffice/internal/usecase"
	"github.com/estate-backoffice/internal/usecase/dto"
)

func newFormUseCase(listingRepo *MockListingRepository, locRepo *MockLocationRepository, geoRepo *MockGeocoderRepository) *usecase.FormUseCase {
	logger := zap.NewNop()
	geocoder := usecase.NewGeocodeUseCase(geoRepo, logger, "tr")
	return usecase.NewFormUseCase(listingRepo, locRepo, geocoder, logger, 2*time.Hour, 10*time.Minute)
}

// mockHierarchy wires a minimal Türkiye/İstanbul tree used by most tests.
func mockHierarchy(locRepo *MockLocationRepository, geoRepo *MockGeocoderRepository) {
	locRepo.On("ListCountries", mock.Anything, 1, mock.Anything).
		Return([]domain.Country{{ID: 1, Name: "Türkiye", Slug: "turkiye"}}, 1, nil)
	locRepo.On("GetCountry", mock.Anything, int64(1)).
		Return(&domain.Country{ID: 1, Name: "Türkiye", Slug: "turkiye"}, nil)
	locRepo.On("ListCities", mock.Anything, mock.Anything, 1, mock.Anything).
		Return([]domain.City{{ID: 10, Name: "İstanbul", Slug: "istanbul"}}, 1, nil)
	locRepo.On("GetCity", mock.Anything, int64(10)).
		Return(&domain.City{ID: 10, Name: "İstanbul", Slug: "istanbul"}, nil)
	locRepo.On("ListDistricts", mock.Anything, mock.Anything, 1, mock.Anything).
		Return([]domain.District{}, 0, nil)
	geoRepo.On("Forward", mock.Anything, mock.Anything, "tr").
		Return(&domain.Coordinate{Lat: 41.0, Lng: 29.0}, nil)
}

func TestFormUseCase_SubmitBlockedByEarlierStep(t *testing.T) {
	ctx := context.Background()
	listingRepo := &MockListingRepository{}
	locRepo := &MockLocationRepository{}
	geoRepo := &MockGeocoderRepository{}
	uc := newFormUseCase(listingRepo, locRepo, geoRepo)
	mockHierarchy(locRepo, geoRepo)

	session, err := uc.Start(ctx, dto.StartFormRequest{Kind: "property"})
	assert.NoError(t, err)

	// Step 1 is never filled in; the location step is.
	_, err = uc.SelectLocation(ctx, session.ID, dto.SelectLocationRequest{Level: "country", ID: 1})
	assert.NoError(t, err)
	_, err = uc.SelectLocation(ctx, session.ID, dto.SelectLocationRequest{Level: "city", ID: 10})
	assert.NoError(t, err)

	_, err = uc.Submit(ctx, session.ID)
	assert.ErrorIs(t, err, errors.ErrStepNotAllowed)

	appErr := err.(*errors.AppError)
	assert.Equal(t, "basic", appErr.Details["step"])
	assert.Equal(t, "Title", appErr.Details["field"])

	// Nothing may reach the database on a failed submit.
	listingRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	listingRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)

	// The session survives for another attempt.
	_, err = uc.Get(ctx, session.ID)
	assert.NoError(t, err)
}

func TestFormUseCase_SubmitPersistsAndClosesSession(t *testing.T) {
	ctx := context.Background()
	listingRepo := &MockListingRepository{}
	locRepo := &MockLocationRepository{}
	geoRepo := &MockGeocoderRepository{}
	uc := newFormUseCase(listingRepo, locRepo, geoRepo)
	mockHierarchy(locRepo, geoRepo)

	session, err := uc.Start(ctx, dto.StartFormRequest{Kind: "property"})
	assert.NoError(t, err)

	_, err = uc.SetBasic(ctx, session.ID, dto.BasicInfoRequest{
		Title:    "Moda Seaside Flat",
		Category: "flat",
		Price:    250000,
		Currency: "EUR",
	})
	assert.NoError(t, err)
	_, err = uc.SelectLocation(ctx, session.ID, dto.SelectLocationRequest{Level: "country", ID: 1})
	assert.NoError(t, err)
	_, err = uc.SelectLocation(ctx, session.ID, dto.SelectLocationRequest{Level: "city", ID: 10})
	assert.NoError(t, err)
	_, err = uc.SetAddress(ctx, session.ID, dto.AddressRequest{StreetAddress: "Moda Caddesi 5", Zip: "34710"})
	assert.NoError(t, err)

	var saved *domain.Listing
	listingRepo.On("Save", mock.Anything, mock.AnythingOfType("*domain.Listing")).
		Run(func(args mock.Arguments) {
			saved = args.Get(1).(*domain.Listing)
			saved.ID = 42
		}).
		Return(nil)

	resp, err := uc.Submit(ctx, session.ID)
	assert.NoError(t, err)
	assert.Equal(t, int64(42), resp.Listing.ID)
	assert.Equal(t, domain.KindProperty, saved.Kind)
	assert.Equal(t, "moda-seaside-flat", saved.Slug)
	assert.Equal(t, "Türkiye", saved.Location.CountryName)
	assert.Equal(t, "İstanbul", saved.Location.CityName)
	assert.Equal(t, "Moda Caddesi 5", saved.Location.StreetAddress)
	assert.NotNil(t, saved.Location.Lat)

	_, err = uc.Get(ctx, session.ID)
	assert.ErrorIs(t, err, errors.ErrFormSessionNotFound)
}

func TestFormUseCase_PersistenceFailureKeepsSession(t *testing.T) {
	ctx := context.Background()
	listingRepo := &MockListingRepository{}
	locRepo := &MockLocationRepository{}
	geoRepo := &MockGeocoderRepository{}
	uc := newFormUseCase(listingRepo, locRepo, geoRepo)
	mockHierarchy(locRepo, geoRepo)

	session, err := uc.Start(ctx, dto.StartFormRequest{Kind: "office"})
	assert.NoError(t, err)

	_, err = uc.SetBasic(ctx, session.ID, dto.BasicInfoRequest{Title: "Head Office", Category: "office"})
	assert.NoError(t, err)
	_, err = uc.SelectLocation(ctx, session.ID, dto.SelectLocationRequest{Level: "country", ID: 1})
	assert.NoError(t, err)
	_, err = uc.SelectLocation(ctx, session.ID, dto.SelectLocationRequest{Level: "city", ID: 10})
	assert.NoError(t, err)

	listingRepo.On("Save", mock.Anything, mock.Anything).Return(errors.ErrDatabaseError)

	_, err = uc.Submit(ctx, session.ID)
	assert.ErrorIs(t, err, errors.ErrDatabaseError)

	got, err := uc.Get(ctx, session.ID)
	assert.NoError(t, err)
	assert.Equal(t, "Head Office", got.Basic.Title)
}

func TestFormUseCase_GoToStepForwardGated(t *testing.T) {
	ctx := context.Background()
	listingRepo := &MockListingRepository{}
	locRepo := &MockLocationRepository{}
	geoRepo := &MockGeocoderRepository{}
	uc := newFormUseCase(listingRepo, locRepo, geoRepo)
	mockHierarchy(locRepo, geoRepo)

	session, err := uc.Start(ctx, dto.StartFormRequest{Kind: "project"})
	assert.NoError(t, err)

	_, err = uc.GoToStep(ctx, session.ID, 3)
	assert.ErrorIs(t, err, errors.ErrStepNotAllowed)

	_, err = uc.SetBasic(ctx, session.ID, dto.BasicInfoRequest{Title: "Marina Residences", Category: "residence"})
	assert.NoError(t, err)

	// Step 2 is still incomplete, so step 3 stays out of reach.
	_, err = uc.GoToStep(ctx, session.ID, 3)
	assert.ErrorIs(t, err, errors.ErrStepNotAllowed)

	got, err := uc.GoToStep(ctx, session.ID, 2)
	assert.NoError(t, err)
	assert.Equal(t, 2, got.Step)

	_, err = uc.SelectLocation(ctx, session.ID, dto.SelectLocationRequest{Level: "country", ID: 1})
	assert.NoError(t, err)
	_, err = uc.SelectLocation(ctx, session.ID, dto.SelectLocationRequest{Level: "city", ID: 10})
	assert.NoError(t, err)

	got, err = uc.GoToStep(ctx, session.ID, 4)
	assert.NoError(t, err)
	assert.Equal(t, 4, got.Step)

	// Backward is never gated.
	got, err = uc.GoToStep(ctx, session.ID, 1)
	assert.NoError(t, err)
	assert.Equal(t, 1, got.Step)
}

func TestFormUseCase_CategoryChangeClearsDescriptors(t *testing.T) {
	ctx := context.Background()
	listingRepo := &MockListingRepository{}
	locRepo := &MockLocationRepository{}
	geoRepo := &MockGeocoderRepository{}
	uc := newFormUseCase(listingRepo, locRepo, geoRepo)
	mockHierarchy(locRepo, geoRepo)

	session, err := uc.Start(ctx, dto.StartFormRequest{Kind: "property"})
	assert.NoError(t, err)

	_, err = uc.SetBasic(ctx, session.ID, dto.BasicInfoRequest{Title: "Garden Villa", Category: "villa"})
	assert.NoError(t, err)
	_, err = uc.SetFeatures(ctx, session.ID, dto.FeaturesStepRequest{
		Descriptors: []dto.DescriptorInput{{ID: 7}, {ID: 9}},
		Features:    []string{"pool"},
	})
	assert.NoError(t, err)

	// Same category: descriptors stay.
	got, err := uc.SetBasic(ctx, session.ID, dto.BasicInfoRequest{Title: "Garden Villa II", Category: "villa"})
	assert.NoError(t, err)
	assert.Len(t, got.Features.Descriptors, 2)

	// New category: descriptors are scoped to the old one and dropped.
	got, err = uc.SetBasic(ctx, session.ID, dto.BasicInfoRequest{Title: "Garden Villa II", Category: "land"})
	assert.NoError(t, err)
	assert.Empty(t, got.Features.Descriptors)
	assert.Equal(t, []string{"pool"}, got.Features.Features)
}

func TestFormUseCase_UnknownSession(t *testing.T) {
	ctx := context.Background()
	uc := newFormUseCase(&MockListingRepository{}, &MockLocationRepository{}, &MockGeocoderRepository{})

	_, err := uc.Get(ctx, "b5fead9e-0000-0000-0000-000000000000")
	assert.ErrorIs(t, err, errors.ErrFormSessionNotFound)
}

func TestFormUseCase_StartPrefillsFromListing(t *testing.T) {
	ctx := context.Background()
	listingRepo := &MockListingRepository{}
	locRepo := &MockLocationRepository{}
	geoRepo := &MockGeocoderRepository{}
	uc := newFormUseCase(listingRepo, locRepo, geoRepo)
	mockHierarchy(locRepo, geoRepo)

	cityID := int64(10)
	lat, lng := 41.0, 29.0
	listingID := int64(42)
	listingRepo.On("GetByID", mock.Anything, domain.KindProperty, listingID).
		Return(&domain.Listing{
			ID:       42,
			Kind:     domain.KindProperty,
			Title:    "Moda Seaside Flat",
			Category: "flat",
			Location: domain.ListingLocation{
				CountryID:     1,
				CountryName:   "Türkiye",
				CityID:        &cityID,
				CityName:      "İstanbul",
				StreetAddress: "Moda Caddesi 5",
				Lat:           &lat,
				Lng:           &lng,
			},
			Features: []string{"sea view"},
		}, nil)

	session, err := uc.Start(ctx, dto.StartFormRequest{Kind: "property", ListingID: &listingID})
	assert.NoError(t, err)
	assert.Equal(t, "Moda Seaside Flat", session.Basic.Title)
	assert.Equal(t, "İstanbul", session.Draft.City.Name)
	assert.Equal(t, "Moda Caddesi 5", session.Draft.StreetAddress)
	assert.Equal(t, []string{"sea view"}, session.Features.Features)
	assert.NotNil(t, session.ListingID)
}
