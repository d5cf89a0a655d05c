package postgres_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/estate-backoffice/internal/domain"
	"github.com/estate-backoffice/internal/domain/repository"
	"github.com/estate-backoffice/internal/pkg/errors"
	"github.com/estate-backoffice/internal/repository/postgres"
	"github.com/estate-backoffice/internal/repository/postgres/testhelpers"
)

type ListingRepositoryTestSuite struct {
	suite.Suite
	testDB       *testhelpers.TestDB
	repo         repository.ListingRepository
	locationRepo repository.LocationRepository
	ctx          context.Context

	country *domain.Country
	city    *domain.City
}

func (s *ListingRepositoryTestSuite) SetupSuite() {
	s.testDB = testhelpers.SetupTestDB(s.T())

	_ = testhelpers.ApplyMigrations(s.testDB.DB.DB, "../../../migrations")

	db := postgres.NewDBForTest(s.testDB.DB, s.testDB.Logger)
	s.repo = postgres.NewListingRepository(db)
	s.locationRepo = postgres.NewLocationRepository(db)
}

func (s *ListingRepositoryTestSuite) TearDownSuite() {
	if s.testDB != nil {
		s.testDB.Close()
	}
}

func (s *ListingRepositoryTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.NoError(s.testDB.Cleanup(s.ctx))

	s.country = &domain.Country{Name: "Türkiye", Slug: "turkiye"}
	s.Require().NoError(s.locationRepo.CreateCountry(s.ctx, s.country))

	s.city = &domain.City{Name: "İstanbul", Slug: "istanbul", CountryID: s.country.ID}
	s.Require().NoError(s.locationRepo.CreateCity(s.ctx, s.city))
}

func (s *ListingRepositoryTestSuite) newProperty(slug string) *domain.Listing {
	return &domain.Listing{
		Kind:        domain.KindProperty,
		Title:       "Moda Seaside Flat",
		Slug:        slug,
		Description: "Two bedrooms facing the sea.",
		Category:    "flat",
		Price:       250000,
		Currency:    "EUR",
		Location: domain.ListingLocation{
			CountryID:   s.country.ID,
			CountryName: s.country.Name,
			CityID:      &s.city.ID,
			CityName:    s.city.Name,
		},
		Images: []domain.ListingImage{
			{Path: "listings/ab/one.jpg", FullURL: "https://cdn/one.jpg", SortOrder: 0},
			{Path: "listings/ab/two.jpg", FullURL: "https://cdn/two.jpg", SortOrder: 1},
		},
		UnitSizes: []domain.UnitSize{{Name: "2+1", MinM2: 85, MaxM2: 110}},
		Features:  []string{"Parking", "Security"},
	}
}

func (s *ListingRepositoryTestSuite) TestSaveAndGetByID() {
	l := s.newProperty("moda-seaside-flat")
	s.Require().NoError(s.repo.Save(s.ctx, l))
	s.NotZero(l.ID)

	got, err := s.repo.GetByID(s.ctx, domain.KindProperty, l.ID)
	s.NoError(err)
	s.Equal("Moda Seaside Flat", got.Title)
	s.Equal("İstanbul", got.Location.CityName)
	s.Equal(s.country.ID, got.Location.CountryID)
	s.Require().Len(got.Images, 2)
	s.Equal("listings/ab/one.jpg", got.Images[0].Path)
	s.Require().Len(got.UnitSizes, 1)
	s.Equal("2+1", got.UnitSizes[0].Name)
	s.ElementsMatch([]string{"Parking", "Security"}, got.Features)
	s.False(got.Published)
}

func (s *ListingRepositoryTestSuite) TestGetByID_KindMismatch() {
	l := s.newProperty("kind-mismatch")
	s.Require().NoError(s.repo.Save(s.ctx, l))

	_, err := s.repo.GetByID(s.ctx, domain.KindOffice, l.ID)
	s.ErrorIs(err, errors.ErrNotFound)
}

func (s *ListingRepositoryTestSuite) TestUpdate_DiffsImagesByPath() {
	l := s.newProperty("image-diff")
	s.Require().NoError(s.repo.Save(s.ctx, l))

	stored, err := s.repo.GetByID(s.ctx, domain.KindProperty, l.ID)
	s.Require().NoError(err)
	s.Require().Len(stored.Images, 2)
	keptID := stored.Images[0].ID

	// Keep the first image at a new position, drop the second, add a third.
	l.Images = []domain.ListingImage{
		{Path: "listings/ab/three.jpg", FullURL: "https://cdn/three.jpg", SortOrder: 0},
		{Path: "listings/ab/one.jpg", FullURL: "https://cdn/one.jpg", SortOrder: 1},
	}
	s.Require().NoError(s.repo.Update(s.ctx, l))

	got, err := s.repo.GetByID(s.ctx, domain.KindProperty, l.ID)
	s.NoError(err)
	s.Require().Len(got.Images, 2)

	byPath := map[string]domain.ListingImage{}
	for _, img := range got.Images {
		byPath[img.Path] = img
	}
	s.NotContains(byPath, "listings/ab/two.jpg")

	// Surviving image keeps its row identity.
	s.Equal(keptID, byPath["listings/ab/one.jpg"].ID)
	s.Equal(1, byPath["listings/ab/one.jpg"].SortOrder)
	s.Equal(0, byPath["listings/ab/three.jpg"].SortOrder)
}

func (s *ListingRepositoryTestSuite) TestUpdate_ReplacesValueCollections() {
	l := s.newProperty("value-collections")
	s.Require().NoError(s.repo.Save(s.ctx, l))

	l.Features = []string{"Elevator"}
	l.UnitSizes = []domain.UnitSize{{Name: "3+1", MinM2: 120, MaxM2: 140}}
	s.Require().NoError(s.repo.Update(s.ctx, l))

	got, err := s.repo.GetByID(s.ctx, domain.KindProperty, l.ID)
	s.NoError(err)
	s.Equal([]string{"Elevator"}, got.Features)
	s.Require().Len(got.UnitSizes, 1)
	s.Equal("3+1", got.UnitSizes[0].Name)
}

func (s *ListingRepositoryTestSuite) TestSetPublished() {
	l := s.newProperty("publish-me")
	s.Require().NoError(s.repo.Save(s.ctx, l))

	s.NoError(s.repo.SetPublished(s.ctx, domain.KindProperty, l.ID, true))

	got, err := s.repo.GetByID(s.ctx, domain.KindProperty, l.ID)
	s.NoError(err)
	s.True(got.Published)

	s.ErrorIs(s.repo.SetPublished(s.ctx, domain.KindProperty, 99999, true), errors.ErrNotFound)
}

func (s *ListingRepositoryTestSuite) TestDelete_RemovesChildren() {
	l := s.newProperty("delete-me")
	s.Require().NoError(s.repo.Save(s.ctx, l))

	s.NoError(s.repo.Delete(s.ctx, domain.KindProperty, l.ID))

	_, err := s.repo.GetByID(s.ctx, domain.KindProperty, l.ID)
	s.ErrorIs(err, errors.ErrNotFound)

	var count int
	s.NoError(s.testDB.DB.Get(&count,
		`SELECT COUNT(*) FROM listing_images WHERE listing_id = $1`, l.ID))
	s.Zero(count)
}

func (s *ListingRepositoryTestSuite) TestDelete_OfficeWithAgents_Restricted() {
	office := &domain.Listing{
		Kind:     domain.KindOffice,
		Title:    "Kadıköy Branch",
		Slug:     "kadikoy-branch",
		Currency: "EUR",
		Location: domain.ListingLocation{
			CountryID:   s.country.ID,
			CountryName: s.country.Name,
		},
	}
	s.Require().NoError(s.repo.Save(s.ctx, office))

	_, err := s.testDB.DB.Exec(
		`INSERT INTO agents (name, office_id) VALUES ($1, $2)`, "Ayşe Demir", office.ID)
	s.Require().NoError(err)

	s.ErrorIs(s.repo.Delete(s.ctx, domain.KindOffice, office.ID), errors.ErrHasDependents)

	got, err := s.repo.GetByID(s.ctx, domain.KindOffice, office.ID)
	s.NoError(err)
	s.Equal("Kadıköy Branch", got.Title)
}

func (s *ListingRepositoryTestSuite) TestSave_DuplicateSlugWithinKind() {
	s.Require().NoError(s.repo.Save(s.ctx, s.newProperty("same-slug")))

	err := s.repo.Save(s.ctx, s.newProperty("same-slug"))
	s.ErrorIs(err, errors.ErrDuplicateKey)
}

func (s *ListingRepositoryTestSuite) TestList_FiltersByKindWithLocation() {
	s.Require().NoError(s.repo.Save(s.ctx, s.newProperty("list-one")))
	s.Require().NoError(s.repo.Save(s.ctx, s.newProperty("list-two")))

	office := &domain.Listing{
		Kind:     domain.KindOffice,
		Title:    "Head Office",
		Slug:     "head-office",
		Currency: "EUR",
		Location: domain.ListingLocation{CountryID: s.country.ID, CountryName: s.country.Name},
	}
	s.Require().NoError(s.repo.Save(s.ctx, office))

	items, total, err := s.repo.List(s.ctx, domain.KindProperty, 1, 50)
	s.NoError(err)
	s.Equal(2, total)
	s.Require().Len(items, 2)
	for _, item := range items {
		s.Equal(domain.KindProperty, item.Kind)
		s.Equal("İstanbul", item.Location.CityName)
	}
}

func TestListingRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(ListingRepositoryTestSuite))
}
