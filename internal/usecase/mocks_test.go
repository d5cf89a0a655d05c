package usecase_test

import (
	"context"
	"io"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/estate-backoffice/internal/domain"
)

// MockLocationRepository is a mock of LocationRepository
type MockLocationRepository struct {
	mock.Mock
}

func (m *MockLocationRepository) ListCountries(ctx context.Context, page, pageSize int) ([]domain.Country, int, error) {
	args := m.Called(ctx, page, pageSize)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Country), args.Int(1), args.Error(2)
}

func (m *MockLocationRepository) GetCountry(ctx context.Context, id int64) (*domain.Country, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Country), args.Error(1)
}

func (m *MockLocationRepository) CreateCountry(ctx context.Context, c *domain.Country) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockLocationRepository) UpdateCountry(ctx context.Context, c *domain.Country) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockLocationRepository) DeleteCountry(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockLocationRepository) ListCities(ctx context.Context, countryID *int64, page, pageSize int) ([]domain.City, int, error) {
	args := m.Called(ctx, countryID, page, pageSize)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.City), args.Int(1), args.Error(2)
}

func (m *MockLocationRepository) GetCity(ctx context.Context, id int64) (*domain.City, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.City), args.Error(1)
}

func (m *MockLocationRepository) GetCityBySlug(ctx context.Context, slug string) (*domain.City, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.City), args.Error(1)
}

func (m *MockLocationRepository) CreateCity(ctx context.Context, c *domain.City) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockLocationRepository) UpdateCity(ctx context.Context, c *domain.City) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockLocationRepository) DeleteCity(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockLocationRepository) ListDistricts(ctx context.Context, cityID *int64, page, pageSize int) ([]domain.District, int, error) {
	args := m.Called(ctx, cityID, page, pageSize)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.District), args.Int(1), args.Error(2)
}

func (m *MockLocationRepository) ListDistrictsByCitySlug(ctx context.Context, citySlug string, page, pageSize int) ([]domain.District, int, error) {
	args := m.Called(ctx, citySlug, page, pageSize)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.District), args.Int(1), args.Error(2)
}

func (m *MockLocationRepository) GetDistrict(ctx context.Context, id int64) (*domain.District, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.District), args.Error(1)
}

func (m *MockLocationRepository) CreateDistrict(ctx context.Context, d *domain.District) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}

func (m *MockLocationRepository) UpdateDistrict(ctx context.Context, d *domain.District) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}

func (m *MockLocationRepository) DeleteDistrict(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockLocationRepository) ListNeighborhoods(ctx context.Context, districtID *int64, page, pageSize int) ([]domain.Neighborhood, int, error) {
	args := m.Called(ctx, districtID, page, pageSize)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Neighborhood), args.Int(1), args.Error(2)
}

func (m *MockLocationRepository) ListNeighborhoodsBySlugs(ctx context.Context, citySlug, districtSlug string, page, pageSize int) ([]domain.Neighborhood, int, error) {
	args := m.Called(ctx, citySlug, districtSlug, page, pageSize)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Neighborhood), args.Int(1), args.Error(2)
}

func (m *MockLocationRepository) GetNeighborhood(ctx context.Context, id int64) (*domain.Neighborhood, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Neighborhood), args.Error(1)
}

func (m *MockLocationRepository) CreateNeighborhood(ctx context.Context, n *domain.Neighborhood) error {
	args := m.Called(ctx, n)
	return args.Error(0)
}

func (m *MockLocationRepository) UpdateNeighborhood(ctx context.Context, n *domain.Neighborhood) error {
	args := m.Called(ctx, n)
	return args.Error(0)
}

func (m *MockLocationRepository) DeleteNeighborhood(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockGeocoderRepository is a mock of GeocoderRepository
type MockGeocoderRepository struct {
	mock.Mock
}

func (m *MockGeocoderRepository) Forward(ctx context.Context, address, regionHint string) (*domain.Coordinate, error) {
	args := m.Called(ctx, address, regionHint)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Coordinate), args.Error(1)
}

func (m *MockGeocoderRepository) Reverse(ctx context.Context, lat, lng float64) (*domain.Address, error) {
	args := m.Called(ctx, lat, lng)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Address), args.Error(1)
}

// MockListingRepository is a mock of ListingRepository
type MockListingRepository struct {
	mock.Mock
}

func (m *MockListingRepository) List(ctx context.Context, kind domain.ListingKind, page, pageSize int) ([]domain.Listing, int, error) {
	args := m.Called(ctx, kind, page, pageSize)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Listing), args.Int(1), args.Error(2)
}

func (m *MockListingRepository) GetByID(ctx context.Context, kind domain.ListingKind, id int64) (*domain.Listing, error) {
	args := m.Called(ctx, kind, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Listing), args.Error(1)
}

func (m *MockListingRepository) Save(ctx context.Context, l *domain.Listing) error {
	args := m.Called(ctx, l)
	return args.Error(0)
}

func (m *MockListingRepository) Update(ctx context.Context, l *domain.Listing) error {
	args := m.Called(ctx, l)
	return args.Error(0)
}

func (m *MockListingRepository) Delete(ctx context.Context, kind domain.ListingKind, id int64) error {
	args := m.Called(ctx, kind, id)
	return args.Error(0)
}

func (m *MockListingRepository) SetPublished(ctx context.Context, kind domain.ListingKind, id int64, published bool) error {
	args := m.Called(ctx, kind, id, published)
	return args.Error(0)
}

// MockStreamRepository is a mock of StreamRepository
type MockStreamRepository struct {
	mock.Mock
}

func (m *MockStreamRepository) Publish(ctx context.Context, stream string, data []byte) error {
	args := m.Called(ctx, stream, data)
	return args.Error(0)
}

func (m *MockStreamRepository) CreateConsumerGroup(ctx context.Context, stream, group string) error {
	args := m.Called(ctx, stream, group)
	return args.Error(0)
}

func (m *MockStreamRepository) ConsumeBatch(ctx context.Context, stream, group, consumer string, count int) ([]domain.StreamMessage, error) {
	args := m.Called(ctx, stream, group, consumer, count)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.StreamMessage), args.Error(1)
}

func (m *MockStreamRepository) AckMessage(ctx context.Context, stream, group, messageID string) error {
	args := m.Called(ctx, stream, group, messageID)
	return args.Error(0)
}

// MockSearchRepository is a mock of SearchRepository
type MockSearchRepository struct {
	mock.Mock
}

func (m *MockSearchRepository) UpsertDocument(ctx context.Context, doc *domain.ListingDocument) error {
	args := m.Called(ctx, doc)
	return args.Error(0)
}

func (m *MockSearchRepository) DeleteDocument(ctx context.Context, documentID string) error {
	args := m.Called(ctx, documentID)
	return args.Error(0)
}

// MockAgentRepository is a mock of AgentRepository
type MockAgentRepository struct {
	mock.Mock
}

func (m *MockAgentRepository) List(ctx context.Context, page, pageSize int) ([]domain.Agent, int, error) {
	args := m.Called(ctx, page, pageSize)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Agent), args.Int(1), args.Error(2)
}

func (m *MockAgentRepository) GetByID(ctx context.Context, id int64) (*domain.Agent, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Agent), args.Error(1)
}

func (m *MockAgentRepository) Create(ctx context.Context, a *domain.Agent) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *MockAgentRepository) Update(ctx context.Context, a *domain.Agent) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *MockAgentRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockCacheRepository is a mock of CacheRepository
type MockCacheRepository struct {
	mock.Mock
}

func (m *MockCacheRepository) Get(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockCacheRepository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	args := m.Called(ctx, key, value, ttl)
	return args.Error(0)
}

func (m *MockCacheRepository) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockCacheRepository) DeleteByPrefix(ctx context.Context, prefix string) error {
	args := m.Called(ctx, prefix)
	return args.Error(0)
}

// MockStorageRepository is a mock of StorageRepository
type MockStorageRepository struct {
	mock.Mock
}

func (m *MockStorageRepository) Upload(ctx context.Context, bucket, path string, body io.Reader, contentType string) (string, error) {
	args := m.Called(ctx, bucket, path, body, contentType)
	return args.String(0), args.Error(1)
}

func (m *MockStorageRepository) Delete(ctx context.Context, bucket, path string) error {
	args := m.Called(ctx, bucket, path)
	return args.Error(0)
}
