package geocoding

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"go.uber.org/zap"

	"github.com/estate-backoffice/internal/config"
	"github.com/estate-backoffice/internal/domain"
	"github.com/estate-backoffice/internal/domain/repository"
	"github.com/estate-backoffice/internal/pkg/errors"
)

type client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	logger     *zap.Logger
}

// NewClient creates the mapping provider client. Every failure mode, from
// transport errors to an empty candidate list, collapses into
// ErrGeocodeNoResult so the cascade always has a defined outcome.
func NewClient(cfg *config.GeocoderConfig, logger *zap.Logger) repository.GeocoderRepository {
	return &client{
		httpClient: &http.Client{
			Timeout: cfg.RequestTimeout,
		},
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		logger:  logger,
	}
}

type geocodeResponse struct {
	Status  string `json:"status"`
	Results []struct {
		FormattedAddress string `json:"formatted_address"`
		Geometry         struct {
			Location struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"location"`
		} `json:"geometry"`
		AddressComponents []struct {
			LongName string   `json:"long_name"`
			Types    []string `json:"types"`
		} `json:"address_components"`
	} `json:"results"`
}

// Forward resolves a free-text address to the first candidate's coordinate.
func (c *client) Forward(ctx context.Context, address, regionHint string) (*domain.Coordinate, error) {
	params := url.Values{}
	params.Set("address", address)
	if regionHint != "" {
		params.Set("region", regionHint)
	}
	params.Set("key", c.apiKey)

	resp, err := c.call(ctx, params)
	if err != nil {
		return nil, err
	}

	loc := resp.Results[0].Geometry.Location
	c.logger.Debug("Forward geocode hit",
		zap.String("address", address),
		zap.Float64("lat", loc.Lat),
		zap.Float64("lng", loc.Lng))

	return &domain.Coordinate{Lat: loc.Lat, Lng: loc.Lng}, nil
}

// Reverse resolves a coordinate back to a street address and zip code.
func (c *client) Reverse(ctx context.Context, lat, lng float64) (*domain.Address, error) {
	params := url.Values{}
	params.Set("latlng", fmt.Sprintf("%f,%f", lat, lng))
	params.Set("key", c.apiKey)

	resp, err := c.call(ctx, params)
	if err != nil {
		return nil, err
	}

	first := resp.Results[0]
	addr := &domain.Address{
		Formatted: first.FormattedAddress,
	}

	var route, streetNumber string
	for _, comp := range first.AddressComponents {
		for _, t := range comp.Types {
			switch t {
			case "route":
				route = comp.LongName
			case "street_number":
				streetNumber = comp.LongName
			case "postal_code":
				addr.Zip = comp.LongName
			}
		}
	}
	addr.Street = strings.TrimSpace(route + " " + streetNumber)

	return addr, nil
}

// call executes one provider request and normalizes every failure to
// ErrGeocodeNoResult. Callers can rely on Results being non-empty on success.
func (c *client) call(ctx context.Context, params url.Values) (*geocodeResponse, error) {
	reqURL := fmt.Sprintf("%s/geocode/json?%s", c.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		c.logger.Warn("Failed to create geocode request", zap.Error(err))
		return nil, errors.ErrGeocodeNoResult
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("Geocode request failed", zap.Error(err))
		return nil, errors.ErrGeocodeNoResult
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.Warn("Geocode provider returned error status",
			zap.Int("status_code", resp.StatusCode))
		return nil, errors.ErrGeocodeNoResult
	}

	var decoded geocodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		c.logger.Warn("Failed to decode geocode response", zap.Error(err))
		return nil, errors.ErrGeocodeNoResult
	}

	if decoded.Status != "OK" || len(decoded.Results) == 0 {
		c.logger.Debug("Geocode produced no candidates",
			zap.String("status", decoded.Status))
		return nil, errors.ErrGeocodeNoResult
	}

	return &decoded, nil
}
