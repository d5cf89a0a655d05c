package geocoding

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/estate-backoffice/internal/config"
	"github.com/estate-backoffice/internal/pkg/errors"
)

func newTestClient(serverURL string) *client {
	cfg := &config.GeocoderConfig{
		BaseURL:        serverURL,
		APIKey:         "test_key",
		RequestTimeout: 2 * time.Second,
	}
	return NewClient(cfg, zap.NewNop()).(*client)
}

func TestClient_Forward(t *testing.T) {
	t.Run("successful request", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/geocode/json", r.URL.Path)
			assert.Equal(t, "Kadıköy, İstanbul", r.URL.Query().Get("address"))
			assert.Equal(t, "tr", r.URL.Query().Get("region"))
			assert.Equal(t, "test_key", r.URL.Query().Get("key"))

			w.Header().Set("Content-Type", "application/json")
			fmt.Fprint(w, `{
				"status": "OK",
				"results": [{
					"formatted_address": "Kadıköy, İstanbul, Türkiye",
					"geometry": {"location": {"lat": 40.9927, "lng": 29.0277}}
				}]
			}`)
		}))
		defer server.Close()

		c := newTestClient(server.URL)

		coord, err := c.Forward(context.Background(), "Kadıköy, İstanbul", "tr")
		require.NoError(t, err)
		assert.Equal(t, 40.9927, coord.Lat)
		assert.Equal(t, 29.0277, coord.Lng)
	})

	t.Run("zero results", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{"status": "ZERO_RESULTS", "results": []}`)
		}))
		defer server.Close()

		c := newTestClient(server.URL)

		_, err := c.Forward(context.Background(), "Nowhere Street 0", "tr")
		assert.ErrorIs(t, err, errors.ErrGeocodeNoResult)
	})

	t.Run("provider error status", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer server.Close()

		c := newTestClient(server.URL)

		_, err := c.Forward(context.Background(), "Moda", "tr")
		assert.ErrorIs(t, err, errors.ErrGeocodeNoResult)
	})

	t.Run("malformed body", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{not json`)
		}))
		defer server.Close()

		c := newTestClient(server.URL)

		_, err := c.Forward(context.Background(), "Moda", "tr")
		assert.ErrorIs(t, err, errors.ErrGeocodeNoResult)
	})

	t.Run("unreachable server", func(t *testing.T) {
		c := newTestClient("http://127.0.0.1:1")

		_, err := c.Forward(context.Background(), "Moda", "tr")
		assert.ErrorIs(t, err, errors.ErrGeocodeNoResult)
	})
}

func TestClient_Reverse(t *testing.T) {
	t.Run("extracts street and zip components", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "40.987700,29.036000", r.URL.Query().Get("latlng"))

			w.Header().Set("Content-Type", "application/json")
			fmt.Fprint(w, `{
				"status": "OK",
				"results": [{
					"formatted_address": "Moda Cd. 12, 34710 Kadıköy/İstanbul, Türkiye",
					"geometry": {"location": {"lat": 40.9877, "lng": 29.036}},
					"address_components": [
						{"long_name": "12", "types": ["street_number"]},
						{"long_name": "Moda Caddesi", "types": ["route"]},
						{"long_name": "34710", "types": ["postal_code"]},
						{"long_name": "Kadıköy", "types": ["administrative_area_level_2", "political"]}
					]
				}]
			}`)
		}))
		defer server.Close()

		c := newTestClient(server.URL)

		addr, err := c.Reverse(context.Background(), 40.9877, 29.036)
		require.NoError(t, err)
		assert.Equal(t, "Moda Caddesi 12", addr.Street)
		assert.Equal(t, "34710", addr.Zip)
		assert.Equal(t, "Moda Cd. 12, 34710 Kadıköy/İstanbul, Türkiye", addr.Formatted)
	})

	t.Run("no candidates", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{"status": "ZERO_RESULTS", "results": []}`)
		}))
		defer server.Close()

		c := newTestClient(server.URL)

		_, err := c.Reverse(context.Background(), 0.0001, 0.0001)
		assert.ErrorIs(t, err, errors.ErrGeocodeNoResult)
	})
}
