package weather

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCurrent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "39.9", r.URL.Query().Get("latitude"))
		assert.Equal(t, "41.27", r.URL.Query().Get("longitude"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"current":{"temperature_2m":11.6,"relative_humidity_2m":64,"apparent_temperature":9.4,"weather_code":2}}`))
	}))
	defer srv.Close()

	c := NewClient(Config{ForecastURL: srv.URL, GeocodeURL: srv.URL})
	cur, err := c.Current(context.Background(), 39.9, 41.27)
	require.NoError(t, err)

	assert.Equal(t, 11.6, cur.Temperature)
	assert.Equal(t, 64.0, cur.RelativeHumidity)
	assert.Equal(t, 2, cur.WeatherCode)
}

func TestCurrentUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := NewClient(Config{ForecastURL: srv.URL}).Current(context.Background(), 1, 2)
	assert.ErrorIs(t, err, ErrUpstream)
}

func TestCurrentTimeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	c := NewClient(Config{ForecastURL: srv.URL, Timeout: 50 * time.Millisecond})
	_, err := c.Current(context.Background(), 1, 2)
	assert.ErrorIs(t, err, ErrTimeout)
}

func TestReverseGeocodePlaceFallback(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"address":{"town":"Palandöken","state":"Erzurum","country":"Türkiye"}}`))
	}))
	defer srv.Close()

	addr, err := NewClient(Config{GeocodeURL: srv.URL}).ReverseGeocode(context.Background(), 39.9, 41.27)
	require.NoError(t, err)
	assert.Equal(t, "Palandöken", addr.Place())
	assert.Equal(t, "", Address{}.Place())
}
