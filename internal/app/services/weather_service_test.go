package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/atauni/internal/pkg/apperrors"
	"github.com/yigit/atauni/internal/pkg/weather"
)

type fakeProvider struct {
	current    *weather.Current
	currentErr error
	address    *weather.Address
	geocodeErr error
}

func (p *fakeProvider) Current(context.Context, float64, float64) (*weather.Current, error) {
	return p.current, p.currentErr
}

func (p *fakeProvider) ReverseGeocode(context.Context, float64, float64) (*weather.Address, error) {
	return p.address, p.geocodeErr
}

func TestWeatherCurrent(t *testing.T) {
	provider := &fakeProvider{
		current: &weather.Current{Temperature: 11.6, ApparentTemperature: 9.4, RelativeHumidity: 64, WeatherCode: 2},
		address: &weather.Address{City: "Erzurum", Country: "Türkiye"},
	}
	svc := NewWeatherService(provider, zerolog.New(io.Discard))

	resp, err := svc.Current(context.Background(), 39.9, 41.27)
	require.NoError(t, err)
	assert.Equal(t, 12, resp.Temp)
	assert.Equal(t, 9, resp.FeelsLike)
	assert.Equal(t, 64.0, resp.Humidity)
	assert.Equal(t, "Parçalı bulutlu", resp.Description)
	assert.Equal(t, "03d", resp.Icon)
	assert.Equal(t, "Erzurum", resp.City)
	assert.Equal(t, "Türkiye", resp.Country)
}

func TestWeatherGeocodeFailureFallsBack(t *testing.T) {
	provider := &fakeProvider{
		current:    &weather.Current{Temperature: -3.2, WeatherCode: 42},
		geocodeErr: errors.New("boom"),
	}
	svc := NewWeatherService(provider, zerolog.New(io.Discard))

	resp, err := svc.Current(context.Background(), 39.9, 41.27)
	require.NoError(t, err)
	assert.Equal(t, "Konum", resp.City)
	assert.Equal(t, -3, resp.Temp)
	assert.Equal(t, "Bilinmiyor", resp.Description)
	assert.Equal(t, "01d", resp.Icon)
}

func TestWeatherUpstreamErrors(t *testing.T) {
	cases := []struct {
		err  error
		want error
	}{
		{err: fmt.Errorf("%w: context deadline exceeded", weather.ErrTimeout), want: apperrors.ErrUpstreamTimeout},
		{err: fmt.Errorf("%w: status 503", weather.ErrUpstream), want: apperrors.ErrUpstream},
	}
	for _, tc := range cases {
		svc := NewWeatherService(&fakeProvider{currentErr: tc.err}, zerolog.New(io.Discard))
		_, err := svc.Current(context.Background(), 0, 0)
		assert.ErrorIs(t, err, tc.want)
	}
}

func TestDescribeWeather(t *testing.T) {
	desc, icon := DescribeWeather(95)
	assert.Equal(t, "Fırtınalı", desc)
	assert.Equal(t, "11d", icon)
}
