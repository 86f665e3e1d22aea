package services

import (
	"context"
	"errors"
	"math"

	"github.com/rs/zerolog"
	"github.com/yigit/atauni/internal/app/models/dto"
	"github.com/yigit/atauni/internal/pkg/apperrors"
	"github.com/yigit/atauni/internal/pkg/weather"
)

// defaultPlace is shown when the reverse geocoder cannot name the location
const defaultPlace = "Konum"

// WMO weather codes to Turkish descriptions
var weatherDescriptions = map[int]string{
	0: "Açık", 1: "Çoğunlukla açık", 2: "Parçalı bulutlu", 3: "Bulutlu",
	45: "Sisli", 48: "Dondurucu sis",
	51: "Hafif çiseleyen", 53: "Çiseleyen", 55: "Yoğun çiseleyen",
	61: "Hafif yağmurlu", 63: "Yağmurlu", 65: "Şiddetli yağmurlu",
	71: "Hafif karlı", 73: "Karlı", 75: "Şiddetli karlı",
	77: "Dolu", 80: "Sağanak yağışlı", 81: "Orta sağanak", 82: "Şiddetli sağanak",
	85: "Kar yağışlı", 86: "Şiddetli kar yağışlı",
	95: "Fırtınalı", 96: "Fırtına ve dolu", 99: "Şiddetli fırtına",
}

// WMO weather codes to icon names
var weatherIcons = map[int]string{
	0: "01d", 1: "02d", 2: "03d", 3: "04d",
	45: "50d", 48: "50d",
	51: "09d", 53: "09d", 55: "09d",
	61: "10d", 63: "10d", 65: "10d",
	71: "13d", 73: "13d", 75: "13d", 77: "13d",
	80: "09d", 81: "09d", 82: "09d",
	85: "13d", 86: "13d",
	95: "11d", 96: "11d", 99: "11d",
}

// DescribeWeather returns the description and icon of a WMO code
func DescribeWeather(code int) (string, string) {
	desc, ok := weatherDescriptions[code]
	if !ok {
		desc = "Bilinmiyor"
	}
	icon, ok := weatherIcons[code]
	if !ok {
		icon = "01d"
	}
	return desc, icon
}

// WeatherProvider is the upstream the weather service reads from
type WeatherProvider interface {
	Current(ctx context.Context, lat, lon float64) (*weather.Current, error)
	ReverseGeocode(ctx context.Context, lat, lon float64) (*weather.Address, error)
}

// WeatherService reports current conditions for a coordinate
type WeatherService interface {
	Current(ctx context.Context, lat, lon float64) (*dto.WeatherResponse, error)
}

type weatherServiceImpl struct {
	provider WeatherProvider
	logger   zerolog.Logger
}

// NewWeatherService creates a new weather service
func NewWeatherService(provider WeatherProvider, logger zerolog.Logger) WeatherService {
	return &weatherServiceImpl{provider: provider, logger: logger}
}

// Current fetches the forecast; the place name is best effort and never fails the call
func (s *weatherServiceImpl) Current(ctx context.Context, lat, lon float64) (*dto.WeatherResponse, error) {
	cur, err := s.provider.Current(ctx, lat, lon)
	if err != nil {
		switch {
		case errors.Is(err, weather.ErrTimeout):
			return nil, apperrors.ErrUpstreamTimeout
		case errors.Is(err, weather.ErrUpstream):
			return nil, &apperrors.CustomError{Err: apperrors.ErrUpstream, Message: err.Error()}
		}
		return nil, err
	}

	city := defaultPlace
	country := ""
	if addr, err := s.provider.ReverseGeocode(ctx, lat, lon); err != nil {
		s.logger.Debug().Err(err).Msg("Reverse geocoding failed")
	} else {
		if place := addr.Place(); place != "" {
			city = place
		}
		country = addr.Country
	}

	desc, icon := DescribeWeather(cur.WeatherCode)
	return &dto.WeatherResponse{
		Temp:        int(math.Round(cur.Temperature)),
		FeelsLike:   int(math.Round(cur.ApparentTemperature)),
		Humidity:    cur.RelativeHumidity,
		Description: desc,
		Icon:        icon,
		City:        city,
		Country:     country,
	}, nil
}
