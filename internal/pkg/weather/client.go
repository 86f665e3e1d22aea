// Package weather talks to the Open-Meteo forecast API and a reverse geocoder.
package weather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
)

// Client errors
var (
	ErrUpstream = errors.New("weather upstream error")
	ErrTimeout  = errors.New("weather upstream timeout")
)

// Config holds the upstream endpoints and timeouts
type Config struct {
	ForecastURL    string
	GeocodeURL     string
	Timeout        time.Duration
	GeocodeTimeout time.Duration
}

// Current holds the current conditions reported by the forecast API
type Current struct {
	Temperature         float64 `json:"temperature_2m"`
	RelativeHumidity    float64 `json:"relative_humidity_2m"`
	ApparentTemperature float64 `json:"apparent_temperature"`
	WeatherCode         int     `json:"weather_code"`
}

type forecastResponse struct {
	Current *Current `json:"current"`
}

// Address is the subset of a reverse geocoding result used to name a place
type Address struct {
	City        string `json:"city"`
	Town        string `json:"town"`
	County      string `json:"county"`
	State       string `json:"state"`
	Country     string `json:"country"`
	CountryCode string `json:"country_code"`
}

// Place returns the most specific populated name, or "" when none is set.
func (a Address) Place() string {
	for _, name := range []string{a.City, a.Town, a.County, a.State} {
		if name != "" {
			return name
		}
	}
	return ""
}

type geocodeResponse struct {
	Address Address `json:"address"`
}

// Client fetches weather data over HTTP
type Client struct {
	http *resty.Client
	cfg  Config
}

// NewClient creates a weather client
func NewClient(cfg Config) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.GeocodeTimeout <= 0 {
		cfg.GeocodeTimeout = 5 * time.Second
	}
	return &Client{
		http: resty.New().SetHeader("Accept", "application/json"),
		cfg:  cfg,
	}
}

func coord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Current fetches the current conditions at lat/lon.
// Non-2xx answers yield ErrUpstream, deadline overruns yield ErrTimeout.
func (c *Client) Current(ctx context.Context, lat, lon float64) (*Current, error) {
	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"latitude":  coord(lat),
			"longitude": coord(lon),
			"current":   "temperature_2m,relative_humidity_2m,apparent_temperature,weather_code",
			"timezone":  "auto",
		}).
		Get(c.cfg.ForecastURL)
	if err != nil {
		if isTimeout(err) {
			return nil, ErrTimeout
		}
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("%w: forecast returned status %d", ErrUpstream, resp.StatusCode())
	}

	var body forecastResponse
	if err := json.Unmarshal(resp.Body(), &body); err != nil {
		return nil, fmt.Errorf("%w: invalid forecast payload: %v", ErrUpstream, err)
	}
	if body.Current == nil {
		return nil, fmt.Errorf("%w: forecast payload has no current block", ErrUpstream)
	}
	return body.Current, nil
}

// ReverseGeocode resolves lat/lon to an address
func (c *Client) ReverseGeocode(ctx context.Context, lat, lon float64) (*Address, error) {
	ctx, cancel := context.WithTimeout(ctx, c.cfg.GeocodeTimeout)
	defer cancel()

	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"lat": coord(lat),
			"lon": coord(lon),
		}).
		Get(c.cfg.GeocodeURL)
	if err != nil {
		if isTimeout(err) {
			return nil, ErrTimeout
		}
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("%w: geocode returned status %d", ErrUpstream, resp.StatusCode())
	}

	var body geocodeResponse
	if err := json.Unmarshal(resp.Body(), &body); err != nil {
		return nil, fmt.Errorf("%w: invalid geocode payload: %v", ErrUpstream, err)
	}
	return &body.Address, nil
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
