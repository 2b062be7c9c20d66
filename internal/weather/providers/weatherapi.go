package providers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/i474232898/weather-screen/internal/metrics"
	"github.com/i474232898/weather-screen/internal/weather"
)

const (
	defaultBaseURL = "https://api.weatherapi.com/v1"

	// urlDefaultDays applies when the URL builder is handed no day count.
	urlDefaultDays = 1
	// fetchDefaultDays applies when FetchForecast is called without one.
	fetchDefaultDays = 7
)

// WeatherAPIClient implements weather.Client for WeatherAPI.com.
type WeatherAPIClient struct {
	name    string
	apiKey  string
	baseURL string
	client  *http.Client
	logger  *slog.Logger
	metrics *metrics.Collector
}

// Option customizes a WeatherAPIClient.
type Option func(*WeatherAPIClient)

// WithBaseURL points the client at another host, e.g. a test server.
func WithBaseURL(u string) Option {
	return func(c *WeatherAPIClient) { c.baseURL = strings.TrimRight(u, "/") }
}

func WithLogger(l *slog.Logger) Option {
	return func(c *WeatherAPIClient) { c.logger = l }
}

func WithMetrics(m *metrics.Collector) Option {
	return func(c *WeatherAPIClient) { c.metrics = m }
}

func NewWeatherAPIClient(client *http.Client, apiKey string, opts ...Option) *WeatherAPIClient {
	c := &WeatherAPIClient{
		name:    "weatherapi",
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		client:  client,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *WeatherAPIClient) Name() string {
	return c.name
}

// forecastURL builds the forecast.json URL. city may be a name or "lat,lon".
func (c *WeatherAPIClient) forecastURL(city string, days int) string {
	if days <= 0 {
		days = urlDefaultDays
	}
	values := url.Values{}
	values.Set("key", c.apiKey)
	values.Set("q", city)
	values.Set("days", strconv.Itoa(days))
	values.Set("aqi", "no")
	values.Set("alerts", "no")
	return fmt.Sprintf("%s/forecast.json?%s", c.baseURL, values.Encode())
}

func (c *WeatherAPIClient) searchURL(query string) string {
	values := url.Values{}
	values.Set("key", c.apiKey)
	values.Set("q", query)
	return fmt.Sprintf("%s/search.json?%s", c.baseURL, values.Encode())
}

// FetchForecast returns current conditions and a days-long forecast for city.
// On any failure the details are logged and a nil snapshot is returned with
// the error.
func (c *WeatherAPIClient) FetchForecast(ctx context.Context, city string, days int) (*weather.Snapshot, error) {
	if days <= 0 {
		days = fetchDefaultDays
	}

	snap, err := c.fetchForecast(ctx, city, days)
	if err != nil {
		c.logFailure("forecast", city, err)
		return nil, err
	}
	return snap, nil
}

func (c *WeatherAPIClient) fetchForecast(ctx context.Context, city string, days int) (snap *weather.Snapshot, err error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("weatherapi: %w", ErrNoAPIKey)
	}

	start := time.Now()
	defer func() { c.metrics.RecordOutbound("forecast", start, err) }()

	body, err := doGet(ctx, c.client, c.forecastURL(city, days))
	if err != nil {
		return nil, err
	}

	var payload weather.Snapshot
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("decode forecast: %w", err)
	}
	if !payload.Valid() {
		return nil, errors.New("forecast payload is missing current or location")
	}
	return &payload, nil
}

type searchResult struct {
	ID      int64   `json:"id"`
	Name    string  `json:"name"`
	Region  string  `json:"region"`
	Country string  `json:"country"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
}

// SearchLocations returns the provider's matches for a partial place name.
func (c *WeatherAPIClient) SearchLocations(ctx context.Context, query string) ([]weather.Location, error) {
	locs, err := c.searchLocations(ctx, query)
	if err != nil {
		c.logFailure("search", query, err)
		return nil, err
	}
	return locs, nil
}

func (c *WeatherAPIClient) searchLocations(ctx context.Context, query string) (locs []weather.Location, err error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("weatherapi: %w", ErrNoAPIKey)
	}

	start := time.Now()
	defer func() { c.metrics.RecordOutbound("search", start, err) }()

	body, err := doGet(ctx, c.client, c.searchURL(query))
	if err != nil {
		return nil, err
	}

	var payload []searchResult
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("decode search: %w", err)
	}

	locs = make([]weather.Location, 0, len(payload))
	for _, r := range payload {
		lat, lon := r.Lat, r.Lon
		loc := weather.Location{
			Name:    r.Name,
			Region:  r.Region,
			Country: r.Country,
			Lat:     &lat,
			Lon:     &lon,
		}
		if r.ID != 0 {
			loc.ID = strconv.FormatInt(r.ID, 10)
		} else {
			loc.ID = r.Name + "-" + r.Country
		}
		locs = append(locs, loc)
	}
	return locs, nil
}

func (c *WeatherAPIClient) logFailure(endpoint, q string, err error) {
	attrs := []any{
		"provider", c.name,
		"endpoint", endpoint,
		"q", q,
		"err", c.redact(err),
	}
	var se *StatusError
	if errors.As(err, &se) {
		attrs = append(attrs, "status", se.StatusCode, "body", se.Body)
	}
	c.logger.Error("weather api call failed", attrs...)
}

// redact keeps the API key out of logs; transport errors embed the full URL.
func (c *WeatherAPIClient) redact(err error) string {
	msg := err.Error()
	if c.apiKey == "" {
		return msg
	}
	return strings.ReplaceAll(msg, c.apiKey, "REDACTED")
}
