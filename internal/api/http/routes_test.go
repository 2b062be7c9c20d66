package httpapi

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/i474232898/weather-screen/internal/device"
	"github.com/i474232898/weather-screen/internal/metrics"
	"github.com/i474232898/weather-screen/internal/screen"
	"github.com/i474232898/weather-screen/internal/store"
	"github.com/i474232898/weather-screen/internal/weather"
)

type stubWeather struct {
	mu      sync.Mutex
	queries []string
}

func (s *stubWeather) FetchForecast(ctx context.Context, city string, days int) (*weather.Snapshot, error) {
	s.mu.Lock()
	s.queries = append(s.queries, city)
	s.mu.Unlock()
	return &weather.Snapshot{
		Current:  &weather.Current{TempC: 18, IsDay: 1, Condition: weather.Condition{Code: 1000, Text: "Sunny"}},
		Location: &weather.Place{Name: city, Country: "Somewhere"},
	}, nil
}

func (s *stubWeather) SearchLocations(ctx context.Context, query string) ([]weather.Location, error) {
	return nil, nil
}

func newTestApp(t *testing.T) (*fiber.App, *stubWeather, *prometheus.Registry) {
	t.Helper()
	reg := prometheus.NewRegistry()
	w := &stubWeather{}
	ctrl := screen.New(screen.Config{DefaultCity: "London", FallbackCity: "New York", ForecastDays: 7}, screen.Deps{
		Weather: w,
		Locator: device.StaticLocator{Permission: device.PermissionDenied},
		Store:   store.NewMemoryStore(),
		Logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		Metrics: metrics.NewCollector("weather_screen", reg),
	})
	t.Cleanup(ctrl.Close)

	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
	RegisterRoutes(app, ctrl)
	RegisterMetrics(app, reg)
	return app, w, reg
}

func do(t *testing.T, app *fiber.App, method, path, body string) (int, screen.View) {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer resp.Body.Close()

	var v screen.View
	if resp.StatusCode == http.StatusOK {
		if err := json.NewDecoder(resp.Body).Decode(&v); err != nil {
			t.Fatalf("decode view: %v", err)
		}
	}
	return resp.StatusCode, v
}

func TestScreen_Initial(t *testing.T) {
	app, _, _ := newTestApp(t)

	code, v := do(t, app, http.MethodGet, "/api/v1/screen", "")
	if code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, code)
	}
	if v.Phase != screen.PhaseIdle || v.Temp != "" {
		t.Errorf("unexpected initial view: %+v", v)
	}
}

func TestSearch_Validation(t *testing.T) {
	app, _, _ := newTestApp(t)

	tests := []struct {
		name string
		body string
		want int
	}{
		{name: "malformed", body: `{"text":`, want: http.StatusBadRequest},
		{name: "too long", body: `{"text":"` + strings.Repeat("a", 101) + `"}`, want: http.StatusBadRequest},
		{name: "short", body: `{"text":"Lo"}`, want: http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, v := do(t, app, http.MethodPost, "/api/v1/search", tt.body)
			if code != tt.want {
				t.Fatalf("expected status %d, got %d", tt.want, code)
			}
			if code == http.StatusOK && v.Search.Query != "Lo" {
				t.Errorf("query = %q", v.Search.Query)
			}
		})
	}
}

func TestSearch_Toggle(t *testing.T) {
	app, _, _ := newTestApp(t)

	_, v := do(t, app, http.MethodPost, "/api/v1/search/toggle", "")
	if !v.Search.Open {
		t.Error("search should be open after the first toggle")
	}
	_, v = do(t, app, http.MethodPost, "/api/v1/search/toggle", "")
	if v.Search.Open {
		t.Error("search should be closed after the second toggle")
	}
}

func TestSelect(t *testing.T) {
	app, w, _ := newTestApp(t)

	tests := []struct {
		name string
		body string
		want int
	}{
		{name: "missing name", body: `{"country":"France"}`, want: http.StatusBadRequest},
		{name: "latitude out of range", body: `{"name":"Paris","lat":200,"lon":2.3}`, want: http.StatusBadRequest},
		{name: "latitude without longitude", body: `{"name":"Paris","lat":48.8}`, want: http.StatusBadRequest},
		{name: "by name", body: `{"id":"803267","name":"Paris","country":"France"}`, want: http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, v := do(t, app, http.MethodPost, "/api/v1/select", tt.body)
			if code != tt.want {
				t.Fatalf("expected status %d, got %d", tt.want, code)
			}
			if code != http.StatusOK {
				return
			}
			if v.Location != "Paris" || v.Country != "France" || v.Phase != screen.PhaseLoaded {
				t.Errorf("view = %+v", v)
			}
			if v.Icon.Name != weather.IconDaySunny || v.Temp != "18°" {
				t.Errorf("icon/temp = %q/%q", v.Icon.Name, v.Temp)
			}
		})
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if len(w.queries) != 1 || w.queries[0] != "Paris" {
		t.Errorf("forecast queries = %q, invalid bodies must not reach the client", w.queries)
	}
}

func TestRefresh_DefaultCity(t *testing.T) {
	app, _, _ := newTestApp(t)

	code, v := do(t, app, http.MethodPost, "/api/v1/refresh", "")
	if code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, code)
	}
	if v.Location != "London" || v.Refreshing {
		t.Errorf("view = %+v", v)
	}
}

func TestMetrics(t *testing.T) {
	app, _, _ := newTestApp(t)
	do(t, app, http.MethodPost, "/api/v1/refresh", "")

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}
	if !strings.Contains(string(body), `weather_screen_location_flows_total{trigger="refresh"} 1`) {
		t.Errorf("flow counter missing from exposition:\n%s", body)
	}
}

func TestErrorHandler_JSON(t *testing.T) {
	app, _, _ := newTestApp(t)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/nope", nil))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected status %d, got %d", http.StatusNotFound, resp.StatusCode)
	}
	var body struct {
		Error   bool   `json:"error"`
		Message string `json:"message"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil || !body.Error {
		t.Errorf("body = %+v (%v)", body, err)
	}
}
