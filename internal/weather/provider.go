package weather

import (
	"context"
)

// Client abstracts the weather provider (WeatherAPI.com in production).
// A nil snapshot or a non-nil error both mean "no data available".
type Client interface {
	FetchForecast(ctx context.Context, city string, days int) (*Snapshot, error)
	SearchLocations(ctx context.Context, query string) ([]Location, error)
}

// Suggester produces short advice lines for the current weather.
// An empty slice means no suggestion is available; it is not an error.
type Suggester interface {
	GetSuggestion(ctx context.Context, req SuggestionRequest) []string
}
