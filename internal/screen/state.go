package screen

import (
	"slices"
	"time"

	"github.com/i474232898/weather-screen/internal/weather"
)

// Phase is the weather-loading state of the screen.
type Phase string

const (
	PhaseIdle     Phase = "idle"
	PhaseLocating Phase = "locating"
	PhaseLoaded   Phase = "loaded"
)

// Messages stored in the error slot.
const (
	ErrMsgWeather  = "Unable to load weather data"
	ErrMsgSearch   = "Unable to search locations"
	ErrMsgLocation = "Unable to determine your location"
)

// NoticePermissionDenied is shown once when location access is refused.
const NoticePermissionDenied = "Location permission denied. Showing weather for the default city instead."

// State is everything the screen renders. The controller owns the only
// mutable copy; callers get snapshots from Controller.State.
type State struct {
	Phase      Phase `json:"phase"`
	Loading    bool  `json:"loading"`
	Refreshing bool  `json:"refreshing"`

	SearchOpen bool               `json:"searchOpen"`
	Searching  bool               `json:"searching"`
	Query      string             `json:"query"`
	Results    []weather.Location `json:"results"`

	Location    *weather.Location `json:"location,omitempty"`
	Weather     *weather.Snapshot `json:"weather,omitempty"`
	Suggestions []string          `json:"suggestions"`

	Err    string `json:"error,omitempty"`
	Notice string `json:"notice,omitempty"`

	Flow      uint64    `json:"flow"`
	UpdatedAt time.Time `json:"updatedAt"`

	// flow that wrote Err; a later successful flow clears it
	errFlow uint64
}

// clone copies the slices so callers can't reach into controller state.
// Snapshots are replaced wholesale and never mutated, so sharing them is safe.
func (s State) clone() State {
	s.Results = slices.Clone(s.Results)
	s.Suggestions = slices.Clone(s.Suggestions)
	if s.Location != nil {
		loc := *s.Location
		s.Location = &loc
	}
	return s
}
