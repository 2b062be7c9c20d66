package weather

import (
	"fmt"
	"strings"
)

// Location is a place the user can pick from search results or that was
// resolved from the device. ID is only unique enough to key a list.
type Location struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Region  string   `json:"region,omitempty"`
	Country string   `json:"country"`
	Lat     *float64 `json:"lat,omitempty"`
	Lon     *float64 `json:"lon,omitempty"`
}

// Key returns the list key for the location, name-country when no id is known.
func (l Location) Key() string {
	if l.ID != "" {
		return l.ID
	}
	return l.Name + "-" + l.Country
}

// Query returns the provider query string: "lat,lon" when coordinates are
// known, otherwise the plain name.
func (l Location) Query() string {
	if l.Lat != nil && l.Lon != nil {
		return fmt.Sprintf("%f,%f", *l.Lat, *l.Lon)
	}
	return l.Name
}

// Label is the "Name, Country" line shown on the screen.
func (l Location) Label() string {
	if l.Country == "" {
		return l.Name
	}
	return l.Name + ", " + l.Country
}

// Condition is the provider condition block attached to current, daily and hourly data.
type Condition struct {
	Code int    `json:"code"`
	Text string `json:"text"`
	Icon string `json:"icon"`
}

// Current holds the conditions right now.
type Current struct {
	LastUpdated      string    `json:"last_updated"`
	LastUpdatedEpoch int64     `json:"last_updated_epoch"`
	TempC            float64   `json:"temp_c"`
	TempF            float64   `json:"temp_f"`
	FeelsLikeC       float64   `json:"feelslike_c"`
	FeelsLikeF       float64   `json:"feelslike_f"`
	IsDay            int       `json:"is_day"`
	Condition        Condition `json:"condition"`
	WindKph          float64   `json:"wind_kph"`
	WindMph          float64   `json:"wind_mph"`
	WindDegree       int       `json:"wind_degree"`
	WindDir          string    `json:"wind_dir"`
	GustKph          float64   `json:"gust_kph"`
	GustMph          float64   `json:"gust_mph"`
	PressureMb       float64   `json:"pressure_mb"`
	PressureIn       float64   `json:"pressure_in"`
	PrecipMm         float64   `json:"precip_mm"`
	PrecipIn         float64   `json:"precip_in"`
	Humidity         int       `json:"humidity"`
	Cloud            int       `json:"cloud"`
	VisKm            float64   `json:"vis_km"`
	VisMiles         float64   `json:"vis_miles"`
	UV               float64   `json:"uv"`
}

// Place is the provider's description of the location a forecast was made for.
type Place struct {
	Name           string  `json:"name"`
	Region         string  `json:"region"`
	Country        string  `json:"country"`
	Lat            float64 `json:"lat"`
	Lon            float64 `json:"lon"`
	TzID           string  `json:"tz_id"`
	Localtime      string  `json:"localtime"`
	LocaltimeEpoch int64   `json:"localtime_epoch"`
}

// Location converts the provider place into a selectable Location.
func (p Place) Location() Location {
	lat, lon := p.Lat, p.Lon
	return Location{
		ID:      p.Name + "-" + p.Country,
		Name:    p.Name,
		Region:  p.Region,
		Country: p.Country,
		Lat:     &lat,
		Lon:     &lon,
	}
}

// Day is the aggregate of one forecast day.
type Day struct {
	MaxTempC          float64   `json:"maxtemp_c"`
	MaxTempF          float64   `json:"maxtemp_f"`
	MinTempC          float64   `json:"mintemp_c"`
	MinTempF          float64   `json:"mintemp_f"`
	AvgTempC          float64   `json:"avgtemp_c"`
	AvgTempF          float64   `json:"avgtemp_f"`
	MaxWindKph        float64   `json:"maxwind_kph"`
	MaxWindMph        float64   `json:"maxwind_mph"`
	TotalPrecipMm     float64   `json:"totalprecip_mm"`
	TotalPrecipIn     float64   `json:"totalprecip_in"`
	TotalSnowCm       float64   `json:"totalsnow_cm"`
	AvgVisKm          float64   `json:"avgvis_km"`
	AvgVisMiles       float64   `json:"avgvis_miles"`
	AvgHumidity       float64   `json:"avghumidity"`
	DailyWillItRain   int       `json:"daily_will_it_rain"`
	DailyChanceOfRain int       `json:"daily_chance_of_rain"`
	DailyWillItSnow   int       `json:"daily_will_it_snow"`
	DailyChanceOfSnow int       `json:"daily_chance_of_snow"`
	Condition         Condition `json:"condition"`
	UV                float64   `json:"uv"`
}

// Astro holds sun and moon times for a forecast day.
type Astro struct {
	Sunrise          string `json:"sunrise"`
	Sunset           string `json:"sunset"`
	Moonrise         string `json:"moonrise"`
	Moonset          string `json:"moonset"`
	MoonPhase        string `json:"moon_phase"`
	MoonIllumination string `json:"moon_illumination"`
}

// Hour is one hourly entry of a forecast day.
type Hour struct {
	Time         string    `json:"time"`
	TempC        float64   `json:"temp_c"`
	TempF        float64   `json:"temp_f"`
	IsDay        int       `json:"is_day"`
	Condition    Condition `json:"condition"`
	WindKph      float64   `json:"wind_kph"`
	WindMph      float64   `json:"wind_mph"`
	WindDegree   int       `json:"wind_degree"`
	WindDir      string    `json:"wind_dir"`
	PressureMb   float64   `json:"pressure_mb"`
	PressureIn   float64   `json:"pressure_in"`
	PrecipMm     float64   `json:"precip_mm"`
	PrecipIn     float64   `json:"precip_in"`
	Humidity     int       `json:"humidity"`
	Cloud        int       `json:"cloud"`
	FeelsLikeC   float64   `json:"feelslike_c"`
	FeelsLikeF   float64   `json:"feelslike_f"`
	WindchillC   float64   `json:"windchill_c"`
	WindchillF   float64   `json:"windchill_f"`
	HeatindexC   float64   `json:"heatindex_c"`
	HeatindexF   float64   `json:"heatindex_f"`
	DewpointC    float64   `json:"dewpoint_c"`
	DewpointF    float64   `json:"dewpoint_f"`
	WillItRain   int       `json:"will_it_rain"`
	ChanceOfRain int       `json:"chance_of_rain"`
	WillItSnow   int       `json:"will_it_snow"`
	ChanceOfSnow int       `json:"chance_of_snow"`
	VisKm        float64   `json:"vis_km"`
	VisMiles     float64   `json:"vis_miles"`
	GustKph      float64   `json:"gust_kph"`
	GustMph      float64   `json:"gust_mph"`
	UV           float64   `json:"uv"`
}

// ForecastDay is one calendar day of the forecast.
type ForecastDay struct {
	Date  string `json:"date"`
	Day   Day    `json:"day"`
	Astro *Astro `json:"astro,omitempty"`
	Hours []Hour `json:"hour,omitempty"`
}

// Forecast wraps the daily entries the way the provider nests them.
type Forecast struct {
	Days []ForecastDay `json:"forecastday"`
}

// Snapshot is one complete forecast.json answer. It is replaced wholesale on
// every successful fetch and never merged.
type Snapshot struct {
	Current  *Current  `json:"current"`
	Location *Place    `json:"location"`
	Forecast *Forecast `json:"forecast,omitempty"`
}

// Valid reports whether the snapshot can be displayed.
func (s *Snapshot) Valid() bool {
	return s != nil && s.Current != nil && s.Location != nil
}

// Today returns the first forecast day, if any.
func (s *Snapshot) Today() (ForecastDay, bool) {
	if s == nil || s.Forecast == nil || len(s.Forecast.Days) == 0 {
		return ForecastDay{}, false
	}
	return s.Forecast.Days[0], true
}

// SuggestionRequest is the input of one suggestion prompt. It is never persisted.
type SuggestionRequest struct {
	Location  string
	TempC     float64
	Condition string
	TimeOfDay TimeOfDay
}

// NewSuggestionRequest builds a request from a displayable snapshot.
func NewSuggestionRequest(s *Snapshot, tod TimeOfDay) SuggestionRequest {
	return SuggestionRequest{
		Location:  s.Location.Name,
		TempC:     s.Current.TempC,
		Condition: strings.TrimSpace(s.Current.Condition.Text),
		TimeOfDay: tod,
	}
}
