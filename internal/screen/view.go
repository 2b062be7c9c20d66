package screen

import (
	"fmt"
	"math"
	"strings"

	"github.com/i474232898/weather-screen/internal/weather"
)

// View is the rendered form of a State: what the screen draws, already
// formatted. Forecast sections are present only when the snapshot has a forecast.
type View struct {
	Phase      Phase `json:"phase"`
	Loading    bool  `json:"loading"`
	Refreshing bool  `json:"refreshing"`

	Search SearchView `json:"search"`

	Location   string     `json:"location,omitempty"`
	Country    string     `json:"country,omitempty"`
	Icon       IconView   `json:"icon"`
	Temp       string     `json:"temperature,omitempty"`
	FeelsLike  string     `json:"feelsLike,omitempty"`
	Condition  string     `json:"condition,omitempty"`
	Stats      []StatView `json:"stats"`
	Daily      []DayCard  `json:"daily,omitempty"`
	Hourly     []HourCard `json:"hourly,omitempty"`
	UpdatedAt  string     `json:"lastUpdated,omitempty"`
	Suggestion []string   `json:"suggestions"`

	Error  string `json:"error,omitempty"`
	Notice string `json:"notice,omitempty"`
}

type SearchView struct {
	Open      bool        `json:"open"`
	Searching bool        `json:"searching"`
	Query     string      `json:"query"`
	Results   []ResultRow `json:"results"`
}

type ResultRow struct {
	Key   string           `json:"key"`
	Label string           `json:"label"`
	Value weather.Location `json:"value"`
}

type IconView struct {
	Name  weather.IconName `json:"name"`
	Glyph string           `json:"glyph"`
}

type StatView struct {
	Icon  IconView `json:"icon"`
	Label string   `json:"label"`
	Value string   `json:"value"`
}

type DayCard struct {
	Date    string   `json:"date"`
	Weekday string   `json:"weekday"`
	Icon    IconView `json:"icon"`
	Temp    string   `json:"temperature"`
	Min     string   `json:"min"`
	Max     string   `json:"max"`
	Rain    string   `json:"chanceOfRain"`
}

type HourCard struct {
	Label string   `json:"label"`
	Icon  IconView `json:"icon"`
	Temp  string   `json:"temperature"`
}

func icon(name weather.IconName) IconView {
	return IconView{Name: name, Glyph: weather.Glyph(name)}
}

func degrees(v float64) string {
	return fmt.Sprintf("%d°", int(math.Round(v)))
}

// Render turns a state snapshot into a View.
func Render(s State) View {
	v := View{
		Phase:      s.Phase,
		Loading:    s.Loading,
		Refreshing: s.Refreshing,
		Search: SearchView{
			Open:      s.SearchOpen,
			Searching: s.Searching,
			Query:     s.Query,
			Results:   make([]ResultRow, 0, len(s.Results)),
		},
		Icon:       icon(weather.IconDayCloudy),
		Stats:      []StatView{},
		Suggestion: s.Suggestions,
		Error:      s.Err,
		Notice:     s.Notice,
	}
	if v.Suggestion == nil {
		v.Suggestion = []string{}
	}

	for _, loc := range s.Results {
		v.Search.Results = append(v.Search.Results, ResultRow{
			Key:   loc.Key(),
			Label: loc.Label(),
			Value: loc,
		})
	}

	if !s.Weather.Valid() {
		if s.Location != nil {
			v.Location, v.Country = s.Location.Name, s.Location.Country
		}
		return v
	}

	w := s.Weather
	cur := w.Current
	isDay := cur.IsDay == 1

	v.Location = w.Location.Name
	v.Country = w.Location.Country
	if s.Location != nil && s.Location.Name != "" {
		v.Location, v.Country = s.Location.Name, s.Location.Country
	}
	v.Icon = icon(weather.ConditionIcon(cur.Condition, isDay))
	v.Temp = degrees(cur.TempC)
	v.FeelsLike = degrees(cur.FeelsLikeC)
	v.Condition = strings.TrimSpace(cur.Condition.Text)
	v.UpdatedAt = cur.LastUpdated

	v.Stats = append(v.Stats,
		StatView{Icon: icon(weather.IconWindy), Label: "wind", Value: fmt.Sprintf("%dkm", int(math.Round(cur.WindKph)))},
		StatView{Icon: icon(weather.IconDayRain), Label: "humidity", Value: fmt.Sprintf("%d%%", cur.Humidity)},
	)

	today, ok := w.Today()
	if !ok {
		return v
	}
	if today.Astro != nil && today.Astro.Sunrise != "" {
		v.Stats = append(v.Stats, StatView{
			Icon:  icon(weather.IconDaySunny),
			Label: "sunrise",
			Value: strings.ReplaceAll(today.Astro.Sunrise, " ", ""),
		})
	}

	for _, d := range w.Forecast.Days {
		v.Daily = append(v.Daily, DayCard{
			Date:    d.Date,
			Weekday: weather.DayOfWeek(d.Date),
			Icon:    icon(weather.ConditionIcon(d.Day.Condition, true)),
			Temp:    degrees(d.Day.AvgTempC),
			Min:     degrees(d.Day.MinTempC),
			Max:     degrees(d.Day.MaxTempC),
			Rain:    fmt.Sprintf("%d%%", d.Day.DailyChanceOfRain),
		})
	}

	for _, h := range today.Hours {
		v.Hourly = append(v.Hourly, HourCard{
			Label: weather.FormatHour(h.Time),
			Icon:  icon(weather.ConditionIcon(h.Condition, h.IsDay == 1)),
			Temp:  degrees(h.TempC),
		})
	}
	return v
}
