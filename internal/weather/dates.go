package weather

import (
	"time"
)

// TimeOfDay is the bucket used in suggestion prompts.
type TimeOfDay string

const (
	Morning   TimeOfDay = "morning"
	Afternoon TimeOfDay = "afternoon"
	Evening   TimeOfDay = "evening"
	Night     TimeOfDay = "night"
)

// TimeOfDayAt buckets the local hour of t.
// morning 05-11, afternoon 12-16, evening 17-20, night otherwise.
func TimeOfDayAt(t time.Time) TimeOfDay {
	switch h := t.Hour(); {
	case h >= 5 && h < 12:
		return Morning
	case h >= 12 && h < 17:
		return Afternoon
	case h >= 17 && h < 21:
		return Evening
	default:
		return Night
	}
}

// provider layouts; a bare date is read as a local calendar day
var dateLayouts = []string{
	time.DateOnly,
	"2006-01-02 15:04",
	time.RFC3339,
}

func parseDate(s string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// DayOfWeek returns the weekday name ("Sunday") of an ISO-8601 date, or ""
// when the input cannot be parsed.
func DayOfWeek(iso string) string {
	t, ok := parseDate(iso)
	if !ok {
		return ""
	}
	return t.Weekday().String()
}

// FormatHour renders a provider local time ("2024-01-07 15:00") as "3PM".
// Unparseable input is returned unchanged.
func FormatHour(localtime string) string {
	t, ok := parseDate(localtime)
	if !ok {
		return localtime
	}
	return t.Format("3PM")
}
