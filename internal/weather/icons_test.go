package weather

import "testing"

func TestCodeToIcon_Documented(t *testing.T) {
	tests := []struct {
		code int
		want IconName
	}{
		{1000, "day-sunny"},
		{1003, "day-cloudy"},
		{1063, "day-rain"},
		{1087, "day-thunderstorm"},
		{1225, "snow-wind"},
	}

	for _, tt := range tests {
		if got := CodeToIcon(tt.code); got != tt.want {
			t.Errorf("CodeToIcon(%d) = %q, want %q", tt.code, got, tt.want)
		}
	}
}

func TestCodeToIcon_Fallback(t *testing.T) {
	for _, code := range []int{0, -1, 999, 1001, 5000} {
		if got := CodeToIcon(code); got != IconDayCloudy {
			t.Errorf("CodeToIcon(%d) = %q, want fallback %q", code, got, IconDayCloudy)
		}
	}
}

func TestCodeToIcon_AllDrawable(t *testing.T) {
	for code, icon := range conditionIcons {
		if !HasGlyph(icon) {
			t.Errorf("code %d maps to %q which has no glyph", code, icon)
		}
		if night := IconFor(code, false); !HasGlyph(night) {
			t.Errorf("code %d night icon %q has no glyph", code, night)
		}
	}
}

func TestIconFor_Night(t *testing.T) {
	tests := []struct {
		code int
		want IconName
	}{
		{1000, "night-clear"},
		{1003, "night-alt-cloudy"},
		{1063, "night-alt-rain"},
		{1006, "cloudy"},
		{1030, "fog"},
	}

	for _, tt := range tests {
		if got := IconFor(tt.code, false); got != tt.want {
			t.Errorf("IconFor(%d, false) = %q, want %q", tt.code, got, tt.want)
		}
	}
}

func TestGlyph(t *testing.T) {
	if got := Glyph("day-sunny"); got != "weather-sunny" {
		t.Errorf("Glyph(day-sunny) = %q", got)
	}
	if got := Glyph("celsius"); got != "temperature-celsius" {
		t.Errorf("Glyph(celsius) = %q", got)
	}
	for _, name := range []IconName{"", "volcano", "DAY-SUNNY"} {
		if got := Glyph(name); got != GlyphUnknown {
			t.Errorf("Glyph(%q) = %q, want %q", name, got, GlyphUnknown)
		}
	}
}

func TestTextToIcon(t *testing.T) {
	tests := []struct {
		text string
		want IconName
	}{
		{"", "cloudy"},
		{"Sunny", "day-sunny"},
		{"Patchy light drizzle", "sprinkle"},
		{"Moderate or heavy rain with thunder", "thunderstorm"},
		{"Light rain shower", "showers"},
		{"Blizzard", "snow-wind"},
		{"Freezing fog", "sleet"},
		{"Mist", "fog"},
		{"Something odd", "cloudy"},
	}

	for _, tt := range tests {
		if got := TextToIcon(tt.text); got != tt.want {
			t.Errorf("TextToIcon(%q) = %q, want %q", tt.text, got, tt.want)
		}
	}
}

func TestConditionIcon_UsesTextWithoutCode(t *testing.T) {
	got := ConditionIcon(Condition{Text: "Light snow"}, false)
	if got != "snow" {
		t.Errorf("ConditionIcon = %q, want snow", got)
	}
	got = ConditionIcon(Condition{Code: 1000, Text: "Clear"}, false)
	if got != "night-clear" {
		t.Errorf("ConditionIcon = %q, want night-clear", got)
	}
}
