package weather

import (
	"strings"

	"github.com/i474232898/weather-screen/internal/common"
)

// IconName is one of the fixed weather icon identifiers the screen knows how to draw.
type IconName string

const (
	IconDaySunny   IconName = "day-sunny"
	IconDayCloudy  IconName = "day-cloudy"
	IconDayRain    IconName = "day-rain"
	IconNightClear IconName = "night-clear"
	IconCloudy     IconName = "cloudy"
	IconWindy      IconName = "windy"
	IconFog        IconName = "fog"
	IconCelsius    IconName = "celsius"
)

// GlyphUnknown is drawn for any icon name without a glyph.
const GlyphUnknown = "help-circle-outline"

// conditionIcons maps WeatherAPI.com condition codes to day icons.
var conditionIcons = map[int]IconName{
	1000: IconDaySunny, // Sunny / Clear
	1003: IconDayCloudy,
	1006: IconCloudy,
	1009: IconCloudy,
	1030: "day-fog",
	1063: IconDayRain, // Patchy rain possible
	1066: "day-snow",
	1069: "day-sleet",
	1072: "day-sprinkle",
	1087: "day-thunderstorm",
	1114: "snow-wind",
	1117: "snow-wind",
	1135: IconFog,
	1147: IconFog,
	1150: "day-sprinkle",
	1153: "day-sprinkle",
	1168: "sleet",
	1171: "sleet",
	1180: "day-showers",
	1183: IconDayRain,
	1186: IconDayRain,
	1189: "rain",
	1192: "day-rain-wind",
	1195: "rain-wind",
	1198: "day-rain-mix",
	1201: "day-rain-mix",
	1204: "sleet",
	1207: "sleet",
	1210: "day-snow",
	1213: "snow",
	1216: "day-snow",
	1219: "snow",
	1222: "day-snow-wind",
	1225: "snow-wind",
	1237: "hail",
	1240: "day-showers",
	1243: IconDayRain,
	1246: "day-rain-wind",
	1249: "day-sleet",
	1252: "day-sleet",
	1255: "day-snow",
	1258: "day-snow",
	1261: "day-hail",
	1264: "day-hail",
	1273: "day-storm-showers",
	1276: "day-thunderstorm",
	1279: "day-snow-thunderstorm",
	1282: "day-snow-thunderstorm",
}

// glyphs maps icon names to MaterialCommunityIcons glyph names.
var glyphs = map[IconName]string{
	"day-sunny":             "weather-sunny",
	"day-cloudy":            "weather-partly-cloudy",
	"day-cloudy-gusts":      "weather-windy-variant",
	"day-cloudy-windy":      "weather-windy",
	"day-fog":               "weather-fog",
	"day-hail":              "weather-hail",
	"day-haze":              "weather-hazy",
	"day-lightning":         "weather-lightning",
	"day-rain":              "weather-rainy",
	"day-rain-mix":          "weather-partly-rainy",
	"day-rain-wind":         "weather-pouring",
	"day-showers":           "weather-partly-rainy",
	"day-sleet":             "weather-snowy-rainy",
	"day-sleet-storm":       "weather-snowy-heavy",
	"day-snow":              "weather-snowy",
	"day-snow-thunderstorm": "weather-snowy-heavy",
	"day-snow-wind":         "weather-snowy-rainy",
	"day-sprinkle":          "weather-partly-rainy",
	"day-storm-showers":     "weather-lightning-rainy",
	"day-sunny-overcast":    "weather-partly-cloudy",
	"day-thunderstorm":      "weather-lightning",
	"day-windy":             "weather-windy",

	"night-clear":                 "weather-night",
	"night-alt-cloudy":            "weather-night-partly-cloudy",
	"night-alt-cloudy-gusts":      "weather-night-windy",
	"night-alt-cloudy-windy":      "weather-night-windy",
	"night-alt-hail":              "weather-hail",
	"night-alt-lightning":         "weather-night-lightning",
	"night-alt-rain":              "weather-night-rainy",
	"night-alt-rain-mix":          "weather-night-partly-rainy",
	"night-alt-rain-wind":         "weather-night-rainy",
	"night-alt-showers":           "weather-night-partly-rainy",
	"night-alt-sleet":             "weather-snowy-rainy",
	"night-alt-sleet-storm":       "weather-snowy-heavy",
	"night-alt-snow":              "weather-snowy",
	"night-alt-snow-thunderstorm": "weather-snowy-heavy",
	"night-alt-snow-wind":         "weather-snowy-rainy",
	"night-alt-sprinkle":          "weather-night-partly-rainy",
	"night-alt-storm-showers":     "weather-night-lightning-rainy",
	"night-alt-thunderstorm":      "weather-night-lightning",

	"cloudy":         "weather-cloudy",
	"cloudy-gusts":   "weather-windy",
	"cloudy-windy":   "weather-windy",
	"fog":            "weather-fog",
	"hail":           "weather-hail",
	"lightning":      "weather-lightning",
	"rain":           "weather-rainy",
	"rain-mix":       "weather-rainy",
	"rain-wind":      "weather-pouring",
	"showers":        "weather-rainy",
	"sleet":          "weather-snowy-rainy",
	"snow":           "weather-snowy",
	"sprinkle":       "weather-partly-rainy",
	"storm-showers":  "weather-lightning-rainy",
	"thunderstorm":   "weather-lightning",
	"snow-wind":      "weather-snowy-heavy",
	"smog":           "weather-fog",
	"smoke":          "smoke",
	"dust":           "weather-hazy",
	"snowflake-cold": "snowflake",
	"windy":          "weather-windy",
	"strong-wind":    "weather-windy",
	"celsius":        "temperature-celsius",
	"fahrenheit":     "temperature-fahrenheit",
}

// daytime icons whose night counterpart is not a plain night-alt- prefix swap
var nightSpecial = map[IconName]IconName{
	"day-sunny":          IconNightClear,
	"day-sunny-overcast": "night-alt-cloudy",
	"day-fog":            IconFog,
	"day-haze":           IconFog,
	"day-windy":          IconWindy,
}

// CodeToIcon maps a provider condition code to a day icon. Unknown codes
// fall back to day-cloudy.
func CodeToIcon(code int) IconName {
	if icon, ok := conditionIcons[code]; ok {
		return icon
	}
	return IconDayCloudy
}

// IconFor maps a condition code to an icon, switching to the night
// variant when isDay is false.
func IconFor(code int, isDay bool) IconName {
	icon := CodeToIcon(code)
	if isDay {
		return icon
	}
	return NightVariant(icon)
}

// NightVariant returns the night counterpart of a day icon. Neutral icons
// and icons without a night counterpart are returned unchanged.
func NightVariant(icon IconName) IconName {
	if n, ok := nightSpecial[icon]; ok {
		return n
	}
	rest, ok := strings.CutPrefix(string(icon), "day-")
	if !ok {
		return icon
	}
	if n := IconName("night-alt-" + rest); HasGlyph(n) {
		return n
	}
	return IconName(rest)
}

// TextToIcon guesses a neutral icon from free condition text. It is used
// when a code is missing from the payload.
func TextToIcon(text string) IconName {
	t := strings.ToLower(text)
	switch {
	case t == "":
		return IconCloudy
	case common.HasAny(t, "thunder", "storm"):
		return "thunderstorm"
	case common.HasAny(t, "sleet", "ice pellets", "freezing"):
		return "sleet"
	case common.HasAny(t, "blizzard", "blowing snow"):
		return "snow-wind"
	case common.HasAny(t, "snow"):
		return "snow"
	case common.HasAny(t, "torrential", "heavy rain"):
		return "rain-wind"
	case common.HasAny(t, "drizzle"):
		return "sprinkle"
	case common.HasAny(t, "shower"):
		return "showers"
	case common.HasAny(t, "rain"):
		return "rain"
	case common.HasAny(t, "fog", "mist"):
		return IconFog
	case common.HasAny(t, "sunny", "clear"):
		return IconDaySunny
	default:
		return IconCloudy
	}
}

// HasGlyph reports whether the icon name is part of the drawable set.
func HasGlyph(name IconName) bool {
	_, ok := glyphs[name]
	return ok
}

// Glyph returns the glyph for an icon name, or GlyphUnknown.
func Glyph(name IconName) string {
	if g, ok := glyphs[name]; ok {
		return g
	}
	return GlyphUnknown
}

// ConditionIcon picks the icon for a condition block.
func ConditionIcon(c Condition, isDay bool) IconName {
	if c.Code == 0 {
		icon := TextToIcon(c.Text)
		if !isDay {
			return NightVariant(icon)
		}
		return icon
	}
	return IconFor(c.Code, isDay)
}
