// Package icon picks a weather glyph for a free-text condition description.
package icon

import "strings"

const Fallback = "🌡️"

type rule struct {
	keyword string
	symbol  string
}

// Evaluated in order, first match wins. "partly cloudy" must stay ahead of "cloudy".
var rules = []rule{
	{"sunny", "☀️"},
	{"clear", "🌙"},
	{"partly cloudy", "⛅"},
	{"cloudy", "☁️"},
	{"overcast", "☁️"},
	{"mist", "🌫️"},
	{"fog", "🌫️"},
	{"rain", "🌧️"},
	{"drizzle", "🌦️"},
	{"snow", "❄️"},
	{"sleet", "🌨️"},
	{"thunder", "⛈️"},
	{"blizzard", "🌨️"},
}

func Classify(description string) string {
	desc := strings.ToLower(description)
	for _, r := range rules {
		if strings.Contains(desc, r.keyword) {
			return r.symbol
		}
	}
	return Fallback
}
