// Package report renders weather records as console text.
package report

import (
	"fmt"
	"io"
	"strings"

	"wwo-weather/internal/icon"
	"wwo-weather/internal/weather"
)

const (
	currentRuleWidth  = 50
	forecastRuleWidth = 65
	rowFormat         = "%-14s %-25s %7s %7s %7s\n"
)

func Status(w io.Writer, location string) {
	fmt.Fprintf(w, "\n🌍 World Weather Online — fetching weather for %s...\n", location)
}

func Current(w io.Writer, c weather.CurrentCondition, label string) {
	desc := c.Description()
	rule := strings.Repeat("─", currentRuleWidth)

	fmt.Fprintln(w, "\n"+rule)
	fmt.Fprintf(w, "📍 %s — Right Now\n", label)
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "%s  %s\n", icon.Classify(desc), desc)
	fmt.Fprintf(w, "🌡️  Temperature : %s°C / %s°F (Feels like %s°C)\n", c.TempC, c.TempF, c.FeelsLikeC)
	fmt.Fprintf(w, "💧  Humidity    : %s%%\n", c.Humidity)
	fmt.Fprintf(w, "💨  Wind        : %s mph %s\n", c.WindspeedMiles, c.Winddir16Point)
	fmt.Fprintf(w, "👁️  Visibility  : %s km\n", c.Visibility)
	fmt.Fprintf(w, "☀️  UV Index    : %s\n", c.UVIndex)
	fmt.Fprintln(w, rule)
}

// Forecast prints one row per day. Values wider than their column are printed
// in full and push the rest of the row right.
func Forecast(w io.Writer, days []weather.DayForecast) {
	rule := strings.Repeat("─", forecastRuleWidth)

	fmt.Fprint(w, "\n📅 Forecast\n\n")
	fmt.Fprintf(w, rowFormat, "Date", "Conditions", "High", "Low", "Rain%")
	fmt.Fprintln(w, rule)

	for _, day := range days {
		hour := day.Representative()
		desc := hour.Description()

		rain := hour.RainChance()
		if rain != "N/A" {
			rain += "%"
		}

		fmt.Fprintf(w, rowFormat,
			day.Date,
			icon.Classify(desc)+" "+desc,
			day.MaxTempC+"°C",
			day.MinTempC+"°C",
			rain,
		)
	}

	fmt.Fprintln(w, rule)
}

func Attribution(w io.Writer) {
	fmt.Fprint(w, "\nData by World Weather Online — https://www.worldweatheronline.com\n\n")
}

// Full writes the current conditions, the forecast table and the attribution line.
func Full(w io.Writer, record *weather.Record, label string) {
	Current(w, record.Current(), label)
	Forecast(w, record.Weather)
	Attribution(w)
}
