package weather

import (
	"context"
	"fmt"
)

type Provider interface {
	Fetch(ctx context.Context, q Query) (*Record, error)
}

// Record is the "data" envelope of a World Weather Online response.
// Numeric values are kept as the strings the API sends; they are only displayed.
type Record struct {
	CurrentCondition []CurrentCondition `json:"current_condition"`
	Weather          []DayForecast      `json:"weather"`
	NearestArea      []NearestArea      `json:"nearest_area,omitempty"`
	Error            []APIMessage       `json:"error,omitempty"`
}

type CurrentCondition struct {
	TempC          string        `json:"temp_C"`
	TempF          string        `json:"temp_F"`
	FeelsLikeC     string        `json:"FeelsLikeC"`
	Humidity       string        `json:"humidity"`
	WindspeedMiles string        `json:"windspeedMiles"`
	Winddir16Point string        `json:"winddir16Point"`
	UVIndex        string        `json:"uvIndex"`
	Visibility     string        `json:"visibility"`
	WeatherDesc    []Description `json:"weatherDesc"`
}

type DayForecast struct {
	Date     string       `json:"date"`
	MaxTempC string       `json:"maxtempC"`
	MinTempC string       `json:"mintempC"`
	Hourly   []HourlyData `json:"hourly"`
}

type HourlyData struct {
	WeatherDesc    []Description `json:"weatherDesc"`
	ChanceOfRain   *string       `json:"chanceofrain,omitempty"`
	WindspeedMiles string        `json:"windspeedMiles,omitempty"`
}

type NearestArea struct {
	AreaName []Description `json:"areaName"`
	Country  []Description `json:"country"`
}

type Description struct {
	Value string `json:"value"`
}

type APIMessage struct {
	Msg string `json:"msg"`
}

func (c CurrentCondition) Description() string {
	return c.WeatherDesc[0].Value
}

// Representative returns the first hourly entry, which stands in for the whole day.
func (d DayForecast) Representative() HourlyData {
	return d.Hourly[0]
}

func (h HourlyData) Description() string {
	return h.WeatherDesc[0].Value
}

// RainChance returns the chance of rain or "N/A" when the API omitted it.
func (h HourlyData) RainChance() string {
	if h.ChanceOfRain == nil || *h.ChanceOfRain == "" {
		return "N/A"
	}
	return *h.ChanceOfRain
}

func (r *Record) Current() CurrentCondition {
	return r.CurrentCondition[0]
}

// LocationLabel builds "<area>, <country>" from the nearest area, or returns
// fallback when the response carried no area.
func (r *Record) LocationLabel(fallback string) string {
	if r == nil || len(r.NearestArea) == 0 {
		return fallback
	}
	area := r.NearestArea[0]
	return fmt.Sprintf("%s, %s", area.AreaName[0].Value, area.Country[0].Value)
}

// validate rejects the shapes the accessors above would index out of range on.
func (r *Record) validate() error {
	if len(r.CurrentCondition) == 0 {
		return fmt.Errorf("current_condition is empty")
	}
	if len(r.CurrentCondition[0].WeatherDesc) == 0 {
		return fmt.Errorf("current_condition weatherDesc is empty")
	}
	for _, day := range r.Weather {
		if len(day.Hourly) == 0 {
			return fmt.Errorf("weather %s has no hourly entries", day.Date)
		}
		if len(day.Hourly[0].WeatherDesc) == 0 {
			return fmt.Errorf("weather %s hourly weatherDesc is empty", day.Date)
		}
	}
	if len(r.NearestArea) > 0 {
		area := r.NearestArea[0]
		if len(area.AreaName) == 0 || len(area.Country) == 0 {
			return fmt.Errorf("nearest_area is missing areaName or country")
		}
	}
	return nil
}
