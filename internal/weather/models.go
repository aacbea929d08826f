package weather

import (
	"time"
)

// Location is a resolved place. Produced once by the geocoder and embedded
// by value in a FeaturePack; never mutated afterward.
type Location struct {
	Name     string  `json:"name"`
	Lat      float64 `json:"lat"`
	Lon      float64 `json:"lon"`
	Timezone string  `json:"timezone,omitempty"`
}

// ForecastPeriod is one entry of the provider's chronological period list.
type ForecastPeriod struct {
	Name             string `json:"name"`
	Temperature      int    `json:"temperature"`
	TemperatureUnit  string `json:"temperature_unit"`
	WindSpeed        string `json:"wind_speed"`
	WindDirection    string `json:"wind_direction"`
	ShortForecast    string `json:"short_forecast"`
	DetailedForecast string `json:"detailed_forecast"`
}

// ForecastPayload wraps the ordered period list.
type ForecastPayload struct {
	Periods []ForecastPeriod `json:"periods"`
}

// CurrentConditions is a minimal snapshot of the present weather, derived
// from the first forecast period in the network path.
type CurrentConditions struct {
	Temperature     int    `json:"temperature"`
	TemperatureUnit string `json:"temperature_unit,omitempty"`
	WindSpeed       string `json:"wind_speed,omitempty"`
	WindDirection   string `json:"wind_direction,omitempty"`
	Humidity        int    `json:"humidity,omitempty"`
	ShortForecast   string `json:"conditions,omitempty"`
}

// Alert is an active weather alert for a point.
type Alert struct {
	Event       string   `json:"event"`
	Severity    string   `json:"severity"`
	Description string   `json:"description"`
	Areas       []string `json:"areas"`
}

// FeaturePack is the canonical weather snapshot for one query: location,
// current conditions, forecast, and alerts, stamped with the assembly time.
// Constructed atomically and never mutated after construction.
type FeaturePack struct {
	Location          *Location          `json:"location,omitempty"`
	CurrentConditions *CurrentConditions `json:"current_conditions,omitempty"`
	Forecast          *ForecastPayload   `json:"forecast,omitempty"`
	Alerts            []Alert            `json:"alerts"`
	Timestamp         string             `json:"timestamp"`
}

// SyntheticPack returns the fixed offline snapshot for a query. It is the
// designed no-network path for demos and tests, not an error path.
func SyntheticPack(query string) FeaturePack {
	return FeaturePack{
		Location: &Location{
			Name:     query,
			Lat:      47.6,
			Lon:      -122.3,
			Timezone: "America/Los_Angeles",
		},
		CurrentConditions: &CurrentConditions{
			Temperature:   50,
			WindSpeed:     "10",
			Humidity:      65,
			ShortForecast: "Clear",
		},
		Forecast:  &ForecastPayload{Periods: []ForecastPeriod{}},
		Alerts:    []Alert{},
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
}
