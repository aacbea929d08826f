package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sony/gobreaker"

	"wxstory/internal/config"
	"wxstory/internal/weather"
)

// ForecastTimeout bounds one forecast call (shared by both protocol steps).
const ForecastTimeout = 15 * time.Second

// maxAlerts caps how many active alerts one pack carries.
const maxAlerts = 5

// NWSClient talks to the National Weather Service API. Forecast retrieval
// is a two-step protocol: resolve the gridpoint for a coordinate via the
// points endpoint, then fetch the forecast URL it names.
type NWSClient struct {
	baseURL    string
	httpClient *http.Client
	units      config.Units
	circuit    *gobreaker.CircuitBreaker
}

// NewNWSClient creates an NWS client using the given unit system.
func NewNWSClient(client *http.Client, units config.Units) *NWSClient {
	return &NWSClient{
		baseURL:    "https://api.weather.gov",
		httpClient: client,
		units:      units,
		circuit:    newBreaker("nws"),
	}
}

type nwsPeriod struct {
	Name             string `json:"name"`
	Temperature      int    `json:"temperature"`
	TemperatureUnit  string `json:"temperatureUnit"`
	WindSpeed        string `json:"windSpeed"`
	WindDirection    string `json:"windDirection"`
	ShortForecast    string `json:"shortForecast"`
	DetailedForecast string `json:"detailedForecast"`
}

// FetchForecast returns the ordered forecast period list for a point.
// Either step's transport or parse failure surfaces as ErrUpstream; there
// is no retry.
func (c *NWSClient) FetchForecast(ctx context.Context, lat, lon float64) ([]weather.ForecastPeriod, error) {
	forecastURL, err := c.resolveForecastURL(ctx, lat, lon)
	if err != nil {
		return nil, err
	}

	sep := "?"
	if strings.Contains(forecastURL, "?") {
		sep = "&"
	}
	forecastURL += sep + "units=" + c.unitsParam()

	req, err := http.NewRequest(http.MethodGet, forecastURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", weather.ErrUpstream, err)
	}
	req.Header.Set("Accept", "application/geo+json")

	resp, err := doRequest(ctx, c.httpClient, c.circuit, req)
	if err != nil {
		return nil, fmt.Errorf("forecast fetch: %w", err)
	}
	defer resp.Body.Close()

	var payload struct {
		Properties struct {
			Periods []nwsPeriod `json:"periods"`
		} `json:"properties"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: decoding forecast response: %v", weather.ErrUpstream, err)
	}

	periods := make([]weather.ForecastPeriod, 0, len(payload.Properties.Periods))
	for _, p := range payload.Properties.Periods {
		periods = append(periods, weather.ForecastPeriod{
			Name:             p.Name,
			Temperature:      p.Temperature,
			TemperatureUnit:  p.TemperatureUnit,
			WindSpeed:        p.WindSpeed,
			WindDirection:    p.WindDirection,
			ShortForecast:    p.ShortForecast,
			DetailedForecast: p.DetailedForecast,
		})
	}
	return periods, nil
}

// resolveForecastURL performs the points lookup for a coordinate.
func (c *NWSClient) resolveForecastURL(ctx context.Context, lat, lon float64) (string, error) {
	pointsURL := fmt.Sprintf("%s/points/%.4f,%.4f", c.baseURL, lat, lon)

	req, err := http.NewRequest(http.MethodGet, pointsURL, nil)
	if err != nil {
		return "", fmt.Errorf("%w: %v", weather.ErrUpstream, err)
	}
	req.Header.Set("Accept", "application/geo+json")

	resp, err := doRequest(ctx, c.httpClient, c.circuit, req)
	if err != nil {
		return "", fmt.Errorf("points lookup: %w", err)
	}
	defer resp.Body.Close()

	var payload struct {
		Properties struct {
			Forecast string `json:"forecast"`
			GridID   string `json:"gridId"`
			GridX    int    `json:"gridX"`
			GridY    int    `json:"gridY"`
		} `json:"properties"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("%w: decoding points response: %v", weather.ErrUpstream, err)
	}

	if payload.Properties.Forecast == "" {
		return "", fmt.Errorf("%w: points response missing forecast URL", weather.ErrUpstream)
	}
	return payload.Properties.Forecast, nil
}

// FetchAlerts returns up to maxAlerts active alerts for a point, in
// provider order.
func (c *NWSClient) FetchAlerts(ctx context.Context, lat, lon float64) ([]weather.Alert, error) {
	values := url.Values{}
	values.Set("point", fmt.Sprintf("%.4f,%.4f", lat, lon))

	req, err := http.NewRequest(http.MethodGet, c.baseURL+"/alerts/active?"+values.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", weather.ErrUpstream, err)
	}
	req.Header.Set("Accept", "application/geo+json")

	resp, err := doRequest(ctx, c.httpClient, c.circuit, req)
	if err != nil {
		return nil, fmt.Errorf("alerts fetch: %w", err)
	}
	defer resp.Body.Close()

	var payload struct {
		Features []struct {
			Properties struct {
				Event       string `json:"event"`
				Severity    string `json:"severity"`
				Description string `json:"description"`
				AreaDesc    string `json:"areaDesc"`
			} `json:"properties"`
		} `json:"features"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: decoding alerts response: %v", weather.ErrUpstream, err)
	}

	alerts := make([]weather.Alert, 0, len(payload.Features))
	for i, f := range payload.Features {
		if i >= maxAlerts {
			break
		}
		alerts = append(alerts, weather.Alert{
			Event:       f.Properties.Event,
			Severity:    f.Properties.Severity,
			Description: f.Properties.Description,
			Areas:       splitAreas(f.Properties.AreaDesc),
		})
	}
	return alerts, nil
}

func (c *NWSClient) unitsParam() string {
	if c.units == config.UnitsMetric {
		return "si"
	}
	return "us"
}

func splitAreas(areaDesc string) []string {
	if areaDesc == "" {
		return []string{}
	}
	parts := strings.Split(areaDesc, ";")
	areas := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			areas = append(areas, p)
		}
	}
	return areas
}
