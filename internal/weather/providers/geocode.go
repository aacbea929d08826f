package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/sony/gobreaker"

	"wxstory/internal/weather"
)

// GeocodeTimeout bounds a geocoding call.
const GeocodeTimeout = 10 * time.Second

// GeocodeClient resolves free-text place queries via the Open-Meteo
// geocoding API. It takes the provider's first result only; there is no
// disambiguation or ranking beyond provider order.
type GeocodeClient struct {
	baseURL    string
	httpClient *http.Client
	circuit    *gobreaker.CircuitBreaker
}

// NewGeocodeClient creates a geocoding client. The caller supplies the
// HTTP client so the timeout is set in one place.
func NewGeocodeClient(client *http.Client) *GeocodeClient {
	return &GeocodeClient{
		baseURL:    "https://geocoding-api.open-meteo.com/v1/search",
		httpClient: client,
		circuit:    newBreaker("geocode"),
	}
}

// Resolve turns query into a Location. A "lat,lon" coordinate string is
// parsed directly without a network call.
func (c *GeocodeClient) Resolve(ctx context.Context, query string) (weather.Location, error) {
	if lat, lon, ok := parseLatLon(query); ok {
		return weather.Location{Name: strings.TrimSpace(query), Lat: lat, Lon: lon}, nil
	}

	values := url.Values{}
	values.Set("name", query)
	values.Set("count", "1")
	values.Set("language", "en")

	req, err := http.NewRequest(http.MethodGet, c.baseURL+"?"+values.Encode(), nil)
	if err != nil {
		return weather.Location{}, fmt.Errorf("%w: %v", weather.ErrUpstream, err)
	}

	resp, err := doRequest(ctx, c.httpClient, c.circuit, req)
	if err != nil {
		return weather.Location{}, err
	}
	defer resp.Body.Close()

	var payload struct {
		Results []struct {
			Name      string  `json:"name"`
			Latitude  float64 `json:"latitude"`
			Longitude float64 `json:"longitude"`
			Timezone  string  `json:"timezone"`
		} `json:"results"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return weather.Location{}, fmt.Errorf("%w: decoding geocode response: %v", weather.ErrUpstream, err)
	}

	if len(payload.Results) == 0 {
		return weather.Location{}, fmt.Errorf("%w: %q", weather.ErrNotFound, query)
	}

	r := payload.Results[0]
	name := r.Name
	if name == "" {
		name = query
	}
	return weather.Location{
		Name:     name,
		Lat:      r.Latitude,
		Lon:      r.Longitude,
		Timezone: r.Timezone,
	}, nil
}

// parseLatLon accepts "47.6,-122.3" style input.
func parseLatLon(s string) (float64, float64, bool) {
	left, right, found := strings.Cut(s, ",")
	if !found {
		return 0, 0, false
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(left), 64)
	if err != nil {
		return 0, 0, false
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(right), 64)
	if err != nil {
		return 0, 0, false
	}
	return lat, lon, true
}
