package cache

import (
	"fmt"
	"strings"
)

// Key generators. Keys are derived from normalized queries or rounded
// coordinates so equivalent lookups share entries.

// GeocodeKey returns the cache key for a geocoding query.
func GeocodeKey(query string) string {
	return "geo:" + strings.ToLower(strings.TrimSpace(query))
}

// ForecastKey returns the cache key for a forecast at a coordinate.
func ForecastKey(lat, lon float64) string {
	return fmt.Sprintf("forecast:%.4f,%.4f", lat, lon)
}

// AlertsKey returns the cache key for active alerts at a coordinate.
func AlertsKey(lat, lon float64) string {
	return fmt.Sprintf("alerts:%.4f,%.4f", lat, lon)
}

// StoryKey returns the cache key for a generated story.
func StoryKey(query string) string {
	return "story:" + strings.ToLower(strings.TrimSpace(query))
}

// KeyKind returns the key's prefix (geo, forecast, alerts, story), used as
// a metrics label.
func KeyKind(key string) string {
	if i := strings.IndexByte(key, ':'); i > 0 {
		return key[:i]
	}
	return "other"
}
