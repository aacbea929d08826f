package weather

import "context"

// Geocoder resolves a free-text place query into a Location.
type Geocoder interface {
	Resolve(ctx context.Context, query string) (Location, error)
}

// ForecastSource fetches forecast periods and active alerts for a point.
type ForecastSource interface {
	FetchForecast(ctx context.Context, lat, lon float64) ([]ForecastPeriod, error)
	FetchAlerts(ctx context.Context, lat, lon float64) ([]Alert, error)
}
