package weather

import (
	"context"
	"log/slog"
	"time"

	"wxstory/internal/cache"
	"wxstory/internal/metrics"
)

// Service assembles FeaturePacks from the geocoder and forecast source,
// fronting each fetch boundary with the TTL cache.
type Service struct {
	geo     Geocoder
	source  ForecastSource
	cache   *cache.Cache
	log     *slog.Logger
	metrics *metrics.Collector
}

// NewService creates a new Service. cache and collector may be nil, which
// disables caching and metrics respectively.
func NewService(geo Geocoder, source ForecastSource, c *cache.Cache, log *slog.Logger, col *metrics.Collector) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{geo: geo, source: source, cache: c, log: log, metrics: col}
}

// Assemble resolves query and builds a complete FeaturePack. In offline
// mode it short-circuits to the synthetic pack without any network call.
// Resolution and forecast failures propagate unchanged; no partial pack is
// ever returned. Alert failures degrade to an empty list instead.
func (s *Service) Assemble(ctx context.Context, query string, offline bool) (FeaturePack, error) {
	if offline {
		return SyntheticPack(query), nil
	}

	loc, err := s.ResolveLocation(ctx, query)
	if err != nil {
		return FeaturePack{}, err
	}

	periods, err := s.fetchForecast(ctx, loc)
	if err != nil {
		return FeaturePack{}, err
	}

	alerts := s.fetchAlerts(ctx, loc)

	return FeaturePack{
		Location:          &loc,
		CurrentConditions: conditionsFromPeriods(periods),
		Forecast:          &ForecastPayload{Periods: periods},
		Alerts:            alerts,
		Timestamp:         time.Now().UTC().Format(time.RFC3339),
	}, nil
}

// ResolveLocation returns the location for query, consulting the geocode
// cache first.
func (s *Service) ResolveLocation(ctx context.Context, query string) (Location, error) {
	key := cache.GeocodeKey(query)
	if loc, ok := cache.Get[Location](s.cache, key, cache.TTLGeocode); ok {
		s.metrics.RecordCacheLookup(cache.KeyKind(key), "hit")
		return loc, nil
	}
	s.metrics.RecordCacheLookup(cache.KeyKind(key), "miss")

	start := time.Now()
	loc, err := s.geo.Resolve(ctx, query)
	s.metrics.RecordUpstream("geocode", outcome(err), time.Since(start))
	if err != nil {
		return Location{}, err
	}
	if err := s.cache.Set(key, loc); err != nil {
		s.log.Warn("caching geocode result failed", "query", query, "error", err)
	}
	return loc, nil
}

// RefreshAlerts force-fetches active alerts for query and updates the
// cache entry; used by the server-side alert watcher.
func (s *Service) RefreshAlerts(ctx context.Context, query string) ([]Alert, error) {
	loc, err := s.ResolveLocation(ctx, query)
	if err != nil {
		return nil, err
	}

	alerts, err := s.source.FetchAlerts(ctx, loc.Lat, loc.Lon)
	if err != nil {
		return nil, err
	}
	if alerts == nil {
		alerts = []Alert{}
	}
	if err := s.cache.Set(cache.AlertsKey(loc.Lat, loc.Lon), alerts); err != nil {
		s.log.Warn("caching alerts failed", "query", query, "error", err)
	}
	return alerts, nil
}

func (s *Service) fetchForecast(ctx context.Context, loc Location) ([]ForecastPeriod, error) {
	key := cache.ForecastKey(loc.Lat, loc.Lon)
	if periods, ok := cache.Get[[]ForecastPeriod](s.cache, key, cache.TTLForecast); ok {
		s.metrics.RecordCacheLookup(cache.KeyKind(key), "hit")
		return periods, nil
	}
	s.metrics.RecordCacheLookup(cache.KeyKind(key), "miss")

	start := time.Now()
	periods, err := s.source.FetchForecast(ctx, loc.Lat, loc.Lon)
	s.metrics.RecordUpstream("forecast", outcome(err), time.Since(start))
	if err != nil {
		return nil, err
	}
	if err := s.cache.Set(key, periods); err != nil {
		s.log.Warn("caching forecast failed", "location", loc.Name, "error", err)
	}
	return periods, nil
}

// fetchAlerts never fails the assembly: alerts are additive safety data,
// and a pack without them is still complete.
func (s *Service) fetchAlerts(ctx context.Context, loc Location) []Alert {
	key := cache.AlertsKey(loc.Lat, loc.Lon)
	if alerts, ok := cache.Get[[]Alert](s.cache, key, cache.TTLAlerts); ok {
		s.metrics.RecordCacheLookup(cache.KeyKind(key), "hit")
		return alerts
	}
	s.metrics.RecordCacheLookup(cache.KeyKind(key), "miss")

	start := time.Now()
	alerts, err := s.source.FetchAlerts(ctx, loc.Lat, loc.Lon)
	s.metrics.RecordUpstream("alerts", outcome(err), time.Since(start))
	if err != nil {
		s.log.Warn("alerts fetch failed, continuing without", "location", loc.Name, "error", err)
		return []Alert{}
	}
	if alerts == nil {
		alerts = []Alert{}
	}
	if err := s.cache.Set(key, alerts); err != nil {
		s.log.Warn("caching alerts failed", "location", loc.Name, "error", err)
	}
	return alerts
}

func outcome(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

// conditionsFromPeriods derives current conditions from the first period.
// Nil when the provider returned no periods.
func conditionsFromPeriods(periods []ForecastPeriod) *CurrentConditions {
	if len(periods) == 0 {
		return nil
	}
	p := periods[0]
	return &CurrentConditions{
		Temperature:     p.Temperature,
		TemperatureUnit: p.TemperatureUnit,
		WindSpeed:       p.WindSpeed,
		WindDirection:   p.WindDirection,
		ShortForecast:   p.ShortForecast,
	}
}
