package weather

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wxstory/internal/cache"
)

type fakeGeocoder struct {
	loc   Location
	err   error
	calls int
}

func (f *fakeGeocoder) Resolve(ctx context.Context, query string) (Location, error) {
	f.calls++
	if f.err != nil {
		return Location{}, f.err
	}
	return f.loc, nil
}

type fakeSource struct {
	periods       []ForecastPeriod
	forecastErr   error
	alerts        []Alert
	alertsErr     error
	forecastCalls int
	alertsCalls   int
}

func (f *fakeSource) FetchForecast(ctx context.Context, lat, lon float64) ([]ForecastPeriod, error) {
	f.forecastCalls++
	return f.periods, f.forecastErr
}

func (f *fakeSource) FetchAlerts(ctx context.Context, lat, lon float64) ([]Alert, error) {
	f.alertsCalls++
	return f.alerts, f.alertsErr
}

func testCache(t *testing.T) *cache.Cache {
	t.Helper()
	c, err := cache.OpenAt(t.TempDir())
	require.NoError(t, err)
	return c
}

var testLocation = Location{Name: "Seattle", Lat: 47.6062, Lon: -122.3321, Timezone: "America/Los_Angeles"}

func TestAssembleOffline(t *testing.T) {
	svc := NewService(nil, nil, nil, nil, nil)

	pack, err := svc.Assemble(context.Background(), "Seattle", true)
	require.NoError(t, err)

	require.NotNil(t, pack.Location)
	assert.Equal(t, "Seattle", pack.Location.Name)
	assert.InDelta(t, 47.6, pack.Location.Lat, 0.001)
	assert.InDelta(t, -122.3, pack.Location.Lon, 0.001)
	require.NotNil(t, pack.CurrentConditions)
	assert.Equal(t, 50, pack.CurrentConditions.Temperature)
	assert.Equal(t, "10", pack.CurrentConditions.WindSpeed)
	assert.Equal(t, 65, pack.CurrentConditions.Humidity)
	assert.Equal(t, "Clear", pack.CurrentConditions.ShortForecast)
	assert.Empty(t, pack.Alerts)
	assert.NotNil(t, pack.Alerts)
	assert.NotEmpty(t, pack.Timestamp)
}

func TestAssemble(t *testing.T) {
	geo := &fakeGeocoder{loc: testLocation}
	source := &fakeSource{
		periods: []ForecastPeriod{
			{Name: "Tonight", Temperature: 52, TemperatureUnit: "F", WindSpeed: "8 mph", WindDirection: "SW", ShortForecast: "Partly Cloudy"},
			{Name: "Tuesday", Temperature: 68, TemperatureUnit: "F", ShortForecast: "Sunny"},
		},
		alerts: []Alert{{Event: "Wind Advisory", Severity: "Moderate"}},
	}
	svc := NewService(geo, source, testCache(t), nil, nil)

	pack, err := svc.Assemble(context.Background(), "Seattle", false)
	require.NoError(t, err)

	require.NotNil(t, pack.Location)
	assert.Equal(t, "Seattle", pack.Location.Name)

	require.NotNil(t, pack.CurrentConditions)
	assert.Equal(t, 52, pack.CurrentConditions.Temperature)
	assert.Equal(t, "F", pack.CurrentConditions.TemperatureUnit)
	assert.Equal(t, "Partly Cloudy", pack.CurrentConditions.ShortForecast)

	require.NotNil(t, pack.Forecast)
	assert.Len(t, pack.Forecast.Periods, 2)

	require.Len(t, pack.Alerts, 1)
	assert.Equal(t, "Wind Advisory", pack.Alerts[0].Event)
	assert.NotEmpty(t, pack.Timestamp)
}

func TestAssembleGeocodeFailure(t *testing.T) {
	geo := &fakeGeocoder{err: ErrNotFound}
	svc := NewService(geo, &fakeSource{}, testCache(t), nil, nil)

	_, err := svc.Assemble(context.Background(), "Nowhereville", false)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestAssembleForecastFailure(t *testing.T) {
	geo := &fakeGeocoder{loc: testLocation}
	source := &fakeSource{forecastErr: ErrUpstream}
	svc := NewService(geo, source, testCache(t), nil, nil)

	_, err := svc.Assemble(context.Background(), "Seattle", false)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUpstream))
}

func TestAssembleAlertsDegrade(t *testing.T) {
	geo := &fakeGeocoder{loc: testLocation}
	source := &fakeSource{
		periods:   []ForecastPeriod{{Name: "Tonight", Temperature: 52}},
		alertsErr: ErrUpstream,
	}
	svc := NewService(geo, source, testCache(t), nil, nil)

	pack, err := svc.Assemble(context.Background(), "Seattle", false)
	require.NoError(t, err)
	assert.NotNil(t, pack.Alerts)
	assert.Empty(t, pack.Alerts)
}

func TestAssembleNoPeriodsNilConditions(t *testing.T) {
	geo := &fakeGeocoder{loc: testLocation}
	source := &fakeSource{periods: []ForecastPeriod{}}
	svc := NewService(geo, source, testCache(t), nil, nil)

	pack, err := svc.Assemble(context.Background(), "Seattle", false)
	require.NoError(t, err)
	assert.Nil(t, pack.CurrentConditions)
}

func TestAssembleCaching(t *testing.T) {
	geo := &fakeGeocoder{loc: testLocation}
	source := &fakeSource{periods: []ForecastPeriod{{Name: "Tonight", Temperature: 52}}}
	svc := NewService(geo, source, testCache(t), nil, nil)

	_, err := svc.Assemble(context.Background(), "Seattle", false)
	require.NoError(t, err)
	_, err = svc.Assemble(context.Background(), "Seattle", false)
	require.NoError(t, err)

	assert.Equal(t, 1, geo.calls)
	assert.Equal(t, 1, source.forecastCalls)
	assert.Equal(t, 1, source.alertsCalls)
}

func TestRefreshAlertsBypassesCache(t *testing.T) {
	geo := &fakeGeocoder{loc: testLocation}
	source := &fakeSource{alerts: []Alert{{Event: "Flood Watch"}}}
	svc := NewService(geo, source, testCache(t), nil, nil)

	alerts, err := svc.RefreshAlerts(context.Background(), "Seattle")
	require.NoError(t, err)
	require.Len(t, alerts, 1)

	alerts, err = svc.RefreshAlerts(context.Background(), "Seattle")
	require.NoError(t, err)
	require.Len(t, alerts, 1)

	assert.Equal(t, 2, source.alertsCalls)
}

func TestConditionsFromPeriods(t *testing.T) {
	assert.Nil(t, conditionsFromPeriods(nil))

	got := conditionsFromPeriods([]ForecastPeriod{
		{Temperature: 68, TemperatureUnit: "F", WindSpeed: "10 mph", WindDirection: "W", ShortForecast: "Sunny"},
	})
	require.NotNil(t, got)
	assert.Equal(t, 68, got.Temperature)
	assert.Equal(t, "Sunny", got.ShortForecast)
	assert.Zero(t, got.Humidity)
}
