package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wxstory/internal/cache"
	"wxstory/internal/story"
	"wxstory/internal/weather"
)

// newOfflineServer builds a server that never touches the network: the
// weather service serves synthetic packs and the generator has no
// providers.
func newOfflineServer(t *testing.T) *Server {
	t.Helper()

	c, err := cache.OpenAt(t.TempDir())
	require.NoError(t, err)

	return NewServer(Options{
		Service:   weather.NewService(nil, nil, c, nil, nil),
		Generator: story.NewGenerator(nil, nil, nil),
		Cache:     c,
		Version:   "test",
		Offline:   true,
	})
}

type failingGeocoder struct {
	err error
}

func (f failingGeocoder) Resolve(ctx context.Context, query string) (weather.Location, error) {
	return weather.Location{}, f.err
}

// newFailingServer routes every live fetch through a geocoder that fails
// with err.
func newFailingServer(t *testing.T, err error) *Server {
	t.Helper()

	c, cerr := cache.OpenAt(t.TempDir())
	require.NoError(t, cerr)

	return NewServer(Options{
		Service:   weather.NewService(failingGeocoder{err: err}, nil, c, nil, nil),
		Generator: story.NewGenerator(nil, nil, nil),
		Cache:     c,
		Version:   "test",
	})
}

func TestFetchFailureReturns500(t *testing.T) {
	for _, endpoint := range []string{"/api/forecast", "/api/alerts", "/api/story"} {
		s := newFailingServer(t, weather.ErrUpstream)

		req := httptest.NewRequest(http.MethodGet, endpoint+"?location=Seattle", nil)
		resp, err := s.app.Test(req)
		require.NoError(t, err)
		require.Equal(t, http.StatusInternalServerError, resp.StatusCode, endpoint)

		var body map[string]string
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		resp.Body.Close()
		assert.Contains(t, body["error"], "upstream", endpoint)
	}
}

func TestUnknownLocationReturns500(t *testing.T) {
	s := newFailingServer(t, weather.ErrNotFound)

	req := httptest.NewRequest(http.MethodGet, "/api/forecast?location=Nowhereville", nil)
	resp, err := s.app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusInternalServerError, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Contains(t, body["error"], "Nowhereville")
}

func TestHealth(t *testing.T) {
	s := newOfflineServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	resp, err := s.app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, "test", body["version"])
}

func TestStoryMissingLocation(t *testing.T) {
	s := newOfflineServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/story", nil)
	resp, err := s.app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Contains(t, body["error"], "location")
}

func TestStoryOffline(t *testing.T) {
	s := newOfflineServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/story?location=Seattle", nil)
	resp, err := s.app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var got story.WeatherStory
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	assert.Contains(t, got.BottomLine, "Seattle")
	assert.Len(t, got.Evolution.Phases, 2)
}

func TestStoryCached(t *testing.T) {
	s := newOfflineServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/story?location=Seattle", nil)
	resp, err := s.app.Test(req)
	require.NoError(t, err)
	resp.Body.Close()

	entries := s.cache.Stats().Entries
	assert.Greater(t, entries, 0)

	resp, err = s.app.Test(httptest.NewRequest(http.MethodGet, "/api/story?location=Seattle", nil))
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, entries, s.cache.Stats().Entries)
}

func TestForecastOffline(t *testing.T) {
	s := newOfflineServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/forecast?location=Seattle", nil)
	resp, err := s.app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var pack weather.FeaturePack
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&pack))
	require.NotNil(t, pack.Location)
	assert.Equal(t, "Seattle", pack.Location.Name)
}

func TestAlertsOffline(t *testing.T) {
	s := newOfflineServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/alerts?location=Seattle", nil)
	resp, err := s.app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Alerts []weather.Alert `json:"alerts"`
		Count  int             `json:"count"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.NotNil(t, body.Alerts)
	assert.Equal(t, 0, body.Count)
}
