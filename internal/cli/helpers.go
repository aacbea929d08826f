package cli

import (
	"net/http"

	"wxstory/internal/cache"
	"wxstory/internal/metrics"
	"wxstory/internal/story"
	storyproviders "wxstory/internal/story/providers"
	"wxstory/internal/weather"
	"wxstory/internal/weather/providers"
)

// newService wires the geocoder, forecast source, and cache into a weather
// service. The metrics collector is nil for one-shot CLI invocations and
// set only in server mode.
func newService(col *metrics.Collector) (*weather.Service, error) {
	c, err := cache.Open()
	if err != nil {
		return nil, err
	}

	geo := providers.NewGeocodeClient(&http.Client{Timeout: providers.GeocodeTimeout})
	nws := providers.NewNWSClient(&http.Client{Timeout: providers.ForecastTimeout}, cfg.Units)

	return weather.NewService(geo, nws, c, logger, col), nil
}

// newGenerator builds the story generator chain from configured keys, in
// preference order. Offline mode empties the chain so every story is
// synthetic.
func newGenerator(col *metrics.Collector) *story.Generator {
	var provs []story.Provider
	if !cfg.Offline {
		client := &http.Client{Timeout: storyproviders.CompletionTimeout}
		if cfg.OpenRouterAPIKey != "" {
			provs = append(provs, storyproviders.NewOpenRouterClient(
				client, cfg.OpenRouterAPIKey, cfg.OpenRouterModel, cfg.Temperature, cfg.MaxTokens))
		}
		if cfg.GeminiAPIKey != "" {
			provs = append(provs, storyproviders.NewGeminiClient(
				client, cfg.GeminiAPIKey, cfg.GeminiModel, cfg.Temperature, cfg.MaxTokens))
		}
	}
	return story.NewGenerator(provs, logger, col)
}
