package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Units is the measurement system used for forecasts and narration.
type Units string

const (
	UnitsImperial Units = "imperial"
	UnitsMetric   Units = "metric"
)

// Valid reports whether u is a recognized unit system.
func (u Units) Valid() bool {
	return u == UnitsImperial || u == UnitsMetric
}

// Config holds runtime settings resolved from the environment.
// Absence of both provider keys is valid; it activates the synthetic
// story fallback rather than being an error.
type Config struct {
	OpenRouterAPIKey string
	OpenRouterModel  string
	GeminiAPIKey     string
	GeminiModel      string

	// Narrative generation parameters.
	Temperature float64
	MaxTokens   int

	Units       Units
	Offline     bool
	Debug       bool
	PrivacyMode bool

	Port string

	// Locations the server-side alert watcher refreshes; empty disables it.
	WatchLocations []string
	WatchInterval  time.Duration
}

// Load reads configuration from environment with sensible defaults.
// The offline and debug arguments come from CLI flags and are OR-ed
// with their environment counterparts.
func Load(offline, debug bool) (*Config, error) {
	// Missing .env is fine; the environment may already be populated.
	_ = godotenv.Load()

	cfg := &Config{
		OpenRouterAPIKey: os.Getenv("OPENROUTER_API_KEY"),
		OpenRouterModel:  getenvDefault("OPENROUTER_MODEL", "openrouter/auto"),
		GeminiAPIKey:     os.Getenv("GEMINI_API_KEY"),
		GeminiModel:      getenvDefault("GEMINI_MODEL", "gemini-2.0-flash-exp"),
		Temperature:      getenvFloat("AI_TEMPERATURE", 0.2),
		MaxTokens:        getenvInt("AI_MAX_TOKENS", 900),
		Offline:          offline || os.Getenv("WX_OFFLINE") == "1",
		Debug:            debug,
		PrivacyMode:      getenvDefault("PRIVACY_MODE", "1") != "0",
		Port:             getenvDefault("PORT", "8080"),
	}

	if cfg.GeminiAPIKey == "" {
		cfg.GeminiAPIKey = os.Getenv("GOOGLE_API_KEY")
	}

	units := Units(strings.ToLower(getenvDefault("UNITS", string(UnitsImperial))))
	if !units.Valid() {
		units = UnitsImperial
	}
	cfg.Units = units

	if raw := os.Getenv("WATCH_LOCATIONS"); raw != "" {
		for _, loc := range strings.Split(raw, ",") {
			if loc = strings.TrimSpace(loc); loc != "" {
				cfg.WatchLocations = append(cfg.WatchLocations, loc)
			}
		}
	}

	intervalStr := getenvDefault("WATCH_INTERVAL", "10m")
	interval, err := time.ParseDuration(intervalStr)
	if err != nil {
		return nil, fmt.Errorf("invalid WATCH_INTERVAL: %w", err)
	}
	cfg.WatchInterval = interval

	return cfg, nil
}

// HasProvider reports whether at least one narrative provider is configured.
func (c *Config) HasProvider() bool {
	return c.OpenRouterAPIKey != "" || c.GeminiAPIKey != ""
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err == nil {
			return n
		}
	}
	return def
}

func getenvFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err == nil {
			return f
		}
	}
	return def
}
