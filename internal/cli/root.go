// Package cli contains all commands of the wxstory binary.
package cli

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"wxstory/internal/config"
	"wxstory/internal/profile"
)

var (
	debugFlag   bool
	jsonOut     bool
	verboseFlag bool
	offlineFlag bool

	cfg     *config.Config
	logger  *slog.Logger
	version = "dev"
)

var rootCmd = &cobra.Command{
	Use:   "wxstory [question]",
	Short: "Weather stories from live data and AI narration",
	Long: `wxstory fetches live weather data and turns it into narrative stories.

Example usage:
  wxstory story Seattle              # Narrative story for a location
  wxstory forecast "Portland, OR"    # Forecast table
  wxstory alerts 47.6,-122.3         # Active alerts for a coordinate
  wxstory "will it rain tomorrow?"   # Freeform question
  wxstory serve                      # Run the HTTP API server`,
	Args:          cobra.ArbitraryArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initConfig()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) > 0 {
			return runQuestion(cmd, strings.Join(args, " "))
		}
		return runWorld(cmd, false)
	},
}

// Execute runs the CLI.
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion sets the version string reported by the CLI and server.
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&debugFlag, "debug", "d", false, "enable debug output")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "output as JSON")
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "verbose output (longer responses, metadata)")
	rootCmd.PersistentFlags().BoolVar(&offlineFlag, "offline", false, "offline mode (synthetic data, no network)")
}

func initConfig() error {
	level := slog.LevelInfo
	if debugFlag {
		level = slog.LevelDebug
	}
	logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	var err error
	cfg, err = config.Load(offlineFlag, debugFlag)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	applyProfile()
	return nil
}

// applyProfile fills configuration gaps from the active profile. The
// environment always wins; profile values are fallbacks only.
func applyProfile() {
	store, err := profile.NewStore()
	if err != nil {
		logger.Debug("profile store unavailable", "error", err)
		return
	}
	name, err := store.CurrentName()
	if err != nil {
		return
	}
	p, err := store.Load(name)
	if err != nil {
		logger.Debug("loading active profile failed", "profile", name, "error", err)
		return
	}

	if cfg.GeminiAPIKey == "" {
		cfg.GeminiAPIKey = p.APIKeys.Gemini
	}
	if cfg.OpenRouterAPIKey == "" {
		cfg.OpenRouterAPIKey = p.APIKeys.OpenRouter
	}
	if os.Getenv("UNITS") == "" && config.Units(p.Units).Valid() {
		cfg.Units = config.Units(p.Units)
	}
}

// defaultLocation resolves the place argument, falling back to the active
// profile's default location.
func defaultLocation(args []string) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}
	store, err := profile.NewStore()
	if err == nil {
		if name, err := store.CurrentName(); err == nil {
			if p, err := store.Load(name); err == nil && p.DefaultLocation != "" {
				return p.DefaultLocation, nil
			}
		}
	}
	return "", fmt.Errorf("no location given and no default location in the active profile")
}
