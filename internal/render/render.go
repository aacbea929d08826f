// Package render draws stories, forecasts, and alerts on the terminal.
package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"wxstory/internal/story"
	"wxstory/internal/weather"
)

var sectionWidth = 60

// Story writes the full narrative layout: setup, present, evolution,
// meteorology, decisions, confidence, bottom line.
func Story(w io.Writer, s story.WeatherStory, verbose bool) {
	title := color.New(color.FgCyan, color.Bold)
	fmt.Fprintf(w, "\n%s\n\n", title.Sprint("📖  Weather Story"))

	sectionHeader(w, "🌤️  THE SETUP", "What's Happening", color.FgBlue)
	fmt.Fprintf(w, "%s\n\n", s.Setup)

	sectionHeader(w, "🌡️  THE PRESENT", "", color.FgCyan)
	fmt.Fprintf(w, "%s\n\n", s.Current)

	if len(s.Evolution.Phases) > 0 {
		sectionHeader(w, "⏳  THE EVOLUTION", "Your Next Hours", color.FgYellow)
		fmt.Fprintf(w, "%s\n\n", s.Evolution.Visualization())
	}

	sectionHeader(w, "🌀  THE METEOROLOGY", "Why This Matters", color.FgMagenta)
	fmt.Fprintf(w, "%s\n\n", s.Meteorology)

	if len(s.Decisions) > 0 {
		sectionHeader(w, "🎯  YOUR DECISIONS", "What To Do", color.FgGreen)
		for _, d := range s.Decisions {
			bold := color.New(color.Bold)
			dim := color.New(color.Faint)
			fmt.Fprintf(w, "%s %s\n", story.ActivityIcon(d.Activity), bold.Sprint(d.Activity))
			fmt.Fprintf(w, "   → %s\n", d.Recommendation)
			fmt.Fprintf(w, "   %s\n", dim.Sprintf("Why: %s", d.Reasoning))
			if d.Timing != "" {
				fmt.Fprintf(w, "   %s\n", dim.Sprintf("Best timing: %s", d.Timing))
			}
			fmt.Fprintf(w, "   %s\n\n", dim.Sprintf("Confidence: %s", story.ConfidenceBar(d.Confidence)))
		}
	}

	sectionHeader(w, "📊  CONFIDENCE NOTES", "", color.FgWhite)
	fmt.Fprintf(w, "%s %s\n", color.YellowString("⚠️  Primary uncertainty:"), s.Confidence.PrimaryUncertainty)

	if len(s.Confidence.AlternativeScenarios) > 0 {
		fmt.Fprintf(w, "\n%s\n", color.CyanString("Alternative scenarios:"))
		for _, scenario := range s.Confidence.AlternativeScenarios {
			fmt.Fprintf(w, "  • %s\n", scenario)
		}
	}

	fmt.Fprintf(w, "\nOverall confidence: %s\n", confidenceLevel(s.Confidence.ConfidenceLevel))
	if s.Confidence.Rationale != "" {
		fmt.Fprintf(w, "%s\n", color.New(color.Faint).Sprint(s.Confidence.Rationale))
	}
	fmt.Fprintln(w)

	fmt.Fprintf(w, "%s %s\n\n", color.YellowString("💡"), color.New(color.Bold, color.FgYellow).Sprint(s.BottomLine))

	if verbose && s.Meta != nil {
		meta, err := json.Marshal(s.Meta)
		if err == nil {
			fmt.Fprintf(w, "%s\n", color.New(color.Faint).Sprintf("Meta: %s", meta))
		}
	}
}

func confidenceLevel(level story.ConfidenceLevel) string {
	switch level {
	case story.ConfidenceHigh:
		return color.GreenString(string(level))
	case story.ConfidenceLow:
		return color.RedString(string(level))
	default:
		return color.YellowString(string(level))
	}
}

func sectionHeader(w io.Writer, heading, subtitle string, c color.Attribute) {
	separator := color.New(c).Sprint(strings.Repeat("━", sectionWidth))
	bold := color.New(color.Bold)

	fmt.Fprintln(w, separator)
	if subtitle == "" {
		fmt.Fprintln(w, bold.Sprint(heading))
	} else {
		fmt.Fprintf(w, "%s %s\n", bold.Sprint(heading), color.New(color.Faint).Sprint(subtitle))
	}
	fmt.Fprintln(w, separator)
}

// Alerts writes the active alert list, or a calm all-clear line when there
// are none.
func Alerts(w io.Writer, location string, alerts []weather.Alert) {
	if len(alerts) == 0 {
		fmt.Fprintf(w, "%s No active alerts for %s.\n", color.GreenString("✓"), location)
		return
	}

	fmt.Fprintf(w, "\n%s\n\n", color.New(color.FgRed, color.Bold).Sprintf("⚠️  Active alerts for %s", location))
	for _, a := range alerts {
		fmt.Fprintf(w, "%s %s\n", severityBadge(a.Severity), color.New(color.Bold).Sprint(a.Event))
		if len(a.Areas) > 0 {
			fmt.Fprintf(w, "   Areas: %s\n", strings.Join(a.Areas, ", "))
		}
		if a.Description != "" {
			fmt.Fprintf(w, "   %s\n", color.New(color.Faint).Sprint(firstLine(a.Description)))
		}
		fmt.Fprintln(w)
	}
}

func severityBadge(severity string) string {
	switch strings.ToLower(severity) {
	case "extreme", "severe":
		return color.New(color.FgRed, color.Bold).Sprintf("[%s]", severity)
	case "moderate":
		return color.YellowString("[%s]", severity)
	default:
		return fmt.Sprintf("[%s]", severity)
	}
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}

// JSON writes v pretty-printed.
func JSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
