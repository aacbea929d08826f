package story

import "fmt"

// Synthetic returns the fixed offline story for a location. It is the final
// fallback of every generation chain and the whole story in offline mode.
func Synthetic(location string) WeatherStory {
	return WeatherStory{
		Setup: fmt.Sprintf(
			"High pressure dominates over %s, creating stable atmospheric conditions.",
			location,
		),
		Current: "Clear skies with light winds. Temperature comfortable for the season.",
		Evolution: Timeline{
			Phases: []TimelinePhase{
				{
					StartTime:   "Now",
					EndTime:     "6 hours",
					Description: "Conditions remain stable with gradual temperature change",
					KeyChanges:  []string{"Slow temperature transition"},
					Confidence:  0.8,
				},
				{
					StartTime:   "6 hours",
					EndTime:     "12 hours",
					Description: "Continuing stable pattern",
					KeyChanges:  []string{},
					Confidence:  0.7,
				},
			},
		},
		Meteorology: "High pressure ridge maintains control, suppressing cloud development and precipitation. Classic fair weather pattern.",
		Decisions: []Decision{
			{
				Activity:       "Outdoor activities",
				Recommendation: "Excellent conditions for any outdoor plans",
				Reasoning:      "Stable weather with no precipitation expected",
				Timing:         "Any time today",
				Confidence:     0.85,
			},
		},
		Confidence: ConfidenceNote{
			PrimaryUncertainty:   "Timing of next weather system",
			AlternativeScenarios: []string{"Pattern holds longer than expected"},
			ConfidenceLevel:      ConfidenceMedium,
			Rationale:            "Synthetic data - offline mode",
		},
		BottomLine: fmt.Sprintf(
			"Stable, fair weather continues over %s with no significant changes expected.",
			location,
		),
	}
}
