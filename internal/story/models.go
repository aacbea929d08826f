// Package story turns weather feature packs into narrative stories.
package story

// ConfidenceLevel is the coarse certainty grade attached to a story.
type ConfidenceLevel string

const (
	ConfidenceHigh   ConfidenceLevel = "High"
	ConfidenceMedium ConfidenceLevel = "Medium"
	ConfidenceLow    ConfidenceLevel = "Low"
)

// WeatherStory is a complete narrative: atmospheric setup, present state,
// timeline of change, the meteorology behind it, activity decisions, and an
// honest confidence note.
type WeatherStory struct {
	Setup       string         `json:"setup"`
	Current     string         `json:"current"`
	Evolution   Timeline       `json:"evolution"`
	Meteorology string         `json:"meteorology"`
	Decisions   []Decision     `json:"decisions"`
	Confidence  ConfidenceNote `json:"confidence"`
	BottomLine  string         `json:"bottom_line"`
	Meta        map[string]any `json:"meta,omitempty"`
}

// Timeline is the temporal progression of the story.
type Timeline struct {
	Phases []TimelinePhase `json:"phases"`
}

// TimelinePhase is one span of the timeline with what changes during it.
type TimelinePhase struct {
	StartTime   string   `json:"start_time"`
	EndTime     string   `json:"end_time"`
	Description string   `json:"description"`
	KeyChanges  []string `json:"key_changes"`
	Confidence  float64  `json:"confidence"`
}

// Decision is an activity recommendation tied to the story.
type Decision struct {
	Activity       string  `json:"activity"`
	Recommendation string  `json:"recommendation"`
	Reasoning      string  `json:"reasoning"`
	Timing         string  `json:"timing,omitempty"`
	Confidence     float64 `json:"confidence"`
}

// ConfidenceNote states where the story is least certain and what else
// could plausibly happen.
type ConfidenceNote struct {
	PrimaryUncertainty   string          `json:"primary_uncertainty"`
	AlternativeScenarios []string        `json:"alternative_scenarios"`
	ConfidenceLevel      ConfidenceLevel `json:"confidence_level"`
	Rationale            string          `json:"rationale"`
}
