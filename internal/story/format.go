package story

import (
	"fmt"
	"strings"
)

// ConfidenceBar renders a ten-cell bar for a confidence in [0, 1].
func ConfidenceBar(confidence float64) string {
	filled := int(confidence * 10)
	if filled < 0 {
		filled = 0
	}
	if filled > 10 {
		filled = 10
	}
	return strings.Repeat("█", filled) + strings.Repeat("░", 10-filled)
}

// activityIcons is checked in order; the first keyword contained in the
// activity wins.
var activityIcons = []struct {
	keyword string
	icon    string
}{
	{"commute", "🚗"},
	{"bike", "🚴"},
	{"run", "🏃"},
	{"walk", "🚶"},
	{"outdoor", "🌳"},
	{"lunch", "☕"},
	{"dinner", "🍽️"},
	{"aviation", "✈️"},
	{"sailing", "⛵"},
	{"marine", "⛵"},
	{"sports", "⚽"},
	{"event", "📅"},
	{"travel", "🧳"},
	{"work", "💼"},
	{"school", "🎒"},
}

// ActivityIcon maps an activity name to its emoji.
func ActivityIcon(activity string) string {
	lower := strings.ToLower(activity)
	for _, e := range activityIcons {
		if strings.Contains(lower, e.keyword) {
			return e.icon
		}
	}
	return "📌"
}

// Visualization renders the timeline as a box-drawing tree with per-phase
// key changes and confidence bars.
func (t Timeline) Visualization() string {
	var lines []string
	count := len(t.Phases)

	for i, phase := range t.Phases {
		last := i == count-1
		prefix := "├─"
		indent := "│  "
		if last {
			prefix = "└─"
			indent = "   "
		}

		lines = append(lines, fmt.Sprintf("%s %s – %s: %s", prefix, phase.StartTime, phase.EndTime, phase.Description))
		for _, change := range phase.KeyChanges {
			lines = append(lines, fmt.Sprintf("%s  • %s", indent, change))
		}
		lines = append(lines, fmt.Sprintf("%sConfidence: %s", indent, ConfidenceBar(phase.Confidence)))

		if !last {
			lines = append(lines, "│")
		}
	}

	return strings.Join(lines, "\n")
}
