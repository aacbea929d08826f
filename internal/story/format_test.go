package story

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestConfidenceBar(t *testing.T) {
	tests := []struct {
		confidence float64
		want       string
	}{
		{0.0, "░░░░░░░░░░"},
		{0.5, "█████░░░░░"},
		{0.85, "████████░░"},
		{1.0, "██████████"},
		{-0.2, "░░░░░░░░░░"},
		{1.5, "██████████"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ConfidenceBar(tt.confidence))
	}
}

func TestConfidenceBarAlwaysTenCells(t *testing.T) {
	for c := -0.5; c <= 1.5; c += 0.05 {
		bar := ConfidenceBar(c)
		assert.Equal(t, 10, utf8.RuneCountInString(bar), "confidence %f", c)
	}
}

func TestActivityIcon(t *testing.T) {
	tests := []struct {
		activity string
		want     string
	}{
		{"Morning commute", "🚗"},
		{"Bike ride", "🚴"},
		{"Evening run", "🏃"},
		{"Dog walk", "🚶"},
		{"Outdoor lunch", "🌳"},
		{"Sailing trip", "⛵"},
		{"Marine forecast check", "⛵"},
		{"School pickup", "🎒"},
		{"Gardening", "📌"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ActivityIcon(tt.activity), tt.activity)
	}
}

func TestTimelineVisualization(t *testing.T) {
	tl := Timeline{Phases: []TimelinePhase{
		{StartTime: "Now", EndTime: "3pm", Description: "Rain builds", KeyChanges: []string{"Wind shift"}, Confidence: 0.9},
		{StartTime: "3pm", EndTime: "9pm", Description: "Steady rain", Confidence: 0.7},
	}}

	viz := tl.Visualization()
	lines := strings.Split(viz, "\n")

	assert.Equal(t, "├─ Now – 3pm: Rain builds", lines[0])
	assert.Contains(t, viz, "• Wind shift")
	assert.Contains(t, viz, "└─ 3pm – 9pm: Steady rain")
	assert.Contains(t, viz, ConfidenceBar(0.9))
	assert.Contains(t, viz, ConfidenceBar(0.7))
}

func TestTimelineVisualizationEmpty(t *testing.T) {
	assert.Equal(t, "", Timeline{}.Visualization())
}
