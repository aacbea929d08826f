package story

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wxstory/internal/weather"
)

type fakeProvider struct {
	name     string
	response string
	err      error
	prompts  []string
}

func (f *fakeProvider) Name() string { return f.name }

func (f *fakeProvider) Complete(ctx context.Context, prompt string) (string, error) {
	f.prompts = append(f.prompts, prompt)
	if f.err != nil {
		return "", f.err
	}
	return f.response, nil
}

const goodResponse = `{
	"setup": "A cold front approaches from the northwest.",
	"current": "Overcast with light rain beginning.",
	"evolution": {"phases": [
		{"start_time": "Now", "end_time": "3pm", "description": "Rain intensifies", "key_changes": ["Wind shift to SW"], "confidence": 0.9}
	]},
	"meteorology": "The front's lift destabilizes the lower atmosphere.",
	"decisions": [
		{"activity": "Evening run", "recommendation": "Go before 5pm", "reasoning": "Heaviest rain arrives after dark", "timing": "4pm", "confidence": 0.8}
	],
	"confidence": {
		"primary_uncertainty": "Frontal timing",
		"alternative_scenarios": ["Front stalls offshore"],
		"confidence_level": "High",
		"rationale": "Strong model agreement"
	},
	"bottom_line": "Rain builds through the evening, get outside early."
}`

func TestGenerateNoProviders(t *testing.T) {
	g := NewGenerator(nil, nil, nil)
	pack := weather.SyntheticPack("Seattle")

	got := g.Generate(context.Background(), pack, Request{Query: "Seattle"})

	assert.Equal(t, Synthetic("Seattle"), got)
	assert.Nil(t, got.Meta)
}

func TestGenerateFromProvider(t *testing.T) {
	p := &fakeProvider{name: "openrouter", response: goodResponse}
	g := NewGenerator([]Provider{p}, nil, nil)
	pack := weather.SyntheticPack("Seattle")

	got := g.Generate(context.Background(), pack, Request{Query: "will it rain?", Horizon: "next 12 hours"})

	assert.Equal(t, "A cold front approaches from the northwest.", got.Setup)
	require.Len(t, got.Evolution.Phases, 1)
	assert.Equal(t, "Rain intensifies", got.Evolution.Phases[0].Description)
	require.Len(t, got.Decisions, 1)
	assert.Equal(t, "Evening run", got.Decisions[0].Activity)
	assert.Equal(t, ConfidenceHigh, got.Confidence.ConfidenceLevel)

	require.NotNil(t, got.Meta)
	assert.Equal(t, "openrouter", got.Meta["provider"])
	assert.NotEmpty(t, got.Meta["story_id"])

	require.Len(t, p.prompts, 1)
	assert.Contains(t, p.prompts[0], "Seattle")
	assert.Contains(t, p.prompts[0], "will it rain?")
	assert.Contains(t, p.prompts[0], "next 12 hours")
}

func TestGenerateFencedResponse(t *testing.T) {
	p := &fakeProvider{name: "gemini", response: "```json\n" + goodResponse + "\n```"}
	g := NewGenerator([]Provider{p}, nil, nil)

	got := g.Generate(context.Background(), weather.SyntheticPack("Seattle"), Request{Query: "Seattle"})
	assert.Equal(t, "A cold front approaches from the northwest.", got.Setup)
	assert.Equal(t, "gemini", got.Meta["provider"])
}

func TestGenerateFallbackChain(t *testing.T) {
	first := &fakeProvider{name: "openrouter", err: errors.New("quota exceeded")}
	second := &fakeProvider{name: "gemini", response: goodResponse}
	g := NewGenerator([]Provider{first, second}, nil, nil)

	got := g.Generate(context.Background(), weather.SyntheticPack("Seattle"), Request{Query: "Seattle"})
	assert.Equal(t, "gemini", got.Meta["provider"])
	assert.Len(t, first.prompts, 1)
	assert.Len(t, second.prompts, 1)
}

func TestGenerateAllProvidersFail(t *testing.T) {
	first := &fakeProvider{name: "openrouter", err: errors.New("quota exceeded")}
	second := &fakeProvider{name: "gemini", response: "I cannot help with that."}
	g := NewGenerator([]Provider{first, second}, nil, nil)

	got := g.Generate(context.Background(), weather.SyntheticPack("Seattle"), Request{Query: "Seattle"})

	synthetic := Synthetic("Seattle")
	assert.Equal(t, synthetic.Setup, got.Setup)
	assert.Equal(t, synthetic.BottomLine, got.BottomLine)

	require.NotNil(t, got.Meta)
	assert.Equal(t, "synthetic", got.Meta["provider"])
	reasons, ok := got.Meta["fallback"].([]string)
	require.True(t, ok)
	require.Len(t, reasons, 2)
	assert.True(t, strings.HasPrefix(reasons[0], "openrouter:"))
	assert.True(t, strings.HasPrefix(reasons[1], "gemini:"))
}

func TestGenerateAlertsInPrompt(t *testing.T) {
	p := &fakeProvider{name: "openrouter", response: goodResponse}
	g := NewGenerator([]Provider{p}, nil, nil)

	pack := weather.SyntheticPack("Seattle")
	pack.Alerts = []weather.Alert{{Event: "Wind Advisory", Severity: "Moderate"}}

	g.Generate(context.Background(), pack, Request{Query: "Seattle"})

	require.Len(t, p.prompts, 1)
	assert.Contains(t, p.prompts[0], "Wind Advisory (Moderate)")
}

func TestParseStoryDefaults(t *testing.T) {
	got, err := parseStory(`{"decisions": [{}], "evolution": {"phases": [{"description": "steady"}]}}`)
	require.NoError(t, err)

	assert.Equal(t, "Weather conditions are evolving.", got.Setup)
	assert.Equal(t, "Stay informed.", got.BottomLine)
	assert.Equal(t, ConfidenceMedium, got.Confidence.ConfidenceLevel)

	require.Len(t, got.Decisions, 1)
	assert.Equal(t, "General", got.Decisions[0].Activity)
	assert.InDelta(t, 0.7, got.Decisions[0].Confidence, 0.001)

	require.Len(t, got.Evolution.Phases, 1)
	assert.NotNil(t, got.Evolution.Phases[0].KeyChanges)
	assert.InDelta(t, 0.7, got.Evolution.Phases[0].Confidence, 0.001)
}

func TestParseStoryNoJSON(t *testing.T) {
	_, err := parseStory("Sorry, I can't produce that.")
	require.Error(t, err)
}
