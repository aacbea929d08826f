package story

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"wxstory/internal/metrics"
	"wxstory/internal/weather"
)

// Provider is one narrative backend. Complete returns the model's raw text
// for a prompt.
type Provider interface {
	Name() string
	Complete(ctx context.Context, prompt string) (string, error)
}

// Request carries the user's intent into story generation.
type Request struct {
	Query       string
	When        string
	Horizon     string
	Focus       string
	CurrentTime string
	Verbose     bool
}

// Generator produces weather stories by trying its providers in order and
// falling back to the synthetic story when none succeeds. Generation never
// fails: the caller always gets a complete story.
type Generator struct {
	providers []Provider
	log       *slog.Logger
	metrics   *metrics.Collector
}

// NewGenerator creates a generator over an ordered provider chain. The
// chain may be empty, in which case every story is synthetic.
func NewGenerator(providers []Provider, log *slog.Logger, col *metrics.Collector) *Generator {
	if log == nil {
		log = slog.Default()
	}
	return &Generator{providers: providers, log: log, metrics: col}
}

// Generate builds a story for the pack. Providers are tried in order; the
// first parseable response wins. With no providers configured the result is
// exactly the synthetic story. When providers were attempted and all
// failed, the synthetic story carries a meta record of each failure.
func (g *Generator) Generate(ctx context.Context, pack weather.FeaturePack, req Request) WeatherStory {
	location := req.Query
	if pack.Location != nil && pack.Location.Name != "" {
		location = pack.Location.Name
	}

	if len(g.providers) == 0 {
		g.metrics.RecordStory("synthetic")
		return Synthetic(location)
	}

	prompt := buildPrompt(pack, req, location)

	var failures []string
	for _, p := range g.providers {
		raw, err := p.Complete(ctx, prompt)
		if err != nil {
			g.log.Warn("story provider failed", "provider", p.Name(), "error", err)
			failures = append(failures, fmt.Sprintf("%s: %v", p.Name(), err))
			continue
		}

		s, err := parseStory(raw)
		if err != nil {
			g.log.Warn("story response unparseable", "provider", p.Name(), "error", err)
			failures = append(failures, fmt.Sprintf("%s: %v", p.Name(), err))
			continue
		}

		s.Meta = map[string]any{
			"story_id": uuid.NewString(),
			"provider": p.Name(),
			"location": location,
			"query":    req.Query,
		}
		g.metrics.RecordStory(p.Name())
		return s
	}

	g.log.Warn("all story providers failed, using synthetic story", "location", location)
	s := Synthetic(location)
	s.Meta = map[string]any{
		"story_id": uuid.NewString(),
		"provider": "synthetic",
		"fallback": failures,
	}
	g.metrics.RecordStory("synthetic")
	return s
}

const promptTemplate = `You are an expert meteorologist crafting a weather story, not just reporting data.

Your story must educate, inform, and guide decisions. Tell people WHY weather happens,
not just WHAT happens. Use clear language but don't avoid meteorological concepts;
explain them naturally.

Structure your response as a JSON object with these sections:

{
  "setup": "2-3 sentences explaining the atmospheric pattern causing current conditions",
  "current": "2-3 sentences describing present conditions with interpretation",
  "evolution": {
    "phases": [
      {
        "start_time": "readable time (e.g., '7am', 'noon', 'evening')",
        "end_time": "readable time",
        "description": "what happens during this phase and why",
        "key_changes": ["specific changes to watch for"],
        "confidence": 0.7
      }
    ]
  },
  "meteorology": "2-3 sentences explaining WHY using concepts like fronts, pressure systems, jet stream, etc.",
  "decisions": [
    {
      "activity": "specific activity type (e.g., 'Morning commute', 'Outdoor lunch', 'Evening run')",
      "recommendation": "clear guidance",
      "reasoning": "why this recommendation makes sense",
      "timing": "best timing if relevant",
      "confidence": 0.8
    }
  ],
  "confidence": {
    "primary_uncertainty": "where is uncertainty highest?",
    "alternative_scenarios": ["what else could happen?"],
    "confidence_level": "High|Medium|Low",
    "rationale": "why this confidence level?"
  },
  "bottom_line": "single compelling sentence that captures the story"
}

Context:
- Location: %s
- Current time: %s
- User query: %s
- Time horizon: %s

Weather Data (Feature Pack):
%s
%s
Guidelines:
- Create 3-5 evolution phases covering the time horizon
- Make decisions relevant to this location and time of day
- Use specific times (not vague "later" or "soon")
- Explain causality (fronts moving, systems clashing, energy building)
- Be honest about uncertainty; don't fake precision
- Make the bottom line memorable

Generate the weather story now as valid JSON:`

func buildPrompt(pack weather.FeaturePack, req Request, location string) string {
	currentTime := req.CurrentTime
	if currentTime == "" {
		currentTime = time.Now().Format("2006-01-02 15:04")
	}
	horizon := req.Horizon
	if horizon == "" {
		horizon = "next 12 hours"
	}

	query := req.Query
	if req.When != "" {
		query = fmt.Sprintf("%s (time reference: %s)", query, req.When)
	}
	if req.Focus != "" {
		query = fmt.Sprintf("%s (focus: %s)", query, req.Focus)
	}

	packJSON, err := json.MarshalIndent(pack, "", "  ")
	if err != nil {
		packJSON = []byte("{}")
	}

	var safety string
	if len(pack.Alerts) > 0 {
		var b strings.Builder
		b.WriteString("\nActive alerts (address these prominently in the story):\n")
		for _, a := range pack.Alerts {
			fmt.Fprintf(&b, "- %s (%s)\n", a.Event, a.Severity)
		}
		safety = b.String()
	}

	return fmt.Sprintf(promptTemplate, location, currentTime, query, horizon, packJSON, safety)
}

// parseStory decodes a model response leniently: fenced code blocks are
// stripped and missing sections get neutral defaults. Only a response with
// no JSON object at all is an error.
func parseStory(raw string) (WeatherStory, error) {
	cleaned := stripFences(raw)

	start := strings.Index(cleaned, "{")
	end := strings.LastIndex(cleaned, "}")
	if start < 0 || end <= start {
		return WeatherStory{}, fmt.Errorf("no JSON object in response")
	}

	var s WeatherStory
	if err := json.Unmarshal([]byte(cleaned[start:end+1]), &s); err != nil {
		return WeatherStory{}, fmt.Errorf("decoding story: %w", err)
	}

	applyDefaults(&s)
	return s, nil
}

func stripFences(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}
	trimmed = strings.TrimPrefix(trimmed, "```json")
	trimmed = strings.TrimPrefix(trimmed, "```")
	trimmed = strings.TrimSuffix(strings.TrimSpace(trimmed), "```")
	return strings.TrimSpace(trimmed)
}

func applyDefaults(s *WeatherStory) {
	if s.Setup == "" {
		s.Setup = "Weather conditions are evolving."
	}
	if s.Current == "" {
		s.Current = "Current conditions are being analyzed."
	}
	if s.Meteorology == "" {
		s.Meteorology = "Standard atmospheric processes are at play."
	}
	if s.BottomLine == "" {
		s.BottomLine = "Stay informed."
	}
	if s.Confidence.PrimaryUncertainty == "" {
		s.Confidence.PrimaryUncertainty = "Timing and intensity"
	}
	if s.Confidence.ConfidenceLevel == "" {
		s.Confidence.ConfidenceLevel = ConfidenceMedium
	}
	if s.Confidence.Rationale == "" {
		s.Confidence.Rationale = "Based on model agreement"
	}
	for i := range s.Decisions {
		d := &s.Decisions[i]
		if d.Activity == "" {
			d.Activity = "General"
		}
		if d.Recommendation == "" {
			d.Recommendation = "Monitor conditions"
		}
		if d.Reasoning == "" {
			d.Reasoning = "Based on current forecast"
		}
		if d.Confidence == 0 {
			d.Confidence = 0.7
		}
	}
	for i := range s.Evolution.Phases {
		p := &s.Evolution.Phases[i]
		if p.KeyChanges == nil {
			p.KeyChanges = []string{}
		}
		if p.Confidence == 0 {
			p.Confidence = 0.7
		}
	}
}
