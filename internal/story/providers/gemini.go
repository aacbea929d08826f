package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/sony/gobreaker"
)

// GeminiClient generates completions through the Google Generative
// Language API.
type GeminiClient struct {
	baseURL     string
	httpClient  *http.Client
	apiKey      string
	model       string
	temperature float64
	maxTokens   int
	circuit     *gobreaker.CircuitBreaker
}

// NewGeminiClient creates a Gemini-backed story provider.
func NewGeminiClient(client *http.Client, apiKey, model string, temperature float64, maxTokens int) *GeminiClient {
	return &GeminiClient{
		baseURL:     "https://generativelanguage.googleapis.com/v1beta",
		httpClient:  client,
		apiKey:      apiKey,
		model:       model,
		temperature: temperature,
		maxTokens:   maxTokens,
		circuit:     newBreaker("gemini"),
	}
}

func (c *GeminiClient) Name() string { return "gemini" }

// Complete sends prompt as one content part and returns the first
// candidate's text.
func (c *GeminiClient) Complete(ctx context.Context, prompt string) (string, error) {
	body := map[string]any{
		"contents": []map[string]any{
			{"parts": []map[string]string{{"text": prompt}}},
		},
		"generationConfig": map[string]any{
			"temperature":      c.temperature,
			"maxOutputTokens":  c.maxTokens,
			"responseMimeType": "application/json",
		},
	}

	endpoint := fmt.Sprintf("%s/models/%s:generateContent?key=%s",
		c.baseURL, c.model, url.QueryEscape(c.apiKey))

	data, err := postJSON(ctx, c.httpClient, c.circuit, endpoint, nil, body)
	if err != nil {
		return "", fmt.Errorf("gemini: %w", err)
	}

	var payload struct {
		Candidates []struct {
			Content struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"content"`
		} `json:"candidates"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return "", fmt.Errorf("gemini: decoding response: %w", err)
	}
	if len(payload.Candidates) == 0 || len(payload.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("gemini: %w", errEmptyResponse)
	}

	text := ""
	for _, p := range payload.Candidates[0].Content.Parts {
		text += p.Text
	}
	if text == "" {
		return "", fmt.Errorf("gemini: %w", errEmptyResponse)
	}
	return text, nil
}
