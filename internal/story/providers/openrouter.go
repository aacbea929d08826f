package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/sony/gobreaker"
)

// OpenRouterClient generates completions through the OpenRouter chat API.
type OpenRouterClient struct {
	baseURL     string
	httpClient  *http.Client
	apiKey      string
	model       string
	temperature float64
	maxTokens   int
	circuit     *gobreaker.CircuitBreaker
}

// NewOpenRouterClient creates an OpenRouter-backed story provider.
func NewOpenRouterClient(client *http.Client, apiKey, model string, temperature float64, maxTokens int) *OpenRouterClient {
	return &OpenRouterClient{
		baseURL:     "https://openrouter.ai/api/v1",
		httpClient:  client,
		apiKey:      apiKey,
		model:       model,
		temperature: temperature,
		maxTokens:   maxTokens,
		circuit:     newBreaker("openrouter"),
	}
}

func (c *OpenRouterClient) Name() string { return "openrouter" }

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Complete sends prompt as a single-message chat completion and returns the
// first choice's content.
func (c *OpenRouterClient) Complete(ctx context.Context, prompt string) (string, error) {
	body := map[string]any{
		"model":       c.model,
		"messages":    []chatMessage{{Role: "user", Content: prompt}},
		"temperature": c.temperature,
		"max_tokens":  c.maxTokens,
		"response_format": map[string]string{
			"type": "json_object",
		},
	}
	headers := map[string]string{
		"Authorization": "Bearer " + c.apiKey,
		"X-Title":       "wxstory",
	}

	data, err := postJSON(ctx, c.httpClient, c.circuit, c.baseURL+"/chat/completions", headers, body)
	if err != nil {
		return "", fmt.Errorf("openrouter: %w", err)
	}

	var payload struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return "", fmt.Errorf("openrouter: decoding response: %w", err)
	}
	if len(payload.Choices) == 0 || payload.Choices[0].Message.Content == "" {
		return "", fmt.Errorf("openrouter: %w", errEmptyResponse)
	}
	return payload.Choices[0].Message.Content, nil
}
