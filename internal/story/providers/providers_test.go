package providers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenRouterComplete(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		assert.Equal(t, "wxstory", r.Header.Get("X-Title"))

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "test-model", body["model"])

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices":[{"message":{"content":"{\"setup\":\"story\"}"}}]}`))
	}))
	defer server.Close()

	c := NewOpenRouterClient(&http.Client{Timeout: 2 * time.Second}, "test-key", "test-model", 0.7, 2000)
	c.baseURL = server.URL

	got, err := c.Complete(context.Background(), "tell me a story")
	require.NoError(t, err)
	assert.Equal(t, `{"setup":"story"}`, got)
}

func TestOpenRouterEmptyChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices":[]}`))
	}))
	defer server.Close()

	c := NewOpenRouterClient(&http.Client{Timeout: 2 * time.Second}, "k", "m", 0.7, 2000)
	c.baseURL = server.URL

	_, err := c.Complete(context.Background(), "prompt")
	require.Error(t, err)
	assert.ErrorIs(t, err, errEmptyResponse)
}

func TestOpenRouterHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusPaymentRequired)
		w.Write([]byte(`{"error":"insufficient credits"}`))
	}))
	defer server.Close()

	c := NewOpenRouterClient(&http.Client{Timeout: 2 * time.Second}, "k", "m", 0.7, 2000)
	c.baseURL = server.URL

	_, err := c.Complete(context.Background(), "prompt")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "402")
}

func TestGeminiComplete(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/models/gemini-2.0-flash:generateContent", r.URL.Path)
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Contains(t, body, "contents")
		assert.Contains(t, body, "generationConfig")

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"{\"setup\":"},{"text":"\"story\"}"}]}}]}`))
	}))
	defer server.Close()

	c := NewGeminiClient(&http.Client{Timeout: 2 * time.Second}, "test-key", "gemini-2.0-flash", 0.7, 2000)
	c.baseURL = server.URL

	got, err := c.Complete(context.Background(), "tell me a story")
	require.NoError(t, err)
	assert.Equal(t, `{"setup":"story"}`, got)
}

func TestGeminiNoCandidates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"candidates":[]}`))
	}))
	defer server.Close()

	c := NewGeminiClient(&http.Client{Timeout: 2 * time.Second}, "k", "m", 0.7, 2000)
	c.baseURL = server.URL

	_, err := c.Complete(context.Background(), "prompt")
	require.Error(t, err)
	assert.ErrorIs(t, err, errEmptyResponse)
}
