// Package ai sends the minimized incident payload to a chat-completions
// endpoint for natural-language summarization. Field minimization is enforced
// upstream by the incident engine; this package only serializes and
// transmits.
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/JimHagan/nr-alert-analyzer/internal/incident"
)

const (
	defaultEndpoint = "https://api.openai.com/v1/chat/completions"
	defaultModel    = "gpt-4o-mini"
)

const systemPrompt = "You are an SRE assistant. Given aggregated alerting data, " +
	"write a short operator-facing summary that separates chronic alert noise " +
	"from acute incidents and calls out the noisiest policies, conditions, and entities."

// Client posts summarization requests to an OpenAI-compatible endpoint.
type Client struct {
	endpoint string
	model    string
	apiKey   string
	httpc    *http.Client
}

// NewClient creates a summarization client. Empty endpoint and model fall
// back to the OpenAI defaults.
func NewClient(endpoint, model, apiKey string) *Client {
	if endpoint == "" {
		endpoint = defaultEndpoint
	}
	if model == "" {
		model = defaultModel
	}
	return &Client{
		endpoint: endpoint,
		model:    model,
		apiKey:   apiKey,
		httpc:    &http.Client{Timeout: 60 * time.Second},
	}
}

// SetHTTPClient overrides the underlying HTTP client, primarily for tests.
func (c *Client) SetHTTPClient(h *http.Client) {
	c.httpc = h
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// Summarize sends the payload and returns the model's summary text.
func (c *Client) Summarize(ctx context.Context, payload incident.Payload) (string, error) {
	encoded, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("encode payload: %w", err)
	}

	body, err := json.Marshal(chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: string(encoded)},
		},
	})
	if err != nil {
		return "", fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpc.Do(req)
	if err != nil {
		return "", fmt.Errorf("post summarization request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("summarization endpoint returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(snippet)))
	}

	var decoded chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if len(decoded.Choices) == 0 {
		return "", fmt.Errorf("summarization endpoint returned no choices")
	}

	return strings.TrimSpace(decoded.Choices[0].Message.Content), nil
}
