// Package nerdgraph is a thin client for New Relic's GraphQL API. It owns
// authentication, pagination, and response decoding; all analysis of the
// fetched records lives in the incident package.
package nerdgraph

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// NerdGraph regional endpoints.
const (
	EndpointUS = "https://api.newrelic.com/graphql"
	EndpointEU = "https://api.eu.newrelic.com/graphql"
)

// APIError is a GraphQL-level error returned in an otherwise successful
// response body.
type APIError struct {
	Messages []string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("nerdgraph: %s", strings.Join(e.Messages, "; "))
}

// Client talks to a single NerdGraph endpoint with a single API key.
type Client struct {
	endpoint string
	apiKey   string
	httpc    *http.Client
}

// NewClient creates a client for the given endpoint and user API key. An
// empty endpoint defaults to the US region.
func NewClient(endpoint, apiKey string) *Client {
	if endpoint == "" {
		endpoint = EndpointUS
	}
	return &Client{
		endpoint: endpoint,
		apiKey:   apiKey,
		httpc:    &http.Client{Timeout: 30 * time.Second},
	}
}

// SetHTTPClient overrides the underlying HTTP client, primarily for tests.
func (c *Client) SetHTTPClient(h *http.Client) {
	c.httpc = h
}

// Endpoint returns the configured GraphQL URL.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// Query posts a GraphQL query with variables and returns the raw "data"
// object. GraphQL errors in the body surface as *APIError.
func (c *Client) Query(ctx context.Context, query string, variables map[string]any) (json.RawMessage, error) {
	body, err := json.Marshal(map[string]any{
		"query":     query,
		"variables": variables,
	})
	if err != nil {
		return nil, fmt.Errorf("encode query: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("API-Key", c.apiKey)

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("post query: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("nerdgraph returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(snippet)))
	}

	var envelope struct {
		Data   json.RawMessage `json:"data"`
		Errors []struct {
			Message string `json:"message"`
		} `json:"errors"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	if len(envelope.Errors) > 0 {
		apiErr := &APIError{}
		for _, e := range envelope.Errors {
			apiErr.Messages = append(apiErr.Messages, e.Message)
		}
		return nil, apiErr
	}

	return envelope.Data, nil
}
