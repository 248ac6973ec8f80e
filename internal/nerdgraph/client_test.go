package nerdgraph

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestQuerySendsAuthHeader(t *testing.T) {
	var gotKey, gotType string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("API-Key")
		gotType = r.Header.Get("Content-Type")
		_, _ = w.Write([]byte(`{"data":{"ok":true}}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "NRAK-test")
	data, err := client.Query(context.Background(), "{ actor { user { id } } }", nil)
	if err != nil {
		t.Fatalf("Query() error: %v", err)
	}

	if gotKey != "NRAK-test" {
		t.Errorf("API-Key header = %q, want NRAK-test", gotKey)
	}
	if gotType != "application/json" {
		t.Errorf("Content-Type = %q", gotType)
	}
	if string(data) != `{"ok":true}` {
		t.Errorf("data = %s", data)
	}
}

func TestQueryMarshalsVariables(t *testing.T) {
	var body map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode request: %v", err)
		}
		_, _ = w.Write([]byte(`{"data":{}}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "key")
	_, err := client.Query(context.Background(), "query", map[string]any{"accountId": 123})
	if err != nil {
		t.Fatalf("Query() error: %v", err)
	}

	vars, _ := body["variables"].(map[string]any)
	if vars["accountId"] != float64(123) {
		t.Errorf("variables = %v", body["variables"])
	}
}

func TestQueryGraphQLErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"errors":[{"message":"NRQL Syntax Error"}]}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "key")
	_, err := client.Query(context.Background(), "query", nil)

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("Query() error = %v, want *APIError", err)
	}
	if len(apiErr.Messages) != 1 || apiErr.Messages[0] != "NRQL Syntax Error" {
		t.Errorf("Messages = %v", apiErr.Messages)
	}
}

func TestQueryHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "bad-key")
	_, err := client.Query(context.Background(), "query", nil)
	if err == nil {
		t.Fatal("Query() = nil error for 401 response")
	}
}

func TestNewClientDefaultEndpoint(t *testing.T) {
	client := NewClient("", "key")
	if client.Endpoint() != EndpointUS {
		t.Errorf("Endpoint() = %q, want %q", client.Endpoint(), EndpointUS)
	}
}
