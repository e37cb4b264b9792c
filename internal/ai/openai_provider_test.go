package ai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/amishk599/jobscout/internal/model"
)

func makeTestServer(t *testing.T, statusCode int, body any) (*httptest.Server, *http.Client) {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if statusCode == http.StatusTooManyRequests {
			w.Header().Set("Retry-After", "3")
		}
		w.WriteHeader(statusCode)
		if err := json.NewEncoder(w).Encode(body); err != nil {
			t.Errorf("encode response: %v", err)
		}
	}))
	t.Cleanup(srv.Close)
	return srv, srv.Client()
}

func replyWith(content string) chatResponse {
	return chatResponse{Choices: []chatChoice{{Message: chatMessage{Role: "assistant", Content: content}}}}
}

func TestComplete_Success(t *testing.T) {
	srv, client := makeTestServer(t, http.StatusOK, replyWith(`{"match_score":70}`))

	provider := NewOpenAIProvider(srv.URL, "test-key", "test-model", client)
	got, err := provider.Complete(context.Background(), "analyze this")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != `{"match_score":70}` {
		t.Errorf("got %q, want json string", got)
	}
}

func TestComplete_HTTPError(t *testing.T) {
	srv, client := makeTestServer(t, http.StatusInternalServerError, map[string]string{"error": "server error"})

	provider := NewOpenAIProvider(srv.URL, "test-key", "test-model", client)
	_, err := provider.Complete(context.Background(), "analyze this")
	if err == nil {
		t.Fatal("expected error on 5xx response")
	}
	var httpErr *model.HTTPError
	if !errors.As(err, &httpErr) || httpErr.StatusCode != http.StatusInternalServerError {
		t.Errorf("expected *model.HTTPError with 500, got %v", err)
	}
}

func TestComplete_RateLimited(t *testing.T) {
	srv, client := makeTestServer(t, http.StatusTooManyRequests, map[string]string{"error": "rate limited"})

	provider := NewOpenAIProvider(srv.URL, "test-key", "test-model", client)
	_, err := provider.Complete(context.Background(), "analyze this")
	var httpErr *model.HTTPError
	if !errors.As(err, &httpErr) {
		t.Fatalf("expected *model.HTTPError, got %v", err)
	}
	if httpErr.RetryAfter != 3*time.Second {
		t.Errorf("RetryAfter = %v, want 3s", httpErr.RetryAfter)
	}
}

func TestComplete_EmptyChoices(t *testing.T) {
	srv, client := makeTestServer(t, http.StatusOK, chatResponse{})

	provider := NewOpenAIProvider(srv.URL, "test-key", "test-model", client)
	_, err := provider.Complete(context.Background(), "analyze this")
	if err == nil {
		t.Fatal("expected error when LLM returns no choices")
	}
}

func TestComplete_SetsAuthHeader(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(replyWith("ok"))
	}))
	defer srv.Close()

	provider := NewOpenAIProvider(srv.URL, "my-secret-key", "test-model", srv.Client())
	_, _ = provider.Complete(context.Background(), "hello")

	if gotAuth != "Bearer my-secret-key" {
		t.Errorf("Authorization header = %q, want %q", gotAuth, "Bearer my-secret-key")
	}
}

func TestComplete_SendsStructuredOutputFormat(t *testing.T) {
	var (
		gotReq  chatRequest
		gotPath string
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(replyWith("{}"))
	}))
	defer srv.Close()

	provider := NewOpenAIProvider(srv.URL+"/v1/", "key", "gpt-4o-mini", srv.Client())
	_, _ = provider.Complete(context.Background(), "analyze this")

	if gotPath != "/v1/chat/completions" {
		t.Errorf("path = %q, want /v1/chat/completions", gotPath)
	}
	if gotReq.Model != "gpt-4o-mini" {
		t.Errorf("model = %q", gotReq.Model)
	}
	if gotReq.ResponseFormat.Type != "json_schema" {
		t.Errorf("response_format.type = %q, want json_schema", gotReq.ResponseFormat.Type)
	}
	if gotReq.ResponseFormat.JSONSchema.Name != "fit_analysis" || !gotReq.ResponseFormat.JSONSchema.Strict {
		t.Errorf("json_schema = %+v, want strict fit_analysis", gotReq.ResponseFormat.JSONSchema)
	}
	if len(gotReq.Messages) != 2 || gotReq.Messages[1].Content != "analyze this" {
		t.Errorf("messages = %+v", gotReq.Messages)
	}
}
