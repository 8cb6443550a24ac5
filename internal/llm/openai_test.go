package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newOpenAIStub(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/chat/completions" {
			t.Errorf("path=%q", r.URL.Path)
		}
		var req struct {
			Model    string `json:"model"`
			Messages []struct {
				Role    string `json:"role"`
				Content string `json:"content"`
			} `json:"messages"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode: %v", err)
		}
		if len(req.Messages) != 1 || req.Messages[0].Role != "user" {
			t.Errorf("messages=%+v", req.Messages)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestOpenAI_GenerateText(t *testing.T) {
	t.Parallel()

	srv := newOpenAIStub(t, http.StatusOK, `{"id":"c1","object":"chat.completion","choices":[{"index":0,"message":{"role":"assistant","content":"{\"trip_title\":\"Goa\"}"},"finish_reason":"stop"}]}`)
	o := NewOpenAI("k", "gpt-test", srv.URL+"/v1")

	text, err := o.GenerateText(context.Background(), "plan")
	if err != nil {
		t.Fatalf("GenerateText: %v", err)
	}
	if text != `{"trip_title":"Goa"}` {
		t.Fatalf("text=%q", text)
	}
}

func TestOpenAI_GenerateText_NoChoices(t *testing.T) {
	t.Parallel()

	srv := newOpenAIStub(t, http.StatusOK, `{"id":"c1","object":"chat.completion","choices":[]}`)
	text, err := NewOpenAI("k", "gpt-test", srv.URL+"/v1").GenerateText(context.Background(), "plan")
	if err != nil {
		t.Fatalf("GenerateText: %v", err)
	}
	if text != "" {
		t.Fatalf("text=%q", text)
	}
}

func TestOpenAI_GenerateText_APIError(t *testing.T) {
	t.Parallel()

	srv := newOpenAIStub(t, http.StatusUnauthorized, `{"error":{"message":"Incorrect API key provided","type":"invalid_request_error","code":"invalid_api_key"}}`)
	_, err := NewOpenAI("bad", "gpt-test", srv.URL+"/v1").GenerateText(context.Background(), "plan")

	var upErr *UpstreamError
	if !errors.As(err, &upErr) {
		t.Fatalf("expected UpstreamError, got %T %v", err, err)
	}
	if upErr.Provider != "openai" || upErr.Status != http.StatusUnauthorized {
		t.Fatalf("upErr=%+v", upErr)
	}
	if upErr.Message != "Incorrect API key provided" {
		t.Fatalf("message=%q", upErr.Message)
	}
}
