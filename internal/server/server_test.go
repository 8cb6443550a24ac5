package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"travelmitra-backend/internal/config"
	"travelmitra-backend/internal/types"
)

// newGeminiStub answers generateContent with text as the first part, or
// with no candidates when text is empty.
func newGeminiStub(t *testing.T, text string, calls *int32) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls != nil {
			atomic.AddInt32(calls, 1)
		}
		if !strings.HasSuffix(r.URL.Path, ":generateContent") {
			t.Errorf("path=%q", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		if text == "" {
			_, _ = w.Write([]byte(`{"candidates":[]}`))
			return
		}
		b, _ := json.Marshal(text)
		_, _ = fmt.Fprintf(w, `{"candidates":[{"content":{"parts":[{"text":%s}]}}]}`, b)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newTestServer(t *testing.T, upstreamURL string) http.Handler {
	t.Helper()
	s, err := NewServer(config.Config{
		AllowedOrigin:  "*",
		Provider:       config.ProviderGemini,
		GeminiAPIKey:   "test-key",
		GeminiModel:    "gemini-test",
		GeminiBaseURL:  upstreamURL,
		PlanValidation: config.ValidationLenient,
	})
	if err != nil {
		t.Fatalf("NewServer: %v", err)
	}
	return s.Router()
}

const goaBody = `{"prompt":"3 days in Goa","budget":"low","transport":"train","diet":"veg","language":"en"}`

func postGenerate(t *testing.T, h http.Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/generate", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestGenerate_FencedPlan_200(t *testing.T) {
	t.Parallel()

	var calls int32
	up := newGeminiStub(t, "```json\n{\"trip_title\":\"X\"}\n```", &calls)
	rec := postGenerate(t, newTestServer(t, up.URL), goaBody)

	if rec.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", rec.Code, rec.Body.String())
	}
	if got := strings.TrimSpace(rec.Body.String()); got != `{"trip_title":"X"}` {
		t.Fatalf("body=%s", got)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("content-type=%q", ct)
	}
	if atomic.LoadInt32(&calls) != 1 {
		t.Fatalf("calls=%d", calls)
	}
}

func TestGenerate_NotJSON_500(t *testing.T) {
	t.Parallel()

	var calls int32
	up := newGeminiStub(t, "Sorry, I cannot help.", &calls)
	rec := postGenerate(t, newTestServer(t, up.URL), goaBody)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status=%d body=%s", rec.Code, rec.Body.String())
	}
	var er types.ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &er); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !strings.HasPrefix(er.Error, "Failed to generate itinerary. ") || !strings.Contains(er.Error, "malformed") {
		t.Fatalf("error=%q", er.Error)
	}
	if atomic.LoadInt32(&calls) != 1 {
		t.Fatalf("retried: calls=%d", calls)
	}
}

func TestGenerate_NoText_500(t *testing.T) {
	t.Parallel()

	up := newGeminiStub(t, "", nil)
	rec := postGenerate(t, newTestServer(t, up.URL), goaBody)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status=%d body=%s", rec.Code, rec.Body.String())
	}
	var er types.ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &er); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if er.Error != "Failed to generate itinerary. AI returned empty response" {
		t.Fatalf("error=%q", er.Error)
	}
}

func TestGenerate_UpstreamAuthFailure_500(t *testing.T) {
	t.Parallel()

	up := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"error":{"code":403,"message":"Method doesn't allow unregistered callers.","status":"PERMISSION_DENIED"}}`))
	}))
	t.Cleanup(up.Close)

	rec := postGenerate(t, newTestServer(t, up.URL), goaBody)
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status=%d body=%s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "unregistered callers") {
		t.Fatalf("body=%s", rec.Body.String())
	}
}

func TestGenerate_InvalidBody_500(t *testing.T) {
	t.Parallel()

	var calls int32
	up := newGeminiStub(t, `{}`, &calls)
	rec := postGenerate(t, newTestServer(t, up.URL), `{"prompt":`)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status=%d body=%s", rec.Code, rec.Body.String())
	}
	if atomic.LoadInt32(&calls) != 0 {
		t.Fatalf("upstream called for invalid body")
	}
}

func TestHealth(t *testing.T) {
	t.Parallel()

	up := newGeminiStub(t, `{}`, nil)
	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	rec := httptest.NewRecorder()
	newTestServer(t, up.URL).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status=%d", rec.Code)
	}
	var hr types.HealthResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &hr); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if hr.Status != "ok" || hr.Provider != "gemini" {
		t.Fatalf("health=%+v", hr)
	}
}

func TestGenerate_CORSPreflight(t *testing.T) {
	t.Parallel()

	up := newGeminiStub(t, `{}`, nil)
	req := httptest.NewRequest(http.MethodOptions, "/generate", nil)
	req.Header.Set("Origin", "http://localhost:5500")
	req.Header.Set("Access-Control-Request-Method", "POST")
	req.Header.Set("Access-Control-Request-Headers", "Content-Type")
	rec := httptest.NewRecorder()
	newTestServer(t, up.URL).ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Fatalf("allow-origin=%q", got)
	}
}
