package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

const geminiName = "gemini"

type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
}

type geminiErrorResponse struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

// Gemini calls the generateContent REST endpoint. The API key travels in
// the query string, which is how the endpoint authenticates.
type Gemini struct {
	httpClient *http.Client
	baseAPI    string
	model      string
	apiKey     string
}

// NewGemini builds a client. A nil httpClient uses http.DefaultClient, so
// there is no deadline beyond whatever the caller's context sets.
func NewGemini(httpClient *http.Client, baseAPI, model, apiKey string) *Gemini {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Gemini{
		httpClient: httpClient,
		baseAPI:    strings.TrimRight(baseAPI, "/"),
		model:      model,
		apiKey:     apiKey,
	}
}

func (g *Gemini) Name() string { return geminiName }

func (g *Gemini) endpoint() string {
	q := url.Values{}
	q.Set("key", g.apiKey)
	return fmt.Sprintf("%s/v1beta/models/%s:generateContent?%s", g.baseAPI, url.PathEscape(g.model), q.Encode())
}

func (g *Gemini) GenerateText(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(geminiRequest{
		Contents: []geminiContent{{Parts: []geminiPart{{Text: prompt}}}},
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.endpoint(), bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return "", &UpstreamError{Provider: geminiName, Err: scrubKey(err, g.apiKey)}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", parseGeminiError(resp)
	}

	var out geminiResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", &UpstreamError{Provider: geminiName, Status: resp.StatusCode, Err: fmt.Errorf("decode response: %w", err)}
	}
	return firstText(out), nil
}

// firstText mirrors candidates[0].content.parts[0].text.
func firstText(resp geminiResponse) string {
	if len(resp.Candidates) == 0 {
		return ""
	}
	parts := resp.Candidates[0].Content.Parts
	if len(parts) == 0 {
		return ""
	}
	return parts[0].Text
}

func parseGeminiError(resp *http.Response) error {
	data, err := io.ReadAll(resp.Body)
	if err != nil || len(data) == 0 {
		return &UpstreamError{Provider: geminiName, Status: resp.StatusCode, Message: resp.Status}
	}
	var payload geminiErrorResponse
	if err := json.Unmarshal(data, &payload); err != nil || strings.TrimSpace(payload.Error.Message) == "" {
		return &UpstreamError{Provider: geminiName, Status: resp.StatusCode, Message: strings.TrimSpace(string(data))}
	}
	return &UpstreamError{Provider: geminiName, Status: resp.StatusCode, Message: payload.Error.Message}
}

// scrubKey keeps the API key out of *url.Error messages, which embed the
// full request URL.
func scrubKey(err error, key string) error {
	if key == "" || !strings.Contains(err.Error(), key) {
		return err
	}
	return errors.New(strings.ReplaceAll(err.Error(), key, "REDACTED"))
}
