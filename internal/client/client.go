package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/tidwall/gjson"

	"travelmitra-backend/internal/types"
)

// Client posts trip requests to the relay.
type Client struct {
	httpClient *http.Client
	relayURL   string
}

func New(httpClient *http.Client, relayURL string) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{httpClient: httpClient, relayURL: relayURL}
}

// Validate applies the checks Submit runs before any network call.
func Validate(trip types.TripRequest) error {
	if strings.TrimSpace(trip.Prompt) == "" {
		return &ValidationError{Field: "prompt", Message: "Please describe your trip plans!"}
	}
	return nil
}

// Submit validates the trip, sends it to the relay and returns the plan
// document. An empty prompt fails before anything touches the network.
func (c *Client) Submit(ctx context.Context, trip types.TripRequest) (json.RawMessage, error) {
	if err := Validate(trip); err != nil {
		return nil, err
	}

	body, err := json.Marshal(trip)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.relayURL, bytes.NewReader(body))
	if err != nil {
		return nil, &NetworkError{Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-Id", uuid.NewString())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &NetworkError{Err: fmt.Errorf("read response: %w", err)}
	}
	var doc json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, &RelayError{Status: resp.StatusCode, Message: fmt.Sprintf("invalid response from relay (%s): %v", resp.Status, err)}
	}
	if msg := gjson.GetBytes(data, "error"); msg.Exists() && msg.String() != "" {
		return nil, &RelayError{Status: resp.StatusCode, Message: msg.String()}
	}
	return doc, nil
}
