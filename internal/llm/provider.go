package llm

import (
	"context"
	"fmt"
)

// Provider turns a prompt into raw model text. An empty string with a nil
// error means the model replied without any text segment.
type Provider interface {
	Name() string
	GenerateText(ctx context.Context, prompt string) (string, error)
}

// UpstreamError reports a failed call to the AI provider: transport
// failures, non-2xx statuses and undecodable replies.
type UpstreamError struct {
	Provider string
	Status   int
	Message  string
	Err      error
}

func (e *UpstreamError) Error() string {
	switch {
	case e.Message != "" && e.Status != 0:
		return fmt.Sprintf("%s api error (%d): %s", e.Provider, e.Status, e.Message)
	case e.Message != "":
		return fmt.Sprintf("%s api error: %s", e.Provider, e.Message)
	case e.Err != nil:
		return fmt.Sprintf("%s request failed: %v", e.Provider, e.Err)
	default:
		return fmt.Sprintf("%s api error: status %d", e.Provider, e.Status)
	}
}

func (e *UpstreamError) Unwrap() error { return e.Err }
