package relay

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"travelmitra-backend/internal/llm"
	"travelmitra-backend/internal/types"
)

type Options struct {
	// StrictPlan rejects JSON that does not fit types.TripPlan.
	StrictPlan bool
	// Timeout bounds the provider call; zero leaves it unbounded.
	Timeout time.Duration
}

// Relay builds the trip prompt, asks the provider for a plan and returns
// the parsed JSON. It holds no per-request state.
type Relay struct {
	provider llm.Provider
	prompts  *PromptBuilder
	opts     Options
}

func New(provider llm.Provider, prompts *PromptBuilder, opts Options) *Relay {
	return &Relay{provider: provider, prompts: prompts, opts: opts}
}

func (r *Relay) ProviderName() string { return r.provider.Name() }

// Generate runs one prompt round trip. It never retries.
func (r *Relay) Generate(ctx context.Context, trip types.TripRequest) (json.RawMessage, error) {
	prompt, err := r.prompts.Build(trip)
	if err != nil {
		return nil, err
	}

	if r.opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.opts.Timeout)
		defer cancel()
	}

	raw, err := r.provider.GenerateText(ctx, prompt)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(raw) == "" {
		return nil, ErrUpstreamEmpty
	}
	return ParsePlan(Sanitize(raw), r.opts.StrictPlan)
}
