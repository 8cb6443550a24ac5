package ui

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"travelmitra-backend/internal/client"
	"travelmitra-backend/internal/types"
)

type Phase int

const (
	PhaseIdle Phase = iota
	PhaseSubmitting
	PhaseRendered
	PhaseFailed
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseSubmitting:
		return "submitting"
	case PhaseRendered:
		return "rendered"
	case PhaseFailed:
		return "failed"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// LoadingMessages rotate under the busy indicator while a request is out.
var LoadingMessages = []string{
	"Checking verified hotels...",
	"Locating best local food spots...",
	"Scanning safety databases...",
	"Optimizing budget...",
	"Finalizing your personalized plan...",
}

const DefaultStatusInterval = 1500 * time.Millisecond

// Submitter sends one trip request and returns the plan document.
type Submitter interface {
	Submit(ctx context.Context, trip types.TripRequest) (json.RawMessage, error)
}

type FeedbackKind string

const (
	FeedbackUp   FeedbackKind = "up"
	FeedbackDown FeedbackKind = "down"
)

type Feedback struct {
	Recorded bool
	Kind     FeedbackKind
}

var (
	ErrInvalidFeedback = errors.New("feedback must be \"up\" or \"down\"")
	ErrNoPlan          = errors.New("no rendered plan to give feedback on")
	ErrBusy            = errors.New("a submission is already in flight")
)

// Session drives Idle -> Submitting -> Rendered|Failed for one user.
type Session struct {
	mu       sync.Mutex
	state    State
	interval time.Duration
	onStatus func(string)
	onChange func(State)
}

type SessionOption func(*Session)

// WithStatusInterval sets how often the busy text rotates.
func WithStatusInterval(d time.Duration) SessionOption {
	return func(s *Session) {
		if d > 0 {
			s.interval = d
		}
	}
}

// WithStatusFunc is called with every status phrase shown while busy.
func WithStatusFunc(fn func(string)) SessionOption {
	return func(s *Session) { s.onStatus = fn }
}

// WithChangeFunc is called with a copy of the state after each phase change.
func WithChangeFunc(fn func(State)) SessionOption {
	return func(s *Session) { s.onChange = fn }
}

func NewSession(opts ...SessionOption) *Session {
	s := &Session{interval: DefaultStatusInterval}
	for _, o := range opts {
		o(s)
	}
	return s
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Submit runs one submission. Validation failures go straight to Failed
// without arming the busy indicator or touching the network. The status
// rotation is stopped before the phase leaves Submitting, on every path.
func (s *Session) Submit(ctx context.Context, sub Submitter, trip types.TripRequest) error {
	s.mu.Lock()
	if s.state.Phase == PhaseSubmitting {
		s.mu.Unlock()
		return ErrBusy
	}
	if err := client.Validate(trip); err != nil {
		s.state = State{Phase: PhaseFailed, Alert: alertText(err)}
		s.mu.Unlock()
		s.notifyChange()
		return err
	}
	s.state = State{Phase: PhaseSubmitting, Status: LoadingMessages[0]}
	s.mu.Unlock()
	s.notifyChange()
	s.notifyStatus(LoadingMessages[0])

	plan, err := s.await(ctx, sub, trip)
	if err != nil {
		s.transition(State{Phase: PhaseFailed, Alert: alertText(err)})
		return err
	}
	view := FromJSON(plan)
	s.transition(State{Phase: PhaseRendered, Plan: &view})
	return nil
}

func (s *Session) await(ctx context.Context, sub Submitter, trip types.TripRequest) (json.RawMessage, error) {
	stop := s.rotateStatus()
	defer stop()
	return sub.Submit(ctx, trip)
}

// rotateStatus starts the status ticker and returns a stop func that
// blocks until the ticker goroutine has exited. stop is safe to call twice.
func (s *Session) rotateStatus() func() {
	done := make(chan struct{})
	exited := make(chan struct{})
	go func() {
		defer close(exited)
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()
		i := 0
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				i = (i + 1) % len(LoadingMessages)
				msg := LoadingMessages[i]
				s.mu.Lock()
				if s.state.Phase == PhaseSubmitting {
					s.state.Status = msg
				}
				s.mu.Unlock()
				s.notifyStatus(msg)
			}
		}
	}()
	var once sync.Once
	return func() {
		once.Do(func() { close(done) })
		<-exited
	}
}

// Reset returns a settled session to Idle.
func (s *Session) Reset() {
	s.mu.Lock()
	if s.state.Phase == PhaseSubmitting {
		s.mu.Unlock()
		return
	}
	s.state = State{Phase: PhaseIdle}
	s.mu.Unlock()
	s.notifyChange()
}

// RecordFeedback swaps the feedback prompt for a confirmation. It is
// purely local state.
func (s *Session) RecordFeedback(kind string) error {
	k := FeedbackKind(kind)
	if k != FeedbackUp && k != FeedbackDown {
		return ErrInvalidFeedback
	}
	s.mu.Lock()
	if s.state.Phase != PhaseRendered || s.state.Plan == nil {
		s.mu.Unlock()
		return ErrNoPlan
	}
	s.state.Feedback = Feedback{Recorded: true, Kind: k}
	s.mu.Unlock()
	s.notifyChange()
	return nil
}

func (s *Session) transition(next State) {
	s.mu.Lock()
	s.state = next
	s.mu.Unlock()
	s.notifyChange()
}

func (s *Session) notifyChange() {
	if s.onChange != nil {
		s.onChange(s.State())
	}
}

func (s *Session) notifyStatus(msg string) {
	if s.onStatus != nil {
		s.onStatus(msg)
	}
}

func alertText(err error) string {
	var vErr *client.ValidationError
	if errors.As(err, &vErr) {
		return vErr.Message
	}
	return "Server Error: " + err.Error()
}
