package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"travelmitra-backend/internal/config"
	"travelmitra-backend/internal/llm"
	"travelmitra-backend/internal/relay"
	"travelmitra-backend/internal/types"
)

// Generator is the relay capability the HTTP layer needs.
type Generator interface {
	Generate(ctx context.Context, trip types.TripRequest) (json.RawMessage, error)
	ProviderName() string
}

type Server struct {
	router *chi.Mux
	relay  Generator
	cfg    config.Config
}

// NewServer wires the configured provider, prompt spec and relay.
func NewServer(cfg config.Config) (*Server, error) {
	prompts, err := relay.LoadPromptBuilder(cfg.PromptFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load prompt spec: %w", err)
	}
	r := relay.New(newProvider(cfg), prompts, relay.Options{
		StrictPlan: cfg.PlanValidation == config.ValidationStrict,
		Timeout:    cfg.UpstreamTimeout,
	})
	log.Printf("relay using provider=%s validation=%s", r.ProviderName(), cfg.PlanValidation)
	return NewWithGenerator(cfg, r), nil
}

// NewWithGenerator builds the router around an existing generator.
func NewWithGenerator(cfg config.Config, g Generator) *Server {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{cfg.AllowedOrigin},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-Id"},
		ExposedHeaders: []string{"X-Request-Id"},
		MaxAge:         300,
	}))

	s := &Server{router: r, relay: g, cfg: cfg}
	s.routes()
	return s
}

func newProvider(cfg config.Config) llm.Provider {
	if cfg.Provider == config.ProviderOpenAI {
		return llm.NewOpenAI(cfg.OpenAIAPIKey, cfg.OpenAIModel, cfg.OpenAIBaseURL)
	}
	return llm.NewGemini(nil, cfg.GeminiBaseURL, cfg.GeminiModel, cfg.GeminiAPIKey)
}

func (s *Server) routes() {
	s.router.Get("/api/health", s.handleHealth)
	s.router.Post("/generate", s.handleGenerate)
}

func (s *Server) Router() http.Handler { return s.router }

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(types.HealthResponse{Status: "ok", Provider: s.relay.ProviderName()})
}

// handleGenerate answers every failure with the same 500 {error} body.
func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	rid := middleware.GetReqID(r.Context())
	var req types.TripRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("[generate] request_id=%s invalid body: %v", rid, err)
		s.writeError(w, http.StatusInternalServerError, "Failed to generate itinerary. invalid JSON body: "+err.Error())
		return
	}
	log.Printf("[generate] request_id=%s received request: prompt=%q budget=%q transport=%q diet=%q language=%q",
		rid, req.Prompt, req.Budget, req.Transport, req.Diet, req.Language)

	// The upstream call runs to completion even if the caller goes away.
	plan, err := s.relay.Generate(context.WithoutCancel(r.Context()), req)
	if err != nil {
		log.Printf("[generate] request_id=%s failed: %v", rid, err)
		s.writeError(w, http.StatusInternalServerError, "Failed to generate itinerary. "+err.Error())
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(plan)
}

func (s *Server) writeError(w http.ResponseWriter, code int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(types.ErrorResponse{Error: msg})
}
