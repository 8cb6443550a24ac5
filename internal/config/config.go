package config

import (
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"

	ValidationLenient = "lenient"
	ValidationStrict  = "strict"
)

type Config struct {
	Port          string
	AllowedOrigin string
	// AI provider selection: "gemini" or "openai"
	Provider string
	// Gemini
	GeminiAPIKey  string
	GeminiModel   string
	GeminiBaseURL string
	// OpenAI
	OpenAIAPIKey  string
	OpenAIModel   string
	OpenAIBaseURL string
	// Optional prompt spec override; empty uses the built-in one
	PromptFile string
	// Plan validation: "lenient" accepts any JSON, "strict" enforces the plan shape
	PlanValidation string
	// Zero means no deadline on the upstream call
	UpstreamTimeout time.Duration
}

// ClientConfig holds settings for the command line client.
type ClientConfig struct {
	RelayURL string
}

func Load() Config {
	_ = godotenv.Load()
	cfg := Config{
		Port:            getEnvDefault("PORT", "3000"),
		AllowedOrigin:   getEnvDefault("ALLOWED_ORIGIN", "*"),
		Provider:        strings.ToLower(getEnvDefault("AI_PROVIDER", ProviderGemini)),
		GeminiAPIKey:    os.Getenv("GEMINI_API_KEY"),
		GeminiModel:     getEnvDefault("GEMINI_MODEL", "gemini-2.5-flash-preview-09-2025"),
		GeminiBaseURL:   getEnvDefault("GEMINI_BASE_URL", "https://generativelanguage.googleapis.com"),
		OpenAIAPIKey:    os.Getenv("OPENAI_API_KEY"),
		OpenAIModel:     getEnvDefault("OPENAI_MODEL", "gpt-4o-mini"),
		OpenAIBaseURL:   os.Getenv("OPENAI_BASE_URL"),
		PromptFile:      os.Getenv("PROMPT_FILE"),
		PlanValidation:  strings.ToLower(getEnvDefault("PLAN_VALIDATION", ValidationLenient)),
		UpstreamTimeout: getEnvDurationDefault("UPSTREAM_TIMEOUT", 0),
	}
	switch cfg.Provider {
	case ProviderGemini:
		if cfg.GeminiAPIKey == "" {
			log.Println("warning: GEMINI_API_KEY is not set; generate calls will fail until provided")
		}
	case ProviderOpenAI:
		if cfg.OpenAIAPIKey == "" {
			log.Println("warning: OPENAI_API_KEY is not set; generate calls will fail until provided")
		}
	default:
		log.Printf("warning: unknown AI_PROVIDER %q, falling back to %s", cfg.Provider, ProviderGemini)
		cfg.Provider = ProviderGemini
	}
	if cfg.PlanValidation != ValidationStrict {
		cfg.PlanValidation = ValidationLenient
	}
	return cfg
}

func LoadClient() ClientConfig {
	_ = godotenv.Load()
	return ClientConfig{
		RelayURL: getEnvDefault("TRAVELMITRA_RELAY_URL", "http://localhost:3000/generate"),
	}
}

func getEnvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvDurationDefault(key string, def time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil || d < 0 {
		log.Printf("warning: invalid %s %q, using %s", key, v, def)
		return def
	}
	return d
}
