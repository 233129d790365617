package module

import (
	"time"

	"lifering/internal/platform/config"
)

// Options controls the pipeline's provider clients
type Options struct {
	LLMBaseURL string
	LLMAPIKey  string
	LLMRetries int

	VectorBaseURL string
	VectorAPIKey  string
	VectorTimeout time.Duration
}

// FromConfig reads with ENGINE_ prefix
func FromConfig(cfg config.Conf) Options {
	c := cfg.Prefix("ENGINE_")
	return Options{
		LLMBaseURL: c.MayString("LLM_BASE_URL", "https://api.openai.com/v1"),
		LLMAPIKey:  c.MayString("LLM_API_KEY", ""),
		LLMRetries: c.MayInt("LLM_RETRIES", 2),

		VectorBaseURL: c.MayString("VECTOR_BASE_URL", "http://localhost:8091"),
		VectorAPIKey:  c.MayString("VECTOR_API_KEY", ""),
		VectorTimeout: c.MayDuration("VECTOR_TIMEOUT", 3*time.Second),
	}
}
