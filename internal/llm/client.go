// Package llm implements the LLM adapter the core consumes (spec §6):
// generateContent({prompt, config, timeout}) -> string, cancellable,
// surfacing timeouts as errors rather than empty strings. Two concrete
// clients are provided, Groq-style (multi-key rotation and daily quota
// tracking) and Ollama-style (single local endpoint); both satisfy the
// same Client interface so Stage 1 never depends on a specific vendor.
package llm

import "context"

// GenerateConfig tunes one generation call (spec §4.3: temperature ≤
// 0.1, maxTokens 1024, timeout 3s for the Intent-extraction prompt).
type GenerateConfig struct {
	Model       string
	MaxTokens   int
	Temperature float64
}

// Client is the narrow interface Stage 1 depends on. Implementations
// must be cancellable via ctx and must return an error (not an empty
// string) on timeout.
type Client interface {
	GenerateContent(ctx context.Context, prompt string, cfg GenerateConfig) (string, error)
}

var (
	_ Client = (*GroqClient)(nil)
	_ Client = (*OllamaClient)(nil)
)
