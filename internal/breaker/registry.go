package breaker

import (
	"log/slog"
	"time"
)

// Registry holds the three named breakers the pipeline depends on (spec
// §4.8): LLM, text-index, and database-of-record.
type Registry struct {
	LLM   *Breaker
	Index *Breaker
	DB    *Breaker
}

// RegistryConfig carries the tunables for all three breakers (spec §6
// `circuitBreakers.<llm|index|db>`).
type RegistryConfig struct {
	LLM   Config
	Index Config
	DB    Config
}

// DefaultRegistryConfig returns sane default thresholds/timeouts for
// each breaker.
func DefaultRegistryConfig() RegistryConfig {
	return RegistryConfig{
		LLM: Config{
			Name: "llm", Threshold: 3, Timeout: 30 * time.Second, SuccessThreshold: 2,
		},
		Index: Config{
			Name: "index", Threshold: 5, Timeout: 20 * time.Second, SuccessThreshold: 2,
		},
		DB: Config{
			Name: "db", Threshold: 5, Timeout: 15 * time.Second, SuccessThreshold: 2,
		},
	}
}

// NewRegistry constructs all three breakers sharing one logger.
func NewRegistry(cfg RegistryConfig, log *slog.Logger) *Registry {
	return &Registry{
		LLM:   New(cfg.LLM, log),
		Index: New(cfg.Index, log),
		DB:    New(cfg.DB, log),
	}
}
