// Package config loads the pipeline's closed configuration set from
// environment variables, using a plain getEnv/getEnvInt pattern
// rather than a config-file loader.
package config

import (
	"os"
	"strconv"
	"time"
)

// Config is the full process configuration.
type Config struct {
	Database DatabaseConfig
	Redis    RedisConfig
	Stages   StagesConfig
	Caching  CachingConfig
	Limits   LimitsConfig
	Ranking  RankingConfig
	Breakers BreakersConfig
	LLM      LLMConfig

	APIPort  string
	LogLevel string
}

// DatabaseConfig configures the Postgres-backed reference text index.
type DatabaseConfig struct {
	Host     string
	Port     int
	Name     string
	User     string
	Password string
	SSLMode  string
	MaxConns int
	MinConns int
}

// RedisConfig configures the optional L2 cache. Addr empty means
// L2 is disabled and the system runs L1-only.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	PoolSize int
}

// StageConfig enables/disables and times out one pipeline stage (spec
// §6 `stages.<name>.enabled/.timeout`).
type StageConfig struct {
	Enabled bool
	Timeout time.Duration
}

// StagesConfig holds one StageConfig per Stage 1-5.
type StagesConfig struct {
	Understanding StageConfig
	Retrieval     StageConfig
	Filtering     StageConfig
	Ranking       StageConfig
	Explanation   StageConfig
}

// CachingConfig toggles caching and sets the full-response TTL.
type CachingConfig struct {
	Enabled          bool
	SearchResultsTTL time.Duration
}

// LimitsConfig bounds result volume (spec §6 `limits.*`).
type LimitsConfig struct {
	MaxResults int
	PageSize   int
}

// RankingConfig selects the active experiment group (spec §6
// `rankingExperimentGroup`) and where its learned weight vector is
// checkpointed across restarts.
type RankingConfig struct {
	ExperimentGroup string
	WeightsPath     string
}

// BreakerConfig tunes one circuit breaker (spec §6
// `circuitBreakers.<name>.*`).
type BreakerConfig struct {
	Threshold        int
	Timeout          time.Duration
	SuccessThreshold int
}

// BreakersConfig holds one BreakerConfig per dependency.
type BreakersConfig struct {
	LLM   BreakerConfig
	Index BreakerConfig
	DB    BreakerConfig
}

// LLMConfig tunes the LLM adapter (spec §6 `llm.*`).
type LLMConfig struct {
	Provider    string // "groq" | "ollama" | "" (disabled)
	Model       string
	MaxTokens   int
	Temperature float64
	Timeout     time.Duration
	Threshold   float64 // confidence above which LLM is skipped
	APIKeys     []string
	BaseURL     string
}

// Load reads the full configuration from the environment, falling back
// to sane defaults for anything unset.
func Load() *Config {
	return &Config{
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvInt("DB_PORT", 5432),
			Name:     getEnv("DB_NAME", "partsearch"),
			User:     getEnv("DB_USER", "partsearch"),
			Password: getEnv("DB_PASSWORD", ""),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
			MaxConns: getEnvInt("DB_MAX_CONNS", 25),
			MinConns: getEnvInt("DB_MIN_CONNS", 5),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
			PoolSize: getEnvInt("REDIS_POOL_SIZE", 10),
		},
		Stages: StagesConfig{
			Understanding: StageConfig{Enabled: getEnvBool("STAGE_UNDERSTANDING_ENABLED", true), Timeout: getEnvMs("STAGE_UNDERSTANDING_TIMEOUT_MS", 3000)},
			Retrieval:     StageConfig{Enabled: getEnvBool("STAGE_RETRIEVAL_ENABLED", true), Timeout: getEnvMs("STAGE_RETRIEVAL_TIMEOUT_MS", 5000)},
			Filtering:     StageConfig{Enabled: getEnvBool("STAGE_FILTERING_ENABLED", true), Timeout: getEnvMs("STAGE_FILTERING_TIMEOUT_MS", 1000)},
			Ranking:       StageConfig{Enabled: getEnvBool("STAGE_RANKING_ENABLED", true), Timeout: getEnvMs("STAGE_RANKING_TIMEOUT_MS", 1000)},
			Explanation:   StageConfig{Enabled: getEnvBool("STAGE_EXPLANATION_ENABLED", true), Timeout: getEnvMs("STAGE_EXPLANATION_TIMEOUT_MS", 500)},
		},
		Caching: CachingConfig{
			Enabled:          getEnvBool("CACHING_ENABLED", true),
			SearchResultsTTL: getEnvSeconds("CACHING_SEARCH_RESULTS_TTL_S", 120),
		},
		Limits: LimitsConfig{
			MaxResults: getEnvInt("LIMITS_MAX_RESULTS", 200),
			PageSize:   getEnvInt("LIMITS_PAGE_SIZE", 20),
		},
		Ranking: RankingConfig{
			ExperimentGroup: getEnv("RANKING_EXPERIMENT_GROUP", "control"),
			WeightsPath:     getEnv("RANKING_WEIGHTS_PATH", "ranking-weights.json"),
		},
		Breakers: BreakersConfig{
			LLM:   BreakerConfig{Threshold: getEnvInt("BREAKER_LLM_THRESHOLD", 3), Timeout: getEnvSeconds("BREAKER_LLM_TIMEOUT_S", 30), SuccessThreshold: getEnvInt("BREAKER_LLM_SUCCESS_THRESHOLD", 2)},
			Index: BreakerConfig{Threshold: getEnvInt("BREAKER_INDEX_THRESHOLD", 5), Timeout: getEnvSeconds("BREAKER_INDEX_TIMEOUT_S", 20), SuccessThreshold: getEnvInt("BREAKER_INDEX_SUCCESS_THRESHOLD", 2)},
			DB:    BreakerConfig{Threshold: getEnvInt("BREAKER_DB_THRESHOLD", 5), Timeout: getEnvSeconds("BREAKER_DB_TIMEOUT_S", 15), SuccessThreshold: getEnvInt("BREAKER_DB_SUCCESS_THRESHOLD", 2)},
		},
		LLM: LLMConfig{
			Provider:    getEnv("LLM_PROVIDER", ""),
			Model:       getEnv("LLM_MODEL", ""),
			MaxTokens:   getEnvInt("LLM_MAX_TOKENS", 1024),
			Temperature: getEnvFloat("LLM_TEMPERATURE", 0.1),
			Timeout:     getEnvMs("LLM_TIMEOUT_MS", 3000),
			Threshold:   getEnvFloat("LLM_CONFIDENCE_THRESHOLD", 0.6),
			APIKeys:     getEnvList("LLM_API_KEYS"),
			BaseURL:     getEnv("LLM_BASE_URL", "http://localhost:11434"),
		},
		APIPort:  getEnv("API_PORT", "8080"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if v, err := strconv.ParseFloat(value, 64); err == nil {
			return v
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if v, err := strconv.ParseBool(value); err == nil {
			return v
		}
	}
	return defaultValue
}

func getEnvMs(key string, defaultMs int) time.Duration {
	return time.Duration(getEnvInt(key, defaultMs)) * time.Millisecond
}

func getEnvSeconds(key string, defaultSeconds int) time.Duration {
	return time.Duration(getEnvInt(key, defaultSeconds)) * time.Second
}

func getEnvList(key string) []string {
	value := os.Getenv(key)
	if value == "" {
		return nil
	}
	var out []string
	start := 0
	for i := 0; i <= len(value); i++ {
		if i == len(value) || value[i] == ',' {
			if i > start {
				out = append(out, value[start:i])
			}
			start = i + 1
		}
	}
	return out
}
