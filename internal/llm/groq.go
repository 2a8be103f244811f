package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"sync/atomic"
	"time"
)

const groqAPIBase = "https://api.groq.com/openai/v1/chat/completions"

// ErrAllKeysExhaustedDaily is returned when every configured API key
// has hit its daily quota.
var ErrAllKeysExhaustedDaily = errors.New("all API keys exhausted for the day")

// GroqClient calls the Groq chat-completions API to extract an Intent
// from a query (spec §4.3). It supports multiple API keys with
// automatic failover on rate limiting (429) and tracks daily quota
// exhaustion per key, resetting at midnight UTC.
type GroqClient struct {
	httpClient  *http.Client
	apiKeys     []string
	currentKey  atomic.Int32
	keyMutex    sync.RWMutex
	keyStatus   []keyStatus
	rateLimiter *RateLimiter
	logger      *slog.Logger

	allExhaustedUntil time.Time
}

type keyStatus struct {
	rateLimited   bool
	rateLimitedAt time.Time

	dailyExhausted   bool
	dailyExhaustedAt time.Time

	errorCount int
}

type groqRequest struct {
	Model       string        `json:"model"`
	Messages    []groqMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type groqMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type groqResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// NewGroqClient builds a client with a single API key.
func NewGroqClient(apiKey string, requestsPerMinute float64, logger *slog.Logger) *GroqClient {
	return NewGroqClientMultiKey([]string{apiKey}, requestsPerMinute, logger)
}

// NewGroqClientMultiKey builds a client that rotates across apiKeys on
// rate limiting or exhaustion.
func NewGroqClientMultiKey(apiKeys []string, requestsPerMinute float64, logger *slog.Logger) *GroqClient {
	if len(apiKeys) == 0 {
		panic("at least one API key is required")
	}
	if logger == nil {
		logger = slog.Default()
	}

	c := &GroqClient{
		httpClient:  &http.Client{Timeout: 30 * time.Second},
		apiKeys:     apiKeys,
		keyStatus:   make([]keyStatus, len(apiKeys)),
		rateLimiter: NewRateLimiter(requestsPerMinute / 60.0),
		logger:      logger,
	}

	go c.midnightResetLoop()

	logger.Info("groq client initialized", slog.Int("keys_count", len(apiKeys)), slog.Float64("rpm", requestsPerMinute))
	return c
}

func (c *GroqClient) midnightResetLoop() {
	for {
		now := time.Now().UTC()
		nextMidnight := time.Date(now.Year(), now.Month(), now.Day()+1, 0, 0, 0, 0, time.UTC)
		time.Sleep(nextMidnight.Sub(now))
		c.resetAllDailyLimits()
	}
}

func (c *GroqClient) resetAllDailyLimits() {
	c.keyMutex.Lock()
	defer c.keyMutex.Unlock()

	for i := range c.keyStatus {
		c.keyStatus[i] = keyStatus{}
	}
	c.allExhaustedUntil = time.Time{}
	c.logger.Info("midnight reset: all groq api keys restored", slog.Int("total_keys", len(c.apiKeys)))
}

func (c *GroqClient) getCurrentKey() (string, int) {
	idx := int(c.currentKey.Load()) % len(c.apiKeys)
	return c.apiKeys[idx], idx
}

func (c *GroqClient) isDailyLimitError(statusCode int, body []byte) bool {
	if statusCode != http.StatusTooManyRequests {
		return false
	}
	bodyStr := strings.ToLower(string(body))
	for _, pattern := range []string{"tokens per day", "requests per day", "daily", "quota"} {
		if strings.Contains(bodyStr, pattern) {
			return true
		}
	}
	return false
}

// rotateKey advances to the next non-exhausted key, returning false if
// every key is currently unusable.
func (c *GroqClient) rotateKey() bool {
	c.keyMutex.Lock()
	defer c.keyMutex.Unlock()

	start := int(c.currentKey.Load())
	for i := 1; i <= len(c.apiKeys); i++ {
		idx := (start + i) % len(c.apiKeys)
		if !c.keyStatus[idx].dailyExhausted && !c.keyStatus[idx].rateLimited {
			c.currentKey.Store(int32(idx))
			return true
		}
	}
	return false
}

func (c *GroqClient) markKeyRateLimited(idx int) {
	c.keyMutex.Lock()
	c.keyStatus[idx].rateLimited = true
	c.keyStatus[idx].rateLimitedAt = time.Now()
	c.keyMutex.Unlock()
}

func (c *GroqClient) markKeyDailyExhausted(idx int) {
	c.keyMutex.Lock()
	c.keyStatus[idx].dailyExhausted = true
	c.keyStatus[idx].dailyExhaustedAt = time.Now()
	allExhausted := true
	for _, s := range c.keyStatus {
		if !s.dailyExhausted {
			allExhausted = false
			break
		}
	}
	if allExhausted {
		c.allExhaustedUntil = nextMidnightUTC()
	}
	c.keyMutex.Unlock()
}

func nextMidnightUTC() time.Time {
	now := time.Now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day()+1, 0, 0, 0, 0, time.UTC)
}

// GenerateContent implements llm.Client. It runs a bounded failover
// loop (at most one attempt per key): on 429 it marks the current key
// and rotates, retrying until a key succeeds or no usable key is left.
func (c *GroqClient) GenerateContent(ctx context.Context, prompt string, cfg GenerateConfig) (string, error) {
	model := cfg.Model
	if model == "" {
		model = "llama-3.1-8b-instant"
	}

	if err := c.rateLimiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("groq rate limiter: %w", err)
	}

	for attempt := 0; attempt < len(c.apiKeys); attempt++ {
		key, idx := c.getCurrentKey()

		content, statusCode, body, err := c.doRequest(ctx, key, model, prompt, cfg)
		if err == nil {
			return content, nil
		}

		if statusCode == http.StatusTooManyRequests {
			if c.isDailyLimitError(statusCode, body) {
				c.markKeyDailyExhausted(idx)
			} else {
				c.markKeyRateLimited(idx)
			}
			if c.rotateKey() {
				continue
			}
			return "", ErrAllKeysExhaustedDaily
		}

		return "", err
	}

	return "", ErrAllKeysExhaustedDaily
}

func (c *GroqClient) doRequest(ctx context.Context, apiKey, model, prompt string, cfg GenerateConfig) (string, int, []byte, error) {
	reqBody, err := json.Marshal(groqRequest{
		Model: model,
		Messages: []groqMessage{
			{Role: "user", Content: prompt},
		},
		Temperature: cfg.Temperature,
		MaxTokens:   cfg.MaxTokens,
	})
	if err != nil {
		return "", 0, nil, fmt.Errorf("marshal groq request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, groqAPIBase, bytes.NewReader(reqBody))
	if err != nil {
		return "", 0, nil, fmt.Errorf("build groq request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", 0, nil, fmt.Errorf("groq request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", resp.StatusCode, nil, fmt.Errorf("read groq response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", resp.StatusCode, body, fmt.Errorf("groq api status %d: %s", resp.StatusCode, string(body))
	}

	var parsed groqResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", resp.StatusCode, body, fmt.Errorf("decode groq response: %w", err)
	}
	if parsed.Error != nil {
		return "", resp.StatusCode, body, fmt.Errorf("groq api error: %s", parsed.Error.Message)
	}
	if len(parsed.Choices) == 0 {
		return "", resp.StatusCode, body, fmt.Errorf("groq response had no choices")
	}

	return parsed.Choices[0].Message.Content, resp.StatusCode, body, nil
}
