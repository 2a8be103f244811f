package understanding

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"partsearch/internal/breaker"
	"partsearch/internal/cache"
	"partsearch/internal/llm"
	"partsearch/internal/model"
	"partsearch/internal/parsing"
	"partsearch/internal/validation"
)

// Config tunes Stage instance behavior (spec §4.3, §6 `llm.*`).
type Config struct {
	LLMEnabled         bool
	LLMThreshold       float64 // skip LLM when token confidence >= this
	LLMTimeout         time.Duration
	LLMModel           string
	LLMMaxTokens       int
	LLMTemperature     float64
	CacheMinConfidence float64
}

// DefaultConfig returns sane defaults for the understanding stage.
func DefaultConfig() Config {
	return Config{
		LLMEnabled:         false,
		LLMThreshold:       0.6,
		LLMTimeout:         3 * time.Second,
		LLMMaxTokens:       1024,
		LLMTemperature:     0.1,
		CacheMinConfidence: 0.5,
	}
}

// Stage is the concrete Understander (spec §4.3).
type Stage struct {
	cfg     Config
	cache   *cache.TwoTier
	llmCli  llm.Client
	breaker *breaker.Breaker
	log     *slog.Logger
}

// NewStage wires a Stage. llmCli may be nil, in which case the LLM
// enhancement step is always skipped regardless of cfg.LLMEnabled.
func NewStage(cfg Config, c *cache.TwoTier, llmCli llm.Client, br *breaker.Breaker, log *slog.Logger) *Stage {
	if log == nil {
		log = slog.Default()
	}
	return &Stage{cfg: cfg, cache: c, llmCli: llmCli, breaker: br, log: log}
}

// Understand runs the full Stage 1 pipeline (spec §4.3 steps 1-7).
func (s *Stage) Understand(ctx context.Context, query model.Query) Result {
	start := time.Now()
	elapsed := func() int64 { return time.Since(start).Milliseconds() }

	if query.Empty() {
		return Result{Success: false, Method: MethodNone, Error: "Empty query", DurationMs: elapsed()}
	}

	cacheKey := cache.IntentKey(query.Normalized)
	if s.cache != nil {
		if raw, hit := s.cache.Get(ctx, cache.NamespaceIntent, cacheKey); hit {
			var cached model.Intent
			if err := json.Unmarshal(raw, &cached); err == nil {
				return Result{Success: true, Intent: cached, Method: MethodCache, DurationMs: elapsed()}
			}
		}
	}

	tokenResult, err := parsing.Parse(query.Raw)
	if err != nil {
		return Result{Success: false, Method: MethodNone, Error: err.Error(), DurationMs: elapsed()}
	}
	tokenIntent := tokenResult.Intent
	tokenIntentRawCopy := tokenIntent.Clone()
	tokenIntent.Raw = &tokenIntentRawCopy

	method := MethodToken
	finalIntent := tokenIntent

	if s.shouldCallLLM(tokenIntent) {
		llmIntent, callErr := s.callLLM(ctx, query)
		if callErr != nil {
			s.log.Warn("llm understanding fell back to token parsing", slog.String("error", callErr.Error()))
			method = MethodTokenFallback
		} else {
			finalIntent = validation.MergeUnderstanding(tokenIntent, llmIntent)
			method = MethodHybrid
		}
	}

	finalResult := validation.Validate(finalIntent, validation.Lenient)
	finalIntent = finalResult.Intent

	if finalIntent.Confidence >= s.cfg.CacheMinConfidence && s.cache != nil {
		if raw, err := json.Marshal(finalIntent); err == nil {
			s.cache.Set(ctx, cache.NamespaceIntent, cacheKey, raw)
		}
	}

	return Result{Success: true, Intent: finalIntent, Method: method, DurationMs: elapsed()}
}

// shouldCallLLM implements the skip conditions from spec §4.3 step 4.
func (s *Stage) shouldCallLLM(tokenIntent model.Intent) bool {
	if !s.cfg.LLMEnabled || s.llmCli == nil {
		return false
	}
	if tokenIntent.Confidence >= s.cfg.LLMThreshold {
		return false
	}
	if s.breaker != nil && s.breaker.State() == breaker.Open {
		return false
	}
	if tokenIntent.HasPartNumber() && tokenIntent.Confidence >= 0.9 {
		return false
	}
	return true
}

func (s *Stage) callLLM(ctx context.Context, query model.Query) (model.Intent, error) {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.LLMTimeout)
	defer cancel()

	prompt := llm.BuildIntentPrompt(query.Raw)
	genCfg := llm.GenerateConfig{Model: s.cfg.LLMModel, MaxTokens: s.cfg.LLMMaxTokens, Temperature: s.cfg.LLMTemperature}

	call := func() (model.Intent, error) {
		raw, err := s.llmCli.GenerateContent(ctx, prompt, genCfg)
		if err != nil {
			return model.Intent{}, err
		}
		parsed, err := llm.ExtractFirstJSONObject(raw)
		if err != nil {
			return model.Intent{}, err
		}
		return intentFromJSON(parsed), nil
	}

	if s.breaker == nil {
		return call()
	}

	var callErr error
	intent := breaker.Execute(s.breaker, func() (model.Intent, error) {
		i, err := call()
		callErr = err
		return i, err
	}, func(error) model.Intent {
		return model.Intent{}
	})
	if callErr != nil {
		return model.Intent{}, callErr
	}

	strict := validation.Validate(intent, validation.Strict)
	if strict.Valid {
		return strict.Intent, nil
	}
	lenient := validation.Validate(intent, validation.Lenient)
	return lenient.Intent, nil
}

func intentFromJSON(j llm.IntentJSON) model.Intent {
	intent := model.Intent{
		Category:       derefStr(j.Category),
		VehicleMake:    derefStr(j.VehicleMake),
		VehicleModel:   derefStr(j.VehicleModel),
		EngineCode:     derefStr(j.EngineCode),
		PartNumber:     derefStr(j.PartNumber),
		CrossReference: derefStr(j.CrossReference),
		SearchType:     model.SearchType(j.SearchType),
		Confidence:     j.Confidence,
		Brand:          j.Brand,
	}
	if j.VehicleYear != nil {
		intent.VehicleYear = *j.VehicleYear
	}
	for _, p := range j.Position {
		intent.Position = append(intent.Position, model.Position(p))
	}
	return intent
}

func derefStr(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
