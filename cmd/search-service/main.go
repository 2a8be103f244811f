package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"partsearch/internal/breaker"
	"partsearch/internal/cache"
	"partsearch/internal/config"
	"partsearch/internal/engagement"
	"partsearch/internal/explanation"
	"partsearch/internal/filtering"
	"partsearch/internal/httpapi"
	"partsearch/internal/llm"
	"partsearch/internal/orchestrator"
	"partsearch/internal/ranking"
	"partsearch/internal/retrieval"
	"partsearch/internal/store"
	"partsearch/internal/telemetry"
	"partsearch/internal/understanding"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	slog.Info("iniciando partsearch")

	cfg := config.Load()

	slog.Info("conectando ao banco de dados", "host", cfg.Database.Host, "database", cfg.Database.Name)
	ctx := context.Background()
	pool, err := store.Connect(ctx, store.ConnectionConfig{
		Host:     cfg.Database.Host,
		Port:     cfg.Database.Port,
		Database: cfg.Database.Name,
		User:     cfg.Database.User,
		Password: cfg.Database.Password,
		SSLMode:  cfg.Database.SSLMode,
		MaxConns: cfg.Database.MaxConns,
		MinConns: cfg.Database.MinConns,
	}, logger)
	if err != nil {
		slog.Error("falha ao conectar banco", "error", err)
		os.Exit(1)
	}
	defer pool.Close()
	slog.Info("conexao com banco estabelecida")

	if err := store.RunMigrations(ctx, pool); err != nil {
		slog.Error("falha ao aplicar migrations", "error", err)
		os.Exit(1)
	}
	textIndex := store.NewIndex(pool)

	var l2 cache.L2
	if cfg.Redis.Addr != "" {
		slog.Info("conectando ao redis", "addr", cfg.Redis.Addr)
		redisL2, err := cache.NewRedisL2(cache.RedisConfig{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			PoolSize: cfg.Redis.PoolSize,
		})
		if err != nil {
			slog.Error("falha ao conectar redis, executando somente com L1", "error", err)
		} else {
			l2 = redisL2
		}
	}
	twoTier := cache.NewTwoTier(cache.DefaultTierConfigs(), l2, logger)

	breakers := breaker.NewRegistry(breaker.RegistryConfig{
		LLM:   breaker.Config{Name: "llm", Threshold: cfg.Breakers.LLM.Threshold, Timeout: cfg.Breakers.LLM.Timeout, SuccessThreshold: cfg.Breakers.LLM.SuccessThreshold},
		Index: breaker.Config{Name: "index", Threshold: cfg.Breakers.Index.Threshold, Timeout: cfg.Breakers.Index.Timeout, SuccessThreshold: cfg.Breakers.Index.SuccessThreshold},
		DB:    breaker.Config{Name: "db", Threshold: cfg.Breakers.DB.Threshold, Timeout: cfg.Breakers.DB.Timeout, SuccessThreshold: cfg.Breakers.DB.SuccessThreshold},
	}, logger)

	var llmClient llm.Client
	switch cfg.LLM.Provider {
	case "groq":
		if len(cfg.LLM.APIKeys) > 0 {
			llmClient = llm.NewGroqClientMultiKey(cfg.LLM.APIKeys, 30, logger)
		} else {
			slog.Warn("llm provider groq selecionado sem LLM_API_KEYS, desabilitando realce por LLM")
		}
	case "ollama":
		llmClient = llm.NewOllamaClient(cfg.LLM.BaseURL, cfg.LLM.Model, logger)
	case "":
		slog.Info("llm desabilitado, usando somente extracao por regras")
	default:
		slog.Warn("llm provider desconhecido, desabilitando realce por LLM", "provider", cfg.LLM.Provider)
	}

	understandingStage := understanding.NewStage(understanding.Config{
		LLMEnabled:         cfg.Stages.Understanding.Enabled && llmClient != nil,
		LLMThreshold:       cfg.LLM.Threshold,
		LLMTimeout:         cfg.LLM.Timeout,
		LLMModel:           cfg.LLM.Model,
		LLMMaxTokens:       cfg.LLM.MaxTokens,
		LLMTemperature:     cfg.LLM.Temperature,
		CacheMinConfidence: 0.5,
	}, twoTier, llmClient, breakers.LLM, logger)

	retrievalStage := retrieval.NewStage(retrieval.Config{
		Size:      retrieval.MaxCandidates,
		MinScore:  retrieval.MinRelevance,
		TimeoutMs: int(cfg.Stages.Retrieval.Timeout.Milliseconds()),
	}, textIndex, twoTier, breakers.Index, logger)

	filteringStage := filtering.NewStage(filtering.Config{StockPriority: true})

	rankingStage := ranking.NewStage(ranking.Config{
		ExperimentGroup: ranking.ExperimentGroup(cfg.Ranking.ExperimentGroup),
		Engagement:      engagement.NoopProvider{},
	})

	weightCheckpoints := ranking.NewWeightCheckpointManager(cfg.Ranking.WeightsPath)
	if checkpoint, err := weightCheckpoints.Load(); err != nil {
		slog.Warn("falha ao carregar checkpoint de pesos de ranking", "error", err)
	} else if checkpoint != nil {
		rankingStage.Restore(checkpoint)
		slog.Info("pesos de ranking restaurados do checkpoint", "path", cfg.Ranking.WeightsPath)
	}

	explanationStage := explanation.NewStage()

	metricsRegistry := telemetry.NewRegistry()

	orch := orchestrator.New(orchestrator.Config{
		UnderstandingEnabled: cfg.Stages.Understanding.Enabled,
		RetrievalEnabled:     cfg.Stages.Retrieval.Enabled,
		FilteringEnabled:     cfg.Stages.Filtering.Enabled,
		RankingEnabled:       cfg.Stages.Ranking.Enabled,
		ExplanationEnabled:   cfg.Stages.Explanation.Enabled,
		CachingEnabled:       cfg.Caching.Enabled,
	}, understandingStage, retrievalStage, filteringStage, rankingStage, explanationStage, twoTier, metricsRegistry, logger)

	router := httpapi.NewRouter(orch, metricsRegistry, pool)

	srv := &http.Server{
		Addr:         ":" + cfg.APIPort,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		slog.Info("servidor iniciado", "port", cfg.APIPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("erro no servidor", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("encerrando servidor...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("erro ao encerrar servidor", "error", err)
	}

	if err := weightCheckpoints.Save(rankingStage); err != nil {
		slog.Error("falha ao salvar checkpoint de pesos de ranking", "error", err)
	}

	slog.Info("servidor encerrado")
}
