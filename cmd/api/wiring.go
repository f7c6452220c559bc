package main

import (
	"context"

	"github.com/akolanti/ClaimAPI/internal/config"
	"github.com/akolanti/ClaimAPI/internal/coordinator"
	"github.com/akolanti/ClaimAPI/internal/data/backupStore"
	"github.com/akolanti/ClaimAPI/internal/domain/claimModel"
	"github.com/akolanti/ClaimAPI/internal/extraction"
	"github.com/akolanti/ClaimAPI/internal/llm"
	"github.com/akolanti/ClaimAPI/internal/llm/gemini"
	"github.com/akolanti/ClaimAPI/internal/llm/openaiLLM"
	"github.com/akolanti/ClaimAPI/internal/pipeline"
	"github.com/akolanti/ClaimAPI/internal/specialist"
	"github.com/akolanti/ClaimAPI/internal/worker"
	"github.com/akolanti/ClaimAPI/pkg/logger_i"
	"golang.org/x/time/rate"
)

type dependencies struct {
	Pool        *worker.Pool
	Coordinator *coordinator.Coordinator
	Pipeline    pipeline.Service
}

func buildDependencies(ctx context.Context, settings config.Settings) (dependencies, error) {
	logger := logger_i.NewLogger("wiring")

	router := llm.NewRouter(
		rate.NewLimiter(rate.Limit(settings.LLMRequestsRate), settings.LLMBurst),
		buildProviders(ctx, settings)...,
	)
	if len(router.Providers()) == 0 {
		return dependencies{}, claimModel.ErrNoProvider
	}
	logger.Info("LLM providers ready", "priority", router.Providers())

	backup, err := backupStore.New(ctx, settings)
	if err != nil {
		logger.Error("Backup store unavailable, uploads will not be kept", "backend", settings.BackupBackend, "error", err)
		backup = backupStore.Discard{}
	}

	pool := worker.NewPool(worker.PoolConfig{
		MinWorkers:  settings.MinCPUWorkers,
		MaxWorkers:  settings.CPUWorkers,
		QueueLimit:  settings.CPUQueueLimit,
		IdleTimeout: config.IdleWorkerTimeout,
	})
	pool.Start()
	coord := coordinator.New(pool, backup)

	svc := pipeline.NewService(coord, pipeline.Capabilities{
		Text:       extraction.NewExtractor(),
		Vision:     specialist.NewVisionReader(router),
		Classifier: specialist.NewClassifier(router),
		Extractor:  specialist.NewExtractor(router),
	}, pipeline.Options{
		DocumentTimeout: settings.DocumentTimeout,
		ClaimDeadline:   settings.ClaimDeadline,
		MinTextLength:   settings.MinTextLength,
		LowConfidence:   settings.LowConfidence,
		NameThreshold:   settings.NameSimilarity,
		Clock:           settings.ValidationClock,
	})

	return dependencies{Pool: pool, Coordinator: coord, Pipeline: svc}, nil
}

// buildProviders keeps the configured priority order. Unknown names are skipped.
func buildProviders(ctx context.Context, settings config.Settings) []llm.Provider {
	logger := logger_i.NewLogger("wiring")
	var providers []llm.Provider
	for _, name := range settings.LLMProviders {
		switch name {
		case config.LLMProviderGemini:
			providers = append(providers, gemini.NewGeminiClient(ctx, settings.GeminiAPIKey, settings.GeminiModel))
		case config.LLMProviderOpenAI:
			providers = append(providers, openaiLLM.NewOpenAIClient(settings.OpenAIAPIKey, settings.OpenAIModel, settings.OpenAIBaseURL))
		default:
			logger.Warn("Unknown llm provider ignored", "provider", name)
		}
	}
	return providers
}
