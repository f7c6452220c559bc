package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/akolanti/ClaimAPI/internal/config"
	"github.com/akolanti/ClaimAPI/internal/data/store"
	"github.com/akolanti/ClaimAPI/internal/domain/claimModel"
	"github.com/akolanti/ClaimAPI/internal/handlers"
	"github.com/akolanti/ClaimAPI/internal/middleware"
	"github.com/akolanti/ClaimAPI/internal/ratelimit"
	"github.com/akolanti/ClaimAPI/internal/server"
	"github.com/akolanti/ClaimAPI/pkg/logger_i"
	"github.com/spf13/cobra"
)

func runServe(cmd *cobra.Command, args []string) error {
	settings := config.Load()
	logger_i.Init(settings.IsProd)
	logger := logger_i.NewLogger("main")

	serviceContext, closeExternalServices := context.WithCancel(context.Background())
	defer closeExternalServices()

	deps, err := buildDependencies(serviceContext, settings)
	if err != nil {
		logger.Error("One or more external services failed to initialize. Shutting down.", "error", err)
		return err
	}

	var counterStore claimModel.CounterStore
	if redisCounter := store.GetRedisCounterStore(serviceContext, settings); redisCounter != nil {
		counterStore = redisCounter
	} else if settings.RedisFallback {
		logger.Error("Redis store is offline, counting rate limits in memory")
		counterStore = store.InitInMemoryCounterStore()
	} else {
		logger.Error("Redis store is offline and fallback is disabled, the limiter fails " + failMode(settings))
		counterStore = store.UnavailableCounterStore{}
	}
	limiter := ratelimit.NewLimiter(counterStore, settings.RateLimitWindow, settings.RateLimitMax, settings.RateLimitFailOpen)

	routes := server.Routes{
		Claims: handlers.NewClaimHandler(deps.Pipeline, handlers.Limits{
			MaxBatchSize: settings.MaxBatchSize,
			MaxFileSize:  settings.MaxFileSize,
		}),
		Chain:       middleware.NewChain(limiter, settings.AuthToken),
		Environment: settings.Environment,
	}

	//server handling
	gracefulShutdown := make(chan os.Signal, 1)
	signal.Notify(gracefulShutdown, syscall.SIGINT, syscall.SIGTERM)
	stopExecution := make(chan bool, 1)

	shutdownParams := server.ShutdownParams{
		GracefulShutdown: gracefulShutdown,
		StopExecution:    stopExecution,
		StopWorkers:      deps.Pool.Stop,
		DrainBackups:     deps.Coordinator.Drain,
		CloseServices:    closeExternalServices,
	}
	go server.ShutDownHandler(shutdownParams)
	go server.CreateServer(settings.ListenAddr, routes)

	<-stopExecution
	logger.Info("Server stopped")
	return nil
}

func failMode(settings config.Settings) string {
	if settings.RateLimitFailOpen {
		return "open"
	}
	return "closed"
}
