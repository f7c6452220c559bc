package server

import (
	"context"
	"errors"
	"net/http"
	"os"

	"github.com/akolanti/ClaimAPI/internal/adapter/utils"
	"github.com/akolanti/ClaimAPI/internal/config"
	"github.com/akolanti/ClaimAPI/internal/handlers"
	"github.com/akolanti/ClaimAPI/internal/middleware"
	"github.com/akolanti/ClaimAPI/pkg/logger_i"
	"github.com/go-chi/chi/v5"
)

var (
	server  *http.Server
	_logger = logger_i.NewLogger("Server")
)

type Routes struct {
	Claims      *handlers.ClaimHandler
	Chain       *middleware.Chain
	Environment string
}

type ShutdownParams struct {
	GracefulShutdown chan os.Signal
	StopExecution    chan bool
	StopWorkers      func()
	DrainBackups     func()
	CloseServices    context.CancelFunc
}

// RegisterRoutes mounts health and the claim API on r.
func RegisterRoutes(r *chi.Mux, routes Routes) {
	r.Get("/", routes.Chain.WrapOpen(handlers.HealthHandler(routes.Environment)))
	r.Route(config.APIPrefix+"/claim", func(claim chi.Router) {
		claim.Post("/process-claim", routes.Chain.Wrap(routes.Claims.ProcessClaim))
	})
}

func CreateServer(listenAddr string, routes Routes) {
	r := utils.GetRouter()
	RegisterRoutes(r.Router, routes)

	server = &http.Server{
		Addr:         listenAddr,
		Handler:      r.Router,
		ReadTimeout:  config.ReadTimeout,
		WriteTimeout: config.WriteTimeout,
		IdleTimeout:  config.IdleTimeout,
	}

	_logger.Info("Server is listening at", "address", listenAddr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		_logger.Error("Server crashed", "error", err.Error(), "addr", listenAddr)
		os.Exit(1)
	}
}

func ShutDownHandler(shutdownParams ShutdownParams) {
	state := <-shutdownParams.GracefulShutdown
	_logger.Info("Server is shutting down", "signal", state.String())

	ctx, cancel := context.WithTimeout(context.Background(), config.ShutdownContextTimeout)
	defer cancel()

	done := make(chan struct{})

	go func() {
		if server != nil {
			server.SetKeepAlivesEnabled(false)
			if err := server.Shutdown(ctx); err != nil {
				_logger.Error("Could not shutdown gracefully", "error", err)
			}
		}

		//in-flight requests are done, now the pool and pending backups
		shutdownParams.StopWorkers()
		shutdownParams.DrainBackups()
		shutdownParams.CloseServices()
		close(done)
	}()

	select {
	case <-done:
		_logger.Info("Gracefully is shutting down")
	case <-ctx.Done():
		_logger.Info("Force Shut down")
		os.Exit(1)
	}
	close(shutdownParams.StopExecution)
}
