package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humamux"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/carson-networks/ledger-server/internal/handlers/status"
	"github.com/carson-networks/ledger-server/internal/handlers/transaction"
	"github.com/carson-networks/ledger-server/internal/logging"
	"github.com/carson-networks/ledger-server/internal/middleware"
	"github.com/carson-networks/ledger-server/internal/service"
)

const shutdownTimeout = 10 * time.Second

type Rest struct {
	Logger  *logrus.Logger
	Port    int
	Service *service.Service
	// DB backs the /status ping. Nil skips the ping.
	DB status.Pinger
}

// Handler builds the full router: plain /status plus the huma API.
func (r *Rest) Handler() http.Handler {
	router := mux.NewRouter()
	router.Use(middleware.RequestID)

	statusHandler := status.NewHandler(r.DB)
	router.HandleFunc("/status", logging.LoggingWrapper("Status", r.Logger, statusHandler.Handler))

	api := humamux.New(router, apiConfig())
	api.UseMiddleware(logging.Middleware(r.Logger))

	transaction.RegisterAll(api, r.Service.Transaction)

	return router
}

// apiConfig is huma's default config without the schema-link hook, so
// response bodies carry no "$schema" key.
func apiConfig() huma.Config {
	config := huma.DefaultConfig("Ledger API", "1.0.0")
	config.CreateHooks = nil
	return config
}

// Serve blocks until ctx is cancelled or the listener fails, then drains
// in-flight requests.
func (r *Rest) Serve(ctx context.Context) error {
	server := http.Server{
		Addr:              ":" + strconv.Itoa(r.Port),
		Handler:           r.Handler(),
		ReadTimeout:       time.Duration(30) * time.Second,
		WriteTimeout:      time.Duration(30) * time.Second,
		IdleTimeout:       time.Duration(10) * time.Second,
		ReadHeaderTimeout: time.Duration(10) * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		r.Logger.WithField("port", r.Port).Info("HttpServer.Serve.listening")
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		r.Logger.WithError(err).Error("HttpServer.Serve.listen error")
		return err
	case <-ctx.Done():
	}

	r.Logger.Info("HttpServer.Serve.shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		r.Logger.WithError(err).Error("HttpServer.Serve.shutdown error")
		return err
	}
	return nil
}
