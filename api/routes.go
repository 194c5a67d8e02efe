package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humago"
	"github.com/sirupsen/logrus"

	"github.com/carson-networks/budget-tracker/internal/auth"
	"github.com/carson-networks/budget-tracker/internal/handlers/v1/account"
	"github.com/carson-networks/budget-tracker/internal/handlers/v1/data"
	"github.com/carson-networks/budget-tracker/internal/handlers/v1/settings"
	"github.com/carson-networks/budget-tracker/internal/handlers/v1/stats"
	"github.com/carson-networks/budget-tracker/internal/handlers/v1/status"
	"github.com/carson-networks/budget-tracker/internal/handlers/v1/transaction"
	"github.com/carson-networks/budget-tracker/internal/logging"
	"github.com/carson-networks/budget-tracker/internal/service"
)

const shutdownTimeout = 10 * time.Second

type Rest struct {
	Logger  *logrus.Logger
	Port    string
	Service *service.Service
	Gateway *auth.Gateway
	// Status is pinged by /status. Nil when the backend has nothing to ping.
	Status status.Pinger
}

// Handler builds the mux with every route registered.
func (r *Rest) Handler() http.Handler {
	mux := http.NewServeMux()

	statusHandler := status.NewHandler(r.Status)
	mux.HandleFunc("/status", logging.LoggingWrapper("Status", r.Logger, statusHandler.Handler))

	config := huma.DefaultConfig("Budget Tracker API", "1.0.0")
	config.Components.SecuritySchemes = map[string]*huma.SecurityScheme{
		"bearer": {Type: "http", Scheme: "bearer"},
	}
	api := humago.New(mux, config)
	api.UseMiddleware(logging.Middleware(r.Logger))

	account.NewRegisterAccountHandler(r.Gateway).Register(api)
	account.NewLoginHandler(r.Gateway).Register(api)
	account.NewLogoutHandler(r.Gateway).Register(api)
	account.NewMeHandler(r.Gateway, r.Service.Account).Register(api)

	transaction.NewCreateTransactionHandler(r.Gateway, r.Service.Transaction).Register(api)
	transaction.NewUpdateTransactionHandler(r.Gateway, r.Service.Transaction).Register(api)
	transaction.NewDeleteTransactionHandler(r.Gateway, r.Service.Transaction).Register(api)
	transaction.NewListTransactionsHandler(r.Gateway, r.Service.Session).Register(api)
	transaction.NewRecentTransactionsHandler(r.Gateway, r.Service.Session).Register(api)

	stats.NewStatsHandler(r.Gateway, r.Service.Session).Register(api)
	stats.NewTrendHandler(r.Gateway, r.Service.Session).Register(api)

	settings.NewHandler(r.Gateway, r.Service.Settings, r.Service.Category).Register(api)
	data.NewHandler(r.Gateway, r.Service.Data).Register(api)

	return mux
}

// Serve listens until ctx is cancelled, then drains in-flight requests.
func (r *Rest) Serve(ctx context.Context) error {
	server := http.Server{
		Addr:              ":" + r.Port,
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
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			r.Logger.WithError(err).Error("HttpServer.Serve.listen error")
			return err
		}
		return nil
	case <-ctx.Done():
	}

	r.Logger.Info("HttpServer.Serve.shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		r.Logger.WithError(err).Error("HttpServer.Serve.shutdown")
		return err
	}
	return nil
}
