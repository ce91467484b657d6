package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/utafrali/storefront-listing/internal/config"
	"github.com/utafrali/storefront-listing/internal/engine"
	"github.com/utafrali/storefront-listing/internal/engine/memory"
	handler "github.com/utafrali/storefront-listing/internal/handler/http"
	"github.com/utafrali/storefront-listing/internal/render"
	"github.com/utafrali/storefront-listing/internal/service"
	apperrors "github.com/utafrali/storefront-listing/pkg/errors"
	"github.com/utafrali/storefront-listing/pkg/health"
	"github.com/utafrali/storefront-listing/pkg/tracing"
)

// ServiceName identifies the listing service in logs, metrics and traces.
const ServiceName = "listing-service"

// App wires together all dependencies and runs the listing service.
type App struct {
	cfg            *config.Config
	logger         *slog.Logger
	httpServer     *http.Server
	tracerShutdown func(context.Context) error
}

// NewApp creates a new application instance, initializing all dependencies.
// Every configured listing is parsed from its markup before the server is
// built; a listing that fails to load aborts startup.
func NewApp(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	tracerShutdown, err := tracing.InitTracer(ctx, cfg.Tracing)
	if err != nil {
		return nil, fmt.Errorf("init tracer: %w", err)
	}

	var eng engine.ListingEngine = memory.New()
	listingService := service.NewListingService(eng, logger)

	if err := listingService.LoadCatalogs(ctx, cfg.Listings); err != nil {
		_ = tracerShutdown(ctx)
		return nil, fmt.Errorf("load catalogs: %w", err)
	}
	logger.Info("listing catalogs loaded", slog.Int("listings", len(cfg.Listings)))

	renderer, err := render.New()
	if err != nil {
		_ = tracerShutdown(ctx)
		return nil, fmt.Errorf("init renderer: %w", err)
	}

	// Health checks: one per listing, down when its catalog is missing or empty.
	healthHandler := health.NewHandler(ServiceName)
	for _, l := range cfg.Listings {
		key := l.Key
		healthHandler.Register("listing:"+key, func(ctx context.Context) error {
			c, err := eng.Catalog(ctx, key)
			if err != nil {
				return err
			}
			if len(c.Items) == 0 {
				return apperrors.Unavailable(fmt.Sprintf("listing %q has no items", key))
			}
			return nil
		})
	}

	router := handler.NewRouter(handler.RouterConfig{
		ServiceName:  ServiceName,
		Environment:  cfg.Environment,
		AllowOrigins: cfg.AllowOrigins,
		CacheMaxAge:  cfg.CacheMaxAge,
	}, listingService, renderer, healthHandler, logger)

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return &App{
		cfg:            cfg,
		logger:         logger,
		httpServer:     httpServer,
		tracerShutdown: tracerShutdown,
	}, nil
}

// Handler returns the HTTP handler served by the application.
func (a *App) Handler() http.Handler {
	return a.httpServer.Handler
}

// Run starts the HTTP server, blocking until the context is canceled.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		a.logger.Info("starting HTTP server",
			slog.String("addr", a.httpServer.Addr),
		)
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("shutdown signal received")
	case err := <-errCh:
		return err
	}

	return a.Shutdown()
}

// Shutdown gracefully stops all components.
func (a *App) Shutdown() error {
	a.logger.Info("shutting down application...")

	var errs []error

	// Graceful HTTP server shutdown with a 10-second deadline.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := a.httpServer.Shutdown(shutdownCtx); err != nil {
		a.logger.Error("http server shutdown error", slog.String("error", err.Error()))
		errs = append(errs, err)
	}

	if err := a.tracerShutdown(shutdownCtx); err != nil {
		a.logger.Error("tracer shutdown error", slog.String("error", err.Error()))
		errs = append(errs, err)
	}

	a.logger.Info("application shutdown complete")
	return errors.Join(errs...)
}
