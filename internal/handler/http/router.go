package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/utafrali/storefront-listing/internal/render"
	"github.com/utafrali/storefront-listing/internal/service"
	"github.com/utafrali/storefront-listing/pkg/health"
	"github.com/utafrali/storefront-listing/pkg/middleware"
)

// RouterConfig carries the transport settings of the router.
type RouterConfig struct {
	ServiceName  string
	Environment  string
	AllowOrigins []string
	CacheMaxAge  int
}

// NewRouter creates a chi router with all listing service routes registered.
func NewRouter(
	cfg RouterConfig,
	listingService *service.ListingService,
	renderer *render.Renderer,
	healthHandler *health.Handler,
	logger *slog.Logger,
) http.Handler {
	r := chi.NewRouter()

	cors := middleware.DefaultCORSConfig()
	cors.AllowedOrigins = cfg.AllowOrigins
	cors.Environment = cfg.Environment

	// Global middleware
	r.Use(middleware.CORS(cors))
	r.Use(middleware.Recovery(logger))
	r.Use(chimw.Compress(5))
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(middleware.RequestLogging(logger))
	r.Use(middleware.Tracing(cfg.ServiceName))
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.PrometheusMetrics(cfg.ServiceName))

	// Health check endpoints
	r.Get("/health/live", healthHandler.LivenessHandler())
	r.Get("/health/ready", healthHandler.ReadinessHandler())
	r.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
		promhttp.Handler().ServeHTTP(w, r)
	})

	listingHandler := NewListingHandler(listingService, renderer, logger)

	r.Route("/api/v1/listings", func(r chi.Router) {
		r.With(middleware.CacheControl(cfg.CacheMaxAge)).Get("/", listingHandler.List)
		r.With(middleware.CacheControl(cfg.CacheMaxAge)).Get("/{listing}", listingHandler.Get)

		r.Group(func(r chi.Router) {
			r.Use(ContentTypeJSON)
			r.Post("/{listing}/events", listingHandler.ApplyEvent)
		})
	})

	r.With(middleware.CacheControl(cfg.CacheMaxAge)).Get("/listings/{listing}", listingHandler.Page)

	return r
}
