// Package apiserver provides the JSON API HTTP server
package apiserver

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"

	"github.com/alchemorsel/matchmaker/internal/infrastructure/config"
	"github.com/alchemorsel/matchmaker/internal/infrastructure/http/handlers"
	"github.com/alchemorsel/matchmaker/internal/infrastructure/http/middleware"
	"github.com/alchemorsel/matchmaker/internal/infrastructure/monitoring"
	"github.com/alchemorsel/matchmaker/pkg/healthcheck"
)

const requestTimeout = 30 * time.Second

// Server represents the JSON API HTTP server
type Server struct {
	config      *config.Config
	logger      *zap.Logger
	server      *http.Server
	router      *chi.Mux
	api         *handlers.APIHandlers
	health      *healthcheck.HealthCheck
	metrics     *monitoring.MetricsCollector
	limiter     *middleware.RateLimiter
	openAPI     *OpenAPIHandler
	stopPruning chan struct{}
	stopOnce    sync.Once
}

// NewServer creates a new API server instance. metrics may be nil when
// metrics are disabled.
func NewServer(
	cfg *config.Config,
	api *handlers.APIHandlers,
	health *healthcheck.HealthCheck,
	metrics *monitoring.MetricsCollector,
	log *zap.Logger,
) *Server {
	log = log.Named("apiserver")

	s := &Server{
		config:      cfg,
		logger:      log,
		api:         api,
		health:      health,
		metrics:     metrics,
		limiter:     middleware.NewRateLimiter(cfg.Server.RequestsPerSecond, cfg.Server.Burst, log),
		openAPI:     NewOpenAPIHandler(log),
		stopPruning: make(chan struct{}),
	}

	s.router = s.setupRoutes()
	s.server = &http.Server{
		Addr:           cfg.GetServerAddr(),
		Handler:        otelhttp.NewHandler(s.router, "matchmaker-api"),
		ReadTimeout:    cfg.Server.ReadTimeout,
		WriteTimeout:   cfg.Server.WriteTimeout,
		IdleTimeout:    cfg.Server.IdleTimeout,
		MaxHeaderBytes: cfg.Server.MaxHeaderBytes,
	}

	return s
}

// setupRoutes configures the router and global middleware
func (s *Server) setupRoutes() *chi.Mux {
	r := chi.NewRouter()
	mon := s.config.Monitoring

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logger(s.logger, mon.HealthCheckPath, mon.MetricsPath))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.Security())
	if s.config.Server.EnableCompression {
		r.Use(middleware.NewCompression(middleware.DefaultCompressionConfig()).Handler)
	}
	if s.config.Server.EnableCORS {
		r.Use(middleware.CORS(s.config.Server.AllowedOrigins))
	}
	if s.metrics != nil {
		r.Use(middleware.Metrics(s.metrics))
	}

	r.Get(mon.HealthCheckPath, s.health.Handler())
	r.Get(mon.HealthCheckPath+"/live", s.health.LivenessHandler())
	r.Get(mon.HealthCheckPath+"/ready", s.health.ReadinessHandler())

	if s.metrics != nil && mon.EnableMetrics {
		r.Handle(mon.MetricsPath, s.metrics.Handler())
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/openapi.yaml", s.openAPI.ServeOpenAPISpec)
		r.Get("/docs", s.openAPI.ServeSwaggerUI)

		r.Group(func(r chi.Router) {
			r.Use(s.limiter.Handler())
			r.Use(chimiddleware.Timeout(requestTimeout))
			r.Use(middleware.JSONOnly())
			s.api.Routes(r)
		})
	})

	return r
}

// Handler returns the instrumented root handler
func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

// Start starts the HTTP server and blocks until it stops. A graceful
// Shutdown is not reported as an error.
func (s *Server) Start() error {
	s.logger.Info("Starting API server", zap.String("address", s.server.Addr))

	go s.pruneVisitors()

	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully shuts down the API server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down API server")
	s.stopOnce.Do(func() { close(s.stopPruning) })
	return s.server.Shutdown(ctx)
}

func (s *Server) pruneVisitors() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.limiter.Prune()
		case <-s.stopPruning:
			return
		}
	}
}
