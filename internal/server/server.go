// Package server provides the HTTP server and routing for the strategy builder.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"

	"github.com/aristath/strategy-builder/internal/di"
	allocationhandlers "github.com/aristath/strategy-builder/internal/modules/allocation/handlers"
	portfoliohandlers "github.com/aristath/strategy-builder/internal/modules/portfolio/handlers"
	riskhandlers "github.com/aristath/strategy-builder/internal/modules/risk/handlers"
	universehandlers "github.com/aristath/strategy-builder/internal/modules/universe/handlers"
)

// Config holds server configuration
type Config struct {
	Log       zerolog.Logger
	Port      int
	DevMode   bool
	Container *di.Container // DI container with all services
}

// requestTimeout caps ordinary API requests
const requestTimeout = 60 * time.Second

// writeTimeout is the connection write deadline. Event streams clear it.
var writeTimeout = 15 * time.Second

// Server represents the HTTP server
type Server struct {
	router         *chi.Mux
	server         *http.Server
	log            zerolog.Logger
	port           int
	devMode        bool
	container      *di.Container
	systemHandlers *SystemHandlers
}

// New creates a new HTTP server
func New(cfg Config) *Server {
	s := &Server{
		router:    chi.NewRouter(),
		log:       cfg.Log.With().Str("component", "server").Logger(),
		port:      cfg.Port,
		devMode:   cfg.DevMode,
		container: cfg.Container,
		systemHandlers: NewSystemHandlers(
			cfg.Log,
			cfg.Container.UniverseService,
			cfg.Container.AllocationService,
		),
	}

	s.setupMiddleware()
	s.setupRoutes()

	s.server = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: writeTimeout,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// Router exposes the configured router
func (s *Server) Router() http.Handler {
	return s.router
}

func (s *Server) setupMiddleware() {
	// Recovery from panics
	s.router.Use(middleware.Recoverer)

	// Request ID
	s.router.Use(middleware.RequestID)

	// Real IP
	s.router.Use(middleware.RealIP)

	// Logging and request metrics
	s.router.Use(s.loggingMiddleware)

	// CORS
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders: []string{"Link"},
		MaxAge:         300,
	}))
}

// requestMiddleware applies to every route except the long-lived event streams
func (s *Server) requestMiddleware(r chi.Router) {
	// Timeout
	r.Use(middleware.Timeout(requestTimeout))

	// Compress responses
	if !s.devMode {
		r.Use(middleware.Compress(5))
	}
}

// setupRoutes configures all routes
func (s *Server) setupRoutes() {
	c := s.container

	// Event streams stay open for as long as the client listens
	s.router.Group(func(r chi.Router) {
		r.Get("/api/events/stream", NewEventsStreamHandler(c.EventBus, s.log).ServeHTTP)
		r.Get("/api/events/ws", NewEventsWebSocketHandler(c.EventBus, s.log).ServeHTTP)
	})

	s.router.Group(func(r chi.Router) {
		s.requestMiddleware(r)

		r.Get("/health", s.systemHandlers.HandleHealth)
		r.Method(http.MethodGet, "/metrics", c.Metrics.Handler())

		r.Route("/api", func(r chi.Router) {
			r.Get("/system/status", s.systemHandlers.HandleSystemStatus)

			universehandlers.NewHandler(c.UniverseService, c.Config.DefaultRiskProfile, c.Config.UniverseSize, s.log).RegisterRoutes(r)
			riskhandlers.NewHandler(s.log).RegisterRoutes(r)
			allocationhandlers.NewHandler(c.AllocationService, s.log).RegisterRoutes(r)
			portfoliohandlers.NewHandler(c.PortfolioService, s.log).RegisterRoutes(r)
		})
	})
}

// Start starts the HTTP server
func (s *Server) Start() error {
	s.log.Info().Int("port", s.port).Msg("Starting HTTP server")
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info().Msg("Shutting down HTTP server")
	return s.server.Shutdown(ctx)
}

// loggingMiddleware logs HTTP requests and records them in the request metrics
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		duration := time.Since(start)
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		// Label by route pattern to keep metric cardinality bounded
		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		s.container.Metrics.RecordHTTPRequest(r.Method, route, status, duration)

		s.log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", status).
			Int("bytes", ww.BytesWritten()).
			Dur("duration_ms", duration).
			Str("request_id", middleware.GetReqID(r.Context())).
			Msg("HTTP request")
	})
}
