// Package api provides the HTTP API server and handlers for the HatKhata
// companion server. The mobile app is the only intended client; there is no
// auth layer because the server binds to the loopback/LAN and serves a
// single user.
package api

import (
	"log/slog"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/hatkhataapp/hatkhata-server/internal/config"
	"github.com/hatkhataapp/hatkhata-server/internal/export"
	"github.com/hatkhataapp/hatkhata-server/internal/ratelimit"
	"github.com/hatkhataapp/hatkhata-server/internal/sse"
	"github.com/hatkhataapp/hatkhata-server/internal/store"
	"github.com/hatkhataapp/hatkhata-server/internal/validation"
)

// serverVersion is reported by the health/instance endpoints and the OpenAPI doc.
const serverVersion = "1.0.0"

// Server holds dependencies for HTTP handlers.
type Server struct {
	store      *store.Store
	exporter   *export.Exporter
	sseHandler *sse.Handler
	validator  *validation.Validator
	limiter    *ratelimit.KeyedRateLimiter
	router     *chi.Mux
	api        huma.API
	logger     *slog.Logger
	cfg        *config.Config
}

// NewServer creates a new HTTP server with all routes configured.
func NewServer(st *store.Store, exporter *export.Exporter, sseHandler *sse.Handler, cfg *config.Config, logger *slog.Logger) *Server {
	s := &Server{
		store:      st,
		exporter:   exporter,
		sseHandler: sseHandler,
		validator:  validation.New(),
		limiter:    ratelimit.New(25, 50),
		router:     chi.NewRouter(),
		logger:     logger,
		cfg:        cfg,
	}

	s.setupMiddleware()

	humaConfig := huma.DefaultConfig("HatKhata API", serverVersion)
	humaConfig.Transformers = append(humaConfig.Transformers, EnvelopeTransformer)
	s.api = humachi.New(s.router, humaConfig)
	RegisterErrorHandler()

	s.registerHealthRoutes()
	s.registerTagRoutes()
	s.registerListRoutes()
	s.registerItemRoutes()
	s.registerUserRoutes()
	s.registerSettingsRoutes()

	// Streaming endpoints stay plain chi handlers; huma's response model
	// does not fit SSE or CSV downloads.
	s.router.Get("/api/v1/events", s.sseHandler.ServeHTTP)
	s.router.Get("/api/v1/export/csv", s.handleExportCSV)

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// setupMiddleware configures the middleware stack.
func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Compress(5))

	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.cfg.Server.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	s.router.Use(s.rateLimitMutations)
}

// rateLimitMutations applies the per-IP limiter to mutating methods only;
// reads and the SSE stream are unmetered.
func (s *Server) rateLimitMutations(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost, http.MethodPatch, http.MethodPut, http.MethodDelete:
			if !s.limiter.Allow(r.RemoteAddr) {
				s.logger.Warn("rate limit exceeded",
					slog.String("remote", r.RemoteAddr),
					slog.String("path", r.URL.Path))
				http.Error(w, "rate limit exceeded", http.StatusTooManyRequests)
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}
