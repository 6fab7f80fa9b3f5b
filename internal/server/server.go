package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/mymmrac/telego"

	"llm-trade-journal/internal/interfaces"
	"llm-trade-journal/internal/logger"
)

const secretHeader = "X-Telegram-Bot-Api-Secret-Token"

// UpdateHandler consumes Telegram updates delivered to the webhook.
type UpdateHandler interface {
	HandleUpdate(ctx context.Context, update telego.Update)
}

// Config holds server configuration
type Config struct {
	Port          int
	WebhookPath   string
	WebhookSecret string
	Journal       interfaces.Journal
	Updates       UpdateHandler // nil leaves the webhook route unregistered
}

// Server exposes the health endpoints, the Telegram webhook and a JSON
// message endpoint.
type Server struct {
	router  *chi.Mux
	server  *http.Server
	cfg     Config
	started time.Time
}

func New(cfg Config) *Server {
	s := &Server{
		router:  chi.NewRouter(),
		cfg:     cfg,
		started: time.Now(),
	}

	s.setupMiddleware()
	s.setupRoutes()

	s.server = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 90 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return s
}

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(s.loggingMiddleware)
	s.router.Use(middleware.Timeout(75 * time.Second))
}

func (s *Server) setupRoutes() {
	s.router.Get("/", s.handleRoot)
	s.router.Get("/health", s.handleHealth)

	if s.cfg.Updates != nil {
		s.router.Post(s.cfg.WebhookPath, s.handleWebhook)
	}

	s.router.Route("/api", func(r chi.Router) {
		r.Post("/messages", s.handleMessage)
	})
}

// Handler returns the root handler, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) Start(ctx context.Context) error {
	logger.Info(ctx, "Starting HTTP server", "port", s.cfg.Port)
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	logger.Info(ctx, "Shutting down HTTP server")
	return s.server.Shutdown(ctx)
}

func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		logger.Debug(r.Context(), "HTTP request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration_ms", time.Since(start).Milliseconds(),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}
