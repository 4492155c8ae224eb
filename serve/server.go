package serve

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"

	"github.com/finsight-ai/finrag/pipeline"
)

// Config holds HTTP server configuration.
type Config struct {
	// Addr is the listen address. Default: ":8080"
	Addr string

	// AllowedOrigins restricts CORS. Empty allows all origins, which
	// suits local development with the browser frontend.
	AllowedOrigins []string

	// GracefulTimeout is the maximum duration to wait for active requests
	// to complete during graceful shutdown. Default: 30 seconds.
	GracefulTimeout time.Duration

	// RequestTimeout bounds one chat request end to end. Default: 90s,
	// enough for retrieval plus two LLM calls plus rendering.
	RequestTimeout time.Duration
}

// DefaultConfig returns defaults suitable for local development.
func DefaultConfig() *Config {
	return &Config{
		Addr:            ":8080",
		GracefulTimeout: 30 * time.Second,
		RequestTimeout:  90 * time.Second,
	}
}

// Asker runs the question pipeline. Satisfied by *pipeline.Pipeline.
type Asker interface {
	Ask(ctx context.Context, question string, history []pipeline.Turn) (*pipeline.Outcome, error)
}

// Server wraps the gin engine with lifecycle management: startup,
// graceful shutdown, and signal handling.
type Server struct {
	engine   *gin.Engine
	http     *http.Server
	config   *Config
	asker    Asker
	logger   *slog.Logger
	requests metric.Int64Counter
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets a custom logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) { s.logger = logger }
}

// WithMeter creates the request counter on the given meter instead of the
// global one.
func WithMeter(meter metric.Meter) Option {
	return func(s *Server) {
		if counter, err := newRequestCounter(meter); err == nil {
			s.requests = counter
		}
	}
}

// NewServer creates the HTTP backend over the given pipeline.
func NewServer(asker Asker, cfg *Config, opts ...Option) (*Server, error) {
	if asker == nil {
		return nil, errors.New("asker is required")
	}
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if cfg.Addr == "" {
		cfg.Addr = ":8080"
	}
	if cfg.GracefulTimeout == 0 {
		cfg.GracefulTimeout = 30 * time.Second
	}
	if cfg.RequestTimeout == 0 {
		cfg.RequestTimeout = 90 * time.Second
	}

	s := &Server{
		config: cfg,
		asker:  asker,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.requests == nil {
		counter, err := newRequestCounter(otel.Meter("finrag/serve"))
		if err != nil {
			return nil, fmt.Errorf("failed to create request counter: %w", err)
		}
		s.requests = counter
	}

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(cors.New(corsConfig(cfg.AllowedOrigins)))

	api := engine.Group("/api")
	api.POST("/chat", s.handleChat)
	api.GET("/health", s.handleHealth)

	s.engine = engine
	s.http = &http.Server{
		Addr:              cfg.Addr,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s, nil
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.DefaultConfig()
	if len(origins) == 0 {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	cfg.AllowHeaders = append(cfg.AllowHeaders, "Authorization")
	return cfg
}

// Handler returns the HTTP handler, used by tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run starts the server and blocks until shutdown. It handles graceful
// shutdown on SIGINT/SIGTERM.
func (s *Server) Run() error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("http server listening", "addr", s.config.Addr)
		if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	select {
	case err := <-errCh:
		return fmt.Errorf("http server failed: %w", err)
	case sig := <-sigCh:
		s.logger.Info("shutting down", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.config.GracefulTimeout)
	defer cancel()
	if err := s.http.Shutdown(ctx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	return nil
}

// Shutdown stops the server without waiting for a signal.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}

func newRequestCounter(meter metric.Meter) (metric.Int64Counter, error) {
	return meter.Int64Counter("finrag.chat.requests",
		metric.WithDescription("Chat requests by outcome status"))
}
