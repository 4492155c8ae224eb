package finrag

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"sync"

	"go.opentelemetry.io/otel/trace"

	"github.com/finsight-ai/finrag/cache"
	"github.com/finsight-ai/finrag/chartdata"
	"github.com/finsight-ai/finrag/config"
	"github.com/finsight-ai/finrag/dataset"
	"github.com/finsight-ai/finrag/embedding"
	"github.com/finsight-ai/finrag/graphrag"
	"github.com/finsight-ai/finrag/llm"
	"github.com/finsight-ai/finrag/neograph"
	"github.com/finsight-ai/finrag/pipeline"
	"github.com/finsight-ai/finrag/render"
	"github.com/finsight-ai/finrag/serve"
)

// App wires the full system: graph store, embedder, LLM clients, answer
// cache, and the question pipeline. Create one with New, share it across
// requests, and Close it on shutdown.
type App struct {
	cfg    *config.Config
	logger *slog.Logger
	tracer trace.Tracer

	store       *neograph.Store
	answerCache cache.Cache
	pipe        *pipeline.Pipeline

	mu     sync.Mutex
	closed bool
}

// Option configures an App.
type Option func(*App)

// WithLogger sets a custom logger. Defaults to a JSON slog logger on
// stdout.
func WithLogger(logger *slog.Logger) Option {
	return func(a *App) { a.logger = logger }
}

// WithTracer enables pipeline stage spans on the given tracer.
func WithTracer(tracer trace.Tracer) Option {
	return func(a *App) { a.tracer = tracer }
}

// WithAnswerCache overrides the cache chosen from configuration. Useful
// for tests.
func WithAnswerCache(c cache.Cache) Option {
	return func(a *App) { a.answerCache = c }
}

// New validates the configuration, connects to Neo4j and Redis, and
// assembles the question pipeline.
func New(ctx context.Context, cfg *config.Config, opts ...Option) (*App, error) {
	const op = "finrag.New"

	if cfg == nil {
		return nil, opErr(op, ErrInvalidConfig)
	}
	if err := cfg.Validate(); err != nil {
		return nil, opErr(op, errors.Join(ErrInvalidConfig, err))
	}

	app := &App{cfg: cfg}
	for _, opt := range opts {
		opt(app)
	}
	if app.logger == nil {
		app.logger = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		}))
	}

	embedder := embedding.NewOpenAIEmbedder(cfg.OpenAI.APIKey, cfg.OpenAI.EmbeddingModel)

	store, err := neograph.Open(ctx, neograph.Config{
		URI:      cfg.Neo4j.URI,
		Username: cfg.Neo4j.Username,
		Password: cfg.Neo4j.Password,
		Database: cfg.Neo4j.Database,
	}, embedder, neograph.WithLogger(app.logger))
	if err != nil {
		return nil, opErr(op, err)
	}
	app.store = store

	if app.answerCache == nil {
		app.answerCache, err = openCache(cfg)
		if err != nil {
			_ = store.Close(ctx)
			return nil, opErr(op, err)
		}
	}

	clientOpts := []llm.OpenAIOption{llm.WithModel(cfg.OpenAI.ChatModel)}
	if cfg.OpenAI.BaseURL != "" {
		clientOpts = append(clientOpts, llm.WithBaseURL(cfg.OpenAI.BaseURL))
	}
	client := llm.NewOpenAIClient(cfg.OpenAI.APIKey, clientOpts...)

	retriever := graphrag.NewRetriever(store, store,
		graphrag.WithTopK(cfg.Pipeline.TopK),
		graphrag.WithMinScore(cfg.Pipeline.MinScore),
		graphrag.WithLogger(app.logger),
	)

	tracker := llm.NewUsageTracker()
	pipeOpts := []pipeline.Option{
		pipeline.WithLogger(app.logger),
		pipeline.WithUsageTracker(tracker),
		pipeline.WithAnswerCache(app.answerCache),
		pipeline.WithGenerationTimeout(cfg.Pipeline.GenerationTimeout),
		pipeline.WithHistoryLimit(cfg.Pipeline.HistoryLimit),
		pipeline.WithModelParams(cfg.Pipeline.Temperature, cfg.Pipeline.MaxTokens),
	}
	if app.tracer != nil {
		pipeOpts = append(pipeOpts, pipeline.WithTracer(app.tracer))
	}
	app.pipe = pipeline.New(
		retriever,
		client,
		chartdata.NewLLMExtractor(client, tracker),
		render.NewRenderer(render.WithLogger(app.logger)),
		pipeOpts...,
	)
	return app, nil
}

// openCache returns the Redis answer cache when an address is configured,
// a no-op cache otherwise.
func openCache(cfg *config.Config) (cache.Cache, error) {
	if cfg.Redis.Addr == "" {
		return cache.Noop{}, nil
	}
	return cache.NewRedisCache(cache.RedisOptions{
		URL: cfg.Redis.Addr,
		TTL: cfg.Redis.TTL,
	})
}

// Pipeline returns the question pipeline.
func (a *App) Pipeline() *pipeline.Pipeline {
	return a.pipe
}

// Store returns the graph store, used by import tooling.
func (a *App) Store() *neograph.Store {
	return a.store
}

// Serve runs the HTTP backend until a shutdown signal arrives.
func (a *App) Serve() error {
	const op = "App.Serve"

	server, err := serve.NewServer(a.pipe, &serve.Config{
		Addr:           a.cfg.Server.Addr,
		AllowedOrigins: a.cfg.Server.AllowedOrigins,
	}, serve.WithLogger(a.logger))
	if err != nil {
		return opErr(op, err)
	}
	if err := server.Run(); err != nil {
		return opErr(op, err)
	}
	return nil
}

// Import loads the dataset the manifest describes, bulk-imports it into
// the graph, creates the vector index, and backfills embeddings.
func (a *App) Import(ctx context.Context, manifestPath string) error {
	const op = "App.Import"

	manifest, err := dataset.LoadManifest(manifestPath)
	if err != nil {
		return opErr(op, err)
	}
	docs, err := dataset.LoadGraphDocuments(manifest)
	if err != nil {
		return opErr(op, err)
	}
	a.logger.Info("importing dataset", "name", manifest.Name, "documents", len(docs))

	if err := a.store.ImportGraphDocuments(ctx, docs, neograph.DefaultImportOptions()); err != nil {
		return opErr(op, err)
	}
	if err := a.store.CreateVectorIndex(ctx); err != nil {
		return opErr(op, err)
	}
	embedded, err := a.store.EmbedDocuments(ctx)
	if err != nil {
		return opErr(op, err)
	}
	a.logger.Info("dataset import complete", "name", manifest.Name, "embedded", embedded)
	return nil
}

// Close releases the graph store and cache connections. Safe to call more
// than once.
func (a *App) Close(ctx context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.closed {
		return nil
	}
	a.closed = true

	var errs []error
	if a.store != nil {
		if err := a.store.Close(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	if a.answerCache != nil {
		if err := a.answerCache.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return opErr("App.Close", errors.Join(errs...))
	}
	return nil
}
