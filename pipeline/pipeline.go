package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/finsight-ai/finrag/cache"
	"github.com/finsight-ai/finrag/chartdata"
	"github.com/finsight-ai/finrag/graphrag"
	"github.com/finsight-ai/finrag/llm"
	"github.com/finsight-ai/finrag/render"
)

// ErrEmptyQuestion is returned when a request carries no question text.
var ErrEmptyQuestion = errors.New("question is empty")

// EvidenceRetriever gathers the evidence bundle for a question. Satisfied
// by graphrag.Retriever.
type EvidenceRetriever interface {
	Retrieve(ctx context.Context, question string) (*graphrag.EvidenceBundle, error)
}

// DefaultHistoryLimit is how many trailing conversation turns are folded
// into prompts and cache keys.
const DefaultHistoryLimit = 6

// DefaultGenerationTimeout bounds one answer-generation LLM call.
const DefaultGenerationTimeout = 60 * time.Second

// defaultTemperature keeps answers grounded rather than creative.
const defaultTemperature = 0.2

// Pipeline runs the full question flow: retrieve evidence, generate a
// grounded answer, extract chart data, render. All state is injected and
// request-scoped; a Pipeline is safe for concurrent use.
type Pipeline struct {
	retriever EvidenceRetriever
	client    llm.Client
	extractor chartdata.Extractor
	renderer  *render.Renderer

	answerCache  cache.Cache
	logger       *slog.Logger
	tracer       trace.Tracer
	tracker      *llm.UsageTracker
	timeout      time.Duration
	historyLimit int
	temperature  float64
	maxTokens    int
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithLogger sets a custom logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) { p.logger = logger }
}

// WithTracer enables stage spans on the given tracer.
func WithTracer(tracer trace.Tracer) Option {
	return func(p *Pipeline) {
		if tracer != nil {
			p.tracer = tracer
		}
	}
}

// WithAnswerCache sets the answer cache. Defaults to cache.Noop.
func WithAnswerCache(c cache.Cache) Option {
	return func(p *Pipeline) { p.answerCache = c }
}

// WithGenerationTimeout bounds each answer-generation call.
func WithGenerationTimeout(d time.Duration) Option {
	return func(p *Pipeline) { p.timeout = d }
}

// WithHistoryLimit caps how many trailing turns enter the prompt.
func WithHistoryLimit(n int) Option {
	return func(p *Pipeline) { p.historyLimit = n }
}

// WithUsageTracker records per-stage token usage on the given tracker.
func WithUsageTracker(t *llm.UsageTracker) Option {
	return func(p *Pipeline) { p.tracker = t }
}

// WithModelParams sets the generation temperature and max token count.
// A maxTokens of 0 leaves the provider default in place.
func WithModelParams(temperature float64, maxTokens int) Option {
	return func(p *Pipeline) {
		p.temperature = temperature
		p.maxTokens = maxTokens
	}
}

// New creates a Pipeline over the given retriever, completion client,
// chart extractor, and renderer.
func New(retriever EvidenceRetriever, client llm.Client, extractor chartdata.Extractor, renderer *render.Renderer, opts ...Option) *Pipeline {
	p := &Pipeline{
		retriever:    retriever,
		client:       client,
		extractor:    extractor,
		renderer:     renderer,
		answerCache:  cache.Noop{},
		logger:       slog.Default(),
		tracer:       noop.NewTracerProvider().Tracer("finrag"),
		tracker:      llm.NewUsageTracker(),
		timeout:      DefaultGenerationTimeout,
		historyLimit: DefaultHistoryLimit,
		temperature:  defaultTemperature,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Usage returns the token usage tracker shared by all pipeline stages.
func (p *Pipeline) Usage() *llm.UsageTracker {
	return p.tracker
}

// Answer retrieves evidence for the question and generates a grounded text
// answer. Questions the evidence cannot answer still succeed: the answer
// text explains what is missing. Only retrieval or provider infrastructure
// failures return errors.
func (p *Pipeline) Answer(ctx context.Context, question string, history []Turn) (string, error) {
	if question == "" {
		return "", ErrEmptyQuestion
	}

	ctx, span := p.startSpan(ctx, "pipeline.answer")
	defer span.End()

	bundle, err := p.retrieve(ctx, question)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return "", err
	}
	answer, err := p.generate(ctx, bundle, question, history)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return "", err
	}
	return answer, nil
}

// Ask runs the full pipeline and returns a tagged Outcome: StatusChart when
// a chart was extracted and rendered, StatusAnswer otherwise. Designed
// failures (no evidence, no chartable data, render rejection) are encoded
// in the Outcome; errors are reserved for infrastructure.
func (p *Pipeline) Ask(ctx context.Context, question string, history []Turn) (*Outcome, error) {
	if question == "" {
		return nil, ErrEmptyQuestion
	}

	ctx, span := p.startSpan(ctx, "pipeline.ask")
	defer span.End()

	key := cache.Key(append([]string{question}, historyKeyParts(history, p.historyLimit)...)...)
	if outcome := p.cachedOutcome(ctx, key); outcome != nil {
		span.SetAttributes(attribute.Bool("finrag.cache_hit", true))
		return outcome, nil
	}

	bundle, err := p.retrieve(ctx, question)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	answer, err := p.generate(ctx, bundle, question, history)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	outcome := &Outcome{Status: StatusAnswer, Answer: answer}
	p.attachChart(ctx, outcome)
	span.SetAttributes(
		attribute.String("finrag.status", string(outcome.Status)),
		attribute.Bool("finrag.no_evidence", bundle.IsNoEvidence()),
	)

	p.storeOutcome(ctx, key, outcome)
	return outcome, nil
}

// ChartImage runs the pipeline for a question expected to produce a chart
// and returns the PNG bytes. Designed render failures are returned as
// render package errors; callers distinguish them with errors.Is.
func (p *Pipeline) ChartImage(ctx context.Context, question string) ([]byte, error) {
	if question == "" {
		return nil, ErrEmptyQuestion
	}

	ctx, span := p.startSpan(ctx, "pipeline.chart_image")
	defer span.End()

	bundle, err := p.retrieve(ctx, question)
	if err != nil {
		return nil, err
	}
	answer, err := p.generate(ctx, bundle, question, nil)
	if err != nil {
		return nil, err
	}
	descriptor, err := p.extractor.Extract(ctx, answer)
	if err != nil {
		return nil, fmt.Errorf("chart extraction: %w", err)
	}
	return p.renderer.Render(descriptor)
}

func (p *Pipeline) retrieve(ctx context.Context, question string) (*graphrag.EvidenceBundle, error) {
	ctx, span := p.startSpan(ctx, "pipeline.retrieve")
	defer span.End()

	bundle, err := p.retriever.Retrieve(ctx, question)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("retrieve evidence: %w", err)
	}
	span.SetAttributes(
		attribute.Int("finrag.facts", len(bundle.Facts)),
		attribute.Int("finrag.chunks", len(bundle.Chunks)),
	)
	return bundle, nil
}

func (p *Pipeline) generate(ctx context.Context, bundle *graphrag.EvidenceBundle, question string, history []Turn) (string, error) {
	ctx, span := p.startSpan(ctx, "pipeline.generate")
	defer span.End()

	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	opts := []llm.CompletionOption{llm.WithTemperature(p.temperature)}
	if p.maxTokens > 0 {
		opts = append(opts, llm.WithMaxTokens(p.maxTokens))
	}
	req := llm.NewCompletionRequest(
		buildMessages(bundle.Context(), question, history, p.historyLimit),
		opts...,
	)

	resp, err := p.client.Complete(ctx, req)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return "", fmt.Errorf("generate answer: %w", err)
	}
	p.tracker.Add("answer_generation", resp.Usage)
	span.SetAttributes(attribute.Int("finrag.output_tokens", resp.Usage.OutputTokens))

	if !resp.HasContent() {
		return "", fmt.Errorf("generate answer: provider returned empty content")
	}
	return resp.Content, nil
}

// attachChart runs extraction and rendering over the generated answer,
// upgrading the outcome to StatusChart on success. Extraction failures and
// designed render failures degrade to the text answer; they never fail the
// request.
func (p *Pipeline) attachChart(ctx context.Context, outcome *Outcome) {
	ctx, span := p.startSpan(ctx, "pipeline.chart")
	defer span.End()

	descriptor, err := p.extractor.Extract(ctx, outcome.Answer)
	if err != nil {
		p.logger.Warn("chart extraction failed, answering text-only", "error", err)
		return
	}
	outcome.Chart = descriptor

	if !descriptor.CanGenerateChart {
		return
	}
	png, err := p.renderer.Render(descriptor)
	if err != nil {
		p.logger.Warn("chart render failed, answering text-only",
			"error", err, "chart_type", descriptor.ChartType.String())
		outcome.ChartError = err.Error()
		return
	}
	outcome.Status = StatusChart
	outcome.ChartPNG = png
	span.SetAttributes(attribute.String("finrag.chart_type", descriptor.ChartType.String()))
}

func (p *Pipeline) cachedOutcome(ctx context.Context, key string) *Outcome {
	value, found, err := p.answerCache.Get(ctx, key)
	if err != nil {
		p.logger.Warn("answer cache read failed", "error", err)
		return nil
	}
	if !found {
		return nil
	}
	var outcome Outcome
	if err := json.Unmarshal(value, &outcome); err != nil {
		p.logger.Warn("answer cache entry corrupt, ignoring", "error", err)
		return nil
	}
	return &outcome
}

func (p *Pipeline) storeOutcome(ctx context.Context, key string, outcome *Outcome) {
	value, err := json.Marshal(outcome)
	if err != nil {
		return
	}
	if err := p.answerCache.Set(ctx, key, value); err != nil {
		p.logger.Warn("answer cache write failed", "error", err)
	}
}

func (p *Pipeline) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return p.tracer.Start(ctx, name)
}
