package graphrag

import (
	"context"
	"fmt"
	"log/slog"
)

// StructuredSource queries the knowledge graph for facts relevant to a
// question. Implementations must be safe for concurrent use.
type StructuredSource interface {
	StructuredSearch(ctx context.Context, query *Query) ([]Fact, error)
}

// UnstructuredSource queries the vector index for document chunks relevant
// to a question. Implementations must be safe for concurrent use.
type UnstructuredSource interface {
	SimilaritySearch(ctx context.Context, query *Query) ([]Chunk, error)
}

// Retriever gathers evidence for a question from a structured and an
// unstructured source. The two sources are queried concurrently and merged
// after both complete; there is no ordering dependency between them.
type Retriever struct {
	structured   StructuredSource
	unstructured UnstructuredSource
	topK         int
	minScore     float64
	logger       *slog.Logger
}

// RetrieverOption configures a Retriever.
type RetrieverOption func(*Retriever)

// WithTopK sets the number of unstructured results requested per question.
func WithTopK(k int) RetrieverOption {
	return func(r *Retriever) { r.topK = k }
}

// WithMinScore sets the minimum similarity threshold for unstructured results.
func WithMinScore(score float64) RetrieverOption {
	return func(r *Retriever) { r.minScore = score }
}

// WithLogger sets a custom logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) RetrieverOption {
	return func(r *Retriever) { r.logger = logger }
}

// NewRetriever creates a Retriever over the given sources.
func NewRetriever(structured StructuredSource, unstructured UnstructuredSource, opts ...RetrieverOption) *Retriever {
	r := &Retriever{
		structured:   structured,
		unstructured: unstructured,
		topK:         5,
		logger:       slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

type structuredResult struct {
	facts []Fact
	err   error
}

type unstructuredResult struct {
	chunks []Chunk
	err    error
}

// Retrieve gathers evidence for the question from both sources.
//
// Returns the sentinel no-evidence bundle when both sources come back empty.
// Returns an error wrapping ErrEvidenceUnavailable when either source fails;
// source failure is never folded into "no data found".
func (r *Retriever) Retrieve(ctx context.Context, question string) (*EvidenceBundle, error) {
	query := NewQuery(question).WithTopK(r.topK).WithMinScore(r.minScore)
	if err := query.Validate(); err != nil {
		return nil, err
	}

	sCh := make(chan structuredResult, 1)
	uCh := make(chan unstructuredResult, 1)

	go func() {
		facts, err := r.structured.StructuredSearch(ctx, query)
		sCh <- structuredResult{facts: facts, err: err}
	}()
	go func() {
		chunks, err := r.unstructured.SimilaritySearch(ctx, query)
		uCh <- unstructuredResult{chunks: chunks, err: err}
	}()

	s := <-sCh
	u := <-uCh

	if s.err != nil {
		return nil, fmt.Errorf("%w: structured search: %v", ErrEvidenceUnavailable, s.err)
	}
	if u.err != nil {
		return nil, fmt.Errorf("%w: similarity search: %v", ErrEvidenceUnavailable, u.err)
	}

	if len(s.facts) == 0 && len(u.chunks) == 0 {
		r.logger.Info("no relevant evidence found", "question", question)
		return NewNoEvidenceBundle(query.Text), nil
	}

	r.logger.Debug("evidence retrieved",
		"question", question,
		"facts", len(s.facts),
		"chunks", len(u.chunks))

	return &EvidenceBundle{
		Question: query.Text,
		Facts:    s.facts,
		Chunks:   u.chunks,
	}, nil
}
