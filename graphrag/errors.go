package graphrag

import "errors"

// Sentinel errors for retrieval operations.
// These errors can be used with errors.Is() for error checking.
var (
	// ErrEvidenceUnavailable indicates that an evidence source could not be
	// queried at all: the graph database is unreachable, authentication
	// failed, or the query itself errored. This is an infrastructure
	// failure and is fatal for the request. It must never be conflated
	// with "no data found", which is modeled as the sentinel bundle
	// returned by NewNoEvidenceBundle.
	//
	// Example:
	//	bundle, err := retriever.Retrieve(ctx, question)
	//	if errors.Is(err, graphrag.ErrEvidenceUnavailable) {
	//	    // surface as a server-side failure, not user-facing text
	//	}
	ErrEvidenceUnavailable = errors.New("evidence source unavailable")

	// ErrInvalidQuery indicates that query validation failed. This occurs
	// when the question text is empty, TopK is not positive, or MinScore
	// is outside [0.0, 1.0]. Always call query.Validate() before executing
	// to catch validation errors early.
	ErrInvalidQuery = errors.New("invalid query")

	// ErrEmbeddingFailed indicates that embedding generation for a query or
	// document failed: the embedding model is unavailable, the input is too
	// long, or the provider returned an error. The underlying error is
	// wrapped for context.
	ErrEmbeddingFailed = errors.New("embedding generation failed")
)
