// Package pipeline orchestrates the question-answering flow: hybrid
// evidence retrieval, grounded answer generation, chart data extraction,
// and PNG rendering. Missing data is a designed, successful outcome at
// every stage; only infrastructure failures surface as errors.
package pipeline
