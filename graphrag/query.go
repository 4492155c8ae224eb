package graphrag

import (
	"fmt"
	"strings"
)

// Query represents a retrieval query with fluent builder pattern.
// It carries the natural language question along with filtering options
// applied by the evidence sources.
type Query struct {
	// Text is the natural language question that will be embedded
	Text string `json:"text"`

	// TopK is the number of unstructured results to return
	TopK int `json:"top_k"`

	// MinScore is the minimum similarity threshold for unstructured results
	MinScore float64 `json:"min_score"`

	// NodeLabels filters structured results by entity label
	NodeLabels []string `json:"node_labels,omitempty"`
}

// NewQuery creates a new Query with the given text and sensible defaults.
// Default values:
//   - TopK: 5
//   - MinScore: 0.0 (no threshold)
func NewQuery(text string) *Query {
	return &Query{
		Text: strings.TrimSpace(text),
		TopK: 5,
	}
}

// WithTopK sets the number of unstructured results to return.
// Returns the Query for method chaining.
func (q *Query) WithTopK(k int) *Query {
	q.TopK = k
	return q
}

// WithMinScore sets the minimum similarity threshold.
// Returns the Query for method chaining.
func (q *Query) WithMinScore(score float64) *Query {
	q.MinScore = score
	return q
}

// WithNodeLabels sets the entity labels to filter structured results by.
// Returns the Query for method chaining.
func (q *Query) WithNodeLabels(labels ...string) *Query {
	q.NodeLabels = labels
	return q
}

// Validate ensures the Query is properly configured.
// Returns an error wrapping ErrInvalidQuery if:
//   - Text is empty
//   - TopK is less than or equal to 0
//   - MinScore is not between 0.0 and 1.0
func (q *Query) Validate() error {
	if q.Text == "" {
		return fmt.Errorf("%w: text is empty", ErrInvalidQuery)
	}
	if q.TopK <= 0 {
		return fmt.Errorf("%w: TopK must be greater than 0, got %d", ErrInvalidQuery, q.TopK)
	}
	if q.MinScore < 0.0 || q.MinScore > 1.0 {
		return fmt.Errorf("%w: MinScore must be between 0.0 and 1.0, got %f", ErrInvalidQuery, q.MinScore)
	}
	return nil
}
