// Package chartdata defines the structured chart descriptor and the
// extractor that produces one from a generated answer.
//
// The descriptor is created fresh per question, never mutated after
// creation, and consumed once by the renderer. A descriptor with
// CanGenerateChart=false is a normal outcome carrying an explanation, not
// an error.
package chartdata

import (
	"errors"
	"fmt"
)

// ChartType selects the rendering strategy. The set is closed: the renderer
// rejects anything else.
type ChartType string

const (
	// ChartTypeBar renders categorical bars.
	ChartTypeBar ChartType = "bar"

	// ChartTypeLine renders a single ordered series, typically chronological.
	ChartTypeLine ChartType = "line"

	// ChartTypePie renders proportional wedges.
	ChartTypePie ChartType = "pie"
)

// String returns the string representation of the chart type.
func (t ChartType) String() string {
	return string(t)
}

// IsValid returns true if the chart type is renderer-supported.
func (t ChartType) IsValid() bool {
	switch t {
	case ChartTypeBar, ChartTypeLine, ChartTypePie:
		return true
	default:
		return false
	}
}

// ParseChartType parses a string into a ChartType value.
func ParseChartType(s string) (ChartType, error) {
	switch s {
	case "bar":
		return ChartTypeBar, nil
	case "line":
		return ChartTypeLine, nil
	case "pie":
		return ChartTypePie, nil
	default:
		return "", fmt.Errorf("invalid chart type: %s", s)
	}
}

// AllChartTypes returns all renderer-supported chart types.
func AllChartTypes() []ChartType {
	return []ChartType{ChartTypeBar, ChartTypeLine, ChartTypePie}
}

// ChartData is the structured chart descriptor extracted from an answer.
// When CanGenerateChart is true, Labels and Values are parallel sequences
// (order-significant: x-axis or wedge order). When false, Message explains
// why no chart can be produced.
type ChartData struct {
	// CanGenerateChart is true iff extraction found sufficient numeric
	// series data.
	CanGenerateChart bool `json:"can_generate_chart"`

	// ChartType selects the rendering strategy (bar, line, pie).
	ChartType ChartType `json:"chart_type,omitempty"`

	// Title is the human-readable chart title.
	Title string `json:"title,omitempty"`

	// YAxisLabel is optional; empty is permitted for pie charts.
	YAxisLabel string `json:"y_axis_label,omitempty"`

	// Labels are the category/tick labels, order-significant.
	Labels []string `json:"labels,omitempty"`

	// Values are parallel to Labels.
	Values []float64 `json:"values,omitempty"`

	// Message is present when CanGenerateChart is false and explains why.
	Message string `json:"message,omitempty"`
}

// ErrShapeMismatch reports a label/value length mismatch on a descriptor
// that claims to be renderable. It is a data-quality defect surfaced as a
// warning, not a hard failure.
var ErrShapeMismatch = errors.New("labels and values have different lengths")

// Unavailable creates a descriptor for the "no chart possible" outcome.
func Unavailable(message string) *ChartData {
	return &ChartData{Message: message}
}

// Validate checks internal consistency. A renderable descriptor with a
// label/value length mismatch returns ErrShapeMismatch; callers log it and
// proceed on the truncated common prefix rather than failing hard.
func (d *ChartData) Validate() error {
	if !d.CanGenerateChart {
		return nil
	}
	if !d.ChartType.IsValid() {
		return fmt.Errorf("invalid chart type: %s", d.ChartType)
	}
	if len(d.Labels) == 0 || len(d.Values) == 0 {
		return errors.New("renderable descriptor has an empty series")
	}
	if len(d.Labels) != len(d.Values) {
		return fmt.Errorf("%w: %d labels, %d values", ErrShapeMismatch, len(d.Labels), len(d.Values))
	}
	return nil
}

// SeriesLen returns the usable series length: the common prefix of Labels
// and Values.
func (d *ChartData) SeriesLen() int {
	n := len(d.Labels)
	if len(d.Values) < n {
		n = len(d.Values)
	}
	return n
}
