package pipeline

import (
	"github.com/finsight-ai/finrag/chartdata"
)

// Status tags which shape of result an Outcome carries.
type Status string

const (
	// StatusAnswer is a text-only result. It covers grounded answers,
	// the designed "no relevant information" response, and chart requests
	// the evidence could not satisfy.
	StatusAnswer Status = "answer"

	// StatusChart is a result with a rendered chart image alongside the
	// text answer.
	StatusChart Status = "chart"
)

// Outcome is the full pipeline result for one question.
//
// Missing data never produces an error Outcome: a question about data the
// corpus lacks yields StatusAnswer whose text explains what is not
// available. ChartError is set when chart extraction found data but
// rendering failed in a designed way; the text answer still stands.
type Outcome struct {
	// Status tags the result shape.
	Status Status `json:"status"`

	// Answer is the generated text answer. Always present.
	Answer string `json:"answer"`

	// Chart is the extracted chart descriptor, present whenever extraction
	// ran, including CanGenerateChart=false descriptors.
	Chart *chartdata.ChartData `json:"chart,omitempty"`

	// ChartPNG is the rendered image. Set only when Status is StatusChart.
	ChartPNG []byte `json:"chart_png,omitempty"`

	// ChartError explains a designed render failure (unavailable data,
	// unsupported type). Empty on success and on text-only questions.
	ChartError string `json:"chart_error,omitempty"`
}

// HasChart reports whether the outcome carries a rendered image.
func (o *Outcome) HasChart() bool {
	return o.Status == StatusChart && len(o.ChartPNG) > 0
}
