package chartdata

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/finsight-ai/finrag/llm"
)

// ErrExtraction indicates that the extractor could not produce a descriptor
// from the answer text at all (model failure, unparseable output). This is
// distinct from a valid descriptor with CanGenerateChart=false, which is a
// normal outcome.
var ErrExtraction = errors.New("chart data extraction failed")

// Extractor produces a structured chart descriptor from a generated answer.
// The backing model is swappable; extraction must be idempotent at the
// shape level for a fixed answer text.
type Extractor interface {
	Extract(ctx context.Context, answerText string) (*ChartData, error)
}

const extractionPrompt = `You are a data extraction assistant. Extract numerical data suitable for creating a chart from the text below.

Respond with ONLY a JSON object, no prose, using exactly these fields:
{
  "can_generate_chart": bool,   // true only if the text contains a labeled numeric series
  "chart_type": "bar"|"line"|"pie",
  "title": "descriptive chart title",
  "y_axis_label": "unit label, may be empty for pie",
  "labels": ["label1", ...],    // categories, periods, regions or products, in text order
  "values": [123.4, ...],       // numbers parallel to labels, plain numbers without units
  "message": "only when can_generate_chart is false: why, derived from the text"
}

Rules:
- If the text explains that information is not available, set can_generate_chart to false and put the explanation in message. Do not invent data.
- labels and values must have the same length.
- Keep label order exactly as it appears in the text.

Text:
%s`

// LLMExtractor implements Extractor with a constrained JSON extraction call
// against a language model.
type LLMExtractor struct {
	client  llm.Client
	tracker *llm.UsageTracker
}

// NewLLMExtractor creates an extractor backed by the given model client.
// The tracker is optional; when set, extraction token usage is recorded
// under the "chart_extraction" stage.
func NewLLMExtractor(client llm.Client, tracker *llm.UsageTracker) *LLMExtractor {
	return &LLMExtractor{client: client, tracker: tracker}
}

// Extract parses the answer text for a labeled numeric series.
//
// A missing-data answer yields CanGenerateChart=false with a Message
// derived from the text, never a fabricated reason. When the model omits
// or mangles the chart type, the documented heuristic fills it in.
func (e *LLMExtractor) Extract(ctx context.Context, answerText string) (*ChartData, error) {
	if strings.TrimSpace(answerText) == "" {
		return nil, fmt.Errorf("%w: empty answer text", ErrExtraction)
	}

	req := llm.NewCompletionRequest([]llm.Message{
		{Role: llm.RoleUser, Content: fmt.Sprintf(extractionPrompt, answerText)},
	}, llm.WithTemperature(0.0))

	resp, err := e.client.Complete(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExtraction, err)
	}
	if e.tracker != nil {
		e.tracker.Add("chart_extraction", resp.Usage)
	}

	data, err := parseDescriptor(resp.Content)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExtraction, err)
	}

	finishDescriptor(data, answerText)
	return data, nil
}

// rawDescriptor mirrors the JSON shape the model is asked for, with the
// chart type kept as a plain string so unsupported proposals survive into
// the descriptor for the renderer to reject explicitly.
type rawDescriptor struct {
	CanGenerateChart bool      `json:"can_generate_chart"`
	ChartType        string    `json:"chart_type"`
	Title            string    `json:"title"`
	YAxisLabel       string    `json:"y_axis_label"`
	Labels           []string  `json:"labels"`
	Values           []float64 `json:"values"`
	Message          string    `json:"message"`
}

func parseDescriptor(content string) (*ChartData, error) {
	payload := extractJSON(content)
	if payload == "" {
		return nil, errors.New("no JSON object in model output")
	}

	var raw rawDescriptor
	if err := json.Unmarshal([]byte(payload), &raw); err != nil {
		return nil, fmt.Errorf("decode descriptor: %w", err)
	}

	return &ChartData{
		CanGenerateChart: raw.CanGenerateChart,
		ChartType:        ChartType(strings.ToLower(strings.TrimSpace(raw.ChartType))),
		Title:            raw.Title,
		YAxisLabel:       raw.YAxisLabel,
		Labels:           raw.Labels,
		Values:           raw.Values,
		Message:          raw.Message,
	}, nil
}

// extractJSON returns the outermost JSON object in the content, tolerating
// markdown code fences and surrounding prose.
func extractJSON(content string) string {
	start := strings.IndexByte(content, '{')
	end := strings.LastIndexByte(content, '}')
	if start < 0 || end <= start {
		return ""
	}
	return content[start : end+1]
}

// finishDescriptor applies the decision policy on top of the model output:
// empty series never render, missing-data answers carry a message derived
// from the text, and a missing chart type is filled by the heuristic.
func finishDescriptor(d *ChartData, answerText string) {
	if d.CanGenerateChart && d.SeriesLen() == 0 {
		d.CanGenerateChart = false
		d.Labels = nil
		d.Values = nil
	}

	if !d.CanGenerateChart {
		d.ChartType = ""
		if d.Message == "" {
			d.Message = deriveMessage(answerText)
		}
		return
	}

	if d.ChartType == "" {
		d.ChartType = ChooseChartType(answerText, d.Labels)
	}
}

// deriveMessage pulls the explanation out of the answer text itself: the
// first sentence carrying a missing-data marker, or a generic lead-in over
// the answer when no marker is present.
func deriveMessage(answerText string) string {
	for _, sentence := range strings.Split(answerText, ".") {
		if ContainsMissingDataMarker(sentence) {
			return strings.TrimSpace(sentence) + "."
		}
	}
	trimmed := strings.TrimSpace(answerText)
	const maxLen = 200
	if len(trimmed) > maxLen {
		trimmed = trimmed[:maxLen] + "..."
	}
	return "No chartable numeric series found in the answer: " + trimmed
}
