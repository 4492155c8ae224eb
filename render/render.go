// Package render turns a validated chart descriptor into an encoded PNG
// image. Rendering is pure: bytes out, no files written; callers decide
// persistence.
package render

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"

	chart "github.com/wcharczuk/go-chart/v2"

	"github.com/finsight-ai/finrag/chartdata"
)

// Designed render failures. ErrChartUnavailable is the single expected
// failure path: the descriptor itself says no chart can be produced, and
// the wrapped error text carries the descriptor's explanation.
var (
	// ErrChartUnavailable indicates the descriptor has no renderable data.
	// This is the designed "missing data" outcome, not a defect.
	ErrChartUnavailable = errors.New("chart not available")

	// ErrUnsupportedChartType indicates the extractor proposed a chart type
	// the renderer does not implement. Fatal for the render step only;
	// callers fall back to the text-only answer.
	ErrUnsupportedChartType = errors.New("unsupported chart type")

	// ErrMalformedDescriptor indicates the descriptor claimed to be
	// renderable but its series is unusable even after truncating to the
	// common-length prefix.
	ErrMalformedDescriptor = errors.New("malformed chart descriptor")
)

const (
	defaultWidth  = 900
	defaultHeight = 500
)

// Renderer renders chart descriptors to PNG bytes. The zero value is not
// usable; create one with NewRenderer.
type Renderer struct {
	width  int
	height int
	logger *slog.Logger
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithSize sets the output image dimensions in pixels.
func WithSize(width, height int) Option {
	return func(r *Renderer) {
		r.width = width
		r.height = height
	}
}

// WithLogger sets a custom logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(r *Renderer) { r.logger = logger }
}

// NewRenderer creates a Renderer with the given options.
func NewRenderer(opts ...Option) *Renderer {
	r := &Renderer{
		width:  defaultWidth,
		height: defaultHeight,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Render produces PNG bytes for the descriptor.
//
// A descriptor with CanGenerateChart=false fails with ErrChartUnavailable
// carrying the descriptor's message. A label/value length mismatch is a
// data-quality warning: rendering proceeds on the truncated common-length
// prefix when one exists, and degrades to ErrMalformedDescriptor when it
// does not.
func (r *Renderer) Render(d *chartdata.ChartData) ([]byte, error) {
	if d == nil {
		return nil, fmt.Errorf("%w: nil descriptor", ErrMalformedDescriptor)
	}
	if !d.CanGenerateChart {
		msg := d.Message
		if msg == "" {
			msg = "no chartable data in the answer"
		}
		return nil, fmt.Errorf("%w: %s", ErrChartUnavailable, msg)
	}

	labels, values := d.Labels, d.Values
	if len(labels) != len(values) {
		n := d.SeriesLen()
		r.logger.Warn("descriptor label/value length mismatch, truncating",
			"labels", len(labels),
			"values", len(values),
			"rendered", n)
		labels, values = labels[:n], values[:n]
	}
	if len(labels) == 0 {
		return nil, fmt.Errorf("%w: empty series", ErrChartUnavailable)
	}

	switch d.ChartType {
	case chartdata.ChartTypeBar:
		return r.renderBar(d, labels, values)
	case chartdata.ChartTypeLine:
		return r.renderLine(d, labels, values)
	case chartdata.ChartTypePie:
		return r.renderPie(d, labels, values)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedChartType, d.ChartType)
	}
}

func (r *Renderer) renderBar(d *chartdata.ChartData, labels []string, values []float64) ([]byte, error) {
	bars := make([]chart.Value, len(labels))
	for i := range labels {
		bars[i] = chart.Value{Label: labels[i], Value: values[i]}
	}

	graph := chart.BarChart{
		Title:  d.Title,
		Width:  r.width,
		Height: r.height,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 20, Right: 20, Bottom: 20},
		},
		BarWidth: barWidth(r.width, len(bars)),
		YAxis: chart.YAxis{
			Name: d.YAxisLabel,
		},
		Bars: bars,
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("render bar chart: %w", err)
	}
	return buf.Bytes(), nil
}

func (r *Renderer) renderLine(d *chartdata.ChartData, labels []string, values []float64) ([]byte, error) {
	xs := make([]float64, len(values))
	ticks := make([]chart.Tick, len(labels))
	for i := range labels {
		xs[i] = float64(i)
		ticks[i] = chart.Tick{Value: float64(i), Label: labels[i]}
	}

	graph := chart.Chart{
		Title:  d.Title,
		Width:  r.width,
		Height: r.height,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 20, Right: 20, Bottom: 20},
		},
		XAxis: chart.XAxis{
			Ticks: ticks,
		},
		YAxis: chart.YAxis{
			Name: d.YAxisLabel,
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				XValues: xs,
				YValues: values,
			},
		},
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("render line chart: %w", err)
	}
	return buf.Bytes(), nil
}

func (r *Renderer) renderPie(d *chartdata.ChartData, labels []string, values []float64) ([]byte, error) {
	wedges := make([]chart.Value, len(labels))
	for i := range labels {
		wedges[i] = chart.Value{Label: labels[i], Value: values[i]}
	}

	// YAxisLabel is ignored for pie charts.
	graph := chart.PieChart{
		Title:  d.Title,
		Width:  r.width,
		Height: r.height,
		Values: wedges,
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("render pie chart: %w", err)
	}
	return buf.Bytes(), nil
}

// barWidth spreads the bars across roughly two thirds of the drawable
// width so small series do not render as slivers.
func barWidth(total, bars int) int {
	if bars == 0 {
		return 0
	}
	w := (total * 2) / (3 * bars)
	if w < 20 {
		w = 20
	}
	if w > 120 {
		w = 120
	}
	return w
}
