package chartdata

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseChartType(t *testing.T) {
	tests := []struct {
		input   string
		want    ChartType
		wantErr bool
	}{
		{input: "bar", want: ChartTypeBar},
		{input: "line", want: ChartTypeLine},
		{input: "pie", want: ChartTypePie},
		{input: "scatter", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseChartType(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestChartType_IsValid(t *testing.T) {
	for _, ct := range AllChartTypes() {
		assert.True(t, ct.IsValid(), "expected %s to be valid", ct)
	}
	assert.False(t, ChartType("scatter").IsValid())
	assert.False(t, ChartType("").IsValid())
}

func TestChartData_Validate(t *testing.T) {
	tests := []struct {
		name    string
		data    *ChartData
		wantErr error
	}{
		{
			name: "valid bar descriptor",
			data: &ChartData{
				CanGenerateChart: true,
				ChartType:        ChartTypeBar,
				Labels:           []string{"2022", "2023", "2024"},
				Values:           []float64{100, 120, 150},
			},
		},
		{
			name: "unavailable descriptor has nothing to validate",
			data: Unavailable("Revenue data for 2030 is not available."),
		},
		{
			name: "length mismatch",
			data: &ChartData{
				CanGenerateChart: true,
				ChartType:        ChartTypeBar,
				Labels:           []string{"2022", "2023", "2024"},
				Values:           []float64{100, 120},
			},
			wantErr: ErrShapeMismatch,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.data.Validate()
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestChartData_Validate_EmptySeries(t *testing.T) {
	d := &ChartData{CanGenerateChart: true, ChartType: ChartTypeLine}
	assert.Error(t, d.Validate())
}

func TestChartData_SeriesLen(t *testing.T) {
	d := &ChartData{
		Labels: []string{"a", "b", "c"},
		Values: []float64{1, 2},
	}
	assert.Equal(t, 2, d.SeriesLen())
}
