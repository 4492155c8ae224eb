package chartdata

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContainsMissingDataMarker(t *testing.T) {
	tests := []struct {
		name string
		text string
		want bool
	}{
		{
			name: "not available",
			text: "Revenue figures for 2030 are not available in the provided data.",
			want: true,
		},
		{
			name: "does not contain",
			text: "The dataset does not contain information about Microsoft.",
			want: true,
		},
		{
			name: "case insensitive",
			text: "NO INFORMATION about capital expenditure was found.",
			want: true,
		},
		{
			name: "regular answer",
			text: "Revenue was $391.0 billion in 2024, up from $383.3 billion.",
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ContainsMissingDataMarker(tt.text))
		})
	}
}

func TestChooseChartType(t *testing.T) {
	tests := []struct {
		name   string
		answer string
		labels []string
		want   ChartType
	}{
		{
			name:   "years in order give line",
			answer: "Revenue grew from 2022 to 2024.",
			labels: []string{"2022", "2023", "2024"},
			want:   ChartTypeLine,
		},
		{
			name:   "fiscal year labels give line",
			answer: "Revenue trends across fiscal years.",
			labels: []string{"FY2022", "FY2023", "FY2024"},
			want:   ChartTypeLine,
		},
		{
			name:   "quarters give line",
			answer: "Quarterly results.",
			labels: []string{"Q1", "Q2", "Q3", "Q4"},
			want:   ChartTypeLine,
		},
		{
			name:   "proportion phrasing gives pie",
			answer: "The revenue distribution by region shows Americas at 42%.",
			labels: []string{"Americas", "Europe", "Greater China"},
			want:   ChartTypePie,
		},
		{
			name:   "share phrasing gives pie",
			answer: "Each product's share of total revenue.",
			labels: []string{"iPhone", "Mac", "iPad", "Services"},
			want:   ChartTypePie,
		},
		{
			name:   "plain categories give bar",
			answer: "Revenue by product category in billions.",
			labels: []string{"iPhone", "Mac", "iPad"},
			want:   ChartTypeBar,
		},
		{
			name:   "years out of order give bar",
			answer: "Revenue by year.",
			labels: []string{"2024", "2022", "2023"},
			want:   ChartTypeBar,
		},
		{
			name:   "single label is not a trend",
			answer: "Revenue in 2024.",
			labels: []string{"2024"},
			want:   ChartTypeBar,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ChooseChartType(tt.answer, tt.labels))
		})
	}
}
