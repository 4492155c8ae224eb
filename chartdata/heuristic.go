package chartdata

import (
	"regexp"
	"strconv"
	"strings"
)

// missingDataMarkers is the recognized missing-data vocabulary. An answer
// containing one of these phrases is explaining an absence, not reporting a
// series.
var missingDataMarkers = []string{
	"not available",
	"not found",
	"no information",
	"cannot find",
	"unable to",
	"does not contain",
	"no data",
	"not provided",
	"not present",
}

// ContainsMissingDataMarker reports whether the text contains a phrase from
// the recognized missing-data vocabulary.
func ContainsMissingDataMarker(text string) bool {
	lower := strings.ToLower(text)
	for _, m := range missingDataMarkers {
		if strings.Contains(lower, m) {
			return true
		}
	}
	return false
}

var (
	yearRe    = regexp.MustCompile(`(19|20)\d{2}`)
	quarterRe = regexp.MustCompile(`^Q[1-4]\b`)
)

// proportionMarkers suggest a proportion-of-whole phrasing.
var proportionMarkers = []string{
	"share",
	"percentage",
	"percent",
	"proportion",
	"distribution",
	"breakdown",
	"composition",
	"%",
}

// ChooseChartType picks a chart type from the answer phrasing and the
// extracted series. The heuristic, in order:
//
//  1. Every label carries a period (a year or a quarter) and the years are
//     non-decreasing in label order -> line (time-ordered series).
//  2. The answer uses proportion-of-whole phrasing (share, percentage,
//     distribution, breakdown, ...) -> pie.
//  3. Otherwise -> bar.
func ChooseChartType(answerText string, labels []string) ChartType {
	if len(labels) >= 2 && timeOrdered(labels) {
		return ChartTypeLine
	}

	lower := strings.ToLower(answerText)
	for _, m := range proportionMarkers {
		if strings.Contains(lower, m) {
			return ChartTypePie
		}
	}
	return ChartTypeBar
}

// timeOrdered reports whether every label names a period and the extracted
// years never decrease.
func timeOrdered(labels []string) bool {
	prev := 0
	for _, l := range labels {
		l = strings.TrimSpace(l)
		y := yearRe.FindString(l)
		if y == "" {
			if !quarterRe.MatchString(strings.ToUpper(l)) {
				return false
			}
			continue
		}
		year, err := strconv.Atoi(y)
		if err != nil {
			return false
		}
		if year < prev {
			return false
		}
		prev = year
	}
	return true
}
