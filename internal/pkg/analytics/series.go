package analytics

import (
	"github.com/tegorov/flipt/internal/pkg/logger"
)

// EvaluationSeries is the index-aligned result of an evaluation-count query:
// Timestamps[i] is the bucket Values[i] was counted in.
type EvaluationSeries struct {
	Timestamps []string  `json:"timestamps"`
	Values     []float64 `json:"values"`
}

// EmptySeries returns a series with non-nil, zero-length slices.
func EmptySeries() EvaluationSeries {
	return EvaluationSeries{
		Timestamps: []string{},
		Values:     []float64{},
	}
}

// SeriesOrEmpty returns s with nil slices replaced by empty ones. A series
// whose slices differ in length is truncated to the shorter one.
func SeriesOrEmpty(s *EvaluationSeries) EvaluationSeries {
	if s == nil {
		return EmptySeries()
	}

	out := EvaluationSeries{Timestamps: s.Timestamps, Values: s.Values}
	if out.Timestamps == nil {
		out.Timestamps = []string{}
	}
	if out.Values == nil {
		out.Values = []float64{}
	}

	if len(out.Timestamps) != len(out.Values) {
		n := min(len(out.Timestamps), len(out.Values))
		logger.Warn("evaluation series is not index-aligned, truncating",
			"timestamps", len(out.Timestamps),
			"values", len(out.Values),
			"kept", n)
		out.Timestamps = out.Timestamps[:n]
		out.Values = out.Values[:n]
	}
	return out
}

// Len returns the number of samples.
func (s EvaluationSeries) Len() int {
	return len(s.Values)
}

// Total returns the sum of all values.
func (s EvaluationSeries) Total() float64 {
	var total float64
	for _, v := range s.Values {
		total += v
	}
	return total
}

// Peak returns the largest value, or 0 for an empty series.
func (s EvaluationSeries) Peak() float64 {
	var peak float64
	for _, v := range s.Values {
		if v > peak {
			peak = v
		}
	}
	return peak
}
