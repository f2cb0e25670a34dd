package analysis

import (
	"math"
	"sort"

	"lab-pricing/internal/catalog"
)

// MarginStats is a lab-level summary of current-pricing health you can use
// for ranking and reporting. Margins are unrounded percentages.
type MarginStats struct {
	Lab   string
	Count int

	MinMargin  float64
	MaxMargin  float64
	MeanMargin float64
	P05Margin  float64
	P95Margin  float64

	SpreadP95P05 float64

	// BelowWaterCount is the number of tests whose current EBITDA is
	// negative at their stored OPEX rate.
	BelowWaterCount int
}

// ComputeMarginStats summarizes the current margins of a lab's catalog.
func ComputeMarginStats(tests []catalog.Test) MarginStats {
	s := MarginStats{}
	if len(tests) == 0 {
		return s
	}
	s.Lab = tests[0].Lab
	s.Count = len(tests)

	sum := 0.0
	minv := math.Inf(1)
	maxv := math.Inf(-1)
	vals := make([]float64, 0, len(tests))
	for _, t := range tests {
		m := currentMargin(t)
		vals = append(vals, m)
		sum += m
		if m < minv {
			minv = m
		}
		if m > maxv {
			maxv = m
		}
		if m < 0 {
			s.BelowWaterCount++
		}
	}
	sort.Float64s(vals)
	s.MinMargin = minv
	s.MaxMargin = maxv
	s.MeanMargin = sum / float64(len(vals))
	s.P05Margin = percentileSorted(vals, 0.05)
	s.P95Margin = percentileSorted(vals, 0.95)
	s.SpreadP95P05 = s.P95Margin - s.P05Margin
	return s
}

// currentMargin is the unrounded per-unit EBITDA margin at current pricing;
// 0 when the test has no revenue.
func currentMargin(t catalog.Test) float64 {
	e := t.Economics
	if e.CurrentPrice == 0 {
		return 0
	}
	ebitda := e.CurrentPrice - e.UnitCost - e.OpexRate*e.CurrentPrice
	return ebitda / e.CurrentPrice * 100
}

func percentileSorted(sorted []float64, q float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	if q <= 0 {
		return sorted[0]
	}
	if q >= 1 {
		return sorted[len(sorted)-1]
	}
	// Linear interpolation between order stats.
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	frac := pos - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}
