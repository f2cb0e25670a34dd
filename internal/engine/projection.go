package engine

import "lab-pricing/internal/model"

// SeriesPoint is one row of the volume projection.
// This is the primary artifact for "how does EBITDA move with volume".
type SeriesPoint struct {
	Volume       int
	TotalRevenue float64
	TotalEBITDA  float64
}

// ProjectSeries evaluates the proposed-scenario formulas at each volume from
// 1 to maxVolume inclusive, holding the per-unit price fixed. Points are
// unrounded: the series feeds a chart, and the rounding policy is a table
// normalization, not a data transform.
func (e *Engine) ProjectSeries(price float64, econ model.TestEconomics, in model.ScenarioInputs, maxVolume int) ([]SeriesPoint, error) {
	if err := econ.Validate(); err != nil {
		return nil, err
	}
	if maxVolume < 1 {
		return nil, &model.InvalidInputError{Field: "max_volume", Reason: "must be >= 1"}
	}

	points := make([]SeriesPoint, 0, maxVolume)
	for v := 1; v <= maxVolume; v++ {
		at := in
		at.Volume = v
		s := computeProposed(price, econ, at, e.policy, e.growth)
		points = append(points, SeriesPoint{
			Volume:       v,
			TotalRevenue: s.Revenue,
			TotalEBITDA:  s.EBITDA,
		})
	}
	return points, nil
}
