package analysis

import (
	"lab-pricing/internal/engine"
	"lab-pricing/internal/model"
)

// BreakEvenVolume finds the smallest volume at which the proposed scenario's
// total EBITDA turns non-negative, holding the per-unit price fixed. Returns
// 0 when no volume up to maxVolume breaks even.
//
// EBITDA is monotonic in volume whenever price exceeds unit cost (revenue
// and COGS scale linearly, OPEX sub-linearly), so the first non-negative
// point is the answer.
func BreakEvenVolume(price float64, econ model.TestEconomics, in model.ScenarioInputs, eng *engine.Engine, maxVolume int) (int, error) {
	series, err := eng.ProjectSeries(price, econ, in, maxVolume)
	if err != nil {
		return 0, err
	}
	for _, p := range series {
		if p.TotalEBITDA >= 0 {
			return p.Volume, nil
		}
	}
	return 0, nil
}
