package analysis

import (
	"sort"

	"lab-pricing/internal/catalog"
	"lab-pricing/internal/engine"
	"lab-pricing/internal/model"
)

// Uplift is one test's repricing opportunity at a given set of inputs.
type Uplift struct {
	Lab  string
	Test string

	CurrentMarginPct  float64
	ProposedMarginPct float64
	ProposedPrice     float64
	FloorApplied      bool

	// EBITDAUplift compares the proposed total EBITDA against the current
	// per-unit EBITDA scaled to the same volume.
	EBITDAUplift float64
}

// RankByUplift simulates every catalog test with the same inputs and sorts
// descending by EBITDA uplift. Tests whose economics fail validation are
// skipped; ranking a catalog should not die on one bad row.
func RankByUplift(tests []catalog.Test, in model.ScenarioInputs, eng *engine.Engine) []Uplift {
	out := make([]Uplift, 0, len(tests))
	for _, t := range tests {
		res, err := eng.Simulate(t.Economics, in)
		if err != nil {
			continue
		}
		out = append(out, Uplift{
			Lab:               t.Lab,
			Test:              t.Name,
			CurrentMarginPct:  res.CurrentPerUnit.MarginPct,
			ProposedMarginPct: res.ProposedTotal.MarginPct,
			ProposedPrice:     res.ProposedPrice,
			FloorApplied:      res.MarginFloorApplied,
			EBITDAUplift:      res.ProposedTotal.EBITDA - res.CurrentPerUnit.EBITDA*float64(in.Volume),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].EBITDAUplift > out[j].EBITDAUplift
	})
	return out
}
