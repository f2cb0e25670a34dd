package engine

import "lab-pricing/internal/model"

// buildComparison produces per-metric deltas (proposed minus current) from
// the two normalized scenarios. The margin delta is taken from the rounded
// margin percentages, not re-derived from rounded currency figures, so the
// rounding convention stays uniform.
func buildComparison(current, proposed model.Scenario) model.Scenario {
	return model.Scenario{
		Revenue:     proposed.Revenue - current.Revenue,
		COGS:        proposed.COGS - current.COGS,
		GrossProfit: proposed.GrossProfit - current.GrossProfit,
		Opex:        proposed.Opex - current.Opex,
		EBITDA:      proposed.EBITDA - current.EBITDA,
		MarginPct:   round1(proposed.MarginPct - current.MarginPct),
	}
}
