package engine

import "lab-pricing/internal/model"

// marginPct is defined as 0 when revenue is 0 so a zero-revenue scenario
// never yields NaN.
func marginPct(ebitda, revenue float64) float64 {
	if revenue == 0 {
		return 0
	}
	return ebitda / revenue * 100
}

// computeCurrent derives the baseline scenario on a per-unit basis
// (volume = 1 implicitly). Values are unrounded; normalization happens once
// at the end of a run.
func computeCurrent(econ model.TestEconomics) model.Scenario {
	revenue := econ.CurrentPrice
	cogs := econ.UnitCost
	gross := revenue - cogs
	opex := econ.OpexRate * revenue
	ebitda := gross - opex
	return model.Scenario{
		Revenue:     revenue,
		COGS:        cogs,
		GrossProfit: gross,
		Opex:        opex,
		EBITDA:      ebitda,
		MarginPct:   marginPct(ebitda, revenue),
	}
}

// computeProposed derives the volume-scaled proposed scenario at the given
// per-unit price. Baseline OPEX is anchored to the *current* price, not the
// proposed one; only the growth factor and sensitivity move it. Values are
// unrounded.
func computeProposed(price float64, econ model.TestEconomics, in model.ScenarioInputs, p model.PricingPolicy, gm growthModel) model.Scenario {
	v := float64(in.Volume)
	revenue := price * v
	cogs := econ.UnitCost * v
	gross := revenue - cogs

	baseOpex := econ.OpexRate * econ.CurrentPrice
	opex := baseOpex * gm.Factor(in.Volume) * sensitivityFactor(p, in.OpexSensitivityPct, in.Volume)

	ebitda := gross - opex
	return model.Scenario{
		Revenue:     revenue,
		COGS:        cogs,
		GrossProfit: gross,
		Opex:        opex,
		EBITDA:      ebitda,
		MarginPct:   marginPct(ebitda, revenue),
	}
}

// reprice recomputes the price-dependent figures of a proposed scenario
// after a margin-floor adjustment. OPEX is anchored to current price and
// volume, so it does not move.
func reprice(s model.Scenario, price float64, volume int) model.Scenario {
	s.Revenue = price * float64(volume)
	s.GrossProfit = s.Revenue - s.COGS
	s.EBITDA = s.GrossProfit - s.Opex
	s.MarginPct = marginPct(s.EBITDA, s.Revenue)
	return s
}

// normalize applies the rounding policy as the final step: currency figures
// round up to the policy increment, the margin to one decimal place.
// Rounding is never applied to intermediate arithmetic.
func normalize(s model.Scenario, increment int) model.Scenario {
	return model.Scenario{
		Revenue:     RoundUpTo(s.Revenue, increment),
		COGS:        RoundUpTo(s.COGS, increment),
		GrossProfit: RoundUpTo(s.GrossProfit, increment),
		Opex:        RoundUpTo(s.Opex, increment),
		EBITDA:      RoundUpTo(s.EBITDA, increment),
		MarginPct:   round1(s.MarginPct),
	}
}
