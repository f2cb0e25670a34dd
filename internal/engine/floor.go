package engine

import "lab-pricing/internal/model"

// enforceMarginFloor checks the proposed per-unit price against the minimum
// price that sustains targetMarginPct given the scenario's total COGS and
// OPEX. When the price falls short, the floor price (rounded up to the
// policy increment) is returned with adjusted=true.
//
// targetMarginPct >= 100 is rejected at input validation; the denominator
// guard here is the engine-level backstop so the division can never produce
// +Inf.
func enforceMarginFloor(price, cogsTotal, opexTotal float64, volume int, targetMarginPct float64, increment int) (float64, bool, error) {
	denom := 1 - targetMarginPct/100
	if denom <= 0 {
		return 0, false, &model.InvalidInputError{
			Field:  "target_margin_pct",
			Reason: "makes the margin-floor denominator zero",
			Code:   model.ErrCodeDivisionByZero,
		}
	}
	minRequired := (cogsTotal + opexTotal) / denom / float64(volume)
	if price < minRequired {
		return RoundUpTo(minRequired, increment), true, nil
	}
	return price, false, nil
}
