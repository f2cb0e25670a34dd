package model

// Scenario is one fully-derived financial picture. Currency figures are
// rounded up to the policy's increment; MarginPct is rounded to one decimal
// place and is defined as 0 when revenue is 0.
type Scenario struct {
	Revenue     float64
	COGS        float64
	GrossProfit float64
	Opex        float64
	EBITDA      float64
	MarginPct   float64
}

// MarginStatus is a human-friendly margin-floor outcome for display.
// Keep these values stable; they are intended for API and CSV output.
type MarginStatus string

const (
	StatusAdjusted    MarginStatus = "ADJUSTED"
	StatusWithinRange MarginStatus = "WITHIN_RANGE"
)

func MarginStatusFromAdjusted(adjusted bool) MarginStatus {
	if adjusted {
		return StatusAdjusted
	}
	return StatusWithinRange
}

// ScenarioResult is the output of one simulation run.
//
// CurrentPerUnit is deliberately a per-unit (volume = 1) picture while
// ProposedTotal is scaled by the projected volume: the comparison shows
// "per-test baseline economics" against "total proposed economics". The
// asymmetry comes straight from the source material and is preserved in the
// naming rather than silently unified.
type ScenarioResult struct {
	CurrentPerUnit Scenario
	ProposedTotal  Scenario

	// Deltas holds ProposedTotal minus CurrentPerUnit per metric. The margin
	// delta is computed from the two rounded margin percentages.
	Deltas Scenario

	// ProposedPrice is the final per-unit price, after rounding and any
	// margin-floor adjustment.
	ProposedPrice float64

	MarginFloorApplied bool
	// AdjustedPrice is set to the floor-enforced price when the floor fired.
	AdjustedPrice float64

	Status MarginStatus
}
