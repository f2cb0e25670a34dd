package model

// DefaultTargetMarginPct is the minimum acceptable net margin applied when a
// caller does not set one explicitly.
const DefaultTargetMarginPct = 20.0

// ScenarioInputs are the per-run simulation controls.
//
// CustomPrice uses 0 as the "not set" sentinel: when > 0 it overrides the
// markup-derived price. A consequence is that a true zero proposed price
// cannot be requested through this path; that is a known limitation of the
// input shape, not something the engine silently fixes.
type ScenarioInputs struct {
	MarkupMultiplier   float64
	CustomPrice        float64
	Volume             int
	OpexSensitivityPct float64
	TargetMarginPct    float64
}

// TargetMargin returns the effective margin floor, defaulting to
// DefaultTargetMarginPct when the field is left at zero. Disabling the floor
// entirely is a policy concern (PricingPolicy.EnforceMarginFloor), not an
// input concern.
func (in ScenarioInputs) TargetMargin() float64 {
	if in.TargetMarginPct == 0 {
		return DefaultTargetMarginPct
	}
	return in.TargetMarginPct
}

func (in ScenarioInputs) Validate() error {
	if in.Volume < 1 {
		return &InvalidInputError{Field: "volume", Reason: "must be >= 1"}
	}
	if in.MarkupMultiplier <= 0 && in.CustomPrice <= 0 {
		return &InvalidInputError{Field: "markup_multiplier", Reason: "must be > 0 when no custom price is set"}
	}
	if in.CustomPrice < 0 {
		return &InvalidInputError{Field: "custom_price", Reason: "must be >= 0"}
	}
	if in.TargetMarginPct < 0 {
		return &InvalidInputError{Field: "target_margin_pct", Reason: "must be >= 0"}
	}
	if in.TargetMarginPct >= 100 {
		// A 100% floor would zero the margin-floor denominator; reject it
		// here instead of letting the division produce +Inf.
		return &InvalidInputError{
			Field:  "target_margin_pct",
			Reason: "must be < 100",
			Code:   ErrCodeDivisionByZero,
		}
	}
	return nil
}
