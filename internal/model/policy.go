package model

import "fmt"

// OPEX growth laws recognized by the engine.
const (
	GrowthLog    = "log"
	GrowthLinear = "linear"
	GrowthNone   = "none"
)

// How OpexSensitivityPct is applied.
const (
	// SensitivityAlways multiplies OPEX by (1 + pct/100) at any volume.
	SensitivityAlways = "always"
	// SensitivityAboveBaseline applies the factor only once the projected
	// volume exceeds the OPEX reference volume.
	SensitivityAboveBaseline = "above_baseline"
)

// PricingPolicy enumerates the recognized computation variants so a single
// engine covers them all.
type PricingPolicy struct {
	// OpexGrowthModel selects how OPEX scales with volume: log, linear, none.
	OpexGrowthModel string
	// OpexGrowthRate is the growth coefficient k in the scaling law.
	OpexGrowthRate float64
	// OpexReferenceVolume is the volume scale v0 in the scaling law.
	OpexReferenceVolume float64
	// SensitivityMode selects how OpexSensitivityPct applies: always,
	// above_baseline.
	SensitivityMode string
	// RoundingIncrement is the currency rounding granularity (50 or 100).
	RoundingIncrement int
	// EnforceMarginFloor enables the minimum-margin price override.
	EnforceMarginFloor bool
}

// DefaultPolicy matches the source material: logarithmic OPEX growth with
// k=0.1 and v0=50, multiplicative sensitivity, round-up-to-100, floor on.
func DefaultPolicy() PricingPolicy {
	return PricingPolicy{
		OpexGrowthModel:     GrowthLog,
		OpexGrowthRate:      0.1,
		OpexReferenceVolume: 50,
		SensitivityMode:     SensitivityAlways,
		RoundingIncrement:   100,
		EnforceMarginFloor:  true,
	}
}

func (p PricingPolicy) Validate() error {
	switch p.OpexGrowthModel {
	case GrowthLog, GrowthLinear, GrowthNone:
	default:
		return fmt.Errorf("unknown opex growth model %q", p.OpexGrowthModel)
	}
	switch p.SensitivityMode {
	case SensitivityAlways, SensitivityAboveBaseline:
	default:
		return fmt.Errorf("unknown sensitivity mode %q", p.SensitivityMode)
	}
	if p.OpexGrowthRate < 0 {
		return fmt.Errorf("opex growth rate must be >= 0")
	}
	if p.OpexReferenceVolume <= 0 {
		return fmt.Errorf("opex reference volume must be > 0")
	}
	if p.RoundingIncrement != 50 && p.RoundingIncrement != 100 {
		return fmt.Errorf("rounding increment must be 50 or 100, got %d", p.RoundingIncrement)
	}
	return nil
}
