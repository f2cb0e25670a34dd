package engine

import (
	"fmt"
	"math"

	"lab-pricing/internal/model"
)

// growthModel scales baseline OPEX with projected volume.
type growthModel interface {
	Name() string
	// Factor returns the multiplier applied to the volume-1 baseline OPEX.
	Factor(volume int) float64
}

// logGrowth models economies of scale: OPEX grows concave-down in volume,
// factor = 1 + k*ln(1 + v/v0).
type logGrowth struct {
	k  float64
	v0 float64
}

func (g logGrowth) Name() string { return model.GrowthLog }

func (g logGrowth) Factor(volume int) float64 {
	return 1 + g.k*math.Log1p(float64(volume)/g.v0)
}

// linearGrowth scales OPEX proportionally: factor = 1 + k*v/v0.
type linearGrowth struct {
	k  float64
	v0 float64
}

func (g linearGrowth) Name() string { return model.GrowthLinear }

func (g linearGrowth) Factor(volume int) float64 {
	return 1 + g.k*float64(volume)/g.v0
}

// flatGrowth keeps OPEX at the volume-1 baseline.
type flatGrowth struct{}

func (flatGrowth) Name() string { return model.GrowthNone }

func (flatGrowth) Factor(volume int) float64 { return 1 }

func growthModelFor(p model.PricingPolicy) (growthModel, error) {
	switch p.OpexGrowthModel {
	case model.GrowthLog:
		return logGrowth{k: p.OpexGrowthRate, v0: p.OpexReferenceVolume}, nil
	case model.GrowthLinear:
		return linearGrowth{k: p.OpexGrowthRate, v0: p.OpexReferenceVolume}, nil
	case model.GrowthNone:
		return flatGrowth{}, nil
	default:
		return nil, fmt.Errorf("unsupported opex growth model: %q", p.OpexGrowthModel)
	}
}

// sensitivityFactor applies OpexSensitivityPct according to the policy mode.
func sensitivityFactor(p model.PricingPolicy, sensitivityPct float64, volume int) float64 {
	switch p.SensitivityMode {
	case model.SensitivityAboveBaseline:
		if float64(volume) <= p.OpexReferenceVolume {
			return 1
		}
	}
	return 1 + sensitivityPct/100
}
