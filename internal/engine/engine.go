package engine

import (
	"fmt"

	"lab-pricing/internal/model"
)

// Engine is the pricing-scenario computation core. It is a pure function of
// its inputs: no I/O, no shared mutable state, safe to re-run on every input
// change.
type Engine struct {
	policy model.PricingPolicy
	growth growthModel
}

func New(policy model.PricingPolicy) (*Engine, error) {
	if err := policy.Validate(); err != nil {
		return nil, fmt.Errorf("pricing policy invalid: %w", err)
	}
	gm, err := growthModelFor(policy)
	if err != nil {
		return nil, err
	}
	return &Engine{policy: policy, growth: gm}, nil
}

// Default returns an engine with the default policy.
func Default() *Engine {
	e, err := New(model.DefaultPolicy())
	if err != nil {
		panic(err) // default policy always validates
	}
	return e
}

func (e *Engine) Policy() model.PricingPolicy { return e.policy }

// Simulate derives both scenarios and their comparison from one set of test
// economics and simulation inputs.
func (e *Engine) Simulate(econ model.TestEconomics, in model.ScenarioInputs) (*model.ScenarioResult, error) {
	if err := econ.Validate(); err != nil {
		return nil, err
	}
	if err := in.Validate(); err != nil {
		return nil, err
	}

	raw := DerivePrice(econ.UnitCost, in.MarkupMultiplier, in.CustomPrice)
	price := RoundUpTo(raw, e.policy.RoundingIncrement)

	current := computeCurrent(econ)
	proposed := computeProposed(price, econ, in, e.policy, e.growth)

	adjusted := false
	adjustedPrice := 0.0
	if e.policy.EnforceMarginFloor {
		floorPrice, adj, err := enforceMarginFloor(
			price, proposed.COGS, proposed.Opex, in.Volume, in.TargetMargin(), e.policy.RoundingIncrement)
		if err != nil {
			return nil, err
		}
		if adj {
			price = floorPrice
			adjusted = true
			adjustedPrice = floorPrice
			proposed = reprice(proposed, price, in.Volume)
		}
	}

	curNorm := normalize(current, e.policy.RoundingIncrement)
	propNorm := normalize(proposed, e.policy.RoundingIncrement)

	return &model.ScenarioResult{
		CurrentPerUnit:     curNorm,
		ProposedTotal:      propNorm,
		Deltas:             buildComparison(curNorm, propNorm),
		ProposedPrice:      price,
		MarginFloorApplied: adjusted,
		AdjustedPrice:      adjustedPrice,
		Status:             model.MarginStatusFromAdjusted(adjusted),
	}, nil
}

// ComputeCurrent exposes the baseline per-unit scenario on its own,
// normalized per the policy.
func (e *Engine) ComputeCurrent(econ model.TestEconomics) (model.Scenario, error) {
	if err := econ.Validate(); err != nil {
		return model.Scenario{}, err
	}
	return normalize(computeCurrent(econ), e.policy.RoundingIncrement), nil
}
