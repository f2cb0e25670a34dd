package model

import (
	"errors"
	"testing"
)

func TestScenarioInputs_TargetMargin(t *testing.T) {
	if got := (ScenarioInputs{}).TargetMargin(); got != DefaultTargetMarginPct {
		t.Fatalf("default target margin = %v, want %v", got, DefaultTargetMarginPct)
	}
	if got := (ScenarioInputs{TargetMarginPct: 35}).TargetMargin(); got != 35 {
		t.Fatalf("explicit target margin = %v, want 35", got)
	}
}

func TestScenarioInputs_Validate(t *testing.T) {
	valid := ScenarioInputs{MarkupMultiplier: 1.5, Volume: 100}
	if err := valid.Validate(); err != nil {
		t.Fatalf("valid inputs rejected: %v", err)
	}

	cases := []struct {
		name     string
		in       ScenarioInputs
		wantCode string
	}{
		{"zero volume", ScenarioInputs{MarkupMultiplier: 1.5}, ErrCodeInvalidInput},
		{"negative volume", ScenarioInputs{MarkupMultiplier: 1.5, Volume: -3}, ErrCodeInvalidInput},
		{"no price source", ScenarioInputs{Volume: 10}, ErrCodeInvalidInput},
		{"negative custom price", ScenarioInputs{MarkupMultiplier: 1.5, Volume: 10, CustomPrice: -5}, ErrCodeInvalidInput},
		{"negative target", ScenarioInputs{MarkupMultiplier: 1.5, Volume: 10, TargetMarginPct: -1}, ErrCodeInvalidInput},
		{"target at 100", ScenarioInputs{MarkupMultiplier: 1.5, Volume: 10, TargetMarginPct: 100}, ErrCodeDivisionByZero},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.in.Validate()
			if err == nil {
				t.Fatal("expected an error")
			}
			var invalid *InvalidInputError
			if !errors.As(err, &invalid) {
				t.Fatalf("error type = %T, want *InvalidInputError", err)
			}
			if invalid.ErrorCode() != tc.wantCode {
				t.Fatalf("error code = %q, want %q", invalid.ErrorCode(), tc.wantCode)
			}
		})
	}

	// Custom price alone is a valid price source.
	withCustom := ScenarioInputs{CustomPrice: 4000, Volume: 10}
	if err := withCustom.Validate(); err != nil {
		t.Fatalf("custom-price-only inputs rejected: %v", err)
	}
}

func TestTestEconomics_Validate(t *testing.T) {
	valid := TestEconomics{CurrentPrice: 8000, UnitCost: 2000, OpexRate: 0.25}
	if err := valid.Validate(); err != nil {
		t.Fatalf("valid economics rejected: %v", err)
	}
	// Priced below cost is allowed.
	underwater := TestEconomics{CurrentPrice: 1000, UnitCost: 2000, OpexRate: 0.25}
	if err := underwater.Validate(); err != nil {
		t.Fatalf("below-cost pricing rejected: %v", err)
	}

	bad := []TestEconomics{
		{CurrentPrice: -1, UnitCost: 2000, OpexRate: 0.25},
		{CurrentPrice: 8000, UnitCost: -1, OpexRate: 0.25},
		{CurrentPrice: 8000, UnitCost: 2000, OpexRate: -0.1},
		{CurrentPrice: 8000, UnitCost: 2000, OpexRate: 1.01},
	}
	for i, econ := range bad {
		if err := econ.Validate(); err == nil {
			t.Fatalf("case %d: expected an error for %+v", i, econ)
		}
	}
}

func TestPricingPolicy_Validate(t *testing.T) {
	if err := DefaultPolicy().Validate(); err != nil {
		t.Fatalf("default policy rejected: %v", err)
	}

	mutate := func(f func(*PricingPolicy)) PricingPolicy {
		p := DefaultPolicy()
		f(&p)
		return p
	}
	bad := map[string]PricingPolicy{
		"unknown growth model":  mutate(func(p *PricingPolicy) { p.OpexGrowthModel = "quadratic" }),
		"unknown sensitivity":   mutate(func(p *PricingPolicy) { p.SensitivityMode = "sometimes" }),
		"negative growth rate":  mutate(func(p *PricingPolicy) { p.OpexGrowthRate = -0.1 }),
		"zero reference volume": mutate(func(p *PricingPolicy) { p.OpexReferenceVolume = 0 }),
		"odd increment":         mutate(func(p *PricingPolicy) { p.RoundingIncrement = 25 }),
	}
	for name, p := range bad {
		if err := p.Validate(); err == nil {
			t.Fatalf("%s: expected an error", name)
		}
	}
}

func TestMarginStatusFromAdjusted(t *testing.T) {
	if got := MarginStatusFromAdjusted(true); got != StatusAdjusted {
		t.Fatalf("got %q, want %q", got, StatusAdjusted)
	}
	if got := MarginStatusFromAdjusted(false); got != StatusWithinRange {
		t.Fatalf("got %q, want %q", got, StatusWithinRange)
	}
}
