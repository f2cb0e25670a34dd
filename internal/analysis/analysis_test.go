package analysis

import (
	"math"
	"testing"

	"lab-pricing/internal/catalog"
	"lab-pricing/internal/engine"
	"lab-pricing/internal/model"
)

func test(lab, name string, price, cost, rate float64) catalog.Test {
	return catalog.Test{
		Lab: lab, Name: name,
		Economics: model.TestEconomics{CurrentPrice: price, UnitCost: cost, OpexRate: rate},
	}
}

func TestComputeMarginStats(t *testing.T) {
	tests := []catalog.Test{
		test("OPIC_LAB", "A", 8000, 2000, 0.25), // margin 50
		test("OPIC_LAB", "B", 1000, 2000, 0.25), // margin -125, below water
		test("OPIC_LAB", "C", 10000, 4000, 0.25), // margin 35
		test("OPIC_LAB", "D", 0, 500, 0.25),     // no revenue, margin 0
	}

	s := ComputeMarginStats(tests)
	if s.Lab != "OPIC_LAB" || s.Count != 4 {
		t.Fatalf("lab/count = %s/%d, want OPIC_LAB/4", s.Lab, s.Count)
	}
	if s.MinMargin != -125 || s.MaxMargin != 50 {
		t.Fatalf("min/max = %v/%v, want -125/50", s.MinMargin, s.MaxMargin)
	}
	if math.Abs(s.MeanMargin-(-10)) > 1e-9 {
		t.Fatalf("mean = %v, want -10", s.MeanMargin)
	}
	if s.BelowWaterCount != 1 {
		t.Fatalf("below water count = %d, want 1", s.BelowWaterCount)
	}
	if math.Abs(s.SpreadP95P05-(s.P95Margin-s.P05Margin)) > 1e-9 {
		t.Fatalf("spread inconsistent with percentiles: %+v", s)
	}
	if s.P05Margin >= s.P95Margin {
		t.Fatalf("p05 %v should be below p95 %v", s.P05Margin, s.P95Margin)
	}
}

func TestComputeMarginStats_Empty(t *testing.T) {
	s := ComputeMarginStats(nil)
	if s.Count != 0 || s.Lab != "" {
		t.Fatalf("empty catalog should yield a zero summary, got %+v", s)
	}
}

func TestPercentileSorted(t *testing.T) {
	vals := []float64{10, 20, 30, 40, 50}
	cases := []struct {
		q    float64
		want float64
	}{
		{0, 10},
		{1, 50},
		{0.5, 30},
		{0.25, 20},
		{0.05, 12}, // 0.05 * 4 = 0.2 between 10 and 20
	}
	for _, tc := range cases {
		if got := percentileSorted(vals, tc.q); math.Abs(got-tc.want) > 1e-9 {
			t.Errorf("percentileSorted(q=%v) = %v, want %v", tc.q, got, tc.want)
		}
	}
	if got := percentileSorted(nil, 0.5); got != 0 {
		t.Errorf("empty input = %v, want 0", got)
	}
}

func TestRankByUplift(t *testing.T) {
	tests := []catalog.Test{
		test("OPIC_LAB", "WELL_PRICED", 8000, 2000, 0.25),
		test("OPIC_LAB", "UNDERPRICED", 1000, 2000, 0.25),
		test("OPIC_LAB", "BROKEN", -1, 0, 0.25), // invalid, skipped
	}
	in := model.ScenarioInputs{MarkupMultiplier: 1.5, Volume: 100}

	ranked := RankByUplift(tests, in, engine.Default())
	if len(ranked) != 2 {
		t.Fatalf("ranked %d tests, want 2 (invalid row skipped)", len(ranked))
	}
	// The underwater test gains the most from cost-plus repricing; the
	// well-priced one would give up revenue at the same markup.
	if ranked[0].Test != "UNDERPRICED" {
		t.Fatalf("top uplift = %q, want UNDERPRICED", ranked[0].Test)
	}
	if ranked[0].EBITDAUplift <= 0 {
		t.Fatalf("underpriced uplift = %v, want > 0", ranked[0].EBITDAUplift)
	}
	if ranked[0].EBITDAUplift < ranked[1].EBITDAUplift {
		t.Fatal("ranking is not descending by uplift")
	}
	for _, u := range ranked {
		if u.ProposedPrice <= 0 {
			t.Fatalf("missing proposed price in %+v", u)
		}
	}
}

func TestBreakEvenVolume(t *testing.T) {
	econ := model.TestEconomics{CurrentPrice: 8000, UnitCost: 2000, OpexRate: 0.25}
	in := model.ScenarioInputs{MarkupMultiplier: 1.5, Volume: 100}
	eng := engine.Default()

	// Per-unit gross is 1000 against a ~2000 OPEX base: volume 3 is the first
	// point where total EBITDA turns positive.
	got, err := BreakEvenVolume(3000, econ, in, eng, 500)
	if err != nil {
		t.Fatalf("BreakEvenVolume: %v", err)
	}
	if got != 3 {
		t.Fatalf("break-even volume = %d, want 3", got)
	}

	// Priced below cost, EBITDA only falls with volume: no break-even.
	got, err = BreakEvenVolume(1500, econ, in, eng, 500)
	if err != nil {
		t.Fatalf("BreakEvenVolume: %v", err)
	}
	if got != 0 {
		t.Fatalf("break-even volume = %d, want 0 (never)", got)
	}
}
