package model

// DefaultOpexRate is the baseline operating-expense assumption used when the
// catalog source does not carry an explicit rate: 25% of revenue.
const DefaultOpexRate = 0.25

// TestEconomics defines the base economics of a single laboratory test as
// sourced from the catalog.
// Units:
// - CurrentPrice: currency per unit test
// - UnitCost: direct cost (COGS) per unit test
// - OpexRate: fraction of revenue [0,1] consumed by baseline OPEX
//
// CurrentPrice and UnitCost are independent; a test may already be priced
// below its unit cost.
type TestEconomics struct {
	CurrentPrice float64
	UnitCost     float64
	OpexRate     float64
}

func (e TestEconomics) Validate() error {
	if e.CurrentPrice < 0 {
		return &InvalidInputError{Field: "current_price", Reason: "must be >= 0"}
	}
	if e.UnitCost < 0 {
		return &InvalidInputError{Field: "unit_cost", Reason: "must be >= 0"}
	}
	if e.OpexRate < 0 || e.OpexRate > 1 {
		return &InvalidInputError{Field: "opex_rate", Reason: "must be in [0, 1]"}
	}
	return nil
}
