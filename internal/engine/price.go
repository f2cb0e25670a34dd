package engine

// DerivePrice resolves the proposed per-unit price before rounding.
// A customPrice > 0 overrides the markup-derived price; 0 means "not set".
func DerivePrice(unitCost, markupMultiplier, customPrice float64) float64 {
	if customPrice > 0 {
		return customPrice
	}
	return unitCost * markupMultiplier
}
