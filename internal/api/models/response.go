package models

// ScenarioView is one derived scenario as returned to clients. Currency
// figures are rounded per policy; margin_pct carries one decimal place.
type ScenarioView struct {
	Revenue     float64 `json:"revenue"`
	COGS        float64 `json:"cogs"`
	GrossProfit float64 `json:"gross_profit"`
	Opex        float64 `json:"opex"`
	EBITDA      float64 `json:"ebitda"`
	MarginPct   float64 `json:"margin_pct"`
}

// SimulateResponse is the full result of one simulation run.
type SimulateResponse struct {
	Status             string       `json:"status"` // "ADJUSTED" or "WITHIN_RANGE"
	ProposedPrice      float64      `json:"proposed_price"`
	MarginFloorApplied bool         `json:"margin_floor_applied"`
	AdjustedPrice      float64      `json:"adjusted_price,omitempty"`
	CurrentPerUnit     ScenarioView `json:"current_per_unit"`
	ProposedTotal      ScenarioView `json:"proposed_total"`
	Deltas             ScenarioView `json:"deltas"`

	Series []SeriesPointView `json:"series,omitempty"`
}

// SeriesPointView is one volume projection point for charting.
type SeriesPointView struct {
	Volume       int     `json:"volume"`
	TotalRevenue float64 `json:"total_revenue"`
	TotalEBITDA  float64 `json:"total_ebitda"`
}

// CompareResponse represents the response from a variation comparison.
type CompareResponse struct {
	Comparison []ComparisonResult `json:"comparison"`
}

// ComparisonResult contains results for one variation.
type ComparisonResult struct {
	Name   string           `json:"name"`
	Result SimulateResponse `json:"result"`
}

// RankResponse represents the response from ranking catalog tests.
type RankResponse struct {
	Rankings []Ranking `json:"rankings"`
}

// Ranking represents one ranked test.
type Ranking struct {
	Rank              int     `json:"rank"`
	Lab               string  `json:"lab"`
	Test              string  `json:"test"`
	CurrentMarginPct  float64 `json:"current_margin_pct"`
	ProposedMarginPct float64 `json:"proposed_margin_pct"`
	ProposedPrice     float64 `json:"proposed_price"`
	FloorApplied      bool    `json:"floor_applied"`
	EBITDAUplift      float64 `json:"ebitda_uplift"`
}

// TestInfo represents one catalog test for listing.
type TestInfo struct {
	Lab          string  `json:"lab"`
	Name         string  `json:"name"`
	CurrentPrice float64 `json:"current_price"`
	UnitCost     float64 `json:"unit_cost"`
	OpexRate     float64 `json:"opex_rate"`
}

// PolicyInfo represents one policy preset file.
type PolicyInfo struct {
	ID                string `json:"id"`
	Name              string `json:"name"`
	File              string `json:"file"`
	OpexGrowthModel   string `json:"opex_growth_model"`
	SensitivityMode   string `json:"sensitivity_mode"`
	RoundingIncrement int    `json:"rounding_increment"`
}

// ModelInfo describes one recognized OPEX growth model or sensitivity mode.
type ModelInfo struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Parameters  []ParameterInfo `json:"parameters,omitempty"`
}

// ParameterInfo describes a model parameter.
type ParameterInfo struct {
	Name        string      `json:"name"`
	Type        string      `json:"type"` // "float", "int", "string"
	Description string      `json:"description"`
	Default     interface{} `json:"default,omitempty"`
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error information.
type ErrorDetail struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}
