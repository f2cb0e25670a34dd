package models

// SimulateRequest represents the request body for running one pricing
// simulation. Exactly one of Economics (inline) or Catalog (lookup) supplies
// the test economics.
type SimulateRequest struct {
	Economics *EconomicsConfig `json:"economics,omitempty"`
	Catalog   *CatalogSource   `json:"catalog,omitempty"`
	Inputs    InputsConfig     `json:"inputs" binding:"required"`
	Policy    *PolicyConfig    `json:"policy,omitempty"`
	Options   SimulateOptions  `json:"options,omitempty"`
}

// EconomicsConfig carries inline test economics. A zero opex_rate means
// "not supplied" and is coerced to the 0.25 default, mirroring the sheet's
// permissive behavior.
type EconomicsConfig struct {
	CurrentPrice float64 `json:"current_price"`
	UnitCost     float64 `json:"unit_cost"`
	OpexRate     float64 `json:"opex_rate,omitempty"`
}

// CatalogSource defines where to look the test up.
type CatalogSource struct {
	Type    string `json:"type" binding:"required"` // "sheet", "file", "sqlite"
	SheetID string `json:"sheet_id,omitempty"`
	Path    string `json:"path,omitempty"`    // catalog CSV for type=file
	DBPath  string `json:"db_path,omitempty"` // sqlite database for type=sqlite
	Lab     string `json:"lab,omitempty"`
	Test    string `json:"test" binding:"required"`
}

// InputsConfig defines the simulation controls.
type InputsConfig struct {
	MarkupMultiplier   float64 `json:"markup_multiplier"`
	CustomPrice        float64 `json:"custom_price,omitempty"`
	Volume             int     `json:"volume" binding:"required"`
	OpexSensitivityPct float64 `json:"opex_sensitivity_pct,omitempty"`
	TargetMarginPct    float64 `json:"target_margin_pct,omitempty"`
}

// PolicyConfig overrides parts of the default pricing policy per request.
type PolicyConfig struct {
	OpexGrowthModel     string  `json:"opex_growth_model,omitempty"`
	OpexGrowthRate      float64 `json:"opex_growth_rate,omitempty"`
	OpexReferenceVolume float64 `json:"opex_reference_volume,omitempty"`
	SensitivityMode     string  `json:"sensitivity_mode,omitempty"`
	RoundingIncrement   int     `json:"rounding_increment,omitempty"`
	EnforceMarginFloor  *bool   `json:"enforce_margin_floor,omitempty"`
}

// SimulateOptions contains optional simulation parameters.
type SimulateOptions struct {
	IncludeSeries bool `json:"include_series,omitempty"` // default: false
	MaxVolume     int  `json:"max_volume,omitempty"`     // default: inputs volume
}

// CompareRequest represents a request to compare input variations against a
// shared base.
type CompareRequest struct {
	Economics  *EconomicsConfig `json:"economics,omitempty"`
	Catalog    *CatalogSource   `json:"catalog,omitempty"`
	BaseInputs InputsConfig     `json:"base_inputs" binding:"required"`
	Policy     *PolicyConfig    `json:"policy,omitempty"`
	Variations []InputVariation `json:"variations" binding:"required"`
}

// InputVariation defines one named variation to test.
type InputVariation struct {
	Name   string       `json:"name" binding:"required"`
	Inputs InputsConfig `json:"inputs"`
}

// RankRequest represents a request to rank catalog tests by uplift.
type RankRequest struct {
	Source  string  `form:"source"` // "sheet", "file", "sqlite"
	SheetID string  `form:"sheet_id"`
	Path    string  `form:"path"`
	DBPath  string  `form:"db_path"`
	Lab     string  `form:"lab"`
	Markup  float64 `form:"markup"`
	Volume  int     `form:"volume"`
	Limit   int     `form:"limit"` // default: 10
}
