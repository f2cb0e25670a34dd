package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"lab-pricing/internal/api/models"
	"lab-pricing/internal/catalog"
	"lab-pricing/internal/engine"
	"lab-pricing/internal/model"
)

// SimulateHandler handles pricing-simulation requests.
type SimulateHandler struct{}

// NewSimulateHandler creates a new simulate handler.
func NewSimulateHandler() *SimulateHandler {
	return &SimulateHandler{}
}

// Simulate handles POST /api/v1/simulate
func (h *SimulateHandler) Simulate(c *gin.Context) {
	var req models.SimulateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	econ, ok := h.resolveEconomics(c, req.Economics, req.Catalog)
	if !ok {
		return
	}

	eng, err := buildEngine(req.Policy)
	if err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_POLICY", err.Error())
		return
	}

	in := toScenarioInputs(req.Inputs)
	result, err := eng.Simulate(econ, in)
	if err != nil {
		respondEngineError(c, err)
		return
	}

	resp := buildSimulateResponse(result)
	if req.Options.IncludeSeries {
		maxVolume := req.Options.MaxVolume
		if maxVolume <= 0 {
			maxVolume = in.Volume
		}
		series, err := eng.ProjectSeries(result.ProposedPrice, econ, in, maxVolume)
		if err != nil {
			respondEngineError(c, err)
			return
		}
		resp.Series = convertSeries(series)
	}

	c.JSON(http.StatusOK, resp)
}

// Compare handles POST /api/v1/simulate/compare
func (h *SimulateHandler) Compare(c *gin.Context) {
	var req models.CompareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	econ, ok := h.resolveEconomics(c, req.Economics, req.Catalog)
	if !ok {
		return
	}

	eng, err := buildEngine(req.Policy)
	if err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_POLICY", err.Error())
		return
	}

	comparison := make([]models.ComparisonResult, 0, len(req.Variations))
	for _, variation := range req.Variations {
		in := mergeInputs(req.BaseInputs, variation.Inputs)
		result, err := eng.Simulate(econ, toScenarioInputs(in))
		if err != nil {
			continue // Skip invalid variations
		}
		comparison = append(comparison, models.ComparisonResult{
			Name:   variation.Name,
			Result: buildSimulateResponse(result),
		})
	}

	c.JSON(http.StatusOK, models.CompareResponse{Comparison: comparison})
}

// Helper methods

// resolveEconomics picks between inline economics and a catalog lookup.
// Writes the error response itself and returns ok=false on failure.
func (h *SimulateHandler) resolveEconomics(c *gin.Context, inline *models.EconomicsConfig, src *models.CatalogSource) (model.TestEconomics, bool) {
	if inline != nil {
		econ := model.TestEconomics{
			CurrentPrice: inline.CurrentPrice,
			UnitCost:     inline.UnitCost,
			OpexRate:     inline.OpexRate,
		}
		if econ.OpexRate == 0 {
			econ.OpexRate = model.DefaultOpexRate
		}
		return econ, true
	}
	if src == nil {
		respondError(c, http.StatusBadRequest, "MISSING_ECONOMICS", "either economics or catalog must be provided")
		return model.TestEconomics{}, false
	}

	provider, err := providerFor(*src)
	if err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_CATALOG_SOURCE", err.Error())
		return model.TestEconomics{}, false
	}
	defer closeProvider(provider)

	econ, err := provider.GetTest(src.Lab, src.Test)
	if err != nil {
		respondCatalogError(c, err)
		return model.TestEconomics{}, false
	}
	return econ, true
}

func buildEngine(override *models.PolicyConfig) (*engine.Engine, error) {
	policy := model.DefaultPolicy()
	if override != nil {
		if override.OpexGrowthModel != "" {
			policy.OpexGrowthModel = override.OpexGrowthModel
		}
		if override.OpexGrowthRate != 0 {
			policy.OpexGrowthRate = override.OpexGrowthRate
		}
		if override.OpexReferenceVolume != 0 {
			policy.OpexReferenceVolume = override.OpexReferenceVolume
		}
		if override.SensitivityMode != "" {
			policy.SensitivityMode = override.SensitivityMode
		}
		if override.RoundingIncrement != 0 {
			policy.RoundingIncrement = override.RoundingIncrement
		}
		if override.EnforceMarginFloor != nil {
			policy.EnforceMarginFloor = *override.EnforceMarginFloor
		}
	}
	return engine.New(policy)
}

func toScenarioInputs(in models.InputsConfig) model.ScenarioInputs {
	return model.ScenarioInputs{
		MarkupMultiplier:   in.MarkupMultiplier,
		CustomPrice:        in.CustomPrice,
		Volume:             in.Volume,
		OpexSensitivityPct: in.OpexSensitivityPct,
		TargetMarginPct:    in.TargetMarginPct,
	}
}

// mergeInputs overlays non-zero variation fields onto the base inputs.
func mergeInputs(base, override models.InputsConfig) models.InputsConfig {
	merged := base
	if override.MarkupMultiplier != 0 {
		merged.MarkupMultiplier = override.MarkupMultiplier
	}
	if override.CustomPrice != 0 {
		merged.CustomPrice = override.CustomPrice
	}
	if override.Volume != 0 {
		merged.Volume = override.Volume
	}
	if override.OpexSensitivityPct != 0 {
		merged.OpexSensitivityPct = override.OpexSensitivityPct
	}
	if override.TargetMarginPct != 0 {
		merged.TargetMarginPct = override.TargetMarginPct
	}
	return merged
}

func buildSimulateResponse(result *model.ScenarioResult) models.SimulateResponse {
	return models.SimulateResponse{
		Status:             string(result.Status),
		ProposedPrice:      result.ProposedPrice,
		MarginFloorApplied: result.MarginFloorApplied,
		AdjustedPrice:      result.AdjustedPrice,
		CurrentPerUnit:     toScenarioView(result.CurrentPerUnit),
		ProposedTotal:      toScenarioView(result.ProposedTotal),
		Deltas:             toScenarioView(result.Deltas),
	}
}

func toScenarioView(s model.Scenario) models.ScenarioView {
	return models.ScenarioView{
		Revenue:     s.Revenue,
		COGS:        s.COGS,
		GrossProfit: s.GrossProfit,
		Opex:        s.Opex,
		EBITDA:      s.EBITDA,
		MarginPct:   s.MarginPct,
	}
}

func convertSeries(series []engine.SeriesPoint) []models.SeriesPointView {
	out := make([]models.SeriesPointView, len(series))
	for i, p := range series {
		out[i] = models.SeriesPointView{
			Volume:       p.Volume,
			TotalRevenue: p.TotalRevenue,
			TotalEBITDA:  p.TotalEBITDA,
		}
	}
	return out
}

// Shared error responders

func respondError(c *gin.Context, status int, code, message string) {
	c.JSON(status, models.ErrorResponse{
		Error: models.ErrorDetail{
			Code:    code,
			Message: message,
		},
	})
}

func respondEngineError(c *gin.Context, err error) {
	var invalid *model.InvalidInputError
	if errors.As(err, &invalid) {
		respondError(c, http.StatusBadRequest, invalid.ErrorCode(), invalid.Error())
		return
	}
	respondError(c, http.StatusInternalServerError, "ENGINE_ERROR", err.Error())
}

func respondCatalogError(c *gin.Context, err error) {
	var sheetErr *catalog.SheetError
	if errors.As(err, &sheetErr) {
		status := http.StatusBadRequest
		switch sheetErr.StatusCode {
		case http.StatusForbidden, http.StatusUnauthorized:
			status = http.StatusUnauthorized
		case http.StatusTooManyRequests:
			status = http.StatusTooManyRequests
		}
		c.JSON(status, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    sheetErr.Code,
				Message: sheetErr.Message,
				Details: map[string]interface{}{
					"status_code": sheetErr.StatusCode,
					"retry_after": sheetErr.RetryAfter,
				},
			},
		})
		return
	}
	if errors.Is(err, catalog.ErrTestNotFound) {
		respondError(c, http.StatusNotFound, "TEST_NOT_FOUND", err.Error())
		return
	}
	respondError(c, http.StatusBadRequest, "CATALOG_ERROR", err.Error())
}
