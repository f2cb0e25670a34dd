package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lab-pricing/internal/api/models"
)

const exampleCatalog = "../../../examples/catalog.csv"

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	simulate := NewSimulateHandler()
	rank := NewRankHandler()
	cat := NewCatalogHandler()

	v1 := r.Group("/api/v1")
	v1.POST("/simulate", simulate.Simulate)
	v1.POST("/simulate/compare", simulate.Compare)
	v1.GET("/rank", rank.RankTests)
	v1.GET("/labs", cat.ListLabs)
	v1.GET("/tests", cat.ListTests)
	return r
}

func postJSON(t *testing.T, r *gin.Engine, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func getPath(t *testing.T, r *gin.Engine, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) models.ErrorResponse {
	t.Helper()
	var resp models.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestSimulate_InlineEconomics(t *testing.T) {
	r := newTestRouter()

	w := postJSON(t, r, "/api/v1/simulate", models.SimulateRequest{
		Economics: &models.EconomicsConfig{CurrentPrice: 8000, UnitCost: 2000, OpexRate: 0.25},
		Inputs:    models.InputsConfig{MarkupMultiplier: 1.5, Volume: 100},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp models.SimulateResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	assert.Equal(t, "WITHIN_RANGE", resp.Status)
	assert.False(t, resp.MarginFloorApplied)
	assert.Equal(t, 3000.0, resp.ProposedPrice)

	assert.Equal(t, 8000.0, resp.CurrentPerUnit.Revenue)
	assert.Equal(t, 50.0, resp.CurrentPerUnit.MarginPct)

	assert.Equal(t, 300000.0, resp.ProposedTotal.Revenue)
	assert.Equal(t, 2300.0, resp.ProposedTotal.Opex)
	assert.Equal(t, 97800.0, resp.ProposedTotal.EBITDA)
	assert.Equal(t, 32.6, resp.ProposedTotal.MarginPct)

	assert.Empty(t, resp.Series)
}

func TestSimulate_DefaultOpexRate(t *testing.T) {
	r := newTestRouter()

	w := postJSON(t, r, "/api/v1/simulate", models.SimulateRequest{
		Economics: &models.EconomicsConfig{CurrentPrice: 8000, UnitCost: 2000},
		Inputs:    models.InputsConfig{MarkupMultiplier: 1.5, Volume: 100},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp models.SimulateResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	// Omitted opex_rate falls back to 0.25, same figures as the explicit case.
	assert.Equal(t, 2300.0, resp.ProposedTotal.Opex)
}

func TestSimulate_MarginFloor(t *testing.T) {
	r := newTestRouter()

	w := postJSON(t, r, "/api/v1/simulate", models.SimulateRequest{
		Economics: &models.EconomicsConfig{CurrentPrice: 8000, UnitCost: 2000, OpexRate: 0.25},
		Inputs:    models.InputsConfig{MarkupMultiplier: 1.0, Volume: 100},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp models.SimulateResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "ADJUSTED", resp.Status)
	assert.True(t, resp.MarginFloorApplied)
	assert.Equal(t, 2600.0, resp.AdjustedPrice)
	assert.Equal(t, 2600.0, resp.ProposedPrice)
	assert.GreaterOrEqual(t, resp.ProposedTotal.MarginPct, 20.0)
}

func TestSimulate_IncludeSeries(t *testing.T) {
	r := newTestRouter()

	w := postJSON(t, r, "/api/v1/simulate", models.SimulateRequest{
		Economics: &models.EconomicsConfig{CurrentPrice: 8000, UnitCost: 2000, OpexRate: 0.25},
		Inputs:    models.InputsConfig{MarkupMultiplier: 1.5, Volume: 100},
		Options:   models.SimulateOptions{IncludeSeries: true, MaxVolume: 25},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp models.SimulateResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Series, 25)
	assert.Equal(t, 1, resp.Series[0].Volume)
	assert.Equal(t, 25, resp.Series[24].Volume)
	assert.Equal(t, 3000.0, resp.Series[0].TotalRevenue)
}

func TestSimulate_CatalogFileSource(t *testing.T) {
	r := newTestRouter()

	w := postJSON(t, r, "/api/v1/simulate", models.SimulateRequest{
		Catalog: &models.CatalogSource{
			Type: "file",
			Path: exampleCatalog,
			Lab:  "OPIC_LAB",
			Test: "FULL BLOOD COUNT",
		},
		Inputs: models.InputsConfig{MarkupMultiplier: 1.5, Volume: 100},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp models.SimulateResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 3000.0, resp.ProposedPrice)
	assert.Equal(t, 97800.0, resp.ProposedTotal.EBITDA)
}

func TestSimulate_Errors(t *testing.T) {
	r := newTestRouter()

	cases := []struct {
		name       string
		req        models.SimulateRequest
		wantStatus int
		wantCode   string
	}{
		{
			"no economics or catalog",
			models.SimulateRequest{Inputs: models.InputsConfig{MarkupMultiplier: 1.5, Volume: 100}},
			http.StatusBadRequest, "MISSING_ECONOMICS",
		},
		{
			"negative volume",
			models.SimulateRequest{
				Economics: &models.EconomicsConfig{CurrentPrice: 8000, UnitCost: 2000},
				Inputs:    models.InputsConfig{MarkupMultiplier: 1.5, Volume: -5},
			},
			http.StatusBadRequest, "INVALID_INPUT",
		},
		{
			"target margin 100",
			models.SimulateRequest{
				Economics: &models.EconomicsConfig{CurrentPrice: 8000, UnitCost: 2000},
				Inputs:    models.InputsConfig{MarkupMultiplier: 1.5, Volume: 100, TargetMarginPct: 100},
			},
			http.StatusBadRequest, "DIVISION_BY_ZERO",
		},
		{
			"bad policy override",
			models.SimulateRequest{
				Economics: &models.EconomicsConfig{CurrentPrice: 8000, UnitCost: 2000},
				Inputs:    models.InputsConfig{MarkupMultiplier: 1.5, Volume: 100},
				Policy:    &models.PolicyConfig{OpexGrowthModel: "quadratic"},
			},
			http.StatusBadRequest, "INVALID_POLICY",
		},
		{
			"unknown test in catalog",
			models.SimulateRequest{
				Catalog: &models.CatalogSource{Type: "file", Path: exampleCatalog, Lab: "OPIC_LAB", Test: "NOT A TEST"},
				Inputs:  models.InputsConfig{MarkupMultiplier: 1.5, Volume: 100},
			},
			http.StatusNotFound, "TEST_NOT_FOUND",
		},
		{
			"unsupported catalog type",
			models.SimulateRequest{
				Catalog: &models.CatalogSource{Type: "ftp", Test: "X"},
				Inputs:  models.InputsConfig{MarkupMultiplier: 1.5, Volume: 100},
			},
			http.StatusBadRequest, "INVALID_CATALOG_SOURCE",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := postJSON(t, r, "/api/v1/simulate", tc.req)
			assert.Equal(t, tc.wantStatus, w.Code, w.Body.String())
			assert.Equal(t, tc.wantCode, decodeError(t, w).Error.Code)
		})
	}

	t.Run("zero volume fails binding", func(t *testing.T) {
		w := postJSON(t, r, "/api/v1/simulate", models.SimulateRequest{
			Economics: &models.EconomicsConfig{CurrentPrice: 8000, UnitCost: 2000},
			Inputs:    models.InputsConfig{MarkupMultiplier: 1.5},
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "INVALID_REQUEST", decodeError(t, w).Error.Code)
	})
}

func TestCompare_Variations(t *testing.T) {
	r := newTestRouter()

	w := postJSON(t, r, "/api/v1/simulate/compare", models.CompareRequest{
		Economics:  &models.EconomicsConfig{CurrentPrice: 8000, UnitCost: 2000, OpexRate: 0.25},
		BaseInputs: models.InputsConfig{MarkupMultiplier: 1.5, Volume: 100},
		Variations: []models.InputVariation{
			{Name: "baseline", Inputs: models.InputsConfig{}},
			{Name: "double volume", Inputs: models.InputsConfig{Volume: 200}},
			{Name: "higher markup", Inputs: models.InputsConfig{MarkupMultiplier: 2.0}},
			{Name: "broken", Inputs: models.InputsConfig{Volume: -1}}, // skipped
		},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp models.CompareResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Comparison, 3)

	byName := map[string]models.SimulateResponse{}
	for _, c := range resp.Comparison {
		byName[c.Name] = c.Result
	}
	assert.Equal(t, 3000.0, byName["baseline"].ProposedPrice)
	assert.Equal(t, 600000.0, byName["double volume"].ProposedTotal.Revenue)
	assert.Equal(t, 4000.0, byName["higher markup"].ProposedPrice)
}

func TestRankTests_FileSource(t *testing.T) {
	r := newTestRouter()

	w := getPath(t, r, fmt.Sprintf("/api/v1/rank?source=file&path=%s&limit=3", exampleCatalog))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp models.RankResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Rankings, 3)
	for i, rk := range resp.Rankings {
		assert.Equal(t, i+1, rk.Rank)
		if i > 0 {
			assert.GreaterOrEqual(t, resp.Rankings[i-1].EBITDAUplift, rk.EBITDAUplift)
		}
	}
}

func TestCatalogEndpoints(t *testing.T) {
	r := newTestRouter()

	w := getPath(t, r, fmt.Sprintf("/api/v1/labs?source=file&path=%s", exampleCatalog))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var labsResp struct {
		Labs  []string `json:"labs"`
		Count int      `json:"count"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &labsResp))
	assert.Equal(t, []string{"CHEVRON_LAB", "OPIC_LAB"}, labsResp.Labs)
	assert.Equal(t, 2, labsResp.Count)

	w = getPath(t, r, fmt.Sprintf("/api/v1/tests?source=file&path=%s&lab=OPIC_LAB", exampleCatalog))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var testsResp struct {
		Tests []models.TestInfo `json:"tests"`
		Count int               `json:"count"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &testsResp))
	assert.Equal(t, 5, testsResp.Count)
	for _, ti := range testsResp.Tests {
		assert.Equal(t, "OPIC_LAB", ti.Lab)
	}

	// Sheet listings need an explicit lab.
	w = getPath(t, r, "/api/v1/tests?source=sheet&sheet_id=abc")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "MISSING_PARAM", decodeError(t, w).Error.Code)
}
