package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"lab-pricing/internal/analysis"
	"lab-pricing/internal/api/models"
	"lab-pricing/internal/engine"
	"lab-pricing/internal/model"
)

// RankHandler handles catalog ranking requests.
type RankHandler struct{}

// NewRankHandler creates a new rank handler.
func NewRankHandler() *RankHandler {
	return &RankHandler{}
}

// RankTests handles GET /api/v1/rank
func (h *RankHandler) RankTests(c *gin.Context) {
	var req models.RankRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	provider, err := providerFor(models.CatalogSource{
		Type:    req.Source,
		SheetID: req.SheetID,
		Path:    req.Path,
		DBPath:  req.DBPath,
		Lab:     req.Lab,
	})
	if err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_CATALOG_SOURCE", err.Error())
		return
	}
	defer closeProvider(provider)

	tests, err := provider.ListTests(req.Lab)
	if err != nil {
		respondCatalogError(c, err)
		return
	}

	markup := req.Markup
	if markup <= 0 {
		markup = 1.5
	}
	volume := req.Volume
	if volume < 1 {
		volume = 100
	}

	ranked := analysis.RankByUplift(tests, model.ScenarioInputs{
		MarkupMultiplier: markup,
		Volume:           volume,
	}, engine.Default())

	limit := req.Limit
	if limit <= 0 {
		limit = 10
	}
	if limit > len(ranked) {
		limit = len(ranked)
	}
	ranked = ranked[:limit]

	rankings := make([]models.Ranking, len(ranked))
	for i, r := range ranked {
		rankings[i] = models.Ranking{
			Rank:              i + 1,
			Lab:               r.Lab,
			Test:              r.Test,
			CurrentMarginPct:  r.CurrentMarginPct,
			ProposedMarginPct: r.ProposedMarginPct,
			ProposedPrice:     r.ProposedPrice,
			FloorApplied:      r.FloorApplied,
			EBITDAUplift:      r.EBITDAUplift,
		}
	}

	c.JSON(http.StatusOK, models.RankResponse{Rankings: rankings})
}
