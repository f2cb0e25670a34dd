package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"lab-pricing/internal/api/models"
)

// CatalogHandler handles catalog listing requests.
type CatalogHandler struct{}

// NewCatalogHandler creates a new catalog handler.
func NewCatalogHandler() *CatalogHandler {
	return &CatalogHandler{}
}

// ListLabs handles GET /api/v1/labs
func (h *CatalogHandler) ListLabs(c *gin.Context) {
	provider, err := providerFor(sourceFromQuery(c))
	if err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_CATALOG_SOURCE", err.Error())
		return
	}
	defer closeProvider(provider)

	labs, err := provider.ListLabs()
	if err != nil {
		respondCatalogError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"labs": labs, "count": len(labs)})
}

// ListTests handles GET /api/v1/tests
func (h *CatalogHandler) ListTests(c *gin.Context) {
	lab := c.Query("lab")
	src := sourceFromQuery(c)
	if src.Type == "sheet" && lab == "" {
		respondError(c, http.StatusBadRequest, "MISSING_PARAM", "lab query parameter is required for a sheet catalog")
		return
	}

	provider, err := providerFor(src)
	if err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_CATALOG_SOURCE", err.Error())
		return
	}
	defer closeProvider(provider)

	tests, err := provider.ListTests(lab)
	if err != nil {
		respondCatalogError(c, err)
		return
	}

	infos := make([]models.TestInfo, len(tests))
	for i, t := range tests {
		infos[i] = models.TestInfo{
			Lab:          t.Lab,
			Name:         t.Name,
			CurrentPrice: t.Economics.CurrentPrice,
			UnitCost:     t.Economics.UnitCost,
			OpexRate:     t.Economics.OpexRate,
		}
	}

	c.JSON(http.StatusOK, gin.H{"tests": infos, "count": len(infos)})
}

// sourceFromQuery assembles a catalog source from listing query parameters;
// empty fields fall back to the environment inside providerFor.
func sourceFromQuery(c *gin.Context) models.CatalogSource {
	src := models.CatalogSource{
		Type:    c.Query("source"),
		SheetID: c.Query("sheet_id"),
		Path:    c.Query("path"),
		DBPath:  c.Query("db_path"),
	}
	if src.Type == "" {
		src.Type = "sheet"
	}
	return src
}
