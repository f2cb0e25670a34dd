package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"lab-pricing/internal/api/models"
)

// ListModels handles GET /api/v1/models
func ListModels(c *gin.Context) {
	growthModels := []models.ModelInfo{
		{
			Name:        "log",
			Description: "Logarithmic OPEX growth: sub-linear scaling modeling economies of scale, factor = 1 + k*ln(1 + volume/v0).",
			Parameters: []models.ParameterInfo{
				{
					Name:        "opex_growth_rate",
					Type:        "float",
					Description: "Growth coefficient k",
					Default:     0.1,
				},
				{
					Name:        "opex_reference_volume",
					Type:        "float",
					Description: "Volume scale v0",
					Default:     50,
				},
			},
		},
		{
			Name:        "linear",
			Description: "Linear OPEX growth: factor = 1 + k*volume/v0.",
			Parameters: []models.ParameterInfo{
				{
					Name:        "opex_growth_rate",
					Type:        "float",
					Description: "Growth coefficient k",
					Default:     0.1,
				},
				{
					Name:        "opex_reference_volume",
					Type:        "float",
					Description: "Volume scale v0",
					Default:     50,
				},
			},
		},
		{
			Name:        "none",
			Description: "No volume scaling: OPEX stays at the volume-1 baseline.",
		},
	}

	sensitivityModes := []models.ModelInfo{
		{
			Name:        "always",
			Description: "OPEX sensitivity multiplies operating cost at any volume.",
		},
		{
			Name:        "above_baseline",
			Description: "OPEX sensitivity applies only once volume exceeds the reference volume.",
		},
	}

	c.JSON(http.StatusOK, gin.H{
		"growth_models":     growthModels,
		"sensitivity_modes": sensitivityModes,
	})
}
