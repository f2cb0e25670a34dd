package handlers

import (
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"lab-pricing/internal/api/models"
	"lab-pricing/internal/config"
)

// PolicyHandler serves the policy preset files.
type PolicyHandler struct {
	policyDir string
}

// NewPolicyHandler creates a new policy handler.
func NewPolicyHandler() *PolicyHandler {
	dir := os.Getenv("POLICY_DIR")
	if dir == "" {
		wd, err := os.Getwd()
		if err == nil {
			dir = filepath.Join(wd, "examples", "policies")
		} else {
			dir = "./examples/policies"
		}
	}

	if absDir, err := filepath.Abs(dir); err == nil {
		dir = absDir
	}

	return &PolicyHandler{policyDir: dir}
}

// GetPolicyDir returns the policy directory path (for debugging).
func (h *PolicyHandler) GetPolicyDir() string {
	return h.policyDir
}

// ListPolicies handles GET /api/v1/policies
func (h *PolicyHandler) ListPolicies(c *gin.Context) {
	policies := []models.PolicyInfo{}

	entries, err := os.ReadDir(h.policyDir)
	if err != nil {
		log.Printf("PolicyHandler: failed to read policy directory %s: %v", h.policyDir, err)
		c.JSON(http.StatusOK, gin.H{"policies": policies})
		return
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".yaml") {
			continue
		}

		path := filepath.Join(h.policyDir, entry.Name())
		pc, err := config.LoadPolicyFile(path)
		if err != nil {
			log.Printf("PolicyHandler: failed to load policy file %s: %v", path, err)
			continue // Skip invalid files
		}

		id := strings.TrimSuffix(entry.Name(), ".yaml")
		name := pc.Name
		if name == "" {
			name = id
		}

		p := pc.ToModelPolicy()
		policies = append(policies, models.PolicyInfo{
			ID:                id,
			Name:              name,
			File:              path,
			OpexGrowthModel:   p.OpexGrowthModel,
			SensitivityMode:   p.SensitivityMode,
			RoundingIncrement: p.RoundingIncrement,
		})
	}

	c.JSON(http.StatusOK, gin.H{"policies": policies})
}
