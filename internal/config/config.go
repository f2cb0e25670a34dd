package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"lab-pricing/internal/model"
)

// Config is the on-disk configuration shape (YAML).
type Config struct {
	// Optional: load the pricing policy from a separate YAML (e.g.
	// examples/policies/*.yaml). If both PolicyFile and Policy are provided,
	// Policy overrides PolicyFile.
	PolicyFile string        `yaml:"policy_file"`
	Policy     PolicyConfig  `yaml:"policy"`
	Defaults   DefaultsConfig `yaml:"defaults"`
	Catalog    CatalogConfig  `yaml:"catalog"`
}

type PolicyConfig struct {
	Name                string  `yaml:"name"`
	OpexGrowthModel     string  `yaml:"opex_growth_model"`
	OpexGrowthRate      float64 `yaml:"opex_growth_rate"`
	OpexReferenceVolume float64 `yaml:"opex_reference_volume"`
	SensitivityMode     string  `yaml:"sensitivity_mode"`
	RoundingIncrement   int     `yaml:"rounding_increment"`
	EnforceMarginFloor  *bool   `yaml:"enforce_margin_floor"`
}

// DefaultsConfig holds the simulation inputs used when a caller does not
// supply them.
type DefaultsConfig struct {
	MarkupMultiplier   float64 `yaml:"markup_multiplier"`
	Volume             int     `yaml:"volume"`
	OpexSensitivityPct float64 `yaml:"opex_sensitivity_pct"`
	TargetMarginPct    float64 `yaml:"target_margin_pct"`
}

type CatalogConfig struct {
	SheetID string   `yaml:"sheet_id"`
	Labs    []string `yaml:"labs"`
	DBPath  string   `yaml:"db_path"`
	File    string   `yaml:"file"`
}

func Load(path string) (*Config, error) {
	c, err := LoadUnchecked(path)
	if err != nil {
		return nil, err
	}
	c.applyDefaults()
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// LoadUnchecked loads and merges config, but does not validate it.
// Useful for debugging/printing partial configs.
func LoadUnchecked(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c Config
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return nil, err
	}
	// If policy_file is set, load it and merge in any explicit overrides
	// from c.Policy.
	if c.PolicyFile != "" {
		policyPath := c.PolicyFile
		if !filepath.IsAbs(policyPath) {
			// Prefer interpreting relative paths as relative to the config
			// file directory, falling back to the path as given.
			cand := filepath.Join(filepath.Dir(path), policyPath)
			if _, err := os.Stat(cand); err == nil {
				policyPath = cand
			}
		}
		loaded, err := LoadPolicyFile(policyPath)
		if err != nil {
			return nil, err
		}
		c.Policy = MergePolicy(loaded, c.Policy)
	}
	return &c, nil
}

func (c *Config) applyDefaults() {
	if c.Defaults.MarkupMultiplier == 0 {
		c.Defaults.MarkupMultiplier = 1.5
	}
	if c.Defaults.Volume == 0 {
		c.Defaults.Volume = 100
	}
	if c.Defaults.TargetMarginPct == 0 {
		c.Defaults.TargetMarginPct = model.DefaultTargetMarginPct
	}
}

func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	if err := c.Policy.ToModelPolicy().Validate(); err != nil {
		return fmt.Errorf("policy config invalid: %w", err)
	}
	if err := c.Defaults.ToScenarioInputs().Validate(); err != nil {
		return fmt.Errorf("defaults config invalid: %w", err)
	}
	return nil
}

// ToModelPolicy converts the YAML shape into an engine policy, filling
// unset fields from the default policy.
func (p PolicyConfig) ToModelPolicy() model.PricingPolicy {
	out := model.DefaultPolicy()
	if p.OpexGrowthModel != "" {
		out.OpexGrowthModel = p.OpexGrowthModel
	}
	if p.OpexGrowthRate != 0 {
		out.OpexGrowthRate = p.OpexGrowthRate
	}
	if p.OpexReferenceVolume != 0 {
		out.OpexReferenceVolume = p.OpexReferenceVolume
	}
	if p.SensitivityMode != "" {
		out.SensitivityMode = p.SensitivityMode
	}
	if p.RoundingIncrement != 0 {
		out.RoundingIncrement = p.RoundingIncrement
	}
	if p.EnforceMarginFloor != nil {
		out.EnforceMarginFloor = *p.EnforceMarginFloor
	}
	return out
}

// ToScenarioInputs converts configured defaults into engine inputs.
func (d DefaultsConfig) ToScenarioInputs() model.ScenarioInputs {
	return model.ScenarioInputs{
		MarkupMultiplier:   d.MarkupMultiplier,
		Volume:             d.Volume,
		OpexSensitivityPct: d.OpexSensitivityPct,
		TargetMarginPct:    d.TargetMarginPct,
	}
}

type policyFileWrapper struct {
	Policy PolicyConfig `yaml:"policy"`
}

// LoadPolicyFile reads a standalone policy preset YAML.
func LoadPolicyFile(path string) (PolicyConfig, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return PolicyConfig{}, err
	}
	var w policyFileWrapper
	if err := yaml.Unmarshal(raw, &w); err != nil {
		return PolicyConfig{}, err
	}
	return w.Policy, nil
}

// MergePolicy overlays non-zero fields from override onto base. Used when a
// policy file provides the preset and the config or request overrides parts
// of it.
func MergePolicy(base, override PolicyConfig) PolicyConfig {
	out := base
	if override.Name != "" {
		out.Name = override.Name
	}
	if override.OpexGrowthModel != "" {
		out.OpexGrowthModel = override.OpexGrowthModel
	}
	if override.OpexGrowthRate != 0 {
		out.OpexGrowthRate = override.OpexGrowthRate
	}
	if override.OpexReferenceVolume != 0 {
		out.OpexReferenceVolume = override.OpexReferenceVolume
	}
	if override.SensitivityMode != "" {
		out.SensitivityMode = override.SensitivityMode
	}
	if override.RoundingIncrement != 0 {
		out.RoundingIncrement = override.RoundingIncrement
	}
	if override.EnforceMarginFloor != nil {
		out.EnforceMarginFloor = override.EnforceMarginFloor
	}
	return out
}
