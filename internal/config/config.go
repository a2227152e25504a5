package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"bess-degradation/internal/lifetime"
	"bess-degradation/internal/logging"
	"bess-degradation/internal/model"
	"bess-degradation/internal/presets"

	"gopkg.in/yaml.v3"
)

// Config is one scenario on disk (YAML).
type Config struct {
	Name string `yaml:"name"`
	// Optional: load system parameters from a separate YAML (e.g. sites/*.yaml).
	// If both SystemFile and System are provided, System overrides SystemFile.
	SystemFile   string       `yaml:"system_file"`
	Manufacturer string       `yaml:"manufacturer"`
	System       SystemConfig `yaml:"system"`
	HorizonYears int          `yaml:"horizon_years"`
}

// SystemConfig mirrors model.SystemConfiguration with optional fields, so a
// file can set a value to zero (soc_min: 0, pre_operation_storage_days: 0).
type SystemConfig struct {
	Name             *string  `yaml:"name"`
	CapacityKWh      *float64 `yaml:"capacity_kwh"`
	PowerKW          *float64 `yaml:"power_kw"`
	TemperatureC     *float64 `yaml:"temperature_celsius"`
	DepthOfDischarge *float64 `yaml:"depth_of_discharge"`
	CyclesPerDay     *float64 `yaml:"cycles_per_day"`
	ACEfficiency     *float64 `yaml:"ac_efficiency"`
	DCEfficiency     *float64 `yaml:"dc_efficiency"`
	CRate            *float64 `yaml:"c_rate"`
	SoCMin           *float64 `yaml:"soc_min"`
	SoCMax           *float64 `yaml:"soc_max"`
	StorageDays      *int     `yaml:"pre_operation_storage_days"`
	EOLThreshold     *float64 `yaml:"eol_threshold"`
}

// SweepFile is a list of named scenarios run together.
type SweepFile struct {
	Scenarios []Config `yaml:"scenarios"`
}

// Load reads, merges and validates a scenario. A nil registry uses the
// embedded presets.
func Load(path string, reg *presets.Registry) (*Config, error) {
	c, err := LoadUnchecked(path)
	if err != nil {
		return nil, err
	}
	if err := c.Validate(reg); err != nil {
		return nil, err
	}
	return c, nil
}

// LoadUnchecked loads and merges a scenario, but does not validate it.
func LoadUnchecked(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c Config
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := c.resolveSystemFile(filepath.Dir(path)); err != nil {
		return nil, err
	}
	return &c, nil
}

// LoadSweep reads a sweep file. Scenarios are not validated here: a sweep
// reports failures per scenario.
func LoadSweep(path string) ([]Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var f SweepFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if len(f.Scenarios) == 0 {
		return nil, fmt.Errorf("%s: no scenarios", path)
	}
	dir := filepath.Dir(path)
	for i := range f.Scenarios {
		if f.Scenarios[i].Name == "" {
			f.Scenarios[i].Name = fmt.Sprintf("scenario-%d", i+1)
		}
		if err := f.Scenarios[i].resolveSystemFile(dir); err != nil {
			return nil, fmt.Errorf("scenario %q: %w", f.Scenarios[i].Name, err)
		}
	}
	return f.Scenarios, nil
}

func (c *Config) resolveSystemFile(dir string) error {
	if c.SystemFile == "" {
		return nil
	}
	systemPath := c.SystemFile
	if !filepath.IsAbs(systemPath) {
		// Prefer paths relative to the scenario file, falling back to cwd.
		cand := filepath.Join(dir, systemPath)
		if _, err := os.Stat(cand); err == nil {
			systemPath = cand
		}
	}
	loaded, err := loadSystemFile(systemPath)
	if err != nil {
		return err
	}
	c.System = MergeSystem(loaded, c.System)
	return nil
}

// Validate builds the engine the scenario describes.
func (c *Config) Validate(reg *presets.Registry) error {
	if c == nil {
		return errors.New("config is nil")
	}
	if _, err := c.Scenario().Engine(reg, lifetime.WithLogger(logging.NopLogger{})); err != nil {
		return fmt.Errorf("scenario config invalid: %w", err)
	}
	return nil
}

// Scenario converts the file shape into a runnable scenario.
func (c *Config) Scenario() lifetime.Scenario {
	return lifetime.Scenario{
		Name:         c.Name,
		Manufacturer: c.Manufacturer,
		Config:       c.System.ToModel(c.Manufacturer != ""),
		HorizonYears: c.HorizonYears,
	}
}

// ToModel overlays the set fields onto the defaults. With a preset, an unset
// AC efficiency stays zero so the preset value applies.
func (s SystemConfig) ToModel(fromPreset bool) model.SystemConfiguration {
	out := model.DefaultSystemConfiguration()
	if fromPreset {
		out.ACEfficiency = 0
	}
	setString(&out.Name, s.Name)
	setFloat(&out.CapacityKWh, s.CapacityKWh)
	setFloat(&out.PowerKW, s.PowerKW)
	setFloat(&out.TemperatureC, s.TemperatureC)
	setFloat(&out.DepthOfDischarge, s.DepthOfDischarge)
	setFloat(&out.CyclesPerDay, s.CyclesPerDay)
	setFloat(&out.ACEfficiency, s.ACEfficiency)
	setFloat(&out.DCEfficiency, s.DCEfficiency)
	setFloat(&out.CRate, s.CRate)
	setFloat(&out.SoCMin, s.SoCMin)
	setFloat(&out.SoCMax, s.SoCMax)
	if s.StorageDays != nil {
		out.StorageDays = *s.StorageDays
	}
	setFloat(&out.EOLThreshold, s.EOLThreshold)
	return out
}

type systemFileWrapper struct {
	System SystemConfig `yaml:"system"`
}

func loadSystemFile(path string) (SystemConfig, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return SystemConfig{}, err
	}
	var w systemFileWrapper
	if err := yaml.Unmarshal(raw, &w); err != nil {
		return SystemConfig{}, fmt.Errorf("parse %s: %w", path, err)
	}
	return w.System, nil
}

// MergeSystem overlays the set fields of override onto base.
func MergeSystem(base, override SystemConfig) SystemConfig {
	out := base
	if override.Name != nil {
		out.Name = override.Name
	}
	if override.CapacityKWh != nil {
		out.CapacityKWh = override.CapacityKWh
	}
	if override.PowerKW != nil {
		out.PowerKW = override.PowerKW
	}
	if override.TemperatureC != nil {
		out.TemperatureC = override.TemperatureC
	}
	if override.DepthOfDischarge != nil {
		out.DepthOfDischarge = override.DepthOfDischarge
	}
	if override.CyclesPerDay != nil {
		out.CyclesPerDay = override.CyclesPerDay
	}
	if override.ACEfficiency != nil {
		out.ACEfficiency = override.ACEfficiency
	}
	if override.DCEfficiency != nil {
		out.DCEfficiency = override.DCEfficiency
	}
	if override.CRate != nil {
		out.CRate = override.CRate
	}
	if override.SoCMin != nil {
		out.SoCMin = override.SoCMin
	}
	if override.SoCMax != nil {
		out.SoCMax = override.SoCMax
	}
	if override.StorageDays != nil {
		out.StorageDays = override.StorageDays
	}
	if override.EOLThreshold != nil {
		out.EOLThreshold = override.EOLThreshold
	}
	return out
}

func setFloat(dst *float64, v *float64) {
	if v != nil {
		*dst = *v
	}
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
