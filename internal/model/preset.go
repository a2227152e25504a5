package model

// ManufacturerPreset holds published defaults for an LFP vendor.
// Degradation behaviour is chemistry-wide, so presets only carry specs.
type ManufacturerPreset struct {
	Key                 string  `yaml:"key" json:"key"`
	Name                string  `yaml:"name" json:"name"`
	Chemistry           string  `yaml:"chemistry" json:"chemistry"`
	TypicalCycleLife    int     `yaml:"typical_cycle_life" json:"typical_cycle_life"`
	WarrantyYears       int     `yaml:"warranty_years" json:"warranty_years"`
	TypicalACEfficiency float64 `yaml:"typical_ac_efficiency" json:"typical_ac_efficiency"`
	Notes               string  `yaml:"notes" json:"notes"`
}
