package models

import (
	"bess-degradation/internal/analysis"
	"bess-degradation/internal/lifetime"
	"bess-degradation/internal/model"
)

// SimulateResponse represents the response from a simulation run
type SimulateResponse struct {
	ID      string                  `json:"id"`
	Summary Summary                 `json:"summary"`
	CSVPath string                  `json:"csv_path"` // file name for /download/:file
	Records []lifetime.YearlyRecord `json:"records,omitempty"`
}

// Summary contains the headline figures of a simulation
type Summary struct {
	SystemName    string  `json:"system_name"`
	Manufacturer  string  `json:"manufacturer,omitempty"`
	CapacityKWh   float64 `json:"capacity_kwh"`
	ACCapacityKWh float64 `json:"ac_capacity_kwh"`
	PowerKW       float64 `json:"power_kw"`

	TemperatureC   float64 `json:"temperature_celsius"`
	TemperatureBin string  `json:"temperature_bin"`
	DoD            float64 `json:"dod"`
	CyclesPerDay   float64 `json:"cycles_per_day"`
	CyclesPerYear  float64 `json:"cycles_per_year"`
	CRate          float64 `json:"c_rate"`
	SoCMin         float64 `json:"soc_min"`
	SoCMax         float64 `json:"soc_max"`
	ACEfficiency   float64 `json:"ac_efficiency"`

	StorageDays        int     `json:"pre_operation_storage_days"`
	StorageFadePercent float64 `json:"storage_fade_percent"`

	OperationMode  string `json:"operation_mode"`
	FactorProvider string `json:"factor_provider"`

	EOLThreshold     float64          `json:"eol_threshold"`
	HorizonYears     int              `json:"horizon_years"`
	YearsToEOL       lifetime.EOLYear `json:"years_to_eol"`
	TotalCyclesToEOL float64          `json:"total_cycles_to_eol"`
	Year1SOH         float64          `json:"year_1_soh"`
	FinalSOH         float64          `json:"final_soh"`
	AverageFadeRate  float64          `json:"average_fade_rate"`

	Warnings []string `json:"warnings,omitempty"`
	Report   string   `json:"report"`
}

// NewSummary flattens a result for the response body.
func NewSummary(r *lifetime.SimulationResult) Summary {
	c := r.Config
	s := Summary{
		SystemName:         c.Name,
		Manufacturer:       c.Manufacturer,
		CapacityKWh:        c.CapacityKWh,
		ACCapacityKWh:      c.ACCapacityKWh(),
		PowerKW:            c.PowerKW,
		TemperatureC:       c.TemperatureC,
		TemperatureBin:     r.TemperatureBin,
		DoD:                c.DepthOfDischarge,
		CyclesPerDay:       c.CyclesPerDay,
		CyclesPerYear:      c.CyclesPerYear(),
		CRate:              c.CRate,
		SoCMin:             c.SoCMin,
		SoCMax:             c.SoCMax,
		ACEfficiency:       c.ACEfficiency,
		StorageDays:        c.StorageDays,
		StorageFadePercent: r.StorageFade * 100,
		OperationMode:      string(r.Mode),
		FactorProvider:     r.FactorProvider,
		EOLThreshold:       r.EOLThreshold,
		HorizonYears:       r.HorizonYears,
		YearsToEOL:         r.YearsToEOL,
		TotalCyclesToEOL:   r.TotalCyclesToEOL,
		FinalSOH:           r.Final().SOH,
		Report:             lifetime.Summarize(r),
	}
	if y1, ok := r.Year(1); ok {
		s.Year1SOH = y1.SOH
	}
	if rate, ok := r.AverageFadeRate(); ok {
		s.AverageFadeRate = rate
	}
	for _, w := range r.Warnings {
		s.Warnings = append(s.Warnings, w.String())
	}
	return s
}

// CompareResponse represents the response from a comparison
type CompareResponse struct {
	Rankings []analysis.RankedLifespan `json:"rankings"`
	Failed   []ScenarioError           `json:"failed,omitempty"`
}

// ScenarioError reports a variation that could not be simulated
type ScenarioError struct {
	Name string `json:"name"`
	ErrorResponse
}

// PresetsResponse lists the registered manufacturer presets
type PresetsResponse struct {
	Presets []model.ManufacturerPreset `json:"presets"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error       string   `json:"error"`
	Detail      string   `json:"detail,omitempty"`
	Field       string   `json:"field,omitempty"`
	Suggestions []string `json:"suggestions,omitempty"`
}
