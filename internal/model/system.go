package model

import (
	"math"
)

// SystemConfiguration defines a BESS installation and how it is operated.
// Units:
// - CapacityKWh: nameplate DC energy, kWh
// - PowerKW: kW
// - TemperatureC: typical cell temperature, °C
// - DepthOfDischarge, efficiencies, SoC bounds, EOLThreshold: fraction 0..1
// - StorageDays: pre-operational (FAT-SAT) storage before commissioning
//
// A value is checked once by Validate and never mutated afterwards.
type SystemConfiguration struct {
	Name         string
	Manufacturer string

	CapacityKWh      float64
	PowerKW          float64
	TemperatureC     float64
	DepthOfDischarge float64
	CyclesPerDay     float64
	ACEfficiency     float64
	DCEfficiency     float64
	CRate            float64
	SoCMin           float64
	SoCMax           float64
	StorageDays      int
	EOLThreshold     float64
}

// DefaultSystemConfiguration returns the operating defaults. Capacity and power
// are left at zero and must be supplied by the caller.
func DefaultSystemConfiguration() SystemConfiguration {
	return SystemConfiguration{
		TemperatureC:     25,
		DepthOfDischarge: 0.95,
		CyclesPerDay:     1.0,
		ACEfficiency:     0.835,
		DCEfficiency:     0.95,
		CRate:            0.5,
		SoCMin:           0.05,
		SoCMax:           0.95,
		StorageDays:      0,
		EOLThreshold:     0.80,
	}
}

// Range is a closed interval [Min, Max].
type Range struct {
	Min float64
	Max float64
}

func (r Range) Contains(v float64) bool {
	// NaN fails both comparisons.
	return v >= r.Min && v <= r.Max
}

type fieldRule struct {
	field string
	rng   Range
	value func(SystemConfiguration) float64
}

// Order matters: Validate reports the first violation in this order.
var fieldRules = []fieldRule{
	{"capacity_kwh", Range{100, 10000}, func(c SystemConfiguration) float64 { return c.CapacityKWh }},
	{"power_kw", Range{50, 5000}, func(c SystemConfiguration) float64 { return c.PowerKW }},
	{"temperature_celsius", Range{-10, 50}, func(c SystemConfiguration) float64 { return c.TemperatureC }},
	{"depth_of_discharge", Range{0.5, 1.0}, func(c SystemConfiguration) float64 { return c.DepthOfDischarge }},
	{"cycles_per_day", Range{0.5, 3.0}, func(c SystemConfiguration) float64 { return c.CyclesPerDay }},
	{"ac_efficiency", Range{0.80, 0.95}, func(c SystemConfiguration) float64 { return c.ACEfficiency }},
	{"dc_efficiency", Range{0.85, 1.0}, func(c SystemConfiguration) float64 { return c.DCEfficiency }},
	{"c_rate", Range{0.1, 2.0}, func(c SystemConfiguration) float64 { return c.CRate }},
	{"soc_min", Range{0, 0.5}, func(c SystemConfiguration) float64 { return c.SoCMin }},
	{"soc_max", Range{0.5, 1.0}, func(c SystemConfiguration) float64 { return c.SoCMax }},
	{"pre_operation_storage_days", Range{0, 365}, func(c SystemConfiguration) float64 { return float64(c.StorageDays) }},
	{"eol_threshold", Range{0.70, 0.90}, func(c SystemConfiguration) float64 { return c.EOLThreshold }},
}

// FieldRange returns the valid range for a configuration field by its wire name.
func FieldRange(field string) (Range, bool) {
	for _, r := range fieldRules {
		if r.field == field {
			return r.rng, true
		}
	}
	return Range{}, false
}

// Validate checks every field against its closed range. It never clips or
// substitutes defaults; the first offending field is returned as *ValidationError.
func (c SystemConfiguration) Validate() error {
	for _, r := range fieldRules {
		v := r.value(c)
		if math.IsNaN(v) {
			return &ValidationError{Field: r.field, Value: v, Min: r.rng.Min, Max: r.rng.Max, Reason: "not a number"}
		}
		if !r.rng.Contains(v) {
			return &ValidationError{Field: r.field, Value: v, Min: r.rng.Min, Max: r.rng.Max}
		}
	}
	return nil
}

// SoCWindow is the usable state-of-charge span.
func (c SystemConfiguration) SoCWindow() float64 {
	return c.SoCMax - c.SoCMin
}

// CyclesPerYear assumes 365 operating days.
func (c SystemConfiguration) CyclesPerYear() float64 {
	return c.CyclesPerDay * 365
}

// ACCapacityKWh is the nameplate capacity seen at the AC terminals.
func (c SystemConfiguration) ACCapacityKWh() float64 {
	return c.CapacityKWh * c.ACEfficiency
}
