package models

import (
	"encoding/json"
	"errors"
	"math"
	"strings"

	"bess-degradation/internal/config"
	"bess-degradation/internal/lifetime"
	"bess-degradation/internal/model"
)

// SimulateRequest represents the request body for a lifetime simulation.
// Unset fields take the model defaults (or the preset's AC efficiency).
type SimulateRequest struct {
	Name         *string  `json:"name,omitempty"`
	Manufacturer string   `json:"manufacturer,omitempty"`
	CapacityKWh  *float64 `json:"capacity_kwh"`
	PowerKW      *float64 `json:"power_kw"`
	TemperatureC *float64 `json:"temperature_celsius"`
	DoD          *float64 `json:"dod"`
	CyclesPerDay *float64 `json:"cycles_per_day"`
	CRate        *float64 `json:"c_rate"`
	SoCMin       *float64 `json:"soc_min"`
	SoCMax       *float64 `json:"soc_max"`
	EOLThreshold *float64 `json:"eol_threshold"`
	StorageDays  *int     `json:"pre_operation_storage_days,omitempty"`
	ACEfficiency *float64 `json:"ac_efficiency,omitempty"`
	DCEfficiency *float64 `json:"dc_efficiency,omitempty"`

	HorizonYears   int  `json:"horizon_years,omitempty"`
	IncludeRecords bool `json:"include_records,omitempty"`
}

// CompareRequest runs several named variations side by side.
type CompareRequest struct {
	Scenarios []NamedScenario `json:"scenarios" binding:"required,min=1"`
}

// NamedScenario is one variation in a comparison.
type NamedScenario struct {
	Name string `json:"name"`
	SimulateRequest
}

// Scenario converts the request into a runnable scenario. Capacity and power
// have no defaults and are reported as missing.
func (r SimulateRequest) Scenario(name string) (lifetime.Scenario, error) {
	if r.CapacityKWh == nil {
		return lifetime.Scenario{}, missing("capacity_kwh")
	}
	if r.PowerKW == nil {
		return lifetime.Scenario{}, missing("power_kw")
	}
	sys := config.SystemConfig{
		Name:             r.Name,
		CapacityKWh:      r.CapacityKWh,
		PowerKW:          r.PowerKW,
		TemperatureC:     r.TemperatureC,
		DepthOfDischarge: r.DoD,
		CyclesPerDay:     r.CyclesPerDay,
		ACEfficiency:     r.ACEfficiency,
		DCEfficiency:     r.DCEfficiency,
		CRate:            r.CRate,
		SoCMin:           r.SoCMin,
		SoCMax:           r.SoCMax,
		StorageDays:      r.StorageDays,
		EOLThreshold:     r.EOLThreshold,
	}
	return lifetime.Scenario{
		Name:         name,
		Manufacturer: r.Manufacturer,
		Config:       sys.ToModel(r.Manufacturer != ""),
		HorizonYears: r.HorizonYears,
	}, nil
}

func missing(field string) error {
	rng, _ := model.FieldRange(field)
	return &model.ValidationError{Field: field, Min: rng.Min, Max: rng.Max, Reason: "missing"}
}

// jsonToField maps request keys that differ from the configuration field names.
var jsonToField = map[string]string{
	"dod": "depth_of_discharge",
}

// DecodeError turns a JSON type mismatch on a numeric field into a
// *model.ValidationError naming the field and its range. Other errors are
// returned unchanged.
func DecodeError(err error) error {
	var te *json.UnmarshalTypeError
	if !errors.As(err, &te) || te.Field == "" {
		return err
	}
	field := te.Field
	if i := strings.LastIndexByte(field, '.'); i >= 0 {
		field = field[i+1:]
	}
	if f, ok := jsonToField[field]; ok {
		field = f
	}
	rng, ok := model.FieldRange(field)
	if !ok && field == "horizon_years" {
		rng, ok = model.Range{Min: 1, Max: lifetime.MaxHorizonYears}, true
	}
	if !ok {
		return err
	}
	return &model.ValidationError{
		Field:  field,
		Value:  math.NaN(),
		Min:    rng.Min,
		Max:    rng.Max,
		Reason: "not a number (got " + te.Value + ")",
	}
}
