package lifetime

import (
	"encoding/json"
	"fmt"
	"strconv"

	"bess-degradation/internal/fade"
	"bess-degradation/internal/model"
)

// Degradation sources written to the ledger.
const (
	SourceStorage = "FAT-SAT pre-storage"
	SourceService = "cycling + calendar"
)

// State is the engine's position in a simulation run.
type State int

const (
	StateNotStarted State = iota
	StateSimulating
	StateEOLReached
	StateCompleted
)

func (s State) String() string {
	switch s {
	case StateNotStarted:
		return "not_started"
	case StateSimulating:
		return "simulating"
	case StateEOLReached:
		return "eol_reached"
	case StateCompleted:
		return "completed"
	default:
		return "unknown"
	}
}

// YearlyRecord is one row of the SOH trajectory. Year 0 is the baseline after
// pre-operational storage.
type YearlyRecord struct {
	Year             int     `json:"year"`
	CumulativeCycles float64 `json:"cumulative_cycles"`

	CalendarFade float64 `json:"calendar_fade"`
	CyclingFade  float64 `json:"cycling_fade"`

	CombinedDegradationPercent float64 `json:"combined_degradation_percent"`
	AnnualDegradationPercent   float64 `json:"annual_degradation_percent"`

	SOH                 float64 `json:"soh"`
	ResidualCapacityKWh float64 `json:"residual_capacity_kwh"`
	ACCapacityKWh       float64 `json:"ac_capacity_kwh"`

	Source  string         `json:"source"`
	Factors fade.FactorSet `json:"factors"`
}

// EOLYear is the first whole year with SOH below the threshold, or not reached.
type EOLYear struct {
	Year    int
	Reached bool
}

const notReached = "not reached"

func (y EOLYear) String() string {
	if !y.Reached {
		return notReached
	}
	return strconv.Itoa(y.Year)
}

// MarshalJSON encodes a reached year as a number and otherwise as "not reached".
func (y EOLYear) MarshalJSON() ([]byte, error) {
	if !y.Reached {
		return json.Marshal(notReached)
	}
	return json.Marshal(y.Year)
}

func (y *EOLYear) UnmarshalJSON(b []byte) error {
	var n int
	if err := json.Unmarshal(b, &n); err == nil {
		*y = EOLYear{Year: n, Reached: true}
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil || s != notReached {
		return fmt.Errorf("invalid years_to_eol %s", string(b))
	}
	*y = EOLYear{}
	return nil
}

// DegeneracyWarning flags a value clamped into range: the empirical model was
// pushed outside the conditions it was fit for.
type DegeneracyWarning struct {
	Year      int     `json:"year"`
	Component string  `json:"component"`
	Raw       float64 `json:"raw"`
	Clamped   float64 `json:"clamped"`
}

func (w DegeneracyWarning) String() string {
	return fmt.Sprintf("year %d: %s fade %.4f clamped to %.4f", w.Year, w.Component, w.Raw, w.Clamped)
}

// SimulationResult is owned by the caller; the engine keeps no reference.
type SimulationResult struct {
	Config         model.SystemConfiguration
	Mode           model.OperationMode
	FactorProvider string
	TemperatureBin string
	EOLThreshold   float64
	HorizonYears   int

	StorageFade      float64
	Records          []YearlyRecord
	YearsToEOL       EOLYear
	TotalCyclesToEOL float64
	FinalState       State
	Warnings         []DegeneracyWarning
}

// Final returns the last simulated year.
func (r *SimulationResult) Final() YearlyRecord {
	return r.Records[len(r.Records)-1]
}

// Year returns the record for a year index, if simulated.
func (r *SimulationResult) Year(year int) (YearlyRecord, bool) {
	if year < 0 || year >= len(r.Records) {
		return YearlyRecord{}, false
	}
	return r.Records[year], true
}

// SOHSeries returns soh per year, year 0 first.
func (r *SimulationResult) SOHSeries() []float64 {
	out := make([]float64, len(r.Records))
	for i, rec := range r.Records {
		out[i] = rec.SOH
	}
	return out
}
