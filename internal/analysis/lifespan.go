package analysis

import (
	"sort"

	"bess-degradation/internal/lifetime"
	"bess-degradation/internal/model"

	"gonum.org/v1/gonum/stat"
)

// Lifespan is a scenario-level summary you can use for ranking.
type Lifespan struct {
	Name         string              `json:"name"`
	Manufacturer string              `json:"manufacturer,omitempty"`
	Mode         model.OperationMode `json:"mode"`

	YearsToEOL       lifetime.EOLYear `json:"years_to_eol"`
	TotalCyclesToEOL float64          `json:"total_cycles_to_eol"`
	SimulatedYears   int              `json:"simulated_years"`

	InitialSOH float64 `json:"initial_soh"`
	FinalSOH   float64 `json:"final_soh"`

	// Annual fade statistics over service years, in percent.
	MeanAnnualFade float64 `json:"mean_annual_fade_percent"`
	P05AnnualFade  float64 `json:"p05_annual_fade_percent"`
	P95AnnualFade  float64 `json:"p95_annual_fade_percent"`
	MaxAnnualFade  float64 `json:"max_annual_fade_percent"`

	// TrendFadeRate is the least-squares SOH slope, percentage points per year.
	TrendFadeRate float64 `json:"trend_fade_rate"`

	Warnings int `json:"warnings"`
}

// ComputeLifespan summarizes one simulation result.
func ComputeLifespan(name string, r *lifetime.SimulationResult) Lifespan {
	l := Lifespan{Name: name}
	if r == nil || len(r.Records) == 0 {
		return l
	}
	if l.Name == "" {
		l.Name = r.Config.Name
	}
	l.Manufacturer = r.Config.Manufacturer
	l.Mode = r.Mode
	l.YearsToEOL = r.YearsToEOL
	l.TotalCyclesToEOL = r.TotalCyclesToEOL
	l.SimulatedYears = r.Final().Year
	l.InitialSOH = r.Records[0].SOH
	l.FinalSOH = r.Final().SOH
	l.Warnings = len(r.Warnings)

	fades := make([]float64, 0, len(r.Records)-1)
	for _, rec := range r.Records[1:] {
		fades = append(fades, rec.AnnualDegradationPercent)
	}
	if len(fades) > 0 {
		sort.Float64s(fades)
		l.MeanAnnualFade = stat.Mean(fades, nil)
		l.P05AnnualFade = stat.Quantile(0.05, stat.Empirical, fades, nil)
		l.P95AnnualFade = stat.Quantile(0.95, stat.Empirical, fades, nil)
		l.MaxAnnualFade = fades[len(fades)-1]
	}
	if rate, ok := r.AverageFadeRate(); ok {
		l.TrendFadeRate = rate
	}
	return l
}
