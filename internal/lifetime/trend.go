package lifetime

import (
	"gonum.org/v1/gonum/stat"
)

// AverageFadeRate is the least-squares SOH slope over the simulated years,
// in percentage points lost per year. ok is false with fewer than two records.
func (r *SimulationResult) AverageFadeRate() (rate float64, ok bool) {
	if len(r.Records) < 2 {
		return 0, false
	}
	xs := make([]float64, len(r.Records))
	ys := make([]float64, len(r.Records))
	for i, rec := range r.Records {
		xs[i] = float64(rec.Year)
		ys[i] = rec.SOH * 100
	}
	_, beta := stat.LinearRegression(xs, ys, nil, false)
	return -beta, true
}
