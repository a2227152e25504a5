package analysis

import (
	"sort"

	"bess-degradation/internal/lifetime"
)

type RankedLifespan struct {
	Rank int `json:"rank"`
	Lifespan
}

// RankByLifespan sorts successful scenarios longest-lived first: by years to
// EOL with "not reached" ranking longest, then by final SOH descending.
// Scenarios that failed to construct are skipped.
func RankByLifespan(results []lifetime.ScenarioResult) []RankedLifespan {
	out := make([]RankedLifespan, 0, len(results))
	for _, res := range results {
		if res.Err != nil || res.Result == nil {
			continue
		}
		out = append(out, RankedLifespan{Lifespan: ComputeLifespan(res.Scenario.Name, res.Result)})
	}
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i].YearsToEOL, out[j].YearsToEOL
		if a.Reached != b.Reached {
			return !a.Reached
		}
		if a.Reached && a.Year != b.Year {
			return a.Year > b.Year
		}
		return out[i].FinalSOH > out[j].FinalSOH
	})
	for i := range out {
		out[i].Rank = i + 1
	}
	return out
}
