package fade

// Bi-phasic cycling constants for LFP: rapid SEI formation for the first
// three equivalent years, then a slow steady-state slope.
const (
	Phase1Rate      = 0.0545 // per equivalent year
	Phase2Rate      = 0.0038 // per equivalent year
	TransitionYears = 3.0
	ReferenceDoD    = 0.95
	ReferenceCycles = 1.0 // cycles per day
	phase2Intercept = Phase1Rate * TransitionYears
)

// CyclingModel is the empirical bi-phasic cycling fade curve.
type CyclingModel struct {
	DoD          float64
	CyclesPerDay float64
}

// DoDFactor normalises depth of discharge to the 95 % reference.
func (m CyclingModel) DoDFactor() float64 {
	return m.DoD / ReferenceDoD
}

// EffectiveYears converts calendar years to reference-cycling years, so two
// cycles a day reach the phase transition in half the calendar time.
func (m CyclingModel) EffectiveYears(calendarYears float64) float64 {
	if calendarYears <= 0 {
		return 0
	}
	return calendarYears * m.CyclesPerDay / ReferenceCycles
}

// BaseFade is cumulative cycling fade after calendarYears, before any
// mechanistic correction. It is continuous and non-decreasing.
func (m CyclingModel) BaseFade(calendarYears float64) float64 {
	return BiPhasic(m.EffectiveYears(calendarYears), m.DoDFactor())
}

// BiPhasic evaluates the two-regime curve at effective years.
func BiPhasic(effectiveYears, dodFactor float64) float64 {
	if effectiveYears <= 0 {
		return 0
	}
	if effectiveYears < TransitionYears {
		return Phase1Rate * effectiveYears * dodFactor
	}
	return (phase2Intercept + Phase2Rate*(effectiveYears-TransitionYears)) * dodFactor
}

// Fade applies a factor product to the base fade and clamps the result.
func (m CyclingModel) Fade(calendarYears, factorProduct float64) Outcome {
	return bounded(m.BaseFade(calendarYears) * factorProduct)
}
