package fade

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

const (
	gasConstant        = 8.314   // J/(mol·K)
	activationEnergy   = 40000.0 // J/mol
	kelvinOffset       = 273.15
	ReferenceTempC     = 25.0
	ReferenceCRate     = 0.5
	cRateExponent      = 0.4
	seiCoefficient     = 0.001
	maxFactorCycles    = 20000.0
	ReferenceSoCWindow = 0.85 // 10-95 %
	socSensitivity     = 3.655
	impedanceRate      = 0.035 // per service year
	referenceDCLoss    = 0.05
	thermalSensitivity = 0.1
)

// ArrheniusFactor is the aging time-scale ratio at temperatureC relative to
// 25 °C: 1.75 at 15 °C and 0.36 at 45 °C. Temperature is clipped to [-10, 50] °C.
func ArrheniusFactor(temperatureC float64) float64 {
	tK := clip(temperatureC+kelvinOffset, -10+kelvinOffset, 50+kelvinOffset)
	refK := ReferenceTempC + kelvinOffset
	f := math.Exp(activationEnergy / gasConstant * (1/tK - 1/refK))
	return clip(f, 0.1, 10)
}

// ArrheniusAcceleration is the fade-rate multiplier, the reciprocal of the
// time-scale ratio: exp[(Ea/R)(1/T_ref - 1/T)].
func ArrheniusAcceleration(temperatureC float64) float64 {
	return 1 / ArrheniusFactor(temperatureC)
}

// SEIGrowthFactor grows parabolically with cumulative full cycles.
func SEIGrowthFactor(cycles float64) float64 {
	f := 1 + seiCoefficient*math.Sqrt(clip(cycles, 0, maxFactorCycles))
	return clip(f, 1, 2)
}

// CRateFactor is (c/0.5)^0.4; 1.32 at 1C.
func CRateFactor(cRate float64) float64 {
	ratio := clip(cRate, 0.1, 2.0) / ReferenceCRate
	return clip(math.Pow(ratio, cRateExponent), 0.5, 2)
}

// SoCWindowFactor penalises windows wider than 10-95 %; 1.73 at 0-100 %.
func SoCWindowFactor(socMin, socMax float64) float64 {
	excess := math.Max(0, (socMax-socMin)-ReferenceSoCWindow)
	return clip(math.Exp(socSensitivity*excess), 1, 3)
}

// ImpedanceGrowthFactor compounds with elapsed service years.
func ImpedanceGrowthFactor(serviceYears float64) float64 {
	return clip(math.Exp(impedanceRate*math.Max(0, serviceYears)), 1, 2)
}

// ThermalLossFactor models heat from round-trip losses; 1.1 at 95 % DC efficiency.
func ThermalLossFactor(dcEfficiency float64) float64 {
	loss := 1 - clip(dcEfficiency, 0.85, 1.0)
	return clip(1+(loss/referenceDCLoss)*thermalSensitivity, 0.9, 1.3)
}

// Conditions are the operating inputs a FactorProvider sees for one year.
type Conditions struct {
	TemperatureC     float64
	CRate            float64
	SoCMin           float64
	SoCMax           float64
	DCEfficiency     float64
	CumulativeCycles float64
	ServiceYears     float64
}

// FactorSet holds one multiplicative correction per mechanism.
type FactorSet struct {
	Arrhenius float64 `json:"arrhenius"`
	SEI       float64 `json:"sei"`
	CRate     float64 `json:"c_rate"`
	SoCWindow float64 `json:"soc_window"`
	Impedance float64 `json:"impedance"`
	Thermal   float64 `json:"thermal"`
}

// Identity leaves the base fade unchanged.
func Identity() FactorSet {
	return FactorSet{Arrhenius: 1, SEI: 1, CRate: 1, SoCWindow: 1, Impedance: 1, Thermal: 1}
}

// Product combines the factors multiplicatively.
func (s FactorSet) Product() float64 {
	return floats.Prod([]float64{s.Arrhenius, s.SEI, s.CRate, s.SoCWindow, s.Impedance, s.Thermal})
}

// FactorProvider supplies extreme-mode corrections. Implementations must be
// pure: the same Conditions always yield the same FactorSet.
type FactorProvider interface {
	Name() string
	Factors(c Conditions) FactorSet
}

// ClosedForm is the built-in provider using the approximations above.
type ClosedForm struct{}

func (ClosedForm) Name() string { return "closed-form" }

func (ClosedForm) Factors(c Conditions) FactorSet {
	return FactorSet{
		Arrhenius: ArrheniusAcceleration(c.TemperatureC),
		SEI:       SEIGrowthFactor(c.CumulativeCycles),
		CRate:     CRateFactor(c.CRate),
		SoCWindow: SoCWindowFactor(c.SoCMin, c.SoCMax),
		Impedance: ImpedanceGrowthFactor(c.ServiceYears),
		Thermal:   ThermalLossFactor(c.DCEfficiency),
	}
}

func clip(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
