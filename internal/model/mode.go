package model

// OperationMode selects whether mechanistic correction factors apply.
// Keep these values stable; they are intended for CSV and JSON output.
type OperationMode string

const (
	ModeNominal OperationMode = "nominal"
	ModeExtreme OperationMode = "extreme"
)

// ClassifyMode is nominal iff 20 <= T <= 35 °C, 0.70 <= DoD <= 1.0 and C-rate < 0.8.
func ClassifyMode(temperatureC, dod, cRate float64) OperationMode {
	switch {
	case temperatureC < 20 || temperatureC > 35:
		return ModeExtreme
	case dod < 0.70 || dod > 1.0:
		return ModeExtreme
	case !(cRate < 0.8):
		return ModeExtreme
	default:
		return ModeNominal
	}
}

// Mode classifies a configuration; only temperature, DoD and C-rate are read.
func (c SystemConfiguration) Mode() OperationMode {
	return ClassifyMode(c.TemperatureC, c.DepthOfDischarge, c.CRate)
}
