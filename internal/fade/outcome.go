package fade

// Outcome is a fade fraction clamped to [0, 1]. Raw keeps the unclamped value
// so callers can flag parameter combinations the empirical model was not fit for.
type Outcome struct {
	Value float64
	Raw   float64
}

// Degenerate reports whether clamping changed the value.
func (o Outcome) Degenerate() bool {
	return o.Raw != o.Value
}

func bounded(raw float64) Outcome {
	v := raw
	if v < 0 {
		v = 0
	}
	if v > 1 {
		v = 1
	}
	return Outcome{Value: v, Raw: raw}
}
