package lifetime

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSummarizeReached(t *testing.T) {
	c := tampico()
	c.Name = "Tampico 2028 kWh"
	s := Summarize(mustEngine(t, c).SimulateLifetime())

	assert.Contains(t, s, "Tampico 2028 kWh")
	assert.Contains(t, s, "NOMINAL (identity factors)")
	assert.Contains(t, s, "bin 26-35C")
	assert.Contains(t, s, "Years to EOL:           3")
	assert.Contains(t, s, "Total cycles to EOL:    1095")
	assert.NotContains(t, s, "WARNINGS")
}

func TestSummarizeNotReached(t *testing.T) {
	c := tampico()
	c.TemperatureC = 25
	c.DepthOfDischarge = 0.7
	c.CyclesPerDay = 0.5
	c.EOLThreshold = 0.7
	s := Summarize(mustEngine(t, c, WithHorizon(3)).SimulateLifetime())

	assert.Contains(t, s, "BESS LFP System")
	assert.Contains(t, s, "not reached within 3 years")
}
