package lifetime

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEOLYearJSON(t *testing.T) {
	b, err := json.Marshal(EOLYear{Year: 12, Reached: true})
	require.NoError(t, err)
	assert.JSONEq(t, `12`, string(b))

	b, err = json.Marshal(EOLYear{})
	require.NoError(t, err)
	assert.JSONEq(t, `"not reached"`, string(b))

	var y EOLYear
	require.NoError(t, json.Unmarshal([]byte(`7`), &y))
	assert.Equal(t, EOLYear{Year: 7, Reached: true}, y)
	require.NoError(t, json.Unmarshal([]byte(`"not reached"`), &y))
	assert.Equal(t, EOLYear{}, y)
	assert.Error(t, json.Unmarshal([]byte(`"soon"`), &y))
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "not_started", StateNotStarted.String())
	assert.Equal(t, "eol_reached", StateEOLReached.String())
	assert.Equal(t, "completed", StateCompleted.String())
	assert.Equal(t, "unknown", State(42).String())
}

func TestResultAccessors(t *testing.T) {
	r := mustEngine(t, tampico()).SimulateLifetime()

	y2, ok := r.Year(2)
	require.True(t, ok)
	assert.Equal(t, 2, y2.Year)
	_, ok = r.Year(10)
	assert.False(t, ok)

	assert.Len(t, r.SOHSeries(), len(r.Records))

	rate, ok := r.AverageFadeRate()
	require.True(t, ok)
	assert.InDelta(t, 8.8, rate, 0.5)
}
