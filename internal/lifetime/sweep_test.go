package lifetime

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"bess-degradation/internal/logging"
	"bess-degradation/internal/model"
	"bess-degradation/internal/presets"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSweepMatchesStandaloneRuns(t *testing.T) {
	var scenarios []Scenario
	for i, temp := range []float64{10, 20, 25, 30, 35, 40, 45, 50} {
		c := tampico()
		c.TemperatureC = temp
		c.CyclesPerDay = 0.5 + float64(i)*0.25
		scenarios = append(scenarios, Scenario{Name: fmt.Sprintf("t%.0f", temp), Config: c, HorizonYears: 30})
	}
	scenarios = append(scenarios, Scenario{Name: "preset", Manufacturer: "byd", Config: tampico()})

	results, err := Sweep(context.Background(), presets.Default(), scenarios, WithLogger(logging.NopLogger{}))
	require.NoError(t, err)
	require.Len(t, results, len(scenarios))

	for i, res := range results {
		assert.Equal(t, scenarios[i].Name, res.Scenario.Name)
		require.NoError(t, res.Err)

		eng, err := scenarios[i].Engine(presets.Default(), WithLogger(logging.NopLogger{}))
		require.NoError(t, err)
		assert.Equal(t, eng.SimulateLifetime(), res.Result)
	}
	assert.Equal(t, 30, results[0].Result.HorizonYears)
	assert.Equal(t, "BYD Co., Ltd.", results[len(results)-1].Result.Config.Manufacturer)
}

func TestSweepKeepsPerScenarioErrors(t *testing.T) {
	bad := tampico()
	bad.PowerKW = 10

	results, err := Sweep(context.Background(), nil, []Scenario{
		{Name: "ok", Config: tampico()},
		{Name: "bad", Config: bad},
		{Name: "typo", Manufacturer: "gotoin", Config: tampico()},
	}, WithLogger(logging.NopLogger{}))
	require.NoError(t, err)

	assert.NoError(t, results[0].Err)
	assert.NotNil(t, results[0].Result)

	assert.True(t, errors.Is(results[1].Err, model.ErrValidation))
	assert.Nil(t, results[1].Result)

	assert.True(t, errors.Is(results[2].Err, model.ErrUnknownManufacturer))
}

func TestSweepCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Sweep(ctx, nil, []Scenario{{Name: "a", Config: tampico()}})
	assert.ErrorIs(t, err, context.Canceled)
}
