package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"bess-degradation/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
	return p
}

func TestLoadScenarioOverlaysDefaults(t *testing.T) {
	dir := t.TempDir()
	p := writeFile(t, dir, "tampico.yaml", `
name: tampico
horizon_years: 30
system:
  name: Tampico
  capacity_kwh: 2028
  power_kw: 500
  temperature_celsius: 30
  soc_min: 0
`)
	c, err := Load(p, nil)
	require.NoError(t, err)

	sc := c.Scenario()
	assert.Equal(t, "tampico", sc.Name)
	assert.Equal(t, 30, sc.HorizonYears)

	want := model.DefaultSystemConfiguration()
	want.Name = "Tampico"
	want.CapacityKWh = 2028
	want.PowerKW = 500
	want.TemperatureC = 30
	want.SoCMin = 0
	assert.Equal(t, want, sc.Config)
}

func TestLoadWithPresetLeavesACEfficiencyToPreset(t *testing.T) {
	dir := t.TempDir()
	p := writeFile(t, dir, "catl.yaml", `
manufacturer: catl
system:
  capacity_kwh: 500
  power_kw: 250
`)
	c, err := Load(p, nil)
	require.NoError(t, err)

	sc := c.Scenario()
	assert.Zero(t, sc.Config.ACEfficiency)
	eng, err := sc.Engine(nil)
	require.NoError(t, err)
	assert.Equal(t, 0.85, eng.Config().ACEfficiency)
}

func TestLoadSystemFileWithOverrides(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sites"), 0o755))
	writeFile(t, filepath.Join(dir, "sites"), "hot.yaml", `
system:
  capacity_kwh: 1000
  power_kw: 500
  temperature_celsius: 45
  c_rate: 1.0
`)
	p := writeFile(t, dir, "scenario.yaml", `
system_file: sites/hot.yaml
system:
  temperature_celsius: 40
`)
	c, err := Load(p, nil)
	require.NoError(t, err)
	cfg := c.Scenario().Config
	assert.Equal(t, 1000.0, cfg.CapacityKWh)
	assert.Equal(t, 40.0, cfg.TemperatureC)
	assert.Equal(t, 1.0, cfg.CRate)
}

func TestLoadRejectsInvalidScenario(t *testing.T) {
	dir := t.TempDir()
	p := writeFile(t, dir, "bad.yaml", `
system:
  capacity_kwh: 50
  power_kw: 500
`)
	_, err := Load(p, nil)
	require.Error(t, err)
	var ve *model.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "capacity_kwh", ve.Field)

	p = writeFile(t, dir, "typo.yaml", `
manufacturer: bdy
system:
  capacity_kwh: 500
  power_kw: 250
`)
	_, err = Load(p, nil)
	assert.True(t, errors.Is(err, model.ErrUnknownManufacturer))

	_, err = LoadUnchecked(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}

func TestLoadSweep(t *testing.T) {
	dir := t.TempDir()
	p := writeFile(t, dir, "sweep.yaml", `
scenarios:
  - name: cool
    system: {capacity_kwh: 500, power_kw: 250, temperature_celsius: 20}
  - system: {capacity_kwh: 500, power_kw: 250, temperature_celsius: 40}
`)
	scs, err := LoadSweep(p)
	require.NoError(t, err)
	require.Len(t, scs, 2)
	assert.Equal(t, "cool", scs[0].Name)
	assert.Equal(t, "scenario-2", scs[1].Name)

	empty := writeFile(t, dir, "empty.yaml", "scenarios: []\n")
	_, err = LoadSweep(empty)
	assert.ErrorContains(t, err, "no scenarios")
}

func TestMergeSystem(t *testing.T) {
	f := func(v float64) *float64 { return &v }
	days := 0
	base := SystemConfig{CapacityKWh: f(100), TemperatureC: f(30), SoCMin: f(0.1)}
	over := SystemConfig{TemperatureC: f(35), SoCMin: f(0), StorageDays: &days}

	out := MergeSystem(base, over)
	assert.Equal(t, 100.0, *out.CapacityKWh)
	assert.Equal(t, 35.0, *out.TemperatureC)
	assert.Equal(t, 0.0, *out.SoCMin)
	assert.Equal(t, 0, *out.StorageDays)
	assert.Nil(t, out.PowerKW)
}
