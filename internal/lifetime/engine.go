package lifetime

import (
	"fmt"

	"bess-degradation/internal/fade"
	"bess-degradation/internal/logging"
	"bess-degradation/internal/model"
	"bess-degradation/internal/presets"
)

const (
	DefaultHorizonYears = 25
	MaxHorizonYears     = 100
)

// Engine runs lifetime simulations for one validated configuration. It holds
// only immutable inputs, so a single Engine may be shared between goroutines.
type Engine struct {
	cfg      model.SystemConfiguration
	table    *fade.CalendarTable
	provider fade.FactorProvider
	horizon  int
	log      logging.Logger
}

type Option func(*Engine)

// WithCalendarTable replaces the default LFP calendar table.
func WithCalendarTable(t *fade.CalendarTable) Option {
	return func(e *Engine) {
		if t != nil {
			e.table = t
		}
	}
}

// WithFactorProvider supplies extreme-mode corrections. A nil provider keeps
// the built-in closed-form factors.
func WithFactorProvider(p fade.FactorProvider) Option {
	return func(e *Engine) {
		if p != nil {
			e.provider = p
		}
	}
}

// WithHorizon caps the number of simulated service years.
func WithHorizon(years int) Option {
	return func(e *Engine) { e.horizon = years }
}

func WithLogger(l logging.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.log = l
		}
	}
}

// Construct validates cfg and returns a ready engine, or a *model.ValidationError.
// The failure is logged before it is returned.
func Construct(cfg model.SystemConfiguration, opts ...Option) (*Engine, error) {
	e := &Engine{
		cfg:      cfg,
		table:    defaultTable,
		provider: fade.ClosedForm{},
		horizon:  DefaultHorizonYears,
		log:      logging.New("lifetime"),
	}
	for _, opt := range opts {
		opt(e)
	}
	if err := cfg.Validate(); err != nil {
		e.logRejected(err)
		return nil, err
	}
	if e.horizon < 1 || e.horizon > MaxHorizonYears {
		err := &model.ValidationError{Field: "horizon_years", Value: float64(e.horizon), Min: 1, Max: MaxHorizonYears}
		e.logRejected(err)
		return nil, err
	}
	return e, nil
}

// ConstructFromPreset fills cfg from a manufacturer preset and delegates to
// Construct. Explicit values in cfg win; a zero ACEfficiency takes the preset's.
func ConstructFromPreset(reg *presets.Registry, key string, cfg model.SystemConfiguration, opts ...Option) (*Engine, error) {
	if reg == nil {
		reg = presets.Default()
	}
	p, err := reg.Lookup(key)
	if err != nil {
		return nil, err
	}
	return Construct(ApplyPreset(p, cfg), opts...)
}

// ApplyPreset overlays preset defaults onto the unset fields of cfg.
func ApplyPreset(p model.ManufacturerPreset, cfg model.SystemConfiguration) model.SystemConfiguration {
	if cfg.ACEfficiency == 0 {
		cfg.ACEfficiency = p.TypicalACEfficiency
	}
	if cfg.Manufacturer == "" {
		cfg.Manufacturer = p.Name
	}
	if cfg.Name == "" {
		cfg.Name = fmt.Sprintf("%s %.0f kWh", p.Name, cfg.CapacityKWh)
	}
	return cfg
}

var defaultTable = fade.DefaultCalendarTable()

func (e *Engine) logRejected(err error) {
	fields := map[string]any{"error": err.Error()}
	if ve, ok := err.(*model.ValidationError); ok {
		fields["field"] = ve.Field
		fields["value"] = ve.Value
		fields["min"] = ve.Min
		fields["max"] = ve.Max
	}
	e.log.Warnw("configuration rejected", fields)
}

// Config returns a copy of the validated configuration.
func (e *Engine) Config() model.SystemConfiguration { return e.cfg }

func (e *Engine) Horizon() int { return e.horizon }

// Mode is the operating regime for this engine's configuration.
func (e *Engine) Mode() model.OperationMode { return e.cfg.Mode() }

// SimulateLifetime runs year by year until SOH drops below the configured
// EOL threshold or the horizon is exhausted.
func (e *Engine) SimulateLifetime() *SimulationResult {
	return e.run(e.cfg.EOLThreshold)
}

// SimulateLifetimeTo runs against an explicit EOL threshold.
func (e *Engine) SimulateLifetimeTo(eolThreshold float64) (*SimulationResult, error) {
	rng, _ := model.FieldRange("eol_threshold")
	if !rng.Contains(eolThreshold) {
		err := &model.ValidationError{Field: "eol_threshold", Value: eolThreshold, Min: rng.Min, Max: rng.Max}
		e.logRejected(err)
		return nil, err
	}
	return e.run(eolThreshold), nil
}

func (e *Engine) run(threshold float64) *SimulationResult {
	cfg := e.cfg
	mode := cfg.Mode()
	resolver := fade.NewResolver(e.table, cfg.TemperatureC, cfg.StorageDays)
	cycling := fade.CyclingModel{DoD: cfg.DepthOfDischarge, CyclesPerDay: cfg.CyclesPerDay}

	providerName := "identity"
	if mode == model.ModeExtreme {
		providerName = e.provider.Name()
	}
	res := &SimulationResult{
		Config:         cfg,
		Mode:           mode,
		FactorProvider: providerName,
		TemperatureBin: resolver.Bin().Label,
		EOLThreshold:   threshold,
		HorizonYears:   e.horizon,
		Records:        make([]YearlyRecord, 0, e.horizon+1),
		FinalState:     StateNotStarted,
	}

	storage := resolver.StorageFade()
	res.flag(0, "storage", storage)
	res.StorageFade = storage.Value
	baseline := 1 - storage.Value
	res.Records = append(res.Records, e.record(0, 0, 0, 0, baseline, 1, SourceStorage, fade.Identity()))
	res.FinalState = StateSimulating

	if baseline < threshold {
		e.reachEOL(res, 0, 0)
		return res
	}

	prev := baseline
	for year := 1; year <= e.horizon; year++ {
		cycles := cfg.CyclesPerYear() * float64(year)
		factors := fade.Identity()
		if mode == model.ModeExtreme {
			factors = e.provider.Factors(fade.Conditions{
				TemperatureC:     cfg.TemperatureC,
				CRate:            cfg.CRate,
				SoCMin:           cfg.SoCMin,
				SoCMax:           cfg.SoCMax,
				DCEfficiency:     cfg.DCEfficiency,
				CumulativeCycles: cycles,
				ServiceYears:     float64(year),
			})
		}

		cyc := cycling.Fade(float64(year), factors.Product())
		cal := resolver.ServiceFade(year)
		res.flag(year, "cycling", cyc)
		res.flag(year, "calendar", cal)

		// D_total = 1 - (1 - D_cycling)(1 - D_calendar), on top of the storage baseline.
		soh := baseline * (1 - cyc.Value) * (1 - cal.Value)
		if soh > prev {
			res.Warnings = append(res.Warnings, DegeneracyWarning{Year: year, Component: "soh", Raw: soh, Clamped: prev})
			soh = prev
		}
		res.Records = append(res.Records, e.record(year, cycles, cal.Value, cyc.Value, soh, prev, SourceService, factors))

		if soh < threshold {
			e.reachEOL(res, year, cycles)
			break
		}
		prev = soh
	}

	if res.FinalState != StateEOLReached {
		res.FinalState = StateCompleted
		e.log.Debugw("horizon reached without end of life", map[string]any{
			"horizon_years": e.horizon,
			"final_soh":     res.Final().SOH,
		})
	}
	for _, w := range res.Warnings {
		e.log.Warnw("fade clamped", map[string]any{
			"year":      w.Year,
			"component": w.Component,
			"raw":       w.Raw,
			"clamped":   w.Clamped,
		})
	}
	return res
}

func (e *Engine) reachEOL(res *SimulationResult, year int, cycles float64) {
	res.FinalState = StateEOLReached
	res.YearsToEOL = EOLYear{Year: year, Reached: true}
	res.TotalCyclesToEOL = cycles
	e.log.Debugw("end of life reached", map[string]any{
		"year":      year,
		"mode":      string(res.Mode),
		"soh":       res.Final().SOH,
		"threshold": res.EOLThreshold,
	})
}

func (e *Engine) record(year int, cycles, cal, cyc, soh, prevSOH float64, source string, factors fade.FactorSet) YearlyRecord {
	annual := 0.0
	if prevSOH > 0 {
		annual = (prevSOH - soh) / prevSOH * 100
	}
	return YearlyRecord{
		Year:                       year,
		CumulativeCycles:           cycles,
		CalendarFade:               cal,
		CyclingFade:                cyc,
		CombinedDegradationPercent: (1 - soh) * 100,
		AnnualDegradationPercent:   annual,
		SOH:                        soh,
		ResidualCapacityKWh:        e.cfg.CapacityKWh * soh,
		ACCapacityKWh:              e.cfg.CapacityKWh * soh * e.cfg.ACEfficiency,
		Source:                     source,
		Factors:                    factors,
	}
}

func (r *SimulationResult) flag(year int, component string, o fade.Outcome) {
	if o.Degenerate() {
		r.Warnings = append(r.Warnings, DegeneracyWarning{Year: year, Component: component, Raw: o.Raw, Clamped: o.Value})
	}
}
