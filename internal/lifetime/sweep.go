package lifetime

import (
	"context"
	"runtime"

	"bess-degradation/internal/model"
	"bess-degradation/internal/presets"

	"golang.org/x/sync/errgroup"
)

// Scenario is one named configuration in a sweep. Manufacturer, when set,
// resolves preset defaults before validation.
type Scenario struct {
	Name         string
	Manufacturer string
	Config       model.SystemConfiguration
	HorizonYears int
}

// ScenarioResult pairs a scenario with its outcome. Err holds construction
// failures (validation, unknown manufacturer) for that scenario only.
type ScenarioResult struct {
	Scenario Scenario
	Result   *SimulationResult
	Err      error
}

// Engine builds the engine for s.
func (s Scenario) Engine(reg *presets.Registry, opts ...Option) (*Engine, error) {
	all := append([]Option{}, opts...)
	if s.HorizonYears != 0 {
		all = append(all, WithHorizon(s.HorizonYears))
	}
	if s.Manufacturer != "" {
		return ConstructFromPreset(reg, s.Manufacturer, s.Config, all...)
	}
	return Construct(s.Config, all...)
}

// Sweep simulates scenarios concurrently. Results keep the input order and each
// equals a standalone run of the same scenario. Only cancellation of ctx is
// returned as an error.
func Sweep(ctx context.Context, reg *presets.Registry, scenarios []Scenario, opts ...Option) ([]ScenarioResult, error) {
	out := make([]ScenarioResult, len(scenarios))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for i, sc := range scenarios {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			out[i].Scenario = sc
			eng, err := sc.Engine(reg, opts...)
			if err != nil {
				out[i].Err = err
				return nil
			}
			out[i].Result = eng.SimulateLifetime()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
