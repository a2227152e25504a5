package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

// PromSink records simulation outcomes in Prometheus metrics.
type PromSink struct {
	simulations *prometheus.CounterVec
	yearsToEOL  *prometheus.HistogramVec
	warnings    prometheus.Counter
	rejected    *prometheus.CounterVec
}

// NewPromSink registers the collectors on reg. If reg is nil, the default
// registerer is used. Collectors that are already registered are reused.
func NewPromSink(reg prometheus.Registerer) (*PromSink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	simulations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "bess_simulations_total",
		Help: "Total number of lifetime simulations",
	}, []string{"mode", "eol_reached"})
	yearsToEOL := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "bess_years_to_eol",
		Help:    "Simulated years until end of life",
		Buckets: prometheus.LinearBuckets(1, 2, 13),
	}, []string{"mode"})
	warnings := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "bess_degeneracy_warnings_total",
		Help: "Fade values clamped to [0, 1]",
	})
	rejected := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "bess_rejected_requests_total",
		Help: "Simulation requests rejected before running",
	}, []string{"reason", "field"})

	var err error
	if simulations, err = register(reg, simulations); err != nil {
		return nil, err
	}
	if yearsToEOL, err = register(reg, yearsToEOL); err != nil {
		return nil, err
	}
	if warnings, err = register(reg, warnings); err != nil {
		return nil, err
	}
	if rejected, err = register(reg, rejected); err != nil {
		return nil, err
	}
	return &PromSink{simulations: simulations, yearsToEOL: yearsToEOL, warnings: warnings, rejected: rejected}, nil
}

func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	if err := reg.Register(c); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing, nil
			}
		}
		return c, err
	}
	return c, nil
}

func (s *PromSink) RecordSimulation(sim Simulation) {
	s.simulations.WithLabelValues(sim.Mode, strconv.FormatBool(sim.EOLReached)).Inc()
	if sim.EOLReached {
		s.yearsToEOL.WithLabelValues(sim.Mode).Observe(float64(sim.YearsToEOL))
	}
	s.warnings.Add(float64(sim.Warnings))
}

func (s *PromSink) RecordRejected(reason, field string) {
	s.rejected.WithLabelValues(reason, field).Inc()
}
