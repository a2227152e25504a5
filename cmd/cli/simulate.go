package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"bess-degradation/internal/config"
	"bess-degradation/internal/lifetime"
	"bess-degradation/internal/logging"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

type simulateOptions struct {
	scenarioFile string
	out          string
	jsonOutput   bool
	verbose      bool

	manufacturer string
	horizon      int
	name         string
	floats       map[string]*float64
	storageDays  int
}

// floatFlags maps flag names to scenario YAML fields.
var floatFlags = []struct {
	flag, usage string
}{
	{"capacity", "DC nominal capacity in kWh"},
	{"power", "rated power in kW"},
	{"temperature", "operating temperature in °C"},
	{"dod", "depth of discharge (0.5-1.0)"},
	{"cycles", "full cycles per day"},
	{"ac-eff", "AC round-trip efficiency"},
	{"dc-eff", "DC efficiency"},
	{"c-rate", "charge/discharge C-rate"},
	{"soc-min", "minimum state of charge"},
	{"soc-max", "maximum state of charge"},
	{"eol", "end-of-life SOH threshold"},
}

func newSimulateCmd(root *rootOptions) *cobra.Command {
	o := &simulateOptions{floats: map[string]*float64{}}
	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Simulate one system until end of life",
		Example: `  bess simulate --capacity 2028 --power 500 --temperature 30 --manufacturer gotion
  bess simulate --scenario examples/tampico.yaml --out results/tampico.csv`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return o.run(cmd, root)
		},
	}
	f := cmd.Flags()
	f.StringVarP(&o.scenarioFile, "scenario", "s", "", "scenario YAML; flags override its values")
	f.StringVarP(&o.out, "out", "o", "", "write the yearly records to this CSV path")
	f.BoolVar(&o.jsonOutput, "json", false, "print the result as JSON instead of a report")
	f.BoolVarP(&o.verbose, "verbose", "v", false, "log engine events to stderr")
	f.StringVarP(&o.manufacturer, "manufacturer", "m", "", "manufacturer preset key")
	f.IntVar(&o.horizon, "horizon", 0, "simulation horizon in years (default 25)")
	f.StringVar(&o.name, "name", "", "system label")
	f.IntVar(&o.storageDays, "storage-days", 0, "pre-operation (FAT-SAT) storage days")
	for _, ff := range floatFlags {
		o.floats[ff.flag] = f.Float64(ff.flag, 0, ff.usage)
	}
	return cmd
}

func (o *simulateOptions) scenario(flags *pflag.FlagSet) (*config.Config, error) {
	c := &config.Config{}
	if o.scenarioFile != "" {
		loaded, err := config.LoadUnchecked(o.scenarioFile)
		if err != nil {
			return nil, err
		}
		c = loaded
	}
	if flags.Changed("manufacturer") {
		c.Manufacturer = o.manufacturer
	}
	if flags.Changed("horizon") {
		c.HorizonYears = o.horizon
	}
	set := func(name string) *float64 {
		if !flags.Changed(name) {
			return nil
		}
		v := *o.floats[name]
		return &v
	}
	override := config.SystemConfig{
		CapacityKWh:      set("capacity"),
		PowerKW:          set("power"),
		TemperatureC:     set("temperature"),
		DepthOfDischarge: set("dod"),
		CyclesPerDay:     set("cycles"),
		ACEfficiency:     set("ac-eff"),
		DCEfficiency:     set("dc-eff"),
		CRate:            set("c-rate"),
		SoCMin:           set("soc-min"),
		SoCMax:           set("soc-max"),
		EOLThreshold:     set("eol"),
	}
	if flags.Changed("name") {
		override.Name = &o.name
	}
	if flags.Changed("storage-days") {
		override.StorageDays = &o.storageDays
	}
	c.System = config.MergeSystem(c.System, override)
	return c, nil
}

func (o *simulateOptions) run(cmd *cobra.Command, root *rootOptions) error {
	reg, err := root.registry()
	if err != nil {
		return err
	}
	c, err := o.scenario(cmd.Flags())
	if err != nil {
		return err
	}

	var log logging.Logger = logging.NopLogger{}
	if o.verbose {
		log = logging.NewZerologLoggerTo(cmd.ErrOrStderr(), "cli")
	}
	eng, err := c.Scenario().Engine(reg, lifetime.WithLogger(log))
	if err != nil {
		return err
	}
	result := eng.SimulateLifetime()

	if o.out != "" {
		if err := os.MkdirAll(filepath.Dir(o.out), 0o755); err != nil {
			return err
		}
		if err := lifetime.WriteRecordsCSV(o.out, result.Records); err != nil {
			return fmt.Errorf("write %s: %w", o.out, err)
		}
	}

	w := cmd.OutOrStdout()
	if o.jsonOutput {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}
	fmt.Fprint(w, lifetime.Summarize(result))
	if o.out != "" {
		fmt.Fprintf(w, "Wrote %d rows to %s\n", len(result.Records), o.out)
	}
	return nil
}
