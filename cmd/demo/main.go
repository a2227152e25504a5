package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"bess-degradation/internal/config"
	"bess-degradation/internal/lifetime"
	"bess-degradation/internal/logging"
	"bess-degradation/internal/model"
)

// Demo:
// - Build the three reference systems (or one from --config)
// - Simulate each until end of life
// - Print the first years of each trajectory and the summary report
func main() {
	cfgPath := flag.String("config", "", "Path to scenario YAML (optional; replaces the reference systems)")
	n := flag.Int("n", 12, "Number of yearly rows to print per system")
	outDir := flag.String("out", "", "Optional directory to write one CSV per system (e.g. results/)")
	flag.Parse()

	scenarios := referenceSystems()
	if *cfgPath != "" {
		c, err := config.Load(*cfgPath, nil)
		if err != nil {
			panic(err)
		}
		scenarios = []lifetime.Scenario{c.Scenario()}
	}

	for i, sc := range scenarios {
		eng, err := sc.Engine(nil, lifetime.WithLogger(logging.NopLogger{}))
		if err != nil {
			panic(err)
		}
		result := eng.SimulateLifetime()

		fmt.Printf("\n[%d] %s\n", i+1, sc.Name)
		fmt.Print(lifetime.Summarize(result))
		for j := 0; j < min(*n, len(result.Records)); j++ {
			r := result.Records[j]
			fmt.Printf(
				"year=%2d  cycles=%6.0f  cal=%6.2f%%  cyc=%6.2f%%  soh=%6.2f%%  ac=%7.0f kWh  %s\n",
				r.Year,
				r.CumulativeCycles,
				r.CalendarFade*100,
				r.CyclingFade*100,
				r.SOH*100,
				r.ACCapacityKWh,
				r.Source,
			)
		}

		if *outDir != "" {
			if err := os.MkdirAll(*outDir, 0o755); err != nil {
				panic(err)
			}
			path := filepath.Join(*outDir, fmt.Sprintf("system_%d.csv", i+1))
			if err := lifetime.WriteRecordsCSV(path, result.Records); err != nil {
				panic(err)
			}
			fmt.Printf("Wrote CSV: %s\n", path)
		}
	}
}

// referenceSystems are a tropical Gotion site, a temperate CATL site and a
// hot custom system cycling 1.5 times a day.
func referenceSystems() []lifetime.Scenario {
	tampico := model.DefaultSystemConfiguration()
	tampico.CapacityKWh = 2028
	tampico.PowerKW = 500
	tampico.TemperatureC = 30
	tampico.ACEfficiency = 0

	temperate := model.DefaultSystemConfiguration()
	temperate.CapacityKWh = 500
	temperate.PowerKW = 250
	temperate.TemperatureC = 25
	temperate.DepthOfDischarge = 0.90
	temperate.ACEfficiency = 0

	custom := model.DefaultSystemConfiguration()
	custom.Name = "Custom 150 kWh"
	custom.CapacityKWh = 150
	custom.PowerKW = 75
	custom.TemperatureC = 40
	custom.DepthOfDischarge = 0.85
	custom.CyclesPerDay = 1.5
	custom.ACEfficiency = 0.88

	return []lifetime.Scenario{
		{Name: "Gotion 2028 kWh, Tampico", Manufacturer: "gotion", Config: tampico},
		{Name: "CATL 500 kWh, temperate", Manufacturer: "catl", Config: temperate},
		{Name: "Custom 150 kWh, hot climate", Config: custom},
	}
}
