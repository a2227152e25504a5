package lifetime

import (
	"fmt"
	"strings"
)

const rule = "======================================================================"

// Summarize renders a human-readable report of a simulation.
func Summarize(r *SimulationResult) string {
	c := r.Config
	var b strings.Builder

	name := c.Name
	if name == "" {
		name = "BESS LFP System"
	}
	fmt.Fprintln(&b, rule)
	fmt.Fprintln(&b, "BESS DEGRADATION - UNIVERSAL LFP")
	fmt.Fprintln(&b, rule)
	fmt.Fprintf(&b, "System:                   %s\n", name)
	if c.Manufacturer != "" {
		fmt.Fprintf(&b, "Manufacturer:             %s\n", c.Manufacturer)
	}

	fmt.Fprintln(&b, "\nCAPACITY:")
	fmt.Fprintf(&b, "  DC nominal:             %.0f kWh\n", c.CapacityKWh)
	fmt.Fprintf(&b, "  AC nominal:             %.0f kWh\n", c.ACCapacityKWh())
	fmt.Fprintf(&b, "  Power:                  %.0f kW\n", c.PowerKW)

	fmt.Fprintln(&b, "\nOPERATION:")
	fmt.Fprintf(&b, "  Temperature:            %.1f°C (bin %s)\n", c.TemperatureC, r.TemperatureBin)
	fmt.Fprintf(&b, "  Depth of discharge:     %.0f%%\n", c.DepthOfDischarge*100)
	fmt.Fprintf(&b, "  Cycles/day:             %g\n", c.CyclesPerDay)
	fmt.Fprintf(&b, "  Cycles/year:            %.0f\n", c.CyclesPerYear())
	fmt.Fprintf(&b, "  C-rate:                 %.2fC\n", c.CRate)
	fmt.Fprintf(&b, "  SoC window:             %.0f-%.0f%%\n", c.SoCMin*100, c.SoCMax*100)
	fmt.Fprintf(&b, "  AC efficiency:          %.1f%%\n", c.ACEfficiency*100)
	fmt.Fprintf(&b, "  Operation mode:         %s (%s factors)\n", strings.ToUpper(string(r.Mode)), r.FactorProvider)

	fmt.Fprintln(&b, "\nPRE-OPERATIONAL STORAGE:")
	fmt.Fprintf(&b, "  FAT-SAT days:           %d\n", c.StorageDays)
	fmt.Fprintf(&b, "  Pre-degradation:        %.2f%%\n", r.StorageFade*100)
	fmt.Fprintf(&b, "  SOH after storage:      %.2f%%\n", (1-r.StorageFade)*100)

	fmt.Fprintln(&b, "\nLIFETIME:")
	fmt.Fprintf(&b, "  EOL threshold:          %.0f%% SOH\n", r.EOLThreshold*100)
	if r.YearsToEOL.Reached {
		fmt.Fprintf(&b, "  Years to EOL:           %d\n", r.YearsToEOL.Year)
		fmt.Fprintf(&b, "  Total cycles to EOL:    %.0f\n", r.TotalCyclesToEOL)
	} else {
		fmt.Fprintf(&b, "  Years to EOL:           %s within %d years\n", r.YearsToEOL, r.HorizonYears)
	}
	if y1, ok := r.Year(1); ok {
		fmt.Fprintf(&b, "  Year 1 SOH:             %.2f%%\n", y1.SOH*100)
		fmt.Fprintf(&b, "  Year 1 AC capacity:     %.0f kWh\n", y1.ACCapacityKWh)
	}
	final := r.Final()
	fmt.Fprintf(&b, "  Final SOH (year %d):     %.2f%%\n", final.Year, final.SOH*100)
	if rate, ok := r.AverageFadeRate(); ok {
		fmt.Fprintf(&b, "  Average fade:           %.2f%%/year\n", rate)
	}

	if len(r.Warnings) > 0 {
		fmt.Fprintln(&b, "\nWARNINGS:")
		for _, w := range r.Warnings {
			fmt.Fprintf(&b, "  - %s\n", w)
		}
	}
	fmt.Fprintln(&b, rule)
	return b.String()
}
