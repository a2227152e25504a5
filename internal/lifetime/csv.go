package lifetime

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"
)

var csvHeader = []string{
	"year",
	"cumulative_cycles",
	"calendar_fade",
	"cycling_fade",
	"combined_degradation_percent",
	"annual_degradation_percent",
	"soh",
	"residual_capacity_kwh",
	"ac_capacity_kwh",
	"source",
	"factor_product",
}

// WriteRecordsCSV writes the SOH trajectory to path, creating or truncating it.
func WriteRecordsCSV(path string, records []YearlyRecord) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := WriteRecords(f, records); err != nil {
		return err
	}
	return f.Close()
}

// WriteRecords writes a header and one row per record.
func WriteRecords(out io.Writer, records []YearlyRecord) error {
	w := csv.NewWriter(out)
	if err := w.Write(csvHeader); err != nil {
		return err
	}

	for _, r := range records {
		row := []string{
			strconv.Itoa(r.Year),
			fmtFloat(r.CumulativeCycles),
			fmtFloat(r.CalendarFade),
			fmtFloat(r.CyclingFade),
			fmtFloat(r.CombinedDegradationPercent),
			fmtFloat(r.AnnualDegradationPercent),
			fmtFloat(r.SOH),
			fmtFloat(r.ResidualCapacityKWh),
			fmtFloat(r.ACCapacityKWh),
			r.Source,
			fmtFloat(r.Factors.Product()),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

func fmtFloat(x float64) string {
	return strconv.FormatFloat(x, 'f', 6, 64)
}
