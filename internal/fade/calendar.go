package fade

import (
	"errors"
	"fmt"
	"math"
)

// MonthsPerBin is the number of monthly rates each temperature bin carries.
// Month 10 and later reuse the last (steady-state) rate.
const MonthsPerBin = 10

// daysPerMonth is the storage-day to month conversion.
const daysPerMonth = 30.0

// storageTailRatio scales the month-1 rate for storage days beyond the first month.
const storageTailRatio = 1.0 / 3.0

// TemperatureBin maps a temperature span to monthly calendar fade fractions.
// Bins are upper-inclusive: a temperature equal to UpperC belongs to this bin.
type TemperatureBin struct {
	Label  string
	LowerC float64 // exclusive; ignored for the first bin
	UpperC float64 // inclusive; ignored for the last bin
	Rates  [MonthsPerBin]float64
}

// CalendarTable is an immutable, ordered set of contiguous temperature bins.
type CalendarTable struct {
	bins []TemperatureBin
}

// NewCalendarTable copies and checks the bins: ascending, contiguous, rates >= 0.
func NewCalendarTable(bins []TemperatureBin) (*CalendarTable, error) {
	if len(bins) == 0 {
		return nil, errors.New("calendar table has no bins")
	}
	out := make([]TemperatureBin, len(bins))
	copy(out, bins)
	for i, b := range out {
		if b.UpperC <= b.LowerC && i != 0 && i != len(out)-1 {
			return nil, fmt.Errorf("bin %q: upper %g must exceed lower %g", b.Label, b.UpperC, b.LowerC)
		}
		if i > 0 && b.LowerC != out[i-1].UpperC {
			return nil, fmt.Errorf("bin %q: lower %g does not continue previous upper %g", b.Label, b.LowerC, out[i-1].UpperC)
		}
		for m, r := range b.Rates {
			if r < 0 || math.IsNaN(r) {
				return nil, fmt.Errorf("bin %q month %d: rate %g must be >= 0", b.Label, m+1, r)
			}
		}
	}
	return &CalendarTable{bins: out}, nil
}

// DefaultCalendarTable is the universal LFP monthly fade table.
func DefaultCalendarTable() *CalendarTable {
	t, err := NewCalendarTable([]TemperatureBin{
		{Label: "<=15C", LowerC: math.Inf(-1), UpperC: 15, Rates: [MonthsPerBin]float64{
			0.0079, 0.0027, 0.0020, 0.0016, 0.0014, 0.0013, 0.0012, 0.0011, 0.0010, 0.0010}},
		{Label: "16-25C", LowerC: 15, UpperC: 25, Rates: [MonthsPerBin]float64{
			0.0123, 0.0041, 0.0031, 0.0025, 0.0022, 0.0020, 0.0019, 0.0018, 0.0017, 0.0016}},
		{Label: "26-35C", LowerC: 25, UpperC: 35, Rates: [MonthsPerBin]float64{
			0.0187, 0.0063, 0.0047, 0.0039, 0.0035, 0.0032, 0.0030, 0.0029, 0.0028, 0.0027}},
		{Label: "36-45C", LowerC: 35, UpperC: math.Inf(1), Rates: [MonthsPerBin]float64{
			0.0275, 0.0093, 0.0070, 0.0059, 0.0054, 0.0050, 0.0049, 0.0048, 0.0048, 0.0047}},
	})
	if err != nil {
		panic(err)
	}
	return t
}

// Bin resolves a temperature to exactly one bin. Values at a shared boundary
// go to the cooler bin; values beyond the outer bins use the outer bins.
func (t *CalendarTable) Bin(temperatureC float64) TemperatureBin {
	for _, b := range t.bins {
		if temperatureC <= b.UpperC {
			return b
		}
	}
	return t.bins[len(t.bins)-1]
}

// Bins returns a copy of the table bins.
func (t *CalendarTable) Bins() []TemperatureBin {
	out := make([]TemperatureBin, len(t.bins))
	copy(out, t.bins)
	return out
}

// MonthlyRate is the fade fraction for the given 1-based month of system life.
func (b TemperatureBin) MonthlyRate(lifeMonth int) float64 {
	switch {
	case lifeMonth < 1:
		return 0
	case lifeMonth > MonthsPerBin:
		return b.Rates[MonthsPerBin-1]
	default:
		return b.Rates[lifeMonth-1]
	}
}

// Resolver computes cumulative calendar fade for one temperature and storage history.
type Resolver struct {
	bin         TemperatureBin
	storageDays int
}

// NewResolver binds a table lookup for temperatureC.
func NewResolver(t *CalendarTable, temperatureC float64, storageDays int) Resolver {
	if storageDays < 0 {
		storageDays = 0
	}
	return Resolver{bin: t.Bin(temperatureC), storageDays: storageDays}
}

func (r Resolver) Bin() TemperatureBin { return r.bin }

// StorageFade is the FAT-SAT fade applied once before year 0. The first 30
// days use the month-1 rate pro rata; later days use a third of it.
func (r Resolver) StorageFade() Outcome {
	if r.storageDays == 0 {
		return Outcome{}
	}
	m1 := r.bin.MonthlyRate(1)
	days := float64(r.storageDays)
	if days <= daysPerMonth {
		return bounded(m1 * days / daysPerMonth)
	}
	extraMonths := (days - daysPerMonth) / daysPerMonth
	return bounded(m1 + extraMonths*m1*storageTailRatio)
}

// serviceMonthOffset is how many months of system life storage consumed.
func (r Resolver) serviceMonthOffset() int {
	return int(math.Ceil(float64(r.storageDays) / daysPerMonth))
}

// ServiceFade is cumulative in-service calendar fade after serviceYears whole
// years. Month numbering continues from storage, so the steep month-1 rate
// only applies if the system was commissioned without storage.
func (r Resolver) ServiceFade(serviceYears int) Outcome {
	if serviceYears <= 0 {
		return Outcome{}
	}
	offset := r.serviceMonthOffset()
	months := serviceYears * 12
	sum := 0.0
	for m := 1; m <= months; m++ {
		sum += r.bin.MonthlyRate(offset + m)
	}
	return bounded(sum)
}
