package metrics

// Simulation is the observable outcome of one lifetime run.
type Simulation struct {
	Mode       string
	EOLReached bool
	YearsToEOL int
	Warnings   int
}

// Recorder receives simulation outcomes from the API layer.
type Recorder interface {
	RecordSimulation(s Simulation)
	RecordRejected(reason, field string)
}

// NopRecorder discards everything.
type NopRecorder struct{}

func (NopRecorder) RecordSimulation(Simulation)   {}
func (NopRecorder) RecordRejected(string, string) {}
