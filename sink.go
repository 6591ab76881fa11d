package mcmc

// Record is one step's worth of information offered to a Sink. Point
// and LogDensity always describe the currently accepted state (after
// the accept/reject rule has been applied for this step); TrialStep is
// the vector that was tried, Proposed - Accepted, computed before
// Accepted was overwritten so that it reflects the actual jump
// attempted this step regardless of whether it succeeded.
type Record struct {
	LogDensity float64
	Point      []float64
	TrialStep  []float64
	Accepted   bool
}

// Sink receives per-step records. A Sink may be nil on Sampler; the
// core behaves identically except that no emission occurs.
type Sink interface {
	Emit(r Record)
}

// SinkFunc adapts a plain function to a Sink, in the style of
// LogDensityFunc and http.HandlerFunc.
type SinkFunc func(r Record)

// Emit implements Sink.
func (f SinkFunc) Emit(r Record) { f(r) }
