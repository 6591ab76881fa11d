package mcmc

// LogDensity evaluates the (unnormalized) log-posterior at a point.
// It may return math.Inf(-1) to signal zero probability. A NaN return
// is treated by Sampler as equivalent to -Inf, to avoid poisoning the
// chain.
type LogDensity interface {
	LogDensity(point []float64) float64
}

// LogDensityFunc adapts a plain function to a LogDensity, in the same
// spirit as http.HandlerFunc.
type LogDensityFunc func(point []float64) float64

// LogDensity calls f(point).
func (f LogDensityFunc) LogDensity(point []float64) float64 { return f(point) }

// Proposer generates the next trial point from the current one. The
// Propose implementation is free to use current and currentLogDensity
// to update any internal adaptive state (the previous point's
// acceptance is observed indirectly, by comparing it to what the
// proposer was last given); see propose.Adaptive for the canonical
// implementation.
//
// Propose must fill proposal with a point of the same length as
// current; it owns no other side effects visible to Sampler.
type Proposer interface {
	Propose(proposal, current []float64, currentLogDensity float64)
}
