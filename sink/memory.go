// Package sink provides concrete mcmc.Sink implementations.
package sink

import "github.com/Shilin036/root-simple-mcmc"

// Memory is an mcmc.Sink that keeps every emitted Record in memory, in
// order. It is the simplest possible Sink, useful for tests and small
// runs; for anything long-running prefer CSV or a Channel with a
// consumer that doesn't retain every step.
type Memory struct {
	Records []mcmc.Record
}

// Emit implements mcmc.Sink.
func (m *Memory) Emit(r mcmc.Record) {
	m.Records = append(m.Records, r)
}

// Points returns the chain of accepted points, one per emitted
// Record, in order. A rejected step repeats the previous point, as is
// standard for keeping the chain length equal to the number of steps
// taken.
func (m *Memory) Points() [][]float64 {
	pts := make([][]float64, len(m.Records))
	for i, r := range m.Records {
		pts[i] = r.Point
	}
	return pts
}
