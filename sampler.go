package mcmc

import "math"

// Sampler drives a Metropolis-Hastings chain: it evaluates LogDensity
// at a proposed point generated by Proposal, applies the accept/reject
// rule, and emits the result to Sink.
//
// Sampler performs no concurrency of its own and evaluates LogDensity
// on the caller's goroutine; LogDensity must not assume reentrancy.
// There are no suspension points: Step is a single bounded-time CPU
// operation (one likelihood evaluation plus one proposal update), and
// cancellation between steps is entirely the caller's responsibility.
type Sampler struct {
	// LogDensity is the user's black-box log-posterior. Required.
	LogDensity LogDensity
	// Proposal generates trial points from the current point. Required.
	Proposal Proposer
	// Source draws the uniform variate used by the accept/reject test.
	// It is typically the same RandomSource given to Proposal, since
	// the spec treats the generator as a single piece of shared,
	// non-local state. Required.
	Source RandomSource
	// Sink receives a Record after every Step (and after Start, if
	// asked to save). May be left nil; then no emission occurs.
	Sink Sink
	// Trace, if non-nil, receives free-form diagnostic messages (the
	// equivalent of TSimpleMCMC.H's MCMC_DEBUG macro). Left nil by
	// default: silent.
	Trace func(format string, args ...interface{})

	accepted           []float64
	acceptedLogDensity float64
	proposed           []float64
	proposedLogDensity float64
	trialStep          []float64

	started bool
}

// Start evaluates LogDensity at initial, and records it as both the
// accepted and proposed state. If save is true (and Sink is non-nil),
// exactly one Record is emitted before any call to Step.
func (s *Sampler) Start(initial []float64, save bool) {
	dim := len(initial)
	s.accepted = append([]float64(nil), initial...)
	s.proposed = append([]float64(nil), initial...)
	s.trialStep = make([]float64, dim)

	s.proposedLogDensity = s.LogDensity.LogDensity(s.proposed)
	if math.IsNaN(s.proposedLogDensity) {
		s.proposedLogDensity = math.Inf(-1)
	}
	s.acceptedLogDensity = s.proposedLogDensity
	s.started = true

	if s.Trace != nil {
		s.Trace("mcmc: start at %v, logDensity=%v", initial, s.acceptedLogDensity)
	}

	if save {
		s.emit(true)
	}
}

// Step performs one Metropolis-Hastings iteration and returns whether
// the proposal was accepted. Exactly one LogDensity evaluation occurs
// per call. If save is true (and Sink is non-nil), the step's Record
// is emitted.
func (s *Sampler) Step(save bool) bool {
	if !s.started {
		panic("mcmc: Step called before Start")
	}

	s.Proposal.Propose(s.proposed, s.accepted, s.acceptedLogDensity)

	// The trial step must be computed before accepted is overwritten,
	// so that it reflects the jump actually attempted this step.
	for i := range s.trialStep {
		s.trialStep[i] = s.proposed[i] - s.accepted[i]
	}

	s.proposedLogDensity = s.LogDensity.LogDensity(s.proposed)
	if math.IsNaN(s.proposedLogDensity) {
		// Unspecified by the spec; treat like -Inf so a NaN
		// likelihood can never poison the chain.
		s.proposedLogDensity = math.Inf(-1)
	}

	accept := s.accept()
	if accept {
		copy(s.accepted, s.proposed)
		s.acceptedLogDensity = s.proposedLogDensity
	}

	if save {
		s.emit(accept)
	}
	return accept
}

// accept applies the Metropolis-Hastings rule to the current proposed
// and accepted log-densities. delta >= 0 always accepts; otherwise a
// draw u ~ U(0,1) is compared against delta via ln(u), relying on the
// IEEE convention ln(0) == -Inf so that a u == 0 draw accepts any
// finite delta. A delta of -Inf (a zero-probability proposal) never
// accepts.
func (s *Sampler) accept() bool {
	delta := s.proposedLogDensity - s.acceptedLogDensity
	if delta >= 0 {
		return true
	}
	trial := math.Log(s.Source.Uniform())
	return delta >= trial && !math.IsInf(delta, -1)
}

func (s *Sampler) emit(accepted bool) {
	if s.Sink == nil {
		return
	}
	s.Sink.Emit(Record{
		LogDensity: s.acceptedLogDensity,
		Point:      append([]float64(nil), s.accepted...),
		TrialStep:  append([]float64(nil), s.trialStep...),
		Accepted:   accepted,
	})
}

// Accepted returns the most recently accepted point. The returned
// slice is owned by Sampler and must not be retained past the next
// call to Step.
func (s *Sampler) Accepted() []float64 { return s.accepted }

// AcceptedLogDensity returns the log-density at Accepted.
func (s *Sampler) AcceptedLogDensity() float64 { return s.acceptedLogDensity }

// Proposed returns the most recently proposed point (which may equal
// Accepted, if the last step was accepted or Step has not been called
// since Start). The returned slice is owned by Sampler.
func (s *Sampler) Proposed() []float64 { return s.proposed }

// ProposedLogDensity returns the log-density at Proposed.
func (s *Sampler) ProposedLogDensity() float64 { return s.proposedLogDensity }
