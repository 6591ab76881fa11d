package mcmc

import (
	"math"
	"testing"
)

// constantUniform is a RandomSource returning a fixed uniform draw and
// panicking on any Gauss call, for tests that only exercise the
// accept/reject rule.
type constantUniform float64

func (c constantUniform) Uniform() float64            { return float64(c) }
func (c constantUniform) Gauss(mu, sigma float64) float64 { panic("unexpected Gauss call") }

// shiftProposer always proposes current+delta, independent of
// currentLogDensity, useful for deterministic tests of the sampler's
// bookkeeping.
type shiftProposer struct{ delta []float64 }

func (p shiftProposer) Propose(proposal, current []float64, currentLogDensity float64) {
	for i := range proposal {
		proposal[i] = current[i] + p.delta[i]
	}
}

func TestSamplerAlwaysAcceptsImprovement(t *testing.T) {
	s := &Sampler{
		LogDensity: LogDensityFunc(func(x []float64) float64 { return x[0] }),
		Proposal:   shiftProposer{delta: []float64{1}},
		Source:     constantUniform(0), // ln(0) == -Inf, would accept any finite delta anyway
	}
	s.Start([]float64{0}, false)
	for i := 0; i < 5; i++ {
		if !s.Step(false) {
			t.Fatalf("step %d: expected acceptance of a strictly improving proposal", i)
		}
	}
	if got := s.Accepted()[0]; got != 5 {
		t.Errorf("Accepted()[0] = %v, want 5", got)
	}
}

func TestSamplerRejectsWorseningWhenUnlucky(t *testing.T) {
	s := &Sampler{
		LogDensity: LogDensityFunc(func(x []float64) float64 { return -x[0] }),
		Proposal:   shiftProposer{delta: []float64{1}},
		Source:     constantUniform(1), // ln(1) == 0, only delta >= 0 accepts
	}
	s.Start([]float64{0}, false)
	if s.Step(false) {
		t.Fatal("expected rejection: delta is negative and u=1 gives ln(u)=0")
	}
	if got := s.Accepted()[0]; got != 0 {
		t.Errorf("Accepted()[0] = %v, want 0 (unchanged)", got)
	}
}

func TestSamplerZeroUniformAlwaysAccepts(t *testing.T) {
	s := &Sampler{
		LogDensity: LogDensityFunc(func(x []float64) float64 { return -x[0] * x[0] }),
		Proposal:   shiftProposer{delta: []float64{1000}},
		Source:     constantUniform(0),
	}
	s.Start([]float64{0}, false)
	if !s.Step(false) {
		t.Fatal("u=0 should always accept via ln(0) == -Inf")
	}
}

func TestSamplerTrialStepReflectsAttemptedJump(t *testing.T) {
	var lastStep []float64
	sink := SinkFunc(func(r Record) { lastStep = r.TrialStep })

	s := &Sampler{
		LogDensity: LogDensityFunc(func(x []float64) float64 { return 0 }),
		Proposal:   shiftProposer{delta: []float64{3, -2}},
		Source:     constantUniform(0),
		Sink:       sink,
	}
	s.Start([]float64{1, 1}, false)
	s.Step(true)

	want := []float64{3, -2}
	for i := range want {
		if lastStep[i] != want[i] {
			t.Errorf("TrialStep[%d] = %v, want %v", i, lastStep[i], want[i])
		}
	}
}

func TestSamplerNaNLogDensityTreatedAsNegativeInfinity(t *testing.T) {
	s := &Sampler{
		LogDensity: LogDensityFunc(func(x []float64) float64 { return math.NaN() }),
		Proposal:   shiftProposer{delta: []float64{1}},
		Source:     constantUniform(0.5),
	}
	s.Start([]float64{0}, false)
	s.acceptedLogDensity = 0 // pretend the start was a finite, ordinary point
	if s.Step(false) {
		t.Fatal("a NaN log-density should never be accepted")
	}
	if !math.IsInf(s.ProposedLogDensity(), -1) {
		t.Errorf("ProposedLogDensity() = %v, want -Inf", s.ProposedLogDensity())
	}
}

func TestSamplerStartSavesExactlyOnce(t *testing.T) {
	var records int
	sink := SinkFunc(func(r Record) { records++ })
	s := &Sampler{
		LogDensity: LogDensityFunc(func(x []float64) float64 { return 0 }),
		Proposal:   shiftProposer{delta: []float64{0}},
		Source:     constantUniform(0),
		Sink:       sink,
	}
	s.Start([]float64{0}, true)
	if records != 1 {
		t.Fatalf("records after Start(save=true) = %d, want 1", records)
	}
}

func TestSamplerPanicsOnStepBeforeStart(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected a panic calling Step before Start")
		}
	}()
	s := &Sampler{
		LogDensity: LogDensityFunc(func(x []float64) float64 { return 0 }),
		Proposal:   shiftProposer{delta: []float64{0}},
		Source:     constantUniform(0),
	}
	s.Step(false)
}
