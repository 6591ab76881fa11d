package propose

import (
	"math"

	"github.com/Shilin036/root-simple-mcmc"
)

// Fixed is a minimal, non-adaptive mcmc.Proposer: an isotropic
// Gaussian random walk of constant width. It ports TProposeSimpleStep
// from the source macro, which never adjusts its width based on the
// chain's history.
//
// Fixed is most useful for verifying the detailed-balance testable
// property against a target that is exactly Gaussian, where an
// adaptive proposal's own adaptation would otherwise be a confound.
type Fixed struct {
	Source mcmc.RandomSource

	// Sigma is the per-dimension proposal width. If zero (or negative),
	// each call to Propose uses sqrt(1/dim) instead, exactly as the
	// source macro's "bogus guess at a reasonable width"; Sigma itself
	// is left unchanged.
	Sigma float64
}

// Propose implements mcmc.Proposer.
func (f *Fixed) Propose(proposal, current []float64, currentLogDensity float64) {
	if len(proposal) != len(current) {
		panic("propose: proposal and current vectors must be the same length")
	}
	sigma := f.Sigma
	if sigma <= 0 {
		sigma = math.Sqrt(1 / float64(len(current)))
	}
	for i := range proposal {
		proposal[i] = current[i] + f.Source.Gauss(0, sigma)
	}
}
