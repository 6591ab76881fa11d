// Package mcmc implements an adaptive Metropolis-Hastings sampler for
// exploring an arbitrary user-supplied log-posterior over a
// finite-dimensional real parameter space.
//
// The sampler is a direct descendant of the TSimpleMCMC ROOT macro used
// for several past oscillation-analysis fits: given a log-likelihood
// function L: R^d -> R union {-inf}, Sampler produces a chain of
// accepted points whose stationary distribution is proportional to
// exp(L). The hard part, the adaptive proposal machinery, lives in the
// propose subpackage; this package only implements the accept/reject
// loop and the plumbing around it (the Sink and RandomSource
// collaborators).
//
// A typical use:
//
//	src := rng.New(rand.NewSource(1))
//	prop := propose.NewAdaptive(src)
//	s := &mcmc.Sampler{
//		LogDensity: mcmc.LogDensityFunc(target),
//		Proposal:   prop,
//		Source:     src,
//	}
//	s.Start([]float64{0, 0, 0}, false)
//	for i := 0; i < 10000; i++ {
//		s.Step(false) // burn-in
//	}
//	for i := 0; i < 100000; i++ {
//		s.Step(true) // recorded run
//	}
//
// This package does not itself persist the chain, generate random
// numbers, or define any particular likelihood: those are external
// collaborators supplied by the caller (see Sink, RandomSource, and
// LogDensity).
package mcmc
