package mcmc

// RandomSource is the only non-local state the core touches. It must
// be available on the sampler's thread; the determinism of the
// sampler is exactly the determinism of this source. Two samplers
// sharing a RandomSource must serialize their own access to it.
type RandomSource interface {
	// Uniform returns a draw from U[0,1).
	Uniform() float64
	// Gauss returns a draw from N(mu, sigma^2).
	Gauss(mu, sigma float64) float64
}
