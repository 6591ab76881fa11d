// Package rng provides concrete mcmc.RandomSource implementations.
package rng

import (
	"math/rand"

	"gonum.org/v1/gonum/stat/distuv"
)

// Generator is a mcmc.RandomSource backed by a seeded math/rand
// source and gonum's distuv distributions, in the same spirit as
// distribution.IndependentGaussian's thin wrapping of distuv.Normal.
// It satisfies mcmc.RandomSource structurally; it does not import that
// package so that rng has no dependency on the sampler core.
type Generator struct {
	rnd *rand.Rand
}

// New returns a Generator drawing from src. Determinism of any sampler
// built on the Generator is exactly the determinism of src.
func New(src rand.Source) *Generator {
	return &Generator{rnd: rand.New(src)}
}

// Uniform returns a draw from U[0,1).
func (g *Generator) Uniform() float64 {
	return distuv.Uniform{Min: 0, Max: 1, Src: g.rnd}.Rand()
}

// Gauss returns a draw from N(mu, sigma^2).
func (g *Generator) Gauss(mu, sigma float64) float64 {
	return distuv.Normal{Mu: mu, Sigma: sigma, Src: g.rnd}.Rand()
}
