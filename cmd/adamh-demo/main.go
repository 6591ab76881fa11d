// Command adamh-demo runs one of the sampler's built-in example
// problems end to end and reports simple chain statistics, in the
// spirit of the teacher's own example mains (a single flat main
// wiring a problem together and printing a result, no subcommands).
package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand"
	"time"

	"gonum.org/v1/gonum/stat"

	mcmc "github.com/Shilin036/root-simple-mcmc"
	"github.com/Shilin036/root-simple-mcmc/examples/constrained"
	"github.com/Shilin036/root-simple-mcmc/examples/gaussian"
	"github.com/Shilin036/root-simple-mcmc/examples/histfit"
	"github.com/Shilin036/root-simple-mcmc/propose"
	"github.com/Shilin036/root-simple-mcmc/rng"
	"github.com/Shilin036/root-simple-mcmc/sink"
)

func main() {
	problem := flag.String("problem", "gaussian", "problem to sample: gaussian, correlated, constrained, rosenbrock, histfit")
	steps := flag.Int("steps", 100000, "number of Metropolis-Hastings steps")
	burnIn := flag.Int("burnin", 10000, "steps to discard before reporting statistics")
	seed := flag.Int64("seed", time.Now().UnixNano(), "random seed")
	flag.Parse()

	source := rng.New(rand.NewSource(*seed))

	var logDensity mcmc.LogDensity
	var dim int

	switch *problem {
	case "gaussian":
		dim = 5
		logDensity = gaussian.Isotropic{Dim: dim}
	case "correlated":
		dim = 8
		logDensity = gaussian.NewCorrelated(dim)
	case "constrained":
		dim = constrained.Dim
		logDensity = constrained.New()
	case "rosenbrock":
		dim = 6
		logDensity = gaussian.Rosenbrock{Dim: dim}
	case "histfit":
		dim = histfit.ParamSize
		logDensity = histfit.New(source, 1000, 1000)
	default:
		log.Fatalf("unknown problem %q", *problem)
	}

	proposal := propose.NewAdaptive(source)

	mem := &sink.Memory{}
	sampler := &mcmc.Sampler{
		LogDensity: logDensity,
		Proposal:   proposal,
		Source:     source,
		Sink:       mem,
	}

	initial := initialPoint(dim, *problem)
	sampler.Start(initial, false)
	for i := 0; i < *burnIn; i++ {
		sampler.Step(false)
	}
	for i := 0; i < *steps; i++ {
		sampler.Step(true)
	}

	report(mem.Points(), dim)
}

// initialPoint picks a reasonable starting point per problem; the
// constrained-sum posterior is centered far from the origin, so
// starting the chain there instead of at zero avoids a long initial
// transient.
func initialPoint(dim int, problem string) []float64 {
	p := make([]float64, dim)
	if problem == "constrained" {
		for i := range p {
			p[i] = 76
		}
		p[dim-1] = 80
	}
	return p
}

// report prints the per-dimension empirical mean and variance of the
// recorded chain, using gonum/stat's MeanVariance the same way
// stackmcexample_test.go uses stat.Mean to check a Monte Carlo
// estimate, rather than hand-rolling the two accumulation loops.
func report(points [][]float64, dim int) {
	column := make([]float64, len(points))
	mean := make([]float64, dim)
	variance := make([]float64, dim)
	for i := 0; i < dim; i++ {
		for r, p := range points {
			column[r] = p[i]
		}
		mean[i], variance[i] = stat.MeanVariance(column, nil)
	}

	fmt.Printf("%d accepted-chain points\n", len(points))
	fmt.Printf("mean:     %v\n", mean)
	fmt.Printf("variance: %v\n", variance)
}
