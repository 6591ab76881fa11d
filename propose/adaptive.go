// Package propose implements the adaptive proposal machinery of an
// Adaptive Metropolis-Hastings sampler: online estimation of the
// posterior covariance, its Cholesky factor, dynamic scaling of the
// proposal width toward a target acceptance rate, and the numerical
// defenses that keep the proposal well-conditioned when the estimated
// covariance becomes singular or a dimension's variance collapses.
package propose

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/Shilin036/root-simple-mcmc"
)

// machine epsilon for float64, as in the source's reliance on
// std::numeric_limits<double>::epsilon().
const epsilon = 2.220446049250313e-16

type dimKind uint8

const (
	gaussianDim dimKind = iota
	uniformDim
)

type dimSpec struct {
	kind dimKind

	// varianceHint is sigmaHint^2 for a Gaussian dimension; 0 means
	// "no hint, use the default variance of 1".
	varianceHint float64

	// min, max bound a Uniform dimension, [min, max).
	min, max float64
}

func (d dimSpec) expectedVariance() float64 {
	switch d.kind {
	case uniformDim:
		width := d.max - d.min
		return width * width / 12
	default:
		if d.varianceHint > 0 {
			return d.varianceHint
		}
		return 1
	}
}

// Adaptive implements mcmc.Proposer with an adaptive Gaussian random
// walk: the proposal covariance is estimated online from the chain's
// own history and periodically re-decomposed via Cholesky, and the
// global step scale sigma is nudged toward a target acceptance rate.
// Individual dimensions may be overridden to draw from a fixed
// Uniform range instead of participating in the correlated Gaussian
// update.
//
// The zero value, besides needing a Source, is ready to use: the
// dimensionality and all windows are inferred from the first point
// passed to Propose.
type Adaptive struct {
	Source mcmc.RandomSource

	// TargetAcceptance is the asymptotic acceptance rate the scale
	// control seeks. Zero means the default of 0.44.
	TargetAcceptance float64

	dim     int
	dimSpec []dimSpec

	lastPoint []float64
	lastValue float64

	centralPoint  []float64
	centralTrials float64

	currentCov       *mat.SymDense
	covarianceTrials float64
	covarianceWindow int

	decomposition *mat.TriDense

	sigma            float64
	acceptance       float64
	acceptanceTrials float64
	acceptanceWindow int

	trials     int
	successes  int
	nextUpdate int

	stateInitialized bool
	frozen           bool
}

// NewAdaptive returns an Adaptive proposal drawing from src.
func NewAdaptive(src mcmc.RandomSource) *Adaptive {
	return &Adaptive{Source: src}
}

func (a *Adaptive) targetAcceptance() float64 {
	if a.TargetAcceptance > 0 {
		return a.TargetAcceptance
	}
	return 0.44
}

// SetDim fixes the dimensionality of the proposal. It may only be
// called once, and not after Propose has inferred the dimensionality
// from a point; otherwise it panics. After SetDim, Propose panics if
// given a point of a different length.
func (a *Adaptive) SetDim(dim int) {
	if a.dim != 0 {
		panic("propose: dimensionality has already been set")
	}
	a.setDim(dim)
}

func (a *Adaptive) setDim(dim int) {
	a.dim = dim
	a.dimSpec = make([]dimSpec, dim)
}

// SetGaussian records a per-dimension variance hint (sigmaHint^2) for
// dimension i, 0 <= i < dim. A sigmaHint of 0 clears any hint, falling
// back to the default variance of 1.
func (a *Adaptive) SetGaussian(i int, sigmaHint float64) {
	a.checkDim(i)
	a.dimSpec[i] = dimSpec{kind: gaussianDim, varianceHint: sigmaHint * sigmaHint}
}

// SetUniform overrides dimension i to draw independently from
// U[min, max) instead of participating in the correlated Gaussian
// proposal.
func (a *Adaptive) SetUniform(i int, min, max float64) {
	a.checkDim(i)
	if !(min < max) {
		panic("propose: uniform minimum must be less than maximum")
	}
	a.dimSpec[i] = dimSpec{kind: uniformDim, min: min, max: max}
}

func (a *Adaptive) checkDim(i int) {
	if i < 0 || i >= len(a.dimSpec) {
		panic(fmt.Sprintf("propose: dimension %d is out of range", i))
	}
}

// SetCovarianceWindow sets the effective memory, in samples, of the
// running mean/covariance estimators. A window below 1000 is replaced
// by 10,000,000 the next time ResetProposal runs.
func (a *Adaptive) SetCovarianceWindow(w int) {
	a.covarianceWindow = w
}

// Freeze disables future calls to UpdateProposal from within Propose,
// so the Cholesky factor (and hence the proposal covariance) stays
// fixed at whatever it was the last time it was computed. This is
// useful for verifying detailed balance against a stationary
// proposal, and has no equivalent knob in the source macro (there,
// freezing meant never calling UpdateProposal at all).
func (a *Adaptive) Freeze() { a.frozen = true }

// Unfreeze re-enables adaptation disabled by Freeze.
func (a *Adaptive) Unfreeze() { a.frozen = false }

// EstimatedCenter returns the current running-mean estimate of the
// posterior center. The returned slice is a copy.
func (a *Adaptive) EstimatedCenter() []float64 {
	return append([]float64(nil), a.centralPoint...)
}

// Propose implements mcmc.Proposer.
func (a *Adaptive) Propose(proposal, current []float64, currentLogDensity float64) {
	if len(proposal) != len(current) {
		panic("propose: proposal and current vectors must be the same length")
	}

	a.updateState(current, currentLogDensity)

	copy(proposal, current)

	for i := range proposal {
		if a.dimSpec[i].kind == uniformDim {
			proposal[i] = a.dimSpec[i].min + a.Source.Uniform()*(a.dimSpec[i].max-a.dimSpec[i].min)
			continue
		}
		r := a.Source.Gauss(0, 1)
		for j := range proposal {
			if a.dimSpec[j].kind == uniformDim {
				continue
			}
			proposal[j] += a.sigma * r * a.decomposition.At(i, j)
		}
	}
}

// updateState folds (current, value) into the running statistics and
// scale control, and periodically refreshes the Cholesky cache. This
// is UpdateState in the spec, called at the top of every proposal
// with the *previous* accepted point, which is how it learns whether
// the previous proposal was accepted (the point moved) or rejected.
func (a *Adaptive) updateState(current []float64, value float64) {
	a.initializeState(current, value)

	a.trials++

	// Heuristic "did we move?" check. The source compares only
	// current[1] as a cheap proxy; we instead always test full
	// vector equality, which is simple, correct, and only
	// marginally more expensive (recommended by the design notes).
	moved := value != a.lastValue || !floats.Equal(current, a.lastPoint)
	if moved {
		a.successes++
	}

	// Exponential-moving acceptance, weighted by acceptanceTrials.
	a.acceptance *= a.acceptanceTrials
	if moved {
		a.acceptance++
	}
	a.acceptance /= a.acceptanceTrials + 1
	a.acceptanceTrials = math.Min(float64(a.acceptanceWindow), a.acceptanceTrials+1)

	// Scale adjustment: no change when acceptance == target.
	eps := math.Min(0.001, 0.5/float64(a.acceptanceWindow))
	a.sigma *= math.Pow(a.acceptance/a.targetAcceptance(), eps)

	// Running mean, updated before the covariance uses it.
	for i, v := range current {
		a.centralPoint[i] = (a.centralPoint[i]*a.centralTrials + v) / (a.centralTrials + 1)
	}
	a.centralTrials = math.Min(float64(a.covarianceWindow), a.centralTrials+1)

	// Running covariance, lower triangle computed then mirrored (here,
	// mirrored implicitly: SymDense.SetSym stores one copy).
	for i := range current {
		for j := 0; j <= i; j++ {
			r := (current[i] - a.centralPoint[i]) * (current[j] - a.centralPoint[j])
			v := (a.currentCov.At(i, j)*a.covarianceTrials + r) / (a.covarianceTrials + 1)
			a.currentCov.SetSym(i, j, v)
		}
	}
	a.covarianceTrials = math.Min(float64(a.covarianceWindow), a.covarianceTrials+1)

	a.nextUpdate--
	if moved && a.nextUpdate < 1 {
		a.nextUpdate = a.acceptanceWindow + a.successes/2
		if !a.frozen {
			a.UpdateProposal()
		}
	}

	copy(a.lastPoint, current)
	a.lastValue = value
}

// UpdateProposal forces a recomputation of the Cholesky factor from
// the current covariance estimate. It is called automatically during
// the run; user code rarely needs to call it directly.
func (a *Adaptive) UpdateProposal() {
	if a.tryFactorize() {
		a.deweight()
		return
	}

	a.repairCovariance()
	if a.tryFactorize() {
		a.deweight()
		return
	}

	// Still not positive-definite: give up on the accumulated
	// estimate entirely and start over from the last accepted point.
	a.ResetProposal()
}

func (a *Adaptive) tryFactorize() bool {
	var chol mat.Cholesky
	ok := chol.Factorize(a.currentCov)
	if !ok {
		return false
	}
	var u mat.TriDense
	chol.UTo(&u)
	a.decomposition = &u
	return true
}

// repairCovariance applies the variance floor and correlation ceiling
// of the spec's numerical defenses, in place.
func (a *Adaptive) repairCovariance() {
	sqrtEps := math.Sqrt(epsilon)

	for i := 0; i < a.dim; i++ {
		floor := sqrtEps * a.dimSpec[i].expectedVariance()
		if a.currentCov.At(i, i) < floor {
			a.currentCov.SetSym(i, i, floor)
		}
	}

	for i := 0; i < a.dim; i++ {
		for j := i + 1; j < a.dim; j++ {
			cii := a.currentCov.At(i, i)
			cjj := a.currentCov.At(j, j)
			cij := a.currentCov.At(i, j)
			rho := cij / math.Sqrt(cii*cjj)
			if rho >= 0.95 {
				a.currentCov.SetSym(i, j, 0.95*0.95*math.Sqrt(cii*cjj))
			}
		}
	}
}

// deweight increases the relative influence of future observations
// after a Cholesky refresh, following the source's (loosely motivated,
// but faithfully reproduced) forgetting rule.
func (a *Adaptive) deweight() {
	a.covarianceTrials = math.Min(math.Max(1000, 0.1*a.covarianceTrials), 0.1*float64(a.covarianceWindow))
	a.acceptanceTrials = math.Min(math.Max(1000, 0.1*a.acceptanceTrials), 0.1*float64(a.acceptanceWindow))
}

// ResetProposal discards accumulated covariance information, rebasing
// the running mean/covariance on the most recent point observed by
// UpdateState (lastPoint is kept as the new anchor).
func (a *Adaptive) ResetProposal() {
	a.trials = 0
	a.successes = 0

	if a.sigma < 0.01*math.Sqrt(1/float64(a.dim)) {
		a.sigma = math.Sqrt(1 / float64(a.dim))
	}

	a.currentCov = mat.NewSymDense(a.dim, nil)
	for i := 0; i < a.dim; i++ {
		spec := a.dimSpec[i]
		if spec.kind == gaussianDim && spec.varianceHint > 0 {
			a.currentCov.SetSym(i, i, spec.varianceHint)
		} else {
			a.currentCov.SetSym(i, i, 1)
		}
	}

	if a.covarianceWindow < 1000 {
		a.covarianceWindow = 10000000
	}

	a.acceptance = a.targetAcceptance()
	a.acceptanceTrials = math.Min(10, float64(a.acceptanceWindow)/2)

	a.centralPoint = append([]float64(nil), a.lastPoint...)
	a.centralTrials = math.Min(10, float64(a.covarianceWindow)/10)

	a.UpdateProposal()
}

// initializeState runs once, the first time Propose is called.
func (a *Adaptive) initializeState(current []float64, value float64) {
	if a.stateInitialized {
		return
	}

	if a.dim == 0 {
		a.setDim(len(current))
	} else if a.dim != len(current) {
		panic("propose: mismatch in the dimensionality")
	}

	a.lastValue = value
	a.lastPoint = append([]float64(nil), current...)

	a.acceptanceWindow = a.dim*a.dim + 1000
	a.sigma = math.Sqrt(1 / float64(a.dim))

	a.ResetProposal()

	a.nextUpdate = a.acceptanceWindow
	a.stateInitialized = true
}
