// Package belief implements dense belief states over finite state
// spaces and their Bayesian filtering
package belief

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// ErrInvalidObservation indicates that an observation had zero
// probability under every state reachable from the current belief.
// This is a modelling inconsistency, not a user error: a consistent
// generative model never emits such an observation.
var ErrInvalidObservation = errors.New("observation has zero probability " +
	"under all reachable states")

// ErrDegenerateBelief indicates that a belief update removed all
// probability mass, so the belief cannot be renormalized.
var ErrDegenerateBelief = errors.New("belief has no probability mass")

// Model describes the probabilities a belief needs in order to be
// filtered. It is the read-only slice of the environment collaborator
// that belief updates depend on.
type Model interface {
	// NumStates returns the size of the (finite) state space
	NumStates() int

	// TransitionProb returns the probability of transitioning to state
	// next when taking action in state
	TransitionProb(state, action, next int) float64

	// ObservationProb returns the probability of observing obs after a
	// transition into state next under action
	ObservationProb(next, action, obs int) float64
}

// Vector is a dense probability distribution over a finite state
// space. A Vector is always non-negative and sums to 1; every
// operation that modifies a Vector renormalizes it before returning.
//
// A Vector is owned by the trial that created it and is not safe for
// concurrent use.
type Vector struct {
	dist *mat.VecDense
}

// Uniform returns a new belief spreading probability mass uniformly
// over n states
func Uniform(n int) *Vector {
	if n <= 0 {
		panic(fmt.Sprintf("uniform: non-positive state count %d", n))
	}

	data := make([]float64, n)
	for i := range data {
		data[i] = 1.0 / float64(n)
	}
	return &Vector{mat.NewVecDense(n, data)}
}

// FromSlice returns a new belief backed by a copy of probs. The
// probabilities must be non-negative and have positive total mass;
// they are normalized to sum to 1.
func FromSlice(probs []float64) (*Vector, error) {
	if len(probs) == 0 {
		return nil, fmt.Errorf("fromslice: empty probability vector")
	}

	data := make([]float64, len(probs))
	for i, p := range probs {
		if p < 0 {
			return nil, fmt.Errorf("fromslice: negative probability %v at "+
				"index %d", p, i)
		}
		data[i] = p
	}

	total := floats.Sum(data)
	if total <= 0 {
		return nil, fmt.Errorf("fromslice: %w", ErrDegenerateBelief)
	}
	floats.Scale(1/total, data)

	return &Vector{mat.NewVecDense(len(data), data)}, nil
}

// Len returns the number of states the belief is defined over
func (b *Vector) Len() int {
	return b.dist.Len()
}

// At returns the probability mass on state i
func (b *Vector) At(i int) float64 {
	return b.dist.AtVec(i)
}

// Probs returns a copy of the belief's probabilities
func (b *Vector) Probs() []float64 {
	probs := make([]float64, b.dist.Len())
	copy(probs, b.dist.RawVector().Data)
	return probs
}

// Clone returns a deep copy of the belief
func (b *Vector) Clone() *Vector {
	clone := mat.NewVecDense(b.dist.Len(), nil)
	clone.CopyVec(b.dist)
	return &Vector{clone}
}

// Dot returns the expectation of values under the belief. The values
// slice must have one entry per state.
func (b *Vector) Dot(values []float64) float64 {
	if len(values) != b.dist.Len() {
		panic(fmt.Sprintf("dot: expected %d values, got %d", b.dist.Len(),
			len(values)))
	}
	return mat.Dot(b.dist, mat.NewVecDense(len(values), values))
}

// Reweight multiplies the belief elementwise by weights and
// renormalizes. The weights must have one entry per state. If the
// reweighting removes all probability mass, the belief is left
// unchanged and ErrDegenerateBelief is returned.
func (b *Vector) Reweight(weights []float64) error {
	if len(weights) != b.dist.Len() {
		return fmt.Errorf("reweight: expected %d weights, got %d",
			b.dist.Len(), len(weights))
	}

	reweighted := make([]float64, b.dist.Len())
	for i := range reweighted {
		reweighted[i] = b.dist.AtVec(i) * weights[i]
	}

	total := floats.Sum(reweighted)
	if total <= 0 {
		return fmt.Errorf("reweight: %w", ErrDegenerateBelief)
	}
	floats.Scale(1/total, reweighted)

	b.dist = mat.NewVecDense(len(reweighted), reweighted)
	return nil
}

// Filter performs a Bayesian belief update in place after taking
// action and observing obs. For each candidate next state s', the
// updated mass is proportional to
//
//	sum_s b[s] * T(s, action, s') * O(s', action, obs)
//
// renormalized to sum to 1. If the observation has zero probability
// under every reachable next state, the belief is left unchanged and
// an error wrapping ErrInvalidObservation is returned.
func (b *Vector) Filter(m Model, action, obs int) error {
	n := b.dist.Len()
	if m.NumStates() != n {
		return fmt.Errorf("filter: model has %d states but belief has %d",
			m.NumStates(), n)
	}

	next := make([]float64, n)
	for sNext := 0; sNext < n; sNext++ {
		obsProb := m.ObservationProb(sNext, action, obs)
		if obsProb == 0 {
			continue
		}

		var predicted float64
		for s := 0; s < n; s++ {
			if mass := b.dist.AtVec(s); mass > 0 {
				predicted += mass * m.TransitionProb(s, action, sNext)
			}
		}
		next[sNext] = predicted * obsProb
	}

	total := floats.Sum(next)
	if total <= 0 {
		return fmt.Errorf("filter: action %d, observation %d: %w", action,
			obs, ErrInvalidObservation)
	}
	floats.Scale(1/total, next)

	b.dist = mat.NewVecDense(n, next)
	return nil
}

// String returns a human-readable description of the belief
func (b *Vector) String() string {
	fa := mat.Formatted(b.dist.T(), mat.Prefix(""), mat.Squeeze())
	return fmt.Sprintf("Belief%v", fa)
}
