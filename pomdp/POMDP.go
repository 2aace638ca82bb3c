// Package pomdp outlines the interfaces that environment collaborators
// must implement to be evaluated
package pomdp

import (
	"golang.org/x/exp/rand"

	"github.com/samuelfneumann/gosuggest/belief"
)

// Model is a generative POMDP supplied by an external collaborator.
// States, actions, and observations are integer indices into the
// model's finite spaces, enumerated from 0.
//
// Solving the model is never this module's concern: a Model is only
// ever sampled and queried for probabilities. Implementations must be
// safe for unsynchronized concurrent reads, since a single Model is
// shared by all trials of a run.
type Model interface {
	belief.Model

	// NumActions returns the size of the action space
	NumActions() int

	// NumObservations returns the size of the observation space
	NumObservations() int

	// Discount returns the discount factor in (0, 1]
	Discount() float64

	// Step samples a next state, an observation, and an immediate
	// reward from the generative model, given the current state and
	// the executed action. All randomness is drawn from rng so that
	// trials with independent sources never interact.
	Step(rng *rand.Rand, state, action int) (next, obs int, reward float64)

	// Terminal returns whether state ends an episode
	Terminal(state int) bool

	// SampleInitialState draws a starting state from the model's
	// initial-state distribution
	SampleInitialState(rng *rand.Rand) int

	// InitialBelief returns a fresh belief over the model's states
	// consistent with the initial-state distribution. Each call must
	// return an independent Vector: beliefs are mutated per trial.
	InitialBelief() *belief.Vector
}
