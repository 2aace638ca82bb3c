// Package tiger implements the classic tiger POMDP
package tiger

import (
	"fmt"

	"golang.org/x/exp/rand"

	"github.com/samuelfneumann/gosuggest/belief"
	"github.com/samuelfneumann/gosuggest/policy"
)

// States. A third absorbing state marks a finished episode so that
// opening a door terminates the trial.
const (
	TigerLeft int = iota
	TigerRight
	Done

	numStates
)

// Actions
const (
	Listen int = iota
	OpenLeft
	OpenRight

	numActions
)

// Observations
const (
	HearLeft int = iota
	HearRight

	numObservations
)

// Default rewards and listening accuracy
const (
	ListenReward   float64 = -1.0
	EscapeReward   float64 = 10.0
	TigerReward    float64 = -100.0
	ListenAccuracy float64 = 0.85
)

// Tiger implements the tiger problem. A tiger waits behind one of two
// doors. Listening is cheap and reports the tiger's side correctly
// with probability ListenAccuracy. Opening a door ends the episode
// with a large penalty if the tiger is behind it and a small reward
// otherwise.
type Tiger struct {
	discount float64
	prior    []float64 // prior over the two tiger positions
}

// New returns a new Tiger with the given discount factor and a
// uniform prior over the tiger's position
func New(discount float64) *Tiger {
	return &Tiger{discount: discount, prior: []float64{0.5, 0.5}}
}

// NewWithPrior returns a new Tiger whose initial belief places prior
// over the two tiger positions. The prior must have one entry per
// door.
func NewWithPrior(discount float64, prior []float64) (*Tiger, error) {
	if len(prior) != 2 {
		return nil, fmt.Errorf("tiger: prior has %d entries, want 2",
			len(prior))
	}
	if _, err := belief.FromSlice(prior); err != nil {
		return nil, fmt.Errorf("tiger: invalid prior: %w", err)
	}

	p := make([]float64, 2)
	copy(p, prior)
	return &Tiger{discount: discount, prior: p}, nil
}

// NumStates returns the number of states, including the absorbing
// done state
func (t *Tiger) NumStates() int { return numStates }

// NumActions returns the number of actions
func (t *Tiger) NumActions() int { return numActions }

// NumObservations returns the number of observations
func (t *Tiger) NumObservations() int { return numObservations }

// Discount returns the discount factor
func (t *Tiger) Discount() float64 { return t.discount }

// Terminal returns whether state ends the episode
func (t *Tiger) Terminal(state int) bool { return state == Done }

// TransitionProb returns the probability of moving to state next when
// taking action in state. Listening never moves the tiger; opening
// either door moves to the absorbing done state.
func (t *Tiger) TransitionProb(state, action, next int) float64 {
	if state == Done || action != Listen {
		if next == Done {
			return 1.0
		}
		return 0.0
	}

	if next == state {
		return 1.0
	}
	return 0.0
}

// ObservationProb returns the probability of observing obs after a
// transition into state next under action. Only listening is
// informative; any other transition emits a uniform observation.
func (t *Tiger) ObservationProb(next, action, obs int) float64 {
	if action != Listen || next == Done {
		return 1.0 / float64(numObservations)
	}

	correct := (next == TigerLeft && obs == HearLeft) ||
		(next == TigerRight && obs == HearRight)
	if correct {
		return ListenAccuracy
	}
	return 1.0 - ListenAccuracy
}

// Step samples the generative model
func (t *Tiger) Step(rng *rand.Rand, state, action int) (int, int, float64) {
	if state == Done {
		return Done, rng.Intn(numObservations), 0.0
	}

	switch action {
	case Listen:
		obs := HearRight
		if state == TigerLeft {
			obs = HearLeft
		}
		if rng.Float64() >= ListenAccuracy { // inaccurate listen
			obs = 1 - obs
		}
		return state, obs, ListenReward

	case OpenLeft, OpenRight:
		reward := EscapeReward
		if (action == OpenLeft && state == TigerLeft) ||
			(action == OpenRight && state == TigerRight) {
			reward = TigerReward
		}
		return Done, rng.Intn(numObservations), reward
	}

	panic("step: no such action")
}

// SampleInitialState places the tiger behind a door drawn from the
// prior
func (t *Tiger) SampleInitialState(rng *rand.Rand) int {
	if rng.Float64() < t.prior[TigerLeft]/(t.prior[TigerLeft]+
		t.prior[TigerRight]) {
		return TigerLeft
	}
	return TigerRight
}

// InitialBelief returns a fresh belief matching the prior over the
// tiger's position
func (t *Tiger) InitialBelief() *belief.Vector {
	b, err := belief.FromSlice([]float64{t.prior[TigerLeft],
		t.prior[TigerRight], 0.0})
	if err != nil {
		panic(err)
	}
	return b
}

// ValueTable returns action values for the tiger problem, shaped the
// way an externally solved table would be. Listening is worth a small
// hedge from either tiger state, opening the tiger's door is ruinous,
// and the done state is worthless.
func ValueTable() *policy.ValueTable {
	q, err := policy.NewValueTable(numStates, numActions, []float64{
		// Listen, OpenLeft, OpenRight
		1.8, TigerReward, EscapeReward, // TigerLeft
		1.8, EscapeReward, TigerReward, // TigerRight
		0.0, 0.0, 0.0, // Done
	})
	if err != nil {
		panic(err)
	}
	return q
}
