// Package agent defines the kinds of suggestion-taking agents that can
// be evaluated
package agent

import (
	"fmt"
)

// Kind enumerates the behaviours an evaluated agent can have
type Kind int

const (
	// Normal acts greedily on its own belief and ignores suggestions
	Normal Kind = iota

	// Perfect acts as if it always knew the true state
	Perfect

	// Random executes uniformly random actions
	Random

	// Naive updates its belief from admitted suggestions with a fixed
	// weight, but executes the suggestion itself only on a ν-coin flip
	Naive

	// Scaled reweights its belief towards suggestion-consistent states
	// with sharpness τ and acts greedily on the result
	Scaled

	// Noisy reweights its belief by the likelihood of a
	// Boltzmann-rational advisor producing the suggestion, with
	// rationality λ, and acts greedily on the result
	Noisy
)

func (k Kind) String() string {
	switch k {
	case Normal:
		return "normal"
	case Perfect:
		return "perfect"
	case Random:
		return "random"
	case Naive:
		return "naive"
	case Scaled:
		return "scaled"
	case Noisy:
		return "noisy"
	}
	return fmt.Sprintf("unknown(%d)", int(k))
}

// Agent is an immutable agent kind together with its hyperparameter.
// Each kind has at most one hyperparameter, and the per-kind
// constructors make invalid combinations unrepresentable.
type Agent struct {
	kind  Kind
	param float64
}

// NewNormal returns an agent that acts on its own belief only
func NewNormal() Agent {
	return Agent{kind: Normal}
}

// NewPerfect returns an agent that acts on the true state
func NewPerfect() Agent {
	return Agent{kind: Perfect}
}

// NewRandom returns an agent that acts uniformly at random
func NewRandom() Agent {
	return Agent{kind: Random}
}

// NewNaive returns a naive suggestion-taking agent that executes an
// admitted suggestion with probability nu
func NewNaive(nu float64) (Agent, error) {
	if nu < 0 || nu > 1 {
		return Agent{}, fmt.Errorf("naive: ν must be in [0, 1], got %v", nu)
	}
	return Agent{kind: Naive, param: nu}, nil
}

// NewScaled returns a suggestion-taking agent that reweights its
// belief towards suggestion-consistent states with sharpness tau
func NewScaled(tau float64) (Agent, error) {
	if tau < 0 {
		return Agent{}, fmt.Errorf("scaled: τ must be non-negative, got %v",
			tau)
	}
	return Agent{kind: Scaled, param: tau}, nil
}

// NewNoisy returns a suggestion-taking agent that models the advisor
// as Boltzmann-rational with rationality lambda
func NewNoisy(lambda float64) (Agent, error) {
	if lambda < 0 {
		return Agent{}, fmt.Errorf("noisy: λ must be non-negative, got %v",
			lambda)
	}
	return Agent{kind: Noisy, param: lambda}, nil
}

// Kind returns the agent's kind
func (a Agent) Kind() Kind {
	return a.kind
}

// FusesSuggestions returns whether the agent's kind incorporates
// admitted suggestions into its belief and action choice
func (a Agent) FusesSuggestions() bool {
	return a.kind == Naive || a.kind == Scaled || a.kind == Noisy
}

// Nu returns the ν parameter of a naive agent. Nu panics if the agent
// is not naive.
func (a Agent) Nu() float64 {
	if a.kind != Naive {
		panic(fmt.Sprintf("nu: %v agent has no ν parameter", a.kind))
	}
	return a.param
}

// Tau returns the τ parameter of a scaled agent. Tau panics if the
// agent is not scaled.
func (a Agent) Tau() float64 {
	if a.kind != Scaled {
		panic(fmt.Sprintf("tau: %v agent has no τ parameter", a.kind))
	}
	return a.param
}

// Lambda returns the λ parameter of a noisy agent. Lambda panics if
// the agent is not noisy.
func (a Agent) Lambda() float64 {
	if a.kind != Noisy {
		panic(fmt.Sprintf("lambda: %v agent has no λ parameter", a.kind))
	}
	return a.param
}

func (a Agent) String() string {
	switch a.kind {
	case Naive:
		return fmt.Sprintf("naive(ν=%.2f)", a.param)
	case Scaled:
		return fmt.Sprintf("scaled(τ=%.2f)", a.param)
	case Noisy:
		return fmt.Sprintf("noisy(λ=%.2f)", a.param)
	}
	return a.kind.String()
}
