package suggestion

import (
	"fmt"
	"math"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/samuelfneumann/gosuggest/agent"
	"github.com/samuelfneumann/gosuggest/belief"
	"github.com/samuelfneumann/gosuggest/policy"
	"github.com/samuelfneumann/gosuggest/utils/floatutils"
)

// naiveSharpness is the fixed belief-update sharpness used by the
// naive kind. The naive agent updates its belief with this weight no
// matter what its ν-coin later decides, so admitted suggestions shape
// later steps even when the immediate action ignores them.
const naiveSharpness float64 = 1.0

// Fuse incorporates an admitted suggestion into a belief and selects
// the action to execute, according to the fusion strategy of ag. The
// baseline action is the one the agent would have executed without the
// suggestion; table is required only by the noisy kind. The returned
// belief is a fresh, renormalized Vector; b is never modified.
//
// Only the naive kind consumes randomness (its ν-coin, drawn from
// src); scaled and noisy fusion are pure functions of their inputs.
func Fuse(ag agent.Agent, src rand.Source, b *belief.Vector,
	pol policy.Policy, suggested, baseline int,
	table *policy.ValueTable) (*belief.Vector, int, error) {
	switch ag.Kind() {
	case agent.Naive:
		return fuseNaive(ag.Nu(), src, b, pol, suggested, baseline)
	case agent.Scaled:
		return fuseScaled(ag.Tau(), b, pol, suggested)
	case agent.Noisy:
		return fuseNoisy(ag.Lambda(), b, pol, suggested, table)
	}

	return nil, 0, fmt.Errorf("fuse: %v agents do not fuse suggestions", ag)
}

// consistencyWeights returns multiplicative belief weights of
// exp(sharpness) for states whose state-optimal action equals the
// suggestion and 1 elsewhere. A sharpness of 0 leaves every weight at
// 1; as sharpness grows the reweighted belief collapses onto
// suggestion-consistent states.
func consistencyWeights(b *belief.Vector, pol policy.Policy, suggested int,
	sharpness float64) []float64 {
	weights := make([]float64, b.Len())
	boost := math.Exp(sharpness)
	for s := range weights {
		if pol.SelectActionFromState(s) == suggested {
			weights[s] = boost
		} else {
			weights[s] = 1.0
		}
	}
	return weights
}

// fuseScaled treats the suggestion as evidence that the true state is
// one where the suggested action is optimal, then acts greedily on the
// reweighted belief.
func fuseScaled(tau float64, b *belief.Vector, pol policy.Policy,
	suggested int) (*belief.Vector, int, error) {
	fused := b.Clone()
	if err := fused.Reweight(consistencyWeights(b, pol, suggested,
		tau)); err != nil {
		return nil, 0, fmt.Errorf("fuse: scaled: %w", err)
	}

	return fused, pol.SelectAction(fused), nil
}

// fuseNoisy reweights the belief by the likelihood that a
// Boltzmann-rational advisor with rationality lambda would have
// suggested the action from each state, then acts greedily on the
// reweighted belief.
func fuseNoisy(lambda float64, b *belief.Vector, pol policy.Policy,
	suggested int, table *policy.ValueTable) (*belief.Vector, int, error) {
	if table == nil {
		return nil, 0, fmt.Errorf("fuse: noisy: no action-value table")
	}

	weights := make([]float64, b.Len())
	for s := range weights {
		likelihood := floatutils.Softmax(table.ActionValues(s), lambda)
		weights[s] = likelihood[suggested]
	}

	fused := b.Clone()
	if err := fused.Reweight(weights); err != nil {
		return nil, 0, fmt.Errorf("fuse: noisy: %w", err)
	}

	return fused, pol.SelectAction(fused), nil
}

// fuseNaive updates the belief exactly as the scaled kind would with a
// fixed sharpness, but chooses the executed action by a ν-coin:
// the suggestion verbatim with probability nu, otherwise the baseline
// action. The coin ignores the updated belief.
func fuseNaive(nu float64, src rand.Source, b *belief.Vector,
	pol policy.Policy, suggested, baseline int) (*belief.Vector, int,
	error) {
	fused := b.Clone()
	if err := fused.Reweight(consistencyWeights(b, pol, suggested,
		naiveSharpness)); err != nil {
		return nil, 0, fmt.Errorf("fuse: naive: %w", err)
	}

	coin := distuv.Bernoulli{P: nu, Src: src}
	if coin.Rand() == 1 {
		return fused, suggested, nil
	}
	return fused, baseline, nil
}
