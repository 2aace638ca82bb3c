package experiment

import (
	"fmt"
	"math"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/samuelfneumann/gosuggest/agent"
	"github.com/samuelfneumann/gosuggest/policy"
	"github.com/samuelfneumann/gosuggest/pomdp"
	"github.com/samuelfneumann/gosuggest/suggestion"
)

// TrialResult is the outcome of a single independent trial. It is
// written exactly once, when the trial finishes, and never mutated
// afterwards.
type TrialResult struct {
	Reward      float64 // discounted return over the trial
	Steps       int
	Suggestions int // suggestions admitted, never above the budget
}

// trial holds the fully independent mutable state of one simulation:
// its own random stream, its own policy copies for the agent and the
// suggester, and its own belief vectors. Nothing in a trial is shared
// with another worker.
type trial struct {
	id    int
	model pomdp.Model
	ag    agent.Agent

	agentPolicy     policy.Policy
	suggesterPolicy policy.Policy
	table           *policy.ValueTable

	maxSteps       int
	maxSuggestions int // 0 means unbounded

	gen           *suggestion.Generator
	reception     distuv.Bernoulli
	uniformAction distuv.Categorical

	src rand.Source
	rng *rand.Rand

	trackers []Tracker
}

// newTrial constructs the trial with index id for config c. Each trial
// seeds its own source so that its draws are reproducible and
// independent of every other trial's.
func newTrial(c *Config, id int) (*trial, error) {
	src := rand.NewSource(c.Seed + uint64(id))

	gen, err := suggestion.NewGenerator(c.MixRatio, c.Model.NumActions(),
		src)
	if err != nil {
		return nil, fmt.Errorf("trial %d: %w", id, err)
	}

	weights := make([]float64, c.Model.NumActions())
	for i := range weights {
		weights[i] = 1.0
	}

	return &trial{
		id:              id,
		model:           c.Model,
		ag:              c.Agent,
		agentPolicy:     c.Policy.Copy(),
		suggesterPolicy: c.Policy.Copy(),
		table:           c.ValueTable,
		maxSteps:        c.MaxSteps,
		maxSuggestions:  c.MaxSuggestions,
		gen:             gen,
		reception:       distuv.Bernoulli{P: c.ReceptionRate, Src: src},
		uniformAction:   distuv.NewCategorical(weights, src),
		src:             src,
		rng:             rand.New(src),
		trackers:        c.Trackers,
	}, nil
}

// underBudget returns whether another suggestion may still be admitted
func (t *trial) underBudget(admitted int) bool {
	return t.maxSuggestions <= 0 || admitted < t.maxSuggestions
}

func (t *trial) track(trace StepTrace) {
	for _, tracker := range t.trackers {
		tracker.Track(trace)
	}
}

// run executes the trial to completion and returns its result. A trial
// ends early if the model's terminal predicate holds, otherwise it
// runs for the full step budget.
func (t *trial) run() (TrialResult, error) {
	b := t.model.InitialBelief()
	suggesterB := t.model.InitialBelief()
	state := t.model.SampleInitialState(t.rng)
	discount := t.model.Discount()

	var result TrialResult
	for step := 1; step <= t.maxSteps; step++ {
		baseline := t.agentPolicy.SelectAction(b)
		perfect := t.agentPolicy.SelectActionFromState(state)

		executed := baseline
		suggested := baseline
		admitted := false

		if t.ag.FusesSuggestions() {
			suggested = t.gen.Suggest(func() int {
				return t.suggesterPolicy.SelectAction(suggesterB)
			})

			// A suggestion is admitted only if it is novel, the budget
			// has room, and the reception coin comes up.
			if suggested != baseline && t.underBudget(result.Suggestions) &&
				t.reception.Rand() == 1 {
				admitted = true
				result.Suggestions++

				fused, action, err := suggestion.Fuse(t.ag, t.src, b,
					t.agentPolicy, suggested, baseline, t.table)
				if err != nil {
					return TrialResult{}, fmt.Errorf("trial %d, step %d: %w",
						t.id, step, err)
				}
				b = fused
				executed = action
			}
		}

		switch t.ag.Kind() {
		case agent.Perfect:
			executed = perfect
		case agent.Random:
			executed = int(t.uniformAction.Rand())
		}

		next, obs, reward := t.model.Step(t.rng, state, executed)
		result.Reward += math.Pow(discount, float64(step-1)) * reward
		result.Steps = step

		t.track(StepTrace{
			Trial:       t.id,
			Step:        step,
			State:       state,
			Baseline:    baseline,
			Perfect:     perfect,
			Suggested:   suggested,
			Admitted:    admitted,
			Executed:    executed,
			Observation: obs,
			Reward:      reward,
		})

		// Both the agent and the idealized suggester condition on the
		// executed action and the realized observation.
		if err := b.Filter(t.model, executed, obs); err != nil {
			return TrialResult{}, fmt.Errorf("trial %d, step %d: agent "+
				"belief: %w", t.id, step, err)
		}
		if err := suggesterB.Filter(t.model, executed, obs); err != nil {
			return TrialResult{}, fmt.Errorf("trial %d, step %d: suggester "+
				"belief: %w", t.id, step, err)
		}

		state = next
		if t.model.Terminal(state) {
			break
		}
	}

	return result, nil
}
