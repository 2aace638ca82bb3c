// Package experiment runs independent Monte Carlo trials of a
// suggestion-taking agent in a POMDP and aggregates their statistics
package experiment

import (
	"fmt"
	"os"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/samuelfneumann/progressbar"
	"golang.org/x/sync/errgroup"

	"github.com/samuelfneumann/gosuggest/agent"
	"github.com/samuelfneumann/gosuggest/policy"
	"github.com/samuelfneumann/gosuggest/pomdp"
)

// Config describes a full evaluation run. The zero value is not
// usable; construct an Experiment with New, which validates the
// configuration before any trial starts.
type Config struct {
	Model  pomdp.Model
	Policy policy.Policy
	Agent  agent.Agent

	// ValueTable holds externally loaded action values. It is required
	// only by the noisy agent kind.
	ValueTable *policy.ValueTable

	NumTrials int
	MaxSteps  int // per-trial step budget

	// MaxSuggestions bounds the suggestions admitted per trial. Zero
	// means unbounded.
	MaxSuggestions int

	// ReceptionRate is the probability that a novel, under-budget
	// suggestion is actually received by the agent
	ReceptionRate float64

	// MixRatio is the probability that a suggestion comes from the
	// advisor rather than uniformly at random
	MixRatio float64

	Seed uint64

	// Workers bounds the number of trials run concurrently. Zero means
	// GOMAXPROCS.
	Workers int

	// Progress displays a progress bar over trials
	Progress bool

	// Verbose prints every step trace to standard output
	Verbose bool

	// Trackers observe every step trace. With more than one worker
	// they must be safe for concurrent use.
	Trackers []Tracker
}

func (c *Config) validate() error {
	if c.Model == nil {
		return fmt.Errorf("no model")
	}
	if c.Policy == nil {
		return fmt.Errorf("no policy")
	}
	if c.NumTrials <= 0 {
		return fmt.Errorf("non-positive trial count %d", c.NumTrials)
	}
	if c.MaxSteps <= 0 {
		return fmt.Errorf("non-positive step budget %d", c.MaxSteps)
	}
	if c.MaxSuggestions < 0 {
		return fmt.Errorf("negative suggestion budget %d", c.MaxSuggestions)
	}
	if c.ReceptionRate < 0 || c.ReceptionRate > 1 {
		return fmt.Errorf("reception rate must be in [0, 1], got %v",
			c.ReceptionRate)
	}
	if c.MixRatio < 0 || c.MixRatio > 1 {
		return fmt.Errorf("mixing ratio must be in [0, 1], got %v",
			c.MixRatio)
	}
	if c.Agent.Kind() == agent.Noisy && c.ValueTable == nil {
		return fmt.Errorf("%v agent requires an action-value table",
			c.Agent)
	}
	if c.ValueTable != nil {
		if c.ValueTable.NumStates() != c.Model.NumStates() ||
			c.ValueTable.NumActions() != c.Model.NumActions() {
			return fmt.Errorf("action-value table is %d x %d but model "+
				"is %d x %d", c.ValueTable.NumStates(),
				c.ValueTable.NumActions(), c.Model.NumStates(),
				c.Model.NumActions())
		}
	}
	return nil
}

// Experiment runs NumTrials fully independent trials and collects
// their results. Each trial gets its own random stream, policy copies,
// and belief vectors; the only shared state is the immutable model and
// the read-only action-value table.
type Experiment struct {
	config    Config
	results   []TrialResult
	completed uint64 // atomic; progress only, decoupled from results
	ran       bool
}

// New returns a new Experiment for config c. New fails if the
// configuration is invalid, before any trial starts.
func New(c Config) (*Experiment, error) {
	if err := c.validate(); err != nil {
		return nil, fmt.Errorf("experiment: invalid configuration: %w", err)
	}

	if c.Verbose {
		c.Trackers = append(c.Trackers, NewVerboseTracker(os.Stdout))
	}

	return &Experiment{
		config:  c,
		results: make([]TrialResult, c.NumTrials),
	}, nil
}

// Run executes all trials. Trials write their results into a
// pre-sized slice indexed by trial id, so the only synchronization is
// the barrier at the end of the parallel-for. If any trial fails, the
// whole run is aborted: statistics over a partial trial set would be
// inconsistent.
func (e *Experiment) Run() error {
	if e.ran {
		return fmt.Errorf("run: experiment already ran")
	}

	workers := e.config.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	var bar *progressbar.ProgressBar
	if e.config.Progress {
		bar = progressbar.New(65, e.config.NumTrials,
			time.Second, true)
		bar.Display()
		defer bar.Close()
	}

	group := new(errgroup.Group)
	group.SetLimit(workers)

	for i := 0; i < e.config.NumTrials; i++ {
		i := i
		group.Go(func() error {
			t, err := newTrial(&e.config, i)
			if err != nil {
				return err
			}

			result, err := t.run()
			if err != nil {
				return err
			}
			e.results[i] = result

			atomic.AddUint64(&e.completed, 1)
			if bar != nil {
				bar.Increment()
			}
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return fmt.Errorf("run: %w", err)
	}

	e.ran = true
	return nil
}

// Completed returns the number of trials finished so far. It is safe
// to call while Run is in progress.
func (e *Experiment) Completed() int {
	return int(atomic.LoadUint64(&e.completed))
}

// Results returns the per-trial results. Results panics if the
// experiment has not been run.
func (e *Experiment) Results() []TrialResult {
	if !e.ran {
		panic("results: experiment has not been run")
	}
	return e.results
}
