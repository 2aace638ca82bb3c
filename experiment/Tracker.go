package experiment

import (
	"fmt"
	"io"
)

// StepTrace packages together everything that happened on a single
// simulated timestep. Traces are handed to trackers as they occur and
// are not retained by the experiment.
type StepTrace struct {
	Trial       int
	Step        int     // 1-based within the trial
	State       int     // true state before the transition
	Baseline    int     // best action under the agent's own belief
	Perfect     int     // best action given the true state
	Suggested   int     // equals Baseline when no suggestion was made
	Admitted    bool    // whether the suggestion passed all gates
	Executed    int     // action actually taken
	Observation int
	Reward      float64
}

// Tracker observes per-step traces as an experiment runs. Renderers,
// loggers, and test probes all attach here.
//
// Trackers are called from the worker goroutine running the trial, so
// a Tracker used with more than one worker must be safe for concurrent
// use.
type Tracker interface {
	Track(t StepTrace)
}

// VerboseTracker prints every step trace to an io.Writer
type VerboseTracker struct {
	w io.Writer
}

// NewVerboseTracker returns a new VerboseTracker printing to w
func NewVerboseTracker(w io.Writer) *VerboseTracker {
	return &VerboseTracker{w: w}
}

// Track prints the step trace
func (v *VerboseTracker) Track(t StepTrace) {
	suggested := "-"
	if t.Admitted {
		suggested = fmt.Sprintf("%d", t.Suggested)
	}
	fmt.Fprintf(v.w, "trial %d step %d | state: %d  executed: %d  "+
		"baseline: %d  perfect: %d  suggested: %v  obs: %d  reward: %.2f\n",
		t.Trial, t.Step, t.State, t.Executed, t.Baseline, t.Perfect,
		suggested, t.Observation, t.Reward)
}
