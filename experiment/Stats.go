package experiment

import (
	"fmt"
	"io"
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/samuelfneumann/gosuggest/agent"
)

// Summary aggregates one metric over all trials of a run
type Summary struct {
	Mean   float64
	Std    float64 // sample standard deviation
	StdErr float64
	CI95   float64 // 95% confidence interval half-width
}

// Describe computes the summary statistics of xs
func Describe(xs []float64) Summary {
	mean := stat.Mean(xs, nil)
	if len(xs) < 2 {
		return Summary{Mean: mean}
	}

	std := stat.StdDev(xs, nil)
	stdErr := std / math.Sqrt(float64(len(xs)))
	return Summary{
		Mean:   mean,
		Std:    std,
		StdErr: stdErr,
		CI95:   1.96 * stdErr,
	}
}

// RunStatistics aggregates a full run's trial results per metric
type RunStatistics struct {
	Agent  agent.Agent
	Trials int

	Reward          Summary
	Steps           Summary
	Suggestions     Summary
	SuggestionsStep Summary // per-trial suggestions-per-step ratio
}

// Statistics computes the run's aggregate statistics. Statistics
// panics if the experiment has not been run.
func (e *Experiment) Statistics() RunStatistics {
	results := e.Results()

	rewards := make([]float64, len(results))
	steps := make([]float64, len(results))
	suggestions := make([]float64, len(results))
	perStep := make([]float64, len(results))
	for i, r := range results {
		rewards[i] = r.Reward
		steps[i] = float64(r.Steps)
		suggestions[i] = float64(r.Suggestions)
		perStep[i] = float64(r.Suggestions) / float64(r.Steps)
	}

	return RunStatistics{
		Agent:           e.config.Agent,
		Trials:          len(results),
		Reward:          Describe(rewards),
		Steps:           Describe(steps),
		Suggestions:     Describe(suggestions),
		SuggestionsStep: Describe(perStep),
	}
}

// Report renders the run's statistics as a fixed-column table.
// Report panics if the experiment has not been run.
func (e *Experiment) Report(w io.Writer) {
	e.Statistics().Report(w)
}

// Report renders the statistics as a fixed-column table
func (s RunStatistics) Report(w io.Writer) {
	fmt.Fprintf(w, "Agent: %v  |  Trials: %d\n", s.Agent, s.Trials)
	fmt.Fprintf(w, "%-18v %12v %12v %12v %12v\n", "Metric", "Mean", "Std",
		"StdErr", "CI95")

	row := func(name string, m Summary) {
		fmt.Fprintf(w, "%-18v %12.4f %12.4f %12.4f %12.4f\n", name, m.Mean,
			m.Std, m.StdErr, m.CI95)
	}
	row("Reward", s.Reward)
	row("Steps", s.Steps)
	row("Suggestions", s.Suggestions)
	row("Suggestions/Step", s.SuggestionsStep)
}
