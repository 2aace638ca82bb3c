// Package suggestion implements the generation of action suggestions
// and the fusion of admitted suggestions into an agent's belief and
// action choice
package suggestion

import (
	"fmt"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

// Advisor returns the action an idealized suggester would currently
// recommend, usually its best action under its own belief or, where no
// advisor belief is meaningful, the perfect-knowledge action.
type Advisor func() int

// Generator produces per-step action suggestions of tunable quality.
// With probability equal to the mixing ratio a suggestion comes from
// the advisor; otherwise it is drawn uniformly from the full action
// space.
type Generator struct {
	mixRatio float64
	reliable distuv.Bernoulli
	uniform  distuv.Categorical
}

// NewGenerator returns a new Generator over numActions actions. A
// mixRatio of 1 always consults the advisor; a mixRatio of 0 always
// suggests at random. All draws come from src.
func NewGenerator(mixRatio float64, numActions int,
	src rand.Source) (*Generator, error) {
	if mixRatio < 0 || mixRatio > 1 {
		return nil, fmt.Errorf("generator: mixing ratio must be in [0, 1], "+
			"got %v", mixRatio)
	}
	if numActions <= 0 {
		return nil, fmt.Errorf("generator: non-positive action count %d",
			numActions)
	}

	weights := make([]float64, numActions)
	for i := range weights {
		weights[i] = 1.0
	}

	return &Generator{
		mixRatio: mixRatio,
		reliable: distuv.Bernoulli{P: mixRatio, Src: src},
		uniform:  distuv.NewCategorical(weights, src),
	}, nil
}

// MixRatio returns the generator's mixing ratio
func (g *Generator) MixRatio() float64 {
	return g.mixRatio
}

// Suggest returns the next suggested action
func (g *Generator) Suggest(advise Advisor) int {
	if g.reliable.Rand() == 1 {
		return advise()
	}
	return int(g.uniform.Rand())
}
