package policy

import (
	"fmt"

	"gorgonia.org/tensor"

	"github.com/samuelfneumann/gosuggest/belief"
)

// ValueTable holds precomputed action values, one per state-action
// pair. Tables are produced by an external solver and loaded outside
// this module; here they are read-only and safe for unsynchronized
// concurrent reads.
type ValueTable struct {
	values     *tensor.Dense
	numStates  int
	numActions int
}

// NewValueTable returns a new ValueTable over the backing data, which
// must hold numStates * numActions values in row-major order (states
// index rows, actions index columns). The table takes ownership of
// data.
func NewValueTable(numStates, numActions int,
	data []float64) (*ValueTable, error) {
	if numStates <= 0 || numActions <= 0 {
		return nil, fmt.Errorf("valuetable: non-positive dimensions "+
			"(%d x %d)", numStates, numActions)
	}
	if len(data) != numStates*numActions {
		return nil, fmt.Errorf("valuetable: expected %d values, got %d",
			numStates*numActions, len(data))
	}

	values := tensor.NewDense(
		tensor.Float64,
		tensor.Shape{numStates, numActions},
		tensor.WithBacking(data),
	)

	return &ValueTable{values, numStates, numActions}, nil
}

// NumStates returns the number of states the table covers
func (v *ValueTable) NumStates() int { return v.numStates }

// NumActions returns the number of actions the table covers
func (v *ValueTable) NumActions() int { return v.numActions }

// At returns the value of taking action in state
func (v *ValueTable) At(state, action int) float64 {
	value, err := v.values.At(state, action)
	if err != nil {
		panic(fmt.Sprintf("at: index (%d, %d) out of range: %v", state,
			action, err))
	}
	return value.(float64)
}

// ActionValues returns a copy of the values of each action in state
func (v *ValueTable) ActionValues(state int) []float64 {
	values := make([]float64, v.numActions)
	for a := 0; a < v.numActions; a++ {
		values[a] = v.At(state, a)
	}
	return values
}

// ExpectedValues returns, for each action, the expectation of that
// action's value under belief b
func (v *ValueTable) ExpectedValues(b *belief.Vector) []float64 {
	if b.Len() != v.numStates {
		panic(fmt.Sprintf("expectedvalues: belief has %d states, table "+
			"has %d", b.Len(), v.numStates))
	}

	stateValues := make([]float64, v.numStates)
	expected := make([]float64, v.numActions)
	for a := 0; a < v.numActions; a++ {
		for s := 0; s < v.numStates; s++ {
			stateValues[s] = v.At(s, a)
		}
		expected[a] = b.Dot(stateValues)
	}
	return expected
}
