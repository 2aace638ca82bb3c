package policy

import (
	"github.com/samuelfneumann/gosuggest/belief"
	"github.com/samuelfneumann/gosuggest/utils/floatutils"
)

// QMDP is a Policy that acts greedily with respect to a precomputed
// action-value table. Under a belief it maximizes the belief-weighted
// expected action value; given an exact state it maximizes that
// state's row of the table.
//
// A QMDP is a pure function over its immutable table, so Copy returns
// the receiver and per-trial copies are free.
type QMDP struct {
	table *ValueTable
}

// NewQMDP returns a new QMDP policy over table
func NewQMDP(table *ValueTable) *QMDP {
	return &QMDP{table: table}
}

// SelectAction returns the action maximizing expected value under b.
// Ties break towards the lowest action index.
func (q *QMDP) SelectAction(b *belief.Vector) int {
	return floatutils.ArgMax(q.table.ExpectedValues(b))
}

// SelectActionFromState returns the best action if state were known
// exactly
func (q *QMDP) SelectActionFromState(state int) int {
	return floatutils.ArgMax(q.table.ActionValues(state))
}

// Copy returns the receiver: QMDP holds no mutable scratch state
func (q *QMDP) Copy() Policy {
	return q
}
