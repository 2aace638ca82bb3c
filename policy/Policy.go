// Package policy adapts externally solved POMDP policies into action
// queries over beliefs and over exact states
package policy

import (
	"github.com/samuelfneumann/gosuggest/belief"
)

// Policy is a solved control policy supplied by an external
// collaborator. A Policy answers two pure queries: the best action
// under a belief, and the best action given the exact state (the
// perfect-knowledge baseline).
type Policy interface {
	// SelectAction returns the best action under belief b
	SelectAction(b *belief.Vector) int

	// SelectActionFromState returns the best action if the true state
	// were known exactly
	SelectActionFromState(state int) int

	// Copy returns an instance safe for use by a single trial. Policy
	// implementations that keep per-query scratch state must return an
	// independent copy; pure implementations may return themselves.
	Copy() Policy
}
