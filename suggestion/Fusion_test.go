package suggestion

import (
	"math"
	"testing"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/floats"

	"github.com/samuelfneumann/gosuggest/agent"
	"github.com/samuelfneumann/gosuggest/belief"
	"github.com/samuelfneumann/gosuggest/policy"
)

// testPolicy returns a 2-state, 2-action QMDP where action 0 is
// optimal in state 0 and action 1 is optimal in state 1, together with
// its table
func testPolicy(t *testing.T) (*policy.QMDP, *policy.ValueTable) {
	t.Helper()

	table, err := policy.NewValueTable(2, 2, []float64{
		1.0, 0.0,
		0.0, 1.0,
	})
	if err != nil {
		t.Fatal(err)
	}
	return policy.NewQMDP(table), table
}

func TestScaledZeroTauIsNoOp(t *testing.T) {
	pol, _ := testPolicy(t)
	b, err := belief.FromSlice([]float64{0.3, 0.7})
	if err != nil {
		t.Fatal(err)
	}

	scaled, err := agent.NewScaled(0.0)
	if err != nil {
		t.Fatal(err)
	}

	fused, _, err := Fuse(scaled, rand.NewSource(1), b, pol, 0, 1, nil)
	if err != nil {
		t.Fatal(err)
	}

	if !floats.EqualApprox(fused.Probs(), b.Probs(), 1e-12) {
		t.Errorf("τ=0 changed the belief: %v -> %v", b.Probs(),
			fused.Probs())
	}
}

func TestScaledShiftsMassTowardsConsistentStates(t *testing.T) {
	pol, _ := testPolicy(t)
	b := belief.Uniform(2)

	scaled, err := agent.NewScaled(3.0)
	if err != nil {
		t.Fatal(err)
	}

	// Action 1 is optimal only in state 1, so suggesting it must move
	// mass onto state 1 and the fused action must follow.
	fused, action, err := Fuse(scaled, rand.NewSource(1), b, pol, 1, 0, nil)
	if err != nil {
		t.Fatal(err)
	}

	if fused.At(1) <= b.At(1) {
		t.Errorf("mass on consistent state fell from %v to %v", b.At(1),
			fused.At(1))
	}
	if action != 1 {
		t.Errorf("got action %d, want 1", action)
	}

	// Large τ collapses the belief onto suggestion-consistent states
	sharp, err := agent.NewScaled(50.0)
	if err != nil {
		t.Fatal(err)
	}
	fused, _, err = Fuse(sharp, rand.NewSource(1), b, pol, 1, 0, nil)
	if err != nil {
		t.Fatal(err)
	}
	if fused.At(1) < 1.0-1e-9 {
		t.Errorf("τ=50 left mass %v off the consistent state", 1-fused.At(1))
	}
}

func TestScaledDoesNotMutateInput(t *testing.T) {
	pol, _ := testPolicy(t)
	b := belief.Uniform(2)

	scaled, err := agent.NewScaled(5.0)
	if err != nil {
		t.Fatal(err)
	}
	if _, _, err := Fuse(scaled, rand.NewSource(1), b, pol, 1, 0,
		nil); err != nil {
		t.Fatal(err)
	}

	if math.Abs(b.At(0)-0.5) > 1e-12 {
		t.Error("fusion mutated the input belief")
	}
}

func TestNoisyZeroLambdaIsNoOp(t *testing.T) {
	pol, table := testPolicy(t)
	b, err := belief.FromSlice([]float64{0.2, 0.8})
	if err != nil {
		t.Fatal(err)
	}

	// λ=0 models a fully irrational advisor: the Boltzmann likelihood
	// is uniform and the belief must not move.
	noisy, err := agent.NewNoisy(0.0)
	if err != nil {
		t.Fatal(err)
	}

	fused, _, err := Fuse(noisy, rand.NewSource(1), b, pol, 0, 1, table)
	if err != nil {
		t.Fatal(err)
	}

	if !floats.EqualApprox(fused.Probs(), b.Probs(), 1e-12) {
		t.Errorf("λ=0 changed the belief: %v -> %v", b.Probs(),
			fused.Probs())
	}
}

func TestNoisyTrustsSharpAdvisor(t *testing.T) {
	pol, table := testPolicy(t)
	b := belief.Uniform(2)

	noisy, err := agent.NewNoisy(10.0)
	if err != nil {
		t.Fatal(err)
	}

	fused, action, err := Fuse(noisy, rand.NewSource(1), b, pol, 1, 0, table)
	if err != nil {
		t.Fatal(err)
	}

	if fused.At(1) <= 0.5 {
		t.Errorf("sharp advisor left mass %v on the consistent state",
			fused.At(1))
	}
	if action != 1 {
		t.Errorf("got action %d, want 1", action)
	}
}

func TestNoisyRequiresTable(t *testing.T) {
	pol, _ := testPolicy(t)

	noisy, err := agent.NewNoisy(1.0)
	if err != nil {
		t.Fatal(err)
	}

	if _, _, err := Fuse(noisy, rand.NewSource(1), belief.Uniform(2), pol,
		0, 1, nil); err == nil {
		t.Error("expected error when no action-value table is supplied")
	}
}

func TestNaiveCoinFollowsNu(t *testing.T) {
	pol, _ := testPolicy(t)

	always, err := agent.NewNaive(1.0)
	if err != nil {
		t.Fatal(err)
	}
	never, err := agent.NewNaive(0.0)
	if err != nil {
		t.Fatal(err)
	}

	src := rand.NewSource(42)
	for i := 0; i < 50; i++ {
		_, action, err := Fuse(always, src, belief.Uniform(2), pol, 1, 0,
			nil)
		if err != nil {
			t.Fatal(err)
		}
		if action != 1 {
			t.Fatalf("ν=1 executed %d instead of the suggestion", action)
		}

		_, action, err = Fuse(never, src, belief.Uniform(2), pol, 1, 0, nil)
		if err != nil {
			t.Fatal(err)
		}
		if action != 0 {
			t.Fatalf("ν=0 executed %d instead of the baseline", action)
		}
	}
}

func TestNaiveUpdatesBeliefEvenWhenIgnoringSuggestion(t *testing.T) {
	pol, _ := testPolicy(t)
	b := belief.Uniform(2)

	// ν=0 never executes the suggestion, yet the belief update still
	// happens: admitted advice shapes later steps regardless of the
	// coin. This coupling is intentional.
	never, err := agent.NewNaive(0.0)
	if err != nil {
		t.Fatal(err)
	}

	fused, action, err := Fuse(never, rand.NewSource(3), b, pol, 1, 0, nil)
	if err != nil {
		t.Fatal(err)
	}

	if action != 0 {
		t.Fatalf("ν=0 executed %d instead of the baseline", action)
	}
	if fused.At(1) <= b.At(1) {
		t.Errorf("belief was not updated: mass on state 1 stayed at %v",
			fused.At(1))
	}
}

func TestFuseRejectsNonFusingKinds(t *testing.T) {
	pol, _ := testPolicy(t)

	for _, ag := range []agent.Agent{agent.NewNormal(), agent.NewPerfect(),
		agent.NewRandom()} {
		if _, _, err := Fuse(ag, rand.NewSource(1), belief.Uniform(2), pol,
			0, 1, nil); err == nil {
			t.Errorf("%v: expected error", ag)
		}
	}
}
