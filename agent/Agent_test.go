package agent

import (
	"testing"
)

func TestConstructorValidation(t *testing.T) {
	if _, err := NewNaive(-0.5); err == nil {
		t.Error("expected error for ν < 0")
	}
	if _, err := NewNaive(1.5); err == nil {
		t.Error("expected error for ν > 1")
	}
	if _, err := NewScaled(-1.0); err == nil {
		t.Error("expected error for τ < 0")
	}
	if _, err := NewNoisy(-1.0); err == nil {
		t.Error("expected error for λ < 0")
	}
}

func TestFusesSuggestions(t *testing.T) {
	naive, err := NewNaive(0.5)
	if err != nil {
		t.Fatal(err)
	}
	scaled, err := NewScaled(1.0)
	if err != nil {
		t.Fatal(err)
	}
	noisy, err := NewNoisy(1.0)
	if err != nil {
		t.Fatal(err)
	}

	for _, ag := range []Agent{naive, scaled, noisy} {
		if !ag.FusesSuggestions() {
			t.Errorf("%v should fuse suggestions", ag)
		}
	}
	for _, ag := range []Agent{NewNormal(), NewPerfect(), NewRandom()} {
		if ag.FusesSuggestions() {
			t.Errorf("%v should not fuse suggestions", ag)
		}
	}
}

func TestHyperparameterAccessors(t *testing.T) {
	naive, err := NewNaive(0.25)
	if err != nil {
		t.Fatal(err)
	}
	if naive.Nu() != 0.25 {
		t.Errorf("got ν = %v, want 0.25", naive.Nu())
	}

	// Accessing a hyperparameter the kind does not have is programmer
	// error and must panic
	defer func() {
		if recover() == nil {
			t.Error("Tau on a naive agent should panic")
		}
	}()
	naive.Tau()
}

func TestString(t *testing.T) {
	scaled, err := NewScaled(2.0)
	if err != nil {
		t.Fatal(err)
	}

	if got := scaled.String(); got != "scaled(τ=2.00)" {
		t.Errorf("got %q", got)
	}
	if got := NewNormal().String(); got != "normal" {
		t.Errorf("got %q", got)
	}
}
