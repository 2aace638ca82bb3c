package floatutils

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/floats"
)

func TestArgMax(t *testing.T) {
	if got := ArgMax([]float64{1, 3, 2}); got != 1 {
		t.Errorf("got %d, want 1", got)
	}

	// Ties break to the first index
	if got := ArgMax([]float64{2, 5, 5}); got != 1 {
		t.Errorf("got %d, want 1", got)
	}
}

func TestSoftmax(t *testing.T) {
	probs := Softmax([]float64{1, 2, 3}, 1.0)
	if math.Abs(floats.Sum(probs)-1.0) > 1e-12 {
		t.Errorf("softmax sums to %v", floats.Sum(probs))
	}
	if !(probs[2] > probs[1] && probs[1] > probs[0]) {
		t.Errorf("softmax not monotone: %v", probs)
	}

	// Temperature 0 is the uniform distribution
	uniform := Softmax([]float64{1, 200, 3}, 0.0)
	for i, p := range uniform {
		if math.Abs(p-1.0/3.0) > 1e-12 {
			t.Errorf("index %d: got %v, want 1/3", i, p)
		}
	}

	// Large values must not overflow to NaN
	sharp := Softmax([]float64{1000, 2000}, 1.0)
	if math.IsNaN(sharp[0]) || math.IsNaN(sharp[1]) {
		t.Errorf("softmax overflowed: %v", sharp)
	}
	if math.Abs(sharp[1]-1.0) > 1e-9 {
		t.Errorf("got %v, want mass on the maximum", sharp)
	}
}

func TestClip(t *testing.T) {
	if got := Clip(5, 0, 1); got != 1 {
		t.Errorf("got %v, want 1", got)
	}
	if got := Clip(-5, 0, 1); got != 0 {
		t.Errorf("got %v, want 0", got)
	}
	if got := Clip(0.5, 0, 1); got != 0.5 {
		t.Errorf("got %v, want 0.5", got)
	}
}
