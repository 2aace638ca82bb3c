package experiment

import (
	"math"
	"strings"
	"testing"

	"github.com/samuelfneumann/gosuggest/agent"
)

func TestDescribe(t *testing.T) {
	s := Describe([]float64{1, 2, 3, 4, 5})

	if math.Abs(s.Mean-3.0) > 1e-12 {
		t.Errorf("mean %v, want 3", s.Mean)
	}

	wantStd := math.Sqrt(2.5) // sample variance over n-1
	if math.Abs(s.Std-wantStd) > 1e-12 {
		t.Errorf("std %v, want %v", s.Std, wantStd)
	}

	wantErr := wantStd / math.Sqrt(5)
	if math.Abs(s.StdErr-wantErr) > 1e-12 {
		t.Errorf("stderr %v, want %v", s.StdErr, wantErr)
	}
	if math.Abs(s.CI95-1.96*wantErr) > 1e-12 {
		t.Errorf("ci95 %v, want %v", s.CI95, 1.96*wantErr)
	}
}

func TestDescribeSingleValue(t *testing.T) {
	s := Describe([]float64{4})
	if s.Mean != 4 || s.Std != 0 || s.StdErr != 0 || s.CI95 != 0 {
		t.Errorf("got %+v", s)
	}
}

func TestStatisticsAndReport(t *testing.T) {
	pol, _ := detPolicy(t)

	e, err := New(Config{
		Model:         detModel{},
		Policy:        pol,
		Agent:         agent.NewNormal(),
		NumTrials:     10,
		MaxSteps:      5,
		ReceptionRate: 0.5,
		MixRatio:      0.5,
		Seed:          1,
	})
	if err != nil {
		t.Fatal(err)
	}
	if err := e.Run(); err != nil {
		t.Fatal(err)
	}

	stats := e.Statistics()
	if stats.Trials != 10 {
		t.Errorf("trials %d, want 10", stats.Trials)
	}

	// Deterministic model: every trial takes exactly MaxSteps steps
	// with no variance
	if stats.Steps.Mean != 5 || stats.Steps.Std != 0 {
		t.Errorf("steps summary %+v", stats.Steps)
	}
	if stats.Suggestions.Mean != 0 {
		t.Errorf("normal agent mean suggestions %v", stats.Suggestions.Mean)
	}
	if stats.SuggestionsStep.Mean != 0 {
		t.Errorf("suggestions/step mean %v", stats.SuggestionsStep.Mean)
	}

	var sb strings.Builder
	e.Report(&sb)
	report := sb.String()
	for _, want := range []string{"normal", "Reward", "Steps",
		"Suggestions", "Suggestions/Step", "Mean", "CI95"} {
		if !strings.Contains(report, want) {
			t.Errorf("report missing %q:\n%s", want, report)
		}
	}
}
