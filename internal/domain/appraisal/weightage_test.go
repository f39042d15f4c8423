package appraisal

import "testing"

func TestCanAdmitWeightage(t *testing.T) {
	tests := []struct {
		name   string
		weight int
		want   bool
	}{
		{name: "lower bound", weight: 1, want: true},
		{name: "upper bound", weight: 100, want: true},
		{name: "zero", weight: 0, want: false},
		{name: "negative", weight: -5, want: false},
		{name: "over cap", weight: 101, want: false},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			if got := CanAdmitWeightage(tc.weight); got != tc.want {
				t.Fatalf("CanAdmitWeightage(%d) = %v, want %v", tc.weight, got, tc.want)
			}
		})
	}
}

func TestTotalAndRemainingWeightage(t *testing.T) {
	goals := []Goal{{Weightage: 40}, {Weightage: 35}}
	if got := TotalWeightage(goals); got != 75 {
		t.Fatalf("TotalWeightage = %d, want 75", got)
	}
	if got := RemainingWeightage(goals); got != 25 {
		t.Fatalf("RemainingWeightage = %d, want 25", got)
	}
}

func TestRemainingWeightageFloorsAtZero(t *testing.T) {
	goals := []Goal{{Weightage: 80}, {Weightage: 80}}
	if got := RemainingWeightage(goals); got != 0 {
		t.Fatalf("RemainingWeightage with overfull set = %d, want 0", got)
	}
}

func TestWeightageComplete(t *testing.T) {
	if WeightageComplete([]Goal{{Weightage: 60}, {Weightage: 30}}) {
		t.Fatal("expected 90 total to be incomplete")
	}
	if WeightageComplete([]Goal{{Weightage: 60}, {Weightage: 50}}) {
		t.Fatal("expected 110 total to be incomplete")
	}
	if !WeightageComplete([]Goal{{Weightage: 60}, {Weightage: 40}}) {
		t.Fatal("expected 100 total to be complete")
	}
}
