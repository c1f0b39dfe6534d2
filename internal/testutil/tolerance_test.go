package testutil

import "testing"

func TestMaxAbsDiff(t *testing.T) {
	d, err := MaxAbsDiff([]float64{1, 2, 3}, []float64{1, 2.5, 2})
	if err != nil {
		t.Fatalf("MaxAbsDiff() error = %v", err)
	}
	if d != 1 {
		t.Fatalf("MaxAbsDiff() = %v, want 1", d)
	}

	if _, err := MaxAbsDiff([]float64{1}, nil); err == nil {
		t.Fatal("expected length mismatch error")
	}
}

func TestEnergy(t *testing.T) {
	if got := Energy([]float64{1, -2, 2}); got != 9 {
		t.Fatalf("Energy() = %v, want 9", got)
	}
}

func TestRequireHelpersPass(t *testing.T) {
	RequireFinite(t, []float64{0, 1, -1})
	RequireSilent(t, make([]float64, 4))
	RequireSliceNearlyEqual(t, []float64{1, 2}, []float64{1, 2 + 1e-12}, 1e-9)
}
