package core

import (
	"math"
	"testing"
)

func TestClamp(t *testing.T) {
	tests := []struct {
		name     string
		value    float64
		min      float64
		max      float64
		expected float64
	}{
		{name: "inside", value: 0.5, min: 0, max: 1, expected: 0.5},
		{name: "below", value: -1, min: 0, max: 1, expected: 0},
		{name: "above", value: 2, min: 0, max: 1, expected: 1},
		{name: "swapped", value: 2, min: 1, max: 0, expected: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Clamp(tt.value, tt.min, tt.max)
			if got != tt.expected {
				t.Fatalf("Clamp() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestClampInt(t *testing.T) {
	tests := []struct {
		value, lo, hi, want int
	}{
		{value: 10, lo: 1, hi: 64, want: 10},
		{value: 0, lo: 1, hi: 64, want: 1},
		{value: -7, lo: 1, hi: 64, want: 1},
		{value: 1000, lo: 1, hi: 64, want: 64},
		{value: 5, lo: 8, hi: 2, want: 5},
	}

	for _, tt := range tests {
		if got := ClampInt(tt.value, tt.lo, tt.hi); got != tt.want {
			t.Fatalf("ClampInt(%d, %d, %d) = %d, want %d", tt.value, tt.lo, tt.hi, got, tt.want)
		}
	}
}

func TestIsFinite(t *testing.T) {
	if !IsFinite(1.5) {
		t.Fatal("expected 1.5 to be finite")
	}
	for _, v := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		if IsFinite(v) {
			t.Fatalf("IsFinite(%v) = true, want false", v)
		}
	}
}

func TestNearlyEqual(t *testing.T) {
	if !NearlyEqual(1.0, 1.0+1e-13, 1e-12) {
		t.Fatal("expected values to be nearly equal")
	}
	if NearlyEqual(1.0, 1.1, 1e-3) {
		t.Fatal("expected values to differ")
	}
}

func TestFlushDenormals(t *testing.T) {
	if got := FlushDenormals(1e-35); got != 0 {
		t.Fatalf("FlushDenormals(1e-35) = %v, want 0", got)
	}
	if got := FlushDenormals(0.25); got != 0.25 {
		t.Fatalf("FlushDenormals(0.25) = %v, want 0.25", got)
	}
}

func TestDBConversions(t *testing.T) {
	if db := LinearToDB(0.5); !NearlyEqual(db, -6.0206, 1e-4) {
		t.Fatalf("LinearToDB(0.5) = %v, want ~-6.02", db)
	}
	if !math.IsInf(LinearToDB(0), -1) {
		t.Fatal("expected -Inf for zero")
	}
	if !math.IsNaN(LinearToDB(-1)) {
		t.Fatal("expected NaN for negative amplitude")
	}

	if db := LinearPowerToDB(100); !NearlyEqual(db, 20, 1e-12) {
		t.Fatalf("LinearPowerToDB(100) = %v, want 20", db)
	}
	if !math.IsInf(LinearPowerToDB(0), -1) {
		t.Fatal("expected -Inf for zero power")
	}
	if !math.IsNaN(LinearPowerToDB(-1)) {
		t.Fatal("expected NaN for negative power")
	}
}
