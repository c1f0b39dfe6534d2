// Package testutil holds deterministic test signals and tolerance helpers
// shared by the package tests.
package testutil

import (
	"math"
	"math/rand"
)

// DeterministicSine generates a deterministic sine wave.
func DeterministicSine(freqHz, sampleRate, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	step := 2 * math.Pi * freqHz / sampleRate
	for i := range out {
		out[i] = amplitude * math.Sin(step*float64(i))
	}
	return out
}

// DeterministicNoise generates white noise with a fixed seed for reproducibility.
func DeterministicNoise(seed int64, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	rng := rand.New(rand.NewSource(seed))
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}
	return out
}

// PulseTrain generates unit-height impulses every period samples, starting at 0.
func PulseTrain(period, length int) []float64 {
	out := make([]float64, length)
	if period <= 0 {
		return out
	}
	for i := 0; i < length; i += period {
		out[i] = 1
	}
	return out
}

// AR1 filters deterministic white noise through x[n] = pole*x[n-1] + w[n].
func AR1(seed int64, pole, amplitude float64, length int) []float64 {
	out := DeterministicNoise(seed, amplitude, length)
	for i := 1; i < length; i++ {
		out[i] += pole * out[i-1]
	}
	return out
}

// Ramp generates step, 2*step, 3*step, ... so every sample is non-zero and
// its position can be recovered after a latency line.
func Ramp(step float64, length int) []float64 {
	out := make([]float64, length)
	for i := range out {
		out[i] = step * float64(i+1)
	}
	return out
}
