//go:build fastmath

package lpc

import "github.com/meko-christian/algo-approx"

// mathSqrt computes sqrt(x) using fast approximation.
func mathSqrt(x float64) float64 {
	return approx.FastSqrt(x)
}
