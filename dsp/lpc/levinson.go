package lpc

import "fmt"

// LevinsonDurbin solves the normal equations for the autocorrelation r and
// writes len(a) prediction coefficients into a, in-place and without
// allocation. r must hold at least len(a)+1 lags.
//
// The coefficients follow the prediction convention
//
//	x[n] ≈ a[0]*x[n-1] + a[1]*x[n-2] + ... + a[p-1]*x[n-p]
//
// and the returned value is the residual (prediction error) energy in the
// units of r[0]. If the recursion meets a reflection coefficient with
// magnitude >= 1 it stops there and zeroes the remaining coefficients, which
// keeps the synthesis filter minimum-phase.
func LevinsonDurbin(r, a []float64) (float64, error) {
	p := len(a)
	if p == 0 {
		return 0, fmt.Errorf("%w: %d", ErrOrder, p)
	}
	if len(r) < p+1 {
		return 0, fmt.Errorf("lpc: need %d autocorrelation lags, got %d", p+1, len(r))
	}
	if !(r[0] > 0) {
		return 0, errZeroEnergy
	}

	clear(a)
	e := r[0]

	for i := range p {
		acc := r[i+1]
		for j := range i {
			acc -= a[j] * r[i-j]
		}

		k := acc / e
		if k >= 1 || k <= -1 {
			break
		}

		for j := range i / 2 {
			lo, hi := a[j], a[i-1-j]
			a[j] = lo - k*hi
			a[i-1-j] = hi - k*lo
		}
		if i%2 == 1 {
			m := i / 2
			a[m] -= k * a[m]
		}

		a[i] = k
		e *= 1 - k*k
	}

	return e, nil
}
