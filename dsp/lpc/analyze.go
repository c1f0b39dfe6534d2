package lpc

import (
	"fmt"

	"github.com/cwbudde/algo-lpc/dsp/core"
	"github.com/cwbudde/algo-lpc/dsp/window"
	"github.com/cwbudde/algo-vecmath"
)

// Analyze estimates len(coeffs) prediction coefficients, the residual power
// per sample and the pitch period of frame. Identical frames and orders give
// identical results.
//
// A silent frame yields zero coefficients, zero power and pitch 0.
func (c *Codec) Analyze(frame, coeffs []float64) (power, pitch float64, err error) {
	if c.closed {
		return 0, 0, ErrClosed
	}
	if len(frame) != c.frameSize {
		return 0, 0, fmt.Errorf("%w: expected %d samples, got %d", ErrFrameLength, c.frameSize, len(frame))
	}

	order := len(coeffs)
	if order < MinOrder || order > c.maxOrder {
		return 0, 0, fmt.Errorf("%w: %d not in [%d, %d]", ErrOrder, order, MinOrder, c.maxOrder)
	}

	for i, v := range frame {
		if !core.IsFinite(v) {
			return 0, 0, fmt.Errorf("%w at index %d", ErrNonFinite, i)
		}
	}

	if err := window.ApplyCoefficients(c.windowed, frame, c.win); err != nil {
		return 0, 0, fmt.Errorf("lpc: analysis window: %w", err)
	}

	r := c.acf[:order+1]
	if err := c.autocorrelate(r, c.windowed); err != nil {
		return 0, 0, err
	}

	if !(r[0] > 0) {
		clear(coeffs)
		return 0, 0, nil
	}

	r[0] *= 1 + noiseFloorCorrection

	residual, err := LevinsonDurbin(r, coeffs)
	if err != nil {
		return 0, 0, err
	}

	power = residual / float64(c.frameSize) / c.winGain

	pitch, err = c.estimatePitch(frame)
	if err != nil {
		return 0, 0, err
	}

	return power, pitch, nil
}

// autocorrelate writes the first len(dst) linear autocorrelation lags of x
// into dst using the Wiener-Khinchin relation on a zero-padded FFT.
//
// The result is rescaled so that dst[0] equals the frame energy, which makes
// it independent of the inverse transform's normalization convention.
func (c *Codec) autocorrelate(dst, x []float64) error {
	energy := 0.0
	for _, v := range x {
		energy += v * v
	}

	if energy == 0 {
		clear(dst)
		return nil
	}

	for i := range c.spectrum {
		if i < len(x) {
			c.spectrum[i] = complex(x[i], 0)
		} else {
			c.spectrum[i] = 0
		}
	}

	if err := c.plan.Forward(c.spectrum, c.spectrum); err != nil {
		return fmt.Errorf("lpc: forward FFT failed: %w", err)
	}

	for i, v := range c.spectrum {
		c.re[i] = real(v)
		c.im[i] = imag(v)
	}

	vecmath.Power(c.power, c.re, c.im)

	for i, p := range c.power {
		c.spectrum[i] = complex(p, 0)
	}

	if err := c.plan.Inverse(c.spectrum, c.spectrum); err != nil {
		return fmt.Errorf("lpc: inverse FFT failed: %w", err)
	}

	zeroLag := real(c.spectrum[0])
	if !(zeroLag > 0) {
		clear(dst)
		return nil
	}

	scale := energy / zeroLag
	for lag := range dst {
		dst[lag] = real(c.spectrum[lag]) * scale
	}
	dst[0] = energy

	return nil
}

// estimatePitch returns the period in samples of the strongest periodicity of
// frame inside the configured pitch range, or 0 when the frame is unvoiced.
func (c *Codec) estimatePitch(frame []float64) (float64, error) {
	r := c.pitchACF
	if err := c.autocorrelate(r, frame); err != nil {
		return 0, err
	}

	if !(r[0] > 0) {
		return 0, nil
	}

	// Unbiased, normalized autocorrelation in place.
	n := float64(c.frameSize)
	r0 := r[0]
	for lag := range r {
		r[lag] = r[lag] / r0 * n / (n - float64(lag))
	}

	best := 0.0
	for lag := c.minLag; lag <= c.maxLag; lag++ {
		if isPeak(r, lag) && r[lag] > best {
			best = r[lag]
		}
	}

	if best < c.voicingThreshold {
		return 0, nil
	}

	for lag := c.minLag; lag <= c.maxLag; lag++ {
		if isPeak(r, lag) && r[lag] >= pitchPeakTolerance*best {
			return float64(lag) + parabolicOffset(r[lag-1], r[lag], r[lag+1]), nil
		}
	}

	return 0, nil
}

func isPeak(r []float64, lag int) bool {
	return r[lag] >= r[lag-1] && r[lag] >= r[lag+1]
}

// parabolicOffset returns the vertex offset in (-0.5, 0.5) of the parabola
// through three equally spaced points.
func parabolicOffset(left, center, right float64) float64 {
	den := left - 2*center + right
	if den == 0 {
		return 0
	}

	d := 0.5 * (left - right) / den
	return core.Clamp(d, -0.5, 0.5)
}
