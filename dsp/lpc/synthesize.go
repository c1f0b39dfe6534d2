package lpc

import (
	"fmt"

	"github.com/cwbudde/algo-lpc/dsp/core"
)

// Synthesize fills out with one frame generated by the all-pole filter coeffs,
// driven by an excitation of the given residual power. pitch is the period in
// samples of the impulse train; 0 selects white-noise (whispered) excitation.
//
// On [ErrUnstable] the filter memory is cleared and out is zeroed.
func (c *Codec) Synthesize(out, coeffs []float64, power, pitch float64) error {
	if c.closed {
		return ErrClosed
	}
	if len(out) != c.frameSize {
		return fmt.Errorf("%w: expected %d samples, got %d", ErrFrameLength, c.frameSize, len(out))
	}

	order := len(coeffs)
	if order < MinOrder || order > c.maxOrder {
		return fmt.Errorf("%w: %d not in [%d, %d]", ErrOrder, order, MinOrder, c.maxOrder)
	}

	if !core.IsFinite(power) || power < 0 {
		return fmt.Errorf("%w: power %g", ErrExcitation, power)
	}
	if !core.IsFinite(pitch) || pitch < 0 {
		return fmt.Errorf("%w: pitch %g", ErrExcitation, pitch)
	}

	gain := mathSqrt(power)
	pulseAmp := mathSqrt(pitch)
	if c.untilPulse > pitch {
		c.untilPulse = pitch
	}

	h := c.history
	for n := range out {
		var e float64
		if pitch > 0 {
			if c.untilPulse <= 0 {
				e = pulseAmp
				c.untilPulse += pitch
			}
			c.untilPulse--
		} else {
			e = (2*c.rng.Float64() - 1) * sqrt3
		}

		y := gain * e
		for k, a := range coeffs {
			y += a * h[k]
		}

		if !core.IsFinite(y) {
			clear(h)
			clear(out)
			c.untilPulse = 0
			return ErrUnstable
		}

		copy(h[1:], h[:len(h)-1])
		h[0] = core.FlushDenormals(y)
		out[n] = y
	}

	return nil
}
