// Package time computes time-domain level statistics used to compare the
// input and the resynthesized output of the effect.
package time

import (
	"math"

	"github.com/cwbudde/algo-lpc/dsp/core"
)

// Stats holds level statistics of a signal.
type Stats struct {
	Length        int
	DC            float64 // mean
	RMS           float64
	RMSdB         float64
	Peak          float64 // max |x|
	PeakPos       int
	PeakdB        float64
	CrestFactor   float64 // peak / RMS
	Energy        float64 // sum of squares
	ZeroCrossings int
	Clipped       int // samples with |x| >= 1
}

// Calculate returns the statistics of signal in a single pass.
func Calculate(signal []float64) Stats {
	s := NewStreamingStats()
	s.Update(signal)
	return s.Result()
}

// RMS returns the root-mean-square of the signal.
func RMS(signal []float64) float64 {
	if len(signal) == 0 {
		return 0
	}

	var sumSq float64
	for _, x := range signal {
		sumSq += x * x
	}

	return math.Sqrt(sumSq / float64(len(signal)))
}

// Peak returns the peak absolute amplitude of the signal.
func Peak(signal []float64) float64 {
	var peak float64
	for _, x := range signal {
		peak = max(peak, math.Abs(x))
	}
	return peak
}

// DC returns the mean of the signal.
func DC(signal []float64) float64 {
	if len(signal) == 0 {
		return 0
	}
	// Kahan summation.
	var sum, c float64
	for _, x := range signal {
		y := x - c
		t := sum + y
		c = (t - sum) - y
		sum = t
	}

	return sum / float64(len(signal))
}

// GainDB returns the RMS level difference out - in in dB. It is NaN when
// either side is silent.
func GainDB(in, out Stats) float64 {
	if in.RMS == 0 || out.RMS == 0 {
		return math.NaN()
	}
	return core.LinearToDB(out.RMS / in.RMS)
}

// StreamingStats accumulates Stats across blocks. Feeding a signal in any
// chunking gives the same result as Calculate on the whole signal.
type StreamingStats struct {
	n             int
	sum           float64
	comp          float64
	sumSq         float64
	peak          float64
	peakPos       int
	zeroCrossings int
	clipped       int
	last          float64
}

// NewStreamingStats creates an empty accumulator.
func NewStreamingStats() *StreamingStats {
	return &StreamingStats{}
}

// Update adds a block of samples.
func (s *StreamingStats) Update(samples []float64) {
	for _, x := range samples {
		y := x - s.comp
		t := s.sum + y
		s.comp = (t - s.sum) - y
		s.sum = t

		s.sumSq += x * x

		a := math.Abs(x)
		if a > s.peak {
			s.peak = a
			s.peakPos = s.n
		}
		if a >= 1 {
			s.clipped++
		}

		if s.n > 0 && s.last*x < 0 {
			s.zeroCrossings++
		}

		s.last = x
		s.n++
	}
}

// Result returns the statistics of everything fed so far.
func (s *StreamingStats) Result() Stats {
	if s.n == 0 {
		return Stats{RMSdB: math.Inf(-1), PeakdB: math.Inf(-1)}
	}

	nf := float64(s.n)
	rms := math.Sqrt(s.sumSq / nf)

	var crest float64
	if rms > 0 {
		crest = s.peak / rms
	}

	return Stats{
		Length:        s.n,
		DC:            s.sum / nf,
		RMS:           rms,
		RMSdB:         core.LinearToDB(rms),
		Peak:          s.peak,
		PeakPos:       s.peakPos,
		PeakdB:        core.LinearToDB(s.peak),
		CrestFactor:   crest,
		Energy:        s.sumSq,
		ZeroCrossings: s.zeroCrossings,
		Clipped:       s.clipped,
	}
}

// Reset clears all accumulated data.
func (s *StreamingStats) Reset() {
	*s = StreamingStats{}
}
