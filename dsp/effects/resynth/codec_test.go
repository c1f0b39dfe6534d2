package resynth

import "errors"

// countingCodec records every call. Each synthesized frame is filled with its
// 1-based synthesis index so tests can tell frames apart.
type countingCodec struct {
	frameSize int
	maxOrder  int

	power float64
	pitch float64

	analyses   int
	syntheses  int
	resets     int
	closed     bool
	closeErr   error
	analyzeErr error
	synthErr   error

	analyzedOrders []int
	lastPower      float64
	lastPitch      float64
	lastCoeffs     []float64
	lastFrame      []float64
}

func newCountingCodec(frameSize int) *countingCodec {
	return &countingCodec{
		frameSize:      frameSize,
		maxOrder:       64,
		power:          0.25,
		pitch:          120,
		analyzedOrders: make([]int, 0, 64),
		lastCoeffs:     make([]float64, 0, 64),
		lastFrame:      make([]float64, frameSize),
	}
}

func (c *countingCodec) FrameSize() int { return c.frameSize }

func (c *countingCodec) MaxOrder() int { return c.maxOrder }

func (c *countingCodec) Analyze(frame, coeffs []float64) (float64, float64, error) {
	if c.analyzeErr != nil {
		return 0, 0, c.analyzeErr
	}

	c.analyses++
	c.analyzedOrders = append(c.analyzedOrders, len(coeffs))
	copy(c.lastFrame, frame)

	for k := range coeffs {
		coeffs[k] = frame[0] / float64(k+2)
	}

	return c.power, c.pitch, nil
}

func (c *countingCodec) Synthesize(out, coeffs []float64, power, pitch float64) error {
	if c.synthErr != nil {
		for i := range out {
			out[i] = -99
		}
		return c.synthErr
	}

	c.syntheses++
	c.lastPower = power
	c.lastPitch = pitch
	c.lastCoeffs = append(c.lastCoeffs[:0], coeffs...)

	for i := range out {
		out[i] = float64(c.syntheses)
	}

	return nil
}

func (c *countingCodec) Reset() { c.resets++ }

func (c *countingCodec) Close() error {
	c.closed = true
	return c.closeErr
}

var errInjected = errors.New("injected codec failure")

// bareCodec implements only the Codec interface.
type bareCodec struct{}

func (bareCodec) Analyze(_, coeffs []float64) (float64, float64, error) {
	clear(coeffs)
	return 0, 0, nil
}

func (bareCodec) Synthesize(out, _ []float64, _, _ float64) error {
	clear(out)
	return nil
}
