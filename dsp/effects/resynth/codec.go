package resynth

// Codec analyzes a full frame into prediction coefficients, residual power and
// pitch, and synthesizes a frame from them.
//
// len(coeffs) is the prediction order and len(frame) / len(out) the frame
// size. A pitch of 0 selects unvoiced (whispered) excitation; any other value
// is a period in samples. Analyze must be deterministic for identical input
// and order.
//
// A codec that also implements io.Closer is closed with the processor. A
// codec with a Reset() method is reset with the processor.
type Codec interface {
	Analyze(frame, coeffs []float64) (power, pitch float64, err error)
	Synthesize(out, coeffs []float64, power, pitch float64) error
}

type resetter interface {
	Reset()
}

type frameSizer interface {
	FrameSize() int
}

type maxOrderer interface {
	MaxOrder() int
}
