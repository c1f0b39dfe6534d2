package resynth

import (
	"fmt"

	"github.com/cwbudde/algo-lpc/dsp/buffer"
)

// Accumulator holds an input and an output frame of equal size that share a
// single cursor. Writing and reading always happen at the same position, so
// the sample read at a position was produced one full frame earlier.
type Accumulator struct {
	in     *buffer.Buffer
	out    *buffer.Buffer
	size   int
	cursor int
}

// NewAccumulator returns an accumulator with two zeroed frames of size samples.
func NewAccumulator(size int) (*Accumulator, error) {
	if size < 1 {
		return nil, fmt.Errorf("resynth: frame size must be >= 1: %d", size)
	}

	return &Accumulator{
		in:   buffer.New(size),
		out:  buffer.New(size),
		size: size,
	}, nil
}

// Step stores x at the cursor, returns the output sample at the cursor and
// advances. Stepping a full accumulator starts a new frame.
func (a *Accumulator) Step(x float64) float64 {
	if a.cursor >= a.size {
		a.cursor = 0
	}

	a.in.Samples()[a.cursor] = x
	y := a.out.Samples()[a.cursor]
	a.cursor++

	return y
}

// Full reports whether the cursor reached the end of the frame.
func (a *Accumulator) Full() bool { return a.cursor >= a.size }

// Rewind moves the cursor back to the start of the frame.
func (a *Accumulator) Rewind() { a.cursor = 0 }

// Input returns the frame being filled.
func (a *Accumulator) Input() []float64 { return a.in.Samples() }

// Output returns the frame being drained.
func (a *Accumulator) Output() []float64 { return a.out.Samples() }

// Exchange installs next as the output frame. next receives the previous
// output frame so it can be reused as scratch.
func (a *Accumulator) Exchange(next *buffer.Buffer) error {
	if next == nil || next.Len() != a.size {
		got := 0
		if next != nil {
			got = next.Len()
		}
		return fmt.Errorf("%w: frame of %d samples, want %d", ErrLengthMismatch, got, a.size)
	}

	a.out.Exchange(next)

	return nil
}

// Cursor returns the current write/read position.
func (a *Accumulator) Cursor() int { return a.cursor }

// Size returns the frame size.
func (a *Accumulator) Size() int { return a.size }

// Reset zeroes both frames and rewinds the cursor.
func (a *Accumulator) Reset() {
	a.in.Zero()
	a.out.Zero()
	a.cursor = 0
}
