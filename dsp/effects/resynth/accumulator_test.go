package resynth

import (
	"errors"
	"testing"

	"github.com/cwbudde/algo-lpc/dsp/buffer"
)

func TestNewAccumulatorValidation(t *testing.T) {
	for _, size := range []int{0, -1} {
		if _, err := NewAccumulator(size); err == nil {
			t.Fatalf("NewAccumulator(%d) expected error", size)
		}
	}
}

func TestAccumulatorStepWritesInputAndReadsOutput(t *testing.T) {
	acc, err := NewAccumulator(4)
	if err != nil {
		t.Fatalf("NewAccumulator() error = %v", err)
	}

	next := buffer.New(4)
	copy(next.Samples(), []float64{10, 20, 30, 40})
	if err := acc.Exchange(next); err != nil {
		t.Fatalf("Exchange() error = %v", err)
	}

	for i, x := range []float64{1, 2, 3, 4} {
		if acc.Full() {
			t.Fatalf("Full() before step %d", i)
		}
		if got, want := acc.Step(x), float64(10*(i+1)); got != want {
			t.Fatalf("Step(%v) = %v, want %v", x, got, want)
		}
		if acc.Cursor() != i+1 {
			t.Fatalf("Cursor() = %d, want %d", acc.Cursor(), i+1)
		}
	}

	if !acc.Full() {
		t.Fatal("Full() = false after a frame of steps")
	}

	in := acc.Input()
	for i, want := range []float64{1, 2, 3, 4} {
		if in[i] != want {
			t.Fatalf("Input()[%d] = %v, want %v", i, in[i], want)
		}
	}

	// The previous output frame is handed back for reuse.
	for i, v := range next.Samples() {
		if v != 0 {
			t.Fatalf("scratch[%d] = %v, want 0", i, v)
		}
	}

	acc.Rewind()
	if acc.Cursor() != 0 {
		t.Fatalf("Cursor() after Rewind = %d", acc.Cursor())
	}
}

func TestAccumulatorStepWrapsWhenFull(t *testing.T) {
	acc, err := NewAccumulator(3)
	if err != nil {
		t.Fatalf("NewAccumulator() error = %v", err)
	}

	for range 3 {
		acc.Step(1)
	}
	acc.Step(7)

	if acc.Cursor() != 1 {
		t.Fatalf("Cursor() = %d, want 1", acc.Cursor())
	}
	if acc.Input()[0] != 7 {
		t.Fatalf("Input()[0] = %v, want 7", acc.Input()[0])
	}
}

func TestAccumulatorExchangeRejectsWrongSize(t *testing.T) {
	acc, err := NewAccumulator(8)
	if err != nil {
		t.Fatalf("NewAccumulator() error = %v", err)
	}

	if err := acc.Exchange(buffer.New(7)); !errors.Is(err, ErrLengthMismatch) {
		t.Fatalf("Exchange(short) error = %v, want ErrLengthMismatch", err)
	}
	if err := acc.Exchange(nil); !errors.Is(err, ErrLengthMismatch) {
		t.Fatalf("Exchange(nil) error = %v, want ErrLengthMismatch", err)
	}
}

func TestAccumulatorReset(t *testing.T) {
	acc, err := NewAccumulator(4)
	if err != nil {
		t.Fatalf("NewAccumulator() error = %v", err)
	}

	next := buffer.New(4)
	next.Samples()[2] = 5
	_ = acc.Exchange(next)
	acc.Step(3)
	acc.Step(3)

	acc.Reset()

	if acc.Cursor() != 0 || acc.Size() != 4 {
		t.Fatalf("Cursor()=%d Size()=%d", acc.Cursor(), acc.Size())
	}
	for i := range 4 {
		if acc.Input()[i] != 0 || acc.Output()[i] != 0 {
			t.Fatalf("frames not zeroed at %d", i)
		}
	}
}
