package lpc_test

import (
	"fmt"

	"github.com/cwbudde/algo-lpc/dsp/lpc"
)

func ExampleLevinsonDurbin() {
	// Autocorrelation of a first-order process with pole 0.5.
	r := []float64{1, 0.5, 0.25}
	a := make([]float64, 2)

	residual, err := lpc.LevinsonDurbin(r, a)
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	fmt.Printf("a=[%.2f %.2f] residual=%.2f\n", a[0], a[1], residual)
	// Output:
	// a=[0.50 0.00] residual=0.75
}

func ExampleCodec_Analyze() {
	codec, err := lpc.New(48000, 2048)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	defer codec.Close()

	// Impulses every 120 samples: a 400 Hz glottal-like source.
	frame := make([]float64, codec.FrameSize())
	for i := 0; i < len(frame); i += 120 {
		frame[i] = 1
	}

	coeffs := make([]float64, 16)
	_, pitch, err := codec.Analyze(frame, coeffs)
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	fmt.Printf("pitch=%.0f samples (%.0f Hz)\n", pitch, codec.PitchHz(pitch))
	// Output:
	// pitch=120 samples (400 Hz)
}
