package time_test

import (
	"fmt"

	timestats "github.com/cwbudde/algo-lpc/stats/time"
)

func ExampleCalculate() {
	s := timestats.Calculate([]float64{1, -1, 1, -1})
	fmt.Printf("rms=%.1f zc=%d clipped=%d\n", s.RMS, s.ZeroCrossings, s.Clipped)

	// Output:
	// rms=1.0 zc=3 clipped=4
}

func ExampleStreamingStats() {
	s := timestats.NewStreamingStats()
	s.Update([]float64{0.5, -0.5})
	s.Update([]float64{0.5, -0.5})
	m := s.Result()
	fmt.Printf("len=%d dc=%.1f peak=%.1f\n", m.Length, m.DC, m.Peak)

	// Output:
	// len=4 dc=0.0 peak=0.5
}
