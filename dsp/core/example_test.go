package core_test

import (
	"fmt"

	"github.com/cwbudde/algo-lpc/dsp/core"
)

func ExampleApplyProcessorOptions() {
	cfg := core.ApplyProcessorOptions(
		core.WithSampleRate(44100),
		core.WithFrameSize(1024),
	)

	fmt.Printf("sampleRate=%.0f frameSize=%d maxOrder=%d\n", cfg.SampleRate, cfg.FrameSize, cfg.MaxOrder)

	// Output:
	// sampleRate=44100 frameSize=1024 maxOrder=64
}

func ExampleClampInt() {
	fmt.Println(core.ClampInt(0, 1, 64), core.ClampInt(500, 1, 64))

	// Output:
	// 1 64
}
