package buffer_test

import (
	"fmt"

	"github.com/cwbudde/algo-lpc/dsp/buffer"
)

func ExampleBuffer_Exchange() {
	playback := buffer.New(4)
	rendered := buffer.New(4)
	copy(rendered.Samples(), []float64{1, 2, 3, 4})

	playback.Exchange(rendered)

	fmt.Println(playback.Samples())
	fmt.Println(rendered.Samples())

	// Output:
	// [1 2 3 4]
	// [0 0 0 0]
}
