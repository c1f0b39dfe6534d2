// Package resynth implements the frame engine of a block-wise analysis and
// resynthesis effect.
//
// A [Processor] turns a continuous sample stream into fixed-size frames with
// an [Accumulator]: every incoming sample is written into the input frame
// while the sample at the same position of the previously synthesized frame
// is read out. When the input frame is full the processor runs exactly one
// analyze+synthesize cycle through a [Codec] and rewinds the shared cursor.
// The effect therefore has a constant latency of one frame.
//
// Control values (prediction order, whisper) are read once per call and take
// effect at the next frame boundary. Per-frame codec failures never surface
// as call errors; the previous output frame is played again instead and the
// failure is counted in [Stats].
//
// The package has no dependency on a concrete codec. See
// github.com/cwbudde/algo-lpc/dsp/lpc for the LPC implementation.
package resynth
