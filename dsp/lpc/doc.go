// Package lpc implements a block LPC analysis/resynthesis codec.
//
// Analysis windows a frame, computes its autocorrelation through a
// zero-padded FFT, runs the Levinson-Durbin recursion to obtain prediction
// coefficients and the residual power, and estimates the pitch period from
// the normalized autocorrelation of the unwindowed frame.
//
// Synthesis drives an all-pole filter with either a unit-power impulse train
// (voiced, pitch > 0) or unit-variance white noise (pitch == 0, whisper).
// Filter memory and pulse phase carry across frames, so consecutive frames
// join without clicks.
//
// A pitch value of 0 is the unvoiced sentinel; any other value is a period in
// samples (sample rate divided by the fundamental frequency).
//
// All buffers are allocated by [New]; Analyze and Synthesize do not allocate.
// A Codec is mono and not thread-safe.
package lpc
