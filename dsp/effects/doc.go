// Package effects groups the real-time effect kernels of this module.
//
// Subpackages:
//   - github.com/cwbudde/algo-lpc/dsp/effects/resynth: frame-accumulating
//     LPC analysis/resynthesis engine with one frame of latency.
//
// Effects are designed for real-time processing with zero-allocation hot
// paths and support both single-sample and buffer-based processing.
package effects
