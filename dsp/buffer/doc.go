// Package buffer provides the fixed-length float64 frames used by the
// frame-based processors and a pool for host-sized scratch blocks.
//
// Frames are allocated once per session; the per-sample path only indexes
// into them and exchanges backing arrays, never allocates.
package buffer
