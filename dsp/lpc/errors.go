package lpc

import "errors"

var (
	// ErrFrameLength is returned when a frame does not match the codec frame size.
	ErrFrameLength = errors.New("lpc: frame length mismatch")
	// ErrFrameSize is returned by New when the frame cannot hold the
	// analysis it is configured for.
	ErrFrameSize = errors.New("lpc: frame size too small")
	// ErrOrder is returned for a prediction order outside [1, MaxOrder].
	ErrOrder = errors.New("lpc: order out of range")
	// ErrNonFinite is returned when a frame contains NaN or Inf samples.
	ErrNonFinite = errors.New("lpc: non-finite sample")
	// ErrExcitation is returned for a negative or non-finite power or pitch.
	ErrExcitation = errors.New("lpc: invalid power or pitch")
	// ErrUnstable is returned when the synthesis filter diverges.
	ErrUnstable = errors.New("lpc: synthesis filter unstable")
	// ErrClosed is returned by a codec after Close.
	ErrClosed = errors.New("lpc: codec closed")

	errZeroEnergy = errors.New("lpc: autocorrelation has no energy")
)
