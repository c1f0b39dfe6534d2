package resynth

import "errors"

var (
	// ErrInvalidOrder is recorded for a frame skipped by [OrderReject] and
	// returned by [Processor.SetOrder].
	ErrInvalidOrder = errors.New("resynth: invalid prediction order")
	// ErrCodec wraps a per-frame analysis or synthesis failure.
	ErrCodec = errors.New("resynth: codec failure")
	// ErrClosed is returned by a processor after Close.
	ErrClosed = errors.New("resynth: processor closed")
	// ErrLengthMismatch is returned when an output slice or frame has the wrong length.
	ErrLengthMismatch = errors.New("resynth: length mismatch")

	errNilCodec = errors.New("resynth: codec must not be nil")
)
