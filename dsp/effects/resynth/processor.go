package resynth

import (
	"fmt"
	"io"
	"math"

	"github.com/cwbudde/algo-lpc/dsp/buffer"
	"github.com/cwbudde/algo-lpc/dsp/core"
)

// Stats counts what happened at frame boundaries since creation or Reset.
type Stats struct {
	// Frames is the number of completed input frames.
	Frames uint64
	// Synthesized is the number of frames published to the output.
	Synthesized uint64
	// Skipped is the number of frames dropped for an invalid order.
	Skipped uint64
	// CodecFailures is the number of frames whose analysis or synthesis failed.
	CodecFailures uint64
}

// controls is the parameter snapshot a frame boundary is processed with.
type controls struct {
	order   int
	finite  bool
	whisper bool
}

// Processor runs one analyze+synthesize cycle per completed frame and returns
// the synthesized stream delayed by exactly one frame.
//
// A Processor is not safe for concurrent use.
type Processor struct {
	codec  Codec
	acc    *Accumulator
	synth  *buffer.Buffer
	coeffs []float64

	frameSize int
	maxOrder  int
	policy    OrderPolicy
	controls  controls

	stats   Stats
	lastErr error
	closed  bool
}

// New creates a processor that owns codec. All frames and the coefficient
// buffer are allocated here; processing does not allocate.
func New(codec Codec, opts ...Option) (*Processor, error) {
	if codec == nil {
		return nil, errNilCodec
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	if err := resolveSizes(codec, &cfg); err != nil {
		return nil, err
	}

	acc, err := NewAccumulator(cfg.frameSize)
	if err != nil {
		return nil, err
	}

	p := &Processor{
		codec:     codec,
		acc:       acc,
		synth:     buffer.New(cfg.frameSize),
		coeffs:    make([]float64, cfg.maxOrder),
		frameSize: cfg.frameSize,
		maxOrder:  cfg.maxOrder,
		policy:    cfg.policy,
		controls: controls{
			order:   min(cfg.order, cfg.maxOrder),
			finite:  true,
			whisper: cfg.whisper,
		},
	}

	return p, nil
}

func resolveSizes(codec Codec, cfg *config) error {
	fs, hasFrameSize := codec.(frameSizer)
	switch {
	case cfg.frameSize == 0 && hasFrameSize:
		cfg.frameSize = fs.FrameSize()
	case cfg.frameSize == 0:
		cfg.frameSize = core.DefaultFrameSize
	case hasFrameSize && fs.FrameSize() != cfg.frameSize:
		return fmt.Errorf("resynth: frame size %d does not match codec frame size %d",
			cfg.frameSize, fs.FrameSize())
	}

	mo, hasMaxOrder := codec.(maxOrderer)
	switch {
	case cfg.maxOrder == 0 && hasMaxOrder:
		cfg.maxOrder = mo.MaxOrder()
	case cfg.maxOrder == 0:
		cfg.maxOrder = core.DefaultMaxOrder
	case hasMaxOrder && cfg.maxOrder > mo.MaxOrder():
		return fmt.Errorf("resynth: max order %d exceeds codec max order %d",
			cfg.maxOrder, mo.MaxOrder())
	}

	if cfg.maxOrder < MinOrder {
		return fmt.Errorf("resynth: max order must be >= %d: %d", MinOrder, cfg.maxOrder)
	}
	if cfg.frameSize < 1 {
		return fmt.Errorf("resynth: frame size must be >= 1: %d", cfg.frameSize)
	}

	return nil
}

// SetControls applies host control values. order is truncated toward zero;
// a non-finite order is kept as invalid and resolved by the order policy.
// Whisper is enabled when whisper > 0. Both take effect at the next frame
// boundary.
func (p *Processor) SetControls(order, whisper float64) {
	p.controls.order, p.controls.finite = truncateOrder(order)
	p.controls.whisper = whisper > 0
}

// SetOrder sets the prediction order used from the next frame boundary on.
func (p *Processor) SetOrder(order int) error {
	if order < MinOrder || order > p.maxOrder {
		return fmt.Errorf("%w: %d not in [%d, %d]", ErrInvalidOrder, order, MinOrder, p.maxOrder)
	}

	p.controls.order = order
	p.controls.finite = true

	return nil
}

// SetWhisper enables or disables whispered resynthesis from the next frame
// boundary on.
func (p *Processor) SetWhisper(enabled bool) {
	p.controls.whisper = enabled
}

// Order returns the raw order control. It may be out of range when set
// through SetControls.
func (p *Processor) Order() int { return p.controls.order }

// Whisper reports whether whispered resynthesis is enabled.
func (p *Processor) Whisper() bool { return p.controls.whisper }

// FrameSize returns the frame size in samples.
func (p *Processor) FrameSize() int { return p.frameSize }

// MaxOrder returns the largest order the coefficient buffer holds.
func (p *Processor) MaxOrder() int { return p.maxOrder }

// Latency returns the processing delay in samples, which is one frame.
func (p *Processor) Latency() int { return p.frameSize }

// Cursor returns the position inside the current frame.
func (p *Processor) Cursor() int {
	if p.acc == nil {
		return 0
	}
	return p.acc.Cursor()
}

// Stats returns the frame counters.
func (p *Processor) Stats() Stats { return p.stats }

// LastFrameError returns the error of the most recent frame boundary, or nil
// if it succeeded.
func (p *Processor) LastFrameError() error { return p.lastErr }

// Process feeds src through the effect and writes len(src) samples to dst.
// Controls are read once on entry. It returns the latency in samples.
//
// dst and src may be the same slice. Per-frame failures are reported through
// Stats and LastFrameError, never as the returned error.
func (p *Processor) Process(dst, src []float64) (int, error) {
	if p.closed {
		return 0, ErrClosed
	}
	if len(dst) < len(src) {
		return 0, fmt.Errorf("%w: dst has %d samples, src has %d", ErrLengthMismatch, len(dst), len(src))
	}

	ctl := p.controls
	for i, x := range src {
		dst[i] = p.step(x, ctl)
	}

	return p.frameSize, nil
}

// ProcessInPlace processes buf in place and returns the latency in samples.
func (p *Processor) ProcessInPlace(buf []float64) (int, error) {
	return p.Process(buf, buf)
}

// ProcessSample processes one sample with the current controls. A closed
// processor returns 0.
func (p *Processor) ProcessSample(x float64) float64 {
	if p.closed {
		return 0
	}
	return p.step(x, p.controls)
}

func (p *Processor) step(x float64, ctl controls) float64 {
	y := p.acc.Step(x)
	if p.acc.Full() {
		p.boundary(ctl)
		p.acc.Rewind()
	}
	return y
}

func (p *Processor) boundary(ctl controls) {
	p.stats.Frames++

	order, err := p.resolveOrder(ctl)
	if err != nil {
		p.stats.Skipped++
		p.lastErr = err
		return
	}

	coeffs := p.coeffs[:order]

	power, pitch, err := p.codec.Analyze(p.acc.Input(), coeffs)
	if err != nil {
		p.fail(fmt.Errorf("%w: analyze: %w", ErrCodec, err))
		return
	}

	if ctl.whisper {
		pitch = 0
	}

	if err := p.codec.Synthesize(p.synth.Samples(), coeffs, power, pitch); err != nil {
		p.fail(fmt.Errorf("%w: synthesize: %w", ErrCodec, err))
		return
	}

	if err := p.acc.Exchange(p.synth); err != nil {
		p.fail(err)
		return
	}

	p.stats.Synthesized++
	p.lastErr = nil
}

func (p *Processor) fail(err error) {
	p.stats.CodecFailures++
	p.lastErr = err
}

func (p *Processor) resolveOrder(ctl controls) (int, error) {
	if p.policy == OrderReject {
		if !ctl.finite {
			return 0, fmt.Errorf("%w: non-finite control", ErrInvalidOrder)
		}
		if ctl.order < MinOrder || ctl.order > p.maxOrder {
			return 0, fmt.Errorf("%w: %d not in [%d, %d]", ErrInvalidOrder, ctl.order, MinOrder, p.maxOrder)
		}
		return ctl.order, nil
	}

	if !ctl.finite {
		return min(core.DefaultOrder, p.maxOrder), nil
	}

	return core.ClampInt(ctl.order, MinOrder, p.maxOrder), nil
}

// truncateOrder converts a host control value to an integer order. Values
// beyond the int32 range saturate.
func truncateOrder(v float64) (int, bool) {
	if !core.IsFinite(v) {
		return 0, false
	}

	v = core.Clamp(math.Trunc(v), math.MinInt32, math.MaxInt32)

	return int(v), true
}

// Reset zeroes both frames, rewinds the cursor, clears the counters and resets
// the codec if it supports it. Controls are kept.
func (p *Processor) Reset() {
	if p.closed {
		return
	}

	p.acc.Reset()
	p.synth.Zero()
	clear(p.coeffs)
	p.stats = Stats{}
	p.lastErr = nil

	if r, ok := p.codec.(resetter); ok {
		r.Reset()
	}
}

// Close releases the codec. Further processing returns ErrClosed. Closing
// twice is a no-op.
func (p *Processor) Close() error {
	if p.closed {
		return nil
	}

	p.closed = true

	var err error
	if c, ok := p.codec.(io.Closer); ok {
		err = c.Close()
	}

	p.codec = nil
	p.acc = nil
	p.synth = nil
	p.coeffs = nil

	if err != nil {
		return fmt.Errorf("resynth: close codec: %w", err)
	}

	return nil
}
