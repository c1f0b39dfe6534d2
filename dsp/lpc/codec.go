package lpc

import (
	"fmt"
	"math"
	"math/rand/v2"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-lpc/dsp/core"
	"github.com/cwbudde/algo-lpc/dsp/window"
)

const (
	// MinOrder is the smallest prediction order the codec accepts.
	MinOrder = 1

	minFrameSize = 64

	defaultMinPitchHz       = 60.0
	defaultMaxPitchHz       = 800.0
	defaultVoicingThreshold = 0.35
	defaultSeed             = 0x6c7063

	// Octave-error guard: the earliest autocorrelation peak within this
	// fraction of the global maximum wins.
	pitchPeakTolerance = 0.85

	// White-noise correction added to r[0] before the recursion.
	noiseFloorCorrection = 1e-9

	pcgStream = 0x9e3779b97f4a7c15
	sqrt3     = 1.7320508075688772
)

// Option configures a Codec at construction time.
type Option func(*config) error

type config struct {
	maxOrder         int
	windowType       window.Type
	windowOpts       []window.Option
	minPitchHz       float64
	maxPitchHz       float64
	voicingThreshold float64
	seed             uint64
}

func defaultConfig() config {
	return config{
		maxOrder:         core.DefaultMaxOrder,
		windowType:       window.TypeHann,
		minPitchHz:       defaultMinPitchHz,
		maxPitchHz:       defaultMaxPitchHz,
		voicingThreshold: defaultVoicingThreshold,
		seed:             defaultSeed,
	}
}

// WithMaxOrder sets the largest prediction order Analyze and Synthesize accept.
func WithMaxOrder(order int) Option {
	return func(cfg *config) error {
		if order < MinOrder {
			return fmt.Errorf("lpc: max order must be >= %d: %d", MinOrder, order)
		}

		cfg.maxOrder = order

		return nil
	}
}

// WithWindow selects the analysis window and its shape options. Defaults to
// a symmetric Hann window.
func WithWindow(t window.Type, opts ...window.Option) Option {
	return func(cfg *config) error {
		cfg.windowType = t
		cfg.windowOpts = opts
		return nil
	}
}

// WithPitchRange sets the fundamental frequency search range in Hz.
func WithPitchRange(minHz, maxHz float64) Option {
	return func(cfg *config) error {
		if !core.IsFinite(minHz) || !core.IsFinite(maxHz) || minHz <= 0 || maxHz <= minHz {
			return fmt.Errorf("lpc: pitch range must satisfy 0 < min < max: [%g, %g]", minHz, maxHz)
		}

		cfg.minPitchHz = minHz
		cfg.maxPitchHz = maxHz

		return nil
	}
}

// WithVoicingThreshold sets the normalized autocorrelation peak above which a
// frame is considered voiced.
func WithVoicingThreshold(threshold float64) Option {
	return func(cfg *config) error {
		if !(threshold > 0 && threshold < 1) {
			return fmt.Errorf("lpc: voicing threshold must be in (0, 1): %g", threshold)
		}

		cfg.voicingThreshold = threshold

		return nil
	}
}

// WithSeed sets the seed of the unvoiced excitation generator.
func WithSeed(seed uint64) Option {
	return func(cfg *config) error {
		cfg.seed = seed
		return nil
	}
}

// Codec analyzes and resynthesizes fixed-size frames.
type Codec struct {
	sampleRate       float64
	frameSize        int
	maxOrder         int
	windowType       window.Type
	minPitchHz       float64
	maxPitchHz       float64
	voicingThreshold float64
	seed             uint64

	minLag int
	maxLag int

	plan     *algofft.Plan[complex128]
	spectrum []complex128
	re       []float64
	im       []float64
	power    []float64

	win      []float64
	winGain  float64
	windowed []float64
	acf      []float64
	pitchACF []float64

	history    []float64
	untilPulse float64
	pcg        *rand.PCG
	rng        *rand.Rand

	closed bool
}

// New creates a codec for frames of frameSize samples at sampleRate.
func New(sampleRate float64, frameSize int, opts ...Option) (*Codec, error) {
	if sampleRate <= 0 || !core.IsFinite(sampleRate) {
		return nil, fmt.Errorf("lpc: sample rate must be > 0: %f", sampleRate)
	}
	if frameSize < minFrameSize {
		return nil, fmt.Errorf("%w: %d, want >= %d", ErrFrameSize, frameSize, minFrameSize)
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

	if cfg.maxOrder >= frameSize {
		return nil, fmt.Errorf("lpc: max order must be < frame size %d: %d", frameSize, cfg.maxOrder)
	}
	if cfg.maxPitchHz >= sampleRate/2 {
		return nil, fmt.Errorf("lpc: max pitch must be below Nyquist %g Hz: %g", sampleRate/2, cfg.maxPitchHz)
	}

	minLag := max(2, int(math.Floor(sampleRate/cfg.maxPitchHz)))
	maxLag := min(frameSize/2, int(math.Ceil(sampleRate/cfg.minPitchHz)))
	if need := 2 * (minLag + 2); frameSize < need && int(math.Ceil(sampleRate/cfg.minPitchHz)) >= minLag+2 {
		return nil, fmt.Errorf("%w: %d for pitch range [%g, %g] Hz at %g Hz, want >= %d",
			ErrFrameSize, frameSize, cfg.minPitchHz, cfg.maxPitchHz, sampleRate, need)
	}
	if minLag+2 > maxLag {
		return nil, fmt.Errorf("lpc: pitch range [%g, %g] Hz does not fit frame size %d at %g Hz",
			cfg.minPitchHz, cfg.maxPitchHz, frameSize, sampleRate)
	}

	win := window.Generate(cfg.windowType, frameSize, cfg.windowOpts...)
	winGain, err := window.PowerGain(win)
	if err != nil {
		return nil, fmt.Errorf("lpc: analysis window: %w", err)
	}

	fftSize := nextPowerOf2(frameSize + max(cfg.maxOrder, maxLag) + 1)
	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return nil, fmt.Errorf("lpc: failed to create FFT plan: %w", err)
	}

	pcg := rand.NewPCG(cfg.seed, pcgStream)

	c := &Codec{
		sampleRate:       sampleRate,
		frameSize:        frameSize,
		maxOrder:         cfg.maxOrder,
		windowType:       cfg.windowType,
		minPitchHz:       cfg.minPitchHz,
		maxPitchHz:       cfg.maxPitchHz,
		voicingThreshold: cfg.voicingThreshold,
		seed:             cfg.seed,
		minLag:           minLag,
		maxLag:           maxLag,
		plan:             plan,
		spectrum:         make([]complex128, fftSize),
		re:               make([]float64, fftSize),
		im:               make([]float64, fftSize),
		power:            make([]float64, fftSize),
		win:              win,
		winGain:          winGain,
		windowed:         make([]float64, frameSize),
		acf:              make([]float64, cfg.maxOrder+1),
		pitchACF:         make([]float64, maxLag+2),
		history:          make([]float64, cfg.maxOrder),
		pcg:              pcg,
		rng:              rand.New(pcg),
	}

	return c, nil
}

// SampleRate returns the sample rate in Hz.
func (c *Codec) SampleRate() float64 { return c.sampleRate }

// FrameSize returns the frame length in samples.
func (c *Codec) FrameSize() int { return c.frameSize }

// MaxOrder returns the largest accepted prediction order.
func (c *Codec) MaxOrder() int { return c.maxOrder }

// Window returns the analysis window type.
func (c *Codec) Window() window.Type { return c.windowType }

// PitchRange returns the fundamental frequency search range in Hz.
func (c *Codec) PitchRange() (minHz, maxHz float64) { return c.minPitchHz, c.maxPitchHz }

// PitchHz converts a pitch period in samples to Hz. The unvoiced sentinel
// maps to 0.
func (c *Codec) PitchHz(pitch float64) float64 {
	if pitch <= 0 {
		return 0
	}
	return c.sampleRate / pitch
}

// Reset clears the synthesis filter memory, the pulse phase and restarts the
// noise generator from its seed.
func (c *Codec) Reset() {
	clear(c.history)
	c.untilPulse = 0
	c.pcg.Seed(c.seed, pcgStream)
}

// Close releases the FFT plan and all scratch buffers. It is safe to call
// more than once.
func (c *Codec) Close() error {
	if c.closed {
		return nil
	}

	c.closed = true
	c.plan = nil
	c.spectrum, c.re, c.im, c.power = nil, nil, nil, nil
	c.win, c.windowed, c.acf, c.pitchACF, c.history = nil, nil, nil, nil, nil

	return nil
}

func nextPowerOf2(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}
