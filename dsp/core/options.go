package core

// Frame and order defaults shared by the LPC codec and the resynthesis core.
const (
	DefaultSampleRate = 48000
	DefaultFrameSize  = 2048
	DefaultOrder      = 16
	DefaultMaxOrder   = 64
)

// ProcessorConfig defines common frame-based processing settings.
type ProcessorConfig struct {
	SampleRate float64
	FrameSize  int
	MaxOrder   int
}

// ProcessorOption mutates a ProcessorConfig.
type ProcessorOption func(*ProcessorConfig)

// DefaultProcessorConfig returns the defaults used by plugin sessions.
func DefaultProcessorConfig() ProcessorConfig {
	return ProcessorConfig{
		SampleRate: DefaultSampleRate,
		FrameSize:  DefaultFrameSize,
		MaxOrder:   DefaultMaxOrder,
	}
}

// WithSampleRate sets the processing sample rate.
func WithSampleRate(sampleRate float64) ProcessorOption {
	return func(cfg *ProcessorConfig) {
		if sampleRate > 0 {
			cfg.SampleRate = sampleRate
		}
	}
}

// WithFrameSize sets the analysis frame length in samples.
func WithFrameSize(frameSize int) ProcessorOption {
	return func(cfg *ProcessorConfig) {
		if frameSize > 0 {
			cfg.FrameSize = frameSize
		}
	}
}

// WithMaxOrder sets the largest prediction order a session accepts.
func WithMaxOrder(maxOrder int) ProcessorOption {
	return func(cfg *ProcessorConfig) {
		if maxOrder > 0 {
			cfg.MaxOrder = maxOrder
		}
	}
}

// ApplyProcessorOptions applies zero or more options to the default config.
func ApplyProcessorOptions(opts ...ProcessorOption) ProcessorConfig {
	cfg := DefaultProcessorConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}
