package plugin

import (
	"fmt"

	"github.com/cwbudde/algo-lpc/dsp/buffer"
	"github.com/cwbudde/algo-lpc/dsp/core"
	"github.com/cwbudde/algo-lpc/dsp/effects/resynth"
	"github.com/cwbudde/algo-lpc/dsp/lpc"
	"github.com/sirupsen/logrus"
)

// Host blocks are converted to float64 in chunks of this many samples.
const scratchSize = 256

// Instance is one running copy of the plugin. Like the processor it wraps,
// it must not be used from more than one goroutine at a time.
type Instance struct {
	descriptor *PluginDescriptor
	sampleRate float64
	proc       *resynth.Processor
	scratch    *buffer.Buffer

	input   []float32
	output  []float32
	order   *float32
	whisper *float32
	latency *float32

	active    bool
	cleanedUp bool
}

// Instantiate creates an instance of d at sampleRate. opts override the frame
// size and the maximum order; the sample rate argument always wins.
func Instantiate(d *PluginDescriptor, sampleRate float64, opts ...core.ProcessorOption) (*Instance, error) {
	if d == nil || d.URI != URI {
		return nil, ErrUnknownPlugin
	}
	if !(sampleRate > 0) || !core.IsFinite(sampleRate) {
		return nil, fmt.Errorf("plugin: sample rate must be > 0: %f", sampleRate)
	}

	cfg := core.ApplyProcessorOptions(opts...)
	cfg.SampleRate = sampleRate

	codec, err := lpc.New(cfg.SampleRate, cfg.FrameSize, lpc.WithMaxOrder(cfg.MaxOrder))
	if err != nil {
		return nil, fmt.Errorf("plugin: create codec: %w", err)
	}

	proc, err := resynth.New(codec)
	if err != nil {
		_ = codec.Close()
		return nil, fmt.Errorf("plugin: create processor: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"function":    "Instantiate",
		"uri":         d.URI,
		"sample_rate": cfg.SampleRate,
		"frame_size":  cfg.FrameSize,
		"max_order":   cfg.MaxOrder,
	}).Info("Plugin instantiated")

	return &Instance{
		descriptor: d.withLimits(proc.MaxOrder(), proc.FrameSize()),
		sampleRate: cfg.SampleRate,
		proc:       proc,
		scratch:    buffer.New(scratchSize),
	}, nil
}

// ConnectPort attaches host memory to a port: []float32 for audio ports and
// *float32 for control ports. Passing nil disconnects the port.
func (in *Instance) ConnectPort(port uint32, data any) error {
	if in.cleanedUp {
		return ErrCleanedUp
	}

	desc, ok := in.descriptor.Port(port)
	if !ok {
		return fmt.Errorf("%w: %d", ErrUnknownPort, port)
	}

	switch desc.Kind {
	case PortKindAudio:
		buf, ok := data.([]float32)
		if !ok && data != nil {
			return fmt.Errorf("%w: port %q wants []float32, got %T", ErrPortType, desc.Symbol, data)
		}
		if port == PortInput {
			in.input = buf
		} else {
			in.output = buf
		}
	case PortKindControl:
		value, ok := data.(*float32)
		if !ok && data != nil {
			return fmt.Errorf("%w: port %q wants *float32, got %T", ErrPortType, desc.Symbol, data)
		}
		switch port {
		case PortOrder:
			in.order = value
		case PortWhisper:
			in.whisper = value
		case PortLatency:
			in.latency = value
		}
	}

	return nil
}

// Activate resets the processing state. Run is only valid between Activate
// and Deactivate.
func (in *Instance) Activate() error {
	if in.cleanedUp {
		return ErrCleanedUp
	}

	in.proc.Reset()
	in.active = true

	logrus.WithFields(logrus.Fields{
		"function": "Activate",
		"latency":  in.proc.Latency(),
	}).Info("Plugin activated")

	return nil
}

// Run processes samples frames from the input port to the output port. The
// order and whisper controls are read once per call. The latency port, if
// connected, receives the processing delay.
func (in *Instance) Run(samples int) error {
	switch {
	case in.cleanedUp:
		return ErrCleanedUp
	case !in.active:
		return ErrNotActive
	case in.input == nil:
		return fmt.Errorf("%w: in", ErrPortNotConnected)
	case in.output == nil:
		return fmt.Errorf("%w: out", ErrPortNotConnected)
	case in.order == nil:
		return fmt.Errorf("%w: order", ErrPortNotConnected)
	case in.whisper == nil:
		return fmt.Errorf("%w: whisper", ErrPortNotConnected)
	case samples < 0 || samples > len(in.input) || samples > len(in.output):
		return fmt.Errorf("%w: %d samples, in=%d out=%d", ErrBufferTooShort, samples, len(in.input), len(in.output))
	}

	in.proc.SetControls(float64(*in.order), float64(*in.whisper))

	scratch := in.scratch.Samples()
	for pos := 0; pos < samples; {
		n := core.Widen(scratch[:min(len(scratch), samples-pos)], in.input[pos:samples])
		if _, err := in.proc.ProcessInPlace(scratch[:n]); err != nil {
			return err
		}
		core.Narrow(in.output[pos:pos+n], scratch[:n])
		pos += n
	}

	if in.latency != nil {
		*in.latency = float32(in.proc.Latency())
	}

	return nil
}

// Deactivate stops processing until the next Activate.
func (in *Instance) Deactivate() error {
	if in.cleanedUp {
		return ErrCleanedUp
	}

	in.active = false

	stats := in.proc.Stats()
	logrus.WithFields(logrus.Fields{
		"function":       "Deactivate",
		"frames":         stats.Frames,
		"synthesized":    stats.Synthesized,
		"skipped":        stats.Skipped,
		"codec_failures": stats.CodecFailures,
	}).Info("Plugin deactivated")

	return nil
}

// Cleanup releases the codec and all buffers. It is safe to call more than
// once.
func (in *Instance) Cleanup() error {
	if in.cleanedUp {
		return nil
	}

	in.cleanedUp = true
	in.active = false
	in.input, in.output = nil, nil
	in.order, in.whisper, in.latency = nil, nil, nil

	err := in.proc.Close()

	logrus.WithFields(logrus.Fields{
		"function": "Cleanup",
	}).Info("Plugin cleaned up")

	if err != nil {
		return fmt.Errorf("plugin: cleanup: %w", err)
	}

	return nil
}

// Descriptor returns the descriptor of this instance. The order and latency
// port ranges reflect the instance's maximum order and frame size.
func (in *Instance) Descriptor() *PluginDescriptor { return in.descriptor.clone() }

// SampleRate returns the instance sample rate in Hz.
func (in *Instance) SampleRate() float64 { return in.sampleRate }

// Latency returns the processing delay in samples.
func (in *Instance) Latency() int { return in.proc.FrameSize() }

// Stats returns the frame counters of the underlying processor.
func (in *Instance) Stats() resynth.Stats { return in.proc.Stats() }

// LastFrameError returns the error of the most recent frame boundary.
func (in *Instance) LastFrameError() error { return in.proc.LastFrameError() }

