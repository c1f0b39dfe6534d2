// Command lpclive runs the LPC resynthesis effect on the default audio input
// and plays the result on the default output until interrupted.
//
// Usage:
//
//	lpclive [flags]
//
// Examples:
//
//	lpclive -order 12
//	lpclive -whisper -rate 44100 -buffer 128
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/cwbudde/algo-lpc/dsp/core"
	"github.com/cwbudde/algo-lpc/plugin"
	"github.com/gordonklaus/portaudio"
	"github.com/sirupsen/logrus"
)

type config struct {
	order      float64
	whisper    bool
	sampleRate float64
	buffer     int
	frameSize  int
	maxOrder   int
}

func main() {
	order := flag.Float64("order", core.DefaultOrder, "prediction order")
	whisper := flag.Bool("whisper", false, "resynthesize with noise excitation only")
	rate := flag.Float64("rate", core.DefaultSampleRate, "sample rate in Hz")
	bufSize := flag.Int("buffer", 256, "audio buffer size in samples")
	frame := flag.Int("frame", core.DefaultFrameSize, "analysis frame size in samples")
	maxOrder := flag.Int("maxorder", core.DefaultMaxOrder, "largest prediction order the order control reaches")
	verbose := flag.Bool("v", false, "verbose logging")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: lpclive [flags]\n\n")
		fmt.Fprintf(os.Stderr, "Runs the LPC resynthesis effect on the default audio devices.\n")
		fmt.Fprintf(os.Stderr, "Stop with Ctrl-C.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if *verbose {
		logrus.SetLevel(logrus.DebugLevel)
	}

	cfg := config{
		order:      *order,
		whisper:    *whisper,
		sampleRate: *rate,
		buffer:     *bufSize,
		frameSize:  *frame,
		maxOrder:   *maxOrder,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		logrus.WithFields(logrus.Fields{
			"function": "main",
			"error":    err.Error(),
		}).Error("Live processing failed")
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config) error {
	if cfg.buffer < 1 {
		return fmt.Errorf("buffer size must be >= 1: %d", cfg.buffer)
	}

	if cfg.maxOrder < 1 {
		return fmt.Errorf("max order must be >= 1: %d", cfg.maxOrder)
	}

	inst, err := plugin.Instantiate(plugin.Descriptor(0), cfg.sampleRate,
		core.WithFrameSize(cfg.frameSize), core.WithMaxOrder(cfg.maxOrder))
	if err != nil {
		return err
	}
	defer inst.Cleanup()

	in := make([]float32, cfg.buffer)
	out := make([]float32, cfg.buffer)
	order := float32(cfg.order)
	whisper := float32(0)
	if cfg.whisper {
		whisper = 1
	}
	var latency float32

	ports := []struct {
		port uint32
		data any
	}{
		{plugin.PortInput, in},
		{plugin.PortOutput, out},
		{plugin.PortOrder, &order},
		{plugin.PortWhisper, &whisper},
		{plugin.PortLatency, &latency},
	}
	for _, p := range ports {
		if err := inst.ConnectPort(p.port, p.data); err != nil {
			return err
		}
	}

	if err := portaudio.Initialize(); err != nil {
		return fmt.Errorf("portaudio init: %w", err)
	}
	defer portaudio.Terminate()

	inputDev, err := portaudio.DefaultInputDevice()
	if err != nil {
		return err
	}

	outputDev, err := portaudio.DefaultOutputDevice()
	if err != nil {
		return err
	}

	params := portaudio.StreamParameters{
		Input: portaudio.StreamDeviceParameters{
			Device:   inputDev,
			Channels: 1,
			Latency:  inputDev.DefaultLowInputLatency,
		},
		Output: portaudio.StreamDeviceParameters{
			Device:   outputDev,
			Channels: 1,
			Latency:  outputDev.DefaultLowOutputLatency,
		},
		SampleRate:      cfg.sampleRate,
		FramesPerBuffer: cfg.buffer,
	}

	stream, err := portaudio.OpenStream(params, in, out)
	if err != nil {
		return err
	}
	defer stream.Close()

	if err := inst.Activate(); err != nil {
		return err
	}
	defer inst.Deactivate()

	if err := stream.Start(); err != nil {
		return err
	}
	defer stream.Stop()

	logrus.WithFields(logrus.Fields{
		"function":    "run",
		"input":       inputDev.Name,
		"output":      outputDev.Name,
		"sample_rate": cfg.sampleRate,
		"buffer":      cfg.buffer,
		"order":       cfg.order,
		"max_order":   cfg.maxOrder,
		"whisper":     cfg.whisper,
		"latency":     inst.Latency(),
	}).Info("Live processing started")

	for ctx.Err() == nil {
		if err := stream.Read(); err != nil {
			return fmt.Errorf("read: %w", err)
		}

		if err := inst.Run(len(in)); err != nil {
			return err
		}

		if err := stream.Write(); err != nil {
			return fmt.Errorf("write: %w", err)
		}
	}

	stats := inst.Stats()
	logrus.WithFields(logrus.Fields{
		"function":       "run",
		"frames":         stats.Frames,
		"codec_failures": stats.CodecFailures,
	}).Info("Live processing stopped")

	return nil
}
