// Command lpcfx runs WAV files through the LPC resynthesis effect.
//
// Every channel gets its own effect session. Audio is fed in host-sized
// blocks so the output is identical to what a plugin host would produce.
//
// Usage:
//
//	lpcfx -in in.wav -out out.wav [flags]
//
// Examples:
//
//	lpcfx -in voice.wav -out robot.wav -order 12
//	lpcfx -in voice.wav -out whisper.wav -whisper -compensate
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/cwbudde/algo-lpc/dsp/buffer"
	"github.com/cwbudde/algo-lpc/dsp/core"
	"github.com/cwbudde/algo-lpc/dsp/effects/resynth"
	"github.com/cwbudde/algo-lpc/dsp/lpc"
	"github.com/cwbudde/algo-lpc/internal/wavio"
	timestats "github.com/cwbudde/algo-lpc/stats/time"
	"github.com/sirupsen/logrus"
)

type config struct {
	order      int
	whisper    bool
	block      int
	frameSize  int
	compensate bool
	reject     bool
}

type channelReport struct {
	channel int
	input   timestats.Stats
	output  timestats.Stats
	frames  resynth.Stats
	lastErr error
}

func main() {
	in := flag.String("in", "", "input WAV file")
	out := flag.String("out", "", "output WAV file")
	order := flag.Int("order", core.DefaultOrder, "prediction order")
	whisper := flag.Bool("whisper", false, "resynthesize with noise excitation only")
	block := flag.Int("block", 512, "host block size in samples")
	frame := flag.Int("frame", core.DefaultFrameSize, "analysis frame size in samples")
	compensate := flag.Bool("compensate", false, "remove the one-frame latency from the output")
	reject := flag.Bool("reject", false, "skip frames with an out-of-range order instead of clamping")
	verbose := flag.Bool("v", false, "verbose logging")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: lpcfx -in in.wav -out out.wav [flags]\n\n")
		fmt.Fprintf(os.Stderr, "Processes a WAV file with the LPC resynthesis effect.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if *verbose {
		logrus.SetLevel(logrus.DebugLevel)
	}

	if *in == "" || *out == "" {
		flag.Usage()
		os.Exit(2)
	}

	cfg := config{
		order:      *order,
		whisper:    *whisper,
		block:      *block,
		frameSize:  *frame,
		compensate: *compensate,
		reject:     *reject,
	}

	if err := run(*in, *out, cfg); err != nil {
		logrus.WithFields(logrus.Fields{
			"function": "main",
			"error":    err.Error(),
		}).Error("Processing failed")
		os.Exit(1)
	}
}

func run(inPath, outPath string, cfg config) error {
	src, err := wavio.Read(inPath)
	if err != nil {
		return err
	}

	logrus.WithFields(logrus.Fields{
		"function":    "run",
		"file":        inPath,
		"sample_rate": src.SampleRate,
		"channels":    len(src.Channels),
		"frames":      src.Frames(),
	}).Info("Input loaded")

	dst, reports, err := render(src, cfg)
	if err != nil {
		return err
	}

	for _, r := range reports {
		fields := logrus.Fields{
			"function":       "run",
			"channel":        r.channel,
			"in_rms_db":      r.input.RMSdB,
			"out_rms_db":     r.output.RMSdB,
			"out_peak_db":    r.output.PeakdB,
			"gain_db":        timestats.GainDB(r.input, r.output),
			"clipped":        r.output.Clipped,
			"frames":         r.frames.Frames,
			"synthesized":    r.frames.Synthesized,
			"skipped":        r.frames.Skipped,
			"codec_failures": r.frames.CodecFailures,
		}
		if r.lastErr != nil {
			fields["last_error"] = r.lastErr.Error()
		}
		logrus.WithFields(fields).Info("Channel processed")
	}

	if err := wavio.Write(outPath, dst); err != nil {
		return err
	}

	logrus.WithFields(logrus.Fields{
		"function": "run",
		"file":     outPath,
	}).Info("Output written")

	return nil
}

// render processes every channel of src through its own session.
func render(src *wavio.Audio, cfg config) (*wavio.Audio, []channelReport, error) {
	if cfg.block < 1 {
		return nil, nil, fmt.Errorf("block size must be >= 1: %d", cfg.block)
	}
	if len(src.Channels) == 0 {
		return nil, nil, errors.New("input has no channels")
	}

	dst := &wavio.Audio{
		SampleRate: src.SampleRate,
		BitDepth:   src.BitDepth,
		Channels:   make([][]float64, len(src.Channels)),
	}

	pool := buffer.NewPool()
	reports := make([]channelReport, len(src.Channels))

	for ch, samples := range src.Channels {
		out, report, err := renderChannel(samples, float64(src.SampleRate), cfg, pool)
		if err != nil {
			return nil, nil, fmt.Errorf("channel %d: %w", ch, err)
		}

		report.channel = ch
		dst.Channels[ch] = out
		reports[ch] = report
	}

	return dst, reports, nil
}

func renderChannel(samples []float64, sampleRate float64, cfg config, pool *buffer.Pool) ([]float64, channelReport, error) {
	var report channelReport

	codec, err := lpc.New(sampleRate, cfg.frameSize)
	if err != nil {
		return nil, report, err
	}

	policy := resynth.OrderClamp
	if cfg.reject {
		policy = resynth.OrderReject
	}

	proc, err := resynth.New(codec, resynth.WithOrderPolicy(policy))
	if err != nil {
		_ = codec.Close()
		return nil, report, err
	}
	defer proc.Close()

	// Host semantics: the order control is a float, range handling is up to
	// the session.
	proc.SetControls(float64(cfg.order), boolControl(cfg.whisper))

	skip := 0
	total := len(samples)
	if cfg.compensate {
		skip = proc.Latency()
		total += skip
	}

	inStats := timestats.NewStreamingStats()
	outStats := timestats.NewStreamingStats()
	inStats.Update(samples)

	out := make([]float64, 0, len(samples))
	inBlock := pool.Get(cfg.block)
	outBlock := pool.Get(cfg.block)
	defer pool.Put(inBlock)
	defer pool.Put(outBlock)

	for pos := 0; pos < total; pos += cfg.block {
		n := min(cfg.block, total-pos)
		src := inBlock.Samples()[:n]
		dst := outBlock.Samples()[:n]

		// Past the end of the input the session is flushed with silence.
		copied := 0
		if pos < len(samples) {
			copied = copy(src, samples[pos:])
		}
		clear(src[copied:])

		if _, err := proc.Process(dst, src); err != nil {
			return nil, report, err
		}

		keep := dst
		if pos < skip {
			keep = dst[min(skip-pos, n):]
		}
		out = append(out, keep...)
	}

	outStats.Update(out)

	report.input = inStats.Result()
	report.output = outStats.Result()
	report.frames = proc.Stats()
	report.lastErr = proc.LastFrameError()

	logrus.WithFields(logrus.Fields{
		"function": "renderChannel",
		"latency":  proc.Latency(),
		"skipped":  skip,
		"samples":  len(out),
	}).Debug("Channel rendered")

	return out, report, nil
}

func boolControl(v bool) float64 {
	if v {
		return 1
	}
	return 0
}
