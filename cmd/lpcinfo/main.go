// Command lpcinfo prints the per-frame LPC analysis of a WAV file: residual
// power, pitch period and voicing.
//
// Usage:
//
//	lpcinfo [flags] file.wav
//
// Examples:
//
//	lpcinfo voice.wav
//	lpcinfo -order 24 -frame 1024 -channel 1 stereo.wav
//	lpcinfo -window hamming -coeffs voice.wav
//	lpcinfo -window tukey -alpha 0.25 voice.wav
package main

import (
	"flag"
	"fmt"
	"io"
	"math"
	"os"
	"text/tabwriter"

	"github.com/cwbudde/algo-lpc/dsp/core"
	"github.com/cwbudde/algo-lpc/dsp/lpc"
	"github.com/cwbudde/algo-lpc/dsp/window"
	"github.com/cwbudde/algo-lpc/internal/wavio"
)

type options struct {
	order     int
	frameSize int
	channel   int
	window    window.Type
	alpha     float64
	coeffs    bool
}

type frameInfo struct {
	index   int
	start   int
	power   float64
	pitch   float64
	pitchHz float64
	coeffs  []float64
}

func (f frameInfo) voiced() bool { return f.pitch > 0 }

func main() {
	order := flag.Int("order", core.DefaultOrder, "prediction order")
	frame := flag.Int("frame", core.DefaultFrameSize, "analysis frame size in samples")
	channel := flag.Int("channel", 0, "channel to analyze (0-based)")
	win := flag.String("window", window.TypeHann.String(), "analysis window (rectangular, hann, hamming, blackman, tukey)")
	alpha := flag.Float64("alpha", 0.5, "taper fraction of the tukey window")
	coeffs := flag.Bool("coeffs", false, "also print the first prediction coefficients")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: lpcinfo [flags] file.wav\n\n")
		fmt.Fprintf(os.Stderr, "Prints per-frame LPC power, pitch and voicing of a WAV file.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	wt, err := window.Parse(*win)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(2)
	}

	a, err := wavio.Read(flag.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	opts := options{order: *order, frameSize: *frame, channel: *channel, window: wt, alpha: *alpha, coeffs: *coeffs}

	frames, err := analyze(a, opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("%s: %d Hz, %d channel(s), %d frames of %d samples, order %d\n\n",
		flag.Arg(0), a.SampleRate, len(a.Channels), len(frames), opts.frameSize, opts.order)
	printTable(os.Stdout, frames, float64(a.SampleRate), opts.coeffs)
}

// analyze runs the codec over every complete frame of the selected channel.
func analyze(a *wavio.Audio, opts options) ([]frameInfo, error) {
	if opts.channel < 0 || opts.channel >= len(a.Channels) {
		return nil, fmt.Errorf("channel %d out of range (file has %d)", opts.channel, len(a.Channels))
	}
	if opts.order < lpc.MinOrder {
		return nil, fmt.Errorf("order must be >= %d: %d", lpc.MinOrder, opts.order)
	}

	codec, err := lpc.New(float64(a.SampleRate), opts.frameSize,
		lpc.WithMaxOrder(opts.order), lpc.WithWindow(opts.window, window.WithAlpha(opts.alpha)))
	if err != nil {
		return nil, err
	}
	defer codec.Close()

	samples := a.Channels[opts.channel]
	coeffs := make([]float64, opts.order)

	var frames []frameInfo
	for start := 0; start+opts.frameSize <= len(samples); start += opts.frameSize {
		power, pitch, err := codec.Analyze(samples[start:start+opts.frameSize], coeffs)
		if err != nil {
			return nil, fmt.Errorf("frame %d: %w", len(frames), err)
		}

		info := frameInfo{
			index:   len(frames),
			start:   start,
			power:   power,
			pitch:   pitch,
			pitchHz: codec.PitchHz(pitch),
		}
		if opts.coeffs {
			info.coeffs = append([]float64(nil), coeffs[:min(4, len(coeffs))]...)
		}

		frames = append(frames, info)
	}

	return frames, nil
}

func printTable(out io.Writer, frames []frameInfo, sampleRate float64, withCoeffs bool) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', tabwriter.AlignRight)

	header := "Frame\tTime (s)\tPower (dB)\tPitch (smp)\tPitch (Hz)\tVoiced\t"
	if withCoeffs {
		header += "a1..a4\t"
	}
	fmt.Fprintln(w, header)

	for _, f := range frames {
		voiced := "no"
		pitch, hz := "-", "-"
		if f.voiced() {
			voiced = "yes"
			pitch = fmt.Sprintf("%.2f", f.pitch)
			hz = fmt.Sprintf("%.1f", f.pitchHz)
		}

		fmt.Fprintf(w, "%d\t%.3f\t%s\t%s\t%s\t%s\t",
			f.index, float64(f.start)/sampleRate, formatDB(core.LinearPowerToDB(f.power)), pitch, hz, voiced)
		if withCoeffs {
			fmt.Fprintf(w, "%s\t", formatCoeffs(f.coeffs))
		}
		fmt.Fprintln(w)
	}

	w.Flush()
}

func formatDB(v float64) string {
	if math.IsInf(v, -1) {
		return "-inf"
	}
	return fmt.Sprintf("%.1f", v)
}

func formatCoeffs(c []float64) string {
	s := ""
	for i, v := range c {
		if i > 0 {
			s += " "
		}
		s += fmt.Sprintf("%+.3f", v)
	}
	return s
}
