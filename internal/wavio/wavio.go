// Package wavio reads and writes PCM WAV files as per-channel float64 slices
// in [-1, 1].
package wavio

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

const wavFormatPCM = 1

var (
	// ErrInvalidFile is returned for input that is not a readable WAV file.
	ErrInvalidFile = errors.New("wavio: not a valid WAV file")
	// ErrBitDepth is returned for bit depths other than 16, 24 or 32.
	ErrBitDepth = errors.New("wavio: unsupported bit depth")
)

// Audio is a decoded multichannel signal.
type Audio struct {
	SampleRate int
	BitDepth   int
	Channels   [][]float64
}

// Frames returns the number of samples per channel.
func (a *Audio) Frames() int {
	if a == nil || len(a.Channels) == 0 {
		return 0
	}
	return len(a.Channels[0])
}

// Read decodes the WAV file at path.
func Read(path string) (*Audio, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	a, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return a, nil
}

// Decode reads a PCM WAV stream.
func Decode(r io.ReadSeeker) (*Audio, error) {
	dec := wav.NewDecoder(r)
	if !dec.IsValidFile() {
		return nil, ErrInvalidFile
	}

	bitDepth := int(dec.BitDepth)
	if err := checkBitDepth(bitDepth); err != nil {
		return nil, err
	}

	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("wavio: decode: %w", err)
	}

	numChans := int(dec.NumChans)
	if numChans < 1 {
		return nil, ErrInvalidFile
	}

	frames := len(buf.Data) / numChans
	a := &Audio{
		SampleRate: int(dec.SampleRate),
		BitDepth:   bitDepth,
		Channels:   make([][]float64, numChans),
	}

	scale := 1 / fullScale(bitDepth)
	for ch := range a.Channels {
		samples := make([]float64, frames)
		for n := range samples {
			samples[n] = float64(buf.Data[n*numChans+ch]) * scale
		}
		a.Channels[ch] = samples
	}

	return a, nil
}

// Write encodes a to a new WAV file at path.
func Write(path string, a *Audio) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	if err := Encode(f, a); err != nil {
		_ = f.Close()
		return fmt.Errorf("%s: %w", path, err)
	}

	return f.Close()
}

// Encode writes a as interleaved integer PCM. Samples are clipped to [-1, 1].
func Encode(w io.WriteSeeker, a *Audio) error {
	if a == nil || len(a.Channels) == 0 {
		return errors.New("wavio: no channels to encode")
	}
	if a.SampleRate <= 0 {
		return fmt.Errorf("wavio: sample rate must be > 0: %d", a.SampleRate)
	}
	if err := checkBitDepth(a.BitDepth); err != nil {
		return err
	}

	frames := a.Frames()
	for ch, samples := range a.Channels {
		if len(samples) != frames {
			return fmt.Errorf("wavio: channel %d has %d samples, want %d", ch, len(samples), frames)
		}
	}

	numChans := len(a.Channels)
	peak := fullScale(a.BitDepth)
	data := make([]int, frames*numChans)

	for ch, samples := range a.Channels {
		for n, v := range samples {
			data[n*numChans+ch] = quantize(v, peak)
		}
	}

	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: numChans, SampleRate: a.SampleRate},
		Data:           data,
		SourceBitDepth: a.BitDepth,
	}

	enc := wav.NewEncoder(w, a.SampleRate, a.BitDepth, numChans, wavFormatPCM)
	if err := enc.Write(buf); err != nil {
		return fmt.Errorf("wavio: encode: %w", err)
	}

	if err := enc.Close(); err != nil {
		return fmt.Errorf("wavio: finalize: %w", err)
	}

	return nil
}

func checkBitDepth(bitDepth int) error {
	switch bitDepth {
	case 16, 24, 32:
		return nil
	default:
		return fmt.Errorf("%w: %d", ErrBitDepth, bitDepth)
	}
}

func fullScale(bitDepth int) float64 {
	return float64(int64(1) << (bitDepth - 1))
}

func quantize(v, peak float64) int {
	if math.IsNaN(v) {
		return 0
	}

	q := math.Round(v * peak)

	return int(max(-peak, min(q, peak-1)))
}
