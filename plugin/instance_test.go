package plugin

import (
	"io"
	"math"
	"testing"

	"github.com/cwbudde/algo-lpc/dsp/core"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	logrus.SetOutput(io.Discard)
}

type host struct {
	in      []float32
	out     []float32
	order   float32
	whisper float32
	latency float32
}

func newConnectedInstance(t *testing.T, block int, opts ...core.ProcessorOption) (*Instance, *host) {
	t.Helper()

	inst, err := Instantiate(Descriptor(0), 48000, opts...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = inst.Cleanup() })

	h := &host{
		in:    make([]float32, block),
		out:   make([]float32, block),
		order: 16,
	}

	require.NoError(t, inst.ConnectPort(PortInput, h.in))
	require.NoError(t, inst.ConnectPort(PortOutput, h.out))
	require.NoError(t, inst.ConnectPort(PortOrder, &h.order))
	require.NoError(t, inst.ConnectPort(PortWhisper, &h.whisper))
	require.NoError(t, inst.ConnectPort(PortLatency, &h.latency))

	return inst, h
}

func TestDescriptor(t *testing.T) {
	d := Descriptor(0)
	require.NotNil(t, d)
	assert.Equal(t, URI, d.URI)
	assert.Len(t, d.Ports, 5)

	for i, p := range d.Ports {
		assert.Equal(t, uint32(i), p.Index)
	}

	order, ok := d.Port(PortOrder)
	require.True(t, ok)
	assert.Equal(t, float32(core.DefaultOrder), order.Default)
	assert.Equal(t, PortKindControl, order.Kind)
	assert.False(t, order.Output)

	latency, ok := d.Port(PortLatency)
	require.True(t, ok)
	assert.True(t, latency.Output)

	_, ok = d.Port(5)
	assert.False(t, ok)

	assert.Nil(t, Descriptor(1))
	assert.Nil(t, Descriptor(42))

	assert.Equal(t, "audio", PortKindAudio.String())
	assert.Equal(t, "control", PortKindControl.String())
}

func TestInstantiateValidation(t *testing.T) {
	_, err := Instantiate(nil, 48000)
	assert.ErrorIs(t, err, ErrUnknownPlugin)

	_, err = Instantiate(&PluginDescriptor{URI: "urn:other"}, 48000)
	assert.ErrorIs(t, err, ErrUnknownPlugin)

	for _, rate := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		_, err = Instantiate(Descriptor(0), rate)
		assert.Error(t, err, "rate %v", rate)
	}

	_, err = Instantiate(Descriptor(0), 48000, core.WithFrameSize(32))
	assert.Error(t, err)
}

func TestInstantiateOptions(t *testing.T) {
	inst, err := Instantiate(Descriptor(0), 44100, core.WithFrameSize(1024), core.WithSampleRate(8000))
	require.NoError(t, err)
	defer inst.Cleanup()

	assert.Equal(t, 44100.0, inst.SampleRate())
	assert.Equal(t, 1024, inst.Latency())
}

func TestInstanceDescriptorMatchesLimits(t *testing.T) {
	inst, err := Instantiate(Descriptor(0), 48000, core.WithFrameSize(1024), core.WithMaxOrder(12))
	require.NoError(t, err)
	defer inst.Cleanup()

	d := inst.Descriptor()
	order, ok := d.Port(PortOrder)
	require.True(t, ok)
	assert.Equal(t, float32(12), order.Max)
	assert.Equal(t, float32(12), order.Default)

	latency, ok := d.Port(PortLatency)
	require.True(t, ok)
	assert.Equal(t, float32(1024), latency.Max)

	// Instance and package descriptors do not share port storage.
	d.Ports[PortOrder].Max = 1
	order, _ = inst.Descriptor().Port(PortOrder)
	assert.Equal(t, float32(12), order.Max)

	global, _ := Descriptor(0).Port(PortOrder)
	assert.Equal(t, float32(core.DefaultMaxOrder), global.Max)
}

func TestConnectPortErrors(t *testing.T) {
	inst, err := Instantiate(Descriptor(0), 48000)
	require.NoError(t, err)
	defer inst.Cleanup()

	var control float32

	assert.ErrorIs(t, inst.ConnectPort(PortInput, &control), ErrPortType)
	assert.ErrorIs(t, inst.ConnectPort(PortOrder, []float32{1}), ErrPortType)
	assert.ErrorIs(t, inst.ConnectPort(PortWhisper, 1.0), ErrPortType)
	assert.ErrorIs(t, inst.ConnectPort(9, &control), ErrUnknownPort)
	assert.NoError(t, inst.ConnectPort(PortLatency, nil))
}

func TestRunLifecycleErrors(t *testing.T) {
	inst, h := newConnectedInstance(t, 64)

	assert.ErrorIs(t, inst.Run(64), ErrNotActive)

	require.NoError(t, inst.Activate())
	assert.ErrorIs(t, inst.Run(65), ErrBufferTooShort)
	assert.ErrorIs(t, inst.Run(-1), ErrBufferTooShort)
	require.NoError(t, inst.Run(64))

	require.NoError(t, inst.ConnectPort(PortWhisper, nil))
	assert.ErrorIs(t, inst.Run(64), ErrPortNotConnected)
	require.NoError(t, inst.ConnectPort(PortWhisper, &h.whisper))

	require.NoError(t, inst.ConnectPort(PortInput, nil))
	assert.ErrorIs(t, inst.Run(64), ErrPortNotConnected)
	require.NoError(t, inst.ConnectPort(PortInput, h.in))

	require.NoError(t, inst.Deactivate())
	assert.ErrorIs(t, inst.Run(64), ErrNotActive)

	require.NoError(t, inst.Cleanup())
	require.NoError(t, inst.Cleanup())
	assert.ErrorIs(t, inst.Run(64), ErrCleanedUp)
	assert.ErrorIs(t, inst.Activate(), ErrCleanedUp)
	assert.ErrorIs(t, inst.Deactivate(), ErrCleanedUp)
	assert.ErrorIs(t, inst.ConnectPort(PortInput, h.in), ErrCleanedUp)
}

func TestRunReportsLatencyAndDelaysByOneFrame(t *testing.T) {
	const block = 256
	inst, h := newConnectedInstance(t, block)
	require.NoError(t, inst.Activate())

	frame := core.DefaultFrameSize
	blocks := 3 * frame / block

	var outputs []float32
	for b := range blocks {
		for i := range h.in {
			n := b*block + i
			h.in[i] = float32(0.5 * math.Sin(2*math.Pi*180*float64(n)/48000))
		}

		require.NoError(t, inst.Run(block))
		assert.Equal(t, float32(frame), h.latency)
		outputs = append(outputs, h.out...)
	}

	for i, v := range outputs[:frame] {
		require.Zerof(t, v, "sample %d", i)
	}

	energy := 0.0
	for _, v := range outputs[frame:] {
		require.False(t, math.IsNaN(float64(v)) || math.IsInf(float64(v), 0))
		energy += float64(v) * float64(v)
	}
	assert.Positive(t, energy)

	stats := inst.Stats()
	assert.Equal(t, uint64(3), stats.Frames)
	assert.Equal(t, uint64(3), stats.Synthesized)
	assert.NoError(t, inst.LastFrameError())
}

func TestRunReadsControlsOncePerCall(t *testing.T) {
	inst, h := newConnectedInstance(t, core.DefaultFrameSize)
	require.NoError(t, inst.Activate())

	h.order = 0
	h.whisper = 1
	require.NoError(t, inst.Run(core.DefaultFrameSize))

	// An order control of 0 is clamped, so the frame is still synthesized.
	assert.Equal(t, uint64(1), inst.Stats().Synthesized)
	assert.NoError(t, inst.LastFrameError())
}

func TestActivateResetsState(t *testing.T) {
	inst, h := newConnectedInstance(t, core.DefaultFrameSize)
	require.NoError(t, inst.Activate())

	for i := range h.in {
		h.in[i] = float32(math.Sin(float64(i) * 0.05))
	}
	require.NoError(t, inst.Run(core.DefaultFrameSize))
	require.NoError(t, inst.Deactivate())
	assert.Equal(t, uint64(1), inst.Stats().Frames)

	require.NoError(t, inst.Activate())
	assert.Equal(t, uint64(0), inst.Stats().Frames)

	require.NoError(t, inst.Run(core.DefaultFrameSize))
	for i, v := range h.out {
		require.Zerof(t, v, "sample %d", i)
	}
}
