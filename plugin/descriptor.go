package plugin

import (
	"slices"

	"github.com/cwbudde/algo-lpc/dsp/core"
)

// URI identifies the LPC resynthesis plugin.
const URI = "https://github.com/cwbudde/algo-lpc/plugins/lpc"

// Port indices.
const (
	PortInput uint32 = iota
	PortOutput
	PortOrder
	PortWhisper
	PortLatency
)

// PortKind distinguishes audio buffers from scalar controls.
type PortKind int

const (
	PortKindAudio PortKind = iota
	PortKindControl
)

// String returns the port kind name.
func (k PortKind) String() string {
	if k == PortKindAudio {
		return "audio"
	}
	return "control"
}

// PortDescriptor describes one port of the plugin.
type PortDescriptor struct {
	Index  uint32
	Symbol string
	Name   string
	Kind   PortKind
	Output bool

	// Control range; unused for audio ports.
	Default float32
	Min     float32
	Max     float32
	Toggle  bool
	Integer bool
}

// PluginDescriptor describes a plugin and its ports.
type PluginDescriptor struct {
	URI   string
	Name  string
	Ports []PortDescriptor
}

// Port returns the descriptor of port index, or false if it does not exist.
func (d *PluginDescriptor) Port(index uint32) (PortDescriptor, bool) {
	if d == nil || int(index) >= len(d.Ports) {
		return PortDescriptor{}, false
	}
	return d.Ports[index], true
}

var lpcDescriptor = PluginDescriptor{
	URI:  URI,
	Name: "LPC Resynthesis",
	Ports: []PortDescriptor{
		{Index: PortInput, Symbol: "in", Name: "In", Kind: PortKindAudio},
		{Index: PortOutput, Symbol: "out", Name: "Out", Kind: PortKindAudio, Output: true},
		{
			Index: PortOrder, Symbol: "order", Name: "Order", Kind: PortKindControl,
			Default: core.DefaultOrder, Min: 1, Max: core.DefaultMaxOrder, Integer: true,
		},
		{
			Index: PortWhisper, Symbol: "whisper", Name: "Whisper", Kind: PortKindControl,
			Default: 0, Min: 0, Max: 1, Toggle: true,
		},
		{
			Index: PortLatency, Symbol: "latency", Name: "Latency", Kind: PortKindControl, Output: true,
			Min: 0, Max: core.DefaultFrameSize, Integer: true,
		},
	},
}

// Descriptor returns the plugin descriptor at index. The library exposes a
// single plugin at index 0; any other index returns nil.
func Descriptor(index uint32) *PluginDescriptor {
	if index != 0 {
		return nil
	}
	return lpcDescriptor.clone()
}

func (d *PluginDescriptor) clone() *PluginDescriptor {
	c := *d
	c.Ports = slices.Clone(d.Ports)
	return &c
}

// withLimits returns a copy of d whose order and latency ranges match a
// session with the given maximum order and frame size.
func (d *PluginDescriptor) withLimits(maxOrder, frameSize int) *PluginDescriptor {
	c := d.clone()
	c.Ports[PortOrder].Max = float32(maxOrder)
	c.Ports[PortOrder].Default = float32(min(core.DefaultOrder, maxOrder))
	c.Ports[PortLatency].Max = float32(frameSize)
	return c
}
