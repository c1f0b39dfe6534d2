// Package plugin adapts the LPC resynthesis effect to a host plugin
// lifecycle: look up a descriptor, instantiate, connect ports, activate, run
// blocks, deactivate and clean up.
//
// The port layout follows the usual audio plugin convention of one mono
// audio input and output, two input controls (prediction order and whisper)
// and one output control reporting the latency in samples.
package plugin
