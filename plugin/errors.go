package plugin

import "errors"

var (
	// ErrUnknownPlugin is returned when instantiating a descriptor this package does not provide.
	ErrUnknownPlugin = errors.New("plugin: unknown plugin descriptor")
	// ErrUnknownPort is returned for a port index outside the descriptor.
	ErrUnknownPort = errors.New("plugin: unknown port")
	// ErrPortType is returned when ConnectPort receives data of the wrong type.
	ErrPortType = errors.New("plugin: wrong data type for port")
	// ErrPortNotConnected is returned by Run when a required port has no data.
	ErrPortNotConnected = errors.New("plugin: port not connected")
	// ErrBufferTooShort is returned by Run when a connected audio buffer cannot hold the block.
	ErrBufferTooShort = errors.New("plugin: audio buffer too short")
	// ErrNotActive is returned by Run outside Activate/Deactivate.
	ErrNotActive = errors.New("plugin: instance not active")
	// ErrCleanedUp is returned by every call after Cleanup.
	ErrCleanedUp = errors.New("plugin: instance cleaned up")
)
