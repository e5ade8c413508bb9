package backend

import (
	"errors"
	"fmt"

	"github.com/ryanmt/nmatrix/core"
)

// DeviceType identifies the kind of memory an element buffer lives in.
type DeviceType uint8

const (
	CPU DeviceType = iota
)

func (t DeviceType) String() string {
	switch t {
	case CPU:
		return "cpu"
	default:
		return fmt.Sprintf("DeviceType(%d)", t)
	}
}

// Device identifies a specific device.
type Device struct {
	Type  DeviceType
	Index int
}

// CPU0 is the default CPU device.
var CPU0 = Device{Type: CPU, Index: 0}

// Storage is an owned block of element memory. The owner releases it with
// Free; Bytes must not be used afterwards.
type Storage interface {
	Device() Device
	Ptr() uintptr
	Bytes() []byte
	ByteLen() int
	Free()
}

// Backend allocates and moves element storage.
type Backend interface {
	Name() string
	DeviceType() DeviceType

	Alloc(byteLen int) (Storage, error)
	Free(s Storage)
	Copy(dst, src Storage, byteLen int) error
}

var registry = make(map[DeviceType]Backend)

// Register adds a backend for its device type. Backends register from
// package init, before any concurrent use.
func Register(b Backend) {
	registry[b.DeviceType()] = b
}

// Get returns the backend for a device type.
func Get(dt DeviceType) (Backend, error) {
	b, ok := registry[dt]
	if !ok {
		return nil, fmt.Errorf("no backend registered for device type %v", dt)
	}
	return b, nil
}

// GetForDevice returns the backend that handles the given device.
func GetForDevice(d Device) (Backend, error) {
	return Get(d.Type)
}

// AllocElems allocates room for n elements of dtype d.
func AllocElems(b Backend, d core.DType, n int) (Storage, error) {
	size, err := core.SizeOf(d)
	if err != nil {
		return nil, err
	}
	if n < 0 {
		return nil, fmt.Errorf("negative element count %d", n)
	}
	return b.Alloc(int(size) * n)
}

// ErrUnsupported is returned when an operation is not supported.
var ErrUnsupported = errors.New("operation not supported")
