package cpu

import (
	"fmt"

	"github.com/ryanmt/nmatrix/backend"
)

type cpuBackend struct{}

func init() {
	backend.Register(&cpuBackend{})
}

func (b *cpuBackend) Name() string                   { return "cpu" }
func (b *cpuBackend) DeviceType() backend.DeviceType { return backend.CPU }

func (b *cpuBackend) Alloc(byteLen int) (backend.Storage, error) {
	if byteLen < 0 {
		return nil, fmt.Errorf("cpu: negative allocation size %d", byteLen)
	}
	return Alloc(byteLen), nil
}

func (b *cpuBackend) Free(s backend.Storage) {
	if s != nil {
		s.Free()
	}
}

func (b *cpuBackend) Copy(dst, src backend.Storage, byteLen int) error {
	if dst.Device().Type != backend.CPU || src.Device().Type != backend.CPU {
		return backend.ErrUnsupported
	}
	if byteLen > dst.ByteLen() || byteLen > src.ByteLen() {
		return fmt.Errorf("cpu: copy of %d bytes exceeds storage (dst %d, src %d)", byteLen, dst.ByteLen(), src.ByteLen())
	}
	copy(dst.Bytes()[:byteLen], src.Bytes()[:byteLen])
	return nil
}
