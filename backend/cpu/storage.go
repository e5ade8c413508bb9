package cpu

import (
	"unsafe"

	"github.com/ryanmt/nmatrix/backend"
)

// storage holds the native bytes of one or more dtype elements in host
// memory.
type storage struct {
	buf []byte
	dev backend.Device
}

// NewStorage wraps an element buffer the caller already holds, such as one
// filled by bridge.ToConcrete. The caller keeps ownership of buf.
func NewStorage(buf []byte) backend.Storage {
	return &storage{buf: buf, dev: backend.CPU0}
}

// Alloc creates zeroed element storage of exactly byteLen bytes. Zeroed
// rational elements have a zero denominator and do not decode until
// written.
func Alloc(byteLen int) backend.Storage {
	return &storage{buf: make([]byte, byteLen), dev: backend.CPU0}
}

func (s *storage) Device() backend.Device { return s.dev }
func (s *storage) ByteLen() int           { return len(s.buf) }
func (s *storage) Bytes() []byte          { return s.buf }

func (s *storage) Ptr() uintptr {
	if len(s.buf) == 0 {
		return 0
	}
	return uintptr(unsafe.Pointer(&s.buf[0]))
}

// Free releases the element bytes; Bytes is empty afterwards. Calling it
// twice is harmless.
func (s *storage) Free() {
	s.buf = nil
}
