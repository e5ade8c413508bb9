package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ryanmt/nmatrix/backend"
	"github.com/ryanmt/nmatrix/core"
)

func TestRegistered(t *testing.T) {
	be, err := backend.GetForDevice(backend.CPU0)
	require.NoError(t, err)
	assert.Equal(t, "cpu", be.Name())
	assert.Equal(t, backend.CPU, be.DeviceType())
}

func TestAllocElems(t *testing.T) {
	be, err := backend.Get(backend.CPU)
	require.NoError(t, err)

	s, err := backend.AllocElems(be, core.Complex128, 3)
	require.NoError(t, err)
	assert.Equal(t, 48, s.ByteLen())
	assert.NotZero(t, s.Ptr())
	assert.Equal(t, backend.CPU0, s.Device())

	be.Free(s)
	assert.Equal(t, 0, s.ByteLen())
	assert.Zero(t, s.Ptr())

	_, err = backend.AllocElems(be, core.DType(99), 1)
	assert.ErrorIs(t, err, core.ErrTypeConversion)
	_, err = backend.AllocElems(be, core.Int8, -1)
	assert.Error(t, err)
}

func TestCopy(t *testing.T) {
	be, err := backend.Get(backend.CPU)
	require.NoError(t, err)

	src := NewStorage([]byte{1, 2, 3, 4})
	dst := Alloc(4)
	require.NoError(t, be.Copy(dst, src, 3))
	assert.Equal(t, []byte{1, 2, 3, 0}, dst.Bytes())
	assert.Error(t, be.Copy(dst, src, 5))

	_, err = backend.Get(backend.DeviceType(7))
	assert.Error(t, err)
}
