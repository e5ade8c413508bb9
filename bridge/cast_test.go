package bridge

import (
	"testing"

	"github.com/hashicorp/go-multierror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ryanmt/nmatrix/backend/cpu"
	"github.com/ryanmt/nmatrix/core"
	"github.com/ryanmt/nmatrix/value"
)

func encodeAll(t *testing.T, d core.DType, vals ...value.Value) []byte {
	t.Helper()
	size := int(d.Size())
	buf := make([]byte, size*len(vals))
	for i, v := range vals {
		require.NoError(t, ToConcrete(v, d, buf[i*size:]))
	}
	return buf
}

func TestCast(t *testing.T) {
	src := encodeAll(t, core.Int32, value.Int(-7))

	out, err := Cast(src, core.Int32, core.Float64)
	require.NoError(t, err)
	require.Len(t, out, 8)
	v, err := FromConcrete(out, core.Float64)
	require.NoError(t, err)
	assert.Equal(t, value.Float(-7), v)

	out, err = Cast(src, core.Int32, core.Rational32)
	require.NoError(t, err)
	v, err = FromConcrete(out, core.Rational32)
	require.NoError(t, err)
	assert.Equal(t, value.Rational{Num: -7, Den: 1}, v)

	same, err := Cast(src, core.Int32, core.Int32)
	require.NoError(t, err)
	assert.Equal(t, src, same)

	f := encodeAll(t, core.Float64, value.Float(0.5))
	_, err = Cast(f, core.Float64, core.Rational64)
	assert.ErrorIs(t, err, core.ErrTypeConversion)
}

func TestCastSlice(t *testing.T) {
	src := encodeAll(t, core.Int16, value.Int(1), value.Int(-2), value.Int(300))
	dst := make([]byte, 3)
	require.NoError(t, CastSlice(dst, src, core.Int16, core.Byte))
	assert.Equal(t, []byte{1, 254, 44}, dst)

	dst = make([]byte, 3*int(core.Complex128.Size()))
	require.NoError(t, CastSlice(dst, src, core.Int16, core.Complex128))
	v, err := FromConcrete(dst[16:], core.Complex128)
	require.NoError(t, err)
	assert.Equal(t, value.Complex{Re: -2}, v)
}

func TestCastSliceCollectsFailures(t *testing.T) {
	src := encodeAll(t, core.Float64, value.Float(1), value.Float(0.5), value.Float(2), value.Float(-0.25))
	dst := make([]byte, 4*int(core.Rational64.Size()))
	for i := range dst {
		dst[i] = 0xff
	}

	c := New(WithStrictNarrowing())
	err := c.CastSlice(dst, src, core.Float64, core.Rational64)
	require.Error(t, err)

	var merr *multierror.Error
	require.ErrorAs(t, err, &merr)
	assert.Len(t, merr.Errors, 4)
	for _, e := range merr.Errors {
		assert.ErrorIs(t, e, core.ErrTypeConversion)
	}
	assert.Contains(t, merr.Errors[1].Error(), "element 1")
	assert.Equal(t, make([]byte, len(dst)), dst)

	src = encodeAll(t, core.Int64, value.Int(1), value.Int(1000), value.Int(-5))
	dst = make([]byte, 3)
	err = c.CastSlice(dst, src, core.Int64, core.Int8)
	require.ErrorAs(t, err, &merr)
	require.Len(t, merr.Errors, 1)
	assert.Contains(t, merr.Errors[0].Error(), "element 1")
	assert.Equal(t, []byte{1, 0, 0xfb}, dst)
}

func TestCastSliceZeroDenominator(t *testing.T) {
	src := encodeAll(t, core.Rational32, value.Rational{Num: 1, Den: 2}, value.Rational{Num: 3, Den: 4})
	clear(src[4:])
	dst := make([]byte, 2*int(core.Float64.Size()))

	err := CastSlice(dst, src, core.Rational32, core.Float64)
	var merr *multierror.Error
	require.ErrorAs(t, err, &merr)
	require.Len(t, merr.Errors, 1)
	assert.Contains(t, merr.Errors[0].Error(), "element 1")
	assert.Contains(t, merr.Errors[0].Error(), "zero denominator")

	v, err := FromConcrete(dst, core.Float64)
	require.NoError(t, err)
	assert.Equal(t, value.Float(0.5), v)
}

func TestCastSliceBadLengths(t *testing.T) {
	err := CastSlice(make([]byte, 8), make([]byte, 5), core.Int32, core.Int32)
	assert.ErrorIs(t, err, core.ErrTypeConversion)

	err = CastSlice(make([]byte, 4), make([]byte, 8), core.Int32, core.Int32)
	assert.ErrorIs(t, err, core.ErrTypeConversion)

	err = CastSlice(nil, nil, core.DType(77), core.Int32)
	assert.ErrorIs(t, err, core.ErrTypeConversion)
}

func TestCastStorage(t *testing.T) {
	src := cpu.NewStorage(encodeAll(t, core.Int8, value.Int(-1), value.Int(2)))

	out, err := Default().CastStorage(src, core.Int8, core.Rational64)
	require.NoError(t, err)
	defer out.Free()
	require.Equal(t, 16, out.ByteLen())
	v, err := FromConcrete(out.Bytes()[8:], core.Rational64)
	require.NoError(t, err)
	assert.Equal(t, value.Rational{Num: 2, Den: 1}, v)

	same, err := Default().CastStorage(src, core.Int8, core.Int8)
	require.NoError(t, err)
	assert.Equal(t, src.Bytes(), same.Bytes())
	same.Bytes()[0] = 7
	assert.Equal(t, byte(0xff), src.Bytes()[0])

	f := cpu.NewStorage(encodeAll(t, core.Float32, value.Float(0.5)))
	_, err = Default().CastStorage(f, core.Float32, core.Rational32)
	var merr *multierror.Error
	require.ErrorAs(t, err, &merr)
	assert.Len(t, merr.Errors, 1)

	_, err = New(WithBackend(nil)).CastStorage(src, core.Int8, core.Int16)
	assert.Error(t, err)
}

func TestGuessDType(t *testing.T) {
	assert.Equal(t, core.Int64, GuessDType(value.Int(1)))
	assert.Equal(t, core.Float64, GuessDType(value.Float(1)))
	assert.Equal(t, core.Rational128, GuessDType(value.Rational{Num: 1, Den: 2}))
	assert.Equal(t, core.Complex128, GuessDType(value.Complex{}))
	assert.Equal(t, core.Object, GuessDType(value.Object{}))
	assert.Equal(t, core.Object, GuessDType(nil))
}
