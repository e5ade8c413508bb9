package bridge

import (
	"fmt"

	"github.com/hashicorp/go-multierror"
	"golang.org/x/xerrors"

	"github.com/ryanmt/nmatrix/backend"
	"github.com/ryanmt/nmatrix/core"
	"github.com/ryanmt/nmatrix/value"
)

// Cast converts one element stored as from into a new buffer holding it as
// to.
func (c *Converter) Cast(src []byte, from, to core.DType) ([]byte, error) {
	v, err := c.FromConcrete(src, from)
	if err != nil {
		return nil, err
	}
	size, err := core.SizeOf(to)
	if err != nil {
		return nil, err
	}
	dst := make([]byte, size)
	if from == to {
		copy(dst, src)
		return dst, nil
	}
	if err := c.ToConcrete(v, to, dst); err != nil {
		return nil, xerrors.Errorf("cast %v to %v: %w", from, to, err)
	}
	return dst, nil
}

// CastSlice converts every element of src (dtype from) into dst (dtype to).
// Elements that fail are left zeroed in dst; every failure is reported in
// the returned *multierror.Error.
func (c *Converter) CastSlice(dst, src []byte, from, to core.DType) error {
	fs, err := core.SizeOf(from)
	if err != nil {
		return err
	}
	ts, err := core.SizeOf(to)
	if err != nil {
		return err
	}
	if len(src)%int(fs) != 0 {
		return core.NewConversionError(from.String()+" slice", to,
			fmt.Sprintf("source length %d is not a multiple of %d", len(src), fs))
	}
	n := len(src) / int(fs)
	if len(dst) < n*int(ts) {
		return core.NewConversionError(from.String()+" slice", to,
			fmt.Sprintf("destination holds %d bytes, need %d", len(dst), n*int(ts)))
	}

	var result *multierror.Error
	for i := 0; i < n; i++ {
		out := dst[i*int(ts) : (i+1)*int(ts)]
		v, err := codecs[from].decode(src[i*int(fs):])
		if err == nil {
			err = codecs[to].encode(c, v, out)
		}
		if err != nil {
			clear(out)
			result = multierror.Append(result, xerrors.Errorf("element %d: %w", i, err))
		}
	}
	if result != nil {
		c.logger.Debug("cast slice failed",
			"from", from.String(),
			"to", to.String(),
			"elements", n,
			"failures", len(result.Errors))
	}
	return result.ErrorOrNil()
}

// CastStorage converts the elements held by s from dtype from to dtype to,
// returning new storage from the converter's backend. When any element
// fails the new storage is freed and the *multierror.Error from CastSlice
// is returned.
func (c *Converter) CastStorage(s backend.Storage, from, to core.DType) (backend.Storage, error) {
	fs, err := core.SizeOf(from)
	if err != nil {
		return nil, err
	}
	if c.backend == nil {
		return nil, xerrors.Errorf("cast storage: %w", backend.ErrUnsupported)
	}
	n := s.ByteLen() / int(fs)
	out, err := backend.AllocElems(c.backend, to, n)
	if err != nil {
		return nil, xerrors.Errorf("cast storage: %w", err)
	}
	if from == to && s.ByteLen()%int(fs) == 0 {
		err = c.backend.Copy(out, s, s.ByteLen())
	} else {
		err = c.CastSlice(out.Bytes(), s.Bytes(), from, to)
	}
	if err != nil {
		c.backend.Free(out)
		return nil, err
	}
	return out, nil
}

// GuessDType returns the dtype a value naturally maps to: int64, float64,
// rational128 and complex128 for the numeric kinds, object otherwise.
func GuessDType(v value.Value) core.DType {
	switch v.(type) {
	case value.Int:
		return core.Int64
	case value.Float:
		return core.Float64
	case value.Rational:
		return core.Rational128
	case value.Complex:
		return core.Complex128
	default:
		return core.Object
	}
}

// Cast converts one element with the default converter.
func Cast(src []byte, from, to core.DType) ([]byte, error) {
	return defaultConverter.Cast(src, from, to)
}

// CastSlice converts a slice of elements with the default converter.
func CastSlice(dst, src []byte, from, to core.DType) error {
	return defaultConverter.CastSlice(dst, src, from, to)
}
