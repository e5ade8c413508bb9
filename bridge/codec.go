package bridge

import (
	"math"
	"unsafe"

	"fortio.org/safecast"
	"golang.org/x/exp/constraints"

	"github.com/ryanmt/nmatrix/core"
	"github.com/ryanmt/nmatrix/numeric"
	"github.com/ryanmt/nmatrix/value"
)

// codec reads and writes one element of a single dtype. Callers guarantee
// the buffer holds at least the dtype's size.
type codec interface {
	encode(c *Converter, v value.Value, dst []byte) error
	decode(src []byte) (value.Value, error)
}

var codecs = [core.NumDTypes]codec{
	core.Byte:        intCodec[uint8]{core.Byte},
	core.Int8:        intCodec[int8]{core.Int8},
	core.Int16:       intCodec[int16]{core.Int16},
	core.Int32:       intCodec[int32]{core.Int32},
	core.Int64:       intCodec[int64]{core.Int64},
	core.Float32:     floatCodec[float32]{core.Float32},
	core.Float64:     floatCodec[float64]{core.Float64},
	core.Complex64:   complexCodec[float32]{},
	core.Complex128:  complexCodec[float64]{},
	core.Rational32:  rationalCodec[int16]{},
	core.Rational64:  rationalCodec[int32]{},
	core.Rational128: rationalCodec[int64]{},
	core.Object:      objectCodec{},
}

// Elements are stored in native layout, as the array engine reads them.
func load[T any](b []byte) T {
	return *(*T)(unsafe.Pointer(&b[0]))
}

func store[T any](b []byte, v T) {
	*(*T)(unsafe.Pointer(&b[0])) = v
}

// integer is the set of fixed-width integer element types.
type integer interface {
	~uint8 | ~int8 | ~int16 | ~int32 | ~int64
}

type intCodec[T integer] struct {
	dtype core.DType
}

func (k intCodec[T]) encode(c *Converter, v value.Value, dst []byte) error {
	if c.strict {
		n, err := exactInt64(v, k.dtype)
		if err != nil {
			return err
		}
		out, err := safecast.Conv[T](n)
		if err != nil {
			return &core.TypeConversionError{From: value.Describe(v), To: k.dtype, Reason: "out of range", Err: err}
		}
		store(dst, out)
		return nil
	}
	n, err := value.ToInt64(v)
	if err != nil {
		return retarget(err, k.dtype)
	}
	store(dst, T(n))
	return nil
}

func (k intCodec[T]) decode(src []byte) (value.Value, error) {
	return value.Int(int64(load[T](src))), nil
}

// exactInt64 is ToInt64 that refuses to drop a fractional part. NaN and
// infinities fall through to ToInt64, which rejects them.
func exactInt64(v value.Value, to core.DType) (int64, error) {
	switch x := v.(type) {
	case value.Float:
		if f := float64(x); finite(f) && f != math.Trunc(f) {
			return 0, core.NewConversionError(value.Describe(v), to, "fractional part would be lost")
		}
	case value.Rational:
		if x.Den != 1 {
			return 0, core.NewConversionError(value.Describe(v), to, "fractional part would be lost")
		}
	case value.Complex:
		if finite(x.Re) && x.Re != math.Trunc(x.Re) {
			return 0, core.NewConversionError(value.Describe(v), to, "fractional part would be lost")
		}
	}
	n, err := value.ToInt64(v)
	if err != nil {
		return 0, retarget(err, to)
	}
	return n, nil
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

type floatCodec[T constraints.Float] struct {
	dtype core.DType
}

func (k floatCodec[T]) encode(c *Converter, v value.Value, dst []byte) error {
	f, err := value.ToFloat64(v)
	if err != nil {
		return retarget(err, k.dtype)
	}
	if c.strict && k.dtype == core.Float32 && !math.IsInf(f, 0) && math.Abs(f) > math.MaxFloat32 {
		return core.NewConversionError(value.Describe(v), k.dtype, "out of range")
	}
	store(dst, T(f))
	return nil
}

func (k floatCodec[T]) decode(src []byte) (value.Value, error) {
	return value.Float(float64(load[T](src))), nil
}

type complexCodec[T constraints.Float] struct{}

func (complexCodec[T]) encode(_ *Converter, v value.Value, dst []byte) error {
	z, err := numeric.ComplexFromValue[T](v)
	if err != nil {
		return err
	}
	store(dst, z)
	return nil
}

func (complexCodec[T]) decode(src []byte) (value.Value, error) {
	return load[numeric.Complex[T]](src).Value(), nil
}

type rationalCodec[T numeric.RationalComponent] struct{}

func (rationalCodec[T]) encode(_ *Converter, v value.Value, dst []byte) error {
	r, err := numeric.RationalFromValue[T](v)
	if err != nil {
		return err
	}
	store(dst, r)
	return nil
}

// decode rejects a zero denominator and returns the value in lowest terms.
func (rationalCodec[T]) decode(src []byte) (value.Value, error) {
	r := load[numeric.Rational[T]](src)
	v, err := value.NewRational(int64(r.Num), int64(r.Den))
	if err != nil {
		return nil, retarget(err, numeric.RationalDType[T]())
	}
	return v, nil
}

// objectCodec stores host handles unchanged. Numeric values need a Boxer to
// obtain a handle.
type objectCodec struct{}

func (objectCodec) encode(c *Converter, v value.Value, dst []byte) error {
	if o, ok := v.(value.Object); ok {
		store(dst, o.Handle)
		return nil
	}
	if c.boxer == nil || v == nil {
		return core.NewConversionError(value.Describe(v), core.Object, "no boxer configured for numeric values")
	}
	h, err := c.boxer.Box(v)
	if err != nil {
		return &core.TypeConversionError{From: value.Describe(v), To: core.Object, Reason: "boxing failed", Err: err}
	}
	store(dst, h)
	return nil
}

func (objectCodec) decode(src []byte) (value.Value, error) {
	return value.Object{Handle: load[value.Handle](src)}, nil
}

// retarget fills in the target dtype on errors raised before it was known.
func retarget(err error, to core.DType) error {
	if tce, ok := err.(*core.TypeConversionError); ok && !tce.To.Valid() {
		out := *tce
		out.To = to
		return &out
	}
	return err
}
