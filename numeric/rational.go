package numeric

import (
	"unsafe"

	"fortio.org/safecast"

	"github.com/ryanmt/nmatrix/core"
	"github.com/ryanmt/nmatrix/value"
)

// RationalComponent is the set of numerator/denominator widths.
type RationalComponent interface {
	~int16 | ~int32 | ~int64
}

// Rational is a rational number stored as numerator then denominator.
type Rational[T RationalComponent] struct {
	Num, Den T
}

type (
	Rational32  = Rational[int16]
	Rational64  = Rational[int32]
	Rational128 = Rational[int64]
)

// RationalFromValue builds a rational from a generic value. A rational
// supplies both fields and an integer n becomes n/1. Floats and complex
// values are rejected: a rational cannot absorb floating point error.
// Numerator and denominator must fit in T.
func RationalFromValue[T RationalComponent](v value.Value) (Rational[T], error) {
	to := RationalDType[T]()
	var num, den int64
	switch x := v.(type) {
	case value.Rational:
		if x.Den == 0 {
			return Rational[T]{}, conversionError(v, to, "zero denominator", nil)
		}
		num, den = x.Num, x.Den
	case value.Int:
		num, den = int64(x), 1
	case value.Float, value.Complex:
		return Rational[T]{}, conversionError(v, to, "cannot convert float to a rational", nil)
	default:
		return Rational[T]{}, conversionError(v, to, "not sure how to convert this value to a rational", nil)
	}

	n, err := safecast.Conv[T](num)
	if err != nil {
		return Rational[T]{}, conversionError(v, to, "numerator out of range", err)
	}
	d, err := safecast.Conv[T](den)
	if err != nil {
		return Rational[T]{}, conversionError(v, to, "denominator out of range", err)
	}
	return Rational[T]{Num: n, Den: d}, nil
}

// Value returns the rational as a generic value.
func (r Rational[T]) Value() value.Value {
	return value.Rational{Num: int64(r.Num), Den: int64(r.Den)}
}

// DType reports the rational dtype for the component width.
func (r Rational[T]) DType() core.DType {
	return RationalDType[T]()
}

// RationalDType maps a component type to its rational dtype.
func RationalDType[T RationalComponent]() core.DType {
	var zero T
	switch unsafe.Sizeof(zero) {
	case 2:
		return core.Rational32
	case 4:
		return core.Rational64
	default:
		return core.Rational128
	}
}
