// Package numeric holds the fixed-width complex and rational element kinds
// and their construction from generic values.
package numeric

import (
	"unsafe"

	"golang.org/x/exp/constraints"

	"github.com/ryanmt/nmatrix/core"
	"github.com/ryanmt/nmatrix/value"
)

// Complex is a complex number stored as two components, real part first.
type Complex[T constraints.Float] struct {
	Re, Im T
}

type (
	Complex64  = Complex[float32]
	Complex128 = Complex[float64]
)

// ComplexFromValue builds a complex from a generic value. A complex supplies
// both parts; an integer, float or rational supplies the real part with a
// zero imaginary part. Anything else is a TypeConversionError.
func ComplexFromValue[T constraints.Float](v value.Value) (Complex[T], error) {
	switch x := v.(type) {
	case value.Complex:
		return Complex[T]{Re: T(x.Re), Im: T(x.Im)}, nil
	case value.Int, value.Float, value.Rational:
		re, err := value.ToFloat64(x)
		if err != nil {
			return Complex[T]{}, conversionError(v, ComplexDType[T](), "", err)
		}
		return Complex[T]{Re: T(re)}, nil
	default:
		return Complex[T]{}, conversionError(v, ComplexDType[T](), "not sure how to convert this value to a complex", nil)
	}
}

// Value returns the complex as a generic value.
func (c Complex[T]) Value() value.Value {
	return value.Complex{Re: float64(c.Re), Im: float64(c.Im)}
}

// DType reports complex64 or complex128 according to the component width.
func (c Complex[T]) DType() core.DType {
	return ComplexDType[T]()
}

// ComplexDType maps a component type to its complex dtype.
func ComplexDType[T constraints.Float]() core.DType {
	var zero T
	if unsafe.Sizeof(zero) == 4 {
		return core.Complex64
	}
	return core.Complex128
}

func conversionError(v value.Value, to core.DType, reason string, err error) error {
	return &core.TypeConversionError{From: value.Describe(v), To: to, Reason: reason, Err: err}
}
