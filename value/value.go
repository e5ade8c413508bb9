// Package value defines the generic numeric value exchanged with the host
// environment: a closed union of integer, float, rational, complex and
// opaque object variants.
package value

import (
	"fmt"
	"math"
	"strconv"

	"github.com/ryanmt/nmatrix/core"
)

// Kind tags the variant held by a Value.
type Kind uint8

const (
	KindInt Kind = iota
	KindFloat
	KindRational
	KindComplex
	KindObject
)

func (k Kind) String() string {
	switch k {
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindRational:
		return "rational"
	case KindComplex:
		return "complex"
	case KindObject:
		return "object"
	default:
		return fmt.Sprintf("Kind(%d)", k)
	}
}

// Value is a sealed interface: only Int, Float, Rational, Complex and
// Object implement it.
type Value interface {
	Kind() Kind
	String() string
	value()
}

// Int is a host integer.
type Int int64

// Float is a host float.
type Float float64

// Rational is a host rational. Values built with NewRational are in lowest
// terms with a positive denominator.
type Rational struct {
	Num, Den int64
}

// Complex is a host complex number.
type Complex struct {
	Re, Im float64
}

// Handle is an opaque reference to a host-managed object. Its lifetime
// belongs to the host; this package only copies it.
type Handle uintptr

// Object wraps a host object handle. It carries no numeric payload.
type Object struct {
	Handle Handle
}

func (Int) value()      {}
func (Float) value()    {}
func (Rational) value() {}
func (Complex) value()  {}
func (Object) value()   {}

func (Int) Kind() Kind      { return KindInt }
func (Float) Kind() Kind    { return KindFloat }
func (Rational) Kind() Kind { return KindRational }
func (Complex) Kind() Kind  { return KindComplex }
func (Object) Kind() Kind   { return KindObject }

func (v Int) String() string { return strconv.FormatInt(int64(v), 10) }

func (v Float) String() string { return strconv.FormatFloat(float64(v), 'g', -1, 64) }

func (v Rational) String() string { return fmt.Sprintf("%d/%d", v.Num, v.Den) }

func (v Complex) String() string {
	return strconv.FormatComplex(complex(v.Re, v.Im), 'g', -1, 128)
}

func (v Object) String() string { return fmt.Sprintf("object(%#x)", uintptr(v.Handle)) }

// NewRational returns num/den in lowest terms with a positive denominator.
func NewRational(num, den int64) (Rational, error) {
	if den == 0 {
		return Rational{}, core.NewConversionError(fmt.Sprintf("%d/0", num), core.NoDType, "zero denominator")
	}
	if den < 0 {
		if num == math.MinInt64 || den == math.MinInt64 {
			return Rational{}, core.NewConversionError(fmt.Sprintf("%d/%d", num, den), core.NoDType, "sign normalization overflows int64")
		}
		num, den = -num, -den
	}
	if g := gcd(num, den); g > 1 {
		num, den = num/g, den/g
	}
	return Rational{Num: num, Den: den}, nil
}

// Float64 returns the rational as the nearest float64.
func (v Rational) Float64() float64 {
	return float64(v.Num) / float64(v.Den)
}

func gcd(a, b int64) int64 {
	if a < 0 {
		a = -a
	}
	if b < 0 {
		b = -b
	}
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

// ToInt64 extracts an integer from v. Floats and rationals truncate toward
// zero; complex values convert only when the imaginary part is zero.
func ToInt64(v Value) (int64, error) {
	switch x := v.(type) {
	case Int:
		return int64(x), nil
	case Float:
		return floatToInt64(float64(x), v)
	case Rational:
		if x.Den == 0 {
			return 0, notNumeric(v, "zero denominator")
		}
		return x.Num / x.Den, nil
	case Complex:
		if x.Im != 0 {
			return 0, notNumeric(v, "complex value has a non-zero imaginary part")
		}
		return floatToInt64(x.Re, v)
	default:
		return 0, notNumeric(v, "not a number")
	}
}

// ToFloat64 extracts a float from v. Complex values convert only when the
// imaginary part is zero.
func ToFloat64(v Value) (float64, error) {
	switch x := v.(type) {
	case Int:
		return float64(x), nil
	case Float:
		return float64(x), nil
	case Rational:
		if x.Den == 0 {
			return 0, notNumeric(v, "zero denominator")
		}
		return x.Float64(), nil
	case Complex:
		if x.Im != 0 {
			return 0, notNumeric(v, "complex value has a non-zero imaginary part")
		}
		return x.Re, nil
	default:
		return 0, notNumeric(v, "not a number")
	}
}

func floatToInt64(f float64, v Value) (int64, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, notNumeric(v, "not a finite number")
	}
	if f >= math.MaxInt64 || f < math.MinInt64 {
		return 0, notNumeric(v, "out of int64 range")
	}
	return int64(f), nil
}

func notNumeric(v Value, reason string) error {
	return core.NewConversionError(Describe(v), core.NoDType, reason)
}

// Describe names a value for error messages: its kind followed by the
// printed value.
func Describe(v Value) string {
	if v == nil {
		return "nil value"
	}
	return v.Kind().String() + " " + v.String()
}
