package ops

import (
	"errors"
	"math"
	"math/big"
	"math/cmplx"

	"golang.org/x/xerrors"

	"github.com/ryanmt/nmatrix/backend"
	"github.com/ryanmt/nmatrix/bridge"
	"github.com/ryanmt/nmatrix/core"
	"github.com/ryanmt/nmatrix/value"
)

var (
	// ErrUnsupported is returned when an operator is not defined for the
	// dtype the operands are promoted to. It is backend.ErrUnsupported, so
	// one errors.Is check covers allocation and evaluation.
	ErrUnsupported = backend.ErrUnsupported
	// ErrDivideByZero is returned for integer and rational division by zero.
	ErrDivideByZero = errors.New("divide by zero")
)

// Scalar is one element together with its dtype.
type Scalar struct {
	DType core.DType
	Bytes []byte
}

// Value decodes the scalar into a generic value.
func (s Scalar) Value() (value.Value, error) {
	return bridge.FromConcrete(s.Bytes, s.DType)
}

// Engine evaluates element-wise operators on scalars.
type Engine struct {
	conv *bridge.Converter
}

// NewEngine returns an Engine converting through conv, or through the
// default converter if conv is nil.
func NewEngine(conv *bridge.Converter) *Engine {
	if conv == nil {
		conv = bridge.Default()
	}
	return &Engine{conv: conv}
}

// ResultDType returns the dtype op produces for operands of dtypes a and b.
func ResultDType(op EwOp, a, b core.DType) (core.DType, error) {
	if !op.Valid() {
		return core.NoDType, xerrors.Errorf("%v: %w", op, ErrUnsupported)
	}
	out, err := core.LookupUpcast(a, b)
	if err != nil {
		return core.NoDType, err
	}
	if op.IsComparison() {
		return core.Byte, nil
	}
	return out, nil
}

// Apply computes a op b. Both operands are converted to their upcast dtype
// first; arithmetic results keep that dtype and comparisons yield a byte.
// Integer results wrap at the dtype width. Mod is floored in every dtype:
// a nonzero result takes the sign of b.
func (e *Engine) Apply(op EwOp, a, b Scalar) (Scalar, error) {
	resType, err := ResultDType(op, a.DType, b.DType)
	if err != nil {
		return Scalar{}, err
	}
	work := core.Upcast(a.DType, b.DType)
	if work == core.Object {
		return Scalar{}, xerrors.Errorf("%v %s %v: %w", a.DType, op.Symbol(), b.DType, ErrUnsupported)
	}

	va, err := e.operand(a, work)
	if err != nil {
		return Scalar{}, err
	}
	vb, err := e.operand(b, work)
	if err != nil {
		return Scalar{}, err
	}

	var res value.Value
	switch {
	case work.IsInteger():
		res, err = intOp(op, int64(va.(value.Int)), int64(vb.(value.Int)))
	case work.IsFloat():
		res, err = floatOp(op, float64(va.(value.Float)), float64(vb.(value.Float)))
	case work.IsComplex():
		x, y := va.(value.Complex), vb.(value.Complex)
		res, err = complexOp(op, complex(x.Re, x.Im), complex(y.Re, y.Im))
	case work.IsRational():
		res, err = rationalOp(op, va.(value.Rational), vb.(value.Rational))
	}
	if err != nil {
		return Scalar{}, xerrors.Errorf("%v %s %v: %w", a.DType, op.Symbol(), b.DType, err)
	}

	s, err := e.conv.AllocateAndConvert(res, resType)
	if err != nil {
		return Scalar{}, xerrors.Errorf("%v %s %v: %w", a.DType, op.Symbol(), b.DType, err)
	}
	return Scalar{DType: resType, Bytes: s.Bytes()}, nil
}

// operand casts s to dtype work and decodes it.
func (e *Engine) operand(s Scalar, work core.DType) (value.Value, error) {
	raw, err := e.conv.Cast(s.Bytes, s.DType, work)
	if err != nil {
		return nil, err
	}
	return e.conv.FromConcrete(raw, work)
}

func boolValue(b bool) value.Value {
	if b {
		return value.Int(1)
	}
	return value.Int(0)
}

func intOp(op EwOp, a, b int64) (value.Value, error) {
	switch op {
	case Add:
		return value.Int(a + b), nil
	case Sub:
		return value.Int(a - b), nil
	case Mul:
		return value.Int(a * b), nil
	case Div:
		if b == 0 {
			return nil, ErrDivideByZero
		}
		return value.Int(a / b), nil
	case Mod:
		if b == 0 {
			return nil, ErrDivideByZero
		}
		r := a % b
		if r != 0 && (r < 0) != (b < 0) {
			r += b
		}
		return value.Int(r), nil
	case Pow:
		if b < 0 {
			return nil, ErrUnsupported
		}
		return value.Int(ipow(a, b)), nil
	case EqEq:
		return boolValue(a == b), nil
	case Neq:
		return boolValue(a != b), nil
	case Lt:
		return boolValue(a < b), nil
	case Gt:
		return boolValue(a > b), nil
	case Leq:
		return boolValue(a <= b), nil
	case Geq:
		return boolValue(a >= b), nil
	}
	return nil, ErrUnsupported
}

// ipow raises base to a non-negative power, wrapping on overflow.
func ipow(base, exp int64) int64 {
	result := int64(1)
	for exp > 0 {
		if exp&1 == 1 {
			result *= base
		}
		base *= base
		exp >>= 1
	}
	return result
}

func floatOp(op EwOp, a, b float64) (value.Value, error) {
	switch op {
	case Add:
		return value.Float(a + b), nil
	case Sub:
		return value.Float(a - b), nil
	case Mul:
		return value.Float(a * b), nil
	case Div:
		return value.Float(a / b), nil
	case Mod:
		r := math.Mod(a, b)
		if r != 0 && (r < 0) != (b < 0) {
			r += b
		}
		return value.Float(r), nil
	case Pow:
		return value.Float(math.Pow(a, b)), nil
	case EqEq:
		return boolValue(a == b), nil
	case Neq:
		return boolValue(a != b), nil
	case Lt:
		return boolValue(a < b), nil
	case Gt:
		return boolValue(a > b), nil
	case Leq:
		return boolValue(a <= b), nil
	case Geq:
		return boolValue(a >= b), nil
	}
	return nil, ErrUnsupported
}

func complexOp(op EwOp, a, b complex128) (value.Value, error) {
	var z complex128
	switch op {
	case Add:
		z = a + b
	case Sub:
		z = a - b
	case Mul:
		z = a * b
	case Div:
		z = a / b
	case Pow:
		z = cmplx.Pow(a, b)
	case EqEq:
		return boolValue(a == b), nil
	case Neq:
		return boolValue(a != b), nil
	default:
		// complex numbers have no ordering and no modulus operator
		return nil, ErrUnsupported
	}
	return value.Complex{Re: real(z), Im: imag(z)}, nil
}

func rationalOp(op EwOp, a, b value.Rational) (value.Value, error) {
	if a.Den == 0 || b.Den == 0 {
		return nil, ErrDivideByZero
	}
	x := big.NewRat(a.Num, a.Den)
	y := big.NewRat(b.Num, b.Den)
	z := new(big.Rat)
	switch op {
	case Add:
		z.Add(x, y)
	case Sub:
		z.Sub(x, y)
	case Mul:
		z.Mul(x, y)
	case Div:
		if y.Sign() == 0 {
			return nil, ErrDivideByZero
		}
		z.Quo(x, y)
	case Mod:
		if y.Sign() == 0 {
			return nil, ErrDivideByZero
		}
		// x - y*floor(x/y); the denominator is positive so Euclidean
		// division of the quotient floors.
		q := new(big.Rat).Quo(x, y)
		fl := new(big.Int).Div(q.Num(), q.Denom())
		z.Sub(x, new(big.Rat).Mul(y, new(big.Rat).SetInt(fl)))
	case Pow:
		if !y.IsInt() {
			return nil, ErrUnsupported
		}
		var err error
		if z, err = ratPow(x, y.Num().Int64()); err != nil {
			return nil, err
		}
	case EqEq:
		return boolValue(x.Cmp(y) == 0), nil
	case Neq:
		return boolValue(x.Cmp(y) != 0), nil
	case Lt:
		return boolValue(x.Cmp(y) < 0), nil
	case Gt:
		return boolValue(x.Cmp(y) > 0), nil
	case Leq:
		return boolValue(x.Cmp(y) <= 0), nil
	case Geq:
		return boolValue(x.Cmp(y) >= 0), nil
	default:
		return nil, ErrUnsupported
	}
	return ratValue(z)
}

// ratPow raises x to an integer power, giving up once the result can no
// longer fit in 64-bit components.
func ratPow(x *big.Rat, exp int64) (*big.Rat, error) {
	if exp < 0 {
		if x.Sign() == 0 {
			return nil, ErrDivideByZero
		}
		if exp == math.MinInt64 {
			return nil, ErrUnsupported
		}
		x = new(big.Rat).Inv(x)
		exp = -exp
	}
	one := big.NewRat(1, 1)
	switch {
	case exp == 0:
		return one, nil
	case x.Sign() == 0, x.Cmp(one) == 0:
		return new(big.Rat).Set(x), nil
	case x.Cmp(big.NewRat(-1, 1)) == 0:
		if exp%2 == 0 {
			return one, nil
		}
		return new(big.Rat).Set(x), nil
	}
	// |x| != 1 in lowest terms, so the numerator or denominator grows on
	// every step and the loop ends within 64 iterations.
	result := new(big.Rat).Set(one)
	for i := int64(0); i < exp; i++ {
		result.Mul(result, x)
		if result.Num().BitLen() > 64 || result.Denom().BitLen() > 64 {
			return nil, core.NewConversionError("rational power", core.Rational128, "result overflows 64-bit components")
		}
	}
	return result, nil
}

func ratValue(z *big.Rat) (value.Value, error) {
	if !z.Num().IsInt64() || !z.Denom().IsInt64() {
		return nil, core.NewConversionError(z.RatString(), core.Rational128, "result overflows 64-bit components")
	}
	return value.Rational{Num: z.Num().Int64(), Den: z.Denom().Int64()}, nil
}
