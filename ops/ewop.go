package ops

import (
	"fmt"
	"strings"
)

// EwOp is an element-wise binary operator.
type EwOp uint8

const (
	Add EwOp = iota
	Sub
	Mul
	Div
	Pow
	Mod
	EqEq
	Neq
	Lt
	Gt
	Leq
	Geq
)

// NumEwOps is the number of element-wise operators.
const NumEwOps = int(Geq) + 1

var ewopSymbols = [NumEwOps]string{"+", "-", "*", "/", "**", "%", "==", "!=", "<", ">", "<=", ">="}

var ewopNames = [NumEwOps]string{"add", "sub", "mul", "div", "pow", "mod", "eqeq", "neq", "lt", "gt", "leq", "geq"}

func (op EwOp) Valid() bool { return int(op) < NumEwOps }

// Symbol returns the operator as written in expressions, e.g. "**".
func (op EwOp) Symbol() string {
	if !op.Valid() {
		return "?"
	}
	return ewopSymbols[op]
}

// String returns the operator name, e.g. "pow".
func (op EwOp) String() string {
	if !op.Valid() {
		return fmt.Sprintf("EwOp(%d)", op)
	}
	return ewopNames[op]
}

// IsComparison is true for the six comparison operators. They produce a
// byte 0/1 instead of a value of the upcast dtype.
func (op EwOp) IsComparison() bool {
	return op >= EqEq && op.Valid()
}

// ParseEwOp accepts either a symbol ("<=") or a name ("leq").
func ParseEwOp(s string) (EwOp, error) {
	s = strings.TrimSpace(s)
	for i := 0; i < NumEwOps; i++ {
		if ewopSymbols[i] == s || ewopNames[i] == strings.ToLower(s) {
			return EwOp(i), nil
		}
	}
	return 0, fmt.Errorf("unknown element-wise operator %q", s)
}
